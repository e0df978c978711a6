package cli

import (
	"investpro/config"

	"github.com/rs/zerolog"
)

// setup loads the config, applies the engine override and returns a ready app.
// Terminal commands pass quiet so info logs do not interleave with their output.
func setup(engineOverride string, quiet bool) (*config.Config, *app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if engineOverride != "" {
		cfg.SearchEngine = engineOverride
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}

	log := config.SetupLogger(cfg)
	if quiet && zerolog.GlobalLevel() > zerolog.DebugLevel {
		log = log.Level(zerolog.WarnLevel)
	}
	a, err := buildApp(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, a, nil
}
