package cli

import (
	"fmt"

	"investpro/chat"
	"investpro/config"
	"investpro/dashboard"
	"investpro/loader"
	"investpro/models"
	"investpro/search"

	"github.com/rs/zerolog"
)

// app is everything a command needs, built once from the config.
type app struct {
	engine    search.SearchEngine
	market    models.MarketOverview
	assistant *chat.Assistant
	chatOpts  chat.Options
	log       zerolog.Logger
	close     func() error
}

func buildApp(cfg *config.Config, log zerolog.Logger) (*app, error) {
	stocks, err := loadStocks(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	log.Info().Int("stocks", len(stocks)).Msg("catalog loaded")

	market, err := loadMarket(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load market overview: %w", err)
	}

	script, err := loadChatScript(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat script: %w", err)
	}
	assistant, err := chat.NewAssistant(script)
	if err != nil {
		return nil, err
	}

	a := &app{
		market:    market,
		assistant: assistant,
		chatOpts:  chat.Options{MinDelay: cfg.ChatMinDelay, MaxDelay: cfg.ChatMaxDelay},
		log:       log,
		close:     func() error { return nil },
	}

	switch cfg.SearchEngine {
	case config.EngineBleve:
		engine, err := search.NewBleveEngine(stocks, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize search engine: %w", err)
		}
		a.engine, a.close = engine, engine.Close
	default:
		a.engine = search.NewInMemoryEngine(stocks)
	}
	log.Debug().Str("engine", cfg.SearchEngine).Msg("search engine ready")

	return a, nil
}

func (a *app) newChatSession() *chat.Session {
	return chat.NewSession(a.assistant, a.chatOpts, a.log)
}

func (a *app) newDashboard() *dashboard.Dashboard {
	return dashboard.New(a.engine, a.market, a.newChatSession())
}

func loadStocks(cfg *config.Config) ([]models.Stock, error) {
	if cfg.CatalogPath == "" {
		return loader.DefaultStocks()
	}
	return loader.LoadStocks(cfg.CatalogPath)
}

func loadMarket(cfg *config.Config) (models.MarketOverview, error) {
	if cfg.MarketPath == "" {
		return loader.DefaultMarketOverview()
	}
	return loader.LoadMarketOverview(cfg.MarketPath)
}

func loadChatScript(cfg *config.Config) (chat.Script, error) {
	if cfg.ChatScriptPath == "" {
		return loader.DefaultChatScript()
	}
	return loader.LoadChatScript(cfg.ChatScriptPath)
}
