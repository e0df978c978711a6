package api

import (
	"time"

	"investpro/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func SetupRouter(h *Handler, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log))

	corsConfig := cors.Config{
		AllowOrigins:  cfg.Origins(),
		AllowMethods:  []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", SessionHeader},
		ExposeHeaders: []string{"Content-Length", SessionHeader},
		MaxAge:        12 * time.Hour,
	}
	// cors refuses an empty origin list.
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))

	h.RegisterRoutes(r.Group("/api"))
	return r
}

// RequestLogger logs one line per request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		event := log.Info()
		if c.Writer.Status() >= 500 {
			event = log.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("session_id", c.Writer.Header().Get(SessionHeader)).
			Msg("request")
	}
}
