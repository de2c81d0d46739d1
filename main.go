package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/qrstudio/qrstudio/internal/cache"
	"github.com/qrstudio/qrstudio/internal/config"
	"github.com/qrstudio/qrstudio/internal/handlers"
	"github.com/qrstudio/qrstudio/internal/studio"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	} else {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level, keeping info")
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(handlers.RequestID())
	r.Use(handlers.RequestLogger(log))
	r.Use(gin.Recovery())

	st := studio.New(cache.New(cfg.CacheCapacity, log), cfg.DebounceInterval, log)
	defer st.Close()

	h := handlers.New(st, cfg.MaxLogoBytes, log)
	api := r.Group("/api")
	{
		api.GET("/qr", h.QRCodeHandler)

		sess := api.Group("/session")
		{
			sess.POST("/input", h.InputHandler)
			sess.GET("/preview", h.PreviewHandler)
			sess.GET("/status", h.StatusHandler)
			sess.POST("/clear", h.ClearHandler)
			sess.POST("/logo", h.LogoUploadHandler)
			sess.DELETE("/logo", h.LogoDeleteHandler)
		}
	}
	r.GET("/healthz", h.Healthz)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info().Str("addr", addr).Msg("qrstudio listening")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
