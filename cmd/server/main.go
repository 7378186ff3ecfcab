package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/ibreez3/minivault/api"
	"github.com/ibreez3/minivault/config"
	"github.com/ibreez3/minivault/openai"
	"github.com/ibreez3/minivault/responder"
	"github.com/ibreez3/minivault/service"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Server.LogLevel}))
	slog.SetDefault(logger)

	var remote responder.Responder
	if cfg.Ollama.Enabled {
		if cfg.Ollama.Model == "" {
			logger.Warn("USE_OLLAMA is set but OLLAMA_MODEL is empty; backend calls will fail")
		}
		cli := openai.NewClient(cfg.Ollama.APIKey, cfg.Ollama.BaseURL)
		remote = responder.NewRemote(cli, cfg.Ollama.Model)
	}
	if cfg.Ollama.Enabled != config.LiteralEnabled(cfg.Ollama.EnabledRaw) {
		logger.Info("USE_OLLAMA accepted through normalised truthy parsing", "value", cfg.Ollama.EnabledRaw)
	}

	il := service.NewInteractionLog(cfg.Server.LogFile)
	h := service.NewHandler(cfg, remote, il).WithLogger(logger)

	gin.SetMode(gin.ReleaseMode)
	r := api.NewRouter(h, logger)

	logger.Info("server starting",
		"addr", cfg.Server.Addr,
		"backend", cfg.Backend(),
		"model", cfg.Ollama.Model,
		"base_url", cfg.Ollama.BaseURL,
		"log_file", il.Path(),
	)
	if err := r.Run(cfg.Server.Addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
