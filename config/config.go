package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultAddr    = "localhost:8000"
	DefaultLogFile = "logs/log.jsonl"
	DefaultBaseURL = "http://localhost:11434/v1"
	DefaultAPIKey  = "ollama"
)

// Config is read once at startup and passed by value afterwards.
type Config struct {
	Server struct {
		Addr     string
		LogFile  string
		LogLevel slog.Level
	}
	Ollama struct {
		Enabled    bool
		EnabledRaw string
		Model      string
		BaseURL    string
		APIKey     string
	}
}

// Load reads envFile (if it exists) into the process environment and then
// builds a Config from it. A missing env file is not an error.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return FromEnv(), nil
}

func FromEnv() Config {
	var cfg Config
	cfg.Server.Addr = getEnv("MINIVAULT_ADDR", DefaultAddr)
	cfg.Server.LogFile = getEnv("MINIVAULT_LOG_FILE", DefaultLogFile)
	cfg.Server.LogLevel = parseLevel(os.Getenv("MINIVAULT_LOG_LEVEL"))

	cfg.Ollama.EnabledRaw = getEnv("USE_OLLAMA", "false")
	cfg.Ollama.Enabled = ParseEnabled(cfg.Ollama.EnabledRaw)
	cfg.Ollama.Model = os.Getenv("OLLAMA_MODEL")
	cfg.Ollama.BaseURL = getEnv("OPENAI_API_BASE", DefaultBaseURL)
	cfg.Ollama.APIKey = getEnv("OPENAI_API_KEY", DefaultAPIKey)
	return cfg
}

// ParseEnabled accepts "true", "1" and "yes" in any case.
func ParseEnabled(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// LiteralEnabled is the narrower rule where only the exact string "true"
// turns the remote backend on. It disagrees with ParseEnabled for "1",
// "yes" and mixed-case spellings; the server uses ParseEnabled.
func LiteralEnabled(v string) bool {
	return v == "true"
}

// Backend names the responder the handler will pick.
func (c Config) Backend() string {
	if c.Ollama.Enabled {
		return "ollama"
	}
	return "stub"
}

func parseLevel(v string) slog.Level {
	switch strings.ToLower(v) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
