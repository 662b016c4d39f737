// Package config reads server settings from flags, falling back to
// CHESS_* environment variables.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type Config struct {
	Addr         string
	AllowOrigins string
	DataDir      string
	InMemory     bool
	LogLevel     zerolog.Level
	LogJSON      bool
}

// Load parses args (without the program name) into a Config.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("chessrules", flag.ContinueOnError)
	addr := fs.String("addr", getenv("CHESS_ADDR", ":3000"), "listen address")
	origins := fs.String("allow-origins", getenv("CHESS_ALLOW_ORIGINS", "http://localhost:5173"), "comma-separated CORS origins")
	dataDir := fs.String("data-dir", getenv("CHESS_DATA_DIR", "data/games"), "badger directory for the game archive")
	inMemory := fs.Bool("in-memory", getenb("CHESS_IN_MEMORY", false), "keep the game archive in memory")
	level := fs.String("log-level", getenv("CHESS_LOG_LEVEL", "info"), "log level (trace, debug, info, warn, error)")
	logJSON := fs.Bool("log-json", getenb("CHESS_LOG_JSON", false), "log JSON lines instead of console output")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(*level)))
	if err != nil {
		return Config{}, fmt.Errorf("log level %q: %w", *level, err)
	}
	if !*inMemory && *dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required unless in-memory is set")
	}

	return Config{
		Addr:         *addr,
		AllowOrigins: *origins,
		DataDir:      *dataDir,
		InMemory:     *inMemory,
		LogLevel:     lvl,
		LogJSON:      *logJSON,
	}, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}
