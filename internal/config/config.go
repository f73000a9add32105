package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/benbeisheim/checkers-backend/internal/engine"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const MaxAIDepth = 8

type Config struct {
	Port           int
	AllowedOrigins []string
	AIDepth        int
	AIAlgorithm    engine.Algorithm
	LogLevel       string
	LogPretty      bool
}

func Default() Config {
	return Config{
		Port:           3000,
		AllowedOrigins: []string{"http://localhost:5173"},
		AIDepth:        engine.DefaultDepth,
		AIAlgorithm:    engine.Minimax,
		LogLevel:       "info",
	}
}

var keys = []string{"PORT", "ALLOWED_ORIGINS", "AI_DEPTH", "AI_ALGORITHM", "LOG_LEVEL", "LOG_PRETTY"}

// Load reads envFile (a missing file only logs a warning) and lets the
// process environment override it.
func Load(envFile string) (Config, error) {
	env, err := godotenv.Read(envFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read %s: %w", envFile, err)
		}
		log.Warn().Str("file", envFile).Msg("no env file, using environment and defaults")
		env = map[string]string{}
	}
	for _, key := range keys {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return FromMap(env)
}

// FromMap builds a Config from key/value pairs on top of Default.
func FromMap(env map[string]string) (Config, error) {
	cfg := Default()

	if v := env["PORT"]; v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = port
	}
	if v := env["ALLOWED_ORIGINS"]; v != "" {
		cfg.AllowedOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				// the server sends credentialed CORS responses, which forbid a wildcard
				return Config{}, fmt.Errorf("invalid ALLOWED_ORIGINS %q: list origins explicitly", v)
			}
			if origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}
	if v := env["AI_DEPTH"]; v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil || depth < 1 || depth > MaxAIDepth {
			return Config{}, fmt.Errorf("invalid AI_DEPTH %q: want 1-%d", v, MaxAIDepth)
		}
		cfg.AIDepth = depth
	}
	if v := env["AI_ALGORITHM"]; v != "" {
		alg, err := engine.ParseAlgorithm(v)
		if err != nil {
			return Config{}, err
		}
		cfg.AIAlgorithm = alg
	}
	if v := env["LOG_LEVEL"]; v != "" {
		if _, err := zerolog.ParseLevel(v); err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL %q: %w", v, err)
		}
		cfg.LogLevel = v
	}
	if v := env["LOG_PRETTY"]; v != "" {
		pretty, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_PRETTY %q", v)
		}
		cfg.LogPretty = pretty
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
