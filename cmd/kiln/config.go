package main

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/kiln"
	"github.com/dmitrymomot/kiln/pkg/db"
	"github.com/dmitrymomot/kiln/pkg/logger"
)

// ErrLoadConfig is returned when a config source cannot be read or parsed.
var ErrLoadConfig = errors.New("kiln: failed to load configuration")

// noDefaults is a tag name no field carries, so the override pass keeps
// values already set instead of resetting them to their envDefault.
const noDefaults = "envNoDefault"

// Config is the full application configuration.
type Config struct {
	Addr        string `env:"HTTP_ADDR" envDefault:":8080" yaml:"addr"`
	StaticDir   string `env:"STATIC_DIR" yaml:"static_dir"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true" yaml:"auto_migrate"`

	Routing  kiln.RoutingConfig  `yaml:"routing"`
	Database db.Config           `yaml:"database"`
	Log      logger.Config       `yaml:"log"`
	Sentry   logger.SentryConfig `yaml:"sentry"`
}

// loadConfig builds the configuration in three layers: envDefault tags,
// then the YAML file at path (optional), then environ.
func loadConfig(path string, environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}}); err != nil {
		return Config{}, errors.Join(ErrLoadConfig, err)
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Join(ErrLoadConfig, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, errors.Join(ErrLoadConfig, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{
		Environment:         environ,
		DefaultValueTagName: noDefaults,
	}); err != nil {
		return Config{}, errors.Join(ErrLoadConfig, err)
	}
	return cfg, nil
}

// environment returns the process environment merged with the dotenv file at
// envFile. Variables already set in the process win. A missing file is not an error.
func environment(envFile string) (map[string]string, error) {
	environ := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			environ[k] = v
		}
	}
	if envFile == "" {
		return environ, nil
	}

	fileVars, err := godotenv.Read(envFile)
	if errors.Is(err, fs.ErrNotExist) {
		return environ, nil
	}
	if err != nil {
		return nil, errors.Join(ErrLoadConfig, err)
	}
	for k, v := range fileVars {
		if _, set := environ[k]; !set {
			environ[k] = v
		}
	}
	return environ, nil
}
