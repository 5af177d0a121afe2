package config

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/whoami/internal/avatar"
	"github.com/maxbolgarin/whoami/internal/model"
	"github.com/maxbolgarin/whoami/internal/provider"
	"github.com/maxbolgarin/whoami/internal/server"
	"github.com/maxbolgarin/whoami/internal/term"
)

const defaultLogLevel = "info"

// Config represents the main application configuration
type Config struct {
	Log      LogConfig       `yaml:"log"`
	Provider provider.Config `yaml:"provider"`
	Avatar   avatar.Config   `yaml:"avatar"`
	Bio      model.Bio       `yaml:"bio"`
	Server   server.Config   `yaml:"server"`
	Term     term.Config     `yaml:"term"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

// Load reads configuration from the YAML file at path, then applies environment
// overrides. An empty path reads the environment only.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, errm.Wrap(err, "failed to read config file")
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, errm.Wrap(err, "failed to read config from env")
		}
	}

	if err := cfg.PrepareAndValidate(); err != nil {
		return Config{}, errm.Wrap(err, "invalid config")
	}

	return cfg, nil
}

// PrepareAndValidate sets defaults and validates every section
func (c *Config) PrepareAndValidate() error {
	c.Log.Level = lang.Check(c.Log.Level, defaultLogLevel)

	if err := c.Provider.PrepareAndValidate(); err != nil {
		return errm.Wrap(err, "provider")
	}
	if err := c.Avatar.PrepareAndValidate(); err != nil {
		return errm.Wrap(err, "avatar")
	}
	if err := c.Server.PrepareAndValidate(); err != nil {
		return errm.Wrap(err, "server")
	}
	if err := c.Term.PrepareAndValidate(); err != nil {
		return errm.Wrap(err, "term")
	}

	c.Bio.Name = lang.Check(c.Bio.Name, c.Provider.User)
	c.Bio.GitHub = lang.Check(c.Bio.GitHub, c.Provider.WebHost+"/"+c.Provider.User)

	return nil
}
