package provider

import (
	"slices"
	"strings"
	"time"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/whoami/internal/model"
)

type ProviderType string

// SupportedProviderTypes defines the supported event source backends
const (
	REST ProviderType = "rest"
	SDK  ProviderType = "sdk"
)

var supportedProviderTypes = []ProviderType{REST, SDK}

const (
	defaultBaseURL    = "https://api.github.com"
	defaultAPIVersion = "2022-11-28"
	defaultUserAgent  = "whoami/0.1.0 (https://github.com/maxbolgarin/whoami)"
)

// Config represents GitHub provider configuration
type Config struct {
	Type       ProviderType  `yaml:"type" env:"PROVIDER_TYPE"`
	BaseURL    string        `yaml:"base_url" env:"PROVIDER_BASE_URL"`
	WebHost    string        `yaml:"web_host" env:"PROVIDER_WEB_HOST"`
	APIVersion string        `yaml:"api_version" env:"PROVIDER_API_VERSION"`
	User       string        `yaml:"user" env:"PROVIDER_USER"`
	UserAgent  string        `yaml:"user_agent" env:"PROVIDER_USER_AGENT"`
	Timeout    time.Duration `yaml:"timeout" env:"PROVIDER_TIMEOUT"`
}

func (c *Config) PrepareAndValidate() error {
	c.Type = lang.Check(c.Type, REST)
	if !slices.Contains(supportedProviderTypes, c.Type) {
		return errm.New("invalid provider type: %s", c.Type)
	}
	if c.User == "" {
		return errm.New("user is required")
	}

	c.BaseURL = strings.TrimSuffix(lang.Check(c.BaseURL, defaultBaseURL), "/")
	c.WebHost = lang.Check(c.WebHost, model.WebHost)
	c.APIVersion = lang.Check(c.APIVersion, defaultAPIVersion)
	c.UserAgent = lang.Check(c.UserAgent, defaultUserAgent)

	return nil
}

func (c Config) model() model.ProviderConfig {
	return model.ProviderConfig{
		BaseURL:    c.BaseURL,
		APIVersion: c.APIVersion,
		UserAgent:  c.UserAgent,
		Timeout:    c.Timeout,
	}
}
