package provider

import (
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/whoami/internal/model/interfaces"
	"github.com/maxbolgarin/whoami/internal/provider/github"
	"github.com/maxbolgarin/whoami/internal/provider/rest"
)

// NewEventSource creates an event source based on the configuration
func NewEventSource(cfg Config) (interfaces.EventSource, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, erro.Wrap(err, "validate config")
	}

	var (
		source interfaces.EventSource
		err    error
	)

	switch cfg.Type {
	case REST:
		source, err = rest.New(cfg.model())
	case SDK:
		source, err = github.New(cfg.model())
	default:
		return nil, erro.New("unsupported provider type: %s", cfg.Type)
	}
	if err != nil {
		return nil, erro.Wrap(err, "failed to create event source")
	}

	return source, nil
}

// NewProfileSource creates a source of public profile data.
// It always uses the SDK client regardless of the configured event source type.
func NewProfileSource(cfg Config) (interfaces.ProfileSource, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, erro.Wrap(err, "validate config")
	}

	source, err := github.New(cfg.model())
	if err != nil {
		return nil, erro.Wrap(err, "failed to create profile source")
	}

	return source, nil
}
