package rest

import (
	"context"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/whoami/internal/model"
	"github.com/maxbolgarin/whoami/internal/model/interfaces"
)

var _ interfaces.EventSource = (*Source)(nil)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	opFetchEvents = "fetch events"

	headerAPIVersion = "X-GitHub-Api-Version"
	headerAccept     = "Accept"
	headerUserAgent  = "User-Agent"
	mediaTypeJSON    = "application/vnd.github+json"
)

// Source reads the public events feed with a plain HTTP client
type Source struct {
	client *cliex.HTTP
	config model.ProviderConfig
	logger logze.Logger
}

// New creates a new REST event source
func New(config model.ProviderConfig) (*Source, error) {
	if config.BaseURL == "" {
		return nil, errm.New("base url is required")
	}
	log := logze.With("provider", "rest", "component", "event_source")

	cli, err := cliex.New(cliex.WithBaseURL(strings.TrimSuffix(config.BaseURL, "/")), cliex.WithLogger(log))
	if err != nil {
		return nil, errm.Wrap(err, "failed to create HTTP client")
	}
	cli.C().SetHeader(headerAccept, mediaTypeJSON)
	if config.UserAgent != "" {
		cli.C().SetHeader(headerUserAgent, config.UserAgent)
	}
	if config.Timeout > 0 {
		cli.C().SetTimeout(config.Timeout)
	}
	if config.APIVersion != "" {
		cli.C().SetHeader(headerAPIVersion, config.APIVersion)
	}

	return &Source{
		client: cli,
		config: config,
		logger: log,
	}, nil
}

// FetchEvents issues a single request for the public events of the user
func (s *Source) FetchEvents(ctx context.Context, user string) ([]model.RawEvent, error) {
	if user == "" {
		return nil, errm.New("user is required")
	}
	apiURL := "users/" + url.PathEscape(user) + "/events/public"

	resp, err := s.client.Get(ctx, apiURL)
	if err != nil {
		return nil, model.NewFetchError(model.KindTransport, opFetchEvents, errm.Wrap(err, "failed to get events"))
	}
	if resp.IsError() {
		return nil, model.NewFetchError(model.KindTransport, opFetchEvents,
			errm.Errorf("unexpected status %d", resp.StatusCode()))
	}

	var events []model.RawEvent
	if err := json.Unmarshal(resp.Body(), &events); err != nil {
		return nil, model.NewFetchError(model.KindDecode, opFetchEvents, errm.Wrap(err, "failed to parse events"))
	}

	s.logger.Debug("fetched events", "user", user, "count", len(events))

	return events, nil
}
