package github

import (
	"context"
	stdjson "encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v57/github"
	jsoniter "github.com/json-iterator/go"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/whoami/internal/model"
	"github.com/maxbolgarin/whoami/internal/model/interfaces"
)

var (
	_ interfaces.EventSource   = (*Provider)(nil)
	_ interfaces.ProfileSource = (*Provider)(nil)
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	defaultBaseURL = "https://api.github.com"

	headerAPIVersion = "X-GitHub-Api-Version"

	opFetchEvents = "fetch events"
	opAvatarURL   = "resolve avatar url"
)

// Provider reads GitHub data through the go-github SDK
type Provider struct {
	client *github.Client
	config model.ProviderConfig
	logger logze.Logger
}

// New creates a new GitHub provider
func New(config model.ProviderConfig) (*Provider, error) {
	log := logze.With("provider", "github", "component", "provider")

	httpClient := &http.Client{Timeout: config.Timeout}
	if config.APIVersion != "" {
		httpClient.Transport = &versionTransport{version: config.APIVersion, base: http.DefaultTransport}
	}

	client := github.NewClient(httpClient)
	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}

	if config.BaseURL != "" && strings.TrimSuffix(config.BaseURL, "/") != defaultBaseURL {
		baseURL, err := url.Parse(strings.TrimSuffix(config.BaseURL, "/") + "/")
		if err != nil {
			return nil, errm.Wrap(err, "failed to parse base url")
		}
		client.BaseURL = baseURL
	}

	return &Provider{
		client: client,
		config: config,
		logger: log,
	}, nil
}

// FetchEvents returns the first page of public events performed by the user.
// The configured API version header is applied by versionTransport.
func (p *Provider) FetchEvents(ctx context.Context, user string) ([]model.RawEvent, error) {
	if user == "" {
		return nil, errm.New("user is required")
	}

	events, _, err := p.client.Activity.ListEventsPerformedByUser(ctx, user, true, nil)
	if err != nil {
		return nil, classify(opFetchEvents, errm.Wrap(err, "failed to list public events"), err)
	}

	out := make([]model.RawEvent, 0, len(events))
	for _, e := range events {
		ev, err := convertEvent(e)
		if err != nil {
			return nil, model.NewFetchError(model.KindDecode, opFetchEvents, err)
		}
		out = append(out, ev)
	}

	p.logger.Debug("fetched events", "user", user, "count", len(out))

	return out, nil
}

// AvatarURL returns the avatar url from the public profile of the user
func (p *Provider) AvatarURL(ctx context.Context, user string) (string, error) {
	if user == "" {
		return "", errm.New("user is required")
	}

	u, _, err := p.client.Users.Get(ctx, user)
	if err != nil {
		return "", classify(opAvatarURL, errm.Wrap(err, "failed to get user"), err)
	}

	avatarURL := u.GetAvatarURL()
	if avatarURL == "" {
		return "", model.NewFetchError(model.KindDataShape, opAvatarURL, errm.Errorf("user %q has no avatar url", user))
	}

	return avatarURL, nil
}

func convertEvent(e *github.Event) (model.RawEvent, error) {
	ev := model.RawEvent{
		ID:   e.GetID(),
		Type: e.GetType(),
	}
	if e.Repo != nil {
		ev.Repo = model.RawRepo{
			ID:   uint64(e.Repo.GetID()),
			Name: e.Repo.GetName(),
			URL:  e.Repo.GetURL(),
		}
	}

	if e.RawPayload == nil || len(*e.RawPayload) == 0 {
		return ev, nil
	}
	if err := json.Unmarshal(*e.RawPayload, &ev.Payload); err != nil {
		return model.RawEvent{}, errm.Wrap(err, "failed to parse payload of event "+ev.ID)
	}

	return ev, nil
}

// classify maps SDK errors onto fetch error kinds. The SDK returns JSON
// decoding errors of the response body as they are.
func classify(op string, wrapped, err error) error {
	var (
		syntaxErr *stdjson.SyntaxError
		typeErr   *stdjson.UnmarshalTypeError
	)
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return model.NewFetchError(model.KindDecode, op, wrapped)
	}
	return model.NewFetchError(model.KindTransport, op, wrapped)
}

// versionTransport pins the REST API version. The SDK sets its own default
// version header on every request, so it is overwritten here.
type versionTransport struct {
	version string
	base    http.RoundTripper
}

func (t *versionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set(headerAPIVersion, t.version)
	return t.base.RoundTrip(req)
}
