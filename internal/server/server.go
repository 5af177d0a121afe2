package server

import (
	"bytes"
	"context"
	"net/http"

	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/servex/v2"
	"github.com/maxbolgarin/whoami/internal/model"
	"github.com/maxbolgarin/whoami/internal/model/interfaces"
)

const (
	indexEndpoint  = "/"
	apiEndpoint    = "/api/whoami"
	avatarEndpoint = "/avatar.png"
)

// Server renders the panel over HTTP. Every request is a render pass:
// it reads both slots and never waits for the fetch tasks.
type Server struct {
	panel  interfaces.Panel
	config Config
	log    logze.Logger
	server *servex.Server
}

// New creates a new HTTP host
func New(cfg Config, panel interfaces.Panel) (*Server, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, erro.Wrap(err, "validate config")
	}
	if panel == nil {
		return nil, erro.New("panel is required")
	}

	cert, err := cfg.certificate()
	if err != nil {
		return nil, erro.Wrap(err, "load certificate")
	}

	log := logze.With("module", "server")

	server, err := servex.NewServer(
		servex.WithReadTimeout(cfg.Timeout),
		servex.WithIdleTimeout(cfg.Timeout*2),
		servex.WithLogger(log),
		servex.WithHealthEndpoint(),
		servex.WithDefaultMetrics(),
		servex.WithCertificate(cert),
	)
	if err != nil {
		return nil, erro.Wrap(err, "failed to create server")
	}

	h := &Server{
		panel:  panel,
		config: cfg,
		log:    log,
		server: server,
	}

	server.HandleFunc(apiEndpoint, h.handleWhoami)
	server.HandleFunc(avatarEndpoint, h.handleAvatar)
	server.HandleFunc(indexEndpoint, h.handleIndex)

	return h, nil
}

// Start starts the HTTP server
func (h *Server) Start(ctx context.Context) error {
	h.log.Info("starting server", "address", h.config.Address, "https", h.config.EnableHTTPS)
	if h.config.EnableHTTPS {
		return h.server.StartHTTPS(h.config.Address)
	}
	return h.server.StartHTTP(h.config.Address)
}

// Stop stops the HTTP server
func (h *Server) Stop(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

type whoamiResponse struct {
	Bio     model.Bio    `json:"bio"`
	Avatar  avatarState  `json:"avatar"`
	Commits commitsState `json:"commits"`
}

type avatarState struct {
	State string `json:"state"`
	URL   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`
}

type commitsState struct {
	State string                `json:"state"`
	Total int                   `json:"total,omitempty"`
	Items []model.DisplayCommit `json:"items,omitempty"`
	Error string                `json:"error,omitempty"`
}

// snapshot reads both slots once
func (h *Server) snapshot() whoamiResponse {
	profile := h.panel.Profile().Load()
	feed := h.panel.Commits().Load()

	resp := whoamiResponse{
		Bio:     h.panel.Bio(),
		Avatar:  avatarState{State: profile.State.String(), Error: errorText(profile.Err)},
		Commits: commitsState{State: feed.State.String(), Error: errorText(feed.Err)},
	}
	if profile.Ready() {
		resp.Avatar.URL = avatarEndpoint
	}
	if feed.Ready() {
		resp.Commits.Total = feed.Value.Len()
		resp.Commits.Items = feed.Value.Take(h.config.MaxCommits)
	}

	return resp
}

func (h *Server) handleWhoami(w http.ResponseWriter, r *http.Request) {
	ctx := servex.NewContext(w, r)
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		ctx.MethodNotAllowed()
		return
	}

	ctx.SetHeader("Cache-Control", "no-store")
	ctx.JSON(h.snapshot())
}

func (h *Server) handleAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := servex.NewContext(w, r)
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		ctx.MethodNotAllowed()
		return
	}

	pic := h.panel.Profile().Load()
	tex, ok := pic.Value.Texture.(*Texture)
	if !pic.Ready() || !ok {
		ctx.SetHeader("Retry-After", "1")
		ctx.ServiceUnavailable(pic.Err, "profile picture is not available", "state", pic.State.String())
		return
	}

	if match := ctx.Header("If-None-Match"); match != "" && match == tex.ETag() {
		ctx.RedirectNotModified()
		return
	}

	ctx.SetContentType("image/png")
	ctx.SetHeader("ETag", tex.ETag())
	ctx.Response(http.StatusOK, tex.PNG())
}

func (h *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := servex.NewContext(w, r)
	if r.URL.Path != indexEndpoint {
		ctx.NotFound(nil, "page not found")
		return
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, newPage(h.snapshot())); err != nil {
		ctx.InternalServerError(err, "failed to render page")
		return
	}

	ctx.SetContentType("text/html", "utf-8")
	ctx.SetHeader("Cache-Control", "no-store")
	ctx.Response(http.StatusOK, buf.Bytes())
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
