package app

import (
	"context"
	"sync/atomic"

	"github.com/maxbolgarin/abstract"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/whoami/internal/avatar"
	"github.com/maxbolgarin/whoami/internal/commits"
	"github.com/maxbolgarin/whoami/internal/config"
	"github.com/maxbolgarin/whoami/internal/model"
	"github.com/maxbolgarin/whoami/internal/model/interfaces"
	"github.com/maxbolgarin/whoami/internal/provider"
	"github.com/maxbolgarin/whoami/internal/slot"
	"github.com/panjf2000/ants/v2"
)

var _ interfaces.Panel = (*Whoami)(nil)

// one worker per fetch task
const poolSize = 2

// Whoami owns the two result slots and the background tasks that fill them
type Whoami struct {
	events   interfaces.EventSource
	profiles interfaces.ProfileSource
	avatars  interfaces.AvatarFetcher
	loader   model.TextureLoader
	pool     *ants.Pool
	started  atomic.Bool

	profile *slot.Slot[model.ProfileImage]
	commits *slot.Slot[model.CommitFeed]

	cfg config.Config
	log logze.Logger
}

// New creates the panel state. loader is provided by the presentation host
// and turns the profile picture into something it can draw.
func New(cfg config.Config, loader model.TextureLoader) (*Whoami, error) {
	w := &Whoami{
		loader:  loader,
		profile: slot.New[model.ProfileImage](),
		commits: slot.New[model.CommitFeed](),
		cfg:     cfg,
		log:     logze.With("component", "app"),
	}

	if err := w.init(); err != nil {
		return nil, errm.Wrap(err, "failed to initialize app")
	}

	return w, nil
}

func (w *Whoami) init() (err error) {
	if err := w.cfg.PrepareAndValidate(); err != nil {
		return errm.Wrap(err, "validate config")
	}

	w.events, err = provider.NewEventSource(w.cfg.Provider)
	if err != nil {
		return errm.Wrap(err, "failed to create event source")
	}

	w.profiles, err = provider.NewProfileSource(w.cfg.Provider)
	if err != nil {
		return errm.Wrap(err, "failed to create profile source")
	}

	w.avatars, err = avatar.New(w.cfg.Avatar)
	if err != nil {
		return errm.Wrap(err, "failed to create avatar fetcher")
	}

	w.pool, err = ants.NewPool(poolSize, ants.WithNonblocking(true))
	if err != nil {
		return errm.Wrap(err, "failed to create ants pool")
	}

	return nil
}

// Start launches both fetch tasks and returns without waiting for them.
// It may be called only once.
func (w *Whoami) Start(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return errm.New("already started")
	}

	if w.loader == nil {
		w.log.Warn("no texture loader, profile picture is skipped")
	} else if err := w.pool.Submit(func() { w.loadProfile(ctx) }); err != nil {
		return errm.Wrap(err, "failed to submit profile task")
	}

	if err := w.pool.Submit(func() { w.loadCommits(ctx) }); err != nil {
		return errm.Wrap(err, "failed to submit commits task")
	}

	w.log.Info("fetch tasks started", "user", w.cfg.Provider.User)

	return nil
}

// Close releases the worker pool. Running tasks are not interrupted.
func (w *Whoami) Close() {
	w.pool.Release()
}

// Bio returns the static part of the panel
func (w *Whoami) Bio() model.Bio {
	return w.cfg.Bio
}

// Profile returns the profile picture slot
func (w *Whoami) Profile() slot.Reader[model.ProfileImage] {
	return w.profile
}

// Commits returns the commit feed slot
func (w *Whoami) Commits() slot.Reader[model.CommitFeed] {
	return w.commits
}

// FetchCommits fetches the events feed and normalizes it in place
func (w *Whoami) FetchCommits(ctx context.Context) (model.CommitFeed, error) {
	events, err := w.events.FetchEvents(ctx, w.cfg.Provider.User)
	if err != nil {
		return model.CommitFeed{}, errm.Wrap(err, "failed to fetch events")
	}

	feed, err := commits.NormalizeForHost(events, w.cfg.Provider.WebHost)
	if err != nil {
		return model.CommitFeed{}, errm.Wrap(err, "failed to normalize events")
	}

	return feed, nil
}

// FetchProfile resolves the avatar url if it is not configured and loads the picture
func (w *Whoami) FetchProfile(ctx context.Context) (model.ProfileImage, error) {
	avatarURL := w.cfg.Avatar.URL
	if avatarURL == "" {
		var err error
		avatarURL, err = w.profiles.AvatarURL(ctx, w.cfg.Provider.User)
		if err != nil {
			return model.ProfileImage{}, errm.Wrap(err, "failed to resolve avatar url")
		}
	}

	pic, err := w.avatars.Fetch(ctx, avatarURL, w.loader)
	if err != nil {
		return model.ProfileImage{}, errm.Wrap(err, "failed to fetch avatar")
	}

	return pic, nil
}

func (w *Whoami) loadCommits(ctx context.Context) {
	timer := abstract.StartTimer()
	w.log.Info("fetching latest commits...")

	feed, err := w.FetchCommits(ctx)
	if err != nil {
		w.log.Error("cannot load commits", "error", err, "elapsed", timer.ElapsedTime().String())
		w.commits.Fail(err)
		return
	}

	w.commits.Set(feed)
	w.log.Info("commits loaded", "count", feed.Len(), "elapsed", timer.ElapsedTime().String())
}

func (w *Whoami) loadProfile(ctx context.Context) {
	timer := abstract.StartTimer()
	w.log.Info("fetching profile picture...")

	pic, err := w.FetchProfile(ctx)
	if err != nil {
		w.log.Error("cannot load profile picture", "error", err, "elapsed", timer.ElapsedTime().String())
		w.profile.Fail(err)
		return
	}

	w.profile.Set(pic)
	w.log.Info("profile picture loaded", "elapsed", timer.ElapsedTime().String())
}
