// Package avatar downloads the profile picture and prepares it for rendering.
package avatar

import (
	"bytes"
	"context"
	"image"
	"time"

	"github.com/disintegration/imaging"
	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/whoami/internal/model"
	"github.com/maxbolgarin/whoami/internal/model/interfaces"

	_ "golang.org/x/image/webp"
)

var _ interfaces.AvatarFetcher = (*Fetcher)(nil)

const (
	opFetchAvatar = "fetch avatar"

	defaultUserAgent = "whoami/0.1.0 (https://github.com/maxbolgarin/whoami)"
)

// Config represents avatar configuration
type Config struct {
	URL       string        `yaml:"url" env:"AVATAR_URL"`
	UserAgent string        `yaml:"user_agent" env:"AVATAR_USER_AGENT"`
	Timeout   time.Duration `yaml:"timeout" env:"AVATAR_TIMEOUT"`
}

func (c *Config) PrepareAndValidate() error {
	c.UserAgent = lang.Check(c.UserAgent, defaultUserAgent)
	return nil
}

// Fetcher downloads, decodes and resizes profile pictures
type Fetcher struct {
	client *cliex.HTTP
	size   int
	log    logze.Logger
}

// New creates a new avatar fetcher
func New(cfg Config) (*Fetcher, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "validate config")
	}

	log := logze.With("component", "avatar")

	cli, err := cliex.New(cliex.WithLogger(log))
	if err != nil {
		return nil, errm.Wrap(err, "failed to create HTTP client")
	}
	cli.C().SetHeader("User-Agent", cfg.UserAgent)
	if cfg.Timeout > 0 {
		cli.C().SetTimeout(cfg.Timeout)
	}

	return &Fetcher{
		client: cli,
		size:   model.AvatarSize,
		log:    log,
	}, nil
}

// Fetch downloads the picture at url, resizes it to a square thumbnail with
// a Lanczos filter and loads it through loader. The image format is sniffed
// from the content.
func (f *Fetcher) Fetch(ctx context.Context, url string, loader model.TextureLoader) (model.ProfileImage, error) {
	if url == "" {
		return model.ProfileImage{}, errm.New("avatar url is required")
	}
	if loader == nil {
		return model.ProfileImage{}, errm.New("texture loader is required")
	}

	resp, err := f.client.Get(ctx, url)
	if err != nil {
		return model.ProfileImage{}, model.NewFetchError(model.KindTransport, opFetchAvatar, errm.Wrap(err, "failed to download"))
	}
	if resp.IsError() {
		return model.ProfileImage{}, model.NewFetchError(model.KindTransport, opFetchAvatar,
			errm.Errorf("unexpected status %d", resp.StatusCode()))
	}

	pixels, err := Thumbnail(resp.Body(), f.size)
	if err != nil {
		return model.ProfileImage{}, model.NewFetchError(model.KindDecode, opFetchAvatar, err)
	}

	tex, err := loader.LoadTexture(model.ProfileTextureName, pixels)
	if err != nil {
		return model.ProfileImage{}, model.NewFetchError(model.KindEncode, opFetchAvatar, errm.Wrap(err, "failed to load texture"))
	}

	f.log.Debug("avatar loaded", "url", url, "bytes", len(resp.Body()), "size", tex.Size().String())

	return model.ProfileImage{Texture: tex, Pixels: pixels}, nil
}

// Thumbnail decodes raw image bytes and resizes them to exactly size x size.
// The result holds non-premultiplied RGBA8 pixels.
func Thumbnail(raw []byte, size int) (*image.NRGBA, error) {
	if len(raw) == 0 {
		return nil, errm.New("empty image")
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errm.Wrap(err, "failed to decode image")
	}

	return imaging.Resize(img, size, size, imaging.Lanczos), nil
}
