package interfaces

import (
	"context"

	"github.com/maxbolgarin/whoami/internal/model"
	"github.com/maxbolgarin/whoami/internal/slot"
)

// EventSource fetches the public events feed of an account
type EventSource interface {
	FetchEvents(ctx context.Context, user string) ([]model.RawEvent, error)
}

// ProfileSource looks up public profile data of an account
type ProfileSource interface {
	AvatarURL(ctx context.Context, user string) (string, error)
}

// AvatarFetcher downloads a picture and turns it into a loaded texture
type AvatarFetcher interface {
	Fetch(ctx context.Context, url string, loader model.TextureLoader) (model.ProfileImage, error)
}

// Panel is what presentation hosts read on every render pass.
// Slots start empty and are written once by background fetch tasks.
type Panel interface {
	Bio() model.Bio
	Profile() slot.Reader[model.ProfileImage]
	Commits() slot.Reader[model.CommitFeed]
}
