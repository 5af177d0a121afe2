package model

import "image"

const (
	// AvatarSize is the side of the square profile picture in pixels
	AvatarSize = 120
	// ProfileTextureName is the name the profile picture is loaded under
	ProfileTextureName = "profile_pic"
)

// Texture is a renderer specific handle of a loaded bitmap
type Texture interface {
	Name() string
	Size() image.Point
}

// TextureLoader converts a decoded bitmap into a renderer handle.
// Every presentation host provides its own implementation.
type TextureLoader interface {
	LoadTexture(name string, img *image.NRGBA) (Texture, error)
}

// ProfileImage is the resized profile picture together with its handle
type ProfileImage struct {
	Texture Texture
	Pixels  *image.NRGBA
}
