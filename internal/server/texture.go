package server

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"image"
	"image/png"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/whoami/internal/model"
)

var _ model.TextureLoader = TextureLoader{}

// Texture is a bitmap encoded once as PNG and served as is
type Texture struct {
	name string
	size image.Point
	data []byte
	etag string
}

func (t *Texture) Name() string      { return t.name }
func (t *Texture) Size() image.Point { return t.size }

// PNG returns the encoded picture
func (t *Texture) PNG() []byte { return t.data }

// ETag returns a strong entity tag of the encoded picture
func (t *Texture) ETag() string { return t.etag }

// TextureLoader encodes bitmaps to PNG for the HTTP host
type TextureLoader struct{}

// NewTextureLoader creates a loader for the HTTP host
func NewTextureLoader() TextureLoader {
	return TextureLoader{}
}

func (TextureLoader) LoadTexture(name string, img *image.NRGBA) (model.Texture, error) {
	if img == nil {
		return nil, errm.New("image is nil")
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, errm.Wrap(err, "failed to encode png")
	}

	sum := sha256.Sum256(buf.Bytes())

	return &Texture{
		name: name,
		size: img.Bounds().Size(),
		data: buf.Bytes(),
		etag: `"` + hex.EncodeToString(sum[:8]) + `"`,
	}, nil
}
