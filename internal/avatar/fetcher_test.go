package avatar

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/maxbolgarin/whoami/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type texture struct {
	name string
	size image.Point
}

func (t texture) Name() string      { return t.name }
func (t texture) Size() image.Point { return t.size }

type fakeLoader struct {
	err    error
	loaded []string
}

func (l *fakeLoader) LoadTexture(name string, img *image.NRGBA) (model.Texture, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.loaded = append(l.loaded, name)
	return texture{name: name, size: img.Bounds().Size()}, nil
}

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func serve(t *testing.T, body []byte, status int) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// content type is deliberately wrong, the format must be sniffed
		w.Header().Set("Content-Type", "application/octet-stream")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL + "/u/227873"
}

func newFetcher(t *testing.T) *Fetcher {
	t.Helper()
	f, err := New(Config{})
	require.NoError(t, err)
	return f
}

func TestFetch(t *testing.T) {
	for name, body := range map[string][]byte{
		"png":  encodePNG(t, testImage(300, 200)),
		"jpeg": encodeJPEG(t, testImage(64, 64)),
	} {
		t.Run(name, func(t *testing.T) {
			url := serve(t, body, http.StatusOK)
			loader := &fakeLoader{}

			pic, err := newFetcher(t).Fetch(context.Background(), url, loader)
			require.NoError(t, err)

			require.NotNil(t, pic.Pixels)
			assert.Equal(t, image.Pt(model.AvatarSize, model.AvatarSize), pic.Pixels.Bounds().Size())
			assert.Len(t, pic.Pixels.Pix, model.AvatarSize*model.AvatarSize*4)
			assert.Equal(t, model.ProfileTextureName, pic.Texture.Name())
			assert.Equal(t, image.Pt(120, 120), pic.Texture.Size())
			assert.Equal(t, []string{model.ProfileTextureName}, loader.loaded)
		})
	}
}

func TestFetchDecodeError(t *testing.T) {
	url := serve(t, []byte("definitely not an image"), http.StatusOK)

	_, err := newFetcher(t).Fetch(context.Background(), url, &fakeLoader{})
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.KindDecode))
}

func TestFetchTransportError(t *testing.T) {
	url := serve(t, []byte("gone"), http.StatusNotFound)

	_, err := newFetcher(t).Fetch(context.Background(), url, &fakeLoader{})
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.KindTransport))
}

func TestFetchLoaderError(t *testing.T) {
	url := serve(t, encodePNG(t, testImage(10, 10)), http.StatusOK)

	_, err := newFetcher(t).Fetch(context.Background(), url, &fakeLoader{err: errors.New("no gpu")})
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.KindEncode))
}

func TestFetchArguments(t *testing.T) {
	f := newFetcher(t)

	_, err := f.Fetch(context.Background(), "", &fakeLoader{})
	require.Error(t, err)

	_, err = f.Fetch(context.Background(), "http://localhost", nil)
	require.Error(t, err)
}

func TestThumbnailKeepsOpaqueColors(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 10, 20, 30, 255
	}

	thumb, err := Thumbnail(encodePNG(t, src), model.AvatarSize)
	require.NoError(t, err)

	c := thumb.NRGBAAt(60, 60)
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, c)

	_, err = Thumbnail(nil, model.AvatarSize)
	require.Error(t, err)
}
