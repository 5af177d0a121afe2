package term

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/whoami/internal/model"
)

var _ model.TextureLoader = TextureLoader{}

const halfBlock = "▀"

// Texture is a bitmap rendered as colored half blocks, two pixel rows per line
type Texture struct {
	name  string
	size  image.Point
	lines []string
}

func (t *Texture) Name() string      { return t.name }
func (t *Texture) Size() image.Point { return t.size }

// Lines returns the rendered rows
func (t *Texture) Lines() []string { return t.lines }

// String returns the rendered picture
func (t *Texture) String() string { return strings.Join(t.lines, "\n") }

// TextureLoader downsamples bitmaps to a fixed number of terminal columns
type TextureLoader struct {
	Columns int
}

// NewTextureLoader creates a loader rendering pictures columns cells wide
func NewTextureLoader(columns int) TextureLoader {
	if columns <= 0 {
		columns = defaultAvatarColumns
	}
	return TextureLoader{Columns: columns}
}

func (l TextureLoader) LoadTexture(name string, img *image.NRGBA) (model.Texture, error) {
	if img == nil {
		return nil, errm.New("image is nil")
	}
	size := img.Bounds().Size()
	if size.X == 0 || size.Y == 0 {
		return nil, errm.New("image is empty")
	}

	cols := l.Columns
	if cols <= 0 {
		cols = defaultAvatarColumns
	}
	rows := cols * size.Y / size.X
	if rows%2 == 1 {
		rows++
	}
	if rows == 0 {
		rows = 2
	}

	small := imaging.Resize(img, cols, rows, imaging.Lanczos)

	lines := make([]string, 0, rows/2)
	for y := 0; y < rows; y += 2 {
		var b strings.Builder
		for x := 0; x < cols; x++ {
			top := small.NRGBAAt(x, y)
			bottom := small.NRGBAAt(x, y+1)
			b.WriteString(lipgloss.NewStyle().
				Foreground(hexColor(top)).
				Background(hexColor(bottom)).
				Render(halfBlock))
		}
		lines = append(lines, b.String())
	}

	return &Texture{name: name, size: size, lines: lines}, nil
}

func hexColor(c color.NRGBA) lipgloss.Color {
	const hex = "0123456789abcdef"
	buf := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{c.R, c.G, c.B} {
		buf[1+i*2] = hex[v>>4]
		buf[2+i*2] = hex[v&0x0f]
	}
	return lipgloss.Color(buf)
}
