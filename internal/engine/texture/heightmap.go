package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"go.uber.org/zap"
	"golang.org/x/image/bmp"

	"github.com/Faultbox/nightfield/internal/logger"
)

// ErrUnknownFormat is returned for height map files whose extension names no
// supported image format.
var ErrUnknownFormat = errors.New("unknown image format")

// decoders is keyed by lower-case file extension. The tga package registers
// itself with image.Decode under an empty magic string, so sniffing would
// hand every file to it.
var decoders = map[string]func(io.Reader) (image.Image, error){
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".bmp":  bmp.Decode,
	".tga":  tga.Decode,
}

// HeightMap is a grayscale image sampled as heights in [0, 1].
type HeightMap struct {
	width, height int
	values        []float32
}

// LoadHeightMap decodes a PNG, JPEG, BMP or TGA file into a height map.
func LoadHeightMap(path string) (*HeightMap, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("height map: %s: %w %q", path, ErrUnknownFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("height map: %w", err)
	}
	defer f.Close()

	img, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("height map: decode %s: %w", path, err)
	}
	m := NewHeightMap(img)
	logger.Named("texture").Debug("height map loaded",
		zap.String("path", path),
		zap.String("format", strings.TrimPrefix(ext, ".")),
		zap.Int("width", m.width),
		zap.Int("height", m.height),
	)
	return m, nil
}

// NewHeightMap converts img to luminance heights.
func NewHeightMap(img image.Image) *HeightMap {
	b := img.Bounds()
	m := &HeightMap{
		width:  b.Dx(),
		height: b.Dy(),
		values: make([]float32, b.Dx()*b.Dy()),
	}
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			g := color.Gray16Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
			m.values[y*m.width+x] = float32(g.Y) / 0xffff
		}
	}
	return m
}

// Size returns the source image dimensions.
func (m *HeightMap) Size() (width, height int) {
	return m.width, m.height
}

// Sample returns the bilinearly filtered height at texture coordinates
// (u, v). v runs bottom to top, so v = 1 is the first image row.
// Coordinates outside [0, 1] clamp to the edge.
func (m *HeightMap) Sample(u, v float32) float32 {
	if m.width == 0 || m.height == 0 {
		return 0
	}
	fx := clamp01(u) * float32(m.width-1)
	fy := (1 - clamp01(v)) * float32(m.height-1)

	x0, y0 := int(fx), int(fy)
	x1, y1 := min(x0+1, m.width-1), min(y0+1, m.height-1)
	tx, ty := fx-float32(x0), fy-float32(y0)

	at := func(x, y int) float32 { return m.values[y*m.width+x] }
	top := at(x0, y0)*(1-tx) + at(x1, y0)*tx
	bottom := at(x0, y1)*(1-tx) + at(x1, y1)*tx
	return top*(1-ty) + bottom*ty
}

func clamp01(x float32) float32 {
	return max(0, min(1, x))
}
