package watermark

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"os"
	"sync"

	"github.com/disintegration/gift"
)

// AlphaMap is a square, row-major grid of watermark opacities in [0, 1].
type AlphaMap struct {
	size   int
	values []float64
}

// Size returns the side length of the map.
func (m *AlphaMap) Size() int { return m.size }

// At returns the opacity at the given mask row and column.
func (m *AlphaMap) At(row, col int) float64 {
	return m.values[row*m.size+col]
}

// Values returns a copy of the row-major opacities.
func (m *AlphaMap) Values() []float64 {
	out := make([]float64, len(m.values))
	copy(out, m.values)
	return out
}

// LoadAlphaMap reads the mask image at maskPath and converts it into a
// size x size alpha map. A missing file yields a *MissingAssetError.
func LoadAlphaMap(maskPath string, size int) (*AlphaMap, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid mask size %d", size)
	}

	if _, err := os.Stat(maskPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingAssetError{Path: maskPath}
		}
		return nil, &DecodeError{Path: maskPath, Err: err}
	}

	f, err := os.Open(maskPath)
	if err != nil {
		return nil, &DecodeError{Path: maskPath, Err: err}
	}
	defer f.Close()

	img, _, err := Decode(f)
	if err != nil {
		return nil, &DecodeError{Path: maskPath, Err: err}
	}

	return AlphaMapFromImage(img, size), nil
}

// AlphaMapFromImage derives an alpha map from an already decoded mask. The
// mask's own transparency is discarded, it is resized to size x size with
// nearest-neighbour sampling when needed, and each pixel's brightest channel
// becomes its opacity.
func AlphaMapFromImage(img image.Image, size int) *AlphaMap {
	rgb := opaqueCopy(img)

	if b := rgb.Bounds(); b.Dx() != size || b.Dy() != size {
		g := gift.New(gift.Resize(size, size, gift.NearestNeighborResampling))
		resized := image.NewNRGBA(g.Bounds(rgb.Bounds()))
		g.Draw(resized, rgb)
		rgb = resized
	}

	return &AlphaMap{size: size, values: calculateAlphaMap(rgb)}
}

// opaqueCopy keeps each pixel's non-premultiplied RGB and forces alpha to 255.
func opaqueCopy(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			c.A = 255
			dst.SetNRGBA(x-bounds.Min.X, y-bounds.Min.Y, c)
		}
	}

	return dst
}

// calculateAlphaMap extracts the maximum RGB channel per pixel and scales it
// to [0, 1].
func calculateAlphaMap(img *image.NRGBA) []float64 {
	bounds := img.Bounds()
	alpha := make([]float64, 0, bounds.Dx()*bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			alpha = append(alpha, float64(max(c.R, c.G, c.B))/255.0)
		}
	}

	return alpha
}

type maskKey struct {
	path string
	size int
}

// MaskCache memoises alpha maps per (path, size). Failed loads are not
// cached, so a mask that appears later is picked up on the next call.
type MaskCache struct {
	mu   sync.Mutex
	maps map[maskKey]*AlphaMap
}

// NewMaskCache returns an empty cache.
func NewMaskCache() *MaskCache {
	return &MaskCache{maps: make(map[maskKey]*AlphaMap)}
}

// Load returns the cached map for (maskPath, size), loading it on first use.
func (c *MaskCache) Load(maskPath string, size int) (*AlphaMap, error) {
	key := maskKey{path: maskPath, size: size}

	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.maps[key]; ok {
		return m, nil
	}

	m, err := LoadAlphaMap(maskPath, size)
	if err != nil {
		return nil, err
	}
	c.maps[key] = m
	return m, nil
}

// Len reports how many maps are cached.
func (c *MaskCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.maps)
}
