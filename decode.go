package watermark

import (
	"image"
	"image/draw"
	"io"
	"os"

	// Register common decoders, including WebP via x/image/webp.
	_ "golang.org/x/image/webp"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Decode reads an image from the reader, returning the decoded image and the
// detected format string ("png", "jpeg", "webp", etc.).
func Decode(r io.Reader) (image.Image, string, error) {
	return image.Decode(r)
}

// DecodeFile opens and decodes path into a mutable NRGBA buffer. Images
// without transparency come back with alpha 255 everywhere.
func DecodeFile(path string) (*image.NRGBA, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	img, format, err := Decode(f)
	if err != nil {
		return nil, "", &DecodeError{Path: path, Err: err}
	}

	return ToNRGBA(img), format, nil
}

// ToNRGBA copies the image into a new NRGBA buffer whose bounds start at the
// origin.
func ToNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	// Copy NRGBA rows directly; a round trip through premultiplied colour
	// would alter the RGB of translucent pixels.
	if n, ok := src.(*image.NRGBA); ok {
		rowLen := bounds.Dx() * 4
		for y := 0; y < bounds.Dy(); y++ {
			srcOff := n.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+rowLen], n.Pix[srcOff:srcOff+rowLen])
		}
		return dst
	}

	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
	return dst
}
