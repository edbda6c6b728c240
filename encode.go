package watermark

import (
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
)

// JPEGQuality is the fixed quality of the flattened JPEG output.
const JPEGQuality = 95

// EncodePNG writes the provided image to the writer as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// EncodeJPEG flattens img onto white and writes it as JPEG at JPEGQuality.
func EncodeJPEG(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, FlattenOnWhite(img), &jpeg.Options{Quality: JPEGQuality})
}

// FlattenOnWhite composites img over an opaque white background using the
// image's own alpha channel.
func FlattenOnWhite(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, bounds, img, bounds.Min, draw.Over)
	return dst
}

// SaveDual writes base+".png" and then base+".jpg". A failure on the JPEG
// leaves the PNG in place. Each successful write is reported through sink.
func SaveDual(img image.Image, base string, sink LogSink) (pngPath, jpgPath string, err error) {
	pngPath = base + ".png"
	if err := writeFile(pngPath, "png", img, EncodePNG); err != nil {
		return "", "", err
	}
	sink.emit(SavedPNGPrefix + filepath.Base(pngPath))

	jpgPath = base + ".jpg"
	if err := writeFile(jpgPath, "jpeg", img, EncodeJPEG); err != nil {
		return pngPath, "", err
	}
	sink.emit(SavedJPGPrefix + filepath.Base(jpgPath))

	return pngPath, jpgPath, nil
}

func writeFile(path, format string, img image.Image, encode func(io.Writer, image.Image) error) error {
	f, err := os.Create(path)
	if err != nil {
		return &EncodeError{Path: path, Format: format, Err: err}
	}

	if err := encode(f, img); err != nil {
		f.Close()
		return &EncodeError{Path: path, Format: format, Err: err}
	}

	if err := f.Close(); err != nil {
		return &EncodeError{Path: path, Format: format, Err: err}
	}
	return nil
}
