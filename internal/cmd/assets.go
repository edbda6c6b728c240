package cmd

import (
	"image"
	"os"
	"path/filepath"

	watermark "github.com/gcslaoli/watermark-unblend"
)

// resolveResourceRoot picks the directory that holds assets/. An explicit
// setting wins; otherwise the executable's directory is used when it ships
// the large mask, falling back to the working directory.
func resolveResourceRoot(configured string) string {
	if configured != "" {
		return configured
	}

	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		if _, err := os.Stat(watermark.DirLocator(dir).MaskPath(96)); err == nil {
			return dir
		}
	}

	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// assetStatus is the check result for one mask.
type assetStatus struct {
	Size   int
	Path   string
	Native image.Point
	Err    error
}

// Resized reports whether the mask's native size differs from its logo size.
func (s assetStatus) Resized() bool {
	return s.Err == nil && (s.Native.X != s.Size || s.Native.Y != s.Size)
}

// checkAssets loads every supported mask at its exact size.
func checkAssets(locator watermark.MaskLocator) []assetStatus {
	sizes := watermark.SupportedLogoSizes()
	out := make([]assetStatus, 0, len(sizes))
	for _, size := range sizes {
		status := assetStatus{Size: size, Path: locator.MaskPath(size)}
		if _, status.Err = watermark.LoadAlphaMap(status.Path, size); status.Err == nil {
			status.Native, status.Err = maskDimensions(status.Path)
		}
		out = append(out, status)
	}
	return out
}

func maskDimensions(path string) (image.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Point{}, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return image.Point{}, err
	}
	return image.Pt(cfg.Width, cfg.Height), nil
}
