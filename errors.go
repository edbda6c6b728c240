package watermark

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceNotFound is returned when the input path does not name a
	// readable regular file.
	ErrSourceNotFound = errors.New("source image not found")

	// ErrMissingAsset matches every *MissingAssetError.
	ErrMissingAsset = errors.New("missing mask asset")
)

// MissingAssetError reports a mask file that does not exist.
type MissingAssetError struct {
	Path string
}

func (e *MissingAssetError) Error() string {
	return fmt.Sprintf("missing mask: %s", e.Path)
}

// Is lets errors.Is(err, ErrMissingAsset) match.
func (e *MissingAssetError) Is(target error) bool {
	return target == ErrMissingAsset
}

// DecodeError wraps a failure to read or decode an image file.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError wraps a failure to encode or write one of the outputs.
type EncodeError struct {
	Path   string
	Format string
	Err    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s %s: %v", e.Format, e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
