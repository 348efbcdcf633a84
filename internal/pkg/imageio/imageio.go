// Package imageio turns uploaded bytes into working bitmaps and bitmaps back into PNG bytes.
package imageio

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sync/atomic"

	"github.com/disintegration/imaging"
	"github.com/ds124wfegd/adstudio/internal/entity"

	_ "golang.org/x/image/webp"
)

// Working resolution handed to the generator.
const (
	BaseWidth  = 768
	BaseHeight = 512
)

// DefaultMaxPixels caps width*height of a decoded image, about 89 megapixels.
const DefaultMaxPixels = 89_478_485

var maxPixels atomic.Int64

// SetMaxPixels changes the decode cap. Zero or negative restores DefaultMaxPixels.
func SetMaxPixels(n int64) {
	maxPixels.Store(n)
}

func MaxPixels() int64 {
	if n := maxPixels.Load(); n > 0 {
		return n
	}
	return DefaultMaxPixels
}

// DecodeError reports bytes that are not a supported image encoding.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %v", entity.ErrDecode, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{entity.ErrDecode, e.Err}
}

// Decode keeps the source color model, alpha included. The header is checked against
// MaxPixels before any pixel buffer is allocated.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, &DecodeError{Err: fmt.Errorf("empty payload")}
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels() {
		return nil, &DecodeError{Err: fmt.Errorf("image is %dx%d, limit is %d pixels", cfg.Width, cfg.Height, MaxPixels())}
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return img, nil
}

// ToRGB drops the alpha channel: color channels are kept as stored and every pixel becomes opaque.
func ToRGB(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}

// PrepareBase decodes an upload, forces RGB and stretches it to BaseWidth x BaseHeight.
func PrepareBase(data []byte) (*image.NRGBA, error) {
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return imaging.Resize(ToRGB(img), BaseWidth, BaseHeight, imaging.Lanczos), nil
}

func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
