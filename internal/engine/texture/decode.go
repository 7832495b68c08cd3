// Package texture decodes, generates and loads the ground textures.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp" // BMP decoder registration
	"golang.org/x/image/draw"
)

// MaxDimension bounds the width and height of any decoded texture. Larger
// headers are rejected before pixel memory is allocated.
const MaxDimension = 16384

// ErrTooLarge is returned for images wider or taller than MaxDimension.
var ErrTooLarge = errors.New("image too large")

func checkDimensions(w, h int) error {
	if w > MaxDimension || h > MaxDimension {
		return fmt.Errorf("%w: %dx%d exceeds %d", ErrTooLarge, w, h, MaxDimension)
	}
	return nil
}

// Decode decodes PNG, JPEG, BMP or TGA bytes. name is only used as a hint for TGA,
// which has no signature. The returned string is the detected format.
func Decode(data []byte, name string) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("decoding %s: empty data", name)
	}

	mtype := mimetype.Detect(data)
	switch {
	case mtype.Is("image/png"), mtype.Is("image/jpeg"), mtype.Is("image/bmp"):
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, "", fmt.Errorf("decoding %s as %s: %w", name, mtype, err)
		}
		if err := checkDimensions(cfg.Width, cfg.Height); err != nil {
			return nil, "", fmt.Errorf("decoding %s: %w", name, err)
		}
		img, format, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, "", fmt.Errorf("decoding %s as %s: %w", name, mtype, err)
		}
		return img, format, nil

	case strings.EqualFold(filepath.Ext(name), ".tga") || looksLikeTGA(data):
		img, err := DecodeTGA(data)
		if err != nil {
			return nil, "", fmt.Errorf("decoding %s: %w", name, err)
		}
		return img, "tga", nil
	}

	return nil, "", fmt.Errorf("decoding %s: unsupported content type %s", name, mtype)
}

// ToRGBA converts any image to *image.RGBA with its origin at (0,0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	return rgba
}

// Resample scales img to size×size. An image already at that size is only converted.
func Resample(img image.Image, size int) *image.RGBA {
	b := img.Bounds()
	if b.Dx() == size && b.Dy() == size {
		return ToRGBA(img)
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Rect, img, b, draw.Src, nil)
	return dst
}

// Luminance returns the Rec. 709 luma of the pixel at (x, y) in [0,1].
func Luminance(img *image.RGBA, x, y int) float32 {
	i := img.PixOffset(x, y)
	p := img.Pix[i : i+3 : i+3]
	return (0.2126*float32(p[0]) + 0.7152*float32(p[1]) + 0.0722*float32(p[2])) / 255
}
