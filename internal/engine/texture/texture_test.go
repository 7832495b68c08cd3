package texture

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
)

// tgaHeader builds an 18-byte TGA header.
func tgaHeader(imageType byte, w, h int, bpp byte, topToBottom bool) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	if topToBottom {
		hdr[17] = 0x20
	}
	return hdr
}

func TestDecodeTGARaw(t *testing.T) {
	// 2x1, bottom-up, 24 bpp: BGR pixels red then green.
	data := append(tgaHeader(TGATypeUncompressed, 2, 1, 24, false),
		0, 0, 255,
		0, 255, 0,
	)
	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("pixel 0 = %v, want red", got)
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("pixel 1 = %v, want green", got)
	}
}

func TestDecodeTGAOrientation(t *testing.T) {
	// 1x2, 32 bpp. The first stored row is the bottom row unless the top-to-bottom bit is set.
	pixels := []byte{
		255, 0, 0, 255, // blue
		0, 0, 255, 128, // red, half alpha
	}
	bottomUp, err := DecodeTGA(append(tgaHeader(TGATypeUncompressed, 1, 2, 32, false), pixels...))
	if err != nil {
		t.Fatal(err)
	}
	if got := bottomUp.RGBAAt(0, 1); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("bottom-up row 1 = %v, want blue", got)
	}

	topDown, err := DecodeTGA(append(tgaHeader(TGATypeUncompressed, 1, 2, 32, true), pixels...))
	if err != nil {
		t.Fatal(err)
	}
	if got := topDown.RGBAAt(0, 1); got != (color.RGBA{255, 0, 0, 128}) {
		t.Errorf("top-down row 1 = %v, want translucent red", got)
	}
}

func TestDecodeTGARLE(t *testing.T) {
	// 4x1 top-down: a run of 3 white pixels then one raw black pixel.
	data := append(tgaHeader(TGATypeRLE, 4, 1, 24, true),
		0x82, 255, 255, 255,
		0x00, 0, 0, 0,
	)
	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}
	for x := 0; x < 3; x++ {
		if got := img.RGBAAt(x, 0); got != (color.RGBA{255, 255, 255, 255}) {
			t.Errorf("pixel %d = %v, want white", x, got)
		}
	}
	if got := img.RGBAAt(3, 0); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("pixel 3 = %v, want black", got)
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short", []byte{0, 0, 2}},
		{"color mapped", func() []byte { h := tgaHeader(1, 1, 1, 24, false); h[1] = 1; return h }()},
		{"grayscale type", tgaHeader(3, 1, 1, 8, false)},
		{"16 bpp", tgaHeader(TGATypeUncompressed, 1, 1, 16, false)},
		{"empty", tgaHeader(TGATypeUncompressed, 0, 0, 24, false)},
		{"truncated pixels", append(tgaHeader(TGATypeUncompressed, 2, 2, 24, false), 1, 2, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 60), uint8(y * 60), 100, 255})
		}
	}
	return img
}

func TestDecodeFormats(t *testing.T) {
	src := testImage()
	var pngBuf, jpgBuf, bmpBuf bytes.Buffer
	if err := png.Encode(&pngBuf, src); err != nil {
		t.Fatal(err)
	}
	if err := jpeg.Encode(&jpgBuf, src, nil); err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(&bmpBuf, src); err != nil {
		t.Fatal(err)
	}
	tga := append(tgaHeader(TGATypeUncompressed, 1, 1, 24, false), 1, 2, 3)

	tests := []struct {
		name   string
		data   []byte
		format string
	}{
		{"a.png", pngBuf.Bytes(), "png"},
		{"a.jpg", jpgBuf.Bytes(), "jpeg"},
		{"a.bmp", bmpBuf.Bytes(), "bmp"},
		{"a.tga", tga, "tga"},
		{"no-extension", tga, "tga"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, format, err := Decode(tt.data, tt.name)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if format != tt.format {
				t.Errorf("format = %q, want %q", format, tt.format)
			}
			if img.Bounds().Empty() {
				t.Error("decoded image is empty")
			}
		})
	}
}

func TestDecodeRejectsNonImages(t *testing.T) {
	for _, data := range [][]byte{
		nil,
		[]byte("<html><body>404 not found</body></html>"),
		[]byte("%PDF-1.4 not a texture"),
	} {
		if _, _, err := Decode(data, "sand_color.png"); err == nil {
			t.Errorf("Decode(%q) succeeded, want error", data)
		}
	}
}

func TestResample(t *testing.T) {
	src := testImage()
	if got := Resample(src, 4); got != src {
		t.Error("same-size resample should return the input")
	}

	out := Resample(src, 16)
	if out.Rect != image.Rect(0, 0, 16, 16) {
		t.Errorf("rect = %v, want 16x16", out.Rect)
	}

	offset := src.SubImage(image.Rect(1, 1, 3, 3))
	conv := ToRGBA(offset)
	if conv.Rect.Min != (image.Point{}) || conv.Rect.Dx() != 2 {
		t.Errorf("ToRGBA rect = %v, want origin-based 2x2", conv.Rect)
	}
	if conv.RGBAAt(0, 0) != src.RGBAAt(1, 1) {
		t.Error("ToRGBA did not keep pixel positions")
	}
}

func TestDecodeRejectsHugeDimensions(t *testing.T) {
	tga := append(tgaHeader(TGATypeRLE, 65535, 65535, 32, false), 0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatal(err)
	}
	// Rewrite the IHDR width and its CRC.
	huge := buf.Bytes()
	binary.BigEndian.PutUint32(huge[16:20], MaxDimension+1)
	binary.BigEndian.PutUint32(huge[29:33], crc32.ChecksumIEEE(huge[12:29]))

	if _, err := DecodeTGA(tga); !errors.Is(err, ErrTooLarge) {
		t.Errorf("DecodeTGA() error = %v, want ErrTooLarge", err)
	}
	tests := []struct {
		name string
		data []byte
	}{
		{"huge.tga", tga},
		{"huge.png", huge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Decode(tt.data, tt.name); !errors.Is(err, ErrTooLarge) {
				t.Errorf("Decode() error = %v, want ErrTooLarge", err)
			}
		})
	}
}
