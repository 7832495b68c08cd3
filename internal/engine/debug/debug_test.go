package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFlipRows(t *testing.T) {
	// 1x2: bottom row red, top row blue.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img := FlipRows(pixels, 1, 2)

	if got := img.RGBAAt(0, 0); got.B != 255 || got.R != 0 {
		t.Errorf("top pixel = %v, want blue", got)
	}
	if got := img.RGBAAt(0, 1); got.R != 255 || got.B != 0 {
		t.Errorf("bottom pixel = %v, want red", got)
	}
}

func TestCaptureFromPixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	s := NewScreenshotter(dir, "skyrig")
	s.now = func() time.Time { return time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC) }

	pixels := make([]byte, 4*3*4)
	for i := range pixels {
		pixels[i] = 200
	}
	path, err := s.CaptureFromPixels(pixels, 4, 3)
	if err != nil {
		t.Fatalf("CaptureFromPixels: %v", err)
	}
	if want := filepath.Join(dir, "skyrig_2024-03-01_12-30-00.000.png"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("size = %dx%d, want 4x3", b.Dx(), b.Dy())
	}
}

func TestCaptureFromPixelsErrors(t *testing.T) {
	s := NewScreenshotter(t.TempDir(), "")

	tests := []struct {
		name          string
		n, w, h       int
		wantSubstring string
	}{
		{"short buffer", 10, 2, 2, "mismatch"},
		{"zero width", 0, 0, 2, "invalid size"},
		{"negative height", 0, 2, -1, "invalid size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CaptureFromPixels(make([]byte, tt.n), tt.w, tt.h)
			if err == nil || !strings.Contains(err.Error(), tt.wantSubstring) {
				t.Errorf("err = %v, want containing %q", err, tt.wantSubstring)
			}
		})
	}
}

func TestDefaultPrefix(t *testing.T) {
	s := NewScreenshotter("", "")
	if !strings.HasPrefix(s.Filename(), "screenshot_") {
		t.Errorf("Filename() = %q, want screenshot_ prefix", s.Filename())
	}
}

func TestFPSCounter(t *testing.T) {
	var c FPSCounter
	for i := 0; i < 59; i++ {
		if c.Frame(16 * time.Millisecond) {
			t.Fatalf("published early at frame %d", i)
		}
	}
	// 60 frames of 16ms is 960ms; the 63rd crosses one second.
	published := false
	for i := 0; i < 4 && !published; i++ {
		published = c.Frame(16 * time.Millisecond)
	}
	if !published {
		t.Fatal("no FPS value after one second")
	}
	if fps := c.FPS(); fps < 61 || fps > 64 {
		t.Errorf("FPS() = %.2f, want about 62.5", fps)
	}
	if c.FrameTime() != 16*time.Millisecond {
		t.Errorf("FrameTime() = %v, want 16ms", c.FrameTime())
	}
}
