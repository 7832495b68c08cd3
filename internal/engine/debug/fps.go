package debug

import "time"

// FPSCounter counts frames over one-second windows.
type FPSCounter struct {
	frames    int
	elapsed   time.Duration
	fps       float64
	frameTime time.Duration
}

// Frame records one frame of length dt. It returns true when a new FPS value
// was published.
func (c *FPSCounter) Frame(dt time.Duration) bool {
	if dt < 0 {
		dt = 0
	}
	c.frames++
	c.elapsed += dt
	if c.elapsed < time.Second {
		return false
	}
	c.fps = float64(c.frames) / c.elapsed.Seconds()
	c.frameTime = c.elapsed / time.Duration(c.frames)
	c.frames = 0
	c.elapsed = 0
	return true
}

// FPS returns the last published frames per second.
func (c *FPSCounter) FPS() float64 { return c.fps }

// FrameTime returns the mean frame time of the last window.
func (c *FPSCounter) FrameTime() time.Duration { return c.frameTime }
