package texture

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/Faultbox/skyrig/internal/assets"
	"github.com/Faultbox/skyrig/internal/logger"
)

// Slot identifies one of the ground texture maps.
type Slot int

const (
	SlotColor Slot = iota
	SlotDisplacement
	SlotNormal
	SlotCount
)

func (s Slot) String() string {
	switch s {
	case SlotColor:
		return "color"
	case SlotDisplacement:
		return "displacement"
	case SlotNormal:
		return "normal"
	}
	return fmt.Sprintf("Slot(%d)", int(s))
}

// Origin tells where a slot's pixels came from.
type Origin int

const (
	OriginAsset Origin = iota
	OriginProcedural
	OriginDerived // Normal map computed from the displacement slot
)

func (o Origin) String() string {
	switch o {
	case OriginAsset:
		return "asset"
	case OriginProcedural:
		return "procedural"
	case OriginDerived:
		return "derived"
	}
	return "unknown"
}

// Image is a published slot value. It is immutable once published.
type Image struct {
	RGBA       *image.RGBA
	Source     string // Path or URL for assets
	Origin     Origin
	Generation uint64
}

// Sources names the asset for each slot. Empty means "use the fallback".
type Sources struct {
	Color        string
	Displacement string
	Normal       string
}

func (s Sources) get(slot Slot) string {
	switch slot {
	case SlotColor:
		return s.Color
	case SlotDisplacement:
		return s.Displacement
	case SlotNormal:
		return s.Normal
	}
	return ""
}

const (
	maxDownloadBytes = 64 << 20
	httpTimeout      = 30 * time.Second
)

// Loader fetches the ground textures in the background. Each slot is an atomic
// cell the render loop reads every frame without blocking.
type Loader struct {
	assets         *assets.Manager
	client         *http.Client
	size           int
	normalStrength float32

	slots [SlotCount]atomic.Pointer[Image]
	gen   atomic.Uint64

	// dispReady is closed once the displacement slot holds its first image.
	dispReady     chan struct{}
	dispReadyOnce sync.Once

	wg conc.WaitGroup
}

// NewLoader creates a loader resolving paths through mgr and resampling every map to size×size.
func NewLoader(mgr *assets.Manager, size int, normalStrength float32) *Loader {
	if mgr == nil {
		mgr = assets.NewManager()
	}
	return &Loader{
		assets:         mgr,
		client:         &http.Client{Timeout: httpTimeout},
		size:           max(size, 1),
		normalStrength: normalStrength,
		dispReady:      make(chan struct{}),
	}
}

// SetHTTPClient replaces the client used for http(s) sources.
func (l *Loader) SetHTTPClient(c *http.Client) {
	if c != nil {
		l.client = c
	}
}

// Assets returns the manager sources are resolved through.
func (l *Loader) Assets() *assets.Manager { return l.assets }

// Size returns the edge length every slot is resampled to.
func (l *Loader) Size() int {
	return l.size
}

// Get returns the current image for slot, or nil while it is still loading.
func (l *Loader) Get(slot Slot) *Image {
	if slot < 0 || slot >= SlotCount {
		return nil
	}
	return l.slots[slot].Load()
}

// Generation increases every time any slot is published.
func (l *Loader) Generation() uint64 {
	return l.gen.Load()
}

// Start loads all three slots concurrently, one goroutine per slot. Failures fall
// back to procedural maps; a missing normal map is derived from the displacement slot.
func (l *Loader) Start(ctx context.Context, src Sources) {
	for s := Slot(0); s < SlotCount; s++ {
		slot, name := s, src.get(s)
		l.wg.Go(func() {
			defer l.recoverLoad(ctx, slot, name, true)
			l.initial(ctx, slot, name)
		})
	}
}

// Reload replaces one slot from a new source in the background. On failure the
// current image is kept.
func (l *Loader) Reload(ctx context.Context, slot Slot, source string) {
	if slot < 0 || slot >= SlotCount {
		return
	}
	if !isURL(source) {
		l.assets.Invalidate(source)
	}
	l.wg.Go(func() {
		defer l.recoverLoad(ctx, slot, source, false)
		img, err := l.fetch(ctx, source)
		if err != nil {
			logger.Named("texture").Info("texture reload failed, keeping current",
				zap.Stringer("slot", slot), zap.String("source", source), zap.Error(err))
			return
		}
		l.publish(slot, img, source, OriginAsset)
		if slot == SlotDisplacement {
			l.rederiveNormal()
		}
	})
}

// Wait blocks until every load started so far has finished. Loads recover
// their own panics, so an error here means the fallback path itself panicked.
func (l *Loader) Wait() error {
	if r := l.wg.WaitAndRecover(); r != nil {
		return r.AsError()
	}
	return nil
}

func (l *Loader) initial(ctx context.Context, slot Slot, source string) {
	log := logger.Named("texture")

	var (
		img *image.RGBA
		err error
	)
	if source == "" {
		err = fmt.Errorf("no source configured")
	} else {
		img, err = l.fetch(ctx, source)
	}
	if err == nil {
		l.publish(slot, img, source, OriginAsset)
		log.Info("texture loaded", zap.Stringer("slot", slot), zap.String("source", source))
		return
	}
	if ctx.Err() == nil {
		log.Info("texture unavailable, using fallback",
			zap.Stringer("slot", slot), zap.String("source", source), zap.Error(err))
	}
	l.fallback(ctx, slot)
}

// recoverLoad turns a panicking load into a logged failure. Initial loads
// still publish their fallback so no slot stays empty and the derived normal
// map is never left waiting.
func (l *Loader) recoverLoad(ctx context.Context, slot Slot, source string, initial bool) {
	r := recover()
	if r == nil {
		return
	}
	logger.Named("texture").Error("texture load panicked",
		zap.Stringer("slot", slot), zap.String("source", source), zap.Any("panic", r))
	if initial {
		l.fallback(ctx, slot)
	}
}

// fallback publishes the procedural map for slot. The normal slot waits for
// the displacement slot and derives from it.
func (l *Loader) fallback(ctx context.Context, slot Slot) {
	if ctx.Err() != nil {
		l.markDisplacementReady(slot)
		return
	}

	switch slot {
	case SlotColor:
		l.publish(slot, ProceduralSand(l.size), "", OriginProcedural)
	case SlotDisplacement:
		l.publish(slot, ProceduralDisplacement(l.size), "", OriginProcedural)
	case SlotNormal:
		select {
		case <-l.dispReady:
		case <-ctx.Done():
			return
		}
		if disp := l.Get(SlotDisplacement); disp != nil {
			l.publish(slot, NormalFromDisplacement(disp.RGBA, l.normalStrength), disp.Source, OriginDerived)
		} else {
			l.publish(slot, NormalFromDisplacement(ProceduralDisplacement(l.size), l.normalStrength), "", OriginDerived)
		}
	}
}

func (l *Loader) rederiveNormal() {
	cur := l.Get(SlotNormal)
	disp := l.Get(SlotDisplacement)
	if cur == nil || cur.Origin != OriginDerived || disp == nil {
		return
	}
	l.publish(SlotNormal, NormalFromDisplacement(disp.RGBA, l.normalStrength), disp.Source, OriginDerived)
}

func (l *Loader) publish(slot Slot, img *image.RGBA, source string, origin Origin) {
	gen := l.gen.Add(1)
	l.slots[slot].Store(&Image{
		RGBA:       img,
		Source:     source,
		Origin:     origin,
		Generation: gen,
	})
	l.markDisplacementReady(slot)
}

func (l *Loader) markDisplacementReady(slot Slot) {
	if slot == SlotDisplacement {
		l.dispReadyOnce.Do(func() { close(l.dispReady) })
	}
}

// fetch reads, decodes and resamples a source.
func (l *Loader) fetch(ctx context.Context, source string) (*image.RGBA, error) {
	var (
		data []byte
		name = source
		err  error
	)
	if isURL(source) {
		data, err = l.download(ctx, source)
	} else {
		data, name, err = l.assets.Load(source)
	}
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := Decode(data, name)
	if err != nil {
		return nil, err
	}
	return Resample(img, l.size), nil
}

func (l *Loader) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: %s", url, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	if len(data) > maxDownloadBytes {
		return nil, fmt.Errorf("fetching %s: larger than %d bytes", url, maxDownloadBytes)
	}
	return data, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
