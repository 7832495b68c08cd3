package renderer

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/skyrig/internal/engine/texture"
)

// Placeholder texels shown until a slot's first image is published.
var placeholders = [texture.SlotCount][4]byte{
	texture.SlotColor:        {194, 170, 128, 255},
	texture.SlotDisplacement: {128, 128, 128, 255},
	texture.SlotNormal:       {128, 128, 255, 255},
}

// textureSet mirrors the loader's slots on the GPU.
type textureSet struct {
	ids       [texture.SlotCount]uint32
	uploaded  [texture.SlotCount]uint64 // Image.Generation of the last upload
	loaderGen uint64
}

func (ts *textureSet) init() {
	gl.GenTextures(int32(texture.SlotCount), &ts.ids[0])
	for slot := texture.Slot(0); slot < texture.SlotCount; slot++ {
		px := placeholders[slot]
		gl.BindTexture(gl.TEXTURE_2D, ts.ids[slot])
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, 1, 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(px[:]))
		setSampling()
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// sync uploads every slot whose published image changed since the last call.
func (ts *textureSet) sync(l *texture.Loader, log *zap.Logger) {
	if l == nil {
		return
	}
	gen := l.Generation()
	if gen == ts.loaderGen {
		return
	}
	ts.loaderGen = gen

	for slot := texture.Slot(0); slot < texture.SlotCount; slot++ {
		img := l.Get(slot)
		if img == nil || img.RGBA == nil || img.Generation == ts.uploaded[slot] {
			continue
		}
		upload(ts.ids[slot], img.RGBA)
		ts.uploaded[slot] = img.Generation
		log.Debug("texture uploaded",
			zap.Stringer("slot", slot),
			zap.Stringer("origin", img.Origin),
			zap.String("source", img.Source),
			zap.Uint64("generation", img.Generation),
		)
	}
}

func upload(id uint32, img *image.RGBA) {
	b := img.Bounds()
	if b.Empty() {
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	setSampling()
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func setSampling() {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
}

func (ts *textureSet) bind(slot texture.Slot, unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, ts.ids[slot])
}

func (ts *textureSet) id(slot texture.Slot) uint32 {
	if slot < 0 || slot >= texture.SlotCount {
		return 0
	}
	return ts.ids[slot]
}

func (ts *textureSet) destroy() {
	if ts.ids[0] != 0 {
		gl.DeleteTextures(int32(texture.SlotCount), &ts.ids[0])
		ts.ids = [texture.SlotCount]uint32{}
	}
}
