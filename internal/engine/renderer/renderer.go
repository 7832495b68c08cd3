// Package renderer draws the sky and the lit ground with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/skyrig/internal/engine/camera"
	"github.com/Faultbox/skyrig/internal/engine/framebuffer"
	"github.com/Faultbox/skyrig/internal/engine/shader"
	"github.com/Faultbox/skyrig/internal/engine/shadow"
	"github.com/Faultbox/skyrig/internal/engine/sky"
	"github.com/Faultbox/skyrig/internal/engine/terrain"
	"github.com/Faultbox/skyrig/internal/engine/texture"
	"github.com/Faultbox/skyrig/internal/logger"
)

// Renderer owns the GL objects for one scene. It implements sky.Target.
type Renderer struct {
	settings Settings
	log      *zap.Logger

	skyProgram    *shader.Program
	groundProgram *shader.Program
	depthProgram  *shader.Program

	skyVAO     uint32
	groundVAO  uint32
	groundVBO  uint32
	groundEBO  uint32
	indexCount int32

	loader   *texture.Loader
	textures textureSet

	shadowMap *shadow.Map // nil when the depth target could not be created
	bounds    shadow.Bounds

	target *framebuffer.Framebuffer
	state  sky.State
}

// New creates the renderer. It must be called after the GL context exists.
// loader may be nil, in which case the ground uses flat placeholder maps.
func New(settings Settings, mesh *terrain.Mesh, loader *texture.Loader) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	r := &Renderer{
		settings: settings,
		log:      logger.Named("renderer"),
		loader:   loader,
	}
	r.settings.sanitize()

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	var err error
	if r.skyProgram, err = shader.Compile("sky", skyVertexShader, skyFragmentShader); err != nil {
		return nil, fmt.Errorf("sky shader: %w", err)
	}
	if r.groundProgram, err = shader.Compile("ground", groundVertexShader, groundFragmentShader); err != nil {
		r.Close()
		return nil, fmt.Errorf("ground shader: %w", err)
	}
	if r.depthProgram, err = shader.Compile("depth", depthVertexShader, depthFragmentShader); err != nil {
		r.Close()
		return nil, fmt.Errorf("depth shader: %w", err)
	}

	// The sky triangle is generated from gl_VertexID but core profile still
	// requires a bound VAO.
	gl.GenVertexArrays(1, &r.skyVAO)
	r.uploadGround(mesh)
	r.textures.init()

	if r.target, err = framebuffer.New(1, 1); err != nil {
		r.Close()
		return nil, fmt.Errorf("scene target: %w", err)
	}
	if r.shadowMap, err = shadow.NewMap(shadow.DefaultResolution); err != nil {
		r.log.Warn("shadows disabled", zap.Error(err))
	} else {
		r.log.Debug("shadow map ready", zap.Int32("resolution", r.shadowMap.Resolution()))
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	return r, nil
}

func (r *Renderer) uploadGround(mesh *terrain.Mesh) {
	gl.GenVertexArrays(1, &r.groundVAO)
	gl.GenBuffers(1, &r.groundVBO)
	gl.GenBuffers(1, &r.groundEBO)
	if mesh == nil || len(mesh.Vertices) == 0 {
		return
	}

	gl.BindVertexArray(r.groundVAO)

	stride := int32(unsafe.Sizeof(terrain.Vertex{}))
	gl.BindBuffer(gl.ARRAY_BUFFER, r.groundVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*int(stride), gl.Ptr(mesh.Vertices), gl.STATIC_DRAW)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.groundEBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	attrib := func(loc uint32, size int32, offset uintptr) {
		gl.VertexAttribPointerWithOffset(loc, size, gl.FLOAT, false, stride, offset)
		gl.EnableVertexAttribArray(loc)
	}
	attrib(0, 3, unsafe.Offsetof(terrain.Vertex{}.Position))
	attrib(1, 3, unsafe.Offsetof(terrain.Vertex{}.Normal))
	attrib(2, 3, unsafe.Offsetof(terrain.Vertex{}.Tangent))
	attrib(3, 2, unsafe.Offsetof(terrain.Vertex{}.TexCoord))

	gl.BindVertexArray(0)
	r.indexCount = int32(len(mesh.Indices))

	positions := make([][3]float32, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		positions[i] = v.Position
	}
	r.bounds = shadow.BoundsOf(positions)

	r.log.Debug("ground uploaded",
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("indices", len(mesh.Indices)),
	)
}

// ApplySky stores the sky state used by the next Render.
func (r *Renderer) ApplySky(s sky.State) {
	r.state = s
}

// Sky returns the last applied sky state.
func (r *Renderer) Sky() sky.State { return r.state }

// Settings returns the live settings for in-place editing.
func (r *Renderer) Settings() *Settings { return &r.settings }

// TextureID returns the GL texture currently bound to a ground slot.
func (r *Renderer) TextureID(slot texture.Slot) uint32 {
	return r.textures.id(slot)
}

// Target returns the offscreen scene target.
func (r *Renderer) Target() *framebuffer.Framebuffer { return r.target }

// Render draws one frame into the scene target. winW×winH is the window size
// in screen coordinates and drawW×drawH the drawable size in pixels.
func (r *Renderer) Render(cam *camera.Camera, winW, winH, drawW, drawH int) {
	r.settings.sanitize()
	r.textures.sync(r.loader, r.log)

	w, h := TargetSize(winW, winH, drawW, drawH, r.settings.PixelRatioCap)
	f := buildFrame(r.state, cam, float32(w)/float32(h), r.settings, r.bounds)
	if r.shadowMap == nil {
		f.ShadowPass, f.SunShadow, f.MoonShadow = false, 0, 0
	}
	if f.ShadowPass {
		r.drawShadows(&f)
	}

	r.target.Resize(w, h)
	r.target.Bind()

	bg := r.state.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.drawGround(&f)
	r.drawSky(&f)

	r.target.Unbind()
}

// Present blits the scene target over the whole drawable.
func (r *Renderer) Present(drawW, drawH int) {
	r.target.BlitToScreen(int32(drawW), int32(drawH))
}

// ReadPixels returns the last rendered frame, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.target.Size()
	return r.target.ReadPixels(), int(w), int(h)
}

func (r *Renderer) setLights(p *shader.Program, f *frameUniforms) {
	p.SetVec3("uCameraPos", f.CameraPos)
	p.SetVec3("uSunDir", f.SunDir)
	p.SetVec3("uSunRadiance", f.SunRadiance)
	p.SetVec3("uMoonDir", f.MoonDir)
	p.SetVec3("uMoonRadiance", f.MoonRadiance)
	p.SetVec3("uHemiSky", f.HemiSky)
	p.SetVec3("uHemiGround", f.HemiGround)
	p.SetVec3("uBackground", f.Background)
	p.SetFloat("uExposure", f.Exposure)
}

func (r *Renderer) drawGround(f *frameUniforms) {
	if r.indexCount == 0 {
		return
	}
	p := r.groundProgram
	p.Use()
	p.SetMat4("uViewProj", f.ViewProj)
	r.setLights(p, f)
	p.SetFloat("uHemiIntensity", f.HemiIntensity)
	p.SetFloat("uNormalScale", f.NormalScale)
	p.SetMat4("uLightViewProj", f.LightViewProj)
	p.SetFloat("uSunShadow", f.SunShadow)
	p.SetFloat("uMoonShadow", f.MoonShadow)

	r.textures.bind(texture.SlotColor, 0)
	r.textures.bind(texture.SlotNormal, 1)
	p.SetInt("uColorMap", 0)
	p.SetInt("uNormalMap", 1)
	if r.shadowMap != nil {
		r.shadowMap.BindTexture(2)
	}
	p.SetInt("uShadowMap", 2)

	gl.BindVertexArray(r.groundVAO)
	gl.DrawElementsWithOffset(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

func (r *Renderer) drawShadows(f *frameUniforms) {
	if r.indexCount == 0 {
		return
	}
	r.shadowMap.Begin()
	r.depthProgram.Use()
	r.depthProgram.SetMat4("uLightViewProj", f.LightViewProj)
	gl.BindVertexArray(r.groundVAO)
	gl.DrawElementsWithOffset(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
	r.shadowMap.End()
}

// drawSky runs after the ground at depth 1.0 with LEQUAL, so only
// uncovered pixels are shaded.
func (r *Renderer) drawSky(f *frameUniforms) {
	p := r.skyProgram
	p.Use()
	p.SetMat4("uInvViewProj", f.InvViewProj)
	r.setLights(p, f)
	p.SetFloat("uStars", f.Stars)
	p.SetFloat("uRayleigh", f.Rayleigh)
	p.SetFloat("uMie", f.Mie)
	p.SetFloat("uMieG", f.MieG)
	p.SetFloat("uTurbidity", f.Turbidity)

	gl.DepthMask(false)
	gl.Disable(gl.CULL_FACE)
	gl.BindVertexArray(r.skyVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
	gl.Enable(gl.CULL_FACE)
	gl.DepthMask(true)
}

// Close releases GL resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.target != nil {
		r.target.Destroy()
	}
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
	}
	r.textures.destroy()
	if r.groundVAO != 0 {
		gl.DeleteVertexArrays(1, &r.groundVAO)
	}
	if r.skyVAO != 0 {
		gl.DeleteVertexArrays(1, &r.skyVAO)
	}
	if r.groundVBO != 0 {
		gl.DeleteBuffers(1, &r.groundVBO)
	}
	if r.groundEBO != 0 {
		gl.DeleteBuffers(1, &r.groundEBO)
	}
	if r.skyProgram != nil {
		r.skyProgram.Delete()
	}
	if r.groundProgram != nil {
		r.groundProgram.Delete()
	}
	if r.depthProgram != nil {
		r.depthProgram.Delete()
	}
}
