// Package renderer is the rendering orchestrator: it owns the subsystems that
// draw the world and keeps them in step with cells, settings and the window.
package renderer

import (
	"image/color"
	"strconv"

	"mini-mw/internal/config"
	"mini-mw/internal/graphics"
	"mini-mw/internal/graphics/material"
	"mini-mw/internal/graphics/renderables/camera"
	"mini-mw/internal/graphics/renderables/compositor"
	"mini-mw/internal/graphics/renderables/debug"
	"mini-mw/internal/graphics/renderables/localmap"
	"mini-mw/internal/graphics/renderables/objects"
	"mini-mw/internal/graphics/renderables/occlusion"
	"mini-mw/internal/graphics/renderables/shadows"
	"mini-mw/internal/graphics/renderables/sky"
	"mini-mw/internal/graphics/renderables/terrain"
	"mini-mw/internal/graphics/renderables/video"
	"mini-mw/internal/graphics/renderables/water"
	"mini-mw/internal/log"
	"mini-mw/internal/profiling"
	"mini-mw/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// menuTexture is the 1x1 texture menus blend their background with.
const menuTexture = "transparent.png"

// Manager orchestrates the rendering subsystems
type Manager struct {
	rend *graphics.Renderer
	svc  Services
	prof *profiling.Frame

	rig         CameraRig
	sky         SkyManager
	water       WaterSurface
	newWater    WaterFactory
	localMap    FogOfWar
	occlusion   OcclusionQuery
	video       VideoPlayer
	objects     *objects.Objects
	actors      *objects.Actors
	terrain     *terrain.Terrain
	compositors *compositor.Chain
	debug       *debug.Overlay
	shadows     *shadows.Shadows

	sun           *graphics.Light
	sunEnabled    bool
	ambientColour colorful.Color
	ambientMode   AmbientMode

	fogColour colorful.Color
	fogStart  float32
	fogEnd    float32
}

// Option replaces a default subsystem.
type Option func(*Manager)

func WithCameraRig(r CameraRig) Option       { return func(m *Manager) { m.rig = r } }
func WithSky(s SkyManager) Option            { return func(m *Manager) { m.sky = s } }
func WithWaterFactory(f WaterFactory) Option { return func(m *Manager) { m.newWater = f } }
func WithLocalMap(lm FogOfWar) Option        { return func(m *Manager) { m.localMap = lm } }
func WithOcclusion(q OcclusionQuery) Option  { return func(m *Manager) { m.occlusion = q } }
func WithVideo(v VideoPlayer) Option         { return func(m *Manager) { m.video = v } }
func WithProfiler(f *profiling.Frame) Option { return func(m *Manager) { m.prof = f } }

// New configures the material system from the settings and creates every
// rendering subsystem.
func New(rend *graphics.Renderer, svc Services, opts ...Option) (*Manager, error) {
	if svc.Settings == nil || svc.World == nil || svc.Physics == nil || svc.Materials == nil {
		return nil, errors.New("renderer: settings, world, physics and materials are required")
	}
	m := &Manager{
		rend:          rend,
		svc:           svc,
		sunEnabled:    true,
		ambientColour: graphics.Black,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.prof == nil {
		m.prof = profiling.NewFrame()
	}

	s := svc.Settings
	mat := svc.Materials

	m.selectShaderMode()
	rend.SetFov(s.GetFloat("field of view", config.CategoryGeneral))

	if err := mat.LoadAllFiles(); err != nil {
		return nil, errors.Wrap(err, "loading materials")
	}
	m.applyTextureFiltering()
	mat.SetDefaultNumMipmaps(s.GetInt("num mipmaps", config.CategoryGeneral))

	if !m.WaterShaderSupported() {
		s.SetBool("shader", config.CategoryWater, false)
	}
	if !s.GetBool("shaders", config.CategoryObjects) {
		s.SetBool("enabled", config.CategoryShadows, false)
	}
	mat.SetShadersEnabled(s.GetBool("shaders", config.CategoryObjects))

	mat.SetGlobalSetting("mrt_output", boolString(m.useMRT()))
	mat.SetGlobalSetting("fog", "true")
	mat.SetGlobalSetting("lighting", "true")
	mat.SetGlobalSetting("num_lights", strconv.Itoa(s.GetInt("num lights", config.CategoryObjects)))
	mat.SetGlobalSetting("terrain_num_lights", strconv.Itoa(s.GetInt("num lights", config.CategoryTerrain)))
	mat.SetGlobalSetting("underwater_effects", boolString(s.GetBool("underwater effect", config.CategoryWater)))
	mat.SetGlobalSetting("simple_water", boolString(!s.GetBool("shader", config.CategoryWater)))

	mat.SetSharedParameter("viewportBackground", mgl32.Vec3{})
	mat.SetSharedParameter("waterEnabled", float32(0))
	mat.SetSharedParameter("waterLevel", float32(0))
	mat.SetSharedParameter("waterTimer", float32(0))
	mat.SetSharedParameter("windDir_windSpeed", mgl32.Vec3{0.5, -0.8, 0.2})
	mat.SetSharedParameter("waterSunFade_sunHeight", mgl32.Vec2{1, 0.6})
	mat.SetSharedParameter("gammaCorrection", s.GetFloat("gamma", config.CategoryVideo))

	if err := m.createSubsystems(); err != nil {
		return nil, err
	}
	m.applyCompositors()
	m.setMenuTransparency(s.GetFloat("menu transparency", config.CategoryGUI))

	log.WithFields(map[string]any{
		"api":    rend.API(),
		"shader": mat.CurrentLanguage().String(),
		"mrt":    m.useMRT(),
	}).Info("renderer ready")
	return m, nil
}

func (m *Manager) createSubsystems() error {
	scene := m.rend.Scene()
	cam := m.rend.Camera()
	tex := m.rend.Textures()
	w := m.rend.Window()

	m.compositors = compositor.NewChain(tex, w.Width(), w.Height())
	if m.rig == nil {
		m.rig = camera.New(scene, cam)
	}
	if m.sky == nil {
		m.sky = sky.New(scene, cam)
	}
	if m.occlusion == nil {
		m.occlusion = occlusion.New(m.svc.Physics, cam)
	}
	m.occlusion.SetSunNode(m.sky.SunNode())
	m.objects = objects.NewObjects(scene)
	m.actors = objects.NewActors(scene)
	m.terrain = terrain.New(scene)
	if m.localMap == nil {
		store := m.svc.FogStore
		if store == nil {
			store = localmap.NewMemoryStore()
		}
		lm, err := localmap.New(store)
		if err != nil {
			return errors.Wrap(err, "creating local map")
		}
		m.localMap = lm
	}
	m.debug = debug.New(scene, m.svc.Physics)
	m.shadows = shadows.New(m.svc.Settings, tex)
	m.shadows.Recreate()
	if m.video == nil {
		m.video = video.New(m.svc.Video, tex, w.Width(), w.Height())
	}
	if m.newWater == nil {
		m.newWater = func(cell *world.Cell) WaterSurface {
			return water.New(scene, tex, cell, m.svc.Materials, m.compositors, m.svc.Settings)
		}
	}
	return nil
}

// selectShaderMode picks the shader language matching the render system.
func (m *Manager) selectShaderMode() {
	s := m.svc.Settings
	mode := s.GetString("shader mode", config.CategoryGeneral)
	openGL := m.rend.IsOpenGL()
	if mode == "" || (openGL && mode == "hlsl") || (!openGL && mode == "glsl") {
		if openGL {
			mode = "glsl"
		} else {
			mode = "hlsl"
		}
		s.SetString("shader mode", config.CategoryGeneral, mode)
	}
	m.svc.Materials.SetCurrentLanguage(material.ParseLanguage(mode))
}

// applyTextureFiltering sets the default filter. Anisotropy only applies to
// the anisotropic filter and is 1 otherwise.
func (m *Manager) applyTextureFiltering() {
	s := m.svc.Settings
	filter := material.ParseTextureFilter(s.GetString("texture filtering", config.CategoryGeneral))
	anisotropy := 1
	if filter == material.FilterAnisotropic {
		anisotropy = s.GetInt("anisotropy", config.CategoryGeneral)
	}
	m.svc.Materials.SetDefaultTextureFiltering(filter)
	m.svc.Materials.SetDefaultAnisotropy(anisotropy)
}

// useMRT reports whether the scene renders into multiple render targets.
func (m *Manager) useMRT() bool {
	return m.svc.Settings.GetBool("shader", config.CategoryWater)
}

// WaterShaderSupported reports whether the backend can run the water shader.
func (m *Manager) WaterShaderSupported() bool {
	return m.rend.Capabilities().NumMultiRenderTargets >= 2 &&
		m.svc.Settings.GetBool("shaders", config.CategoryObjects)
}

// applyCompositors rebuilds the chain for the current MRT setting.
func (m *Manager) applyCompositors() {
	m.compositors.RemoveAll()
	if m.useMRT() {
		m.compositors.AddCompositor("gbuffer", 0)
		_ = m.compositors.SetCompositorEnabled("gbuffer", true)
		m.compositors.AddCompositor("gbufferFinalizer", 2)
		_ = m.compositors.SetCompositorEnabled("gbufferFinalizer", true)
	}
	if m.water != nil {
		m.water.AssignTextures()
	}
}

func (m *Manager) setMenuTransparency(alpha float32) {
	tex := m.rend.Textures()
	tex.Texture(menuTexture, 1, 1)
	tex.Fill(menuTexture, color.NRGBA{A: uint8(mgl32.Clamp(alpha, 0, 1) * 255)})
}

// Close disposes every subsystem in reverse creation order.
func (m *Manager) Close() {
	if m.water != nil {
		m.water.Dispose()
		m.water = nil
	}
	m.video.Dispose()
	m.shadows.Dispose()
	m.debug.Dispose()
	m.localMap.Dispose()
	m.terrain.Dispose()
	m.actors.Dispose()
	m.objects.Dispose()
	m.occlusion.Dispose()
	m.sky.Dispose()
	m.rig.Dispose()
	m.compositors.Dispose()
	if m.sun != nil {
		m.rend.Scene().DestroyLight(m.sun)
		m.sun = nil
	}
}

// Accessors for the host and for tests.
func (m *Manager) Renderer() *graphics.Renderer   { return m.rend }
func (m *Manager) Profile() *profiling.Frame      { return m.prof }
func (m *Manager) Compositors() *compositor.Chain { return m.compositors }
func (m *Manager) Objects() *objects.Objects      { return m.objects }
func (m *Manager) Actors() *objects.Actors        { return m.actors }
func (m *Manager) Terrain() *terrain.Terrain      { return m.terrain }
func (m *Manager) Shadows() *shadows.Shadows      { return m.shadows }
func (m *Manager) Debug() *debug.Overlay          { return m.debug }
func (m *Manager) Rig() CameraRig                 { return m.rig }

// Water returns the water surface, nil until a wet cell was loaded.
func (m *Manager) Water() WaterSurface { return m.water }

func boolString(b bool) string {
	return strconv.FormatBool(b)
}
