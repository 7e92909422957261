package renderer

import (
	"mini-mw/internal/config"
	"mini-mw/internal/graphics"
	"mini-mw/internal/graphics/material"
	"mini-mw/internal/graphics/renderables/localmap"
	"mini-mw/internal/graphics/renderables/sky"
	"mini-mw/internal/graphics/renderables/video"
	"mini-mw/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Physics is the collision world the renderer queries.
type Physics interface {
	RayTest(from, to mgl32.Vec3) (string, float32)
	ToggleDebugRendering() bool
}

// Settings is the settings registry.
type Settings interface {
	GetString(key, category string) string
	GetFloat(key, category string) float32
	GetInt(key, category string) int
	GetBool(key, category string) bool
	SetString(key, category, value string)
	SetFloat(key, category string, value float32)
	SetInt(key, category string, value int)
	SetBool(key, category string, value bool)
	Apply() config.Changes
}

// World is the game state the renderer reads.
type World interface {
	PlayerCell() *world.Cell
	Player() world.Ptr
	IsUnderwater(cell *world.Cell, pos mgl32.Vec3) bool
	TimeScaleFactor() float32
	LandExists(x, y int) bool
	IsCellExterior() bool
	IsCellQuasiExterior() bool
}

// ShaderFactory is the material system.
type ShaderFactory interface {
	LoadAllFiles() error
	SetGlobalSetting(name, value string)
	GlobalSetting(name string) string
	SetSharedParameter(name string, value any)
	SetCurrentLanguage(l material.Language)
	CurrentLanguage() material.Language
	SetShadersEnabled(enabled bool)
	ShadersEnabled() bool
	SetTextureAlias(alias, texture string)
	SetDefaultTextureFiltering(tf material.TextureFilter)
	SetDefaultAnisotropy(n int)
	SetDefaultNumMipmaps(n int)
}

// SettingsListener receives the settings applied after a window resize.
type SettingsListener interface {
	ProcessChangedSettings(changes config.Changes)
}

// Services carries the engine collaborators of the renderer. Input, UI,
// Video and FogStore are optional.
type Services struct {
	Settings  Settings
	World     World
	Physics   Physics
	Materials ShaderFactory
	Input     SettingsListener
	UI        SettingsListener
	Video     video.Decoder
	FogStore  localmap.Store
}

// CameraRig places the camera relative to the player.
type CameraRig interface {
	Update(dt float32) error
	AttachTo(ptr world.Ptr)
	ResetCameraDistance()
	SetCameraDistance(dist float32, adjust, override bool)
	GetPosition() (focal, camera mgl32.Vec3, firstPerson bool)
	Height() float32
	RotateTo(rot mgl32.Vec3, adjust bool) bool
	YawPitch() (float64, float64)
	Dispose()
}

// SkyManager draws sky, sun and moons.
type SkyManager interface {
	Update(dt float32) error
	Enable()
	Disable()
	IsEnabled() bool
	SetGlare(glare float32)
	SetHour(hour float64)
	SetDate(day, month int)
	SetMasserPhase(p sky.Phase)
	SetSecundaPhase(p sky.Phase)
	MasserPhase() sky.Phase
	SecundaPhase() sky.Phase
	SetMoonColour(red bool)
	SetSunDirection(dir mgl32.Vec3)
	SunNode() *graphics.Node
	Dispose()
}

// WaterSurface is the water plane of the current cell.
type WaterSurface interface {
	ChangeCell(cell *world.Cell)
	SetActive(active bool)
	IsActive() bool
	SetHeight(height float32)
	Toggle() bool
	UpdateUnderwater(underwater bool)
	Update(dt float32) error
	SetViewportBackground(c colorful.Color)
	AssignTextures()
	ProcessChangedSettings(changes config.Changes)
	AddEmitter(handle string)
	RemoveEmitter(handle string)
	Dispose()
}

// WaterFactory creates the water surface the first time a wet cell loads.
type WaterFactory func(cell *world.Cell) WaterSurface

// FogOfWar records and persists explored map areas.
type FogOfWar interface {
	UpdatePlayer(pos mgl32.Vec3, dir mgl32.Quat)
	SaveFogOfWar(cell *world.Cell) error
	RequestExteriorMap(cell *world.Cell) error
	RequestInteriorMap(cell *world.Cell, lo, hi mgl32.Vec2) error
	InteriorMapPosition(pos mgl32.Vec2) (nX, nY float32, x, y int)
	IsPositionExplored(nX, nY float32, x, y int, interior bool) bool
	Dispose()
}

// OcclusionQuery measures sun visibility for the glare.
type OcclusionQuery interface {
	Update(dt float32) error
	SetSunNode(n *graphics.Node)
	SunVisibility() float32
	Dispose()
}

// VideoPlayer is the movie overlay.
type VideoPlayer interface {
	Update() error
	PlayVideo(name string, allowSkip bool) error
	StopVideo()
	IsPlaying() bool
	SetResolution(width, height int)
	Dispose()
}
