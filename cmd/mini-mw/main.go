package main

import (
	"os"
	"runtime"

	"mini-mw/internal/config"
	"mini-mw/internal/graphics"
	"mini-mw/internal/graphics/material"
	"mini-mw/internal/graphics/renderables/camera"
	"mini-mw/internal/graphics/renderables/localmap"
	"mini-mw/internal/graphics/renderer"
	"mini-mw/internal/input"
	"mini-mw/internal/log"
	"mini-mw/internal/physics"
	"mini-mw/internal/profiling"
	"mini-mw/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		log.Errorf("%+v", err)
		closer.Exit(1)
	}
	closer.Close()
}

func run() error {
	// .env is optional
	_ = godotenv.Load()

	if err := log.Setup(log.Options{Level: os.Getenv("MW_LOG_LEVEL"), File: os.Getenv("MW_LOG")}); err != nil {
		return errors.Wrap(err, "configuring log")
	}

	settings := config.New()
	settingsPath := os.Getenv("MW_SETTINGS")
	if settingsPath != "" {
		if err := settings.Load(settingsPath); err != nil {
			return err
		}
	}

	if err := glfw.Init(); err != nil {
		return errors.Wrap(err, "initializing glfw")
	}
	closer.Bind(glfw.Terminate)

	win, err := newWindow(
		settings.GetInt("resolution x", config.CategoryVideo),
		settings.GetInt("resolution y", config.CategoryVideo),
		settings.GetBool("fullscreen", config.CategoryVideo),
	)
	if err != nil {
		return err
	}

	rend, err := graphics.NewRenderer("OpenGL Rendering Subsystem", graphics.Capabilities{NumMultiRenderTargets: maxDrawBuffers()}, win)
	if err != nil {
		return err
	}

	mat := material.New(os.Getenv("MW_DATA"))
	if dir := os.Getenv("MW_SHADER_CACHE"); dir != "" {
		if err := mat.SetCacheFolder(dir); err != nil {
			return err
		}
	}
	var fog localmap.Store = localmap.NewMemoryStore()
	if dir := os.Getenv("MW_FOG_DIR"); dir != "" {
		fog = localmap.DirStore{Dir: dir}
	}

	gameWorld := world.New()
	phys := physics.NewWorld()
	rig := camera.New(rend.Scene(), rend.Camera())
	prof := profiling.NewFrame()
	inputMgr := input.New(settings)

	m, err := renderer.New(rend, renderer.Services{
		Settings:  settings,
		World:     gameWorld,
		Physics:   phys,
		Materials: mat,
		Input:     inputMgr,
		FogStore:  fog,
	}, renderer.WithCameraRig(rig), renderer.WithProfiler(prof))
	if err != nil {
		return err
	}
	closer.Bind(m.Close)
	if settingsPath != "" {
		closer.Bind(func() {
			if err := settings.Save(settingsPath); err != nil {
				log.Warnf("%v", err)
			}
		})
	}

	a := &app{
		window:   win,
		settings: settings,
		world:    gameWorld,
		phys:     phys,
		rig:      rig,
		input:    inputMgr,
		m:        m,
		prof:     prof,
		hour:     9,
	}
	if err := a.loadDemo(); err != nil {
		return err
	}
	a.setupInputHandlers()
	return a.run()
}

// maxDrawBuffers queries how many render targets a fragment shader can write.
func maxDrawBuffers() int {
	var n int32
	gl.GetIntegerv(gl.MAX_DRAW_BUFFERS, &n)
	return int(n)
}
