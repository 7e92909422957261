package main

import (
	"math"
	"time"

	"mini-mw/internal/config"
	"mini-mw/internal/graphics"
	"mini-mw/internal/graphics/renderables/camera"
	"mini-mw/internal/graphics/renderer"
	"mini-mw/internal/input"
	"mini-mw/internal/log"
	"mini-mw/internal/physics"
	"mini-mw/internal/profiling"
	"mini-mw/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// app drives the render loop and routes window input to the renderer
type app struct {
	window   *glWindow
	settings *config.Manager
	world    *world.World
	phys     *physics.World
	rig      *camera.Rig
	input    *input.Manager
	m        *renderer.Manager
	prof     *profiling.Frame
	limiter  profiling.Limiter

	paused bool
	hour   float64 // game time of day
}

func (a *app) setupInputHandlers() {
	win := a.window.win
	win.SetInputMode(glfw.CursorMode, glfw.CursorHidden)

	for key, action := range map[glfw.Key]input.Action{
		glfw.KeyEscape: input.ActionPause,
		glfw.KeyTab:    input.ActionToggleView,
		glfw.KeyF1:     input.ActionToggleWireframe,
		glfw.KeyF2:     input.ActionToggleCollision,
		glfw.KeyF3:     input.ActionTogglePathgrid,
		glfw.KeyF4:     input.ActionToggleBoundingBoxes,
		glfw.KeyF5:     input.ActionToggleCompositors,
		glfw.KeyL:      input.ActionToggleLight,
		glfw.KeyK:      input.ActionToggleWater,
		glfw.KeyF6:     input.ActionToggleWaterShader,
		glfw.KeyEqual:  input.ActionFovUp,
		glfw.KeyMinus:  input.ActionFovDown,
	} {
		a.input.BindKey(int(key), action)
	}

	win.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		if width == 0 || height == 0 {
			return // minimised
		}
		a.m.WindowResized(a.window)
	})
	win.SetCloseCallback(func(w *glfw.Window) {
		a.m.WindowClosed()
	})
	win.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if a.paused {
			return
		}
		a.rig.Rotate(a.input.MouseMoved(xpos, ypos))

		// keep the cursor inside the mouse region
		width, height := w.GetSize()
		cx, cy := float64(width)/2, float64(height)/2
		w.SetCursorPos(cx, cy)
		a.input.WarpMouse(cx, cy)
	})
	win.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		a.m.SetCameraDistance(float32(-yoff)*20, true, true)
	})
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		a.input.HandleKeyEvent(int(key), action != glfw.Release)
	})
}

// handleActions runs the actions pressed since the last frame.
func (a *app) handleActions() {
	in := a.input
	if in.JustPressed(input.ActionPause) {
		a.paused = !a.paused
		if a.paused {
			a.window.win.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		} else {
			a.window.win.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
			in.ResetMouse()
		}
	}
	if in.JustPressed(input.ActionToggleView) {
		a.rig.ToggleViewMode()
	}
	for action, mode := range map[input.Action]renderer.RenderMode{
		input.ActionToggleWireframe:     renderer.RenderWireframe,
		input.ActionToggleCollision:     renderer.RenderCollisionDebug,
		input.ActionTogglePathgrid:      renderer.RenderPathgrid,
		input.ActionToggleBoundingBoxes: renderer.RenderBoundingBoxes,
		input.ActionToggleCompositors:   renderer.RenderCompositors,
	} {
		if in.JustPressed(action) {
			log.Infof("render mode %d: %v", mode, a.m.ToggleRenderMode(mode))
		}
	}
	if in.JustPressed(input.ActionToggleLight) {
		a.m.ToggleLight()
	}
	if in.JustPressed(input.ActionToggleWater) {
		a.m.ToggleWater()
	}
	if in.JustPressed(input.ActionToggleWaterShader) {
		s := a.settings
		s.SetBool("shader", config.CategoryWater, !s.GetBool("shader", config.CategoryWater))
	}
	if in.JustPressed(input.ActionFovUp) {
		a.addFov(5)
	}
	if in.JustPressed(input.ActionFovDown) {
		a.addFov(-5)
	}
	in.PostUpdate()
}

// addFov changes the field of view setting; the renderer picks it up with
// the next settings batch.
func (a *app) addFov(delta float32) {
	fov := a.settings.GetFloat("field of view", config.CategoryGeneral)
	a.settings.SetFloat("field of view", config.CategoryGeneral, fov+delta)
}

func (a *app) run() error {
	rend := a.m.Renderer()
	last := time.Now()
	lastReport := last
	frames := 0

	for !a.window.win.ShouldClose() && !rend.EndRenderingQueued() {
		a.prof.Reset()
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		a.handleActions()
		if changes := a.settings.Apply(); len(changes) > 0 {
			if err := a.m.ProcessChangedSettings(changes); err != nil {
				return err
			}
		}
		if !a.paused {
			a.advanceClock(dt)
		}
		if err := a.m.Update(dt, a.paused); err != nil {
			return err
		}
		func() { defer a.prof.Track("gl.Draw")(); a.draw() }()
		func() { defer a.prof.Track("glfw.SwapBuffers")(); a.window.win.SwapBuffers() }()
		func() { defer a.prof.Track("glfw.PollEvents")(); glfw.PollEvents() }()
		frames++

		if time.Since(lastReport) >= time.Second {
			triangles, batches := a.m.TriangleBatchCount()
			log.WithFields(map[string]any{
				"fps":       frames,
				"triangles": triangles,
				"batches":   batches,
			}).Debugf("frame: %s (%s)", a.prof.TopSubsystems(3), a.prof.TopN(3))
			frames = 0
			lastReport = time.Now()
		}
		a.limiter.Wait(a.settings.GetInt("framerate limit", config.CategoryVideo), a.paused)
	}
	return nil
}

// advanceClock moves the time of day and the sun with it.
func (a *app) advanceClock(dt float32) {
	a.hour = math.Mod(a.hour+float64(dt*a.world.TimeScaleFactor())/3600, 24)
	a.m.SkySetHour(a.hour)

	// sunrise in the east at 6, overhead at noon
	theta := (a.hour - 6) / 12 * math.Pi
	a.m.SetSunDirection(mgl32.Vec3{float32(math.Cos(theta)), 0, float32(math.Sin(theta))})
}

// draw clears to the fog colour and counts one batch per visible node.
func (a *app) draw() {
	rend := a.m.Renderer()
	vp := rend.Viewport()
	bg := vp.Background

	mode := uint32(gl.FILL)
	if rend.Camera().PolygonMode == graphics.PolygonWireframe {
		mode = gl.LINE
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, mode)
	gl.Viewport(0, 0, int32(vp.Width), int32(vp.Height))
	gl.ClearColor(float32(bg.R), float32(bg.G), float32(bg.B), 1)
	if vp.ClearEveryFrame {
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	}

	var batches uint
	rend.Scene().Root().Walk(func(n *graphics.Node) {
		if n.Visible() {
			batches++
		}
	})
	a.window.recordFrame(0, batches)
	a.m.Compositors().RecordFrame(0, batches)
}
