package renderer

import (
	"math"
	"testing"

	"mini-mw/internal/config"
	"mini-mw/internal/graphics/renderables/video"

	"github.com/go-gl/mathgl/mgl32"
)

func TestResolutionChangeRebuildsTargets(t *testing.T) {
	h, w := wetHarness(t, 4)
	assigns := w.assigns
	recreations := h.m.Compositors().Recreations()

	h.settings.SetInt("resolution x", config.CategoryVideo, 1920)
	h.settings.SetInt("resolution y", config.CategoryVideo, 1080)
	if err := h.m.ProcessChangedSettings(h.settings.Apply()); err != nil {
		t.Fatal(err)
	}
	// the host forwards the window callback
	h.m.WindowResized(h.window)

	if h.window.Resizes != 1 {
		t.Errorf("Expected 1 window resize, got %d", h.window.Resizes)
	}
	if got := h.m.Compositors().Recreations() - recreations; got != 1 {
		t.Errorf("Expected compositor chain recreated once, got %d", got)
	}
	if got := w.assigns - assigns; got != 1 {
		t.Errorf("Expected water textures reassigned once, got %d", got)
	}
	vp := h.rend.Viewport()
	if vp.Width != 1920 || vp.Height != 1080 {
		t.Errorf("Expected viewport 1920x1080, got %dx%d", vp.Width, vp.Height)
	}
	if got := h.rend.Camera().AspectRatio; got != float32(1920)/1080 {
		t.Errorf("Expected aspect %f, got %f", float32(1920)/1080, got)
	}
	if width, height := h.m.video.(*video.Player).Resolution(); width != 1920 || height != 1080 {
		t.Errorf("Expected video at 1920x1080, got %dx%d", width, height)
	}
}

func TestWindowResizedNotifiesListeners(t *testing.T) {
	h := newHarness(t, 0)
	if err := h.window.Resize(1280, 720); err != nil {
		t.Fatal(err)
	}
	h.m.WindowResized(h.window)

	if got := h.settings.GetInt("resolution x", config.CategoryVideo); got != 1280 {
		t.Errorf("Expected resolution x 1280, got %d", got)
	}
	for name, l := range map[string]*fakeListener{"input": h.input, "ui": h.ui} {
		if len(l.batches) != 1 {
			t.Fatalf("Expected 1 batch for %s, got %d", name, len(l.batches))
		}
		b := l.batches[0]
		if !b.Contains(config.CategoryVideo, "resolution x") || !b.Contains(config.CategoryVideo, "resolution y") {
			t.Errorf("Expected resolution changes for %s, got %v", name, b)
		}
	}
	if h.settings.Pending() != 0 {
		t.Errorf("Expected the changes applied, %d pending", h.settings.Pending())
	}
	if h.window.Resizes != 1 {
		t.Errorf("Expected no further resize, got %d", h.window.Resizes)
	}
}

func TestWindowClosed(t *testing.T) {
	h := newHarness(t, 0)
	if h.rend.EndRenderingQueued() {
		t.Fatal("Expected rendering running")
	}
	h.m.WindowClosed()
	if !h.rend.EndRenderingQueued() {
		t.Errorf("Expected end of rendering queued")
	}
}

func TestVideoWithoutDecoder(t *testing.T) {
	h := newHarness(t, 0)
	if err := h.m.PlayVideo("bethesda logo.bik", true); err == nil {
		t.Errorf("Expected error without a decoder")
	}
	if h.m.IsVideoPlaying() {
		t.Errorf("Expected no video playing")
	}
	h.m.StopVideo()
}

type fakeVideo struct {
	name      string
	allowSkip bool
}

func (v *fakeVideo) Update() error { return nil }
func (v *fakeVideo) PlayVideo(name string, allowSkip bool) error {
	v.name, v.allowSkip = name, allowSkip
	return nil
}
func (v *fakeVideo) StopVideo()                      {}
func (v *fakeVideo) IsPlaying() bool                 { return v.name != "" }
func (v *fakeVideo) SetResolution(width, height int) {}
func (v *fakeVideo) Dispose()                        {}

func TestPlayVideoFromVideoFolder(t *testing.T) {
	v := &fakeVideo{}
	h := newHarness(t, 0, WithVideo(v))
	if err := h.m.PlayVideo("mw_intro.bik", true); err != nil {
		t.Fatal(err)
	}
	if v.name != "video/mw_intro.bik" || !v.allowSkip {
		t.Errorf("Expected video/mw_intro.bik, got %q", v.name)
	}
}

func TestBoundingBoxToScreen(t *testing.T) {
	h := newHarness(t, 0)
	cam := h.rend.Camera()
	cam.AttachTo(nil)
	cam.Position = mgl32.Vec3{}
	cam.Orientation = mgl32.QuatIdent()

	// a 20 unit box 90 to 110 units ahead; the nearest face spans 10/90
	// either side of the centre
	got := h.m.BoundingBoxToScreen(mgl32.Vec3{-10, 90, -10}, mgl32.Vec3{10, 110, 10})
	want := mgl32.Vec4{0.5 - 1.0/9, 0.5 - 1.0/9, 0.5 + 1.0/9, 0.5 + 1.0/9}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-4 {
			t.Fatalf("Expected %v, got %v", want, got)
		}
	}

	// off to the right only moves x
	got = h.m.BoundingBoxToScreen(mgl32.Vec3{40, 90, -10}, mgl32.Vec3{60, 110, 10})
	if got[0] <= 0.5 || got[2] <= got[0] {
		t.Errorf("Expected a box right of centre, got %v", got)
	}
	if math.Abs(float64(got[1]-want[1])) > 1e-4 {
		t.Errorf("Expected unchanged vertical extent, got %v", got)
	}
}
