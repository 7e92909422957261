package renderer

import (
	"errors"
	"math"
	"strings"
	"testing"

	"mini-mw/internal/graphics"
	"mini-mw/internal/graphics/renderables/camera"
	"mini-mw/internal/graphics/renderables/localmap"
	"mini-mw/internal/graphics/renderables/objects"
	"mini-mw/internal/graphics/renderables/sky"
	"mini-mw/internal/physics"
	"mini-mw/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	pkgerrors "github.com/pkg/errors"
)

type failingSky struct {
	*sky.Sky
	err error
}

func (s *failingSky) Update(dt float32) error { return s.err }

type fakeOcclusion struct {
	sun        *graphics.Node
	visibility float32
	updates    int
}

func (q *fakeOcclusion) Update(dt float32) error     { q.updates++; return nil }
func (q *fakeOcclusion) SetSunNode(n *graphics.Node) { q.sun = n }
func (q *fakeOcclusion) SunVisibility() float32      { return q.visibility }
func (q *fakeOcclusion) Dispose()                    {}

// trace records the order in which a frame reaches the collaborators.
type trace struct {
	calls []string
	at    map[string]float32
}

func (tr *trace) add(call string) { tr.calls = append(tr.calls, call) }

type tracedRig struct {
	CameraRig
	tr   *trace
	snap func()
}

func (r *tracedRig) Update(dt float32) error {
	r.snap()
	r.tr.add("rig")
	return r.CameraRig.Update(dt)
}

type tracedSky struct {
	SkyManager
	tr   *trace
	snap func()
}

func (s *tracedSky) Update(dt float32) error {
	s.snap()
	s.tr.add("sky")
	return s.SkyManager.Update(dt)
}

func (s *tracedSky) SetGlare(glare float32) {
	s.tr.add("glare")
	s.tr.at["glare"] = glare
	s.SkyManager.SetGlare(glare)
}

type tracedMap struct {
	FogOfWar
	tr *trace
}

func (lm *tracedMap) UpdatePlayer(pos mgl32.Vec3, dir mgl32.Quat) {
	lm.tr.add("localmap")
	lm.FogOfWar.UpdatePlayer(pos, dir)
}

type tracedWater struct {
	WaterSurface
	tr *trace
}

func (w *tracedWater) UpdateUnderwater(underwater bool) {
	w.tr.add("underwater")
	w.WaterSurface.UpdateUnderwater(underwater)
}

func (w *tracedWater) Update(dt float32) error {
	w.tr.add("water")
	return w.WaterSurface.Update(dt)
}

func TestUpdateOrder(t *testing.T) {
	tr := &trace{at: make(map[string]float32)}
	h := prepare(t, 0)
	scene, cam := h.rend.Scene(), h.rend.Camera()
	lm, err := localmap.New(h.fog)
	if err != nil {
		t.Fatal(err)
	}

	cell := h.world.Cells.Exterior(0, 0, true)
	guard := &world.Reference{Handle: "guard", Kind: world.KindActor, Model: "meshes/base_anim.nif"}
	lamp := &world.Reference{Handle: "lamp", Kind: world.KindLight, Model: "meshes/light.nif",
		Light: &world.LightSource{Colour: graphics.White, Radius: 128}}
	cell.Insert(guard)
	cell.Insert(lamp)

	var actors *objects.Actors
	var lampLight *graphics.Light
	// the rig runs before actors and objects, the sky after both
	snapshot := func(step string) {
		anim, _ := actors.Animation(guard)
		tr.at[step+".anim"] = anim.Time
		tr.at[step+".lamp"] = lampLight.Position.X()
	}
	h.open(
		WithCameraRig(&tracedRig{CameraRig: camera.New(scene, cam), tr: tr, snap: func() { snapshot("rig") }}),
		WithSky(&tracedSky{SkyManager: sky.New(scene, cam), tr: tr, snap: func() { snapshot("sky") }}),
		WithLocalMap(&tracedMap{FogOfWar: lm, tr: tr}),
		WithOcclusion(&fakeOcclusion{visibility: 0.25}),
		WithWaterFactory(func(cell *world.Cell) WaterSurface {
			return &tracedWater{WaterSurface: newFakeWater(cell), tr: tr}
		}),
	)
	actors = h.m.Actors()
	for _, ref := range []*world.Reference{guard, lamp} {
		if err := h.m.AddObject(ref); err != nil {
			t.Fatal(err)
		}
	}
	for _, l := range scene.Lights() {
		if l.Name == "lamp" {
			lampLight = l
		}
	}
	h.m.CellAdded(cell)
	h.world.MovePlayer(cell, mgl32.Vec3{})
	h.m.MoveObject(lamp, mgl32.Vec3{64, 0, 0})

	if err := h.m.Update(0.5, false); err != nil {
		t.Fatal(err)
	}

	want := []string{"rig", "sky", "glare", "localmap", "underwater", "water"}
	if strings.Join(tr.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("Expected %v, got %v", want, tr.calls)
	}
	if tr.at["glare"] != 0.25 {
		t.Errorf("Expected glare 0.25 from the occlusion query, got %f", tr.at["glare"])
	}
	if tr.at["rig.anim"] != 0 || tr.at["sky.anim"] != 0.5 {
		t.Errorf("Expected actors updated between rig and sky, got %f and %f", tr.at["rig.anim"], tr.at["sky.anim"])
	}
	if tr.at["rig.lamp"] != 0 || tr.at["sky.lamp"] != 64 {
		t.Errorf("Expected objects updated between rig and sky, got %f and %f", tr.at["rig.lamp"], tr.at["sky.lamp"])
	}
}

func TestUpdatePausedFreezesWorld(t *testing.T) {
	h := prepare(t, 0)
	lm, err := localmap.New(h.fog)
	if err != nil {
		t.Fatal(err)
	}
	h.open(WithLocalMap(lm))

	cell := h.world.Cells.Exterior(0, 0, true)
	h.world.MovePlayer(cell, mgl32.Vec3{4096, 4096, 0})
	if err := h.m.RequestMap(cell); err != nil {
		t.Fatal(err)
	}
	tile, _ := lm.Tile(localmap.TileKey{X: 0, Y: 0})
	centre := tile.PixOffset(localmap.FogResolution/2, localmap.FogResolution/2)

	if err := h.m.Update(0.1, true); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got := h.rend.TimeFactor(); got != 0 {
		t.Errorf("Expected time factor 0 while paused, got %f", got)
	}
	if tile.Pix[centre] != 255 {
		t.Errorf("Expected fog untouched while paused, got %d", tile.Pix[centre])
	}

	if err := h.m.Update(0.1, false); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got := h.rend.TimeFactor(); got != 1 {
		t.Errorf("Expected time factor 1, got %f", got)
	}
	if tile.Pix[centre] == 255 {
		t.Errorf("Expected fog cleared around the player")
	}
}

func TestUpdateTimeFactor(t *testing.T) {
	tests := []struct {
		scale float32
		want  float32
	}{
		{30, 1},
		{60, 2},
		{0, 0},
	}
	for _, tt := range tests {
		h := newHarness(t, 0)
		h.world.SetTimeScaleFactor(tt.scale)
		if err := h.m.Update(0.016, false); err != nil {
			t.Fatal(err)
		}
		if got := h.rend.TimeFactor(); got != tt.want {
			t.Errorf("Expected time factor %f for scale %f, got %f", tt.want, tt.scale, got)
		}
	}
}

func TestUpdateWrapsStageErrors(t *testing.T) {
	cause := errors.New("cloud texture missing")
	h := newHarness(t, 0, WithSky(&failingSky{
		Sky: sky.New(graphics.NewScene(), graphics.NewCamera(800, 600)),
		err: cause,
	}))

	err := h.m.Update(0.016, false)
	if err == nil {
		t.Fatal("Expected an error from the sky stage")
	}
	if !strings.HasPrefix(err.Error(), "sky: ") {
		t.Errorf("Expected the stage named in %q", err.Error())
	}
	if pkgerrors.Cause(err) != cause {
		t.Errorf("Expected cause %v, got %v", cause, pkgerrors.Cause(err))
	}

	// the sky does not run while paused
	if err := h.m.Update(0.016, true); err != nil {
		t.Errorf("Expected paused update to succeed, got %v", err)
	}
	if err := h.m.Update(-1, true); err == nil {
		t.Errorf("Expected negative dt to fail")
	}
}

func TestUpdateUnderwater(t *testing.T) {
	h := newHarness(t, 0)
	cell := world.NewInterior("Mournhold, Plaza Brindisi Dorom")
	cell.HasWater = true
	cell.WaterHeight = 100
	h.world.MovePlayer(cell, mgl32.Vec3{})
	h.m.CellAdded(cell)

	if err := h.m.Update(0.016, false); err != nil {
		t.Fatal(err)
	}
	w := h.waters[0]
	if !w.underwater {
		t.Errorf("Expected camera below the water at 100")
	}
	if w.updates != 1 {
		t.Errorf("Expected 1 water update, got %d", w.updates)
	}

	cell.WaterHeight = -100
	if err := h.m.Update(0.016, true); err != nil {
		t.Fatal(err)
	}
	if !w.underwater || w.updates != 1 {
		t.Errorf("Expected water untouched while paused")
	}
	if err := h.m.Update(0.016, false); err != nil {
		t.Fatal(err)
	}
	if w.underwater {
		t.Errorf("Expected camera above the water at -100")
	}
}

func TestUpdatePullsCameraInFrontOfWalls(t *testing.T) {
	h := newHarness(t, 0)
	rig := h.m.Rig().(*camera.Rig)

	cell := world.NewInterior("Caldera, Governor's Hall")
	h.world.MovePlayer(cell, mgl32.Vec3{})
	if err := h.m.RenderPlayer(h.world.Player()); err != nil {
		t.Fatalf("RenderPlayer failed: %v", err)
	}
	rig.ToggleViewMode()

	if err := h.m.Update(0.016, false); err != nil {
		t.Fatal(err)
	}
	if got := rig.CameraDistance(); got != 192 {
		t.Errorf("Expected free camera at 192, got %f", got)
	}

	h.phys.Add("wall", physics.AABB{Min: mgl32.Vec3{-50, -100, 0}, Max: mgl32.Vec3{50, -90, 300}})
	for i := 0; i < 2; i++ {
		if err := h.m.Update(0.016, false); err != nil {
			t.Fatal(err)
		}
		if got := rig.CameraDistance(); math.Abs(float64(got-90)) > 1e-3 {
			t.Errorf("Expected camera pulled in to 90, got %f", got)
		}
	}

	h.phys.Remove("wall")
	if err := h.m.Update(0.016, false); err != nil {
		t.Fatal(err)
	}
	if got := rig.CameraDistance(); got != 192 {
		t.Errorf("Expected camera back at 192, got %f", got)
	}
}

func TestUpdateFirstPersonSkipsRayTest(t *testing.T) {
	h := newHarness(t, 0)
	rig := h.m.Rig().(*camera.Rig)
	cell := world.NewInterior("Caldera, Governor's Hall")
	h.world.MovePlayer(cell, mgl32.Vec3{})
	if err := h.m.RenderPlayer(h.world.Player()); err != nil {
		t.Fatal(err)
	}
	h.phys.Add("wall", physics.AABB{Min: mgl32.Vec3{-50, -100, 0}, Max: mgl32.Vec3{50, -90, 300}})
	if err := h.m.Update(0.016, false); err != nil {
		t.Fatal(err)
	}
	if rig.CameraDistance() != 192 || !rig.IsFirstPerson() {
		t.Errorf("Expected untouched first person camera, got %f", rig.CameraDistance())
	}
}

func TestSkyEnableBindsOcclusion(t *testing.T) {
	occ := &fakeOcclusion{visibility: 0.25}
	h := newHarness(t, 0, WithOcclusion(occ))

	h.m.SkyEnable()
	sun, ok := h.rend.Scene().Node("sky_sun")
	if !ok || occ.sun != sun {
		t.Errorf("Expected occlusion bound to the sky sun")
	}
	if err := h.m.Update(0.016, true); err != nil {
		t.Fatal(err)
	}
	if occ.updates != 1 {
		t.Errorf("Expected occlusion to run while paused")
	}
	if err := h.m.Update(0.016, false); err != nil {
		t.Fatal(err)
	}
	h.m.SkyDisable()
}

func TestSkyForwarding(t *testing.T) {
	s := sky.New(graphics.NewScene(), graphics.NewCamera(800, 600))
	h := newHarness(t, 0, WithSky(s))

	h.m.SkySetHour(13.5)
	h.m.SkySetDate(16, 7)
	h.m.SkySetMasserState(sky.PhaseFull)
	h.m.SkySetSecundaState(sky.PhaseWaxingGibbous)
	h.m.SkySetMoonColour(true)
	h.m.SetGlare(0.5)

	if s.Hour() != 13.5 {
		t.Errorf("Expected hour 13.5, got %f", s.Hour())
	}
	if day, month := s.Date(); day != 16 || month != 7 {
		t.Errorf("Expected 16/7, got %d/%d", day, month)
	}
	if h.m.SkyMasserPhase() != sky.PhaseFull || h.m.SkySecundaPhase() != sky.PhaseWaxingGibbous {
		t.Errorf("Expected moon phases forwarded")
	}
	if s.SecundaColour() == sky.New(graphics.NewScene(), graphics.NewCamera(800, 600)).SecundaColour() {
		t.Errorf("Expected a tinted Secunda")
	}
	if s.Glare() != 0.5 {
		t.Errorf("Expected glare 0.5, got %f", s.Glare())
	}
}
