package occlusion

import (
	"testing"

	"mini-mw/internal/graphics"
	"mini-mw/internal/physics"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSunVisibilityFades(t *testing.T) {
	scene := graphics.NewScene()
	sun := scene.Root().CreateChild("sun")
	sun.SetPosition(mgl32.Vec3{0, 0, 1000})

	phys := physics.NewWorld()
	q := New(phys, graphics.NewCamera(800, 600))
	if err := q.Update(0.1); err != nil {
		t.Fatal(err)
	}
	if q.SunVisibility() != 0 {
		t.Errorf("Expected no visibility without a sun node, got %f", q.SunVisibility())
	}

	q.SetSunNode(sun)
	_ = q.Update(0.125)
	if v := q.SunVisibility(); v != 0.5 {
		t.Errorf("Expected half visibility after 0.125s, got %f", v)
	}
	_ = q.Update(1)
	if v := q.SunVisibility(); v != 1 {
		t.Errorf("Expected full visibility, got %f", v)
	}

	phys.Add("roof", physics.AABB{Min: mgl32.Vec3{-10, -10, 100}, Max: mgl32.Vec3{10, 10, 110}})
	_ = q.Update(1)
	if v := q.SunVisibility(); v != 0 {
		t.Errorf("Expected sun occluded by the roof, got %f", v)
	}
}

func TestUnsupported(t *testing.T) {
	q := New(nil, graphics.NewCamera(800, 600))
	if q.IsSupported() {
		t.Errorf("Expected query without a tester to be unsupported")
	}
	q.SetSunNode(graphics.NewScene().Root())
	if err := q.Update(1); err != nil || q.SunVisibility() != 0 {
		t.Errorf("Expected zero visibility, got %f %v", q.SunVisibility(), err)
	}
}
