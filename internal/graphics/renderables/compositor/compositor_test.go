package compositor

import (
	"reflect"
	"testing"

	"mini-mw/internal/graphics"
)

func TestAddCompositorOrdersByPriority(t *testing.T) {
	c := NewChain(nil, 800, 600)
	c.AddCompositor("gbufferFinalizer", 2)
	c.AddCompositor("gbuffer", 0)
	c.AddCompositor("Underwater", 1)

	want := []string{"gbuffer", "Underwater", "gbufferFinalizer"}
	if got := c.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	c.AddCompositor("gbuffer", 3)
	if got := c.Names(); got[2] != "gbuffer" || len(got) != 3 {
		t.Errorf("Expected gbuffer moved last without duplication, got %v", got)
	}
}

func TestAnyCompositorEnabled(t *testing.T) {
	c := NewChain(nil, 800, 600)
	if c.AnyCompositorEnabled() {
		t.Fatalf("Expected empty chain to be inactive")
	}
	c.AddCompositor("gbuffer", 0)
	if c.AnyCompositorEnabled() {
		t.Errorf("Expected new compositors to start disabled")
	}
	if err := c.SetCompositorEnabled("gbuffer", true); err != nil {
		t.Fatal(err)
	}
	if !c.AnyCompositorEnabled() {
		t.Errorf("Expected chain active")
	}
	if c.Toggle() {
		t.Errorf("Expected toggle to disable chain")
	}
	if c.AnyCompositorEnabled() {
		t.Errorf("Expected disabled chain to be inactive")
	}
	if err := c.SetCompositorEnabled("missing", true); err == nil {
		t.Errorf("Expected error for unknown compositor")
	}
}

func TestRenderTargets(t *testing.T) {
	tex := graphics.NewTextureManager()
	c := NewChain(tex, 800, 600)
	c.AddCompositor("gbuffer", 0)
	_ = c.SetCompositorEnabled("gbuffer", true)

	name := c.TextureName("gbuffer", "mrt_output", 1)
	if name != "gbuffer/mrt_output/1" {
		t.Fatalf("Expected gbuffer/mrt_output/1, got %q", name)
	}
	img, ok := tex.Lookup(name)
	if !ok || img.Bounds().Dx() != 800 {
		t.Fatalf("Expected 800 wide target, got %v", ok)
	}

	c.SetViewport(1920, 1080)
	c.Recreate()
	img, _ = tex.Lookup(name)
	if img.Bounds().Dx() != 1920 || img.Bounds().Dy() != 1080 {
		t.Errorf("Expected target resized to 1920x1080, got %v", img.Bounds())
	}
	if c.Recreations() != 1 {
		t.Errorf("Expected 1 recreation, got %d", c.Recreations())
	}

	c.RemoveAll()
	if _, ok := tex.Lookup(name); ok {
		t.Errorf("Expected targets released")
	}
	if got := c.TextureName("gbuffer", "mrt_output", 1); got != "" {
		t.Errorf("Expected no texture after RemoveAll, got %q", got)
	}
}
