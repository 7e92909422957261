package compositor

import (
	"fmt"
	"sort"

	"mini-mw/internal/graphics"
	"mini-mw/internal/log"
)

// Compositor is one post-processing stage of the chain.
type Compositor struct {
	Name     string
	Priority int
	Enabled  bool
	Targets  []string
}

// Known render targets per compositor. Each target is exposed as a texture
// named "<compositor>/<target>/<index>".
var knownTargets = map[string][]string{
	"gbuffer":          {"mrt_output"},
	"gbufferFinalizer": {"no_mrt_output"},
	"Underwater":       {"rt"},
}

// Chain implements the ordered compositor chain of the main viewport
type Chain struct {
	tex    *graphics.TextureManager
	width  int
	height int

	compositors []*Compositor
	enabled     bool
	recreations int

	triangles uint
	batches   uint
}

// NewChain creates an enabled, empty chain for a viewport of the given size.
func NewChain(tex *graphics.TextureManager, width, height int) *Chain {
	return &Chain{tex: tex, width: width, height: height, enabled: true}
}

// RemoveAll drops every compositor and its render targets.
func (c *Chain) RemoveAll() {
	for _, comp := range c.compositors {
		c.releaseTargets(comp)
	}
	c.compositors = nil
}

// AddCompositor inserts name ordered by priority. Adding an existing name
// only updates its priority.
func (c *Chain) AddCompositor(name string, priority int) {
	if comp, ok := c.find(name); ok {
		comp.Priority = priority
	} else {
		comp := &Compositor{Name: name, Priority: priority, Targets: knownTargets[name]}
		c.compositors = append(c.compositors, comp)
		c.allocateTargets(comp)
	}
	sort.SliceStable(c.compositors, func(i, j int) bool {
		return c.compositors[i].Priority < c.compositors[j].Priority
	})
}

// SetCompositorEnabled toggles one stage.
func (c *Chain) SetCompositorEnabled(name string, enabled bool) error {
	comp, ok := c.find(name)
	if !ok {
		return fmt.Errorf("compositor %q not in chain", name)
	}
	comp.Enabled = enabled
	return nil
}

// SetEnabled switches the whole chain without touching the stage flags.
func (c *Chain) SetEnabled(enabled bool) { c.enabled = enabled }
func (c *Chain) Enabled() bool           { return c.enabled }

// Toggle flips the chain and returns the new state.
func (c *Chain) Toggle() bool {
	c.enabled = !c.enabled
	return c.enabled
}

// AnyCompositorEnabled reports whether at least one stage renders.
func (c *Chain) AnyCompositorEnabled() bool {
	if !c.enabled {
		return false
	}
	for _, comp := range c.compositors {
		if comp.Enabled {
			return true
		}
	}
	return false
}

// Has reports whether name is in the chain.
func (c *Chain) Has(name string) bool {
	_, ok := c.find(name)
	return ok
}

// Names lists the stages in render order.
func (c *Chain) Names() []string {
	out := make([]string, len(c.compositors))
	for i, comp := range c.compositors {
		out[i] = comp.Name
	}
	return out
}

// TextureName returns the texture backing a compositor target, or "" when the
// compositor is not active.
func (c *Chain) TextureName(compositor, target string, index int) string {
	comp, ok := c.find(compositor)
	if !ok || !comp.Enabled || !c.enabled {
		return ""
	}
	for _, t := range comp.Targets {
		if t == target {
			return targetName(compositor, target, index)
		}
	}
	return ""
}

// Recreate reallocates every render target at the current viewport size.
func (c *Chain) Recreate() {
	for _, comp := range c.compositors {
		c.releaseTargets(comp)
		c.allocateTargets(comp)
	}
	c.recreations++
	log.Debugf("compositor chain recreated at %dx%d", c.width, c.height)
}

// Recreations counts Recreate calls.
func (c *Chain) Recreations() int { return c.recreations }

func (c *Chain) SetViewport(width, height int) {
	c.width, c.height = width, height
}

// RecordFrame stores the statistics of the last rendered frame.
func (c *Chain) RecordFrame(triangles, batches uint) {
	c.triangles, c.batches = triangles, batches
}

// CountTrianglesBatches returns the statistics of the last frame.
func (c *Chain) CountTrianglesBatches() (uint, uint) {
	return c.triangles, c.batches
}

// Dispose releases all render targets.
func (c *Chain) Dispose() {
	c.RemoveAll()
}

func (c *Chain) find(name string) (*Compositor, bool) {
	for _, comp := range c.compositors {
		if comp.Name == name {
			return comp, true
		}
	}
	return nil, false
}

func (c *Chain) allocateTargets(comp *Compositor) {
	if c.tex == nil {
		return
	}
	for _, t := range comp.Targets {
		// mrt targets carry colour and depth
		for i := 0; i < 2; i++ {
			c.tex.Texture(targetName(comp.Name, t, i), c.width, c.height)
		}
	}
}

func (c *Chain) releaseTargets(comp *Compositor) {
	if c.tex == nil {
		return
	}
	for _, t := range comp.Targets {
		for i := 0; i < 2; i++ {
			c.tex.Remove(targetName(comp.Name, t, i))
		}
	}
}

func targetName(compositor, target string, index int) string {
	return fmt.Sprintf("%s/%s/%d", compositor, target, index)
}
