package graphics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

type FogMode int

const (
	FogNone FogMode = iota
	FogLinear
)

// Fog holds the scene fog state.
type Fog struct {
	Mode    FogMode
	Colour  colorful.Color
	Density float32
	Start   float32
	End     float32
}

type LightType int

const (
	LightPoint LightType = iota
	LightDirectional
)

// Light is a scene light. Directional lights use Direction only.
type Light struct {
	Name      string
	Type      LightType
	Diffuse   colorful.Color
	Specular  colorful.Color
	Direction mgl32.Vec3
	Position  mgl32.Vec3
	Visible   bool
}

// Scene owns the node graph, the lights and global scene state.
type Scene struct {
	root    *Node
	nodes   map[string]*Node
	lights  []*Light
	ambient colorful.Color
	fog     Fog

	showBoundingBoxes bool
	anonymous         int
}

// NewScene creates a scene with an empty root node.
func NewScene() *Scene {
	s := &Scene{nodes: make(map[string]*Node)}
	s.root = newNode("root", s)
	s.nodes[s.root.name] = s.root
	return s
}

func (s *Scene) Root() *Node { return s.root }

func (s *Scene) register(n *Node) {
	if n.name == "" {
		s.anonymous++
		n.name = fmt.Sprintf("unnamed_%d", s.anonymous)
	}
	s.nodes[n.name] = n
}

// Node looks a node up by name.
func (s *Scene) Node(name string) (*Node, bool) {
	n, ok := s.nodes[name]
	return n, ok
}

// DestroyNode detaches n and unregisters it together with its subtree.
func (s *Scene) DestroyNode(n *Node) {
	if n == nil || n == s.root {
		return
	}
	n.Detach()
	n.Walk(func(c *Node) {
		if s.nodes[c.name] == c {
			delete(s.nodes, c.name)
		}
	})
}

// NodeCount returns the number of registered nodes including the root.
func (s *Scene) NodeCount() int { return len(s.nodes) }

// CreateLight adds a point light; callers change the type as needed.
func (s *Scene) CreateLight(name string) *Light {
	l := &Light{Name: name, Type: LightPoint, Diffuse: White, Specular: White, Visible: true}
	s.lights = append(s.lights, l)
	return l
}

// DestroyLight removes l from the scene.
func (s *Scene) DestroyLight(l *Light) {
	for i, o := range s.lights {
		if o == l {
			s.lights = append(s.lights[:i], s.lights[i+1:]...)
			return
		}
	}
}

func (s *Scene) Lights() []*Light { return s.lights }

func (s *Scene) SetAmbientLight(c colorful.Color) { s.ambient = c }
func (s *Scene) AmbientLight() colorful.Color     { return s.ambient }

func (s *Scene) SetFog(mode FogMode, colour colorful.Color, density, start, end float32) {
	s.fog = Fog{Mode: mode, Colour: colour, Density: density, Start: start, End: end}
}

func (s *Scene) Fog() Fog { return s.fog }

func (s *Scene) ShowBoundingBoxes(show bool) { s.showBoundingBoxes = show }
func (s *Scene) BoundingBoxesShown() bool    { return s.showBoundingBoxes }
