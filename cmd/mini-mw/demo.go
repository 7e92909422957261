package main

import (
	"fmt"

	"mini-mw/internal/physics"
	"mini-mw/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// loadDemo fills a small coast: one exterior with land and a rock field, and
// a sea cell next to it without land.
func (a *app) loadDemo() error {
	land := a.world.Cells.Exterior(0, 0, true)
	a.world.Cells.SetLand(0, 0, true)
	land.WaterHeight = -64
	land.Ambience = world.Ambience{
		Ambient:    0x00303030,
		Sunlight:   0x00c0d8f0,
		Fog:        0x00b09080,
		FogDensity: 1,
	}
	sea := a.world.Cells.Exterior(1, 0, true)
	sea.WaterHeight = -64
	sea.Ambience = land.Ambience

	for i := 0; i < 6; i++ {
		pos := mgl32.Vec3{float32(1200 + i*900), float32(2000 + (i%3)*1500), 0}
		land.Insert(&world.Reference{
			Handle:   fmt.Sprintf("rock_%02d", i),
			ID:       "terrain_rock_ac_01",
			Kind:     world.KindStatic,
			Model:    "meshes/terrain_rock_ac_01.nif",
			Position: world.Position{Pos: pos, Rot: mgl32.Vec3{0, 0, float32(i) * 0.7}},
			Scale:    1,
		})
	}
	land.Insert(&world.Reference{
		Handle:   "lantern_00",
		ID:       "light_de_lantern_01",
		Kind:     world.KindLight,
		Model:    "meshes/light_de_lantern_01.nif",
		Position: world.Position{Pos: mgl32.Vec3{4200, 4600, 160}},
		Scale:    1,
		Light:    &world.LightSource{Colour: colorful.Color{R: 1, G: 0.8, B: 0.5}, Radius: 256},
	})
	land.Insert(&world.Reference{
		Handle:   "mudcrab_00",
		ID:       "mudcrab",
		Kind:     world.KindActor,
		Model:    "meshes/r/mudcrab.nif",
		Position: world.Position{Pos: mgl32.Vec3{6000, 7600, 0}},
		Scale:    1,
	})

	for _, cell := range []*world.Cell{land, sea} {
		if err := a.loadCell(cell); err != nil {
			return err
		}
	}

	a.world.MovePlayer(land, mgl32.Vec3{4096, 4096, 0})
	if err := a.m.RenderPlayer(a.world.Player()); err != nil {
		return err
	}
	a.m.ConfigureAmbient(land)
	a.m.ConfigureFog(land)
	a.m.SkyEnable()
	a.advanceClock(0)
	return a.m.RequestMap(land)
}

// loadCell instantiates the references of cell with their collision boxes,
// then the cell itself.
func (a *app) loadCell(cell *world.Cell) error {
	for _, ref := range cell.Refs {
		if err := a.m.AddObject(ref); err != nil {
			return err
		}
		if ref.Kind == world.KindStatic {
			half := mgl32.Vec3{96, 96, 128}.Mul(ref.Scale)
			a.phys.Add(ref.Handle, physics.AABB{Min: ref.Position.Pos.Sub(half), Max: ref.Position.Pos.Add(half)})
		}
	}
	a.m.CellAdded(cell)
	return nil
}
