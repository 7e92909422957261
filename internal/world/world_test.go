package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestExteriorCreatedOnce(t *testing.T) {
	cs := NewCellStore()
	if c := cs.Exterior(2, 3, false); c != nil {
		t.Fatalf("Expected nil without create, got %v", c)
	}
	a := cs.Exterior(2, 3, true)
	b := cs.Exterior(2, 3, true)
	if a != b {
		t.Errorf("Expected the same cell on second lookup")
	}
	if !a.Exterior || a.GridX != 2 || a.GridY != 3 {
		t.Errorf("Expected exterior at (2,3), got %v", a)
	}
	if cs.Len() != 1 {
		t.Errorf("Expected 1 cell, got %d", cs.Len())
	}
}

func TestIsUnderwater(t *testing.T) {
	w := New()
	dry := NewInterior("Balmora, Guild of Mages")
	wet := NewInterior("Vivec, Arena Canalworks")
	wet.HasWater = true
	wet.WaterHeight = 100

	tests := []struct {
		name string
		cell *Cell
		pos  mgl32.Vec3
		want bool
	}{
		{"nil cell", nil, mgl32.Vec3{0, 0, -10}, false},
		{"no water", dry, mgl32.Vec3{0, 0, -10}, false},
		{"below surface", wet, mgl32.Vec3{0, 0, 50}, true},
		{"above surface", wet, mgl32.Vec3{0, 0, 150}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.IsUnderwater(tt.cell, tt.pos); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestMovePlayer(t *testing.T) {
	w := New()
	if w.IsCellExterior() {
		t.Errorf("Expected no exterior before the first move")
	}
	ext := w.Cells.Exterior(0, 0, true)
	w.MovePlayer(ext, mgl32.Vec3{1, 2, 3})
	if !w.IsCellExterior() {
		t.Errorf("Expected exterior after move")
	}
	if _, ok := ext.Find(PlayerHandle); !ok {
		t.Errorf("Expected player in exterior cell")
	}

	in := NewInterior("Seyda Neen, Census and Excise Office")
	in.QuasiExterior = true
	w.MovePlayer(in, mgl32.Vec3{})
	if _, ok := ext.Find(PlayerHandle); ok {
		t.Errorf("Expected player removed from previous cell")
	}
	if !w.IsCellQuasiExterior() || w.IsCellExterior() {
		t.Errorf("Expected quasi exterior interior")
	}
	if w.Player().Cell != in {
		t.Errorf("Expected player back pointer to new cell")
	}
}
