package ground

import (
	"testing"

	"github.com/strataforge/agsi/pkg/geometry"
)

func TestGroundModelLookups(t *testing.T) {
	model := NewGroundModel("MODEL001", "Site model", ModelStratigraphic, Dimension2D)
	model.AddMaterial(NewMaterial("MAT001", "Clay", MaterialSoil))
	model.AddMaterial(NewMaterial("MAT002", "Sand", MaterialSoil))

	model.AddComponent(NewComponent("C1", "Upper clay", ComponentLayer, "MAT001", geometry.Point(0, 0, 0)))
	model.AddComponent(NewComponent("C2", "Sand lens", ComponentLens, "MAT002", geometry.Point(0, 0, -5)))
	model.AddComponent(NewComponent("C3", "Lower clay", ComponentLayer, "MAT001", geometry.Point(0, 0, -10)))

	if got := model.Material("MAT002"); got == nil || got.Name != "Sand" {
		t.Errorf("Material(MAT002) = %v, want Sand", got)
	}
	if got := model.Component("C2"); got == nil || got.Type != ComponentLens {
		t.Errorf("Component(C2) = %v, want lens", got)
	}
	if got := model.Component("C9"); got != nil {
		t.Errorf("Component(C9) = %v, want nil", got)
	}

	byMat := model.ComponentsByMaterial("MAT001")
	if len(byMat) != 2 {
		t.Fatalf("len(ComponentsByMaterial(MAT001)) = %d, want 2", len(byMat))
	}
	if byMat[0].ID != "C1" || byMat[1].ID != "C3" {
		t.Errorf("ComponentsByMaterial order = %s, %s, want C1, C3", byMat[0].ID, byMat[1].ID)
	}
}

func TestSetElevations(t *testing.T) {
	c := NewComponent("C1", "layer", ComponentLayer, "MAT001", geometry.Point(0, 0, 0))
	c.SetElevations(12.5, 4.5)

	if *c.Top != 12.5 || *c.Base != 4.5 {
		t.Errorf("Top/Base = %v/%v, want 12.5/4.5", *c.Top, *c.Base)
	}
	if *c.Thickness != 8 {
		t.Errorf("Thickness = %v, want 8", *c.Thickness)
	}

	// Inverted elevations still yield a positive thickness.
	c.SetElevations(4.5, 12.5)
	if *c.Thickness != 8 {
		t.Errorf("Thickness = %v, want 8", *c.Thickness)
	}
}

func TestExtentContains(t *testing.T) {
	z := func(v float64) *float64 { return &v }

	e2d := NewExtent2D(0, 100, 0, 100)
	e3d := NewExtent3D(0, 100, 0, 100, -10, 10)

	tests := []struct {
		name   string
		extent *Extent
		x, y   float64
		z      *float64
		want   bool
	}{
		{name: "2d inside", extent: e2d, x: 50, y: 50, want: true},
		{name: "2d outside x", extent: e2d, x: 150, y: 50, want: false},
		{name: "2d ignores z", extent: e2d, x: 50, y: 50, z: z(9999), want: true},
		{name: "3d inside", extent: e3d, x: 50, y: 50, z: z(0), want: true},
		{name: "3d above", extent: e3d, x: 50, y: 50, z: z(20), want: false},
		{name: "3d no z given", extent: e3d, x: 50, y: 50, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.extent.Contains(tt.x, tt.y, tt.z); got != tt.want {
				t.Errorf("Contains(%v, %v, %v) = %v, want %v", tt.x, tt.y, tt.z, got, tt.want)
			}
		})
	}
}
