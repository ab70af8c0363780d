package validate

import (
	"strings"
	"testing"

	"github.com/strataforge/agsi/pkg/errors"
	"github.com/strataforge/agsi/pkg/geometry"
	"github.com/strataforge/agsi/pkg/ground"
)

func validDocument() *ground.Document {
	doc := ground.NewDocument("TEST001")
	model := ground.NewGroundModel("MODEL001", "Test model", ground.ModelStratigraphic, ground.Dimension2D)
	model.AddMaterial(ground.NewMaterial("MAT001", "Clay", ground.MaterialSoil))
	model.AddComponent(ground.NewComponent("C1", "Layer 1", ground.ComponentLayer, "MAT001", geometry.Point(0, 0, 0)))
	model.Extent = ground.NewExtent3D(0, 100, 0, 100, -10, 10)
	doc.AddModel(model)
	return doc
}

func TestValidDocument(t *testing.T) {
	doc := validDocument()
	r := Document(doc)

	if !r.IsValid() {
		t.Fatalf("IsValid() = false, want true; report:\n%s", r)
	}
	if len(r.Errors()) != 0 {
		t.Errorf("Errors() = %v, want empty", r.Errors())
	}
	if len(r.Warnings()) != 0 {
		t.Errorf("Warnings() = %v, want empty", r.Warnings())
	}
}

func TestEmptyFileID(t *testing.T) {
	doc := validDocument()
	doc.File.FileID = ""

	r := Document(doc)
	if r.IsValid() {
		t.Fatal("IsValid() = true, want false")
	}
	if got := r.Errors()[0]; got.Kind != KindSchema || got.Path != "agsFile.fileId" {
		t.Errorf("first error = %+v, want Schema at agsFile.fileId", got)
	}
}

func TestSchemaVersionMismatchIsWarning(t *testing.T) {
	doc := validDocument()
	doc.Schema.Version = "0.9.0"

	r := Document(doc)
	if !r.IsValid() {
		t.Errorf("IsValid() = false, want true (version mismatch is a warning)")
	}
	if len(r.Warnings()) != 1 {
		t.Fatalf("len(Warnings()) = %d, want 1", len(r.Warnings()))
	}
	if r.Warnings()[0].Path != "agsSchema.version" {
		t.Errorf("warning path = %q, want agsSchema.version", r.Warnings()[0].Path)
	}
}

func TestDuplicateModelID(t *testing.T) {
	doc := ground.NewDocument("TEST001")
	doc.AddModel(ground.NewGroundModel("M", "first", ground.ModelStratigraphic, ground.Dimension2D))
	doc.AddModel(ground.NewGroundModel("M", "second", ground.ModelStratigraphic, ground.Dimension2D))

	r := Document(doc)
	if r.IsValid() {
		t.Fatal("IsValid() = true, want false")
	}

	// Every occurrence is reported, not just the duplicate tail.
	var refErrors []Issue
	for _, e := range r.Errors() {
		if e.Kind == KindReference {
			refErrors = append(refErrors, e)
		}
	}
	if len(refErrors) != 2 {
		t.Fatalf("reference errors = %d, want 2; report:\n%s", len(refErrors), r)
	}
	if refErrors[0].Path != "agsiModel[0].id" || refErrors[1].Path != "agsiModel[1].id" {
		t.Errorf("paths = %q, %q, want agsiModel[0].id, agsiModel[1].id",
			refErrors[0].Path, refErrors[1].Path)
	}
}

func TestDuplicateMaterialID(t *testing.T) {
	doc := ground.NewDocument("TEST001")
	model := ground.NewGroundModel("MODEL001", "Test", ground.ModelStratigraphic, ground.Dimension2D)
	model.AddMaterial(ground.NewMaterial("MAT001", "Clay", ground.MaterialSoil))
	model.AddMaterial(ground.NewMaterial("MAT001", "Sand", ground.MaterialSoil))
	doc.AddModel(model)

	r := Document(doc)
	if r.IsValid() {
		t.Fatal("IsValid() = true, want false")
	}

	found := false
	for _, e := range r.Errors() {
		if e.Kind == KindReference && strings.Contains(e.Message, "MAT001") {
			found = true
		}
	}
	if !found {
		t.Errorf("no Reference error mentioning MAT001; report:\n%s", r)
	}
}

func TestMissingMaterialReference(t *testing.T) {
	doc := ground.NewDocument("TEST001")
	model := ground.NewGroundModel("MODEL001", "Test", ground.ModelStratigraphic, ground.Dimension2D)
	model.AddComponent(ground.NewComponent("COMP001", "Layer 1", ground.ComponentLayer,
		"MAT_MISSING", geometry.Point(0, 0, 0)))
	doc.AddModel(model)

	r := Document(doc)
	if r.IsValid() {
		t.Fatal("IsValid() = true, want false")
	}
	if len(r.Errors()) != 1 {
		t.Fatalf("len(Errors()) = %d, want 1; report:\n%s", len(r.Errors()), r)
	}

	e := r.Errors()[0]
	if e.Kind != KindReference {
		t.Errorf("Kind = %v, want Reference", e.Kind)
	}
	if e.Path != "agsiModel[0].components[0].materialId" {
		t.Errorf("Path = %q, want agsiModel[0].components[0].materialId", e.Path)
	}
	if !strings.Contains(e.Message, "MAT_MISSING") {
		t.Errorf("Message = %q, want mention of MAT_MISSING", e.Message)
	}
}

func TestExtentRangeErrors(t *testing.T) {
	z := func(v float64) *float64 { return &v }

	tests := []struct {
		name      string
		extent    *ground.Extent
		wantCount int
	}{
		{
			name:      "min_x greater than max_x",
			extent:    &ground.Extent{MinX: 10, MaxX: 5, MinY: 0, MaxY: 10},
			wantCount: 1,
		},
		{
			name:      "min_y greater than max_y",
			extent:    &ground.Extent{MinX: 0, MaxX: 10, MinY: 10, MaxY: 5},
			wantCount: 1,
		},
		{
			name:      "min_z greater than max_z",
			extent:    &ground.Extent{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10, MinZ: z(5), MaxZ: z(-5)},
			wantCount: 1,
		},
		{
			name:      "only one z bound present",
			extent:    &ground.Extent{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10, MinZ: z(5)},
			wantCount: 0,
		},
		{
			name:      "all axes inverted",
			extent:    &ground.Extent{MinX: 10, MaxX: 5, MinY: 10, MaxY: 5, MinZ: z(5), MaxZ: z(-5)},
			wantCount: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDocument()
			doc.Models[0].Extent = tt.extent

			r := Document(doc)
			var rangeErrors int
			for _, e := range r.Errors() {
				if e.Kind == KindRange {
					rangeErrors++
				}
			}
			if rangeErrors != tt.wantCount {
				t.Errorf("range errors = %d, want %d; report:\n%s", rangeErrors, tt.wantCount, r)
			}
		})
	}
}

func TestReportString(t *testing.T) {
	doc := validDocument()
	r := Document(doc)
	if !strings.HasPrefix(r.String(), "✓ Validation passed") {
		t.Errorf("String() = %q, want checkmark summary", r.String())
	}

	doc.Models[0].Components[0].MaterialID = "NOPE"
	r = Document(doc)
	out := r.String()
	if !strings.HasPrefix(out, "✗ Validation failed") {
		t.Errorf("String() = %q, want cross summary", out)
	}
	if !strings.Contains(out, "• agsiModel[0].components[0].materialId - ") {
		t.Errorf("String() missing bulleted path line:\n%s", out)
	}
}

func TestValidationDoesNotMutate(t *testing.T) {
	doc := validDocument()
	doc.Models[0].Components[0].MaterialID = "DANGLING"
	before := len(doc.Models[0].Materials)

	Document(doc)

	if len(doc.Models[0].Materials) != before {
		t.Error("validation mutated the document")
	}
	if doc.Models[0].Components[0].MaterialID != "DANGLING" {
		t.Error("validation rewrote a component reference")
	}
}

func TestCheck(t *testing.T) {
	if err := Check(validDocument()); err != nil {
		t.Errorf("Check(valid) = %v, want nil", err)
	}

	doc := validDocument()
	doc.Models[0].Components[0].MaterialID = "MISSING"
	err := Check(doc)
	if !errors.Is(err, errors.ErrCodeValidation) {
		t.Errorf("Check(invalid) code = %v, want VALIDATION", errors.GetCode(err))
	}
	if !strings.Contains(err.Error(), "1 errors") {
		t.Errorf("Check(invalid) = %v, want error count in message", err)
	}
}
