// Package validate checks a document against the structural and referential
// rules of the interchange format.
//
// Validation is a pure pass over the entity graph: nothing is cached between
// calls and the document is never mutated. Errors mark the document invalid;
// warnings (currently only a schema-version mismatch) do not.
package validate

import (
	"fmt"
	"strings"

	"github.com/strataforge/agsi/pkg/errors"
	"github.com/strataforge/agsi/pkg/ground"
)

// IssueKind classifies a validation error.
type IssueKind string

// Issue kinds.
const (
	KindSchema    IssueKind = "SCHEMA"
	KindRequired  IssueKind = "REQUIRED"
	KindType      IssueKind = "TYPE"
	KindRange     IssueKind = "RANGE"
	KindFormat    IssueKind = "FORMAT"
	KindReference IssueKind = "REFERENCE"
)

// Issue is one validation error, located by a JSON-ish path into the
// document.
type Issue struct {
	Path    string    `json:"path"`
	Message string    `json:"message"`
	Kind    IssueKind `json:"type"`
}

// Warning is a non-fatal finding. Warnings never make a document invalid.
type Warning struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Report is the outcome of validating one document. External surfaces (CLI,
// agent) format their output from this exact shape; treat it as a stable
// contract.
type Report struct {
	valid    bool
	errors   []Issue
	warnings []Warning
}

// IsValid reports whether the document passed without errors.
func (r *Report) IsValid() bool {
	return r.valid
}

// Errors returns the recorded validation errors in document order.
func (r *Report) Errors() []Issue {
	return r.errors
}

// Warnings returns the recorded warnings in document order.
func (r *Report) Warnings() []Warning {
	return r.warnings
}

func (r *Report) addError(kind IssueKind, path, format string, args ...any) {
	r.errors = append(r.errors, Issue{Path: path, Message: fmt.Sprintf(format, args...), Kind: kind})
	r.valid = false
}

func (r *Report) addWarning(path, format string, args ...any) {
	r.warnings = append(r.warnings, Warning{Path: path, Message: fmt.Sprintf(format, args...)})
}

// String renders the report for humans: a pass/fail summary line followed by
// one bullet per finding as "path - message".
func (r *Report) String() string {
	var b strings.Builder

	if r.valid {
		b.WriteString("✓ Validation passed\n")
	} else {
		b.WriteString("✗ Validation failed\n")
	}

	if len(r.errors) > 0 {
		fmt.Fprintf(&b, "\n%d Errors:\n", len(r.errors))
		for _, e := range r.errors {
			fmt.Fprintf(&b, "  • %s - %s\n", e.Path, e.Message)
		}
	}

	if len(r.warnings) > 0 {
		fmt.Fprintf(&b, "\n%d Warnings:\n", len(r.warnings))
		for _, w := range r.warnings {
			fmt.Fprintf(&b, "  • %s - %s\n", w.Path, w.Message)
		}
	}

	return b.String()
}

// Document validates doc and returns the full report. The pass runs every
// check on every call; results are never cached, and doc is not modified.
func Document(doc *ground.Document) *Report {
	r := &Report{valid: true}

	checkStructure(doc, r)

	if doc.Schema.Version != ground.SchemaVersion {
		r.addWarning("agsSchema.version",
			"Schema version %s differs from library version %s",
			doc.Schema.Version, ground.SchemaVersion)
	}

	for modelIdx := range doc.Models {
		model := &doc.Models[modelIdx]

		// Duplicate model ids: every occurrence gets its own error, not
		// just the trailing duplicates.
		dups := 0
		for i := range doc.Models {
			if doc.Models[i].ID == model.ID {
				dups++
			}
		}
		if dups > 1 {
			r.addError(KindReference, fmt.Sprintf("agsiModel[%d].id", modelIdx),
				"Duplicate model ID: %s", model.ID)
		}

		for compIdx := range model.Components {
			comp := &model.Components[compIdx]
			if model.Material(comp.MaterialID) == nil {
				r.addError(KindReference,
					fmt.Sprintf("agsiModel[%d].components[%d].materialId", modelIdx, compIdx),
					"Material ID '%s' not found in model", comp.MaterialID)
			}
		}

		for matIdx := range model.Materials {
			mat := &model.Materials[matIdx]
			dups := 0
			for i := range model.Materials {
				if model.Materials[i].ID == mat.ID {
					dups++
				}
			}
			if dups > 1 {
				r.addError(KindReference,
					fmt.Sprintf("agsiModel[%d].materials[%d].id", modelIdx, matIdx),
					"Duplicate material ID: %s", mat.ID)
			}
		}

		if ext := model.Extent; ext != nil {
			path := fmt.Sprintf("agsiModel[%d].extent", modelIdx)
			if ext.MinX > ext.MaxX {
				r.addError(KindRange, path, "minX must be less than or equal to maxX")
			}
			if ext.MinY > ext.MaxY {
				r.addError(KindRange, path, "minY must be less than or equal to maxY")
			}
			if ext.MinZ != nil && ext.MaxZ != nil && *ext.MinZ > *ext.MaxZ {
				r.addError(KindRange, path, "minZ must be less than or equal to maxZ")
			}
		}
	}

	return r
}

// checkStructure enforces required-field constraints on the document and its
// models and materials.
func checkStructure(doc *ground.Document, r *Report) {
	if doc.File.FileID == "" {
		r.addError(KindSchema, "agsFile.fileId", "fileId must not be empty")
	}
	if doc.Schema.Version == "" {
		r.addError(KindSchema, "agsSchema.version", "version must not be empty")
	}

	for i := range doc.Models {
		model := &doc.Models[i]
		if model.ID == "" {
			r.addError(KindSchema, fmt.Sprintf("agsiModel[%d].id", i), "id must not be empty")
		}
		if model.Name == "" {
			r.addError(KindSchema, fmt.Sprintf("agsiModel[%d].name", i), "name must not be empty")
		}
		for j := range model.Materials {
			mat := &model.Materials[j]
			if mat.ID == "" {
				r.addError(KindSchema, fmt.Sprintf("agsiModel[%d].materials[%d].id", i, j), "id must not be empty")
			}
			if mat.Name == "" {
				r.addError(KindSchema, fmt.Sprintf("agsiModel[%d].materials[%d].name", i, j), "name must not be empty")
			}
		}
	}
}

// Check runs the same pass as Document and fails hard on the first report
// with errors. The returned error only carries the count; callers that need
// the individual findings should use Document.
func Check(doc *ground.Document) error {
	r := Document(doc)
	if !r.IsValid() {
		return errors.New(errors.ErrCodeValidation,
			"validation failed with %d errors", len(r.errors))
	}
	return nil
}
