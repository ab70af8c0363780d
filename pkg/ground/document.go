package ground

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/strataforge/agsi/pkg/buildinfo"
)

// SchemaVersion is the interchange schema revision this library implements.
// Documents declaring a different version still load; validation records a
// warning for the mismatch.
const SchemaVersion = "1.0.1"

// Document is the root aggregate of an interchange file: schema and file
// metadata, an optional project descriptor, and an ordered list of ground
// models. Keys not covered by the schema survive in Extensions and are
// written back verbatim on encode.
type Document struct {
	Schema  SchemaInfo
	File    FileInfo
	Project *Project
	Models  []GroundModel

	// Extensions holds top-level keys outside the schema. Never interpreted,
	// always preserved through encode/decode.
	Extensions map[string]any
}

// SchemaInfo declares the schema revision a document conforms to.
type SchemaInfo struct {
	Version string `json:"version"`
	Variant string `json:"variant,omitempty"`
}

// FileInfo carries file-level metadata. FileID is the only required field.
type FileInfo struct {
	FileID       string `json:"fileId"`
	FileName     string `json:"fileName,omitempty"`
	FileDate     string `json:"fileDate,omitempty"` // ISO 8601
	FileAuthor   string `json:"fileAuthor,omitempty"`
	FileSoftware string `json:"fileSoftware,omitempty"`
	FileVersion  string `json:"fileVersion,omitempty"`
	FileComments string `json:"fileComments,omitempty"`
}

// NewDocument creates an empty document with the given file id, stamped with
// the current schema version and this library as the producing software.
func NewDocument(fileID string) *Document {
	return &Document{
		Schema: SchemaInfo{Version: SchemaVersion},
		File: FileInfo{
			FileID:       fileID,
			FileSoftware: "agsi-go",
			FileVersion:  buildinfo.Version,
		},
		Models:     []GroundModel{},
		Extensions: map[string]any{},
	}
}

// NewDocumentWithGeneratedID creates a document with a random UUID file id.
func NewDocumentWithGeneratedID() *Document {
	return NewDocument(uuid.NewString())
}

// AddModel appends a ground model to the document. No dedup happens here;
// duplicate model ids are flagged by validation, not at insertion.
func (d *Document) AddModel(m GroundModel) {
	d.Models = append(d.Models, m)
}

// Model returns the first model with the given id, or nil when absent.
// Later duplicates are shadowed until validation flags them.
func (d *Document) Model(id string) *GroundModel {
	for i := range d.Models {
		if d.Models[i].ID == id {
			return &d.Models[i]
		}
	}
	return nil
}

// documentJSON is the fixed part of the wire shape. Extension keys are
// merged alongside these at the top level.
type documentJSON struct {
	Schema  SchemaInfo    `json:"agsSchema"`
	File    FileInfo      `json:"agsFile"`
	Project *Project      `json:"agsProject,omitempty"`
	Models  []GroundModel `json:"agsiModel"`
}

// MarshalJSON flattens Extensions into the top-level object next to the
// schema-defined keys.
func (d Document) MarshalJSON() ([]byte, error) {
	models := d.Models
	if models == nil {
		models = []GroundModel{}
	}
	fixed, err := json.Marshal(documentJSON{
		Schema:  d.Schema,
		File:    d.File,
		Project: d.Project,
		Models:  models,
	})
	if err != nil {
		return nil, err
	}
	if len(d.Extensions) == 0 {
		return fixed, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(fixed, &merged); err != nil {
		return nil, err
	}
	for k, v := range d.Extensions {
		if _, taken := merged[k]; taken {
			continue // schema keys win over colliding extensions
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		merged[k] = raw
	}
	return json.Marshal(merged)
}

// UnmarshalJSON splits the top-level object into schema-defined fields and
// extension keys. Unknown keys are kept, not dropped.
func (d *Document) UnmarshalJSON(data []byte) error {
	var fixed documentJSON
	if err := json.Unmarshal(data, &fixed); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	delete(all, "agsSchema")
	delete(all, "agsFile")
	delete(all, "agsProject")
	delete(all, "agsiModel")

	ext := map[string]any{}
	for k, raw := range all {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		ext[k] = v
	}

	d.Schema = fixed.Schema
	d.File = fixed.File
	d.Project = fixed.Project
	d.Models = fixed.Models
	if d.Models == nil {
		d.Models = []GroundModel{}
	}
	d.Extensions = ext
	return nil
}
