package cli

import (
	"strings"

	"github.com/strataforge/agsi/pkg/errors"
	"github.com/strataforge/agsi/pkg/ground"
)

// modelNotFound is the shared error for a missing model id.
func modelNotFound(id string) error {
	return errors.New(errors.ErrCodeModelNotFound, "model %q not found in document", id)
}

// documentInfo is the summary shape shared by the info command, the agent
// tools and the HTTP endpoints.
type documentInfo struct {
	FileID         string      `json:"fileId"`
	FileName       string      `json:"fileName,omitempty"`
	FileAuthor     string      `json:"fileAuthor,omitempty"`
	FileDate       string      `json:"fileDate,omitempty"`
	SchemaVersion  string      `json:"schemaVersion"`
	ProjectName    string      `json:"projectName,omitempty"`
	Models         []modelInfo `json:"models"`
	ModelCount     int         `json:"modelCount"`
	ComponentCount int         `json:"componentCount"`
	MaterialCount  int         `json:"materialCount"`
	PropertyCount  int         `json:"propertyCount"`
}

type modelInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"modelType"`
	Dimension  string `json:"dimension"`
	Components int    `json:"components"`
	Materials  int    `json:"materials"`
}

// inspect summarizes a document without validating it.
func inspect(doc *ground.Document) documentInfo {
	info := documentInfo{
		FileID:        doc.File.FileID,
		FileName:      doc.File.FileName,
		FileAuthor:    doc.File.FileAuthor,
		FileDate:      doc.File.FileDate,
		SchemaVersion: doc.Schema.Version,
		Models:        []modelInfo{},
	}
	if doc.Project != nil {
		info.ProjectName = doc.Project.Name
	}

	for i := range doc.Models {
		m := &doc.Models[i]
		info.Models = append(info.Models, modelInfo{
			ID:         m.ID,
			Name:       m.Name,
			Type:       string(m.Type),
			Dimension:  string(m.Dimension),
			Components: len(m.Components),
			Materials:  len(m.Materials),
		})
		info.ComponentCount += len(m.Components)
		info.MaterialCount += len(m.Materials)
		for j := range m.Materials {
			info.PropertyCount += len(m.Materials[j].Properties)
		}
	}
	info.ModelCount = len(doc.Models)
	return info
}

// materialMatch pairs a material with the model that owns it.
type materialMatch struct {
	ModelID  string          `json:"modelId"`
	Material ground.Material `json:"material"`
}

// queryMaterials returns every material across all models matching the given
// filters. An empty name matches everything; names match on case-insensitive
// substring. An empty materialType matches all types.
func queryMaterials(doc *ground.Document, name, materialType string) []materialMatch {
	matches := []materialMatch{}
	needle := strings.ToLower(name)

	for i := range doc.Models {
		model := &doc.Models[i]
		for j := range model.Materials {
			mat := &model.Materials[j]
			if needle != "" && !strings.Contains(strings.ToLower(mat.Name), needle) {
				continue
			}
			if materialType != "" && !strings.EqualFold(string(mat.Type), materialType) {
				continue
			}
			matches = append(matches, materialMatch{ModelID: model.ID, Material: *mat})
		}
	}
	return matches
}
