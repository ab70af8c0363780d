package ground

import "github.com/strataforge/agsi/pkg/geometry"

// ModelType tags the interpretation a ground model carries.
type ModelType string

// Ground model types.
const (
	ModelStratigraphic   ModelType = "STRATIGRAPHIC"
	ModelStructural      ModelType = "STRUCTURAL"
	ModelHydrogeological ModelType = "HYDROGEOLOGICAL"
	ModelGeotechnical    ModelType = "GEOTECHNICAL"
	ModelEnvironmental   ModelType = "ENVIRONMENTAL"
	ModelComposite       ModelType = "COMPOSITE"
)

// Dimension is the spatial dimensionality of a model.
type Dimension string

// Model dimensions.
const (
	Dimension1D Dimension = "ONE_D"   // boreholes, CPTs
	Dimension2D Dimension = "TWO_D"   // cross-sections
	Dimension3D Dimension = "THREE_D" // full 3D models
)

// GroundModel is one geological interpretation: an ordered set of materials
// and the spatial components that reference them.
type GroundModel struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Type        ModelType        `json:"modelType"`
	Dimension   Dimension        `json:"dimension"`
	Components  []ModelComponent `json:"components"`
	Materials   []Material       `json:"materials"`
	CRS         string           `json:"crs,omitempty"`
	Extent      *Extent          `json:"extent,omitempty"`
	Metadata    map[string]any   `json:"metadata"`
}

// ComponentType tags the role of a spatial component.
type ComponentType string

// Component types.
const (
	ComponentLayer     ComponentType = "LAYER"
	ComponentLens      ComponentType = "LENS"
	ComponentVolume    ComponentType = "VOLUME"
	ComponentFault     ComponentType = "FAULT"
	ComponentIntrusion ComponentType = "INTRUSION"
	ComponentBoundary  ComponentType = "BOUNDARY"
)

// ModelComponent is a spatial feature within a model. MaterialID is a string
// foreign key into the owning model's materials, resolved by scan at
// validation time; it is never an ownership pointer.
type ModelComponent struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Type       ComponentType     `json:"componentType"`
	MaterialID string            `json:"materialId"`
	Geometry   geometry.Geometry `json:"geometry"`
	Top        *float64          `json:"top,omitempty"`
	Base       *float64          `json:"base,omitempty"`
	Thickness  *float64          `json:"thickness,omitempty"`
	Attributes map[string]any    `json:"attributes"`
}

// Extent is the axis-aligned bounding region of a model. X and Y bounds are
// mandatory; Z bounds are optional for 2D use.
type Extent struct {
	MinX float64  `json:"minX"`
	MaxX float64  `json:"maxX"`
	MinY float64  `json:"minY"`
	MaxY float64  `json:"maxY"`
	MinZ *float64 `json:"minZ,omitempty"`
	MaxZ *float64 `json:"maxZ,omitempty"`
}

// NewGroundModel creates an empty model with the given identity and tags.
func NewGroundModel(id, name string, typ ModelType, dim Dimension) GroundModel {
	return GroundModel{
		ID:         id,
		Name:       name,
		Type:       typ,
		Dimension:  dim,
		Components: []ModelComponent{},
		Materials:  []Material{},
		Metadata:   map[string]any{},
	}
}

// AddMaterial appends a material. Duplicate ids are not rejected here;
// validation reports every occurrence.
func (m *GroundModel) AddMaterial(mat Material) {
	m.Materials = append(m.Materials, mat)
}

// AddComponent appends a component. The material reference is not checked at
// insertion; a dangling id is only detectable by validation.
func (m *GroundModel) AddComponent(c ModelComponent) {
	m.Components = append(m.Components, c)
}

// Material returns the first material with the given id, or nil.
func (m *GroundModel) Material(id string) *Material {
	for i := range m.Materials {
		if m.Materials[i].ID == id {
			return &m.Materials[i]
		}
	}
	return nil
}

// Component returns the first component with the given id, or nil.
func (m *GroundModel) Component(id string) *ModelComponent {
	for i := range m.Components {
		if m.Components[i].ID == id {
			return &m.Components[i]
		}
	}
	return nil
}

// ComponentsByMaterial returns every component referencing materialID, in
// model order.
func (m *GroundModel) ComponentsByMaterial(materialID string) []*ModelComponent {
	var out []*ModelComponent
	for i := range m.Components {
		if m.Components[i].MaterialID == materialID {
			out = append(out, &m.Components[i])
		}
	}
	return out
}

// NewComponent creates a component referencing materialID with the given
// geometry.
func NewComponent(id, name string, typ ComponentType, materialID string, geom geometry.Geometry) ModelComponent {
	return ModelComponent{
		ID:         id,
		Name:       name,
		Type:       typ,
		MaterialID: materialID,
		Geometry:   geom,
		Attributes: map[string]any{},
	}
}

// SetElevations records top and base elevations and derives the thickness.
func (c *ModelComponent) SetElevations(top, base float64) {
	thickness := top - base
	if thickness < 0 {
		thickness = -thickness
	}
	c.Top = &top
	c.Base = &base
	c.Thickness = &thickness
}

// NewExtent2D builds an extent without Z bounds.
func NewExtent2D(minX, maxX, minY, maxY float64) *Extent {
	return &Extent{MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY}
}

// NewExtent3D builds an extent with Z bounds.
func NewExtent3D(minX, maxX, minY, maxY, minZ, maxZ float64) *Extent {
	return &Extent{MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY, MinZ: &minZ, MaxZ: &maxZ}
}

// Contains reports whether the point lies inside the extent. The z test only
// applies when both the argument and both Z bounds are present.
func (e *Extent) Contains(x, y float64, z *float64) bool {
	inside := x >= e.MinX && x <= e.MaxX && y >= e.MinY && y <= e.MaxY
	if z != nil && e.MinZ != nil && e.MaxZ != nil {
		return inside && *z >= *e.MinZ && *z <= *e.MaxZ
	}
	return inside
}
