package geometry

import (
	"encoding/json"

	"github.com/strataforge/agsi/pkg/errors"
)

// envelope is the wire shape shared by every variant. The "type" field
// discriminates; the remaining fields are populated per variant.
type envelope struct {
	Type        Kind             `json:"type"`
	Coordinates json.RawMessage  `json:"coordinates,omitempty"`
	Rings       [][]Coord        `json:"rings,omitempty"`
	CRS         string           `json:"crs,omitempty"`
	WKT         string           `json:"wkt,omitempty"`
	WKB         string           `json:"wkb,omitempty"`
	OBJData     string           `json:"objData,omitempty"`
	Metadata    *SurfaceMetadata `json:"metadata,omitempty"`
	Geometries  []Geometry       `json:"geometries,omitempty"`
}

// MarshalJSON encodes the geometry as a tagged object. Only the fields of
// the current variant are emitted.
func (g Geometry) MarshalJSON() ([]byte, error) {
	env := envelope{Type: g.kind, CRS: g.crs}
	switch g.kind {
	case KindPoint:
		raw, err := json.Marshal(g.point)
		if err != nil {
			return nil, err
		}
		env.Coordinates = raw
	case KindLineString:
		raw, err := json.Marshal(g.coords)
		if err != nil {
			return nil, err
		}
		env.Coordinates = raw
		env.WKT = g.wkt
		env.WKB = g.wkb
	case KindPolygon:
		env.Rings = g.rings
		env.WKT = g.wkt
		env.WKB = g.wkb
	case KindSurface:
		env.OBJData = g.objData
		env.Metadata = g.meta
	case KindCollection:
		env.Geometries = g.geometries
		if env.Geometries == nil {
			env.Geometries = []Geometry{}
		}
	default:
		return nil, errors.New(errors.ErrCodeGeometry, "cannot encode geometry of unknown kind %q", g.kind)
	}
	return json.Marshal(env)
}

// UnmarshalJSON decodes a tagged geometry object. Construction invariants
// (vertex counts, ring closure) are not re-checked on decode; the validation
// engine owns document-level rules.
func (g *Geometry) UnmarshalJSON(data []byte) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	out := Geometry{kind: env.Type, crs: env.CRS}
	switch env.Type {
	case KindPoint:
		if len(env.Coordinates) > 0 {
			if err := json.Unmarshal(env.Coordinates, &out.point); err != nil {
				return errors.Wrap(errors.ErrCodeGeometry, err, "decode point coordinates")
			}
		}
	case KindLineString:
		if len(env.Coordinates) > 0 {
			if err := json.Unmarshal(env.Coordinates, &out.coords); err != nil {
				return errors.Wrap(errors.ErrCodeGeometry, err, "decode linestring coordinates")
			}
		}
		out.wkt = env.WKT
		out.wkb = env.WKB
	case KindPolygon:
		out.rings = env.Rings
		out.wkt = env.WKT
		out.wkb = env.WKB
	case KindSurface:
		out.objData = env.OBJData
		out.meta = env.Metadata
	case KindCollection:
		out.geometries = env.Geometries
	default:
		return errors.New(errors.ErrCodeGeometry, "unknown geometry type %q", env.Type)
	}

	*g = out
	return nil
}
