// Package geometry represents the spatial shapes carried by ground model
// components.
//
// The variant set is closed: Point, LineString, Polygon, Surface and
// Collection. Points, polylines and polygons are canonicalizable to WKT
// (z dropped); surfaces are opaque OBJ payloads carried as base64; a
// collection nests other geometries. Every variant carries an optional
// coordinate reference system label.
package geometry

import (
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/strataforge/agsi/pkg/errors"
)

// Kind discriminates the geometry variants. The set is closed; consumers
// switching on Kind can handle every case exhaustively.
type Kind string

// Geometry variant tags. The values double as the JSON "type" discriminator.
const (
	KindPoint      Kind = "point"
	KindLineString Kind = "lineString"
	KindPolygon    Kind = "polygon"
	KindSurface    Kind = "surface"
	KindCollection Kind = "collection"
)

// Coord is a single x, y, z position.
type Coord [3]float64

// SurfaceMetadata describes an opaque 3D surface payload.
type SurfaceMetadata struct {
	VertexCount int          `json:"vertexCount"`
	FaceCount   int          `json:"faceCount"`
	Bounds      *BoundingBox `json:"bounds,omitempty"`
}

// BoundingBox is a 3D axis-aligned bounding box.
type BoundingBox struct {
	Min Coord `json:"min"`
	Max Coord `json:"max"`
}

// Geometry is the closed tagged union of spatial shapes. Exactly the fields
// relevant to Kind are populated; the zero value is not a valid geometry.
//
// Geometry is owned exclusively by the component (or enclosing Collection)
// that holds it. There is no sharing between components.
type Geometry struct {
	kind Kind

	point  Coord   // KindPoint
	coords []Coord // KindLineString
	rings  [][]Coord // KindPolygon: rings[0] exterior, remainder holes

	objData string           // KindSurface, base64-encoded OBJ payload
	meta    *SurfaceMetadata // KindSurface, optional

	geometries []Geometry // KindCollection

	crs string // optional, shared by all variants

	// Cached canonical forms for LineString/Polygon. The binary slot is
	// reserved but never populated; binary canonicalization is not available.
	wkt string
	wkb string
}

// Point creates a point geometry. Construction never fails.
func Point(x, y, z float64) Geometry {
	return Geometry{kind: KindPoint, point: Coord{x, y, z}}
}

// LineString creates a polyline geometry from coords.
// At least 2 vertices are required.
func LineString(coords []Coord) (Geometry, error) {
	if len(coords) < 2 {
		return Geometry{}, errors.New(errors.ErrCodeGeometry,
			"linestring must have at least 2 points, got %d", len(coords))
	}
	return Geometry{kind: KindLineString, coords: coords}, nil
}

// Polygon creates a polygon geometry from an exterior ring and optional
// interior rings (holes). The exterior ring needs at least 3 vertices.
// Ring closure (first vertex == last vertex) is accepted but not enforced.
func Polygon(exterior []Coord, interiors [][]Coord) (Geometry, error) {
	if len(exterior) < 3 {
		return Geometry{}, errors.New(errors.ErrCodeGeometry,
			"polygon exterior ring must have at least 3 points, got %d", len(exterior))
	}
	rings := make([][]Coord, 0, 1+len(interiors))
	rings = append(rings, exterior)
	rings = append(rings, interiors...)
	return Geometry{kind: KindPolygon, rings: rings}, nil
}

// Surface creates a 3D surface geometry from an opaque OBJ payload. The
// payload is stored base64-encoded so it embeds safely in text formats.
func Surface(objData []byte, meta *SurfaceMetadata) Geometry {
	return Geometry{
		kind:    KindSurface,
		objData: base64.StdEncoding.EncodeToString(objData),
		meta:    meta,
	}
}

// Collection creates a geometry holding an ordered list of nested geometries.
func Collection(geometries []Geometry) Geometry {
	return Geometry{kind: KindCollection, geometries: geometries}
}

// Kind returns the variant tag.
func (g *Geometry) Kind() Kind {
	return g.kind
}

// CRS returns the coordinate reference system label, or "" if unset.
func (g *Geometry) CRS() string {
	return g.crs
}

// SetCRS sets the coordinate reference system label on whichever variant
// this geometry currently is.
func (g *Geometry) SetCRS(crs string) {
	g.crs = crs
}

// Coordinates returns the vertex data for Point and LineString geometries.
// For a Point the slice has a single element. Returns nil for other kinds.
func (g *Geometry) Coordinates() []Coord {
	switch g.kind {
	case KindPoint:
		return []Coord{g.point}
	case KindLineString:
		return g.coords
	}
	return nil
}

// Rings returns the ring list for Polygon geometries, nil otherwise.
func (g *Geometry) Rings() [][]Coord {
	if g.kind != KindPolygon {
		return nil
	}
	return g.rings
}

// Geometries returns the nested geometries of a Collection, nil otherwise.
func (g *Geometry) Geometries() []Geometry {
	if g.kind != KindCollection {
		return nil
	}
	return g.geometries
}

// SurfaceData returns the decoded OBJ payload of a Surface geometry.
func (g *Geometry) SurfaceData() ([]byte, error) {
	if g.kind != KindSurface {
		return nil, errors.New(errors.ErrCodeGeometry, "geometry is %s, not a surface", g.kind)
	}
	data, err := base64.StdEncoding.DecodeString(g.objData)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeGeometry, err, "decode surface payload")
	}
	return data, nil
}

// SurfaceMeta returns the surface metadata, or nil when absent or the
// geometry is not a surface.
func (g *Geometry) SurfaceMeta() *SurfaceMetadata {
	if g.kind != KindSurface {
		return nil
	}
	return g.meta
}

// CanonicalText returns the cached canonical WKT form, or "" if it has not
// been computed. Only LineString and Polygon geometries cache their form.
func (g *Geometry) CanonicalText() string {
	return g.wkt
}

// WKT derives the canonical well-known-text form of the geometry. The z
// coordinate is dropped; only x and y participate. Surface and Collection
// geometries have no text form and return a GEOMETRY error. That is a firm
// limitation of the interchange format, not a pending capability.
func (g *Geometry) WKT() (string, error) {
	switch g.kind {
	case KindPoint:
		return "POINT(" + formatCoord(g.point) + ")", nil
	case KindLineString:
		return "LINESTRING(" + formatRing(g.coords) + ")", nil
	case KindPolygon:
		var b strings.Builder
		b.WriteString("POLYGON(")
		for i, ring := range g.rings {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('(')
			b.WriteString(formatRing(ring))
			b.WriteByte(')')
		}
		b.WriteByte(')')
		return b.String(), nil
	case KindSurface:
		return "", errors.New(errors.ErrCodeGeometry, "surface geometry cannot be converted to WKT")
	case KindCollection:
		return "", errors.New(errors.ErrCodeGeometry, "collection geometry not supported for WKT")
	}
	return "", errors.New(errors.ErrCodeGeometry, "unknown geometry kind %q", g.kind)
}

// ComputeCanonical recomputes the WKT form and stores it on LineString and
// Polygon geometries. The binary (WKB) slot is left empty; no binary
// canonicalization is implemented. Other variants are left untouched.
func (g *Geometry) ComputeCanonical() error {
	switch g.kind {
	case KindLineString, KindPolygon:
		wkt, err := g.WKT()
		if err != nil {
			return err
		}
		g.wkt = wkt
		g.wkb = ""
	}
	return nil
}

func formatRing(coords []Coord) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = formatCoord(c)
	}
	return strings.Join(parts, ",")
}

func formatCoord(c Coord) string {
	return strconv.FormatFloat(c[0], 'f', -1, 64) + " " + strconv.FormatFloat(c[1], 'f', -1, 64)
}
