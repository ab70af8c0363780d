package codec

import (
	"bytes"
	_ "embed"
	"encoding/json"

	"github.com/hamba/avro/v2/ocf"

	"github.com/strataforge/agsi/pkg/errors"
	"github.com/strataforge/agsi/pkg/geometry"
	"github.com/strataforge/agsi/pkg/ground"
)

// DefaultAvroSchema is the embedded writer schema for the Avro container
// format. SerializeAvroWithSchema accepts an externally supplied schema for
// deployments that pin their own revision.
//
//go:embed agsi.avsc
var DefaultAvroSchema string

// The Avro container holds exactly one record per file. Fixed scalar fields
// map onto Avro primitives; the shapes Avro cannot govern without losing
// information (geometry, property values, open metadata and extension maps,
// the project descriptor) travel as JSON-encoded strings inside the record.
// That keeps the container schema-governed while preserving everything the
// JSON form preserves.

type avroSchemaInfo struct {
	Version string `avro:"version"`
	Variant string `avro:"variant"`
}

type avroFileInfo struct {
	FileID       string `avro:"fileId"`
	FileName     string `avro:"fileName"`
	FileDate     string `avro:"fileDate"`
	FileAuthor   string `avro:"fileAuthor"`
	FileSoftware string `avro:"fileSoftware"`
	FileVersion  string `avro:"fileVersion"`
	FileComments string `avro:"fileComments"`
}

type avroProperty struct {
	Name   string `avro:"name"`
	Value  string `avro:"value"`
	Unit   string `avro:"unit"`
	Method string `avro:"method"`
	Source string `avro:"source"`
}

type avroMaterial struct {
	ID          string            `avro:"id"`
	Name        string            `avro:"name"`
	Description string            `avro:"description"`
	Type        string            `avro:"materialType"`
	Geology     string            `avro:"geology"`
	Properties  []avroProperty    `avro:"properties"`
	Metadata    map[string]string `avro:"metadata"`
}

type avroComponent struct {
	ID         string            `avro:"id"`
	Name       string            `avro:"name"`
	Type       string            `avro:"componentType"`
	MaterialID string            `avro:"materialId"`
	Geometry   string            `avro:"geometry"`
	Top        *float64          `avro:"top"`
	Base       *float64          `avro:"base"`
	Thickness  *float64          `avro:"thickness"`
	Attributes map[string]string `avro:"attributes"`
}

type avroExtent struct {
	MinX float64  `avro:"minX"`
	MaxX float64  `avro:"maxX"`
	MinY float64  `avro:"minY"`
	MaxY float64  `avro:"maxY"`
	MinZ *float64 `avro:"minZ"`
	MaxZ *float64 `avro:"maxZ"`
}

type avroModel struct {
	ID          string            `avro:"id"`
	Name        string            `avro:"name"`
	Description string            `avro:"description"`
	Type        string            `avro:"modelType"`
	Dimension   string            `avro:"dimension"`
	Components  []avroComponent   `avro:"components"`
	Materials   []avroMaterial    `avro:"materials"`
	CRS         string            `avro:"crs"`
	Extent      *avroExtent       `avro:"extent"`
	Metadata    map[string]string `avro:"metadata"`
}

type avroDocument struct {
	Schema     avroSchemaInfo    `avro:"agsSchema"`
	File       avroFileInfo      `avro:"agsFile"`
	Project    string            `avro:"agsProject"`
	Models     []avroModel       `avro:"agsiModel"`
	Extensions map[string]string `avro:"extensions"`
}

// serializeAvro writes doc as a single-record Avro object container file
// governed by the given schema.
func serializeAvro(doc *ground.Document, schema string) ([]byte, error) {
	rec, err := toAvro(doc)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc, err := ocf.NewEncoder(schema, &buf)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSerialization, err, "open avro container")
	}
	if err := enc.Encode(rec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSerialization, err, "encode document record")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSerialization, err, "close avro container")
	}
	return buf.Bytes(), nil
}

// SerializeAvroWithSchema encodes doc against a caller-supplied schema
// instead of the embedded one. The schema must be structurally compatible
// with DefaultAvroSchema.
func SerializeAvroWithSchema(doc *ground.Document, schema string) ([]byte, error) {
	return serializeAvro(doc, schema)
}

// deserializeAvro reads the first record of an Avro object container. A
// container with no records is a hard error, not an empty document.
func deserializeAvro(data []byte) (*ground.Document, error) {
	dec, err := ocf.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDeserialization, err, "open avro container")
	}
	if !dec.HasNext() {
		if err := dec.Error(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeDeserialization, err, "read avro container")
		}
		return nil, errors.New(errors.ErrCodeDeserialization, "avro container holds no document record")
	}

	var rec avroDocument
	if err := dec.Decode(&rec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDeserialization, err, "decode document record")
	}
	return fromAvro(&rec)
}

func toAvro(doc *ground.Document) (*avroDocument, error) {
	rec := &avroDocument{
		Schema: avroSchemaInfo{Version: doc.Schema.Version, Variant: doc.Schema.Variant},
		File: avroFileInfo{
			FileID:       doc.File.FileID,
			FileName:     doc.File.FileName,
			FileDate:     doc.File.FileDate,
			FileAuthor:   doc.File.FileAuthor,
			FileSoftware: doc.File.FileSoftware,
			FileVersion:  doc.File.FileVersion,
			FileComments: doc.File.FileComments,
		},
		Models: []avroModel{},
	}

	if doc.Project != nil {
		data, err := json.Marshal(doc.Project)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeSerialization, err, "encode project")
		}
		rec.Project = string(data)
	}

	ext, err := encodeJSONMap(doc.Extensions)
	if err != nil {
		return nil, err
	}
	rec.Extensions = ext

	for i := range doc.Models {
		m, err := modelToAvro(&doc.Models[i])
		if err != nil {
			return nil, err
		}
		rec.Models = append(rec.Models, m)
	}
	return rec, nil
}

func modelToAvro(model *ground.GroundModel) (avroModel, error) {
	out := avroModel{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		Type:        string(model.Type),
		Dimension:   string(model.Dimension),
		Components:  []avroComponent{},
		Materials:   []avroMaterial{},
		CRS:         model.CRS,
	}

	if model.Extent != nil {
		out.Extent = &avroExtent{
			MinX: model.Extent.MinX, MaxX: model.Extent.MaxX,
			MinY: model.Extent.MinY, MaxY: model.Extent.MaxY,
			MinZ: model.Extent.MinZ, MaxZ: model.Extent.MaxZ,
		}
	}

	meta, err := encodeJSONMap(model.Metadata)
	if err != nil {
		return avroModel{}, err
	}
	out.Metadata = meta

	for i := range model.Components {
		comp := &model.Components[i]
		geom, err := json.Marshal(comp.Geometry)
		if err != nil {
			return avroModel{}, errors.Wrap(errors.ErrCodeSerialization, err,
				"encode geometry of component %s", comp.ID)
		}
		attrs, err := encodeJSONMap(comp.Attributes)
		if err != nil {
			return avroModel{}, err
		}
		out.Components = append(out.Components, avroComponent{
			ID:         comp.ID,
			Name:       comp.Name,
			Type:       string(comp.Type),
			MaterialID: comp.MaterialID,
			Geometry:   string(geom),
			Top:        comp.Top,
			Base:       comp.Base,
			Thickness:  comp.Thickness,
			Attributes: attrs,
		})
	}

	for i := range model.Materials {
		mat := &model.Materials[i]
		am := avroMaterial{
			ID:          mat.ID,
			Name:        mat.Name,
			Description: mat.Description,
			Type:        string(mat.Type),
			Geology:     mat.Geology,
			Properties:  []avroProperty{},
		}
		meta, err := encodeJSONMap(mat.Metadata)
		if err != nil {
			return avroModel{}, err
		}
		am.Metadata = meta
		for _, p := range mat.Properties {
			val, err := json.Marshal(p.Value)
			if err != nil {
				return avroModel{}, errors.Wrap(errors.ErrCodeSerialization, err,
					"encode property %s of material %s", p.Name, mat.ID)
			}
			am.Properties = append(am.Properties, avroProperty{
				Name:   p.Name,
				Value:  string(val),
				Unit:   p.Unit,
				Method: p.Method,
				Source: string(p.Source),
			})
		}
		out.Materials = append(out.Materials, am)
	}
	return out, nil
}

func fromAvro(rec *avroDocument) (*ground.Document, error) {
	doc := &ground.Document{
		Schema: ground.SchemaInfo{Version: rec.Schema.Version, Variant: rec.Schema.Variant},
		File: ground.FileInfo{
			FileID:       rec.File.FileID,
			FileName:     rec.File.FileName,
			FileDate:     rec.File.FileDate,
			FileAuthor:   rec.File.FileAuthor,
			FileSoftware: rec.File.FileSoftware,
			FileVersion:  rec.File.FileVersion,
			FileComments: rec.File.FileComments,
		},
		Models: []ground.GroundModel{},
	}

	if rec.Project != "" {
		var p ground.Project
		if err := json.Unmarshal([]byte(rec.Project), &p); err != nil {
			return nil, errors.Wrap(errors.ErrCodeDeserialization, err, "decode project")
		}
		doc.Project = &p
	}

	ext, err := decodeJSONMap(rec.Extensions)
	if err != nil {
		return nil, err
	}
	doc.Extensions = ext

	for i := range rec.Models {
		m, err := modelFromAvro(&rec.Models[i])
		if err != nil {
			return nil, err
		}
		doc.Models = append(doc.Models, m)
	}
	return doc, nil
}

func modelFromAvro(rec *avroModel) (ground.GroundModel, error) {
	model := ground.GroundModel{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Type:        ground.ModelType(rec.Type),
		Dimension:   ground.Dimension(rec.Dimension),
		Components:  []ground.ModelComponent{},
		Materials:   []ground.Material{},
		CRS:         rec.CRS,
	}

	if rec.Extent != nil {
		model.Extent = &ground.Extent{
			MinX: rec.Extent.MinX, MaxX: rec.Extent.MaxX,
			MinY: rec.Extent.MinY, MaxY: rec.Extent.MaxY,
			MinZ: rec.Extent.MinZ, MaxZ: rec.Extent.MaxZ,
		}
	}

	meta, err := decodeJSONMap(rec.Metadata)
	if err != nil {
		return ground.GroundModel{}, err
	}
	model.Metadata = meta

	for _, c := range rec.Components {
		var geom geometry.Geometry
		if err := json.Unmarshal([]byte(c.Geometry), &geom); err != nil {
			return ground.GroundModel{}, errors.Wrap(errors.ErrCodeDeserialization, err,
				"decode geometry of component %s", c.ID)
		}
		attrs, err := decodeJSONMap(c.Attributes)
		if err != nil {
			return ground.GroundModel{}, err
		}
		model.Components = append(model.Components, ground.ModelComponent{
			ID:         c.ID,
			Name:       c.Name,
			Type:       ground.ComponentType(c.Type),
			MaterialID: c.MaterialID,
			Geometry:   geom,
			Top:        c.Top,
			Base:       c.Base,
			Thickness:  c.Thickness,
			Attributes: attrs,
		})
	}

	for _, m := range rec.Materials {
		mat := ground.Material{
			ID:          m.ID,
			Name:        m.Name,
			Description: m.Description,
			Type:        ground.MaterialType(m.Type),
			Geology:     m.Geology,
			Properties:  []ground.MaterialProperty{},
		}
		meta, err := decodeJSONMap(m.Metadata)
		if err != nil {
			return ground.GroundModel{}, err
		}
		mat.Metadata = meta
		for _, p := range m.Properties {
			var val ground.PropertyValue
			if err := json.Unmarshal([]byte(p.Value), &val); err != nil {
				return ground.GroundModel{}, errors.Wrap(errors.ErrCodeDeserialization, err,
					"decode property %s of material %s", p.Name, m.ID)
			}
			mat.Properties = append(mat.Properties, ground.MaterialProperty{
				Name:   p.Name,
				Value:  val,
				Unit:   p.Unit,
				Method: p.Method,
				Source: ground.PropertySource(p.Source),
			})
		}
		model.Materials = append(model.Materials, mat)
	}
	return model, nil
}

// encodeJSONMap turns an open map into map[string]string with JSON-encoded
// values, the only shape the container schema can carry without interpreting
// the contents.
func encodeJSONMap(in map[string]any) (map[string]string, error) {
	out := make(map[string]string, len(in))
	for k, v := range in {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeSerialization, err, "encode open map key %q", k)
		}
		out[k] = string(data)
	}
	return out, nil
}

// decodeJSONMap reverses encodeJSONMap.
func decodeJSONMap(in map[string]string) (map[string]any, error) {
	out := make(map[string]any, len(in))
	for k, raw := range in {
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, errors.Wrap(errors.ErrCodeDeserialization, err, "decode open map key %q", k)
		}
		out[k] = v
	}
	return out, nil
}
