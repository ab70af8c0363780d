package codec

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/hamba/avro/v2/ocf"

	"github.com/strataforge/agsi/pkg/errors"
	"github.com/strataforge/agsi/pkg/geometry"
	"github.com/strataforge/agsi/pkg/ground"
)

// sampleDocument exercises every shape the codecs must carry: a project
// descriptor, all property value kinds, optional elevations, an extent,
// open metadata and extension maps, and more than one geometry variant.
func sampleDocument(t *testing.T) *ground.Document {
	t.Helper()

	doc := ground.NewDocument("FILE001")
	doc.File.FileAuthor = "Site Investigations Ltd"
	doc.File.FileDate = "2026-08-27"

	project := ground.NewProject("PROJ001", "Riverside Crossing")
	project.Client = "Metro Infrastructure"
	doc.Project = project

	doc.Extensions["x_custom"] = map[string]any{"reviewed": true, "revision": float64(3)}

	model := ground.NewGroundModel("MODEL001", "Geology section", ground.ModelStratigraphic, ground.Dimension2D)
	model.CRS = "EPSG:27700"
	model.Extent = ground.NewExtent3D(0, 500, 0, 200, -40, 15)
	model.Metadata["interpreter"] = "J. Stone"

	clay := ground.NewMaterial("MAT001", "London Clay", ground.MaterialSoil)
	clay.Geology = "London Clay Formation"
	clay.AddProperty(ground.NumericProperty("density", 1900, "kg/m3"))
	clay.AddProperty(ground.RangeProperty("cohesion", 50, 80, "kPa"))
	clay.AddProperty(ground.TextProperty("colour", "brown grey"))
	clay.AddProperty(ground.MaterialProperty{Name: "fissured", Value: ground.BoolValue(true)})
	clay.AddProperty(ground.MaterialProperty{
		Name:  "spt_n",
		Value: ground.ArrayValue([]float64{12, 18, 22}),
	})
	clay.Metadata["bgs_lexicon"] = "LC"
	model.AddMaterial(clay)

	poly, err := geometry.Polygon([]geometry.Coord{
		{0, 0, 0}, {500, 0, 0}, {500, 200, 0}, {0, 0, 0},
	}, nil)
	if err != nil {
		t.Fatalf("Polygon() error = %v", err)
	}

	layer := ground.NewComponent("COMP001", "Upper clay", ground.ComponentLayer, "MAT001", poly)
	layer.SetElevations(15, -5)
	layer.Attributes["confidence"] = "high"
	model.AddComponent(layer)

	marker := ground.NewComponent("COMP002", "Base marker", ground.ComponentBoundary, "MAT001",
		geometry.Point(250, 100, -5))
	model.AddComponent(marker)

	doc.AddModel(model)
	return doc
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{name: "json", want: FormatJSON},
		{name: "json-compact", want: FormatJSONCompact},
		{name: "avro", want: FormatAvro},
		{name: "protobuf", want: FormatProtobuf},
		{name: "proto", want: FormatProtobuf},
		{name: "yaml", wantErr: true},
		{name: "", wantErr: true},
		{name: "JSON", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("name "+tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.name)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidFormat) {
					t.Errorf("ParseFormat(%q) code = %v, want INVALID_FORMAT", tt.name, errors.GetCode(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q) error = %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestFormatString(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatJSONCompact, FormatAvro, FormatProtobuf} {
		if _, err := ParseFormat(f.String()); err != nil {
			t.Errorf("ParseFormat(%v.String()) error = %v, want nil", f, err)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	doc := sampleDocument(t)

	first, err := Serialize(doc, FormatJSON)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	decoded, err := Deserialize(first, FormatJSON)
	if err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}

	second, err := Serialize(decoded, FormatJSON)
	if err != nil {
		t.Fatalf("re-Serialize() error = %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("round trip changed the document:\nfirst:\n%s\nsecond:\n%s", first, second)
	}

	if !reflect.DeepEqual(decoded, doc) {
		t.Errorf("decoded document differs from original")
	}
}

func TestCompactNoLargerThanPretty(t *testing.T) {
	doc := sampleDocument(t)

	pretty, err := Serialize(doc, FormatJSON)
	if err != nil {
		t.Fatalf("Serialize(json) error = %v", err)
	}
	compact, err := Serialize(doc, FormatJSONCompact)
	if err != nil {
		t.Fatalf("Serialize(json-compact) error = %v", err)
	}

	if len(compact) > len(pretty) {
		t.Errorf("compact output %d bytes, pretty %d bytes", len(compact), len(pretty))
	}

	// Compact input decodes the same as pretty input.
	fromCompact, err := Deserialize(compact, FormatJSONCompact)
	if err != nil {
		t.Fatalf("Deserialize(compact) error = %v", err)
	}
	if !reflect.DeepEqual(fromCompact, doc) {
		t.Error("compact round trip differs from original")
	}
}

func TestAvroRoundTrip(t *testing.T) {
	doc := sampleDocument(t)

	data, err := Serialize(doc, FormatAvro)
	if err != nil {
		t.Fatalf("Serialize(avro) error = %v", err)
	}

	decoded, err := Deserialize(data, FormatAvro)
	if err != nil {
		t.Fatalf("Deserialize(avro) error = %v", err)
	}

	// Compare through the canonical JSON form: map ordering inside the
	// container is irrelevant, the observable document must match.
	want, err := Serialize(doc, FormatJSON)
	if err != nil {
		t.Fatalf("Serialize(json) error = %v", err)
	}
	got, err := Serialize(decoded, FormatJSON)
	if err != nil {
		t.Fatalf("Serialize(decoded) error = %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("avro round trip changed the document:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestAvroEmptyContainer(t *testing.T) {
	var buf bytes.Buffer
	enc, err := ocf.NewEncoder(DefaultAvroSchema, &buf)
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	_, err = Deserialize(buf.Bytes(), FormatAvro)
	if !errors.Is(err, errors.ErrCodeDeserialization) {
		t.Fatalf("Deserialize(empty container) code = %v, want DESERIALIZATION", errors.GetCode(err))
	}
	if !strings.Contains(err.Error(), "no document record") {
		t.Errorf("Deserialize(empty container) = %v, want mention of missing record", err)
	}
}

func TestAvroGarbage(t *testing.T) {
	if _, err := Deserialize([]byte("not an avro container"), FormatAvro); !errors.Is(err, errors.ErrCodeDeserialization) {
		t.Errorf("Deserialize(garbage) code = %v, want DESERIALIZATION", errors.GetCode(err))
	}
}

func TestProtobufStub(t *testing.T) {
	doc := sampleDocument(t)

	_, err := Serialize(doc, FormatProtobuf)
	if !errors.Is(err, errors.ErrCodeSerialization) {
		t.Errorf("Serialize(protobuf) code = %v, want SERIALIZATION", errors.GetCode(err))
	}
	if err == nil || !strings.Contains(err.Error(), "not implemented") {
		t.Errorf("Serialize(protobuf) = %v, want descriptive stub error", err)
	}

	_, err = Deserialize([]byte{0x0a}, FormatProtobuf)
	if !errors.Is(err, errors.ErrCodeDeserialization) {
		t.Errorf("Deserialize(protobuf) code = %v, want DESERIALIZATION", errors.GetCode(err))
	}
}

func TestMalformedJSON(t *testing.T) {
	_, err := Deserialize([]byte(`{"agsSchema": `), FormatJSON)
	if !errors.Is(err, errors.ErrCodeJSONParse) {
		t.Errorf("Deserialize(truncated) code = %v, want JSON_PARSE", errors.GetCode(err))
	}
}

func TestFileRoundTrip(t *testing.T) {
	doc := sampleDocument(t)
	path := filepath.Join(t.TempDir(), "site.agsi.json")

	if err := WriteFile(path, doc); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	loaded, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !reflect.DeepEqual(loaded, doc) {
		t.Error("file round trip differs from original")
	}

	// On-disk form is the pretty one.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("os.ReadFile() error = %v", err)
	}
	if !bytes.Contains(raw, []byte("\n  ")) {
		t.Error("WriteFile() output is not indented")
	}
}

func TestReadFileErrors(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("ReadFile(missing) code = %v, want IO_ERROR", errors.GetCode(err))
	}

	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{ broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(path); !errors.Is(err, errors.ErrCodeJSONParse) {
		t.Errorf("ReadFile(broken) code = %v, want JSON_PARSE", errors.GetCode(err))
	}
}

func TestWriteFileFormatAvro(t *testing.T) {
	doc := sampleDocument(t)
	path := filepath.Join(t.TempDir(), "site.avro")

	if err := WriteFileFormat(path, doc, FormatAvro); err != nil {
		t.Fatalf("WriteFileFormat() error = %v", err)
	}
	loaded, err := ReadFileFormat(path, FormatAvro)
	if err != nil {
		t.Fatalf("ReadFileFormat() error = %v", err)
	}
	if loaded.File.FileID != doc.File.FileID {
		t.Errorf("FileID = %q, want %q", loaded.File.FileID, doc.File.FileID)
	}
}
