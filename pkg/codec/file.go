package codec

import (
	"os"

	"github.com/strataforge/agsi/pkg/errors"
	"github.com/strataforge/agsi/pkg/ground"
)

// ReadFile loads a pretty- or compact-JSON document from path. A missing or
// unreadable file reports an IO error; a file that reads fine but does not
// parse reports a JSON or deserialization error, so callers can tell the two
// apart.
func ReadFile(path string) (*ground.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	}
	return deserializeJSON(data)
}

// WriteFile writes doc to path as pretty JSON, the canonical on-disk form.
func WriteFile(path string, doc *ground.Document) error {
	data, err := serializeJSON(doc, true)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}

// ReadFileFormat loads a document from path in an explicitly chosen format.
func ReadFileFormat(path string, format Format) (*ground.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	}
	return Deserialize(data, format)
}

// WriteFileFormat writes doc to path in an explicitly chosen format.
func WriteFileFormat(path string, doc *ground.Document, format Format) error {
	data, err := Serialize(doc, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}
