package codec

import (
	"encoding/json"

	"github.com/strataforge/agsi/pkg/errors"
	"github.com/strataforge/agsi/pkg/ground"
)

// serializeJSON encodes doc as JSON. Pretty output is indented with two
// spaces; compact output drops all insignificant whitespace, so it is never
// larger than the pretty form of the same document.
func serializeJSON(doc *ground.Document, pretty bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSerialization, err, "encode document as JSON")
	}
	return data, nil
}

// deserializeJSON decodes a document from JSON. Both pretty and compact input
// are accepted; whitespace is not significant on the way in.
func deserializeJSON(data []byte) (*ground.Document, error) {
	var doc ground.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		if _, ok := err.(*json.SyntaxError); ok {
			return nil, errors.Wrap(errors.ErrCodeJSONParse, err, "malformed JSON")
		}
		return nil, errors.Wrap(errors.ErrCodeDeserialization, err, "decode document from JSON")
	}
	return &doc, nil
}
