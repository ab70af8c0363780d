package codec

import (
	"github.com/strataforge/agsi/pkg/errors"
	"github.com/strataforge/agsi/pkg/ground"
)

// The protobuf format is a reserved slot: the name parses and the Format
// constant exists so callers can already route on it, but no message schema
// has been published. Both directions fail with the same descriptive error
// until one is.

func serializeProtobuf(*ground.Document) ([]byte, error) {
	return nil, errors.New(errors.ErrCodeSerialization,
		"protobuf serialization is not implemented: no message schema is published for this format")
}

func deserializeProtobuf([]byte) (*ground.Document, error) {
	return nil, errors.New(errors.ErrCodeDeserialization,
		"protobuf deserialization is not implemented: no message schema is published for this format")
}
