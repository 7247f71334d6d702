package record

import (
	json "github.com/goccy/go-json"
)

// Codec turns a whole collection into the bytes written under a store's key
// and back.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSONCodec is the default Codec. Optional fields tagged omitempty drop out
// when absent and []byte fields travel as base64 strings.
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// IndentedJSONCodec writes the same JSON as JSONCodec, indented for files
// meant to be read by hand.
type IndentedJSONCodec struct {
	JSONCodec
}

func (IndentedJSONCodec) Marshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
