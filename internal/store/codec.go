package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/roster/internal/shared"
	"gopkg.in/yaml.v3"
)

// Codec turns a collection into human-readable text and back.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Ext() string
}

// NewCodec returns the [Codec] for a configured encoding name.
func NewCodec(encoding string) (Codec, error) {
	switch encoding {
	case shared.EncodingJSON, "":
		return JSONCodec{}, nil
	case shared.EncodingYAML:
		return YAMLCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: encoding %q", shared.ErrUnsupportedFormat, encoding)
	}
}

// JSONCodec writes two-space indented JSON with a trailing newline.
type JSONCodec struct{}

func (JSONCodec) Ext() string { return ".json" }

func (JSONCodec) Marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// YAMLCodec writes block-style YAML indented by two spaces.
type YAMLCodec struct{}

func (YAMLCodec) Ext() string { return ".yaml" }

func (YAMLCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

func (YAMLCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}
