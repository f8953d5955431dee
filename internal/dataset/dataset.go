// Package dataset loads and validates wrapped analysis payloads.
package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/invopop/jsonschema"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/wrapdeck/internal/model"
)

// ErrDataShape reports a payload that is missing required top-level fields.
var ErrDataShape = errors.New("invalid dataset shape")

// Decoder reads datasets. A slide whose record does not decode is logged and
// left at its zero value so the rest of the deck still plays.
type Decoder struct {
	Logger *zap.Logger
}

// Load reads a dataset from a JSON or YAML file with a silent Decoder.
func Load(path string) (*model.WrappedDataset, error) {
	return Decoder{}.Load(path)
}

// DecodeJSON parses a JSON payload with a silent Decoder.
func DecodeJSON(data []byte) (*model.WrappedDataset, error) {
	return Decoder{}.DecodeJSON(data)
}

// DecodeYAML parses a YAML payload with a silent Decoder.
func DecodeYAML(data []byte) (*model.WrappedDataset, error) {
	return Decoder{}.DecodeYAML(data)
}

// Load reads a dataset from a JSON or YAML file. The format is chosen by extension.
func (d Decoder) Load(path string) (*model.WrappedDataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return d.DecodeYAML(data)
	default:
		return d.DecodeJSON(data)
	}
}

// DecodeJSON parses a JSON payload. Every slide field must be present and non-null.
func (d Decoder) DecodeJSON(data []byte) (*model.WrappedDataset, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	present := make(map[string]bool, len(raw))
	for k, v := range raw {
		v = bytes.TrimSpace(v)
		present[k] = len(v) > 0 && !bytes.Equal(v, []byte("null"))
	}
	if err := checkFields(present); err != nil {
		return nil, err
	}
	var ds model.WrappedDataset
	for _, f := range slideFields(&ds) {
		msg := raw[f.name]
		err := f.decode(func(v any) error { return json.Unmarshal(msg, v) })
		d.skipped(f.name, err)
	}
	return &ds, nil
}

// DecodeYAML parses a YAML payload with the same field rules as DecodeJSON.
func (d Decoder) DecodeYAML(data []byte) (*model.WrappedDataset, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	nodes := make(map[string]*yaml.Node)
	switch root.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			nodes[root.Content[i].Value] = root.Content[i+1]
		}
	case 0:
	default:
		return nil, fmt.Errorf("failed to decode dataset: top level is not a mapping")
	}
	present := make(map[string]bool, len(nodes))
	for k, n := range nodes {
		present[k] = n.Tag != "!!null"
	}
	if err := checkFields(present); err != nil {
		return nil, err
	}
	var ds model.WrappedDataset
	for _, f := range slideFields(&ds) {
		node := nodes[f.name]
		d.skipped(f.name, f.decode(node.Decode))
	}
	return &ds, nil
}

func (d Decoder) skipped(name string, err error) {
	if err == nil || d.Logger == nil {
		return
	}
	d.Logger.Warn("slide record skipped", zap.String("slide", name), zap.Error(err))
}

type slideField struct {
	name   string
	decode func(unmarshal func(any) error) error
}

func slideFields(ds *model.WrappedDataset) []slideField {
	return []slideField{
		{"slide1", into(&ds.Slide1)},
		{"slide2", into(&ds.Slide2)},
		{"slide3", into(&ds.Slide3)},
		{"slide4", into(&ds.Slide4)},
		{"slide5", into(&ds.Slide5)},
		{"slide6", into(&ds.Slide6)},
		{"slide7", into(&ds.Slide7)},
		{"slide8", into(&ds.Slide8)},
		{"slide9", into(&ds.Slide9)},
		{"slide10", into(&ds.Slide10)},
	}
}

// into decodes into a fresh T and only stores it on success, so a failed
// record never leaves partial values behind.
func into[T any](dst *T) func(unmarshal func(any) error) error {
	return func(unmarshal func(any) error) error {
		var v T
		if err := unmarshal(&v); err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

func checkFields(present map[string]bool) error {
	var missing []string
	for _, field := range model.DatasetFields {
		if !present[field] {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrDataShape, strings.Join(missing, ", "))
	}
	return nil
}

// Schema returns the JSON Schema of the dataset contract.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(&model.WrappedDataset{})
	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode schema: %w", err)
	}
	return out, nil
}
