// Package serde is the serialization collaborator: a Codec contract with
// JSON and YAML implementations, bound under qualified keys so callers can
// pick a format by name (or take all of them via the multi-binding).
package serde

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/kettleby/wirebox/di"
)

// Codec encodes and decodes values in one serialization format.
type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }
func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

type yamlCodec struct{}

func (yamlCodec) Name() string { return "yaml" }
func (yamlCodec) Marshal(v any) ([]byte, error) { return yaml.Marshal(v) }
func (yamlCodec) Unmarshal(data []byte, v any) error { return yaml.Unmarshal(data, v) }

// JSON returns the JSON codec.
func JSON() Codec { return jsonCodec{} }

// YAML returns the YAML codec.
func YAML() Codec { return yamlCodec{} }

// Module returns a registry with both codecs bound under qualified keys
// ("json", "yaml") and appended, in that order, to the Codec multi-binding.
func Module() (*di.Registry, error) {
	reg := di.NewRegistry()
	for _, c := range []Codec{JSON(), YAML()} {
		if err := reg.Bind(di.Named[Codec](c.Name()), di.Instance(c), di.Transient); err != nil {
			return nil, err
		}
		if err := reg.BindMulti(di.KeyOf[Codec](), di.Instance(c)); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
