// Package codec selects the JSON encoding used for population exports.
//
// Exports are plain JSON, so every codec reads what the others write.
// "json" is encoding/json, "go-json" is github.com/goccy/go-json.
package codec

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	gojson "github.com/goccy/go-json"
)

// Codec encodes and decodes values. Implementations are safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Indenter is implemented by codecs that can pretty-print.
type Indenter interface {
	MarshalIndent(v any, prefix, indent string) ([]byte, error)
}

type funcs struct {
	name      string
	marshal   func(any) ([]byte, error)
	unmarshal func([]byte, any) error
	indent    func(any, string, string) ([]byte, error)
}

func (f funcs) Marshal(v any) ([]byte, error) { return f.marshal(v) }

func (f funcs) Unmarshal(data []byte, v any) error { return f.unmarshal(data, v) }

func (f funcs) Name() string { return f.name }

func (f funcs) MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return f.indent(v, prefix, indent)
}

var (
	// JSON is the encoding/json codec.
	JSON Codec = funcs{"json", json.Marshal, json.Unmarshal, json.MarshalIndent}

	// GoJSON is the github.com/goccy/go-json codec.
	GoJSON Codec = funcs{"go-json", gojson.Marshal, gojson.Unmarshal, gojson.MarshalIndent}

	// Default is used when no codec is configured.
	Default = GoJSON
)

var registry = []Codec{JSON, GoJSON}

// ByName returns the codec registered under name.
func ByName(name string) (Codec, bool) {
	i := slices.IndexFunc(registry, func(c Codec) bool { return c.Name() == name })
	if i < 0 {
		return nil, false
	}
	return registry[i], true
}

// Names lists the names accepted by ByName.
func Names() []string {
	names := make([]string, len(registry))
	for i, c := range registry {
		names[i] = c.Name()
	}
	return names
}

// Encode writes v to w followed by a newline. A non-empty indent
// pretty-prints when c implements Indenter.
func Encode(w io.Writer, c Codec, v any, indent string) error {
	if c == nil {
		c = Default
	}
	var (
		data []byte
		err  error
	)
	if ind, ok := c.(Indenter); ok && indent != "" {
		data, err = ind.MarshalIndent(v, "", indent)
	} else {
		data, err = c.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("%s marshal: %w", c.Name(), err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// MustMarshal is a helper for tests.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
