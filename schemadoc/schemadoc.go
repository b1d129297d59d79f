// Package schemadoc decodes YAML schema documents into config.Schema values.
//
// A document lists fields in resolution order:
//
//	fields:
//	  - key: port
//	    name: HTTP_PORT
//	    default: "8080"
//	    map: number
//	  - key: hosts
//	    required: true
//	    map: separated
//	    sep: ","
//	    item: string
//
// The document only describes the variables; their values always come from a config.Provider.
package schemadoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cleitonmarx/envschema/config"
)

// Mapper names accepted in the map and item attributes.
const (
	MapString    = "string"
	MapNumber    = "number"
	MapBoolean   = "boolean"
	MapSeparated = "separated"
)

// Document is the YAML representation of a schema.
type Document struct {
	Fields []Field `yaml:"fields"`
}

// Field is the YAML representation of one schema entry.
type Field struct {
	Key      string `yaml:"key"`
	Name     string `yaml:"name,omitempty"`
	Default  string `yaml:"default,omitempty"`
	Required bool   `yaml:"required,omitempty"`
	Map      string `yaml:"map,omitempty"`
	Sep      string `yaml:"sep,omitempty"`
	Item     string `yaml:"item,omitempty"`
}

// Decode reads a document from r and builds its schema.
func Decode(r io.Reader) (config.Schema, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return config.Schema{}, nil
		}
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	return doc.Schema()
}

// Parse builds the schema of an in-memory document.
func Parse(data []byte) (config.Schema, error) {
	return Decode(bytes.NewReader(data))
}

// LoadFile reads and parses the document at path.
func LoadFile(path string) (config.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	schema, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return schema, nil
}

// Schema validates the document and converts it into a config.Schema.
func (d Document) Schema() (config.Schema, error) {
	schema := make(config.Schema, 0, len(d.Fields))
	seen := make(map[string]bool, len(d.Fields))
	for i, f := range d.Fields {
		if f.Key == "" {
			return nil, fmt.Errorf("field %d: key is required", i)
		}
		if seen[f.Key] {
			return nil, fmt.Errorf("field %d: duplicate key '%s'", i, f.Key)
		}
		seen[f.Key] = true

		mapFn, err := f.mapper()
		if err != nil {
			return nil, fmt.Errorf("field '%s': %w", f.Key, err)
		}
		schema = append(schema, config.Spec{
			Key:      f.Key,
			Name:     f.Name,
			Default:  f.Default,
			Required: f.Required,
			Map:      mapFn,
		})
	}
	return schema, nil
}

func (f Field) mapper() (func(string) any, error) {
	if f.Map != MapSeparated {
		if f.Sep != "" || f.Item != "" {
			return nil, fmt.Errorf("sep and item are only valid with map '%s'", MapSeparated)
		}
		return scalarMapper(f.Map)
	}

	if f.Sep == "" {
		return nil, fmt.Errorf("map '%s' requires a sep", MapSeparated)
	}
	switch f.Item {
	case "", MapString:
		return config.Erase(config.Separated(f.Sep, config.String())), nil
	case MapNumber:
		return config.Erase(config.Separated(f.Sep, config.Number())), nil
	case MapBoolean:
		return config.Erase(config.Separated(f.Sep, config.Boolean())), nil
	default:
		return nil, fmt.Errorf("unknown item mapper '%s'", f.Item)
	}
}

func scalarMapper(name string) (func(string) any, error) {
	switch name {
	case "", MapString:
		return config.Erase(config.String()), nil
	case MapNumber:
		return config.Erase(config.Number()), nil
	case MapBoolean:
		return config.Erase(config.Boolean()), nil
	default:
		return nil, fmt.Errorf("unknown mapper '%s'", name)
	}
}
