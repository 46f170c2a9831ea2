// SPDX-License-Identifier: MIT

package parameters

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// document is the on-disk form of a Vector.
type document struct {
	Family     Family      `yaml:"family"`
	Parameters []Parameter `yaml:"parameters"`
}

// MarshalYAML implements yaml.Marshaler.
func (v *Vector) MarshalYAML() (interface{}, error) {
	return document{Family: v.family, Parameters: v.ToList()}, nil
}

// Encode writes v as YAML.
func (v *Vector) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("parameters: encode: %w", err)
	}

	return enc.Close()
}

// Decode reads a vector written by Encode.
func Decode(r io.Reader) (*Vector, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parameters: decode: %w", err)
	}

	return FromList(doc.Family, doc.Parameters)
}

// Save writes v to path, replacing any existing file.
func (v *Vector) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("parameters: save: %w", err)
	}
	if err = v.Encode(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// Load reads a vector saved with Save.
func Load(path string) (*Vector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("parameters: load: %w", err)
	}
	defer f.Close()

	return Decode(f)
}
