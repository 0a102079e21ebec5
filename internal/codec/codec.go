// Package codec reads and writes automaton definitions as XML, YAML or JSON documents.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/geange/dfamin"
)

// Format names a document encoding.
type Format string

// Supported formats.
const (
	FormatXML  Format = "xml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var (
	// ErrUnknownFormat is returned when a format name or file extension is not recognized.
	ErrUnknownFormat = errors.New("unknown format")

	// ErrMalformed is returned when a document decodes but lacks a required part.
	ErrMalformed = errors.New("malformed automaton document")
)

// Formats lists the supported formats in help order.
func Formats() []Format {
	return []Format{FormatXML, FormatYAML, FormatJSON}
}

// ParseFormat parses a format name, case-insensitively. "yml" is accepted for YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "xml":
		return FormatXML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath infers the format from the extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// document is the YAML and JSON shape of a definition.
type document struct {
	Alphabet    []string             `yaml:"alphabet" json:"alphabet"`
	States      []string             `yaml:"states" json:"states"`
	Start       string               `yaml:"start" json:"start"`
	Accepting   []string             `yaml:"accepting" json:"accepting"`
	Transitions []documentTransition `yaml:"transitions" json:"transitions"`
}

type documentTransition struct {
	Source      string `yaml:"source" json:"source"`
	Label       string `yaml:"label" json:"label"`
	Destination string `yaml:"destination" json:"destination"`
}

func toDocument(def dfamin.Definition) document {
	doc := document{
		Alphabet:    nonNil(def.Alphabet),
		States:      nonNil(def.States),
		Start:       def.Start,
		Accepting:   nonNil(def.Accepting),
		Transitions: make([]documentTransition, 0, len(def.Transitions)),
	}
	for _, t := range def.Transitions {
		doc.Transitions = append(doc.Transitions, documentTransition{Source: t.Source, Label: t.Label, Destination: t.Dest})
	}
	return doc
}

func (doc document) definition() (dfamin.Definition, error) {
	if doc.Start == "" {
		return dfamin.Definition{}, fmt.Errorf("%w: no start state", ErrMalformed)
	}
	def := dfamin.Definition{
		Alphabet:  doc.Alphabet,
		States:    doc.States,
		Start:     doc.Start,
		Accepting: doc.Accepting,
	}
	for _, t := range doc.Transitions {
		def.Transitions = append(def.Transitions, dfamin.Transition{Source: t.Source, Label: t.Label, Dest: t.Destination})
	}
	return def, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// Decode reads one definition in format f from r. The definition is not validated; pass
// it to dfamin.New for that.
func Decode(r io.Reader, f Format) (dfamin.Definition, error) {
	switch f {
	case FormatXML:
		return decodeXML(r)
	case FormatYAML:
		var doc document
		decoder := yaml.NewDecoder(r)
		decoder.KnownFields(true)
		if err := decoder.Decode(&doc); err != nil {
			return dfamin.Definition{}, fmt.Errorf("failed to parse YAML: %w", err)
		}
		return doc.definition()
	case FormatJSON:
		var doc document
		decoder := json.NewDecoder(r)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&doc); err != nil {
			return dfamin.Definition{}, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return doc.definition()
	}
	return dfamin.Definition{}, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Encode writes def to w in format f.
func Encode(w io.Writer, f Format, def dfamin.Definition) error {
	switch f {
	case FormatXML:
		return encodeXML(w, def)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(toDocument(def)); err != nil {
			return fmt.Errorf("failed to write YAML: %w", err)
		}
		return encoder.Close()
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(toDocument(def)); err != nil {
			return fmt.Errorf("failed to write JSON: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// ReadFile decodes and validates the automaton stored at path. An empty f infers the
// format from the extension.
func ReadFile(path string, f Format) (*dfamin.Automaton, error) {
	if f == "" {
		var err error
		if f, err = FormatFromPath(path); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read automaton file: %w", err)
	}

	def, err := Decode(bytes.NewReader(data), f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	a, err := dfamin.New(def)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// WriteFile encodes a to path. An empty f infers the format from the extension.
func WriteFile(path string, f Format, a *dfamin.Automaton) error {
	if f == "" {
		var err error
		if f, err = FormatFromPath(path); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	if err := Encode(&buf, f, a.Definition()); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write automaton file: %w", err)
	}
	return nil
}
