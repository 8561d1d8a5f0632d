// Package schema defines the Go struct types for the wizard YAML
// definition and provides strict parsing, validation, JSON Schema
// export, and the bridge from a definition to runnable steps.
package schema

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// APIVersion is the document version this build understands.
const APIVersion = "gwiz/v1alpha1"

// Definition is the top-level document describing a wizard.
type Definition struct {
	APIVersion string    `yaml:"apiVersion" json:"apiVersion" jsonschema:"required,enum=gwiz/v1alpha1"`
	Wizard     Meta      `yaml:"wizard"     json:"wizard"     jsonschema:"required"`
	Steps      []StepDef `yaml:"steps,omitempty" json:"steps,omitempty"`
}

// Meta names and titles the wizard.
type Meta struct {
	Name        string `yaml:"name"                  json:"name" jsonschema:"required"`
	Title       string `yaml:"title,omitempty"       json:"title,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// StepDef is a single step of the wizard. Dispatched on Kind; the
// remaining fields apply to the kinds noted on each group.
type StepDef struct {
	ID     string `yaml:"id"              json:"id"   jsonschema:"required"`
	Kind   string `yaml:"kind"            json:"kind" jsonschema:"required,enum=text,enum=choice,enum=loading,enum=path,enum=confirm"`
	Prompt string `yaml:"prompt,omitempty" json:"prompt,omitempty"`
	When   string `yaml:"when,omitempty"   json:"when,omitempty"`

	// text
	Default     string `yaml:"default,omitempty"     json:"default,omitempty"`
	Placeholder string `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	Pattern     string `yaml:"pattern,omitempty"     json:"pattern,omitempty"`
	Required    bool   `yaml:"required,omitempty"    json:"required,omitempty"`
	Secret      bool   `yaml:"secret,omitempty"      json:"secret,omitempty"`

	// choice and loading
	Multi  bool      `yaml:"multi,omitempty"  json:"multi,omitempty"`
	Items  []ItemDef `yaml:"items,omitempty"  json:"items,omitempty"`
	Source *Source   `yaml:"source,omitempty" json:"source,omitempty"`

	// path
	Folders bool `yaml:"folders,omitempty" json:"folders,omitempty"`

	// confirm
	Message string `yaml:"message,omitempty" json:"message,omitempty"`
	Detail  string `yaml:"detail,omitempty"  json:"detail,omitempty"`
	Confirm string `yaml:"confirm,omitempty" json:"confirm,omitempty"`
	Store   bool   `yaml:"store,omitempty"   json:"store,omitempty"`
}

// ItemDef is one inline pick-list entry.
type ItemDef struct {
	Label  string `yaml:"label"            json:"label" jsonschema:"required"`
	Detail string `yaml:"detail,omitempty" json:"detail,omitempty"`
	Picked bool   `yaml:"picked,omitempty" json:"picked,omitempty"`
}

// Source produces pick-list items at presentation time. Exactly one of
// Command or URL must be set.
type Source struct {
	Command string `yaml:"command,omitempty" json:"command,omitempty"`
	URL     string `yaml:"url,omitempty"     json:"url,omitempty"`
}

// LoadFile reads and parses a wizard YAML file with strict
// unknown-field rejection (yaml.v3 KnownFields). Returns the parsed
// Definition or an error.
func LoadFile(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wizard: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a wizard definition from an io.Reader with strict
// unknown-field rejection.
func Load(r io.Reader) (*Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("decode wizard: %w", err)
	}
	return &def, nil
}
