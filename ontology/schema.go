// Package ontology provides the entity schema model consumed by the
// analysis pipeline: a registry of schemata, a property/type system with
// value cleaning and country hints, and the Entity proxy that carries
// multi-valued properties between pipeline stages.
package ontology

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed schemata.yaml
var schemataYAML []byte

// Schema describes one entity schema and its ancestry.
type Schema struct {
	Name     string
	Label    string
	Abstract bool
	Extends  []string

	model *Model
}

// IsA reports whether the schema is the named schema or descends from it.
func (s *Schema) IsA(name string) bool {
	if s == nil {
		return false
	}
	if s.Name == name {
		return true
	}
	for _, parent := range s.Extends {
		if p := s.model.Get(parent); p != nil && p.IsA(name) {
			return true
		}
	}
	return false
}

// Ancestry returns the schema name and all ancestor names, excluding the
// generic roots Thing and Value.
func (s *Schema) Ancestry() []string {
	seen := map[string]bool{}
	var walk func(*Schema)
	walk = func(sc *Schema) {
		if sc == nil || seen[sc.Name] {
			return
		}
		if sc.Name != "Thing" && sc.Name != "Value" {
			seen[sc.Name] = true
		}
		for _, parent := range sc.Extends {
			walk(sc.model.Get(parent))
		}
	}
	walk(s)
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Property describes a named property and its value type.
type Property struct {
	Name string
	Type Type
}

// Model is a registry of schemata and properties.
type Model struct {
	schemata   map[string]*Schema
	properties map[string]*Property
}

type schemaDef struct {
	Label    string   `yaml:"label"`
	Abstract bool     `yaml:"abstract"`
	Extends  []string `yaml:"extends"`
}

type propertyDef struct {
	Type string `yaml:"type"`
}

type modelDef struct {
	Schemata   map[string]schemaDef   `yaml:"schemata"`
	Properties map[string]propertyDef `yaml:"properties"`
}

// NewModel parses a model definition from YAML.
func NewModel(data []byte) (*Model, error) {
	var def modelDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse model definition: %w", err)
	}
	m := &Model{
		schemata:   make(map[string]*Schema, len(def.Schemata)),
		properties: make(map[string]*Property, len(def.Properties)),
	}
	for name, sd := range def.Schemata {
		label := sd.Label
		if label == "" {
			label = name
		}
		m.schemata[name] = &Schema{
			Name:     name,
			Label:    label,
			Abstract: sd.Abstract,
			Extends:  sd.Extends,
			model:    m,
		}
	}
	for name, pd := range def.Properties {
		t := Type(pd.Type)
		if !t.known() {
			return nil, fmt.Errorf("property %q: unknown type %q", name, pd.Type)
		}
		m.properties[name] = &Property{Name: name, Type: t}
	}
	for name, s := range m.schemata {
		for _, parent := range s.Extends {
			if m.schemata[parent] == nil {
				return nil, fmt.Errorf("schema %q extends unknown schema %q", name, parent)
			}
		}
	}
	return m, nil
}

// Get returns the named schema, or nil.
func (m *Model) Get(name string) *Schema {
	return m.schemata[name]
}

// Property returns the named property, or nil.
func (m *Model) Property(name string) *Property {
	return m.properties[name]
}

var (
	defaultModel *Model
	defaultOnce  sync.Once
)

// Default returns the process-wide model built from the embedded schema
// definitions. The model is immutable after construction and safe for
// concurrent use.
func Default() *Model {
	defaultOnce.Do(func() {
		m, err := NewModel(schemataYAML)
		if err != nil {
			panic("ontology: invalid embedded schemata: " + err.Error())
		}
		defaultModel = m
	})
	return defaultModel
}
