package ontology

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Entity is a schema-typed record with multi-valued properties. Values are
// deduplicated per property and keep insertion order, so emission is stable
// within a run for the same input.
type Entity struct {
	ID     string
	Schema *Schema

	props map[string][]string
	order []string
}

// MakeEntity constructs an empty entity of the named schema.
func (m *Model) MakeEntity(schema string) (*Entity, error) {
	s := m.Get(schema)
	if s == nil {
		return nil, fmt.Errorf("unknown schema %q", schema)
	}
	return &Entity{Schema: s, props: map[string][]string{}}, nil
}

// Model returns the model the entity's schema belongs to.
func (e *Entity) Model() *Model {
	return e.Schema.model
}

// IsA reports whether the entity's schema is or descends from the named one.
func (e *Entity) IsA(schema string) bool {
	return e.Schema.IsA(schema)
}

// Add cleans each value through the property's type and appends the
// survivors. Unknown properties and values that clean to nothing are
// silently dropped.
func (e *Entity) Add(prop string, values ...string) {
	p := e.Model().Property(prop)
	if p == nil {
		return
	}
	for _, value := range values {
		if cleaned := p.Type.Clean(value, e); cleaned != "" {
			e.addValue(prop, cleaned)
		}
	}
}

// AddCleaned appends values that were already cleaned by the caller.
func (e *Entity) AddCleaned(prop string, values ...string) {
	if e.Model().Property(prop) == nil {
		return
	}
	for _, value := range values {
		if value != "" {
			e.addValue(prop, value)
		}
	}
}

func (e *Entity) addValue(prop, value string) {
	existing, ok := e.props[prop]
	if !ok {
		e.order = append(e.order, prop)
	}
	for _, v := range existing {
		if v == value {
			return
		}
	}
	e.props[prop] = append(existing, value)
}

// Get returns the values of a property in insertion order.
func (e *Entity) Get(prop string) []string {
	values := e.props[prop]
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// First returns the first value of a property, or "".
func (e *Entity) First(prop string) string {
	if values := e.props[prop]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// Properties lists the set properties in insertion order.
func (e *Entity) Properties() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// TypeValues gathers the values of every property of the given type.
func (e *Entity) TypeValues(t Type) []string {
	var out []string
	seen := map[string]bool{}
	for _, prop := range e.order {
		p := e.Model().Property(prop)
		if p == nil || p.Type != t {
			continue
		}
		for _, v := range e.props[prop] {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

// Names returns all name-typed values.
func (e *Entity) Names() []string {
	return e.TypeValues(TypeName)
}

// Countries returns all country-typed values.
func (e *Entity) Countries() []string {
	return e.TypeValues(TypeCountry)
}

// MakeID sets a deterministic id derived from the given key parts.
func (e *Entity) MakeID(parts ...string) error {
	id := MakeEntityID(parts...)
	if id == "" {
		return fmt.Errorf("cannot derive id from empty key parts")
	}
	e.ID = id
	return nil
}

// MakeEntityID derives a stable hex id from key parts. Empty parts are
// skipped; an all-empty key yields "".
func MakeEntityID(parts ...string) string {
	filtered := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == 0 {
		return ""
	}
	digest := sha1.Sum([]byte(strings.Join(filtered, ".")))
	return hex.EncodeToString(digest[:])
}

type entityJSON struct {
	ID         string              `json:"id"`
	Schema     string              `json:"schema"`
	Properties map[string][]string `json:"properties"`
}

// MarshalJSON renders the entity in the interchange format
// {id, schema, properties}.
func (e *Entity) MarshalJSON() ([]byte, error) {
	props := make(map[string][]string, len(e.props))
	for _, prop := range e.order {
		props[prop] = e.Get(prop)
	}
	return json.Marshal(entityJSON{ID: e.ID, Schema: e.Schema.Name, Properties: props})
}

// FromJSON parses an entity in the interchange format against the model.
func (m *Model) FromJSON(data []byte) (*Entity, error) {
	var raw entityJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse entity: %w", err)
	}
	e, err := m.MakeEntity(raw.Schema)
	if err != nil {
		return nil, err
	}
	e.ID = raw.ID
	for prop, values := range raw.Properties {
		e.Add(prop, values...)
	}
	return e, nil
}
