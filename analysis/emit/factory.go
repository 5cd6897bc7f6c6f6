// Package emit turns resolved mentions into ontology entities: full
// entities for mentions matched to known records, Mention stubs for the
// rest, and BankAccount entities for extracted IBANs.
package emit

import (
	"fmt"
	"sort"

	"github.com/gosimple/slug"

	"github.com/c360studio/semextract/analysis/extract"
	"github.com/c360studio/semextract/analysis/resolve"
	"github.com/c360studio/semextract/names"
	"github.com/c360studio/semextract/ontology"
)

// mentionProps maps a mention's tag to the document property its values
// land on, which also namespaces the mention entity id.
var mentionProps = map[string]string{
	extract.TagPerson:   "peopleMentioned",
	extract.TagOrg:      "companiesMentioned",
	extract.TagLocation: "locationMentioned",
}

// detectedSchemata is the schema guess recorded on Mention stubs.
var detectedSchemata = map[string]string{
	extract.TagPerson: "Person",
	extract.TagOrg:    "Organization",
}

// Factory builds output entities against one ontology model.
type Factory struct {
	model *ontology.Model
}

// NewFactory creates a factory over the model.
func NewFactory(model *ontology.Model) *Factory {
	return &Factory{model: model}
}

// MentionProp returns the document property for a mention tag, or "".
func MentionProp(tag string) string {
	return mentionProps[tag]
}

// cleanName normalizes the name and strips the prefixes appropriate for
// the tag.
func cleanName(tag, name string) string {
	normalized := names.Normalize(name)
	if normalized == "" {
		return ""
	}
	switch tag {
	case extract.TagPerson:
		return names.RemovePersonPrefixes(normalized)
	case extract.TagOrg:
		return names.RemoveOrgPrefixes(normalized)
	default:
		return names.RemoveObjPrefixes(normalized)
	}
}

// cleanedNames returns the display caption followed by the cleaned forms
// of every value the mention carries, sorted and deduplicated.
func cleanedNames(m *resolve.Mention) []string {
	caption := m.Caption()
	seen := map[string]bool{caption: true, "": true}
	var cleaned []string
	for _, value := range m.Values {
		if name := cleanName(m.Tag, value); !seen[name] {
			seen[name] = true
			cleaned = append(cleaned, name)
		}
	}
	for _, value := range m.ResolvedValues {
		if name := cleanName(m.Tag, value); !seen[name] {
			seen[name] = true
			cleaned = append(cleaned, name)
		}
	}
	sort.Strings(cleaned)
	if caption == "" {
		return cleaned
	}
	return append([]string{caption}, cleaned...)
}

// CreateFromMention builds the output entity for one surviving mention.
// Mentions resolved to a known schema become full entities; unresolved
// person and organization mentions become Mention stubs; unresolved
// locations yield no entity at all.
func (f *Factory) CreateFromMention(doc *ontology.Entity, m *resolve.Mention) (*ontology.Entity, error) {
	if m.Rejected() {
		return nil, nil
	}
	if m.ResolvedSchema != "" {
		return f.createResolved(doc, m)
	}
	if m.Tag == extract.TagLocation {
		return nil, nil
	}
	return f.createMention(doc, m)
}

func (f *Factory) createResolved(doc *ontology.Entity, m *resolve.Mention) (*ontology.Entity, error) {
	e, err := f.model.MakeEntity(m.ResolvedSchema)
	if err != nil {
		return nil, fmt.Errorf("resolved mention %q: %w", m.Key, err)
	}
	if m.ResolvedEntityID != "" {
		e.ID = m.ResolvedEntityID
	} else if err := e.MakeID(m.Key); err != nil {
		return nil, fmt.Errorf("resolved mention %q: %w", m.Key, err)
	}
	for _, name := range cleanedNames(m) {
		e.Add("name", name)
	}
	e.AddCleaned("proof", doc.ID)
	if !e.IsA("Address") {
		for _, country := range m.Countries {
			e.Add("country", country)
		}
	}
	return e, nil
}

func (f *Factory) createMention(doc *ontology.Entity, m *resolve.Mention) (*ontology.Entity, error) {
	prop := MentionProp(m.Tag)
	if prop == "" {
		return nil, nil
	}
	e, err := f.model.MakeEntity("Mention")
	if err != nil {
		return nil, err
	}
	if err := e.MakeID("mention", doc.ID, prop, m.Key); err != nil {
		return nil, fmt.Errorf("mention %q: %w", m.Key, err)
	}
	// resolved carries the id a full entity for this mention would get, so
	// later merges can connect the stub to it.
	e.AddCleaned("resolved", ontology.MakeEntityID(m.Key))
	e.AddCleaned("document", doc.ID)
	for _, name := range cleanedNames(m) {
		e.Add("name", name)
	}
	if schema := detectedSchemata[m.Tag]; schema != "" {
		e.AddCleaned("detectedSchema", schema)
	}
	for _, country := range m.Countries {
		e.Add("contextCountry", country)
	}
	return e, nil
}

// CreateBankAccount builds the BankAccount entity for one extracted IBAN.
func (f *Factory) CreateBankAccount(doc *ontology.Entity, iban string) (*ontology.Entity, error) {
	e, err := f.model.MakeEntity("BankAccount")
	if err != nil {
		return nil, err
	}
	e.ID = slug.Make("iban " + iban)
	e.AddCleaned("accountNumber", iban)
	e.Add("iban", iban)
	if country := ontology.IBANCountry(iban); country != "" {
		e.Add("country", country)
	}
	e.AddCleaned("proof", doc.ID)
	return e, nil
}
