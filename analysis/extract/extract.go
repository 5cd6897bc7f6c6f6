// Package extract turns document text into tagged candidate values. Named
// entity recognizers and pattern matchers both implement the Extractor
// interface; downstream aggregation is agnostic to which produced a result.
package extract

import (
	"context"
	"strings"
	"unicode"

	"github.com/c360studio/semextract/geodb"
	"github.com/c360studio/semextract/names"
	"github.com/c360studio/semextract/ontology"
)

// Extraction tags.
const (
	TagPerson   = "PER"
	TagOrg      = "ORG"
	TagLocation = "LOC"
	TagEmail    = "EMAIL"
	TagPhone    = "PHONE"
	TagIBAN     = "IBAN"
	TagCountry  = "COUNTRY"
	TagOther    = "OTHER"
)

// Name length bounds for recognized entity names.
const (
	NameMinLength = 8
	NameMaxLength = 100
)

// labelTags maps recognizer output labels onto extraction tags. Recognizers
// disagree on label vocabularies; IOB prefixes and common synonyms all
// collapse to the three name tags.
var labelTags = map[string]string{
	"PER":          TagPerson,
	"PERSON":       TagPerson,
	"B-PER":        TagPerson,
	"I-PER":        TagPerson,
	"person":       TagPerson,
	"ORG":          TagOrg,
	"B-ORG":        TagOrg,
	"I-ORG":        TagOrg,
	"organization": TagOrg,
	"LOC":          TagLocation,
	"GPE":          TagLocation,
	"B-LOC":        TagLocation,
	"I-LOC":        TagLocation,
	"location":     TagLocation,
}

// TagForLabel resolves a recognizer label to an extraction tag, or "".
func TagForLabel(label string) string {
	return labelTags[label]
}

// Result is one extracted candidate value.
type Result struct {
	// Value is the extracted text, cleaned for its tag.
	Value string
	// Tag classifies the value (TagPerson, TagEmail, ...).
	Tag string
	// Source names the extractor that produced the result.
	Source string
	// Confidence is the extractor's score, when it reports one.
	Confidence *float64
}

// Context carries one document's text through extraction.
type Context struct {
	// Entity is the source entity the text belongs to.
	Entity *ontology.Entity
	// Text is the chunk under analysis.
	Text string
	// Languages are ISO 639-3 codes detected or declared for the document.
	Languages []string
}

// Extractor produces candidate values from document text.
type Extractor interface {
	// Name identifies the extractor in result provenance and logs.
	Name() string
	// Extract returns the candidates found in the context's text.
	Extract(ctx context.Context, c *Context) ([]Result, error)
}

// TestName validates and cleans a recognized entity name for its tag. It
// collapses whitespace, rejects over-long strings, strips leading titles
// and legal-form prefixes, and rejects what remains when it is too short
// or contains no letters. Returns "" for rejected names.
func TestName(tag, value string) string {
	cleaned := names.Clean(value)
	if len(cleaned) > NameMaxLength {
		return ""
	}
	switch tag {
	case TagPerson:
		cleaned = names.RemovePersonPrefixes(cleaned)
	case TagOrg:
		cleaned = names.RemoveOrgPrefixes(cleaned)
	default:
		cleaned = names.RemoveEntityPrefixes(cleaned)
	}
	if len(cleaned) < NameMinLength {
		return ""
	}
	if !strings.ContainsFunc(cleaned, unicode.IsLetter) {
		return ""
	}
	return cleaned
}

// makeNameResults builds results for one recognized span. Location spans
// additionally yield country results when the gazetteer knows the place,
// so "Germany" in text produces both a LOC mention and a country hint.
func makeNameResults(source, label, value string, confidence *float64) []Result {
	tag := TagForLabel(label)
	if tag == "" {
		return nil
	}
	cleaned := TestName(tag, value)
	if cleaned == "" {
		return nil
	}
	results := []Result{{Value: cleaned, Tag: tag, Source: source, Confidence: confidence}}
	if tag == TagLocation {
		for _, code := range geodb.LocationCountries(cleaned) {
			results = append(results, Result{Value: code, Tag: TagCountry, Source: source, Confidence: confidence})
		}
	}
	return results
}
