package extract

import (
	"context"
	"regexp"

	"github.com/c360studio/semextract/ontology"
)

// pattern binds a regular expression to the tag and value type of its
// matches.
type pattern struct {
	tag  string
	typ  ontology.Type
	re   *regexp.Regexp
	grp  int
}

var patterns = []pattern{
	{
		tag: TagEmail,
		typ: ontology.TypeEmail,
		re:  regexp.MustCompile(`(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`),
	},
	{
		tag: TagPhone,
		typ: ontology.TypePhone,
		re:  regexp.MustCompile(`(\+?[\d\-\(\)\/\s]{5,}\d{2})`),
		grp: 1,
	},
	{
		tag: TagIBAN,
		typ: ontology.TypeIBAN,
		re:  regexp.MustCompile(`(?i)\b([a-zA-Z]{2} ?[0-9]{2} ?[a-zA-Z0-9]{4} ?[0-9]{7} ?([a-zA-Z0-9]?){0,16})\b`),
		grp: 1,
	},
}

// PatternExtractor matches structured values (emails, phone numbers,
// IBANs) with regular expressions and validates each candidate through its
// ontology type. Phone and IBAN matches also yield country hints.
type PatternExtractor struct{}

// NewPatternExtractor creates the pattern extractor.
func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{}
}

// Name implements Extractor.
func (p *PatternExtractor) Name() string {
	return "patterns"
}

// Extract implements Extractor.
func (p *PatternExtractor) Extract(_ context.Context, c *Context) ([]Result, error) {
	var results []Result
	for _, pat := range patterns {
		for _, match := range pat.re.FindAllStringSubmatch(c.Text, -1) {
			raw := match[pat.grp]
			cleaned := pat.typ.Clean(raw, c.Entity)
			if cleaned == "" {
				continue
			}
			results = append(results, Result{Value: cleaned, Tag: pat.tag, Source: p.Name()})
			for _, code := range pat.typ.CountryHint(cleaned) {
				results = append(results, Result{Value: code, Tag: TagCountry, Source: p.Name()})
			}
		}
	}
	return results, nil
}
