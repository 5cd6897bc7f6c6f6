// Package annotate rewrites document text with inline entity markup. Each
// recognized value is replaced by a markdown-style link whose target is a
// query string of searchable tokens: name fingerprints, the properties the
// value appeared as, schema guesses and lexicon symbols.
package annotate

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/c360studio/semextract/names"
	"github.com/c360studio/semextract/ontology"
)

// Marker prefixes annotated index text so consumers can tell it apart from
// plain body text.
const Marker = "__annotated__ "

// nameProp is implied on every annotation that carries a proper name.
const nameProp = "namesMentioned"

// namedProps are the property roles that mark an annotation as a proper
// name; only those get fingerprints, schemata and symbols.
var namedProps = map[string]bool{
	"namesMentioned":     true,
	"peopleMentioned":    true,
	"companiesMentioned": true,
}

// fallbackSchemata maps a name property role to the schema assumed when
// resolution supplied none.
var fallbackSchemata = map[string]string{
	"peopleMentioned":    "Person",
	"companiesMentioned": "Organization",
}

// Annotation accumulates everything known about one annotated value across
// the mentions that produced it.
type Annotation struct {
	values   map[string]bool
	aliases  map[string]bool
	schemata map[string]bool
	props    map[string]bool
}

func newAnnotation() *Annotation {
	return &Annotation{
		values:   map[string]bool{},
		aliases:  map[string]bool{},
		schemata: map[string]bool{},
		props:    map[string]bool{},
	}
}

func (a *Annotation) isName() bool {
	for prop := range a.props {
		if namedProps[prop] {
			return true
		}
	}
	return false
}

// allNames is the union of surface forms and resolved aliases.
func (a *Annotation) allNames() []string {
	seen := map[string]bool{}
	var out []string
	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for v := range a.values {
		add(v)
	}
	for v := range a.aliases {
		add(v)
	}
	sort.Strings(out)
	return out
}

// expandSchemata widens the recorded schema guesses to their full ancestry
// so a resolved Organization also indexes as LegalEntity. When resolution
// recorded no schema, the property role picks one.
func (a *Annotation) expandSchemata(model *ontology.Model) []string {
	seen := map[string]bool{}
	var out []string
	walk := func(name string) {
		s := model.Get(name)
		if s == nil {
			return
		}
		for _, ancestor := range s.Ancestry() {
			if !seen[ancestor] {
				seen[ancestor] = true
				out = append(out, ancestor)
			}
		}
	}
	for schema := range a.schemata {
		walk(schema)
	}
	if len(out) == 0 {
		for prop, schema := range fallbackSchemata {
			if a.props[prop] {
				walk(schema)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Query renders the annotation's link target: sorted tokens joined by
// ampersands. Fingerprints are query-escaped; the other tokens are known
// safe identifiers.
func (a *Annotation) Query(model *ontology.Model) string {
	tokens := map[string]bool{}
	for prop := range a.props {
		tokens["p_"+prop] = true
	}
	if a.isName() {
		tokens["p_"+nameProp] = true
		nameList := a.allNames()
		schemata := a.expandSchemata(model)
		for _, schema := range schemata {
			tokens["s_"+schema] = true
		}
		fpSchemata := schemata
		if len(fpSchemata) == 0 {
			fpSchemata = []string{"LegalEntity"}
		}
		for _, fp := range model.Fingerprints(fpSchemata, nameList) {
			tokens["f_"+url.QueryEscape(fp)] = true
		}
		for symbol := range names.Symbols(nameList...) {
			tokens["q_"+symbol] = true
		}
	}
	sorted := make([]string, 0, len(tokens))
	for token := range tokens {
		sorted = append(sorted, token)
	}
	sort.Strings(sorted)
	return strings.Join(sorted, "&")
}

// Annotator collects annotations for one document and applies them to its
// text.
type Annotator struct {
	model       *ontology.Model
	annotations map[string]*Annotation
}

// NewAnnotator creates an empty annotator over the model.
func NewAnnotator(model *ontology.Model) *Annotator {
	return &Annotator{model: model, annotations: map[string]*Annotation{}}
}

// annotation returns the annotation for a surface value, creating it when
// new. Values that normalize to the same name share one annotation.
func (a *Annotator) annotation(value string) *Annotation {
	key := names.Normalize(value)
	if key == "" {
		return nil
	}
	ann, ok := a.annotations[key]
	if !ok {
		ann = newAnnotation()
		a.annotations[key] = ann
	}
	ann.values[value] = true
	return ann
}

// AddTag registers surface values under the property role they were
// extracted as.
func (a *Annotator) AddTag(prop string, values ...string) {
	if prop == "" {
		return
	}
	for _, value := range values {
		if ann := a.annotation(value); ann != nil {
			ann.props[prop] = true
		}
	}
}

// AddMention registers surface values against a resolved legal entity,
// carrying the entity's aliases and schema ancestry into the annotation.
func (a *Annotator) AddMention(e *ontology.Entity, values ...string) {
	if e == nil || !e.IsA("LegalEntity") {
		return
	}
	props := []string{nameProp}
	if e.IsA("Person") {
		props = append(props, "peopleMentioned")
	}
	if e.IsA("Organization") {
		props = append(props, "companiesMentioned")
	}
	aliases := e.Names()
	schemata := e.Schema.Ancestry()
	for _, value := range values {
		ann := a.annotation(value)
		if ann == nil {
			continue
		}
		for _, prop := range props {
			ann.props[prop] = true
		}
		for _, alias := range aliases {
			if alias != "" {
				ann.aliases[alias] = true
			}
		}
		for _, schema := range schemata {
			ann.schemata[schema] = true
		}
	}
}

// Len returns the number of distinct annotated names.
func (a *Annotator) Len() int {
	return len(a.annotations)
}

var annotationRe = regexp.MustCompile(`\[[^\]]*\]\([^)]*\)`)

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// quoteValue escapes one surface form for the replacement regex. Word
// boundaries are asserted only where the value itself starts or ends on a
// word character, so values like "+919988111222" still match after "tel:".
func quoteValue(v string) string {
	quoted := regexp.QuoteMeta(v)
	if first, _ := utf8.DecodeRuneInString(v); isWordRune(first) {
		quoted = `\b` + quoted
	}
	if last, _ := utf8.DecodeLastRuneInString(v); isWordRune(last) {
		quoted += `\b`
	}
	return quoted
}

// pattern builds the replacement regex: existing annotations as the first
// alternative so they pass through untouched, then every registered
// surface form, longest first.
func (a *Annotator) pattern() *regexp.Regexp {
	var values []string
	seen := map[string]bool{}
	for _, ann := range a.annotations {
		for value := range ann.values {
			if !seen[value] {
				seen[value] = true
				values = append(values, value)
			}
		}
	}
	if len(values) == 0 {
		return nil
	}
	sort.Slice(values, func(i, j int) bool {
		if len(values[i]) != len(values[j]) {
			return len(values[i]) > len(values[j])
		}
		return values[i] < values[j]
	})
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quoteValue(v)
	}
	return regexp.MustCompile(annotationRe.String() + `|(?:` + strings.Join(quoted, "|") + `)`)
}

// AnnotateText replaces every registered value in the text with its
// annotation. Already annotated spans are left alone, so repeated
// application cannot nest links.
func (a *Annotator) AnnotateText(text string) string {
	re := a.pattern()
	if re == nil {
		return text
	}
	return re.ReplaceAllStringFunc(text, func(match string) string {
		if strings.HasPrefix(match, "[") && annotationRe.MatchString(match) {
			return match
		}
		ann := a.annotations[names.Normalize(match)]
		if ann == nil {
			return match
		}
		return "[" + match + "](" + ann.Query(a.model) + ")"
	})
}

// CleanText strips brackets and parentheses from raw text and collapses
// whitespace. Annotated text reuses the bracket characters as markup, so
// they cannot survive in the body.
func CleanText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch r {
		case '(', ')', '[', ']':
		default:
			b.WriteRune(r)
		}
	}
	return names.CollapseSpaces(b.String())
}
