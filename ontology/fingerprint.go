package ontology

import (
	"sort"
	"strings"

	"github.com/c360studio/semextract/names"
)

// Fingerprint reduces a name to a canonical comparison key: latinized,
// lowercased tokens sorted and rejoined. "Merkel, Angela" and
// "Angela MERKEL" share a fingerprint.
func Fingerprint(name string) string {
	tokens := names.Tokenize(names.Normalize(name))
	if len(tokens) == 0 {
		return ""
	}
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// Fingerprints returns the distinct fingerprints of a set of names under
// the given schemata. When any schema is an organization, a second
// fingerprint with company-class words removed is added per name, so
// "Siemens AG" also matches plain "Siemens".
func (m *Model) Fingerprints(schemata []string, nameList []string) []string {
	isOrg := false
	for _, name := range schemata {
		if s := m.Get(name); s != nil && s.IsA("Organization") {
			isOrg = true
			break
		}
	}
	seen := map[string]bool{}
	var out []string
	add := func(fp string) {
		if fp != "" && !seen[fp] {
			seen[fp] = true
			out = append(out, fp)
		}
	}
	for _, name := range nameList {
		add(Fingerprint(name))
		if isOrg {
			add(Fingerprint(names.RemoveOrgClassTokens(name)))
		}
	}
	sort.Strings(out)
	return out
}

// MakeFingerprints returns the distinct fingerprints of an entity's names
// under its own schema.
func (e *Entity) MakeFingerprints() []string {
	return e.Model().Fingerprints([]string{e.Schema.Name}, e.Names())
}
