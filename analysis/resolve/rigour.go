package resolve

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/c360studio/semextract/analysis/extract"
	"github.com/c360studio/semextract/names"
)

// stageCacheSize bounds the memoized per-name computations of each stage.
const stageCacheSize = 10000

// RigourStage classifies mentions with lexicon heuristics and rewrites
// their name forms with titles and legal-form prefixes stripped. It never
// rejects; its verdicts also back the classifier stage's fallback.
type RigourStage struct {
	cache *lru.Cache[string, string]
}

// NewRigourStage creates the heuristic stage.
func NewRigourStage() *RigourStage {
	cache, err := lru.New[string, string](stageCacheSize)
	if err != nil {
		panic("resolve: rigour cache: " + err.Error())
	}
	return &RigourStage{cache: cache}
}

// Name implements Stage.
func (s *RigourStage) Name() string {
	return "rigour"
}

// IsRigourPerson reports whether every token of the name, after title
// removal, is a known given name or surname. Names with tokens of two
// characters or less never qualify; initials are too ambiguous.
func IsRigourPerson(name string) bool {
	stripped := names.RemovePersonPrefixes(name)
	tokens := names.Tokenize(stripped)
	if len(tokens) == 0 {
		return false
	}
	for _, token := range tokens {
		if len(token) <= 2 {
			return false
		}
	}
	for _, token := range tokens {
		if len(names.TagPersonName(token)) == 0 {
			return false
		}
	}
	return true
}

// IsRigourOrg reports whether the name carries an organization legal-form
// token.
func IsRigourOrg(name string) bool {
	return len(names.TagOrgName(name)) > 0
}

// classifyRigour returns the heuristic tag for a name, or "" when neither
// pattern matches.
func classifyRigour(name string) string {
	switch {
	case IsRigourPerson(name):
		return extract.TagPerson
	case IsRigourOrg(name):
		return extract.TagOrg
	}
	return ""
}

// classify memoizes the heuristic verdict per name.
func (s *RigourStage) classify(name string) string {
	if tag, ok := s.cache.Get(name); ok {
		return tag
	}
	tag := classifyRigour(name)
	s.cache.Add(name, tag)
	return tag
}

// rewriteValues strips a prefix table from every value, dropping empties
// and duplicates.
func rewriteValues(values []string, strip func(string) string) []string {
	out := make([]string, 0, len(values))
	seen := map[string]bool{}
	for _, value := range values {
		value = strip(value)
		if value != "" && !seen[value] {
			seen[value] = true
			out = append(out, value)
		}
	}
	return out
}

// Process implements Stage. A heuristic person or org verdict re-tags the
// mention and strips the matching prefixes; otherwise the values are still
// cleaned of generic articles so later lookups see bare names.
func (s *RigourStage) Process(_ context.Context, m *Mention) error {
	name := m.Representative()
	if name == "" {
		return nil
	}
	switch s.classify(name) {
	case extract.TagPerson:
		m.Tag = extract.TagPerson
		m.ResolvedValues = rewriteValues(m.ResolvedValues, names.RemovePersonPrefixes)
	case extract.TagOrg:
		m.Tag = extract.TagOrg
		m.ResolvedValues = rewriteValues(m.ResolvedValues, names.RemoveOrgPrefixes)
	default:
		switch m.Tag {
		case extract.TagPerson:
			m.ResolvedValues = rewriteValues(m.ResolvedValues, names.RemovePersonPrefixes)
		case extract.TagOrg:
			m.ResolvedValues = rewriteValues(m.ResolvedValues, names.RemoveOrgPrefixes)
		default:
			m.ResolvedValues = rewriteValues(m.ResolvedValues, names.RemoveObjPrefixes)
		}
	}
	return nil
}
