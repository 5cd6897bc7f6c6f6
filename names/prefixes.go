package names

import "strings"

// Honorifics and titles that precede person names.
var personPrefixes = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "miss": true, "mx": true,
	"dr": true, "prof": true, "sir": true, "dame": true, "lord": true,
	"lady": true, "herr": true, "frau": true, "mme": true, "mlle": true,
	"don": true, "dona": true, "senor": true, "senora": true, "sig": true,
}

// Articles that precede organization names.
var orgPrefixes = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Articles in common languages, stripped from unclassified names.
var objPrefixes = map[string]bool{
	"the": true, "le": true, "la": true, "les": true, "el": true,
	"los": true, "las": true, "der": true, "die": true, "das": true,
	"il": true, "lo": true, "de": true, "het": true,
}

// stripPrefixes removes leading tokens of name that appear in the given
// table, comparing case-insensitively and ignoring trailing dots. The
// remainder keeps its original casing.
func stripPrefixes(name string, table map[string]bool) string {
	rest := strings.TrimSpace(name)
	for {
		token, tail, found := strings.Cut(rest, " ")
		if !found {
			break
		}
		key := strings.ToLower(strings.TrimSuffix(token, "."))
		if !table[Normalize(key)] && !table[key] {
			break
		}
		rest = strings.TrimSpace(tail)
	}
	return rest
}

// RemovePersonPrefixes strips honorifics ("Mrs. Jane Doe" -> "Jane Doe").
func RemovePersonPrefixes(name string) string {
	return stripPrefixes(name, personPrefixes)
}

// RemoveOrgPrefixes strips leading articles from organization names
// ("The European Union" -> "European Union").
func RemoveOrgPrefixes(name string) string {
	return stripPrefixes(name, orgPrefixes)
}

// RemoveObjPrefixes strips leading articles from names of unknown kind.
func RemoveObjPrefixes(name string) string {
	return stripPrefixes(name, objPrefixes)
}

// RemoveEntityPrefixes strips both organization articles and person
// honorifics. Used by the name acceptance filter during extraction.
func RemoveEntityPrefixes(name string) string {
	return RemovePersonPrefixes(RemoveOrgPrefixes(name))
}
