package annotate

import "github.com/c360studio/semextract/ontology"

// AnnotateEntity rebuilds a document's annotated index text from its body
// text and previously emitted entities, without re-running extraction.
// Resolved legal entities contribute their aliases and schema ancestry;
// Mention stubs contribute their detected schema's property role.
func AnnotateEntity(doc *ontology.Entity, entities []*ontology.Entity) string {
	annotator := NewAnnotator(doc.Model())
	for _, e := range entities {
		if e == nil {
			continue
		}
		switch {
		case e.IsA("Mention"):
			prop := fallbackProp(e.First("detectedSchema"))
			annotator.AddTag(prop, e.Get("name")...)
		case e.IsA("LegalEntity"):
			annotator.AddMention(e, e.Names()...)
		}
	}
	text := CleanText(doc.First("bodyText"))
	return Marker + annotator.AnnotateText(text)
}

func fallbackProp(schema string) string {
	for prop, s := range fallbackSchemata {
		if s == schema {
			return prop
		}
	}
	return ""
}
