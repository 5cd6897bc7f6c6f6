// Package entity provides the vocabulary predicates for analyzed document
// entities published to the knowledge graph.
//
// Predicates follow the semstreams three-level dotted notation
// (entity.category.property) and are registered in init() with IRI
// mappings for RDF export.
package entity

import "github.com/c360studio/semstreams/vocabulary"

// Namespace is the base IRI prefix for entity vocabulary terms.
const Namespace = "https://semextract.dev/ontology/entity/"

// Metadata predicates.
const (
	// EntitySchema is the ontology schema of the entity.
	EntitySchema = "entity.meta.schema"

	// EntityCaption is the preferred display name.
	EntityCaption = "entity.meta.caption"
)

// Property predicate prefix. Individual ontology properties are published
// as entity.prop.<name>.
const propPrefix = "entity.prop."

// PropertyPredicate returns the graph predicate for an ontology property.
func PropertyPredicate(prop string) string {
	return propPrefix + prop
}

func init() {
	vocabulary.Register(EntitySchema,
		vocabulary.WithDescription("Ontology schema of the analyzed entity"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"schema"))

	vocabulary.Register(EntityCaption,
		vocabulary.WithDescription("Preferred display name of the entity"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"caption"))
}
