package graph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semstreams/message"

	"github.com/c360studio/semextract/ontology"
	"github.com/c360studio/semextract/vocabulary/entity"
)

func TestEntityTriples(t *testing.T) {
	e, err := ontology.Default().MakeEntity("Mention")
	require.NoError(t, err)
	e.ID = "m1"
	e.Add("name", "Angela Merkel")
	e.AddCleaned("document", "doc1")
	e.Add("contextCountry", "de")

	now := time.Now()
	triples := EntityTriples(e, "semextract.analyze", now)
	require.Len(t, triples, 5)

	assert.Equal(t, "m1", triples[0].Subject)
	assert.Equal(t, entity.EntitySchema, triples[0].Predicate)
	assert.Equal(t, "Mention", triples[0].Object)

	assert.Equal(t, entity.EntityCaption, triples[1].Predicate)
	assert.Equal(t, "Angela Merkel", triples[1].Object)

	predicates := map[string]any{}
	for _, triple := range triples[1:] {
		assert.Equal(t, "m1", triple.Subject)
		assert.Equal(t, "semextract.analyze", triple.Source)
		assert.Equal(t, now, triple.Timestamp)
		predicates[triple.Predicate] = triple.Object
	}
	assert.Equal(t, "Angela Merkel", predicates["entity.prop.name"])
	assert.Equal(t, "doc1", predicates["entity.prop.document"])
	assert.Equal(t, "de", predicates["entity.prop.contextCountry"])
}

func TestNewEntityPayload(t *testing.T) {
	e, err := ontology.Default().MakeEntity("Person")
	require.NoError(t, err)
	e.ID = "p1"
	e.Add("name", "Angela Merkel")

	now := time.Now()
	p := NewEntityPayload(e, "semextract.analyze", now)
	require.NoError(t, p.Validate())
	assert.Equal(t, "p1", p.EntityID())
	assert.Equal(t, "Person", p.SchemaName)
	assert.Equal(t, now, p.UpdatedAt)
	assert.NotEmpty(t, p.Triples())
}

func TestEntityPayloadValidate(t *testing.T) {
	p := &EntityPayload{}
	assert.Error(t, p.Validate())
	p.EntityID_ = "x"
	assert.Error(t, p.Validate(), "schema and triples are required too")
	p.SchemaName = "Person"
	assert.Error(t, p.Validate())
	p.TripleData = []message.Triple{{Subject: "x"}}
	assert.NoError(t, p.Validate())
}
