// Package graph publishes analyzed entities to the knowledge graph as
// triples.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"

	"github.com/c360studio/semextract/ontology"
	"github.com/c360studio/semextract/vocabulary/entity"
)

// GraphIngestSubject is the subject for graph ingestion.
const GraphIngestSubject = "graph.ingest.entity"

// EntityTriples converts an analyzed entity into graph triples: one schema
// triple plus one triple per property value.
func EntityTriples(e *ontology.Entity, source string, now time.Time) []message.Triple {
	triples := []message.Triple{{
		Subject:    e.ID,
		Predicate:  entity.EntitySchema,
		Object:     e.Schema.Name,
		Source:     source,
		Timestamp:  now,
		Confidence: 1.0,
	}}
	if names := e.Names(); len(names) > 0 {
		triples = append(triples, message.Triple{
			Subject:    e.ID,
			Predicate:  entity.EntityCaption,
			Object:     names[0],
			Source:     source,
			Timestamp:  now,
			Confidence: 1.0,
		})
	}
	for _, prop := range e.Properties() {
		predicate := entity.PropertyPredicate(prop)
		for _, value := range e.Get(prop) {
			triples = append(triples, message.Triple{
				Subject:    e.ID,
				Predicate:  predicate,
				Object:     value,
				Source:     source,
				Timestamp:  now,
				Confidence: 1.0,
			})
		}
	}
	return triples
}

// PublishEntity publishes one analyzed entity to the knowledge graph. A
// nil client skips publishing so callers can run without a graph attached.
func PublishEntity(ctx context.Context, nc *natsclient.Client, e *ontology.Entity, source string) error {
	if nc == nil {
		return nil
	}
	if e.ID == "" {
		return fmt.Errorf("publish entity: missing id")
	}
	payload := NewEntityPayload(e, source, time.Now())
	msg := message.NewBaseMessage(EntityType, payload, source)
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal entity %s: %w", e.ID, err)
	}
	if err := nc.PublishToStream(ctx, GraphIngestSubject, data); err != nil {
		return fmt.Errorf("publish entity %s: %w", e.ID, err)
	}
	return nil
}
