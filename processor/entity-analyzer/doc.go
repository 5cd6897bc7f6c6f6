// Package entityanalyzer provides a NATS consumer component that runs
// document entity analysis and publishes the results to the knowledge
// graph.
//
// # Overview
//
// The entity-analyzer consumes analysis jobs carrying document entities,
// runs named entity recognition and pattern extraction over the document
// text, aggregates and resolves the extracted mentions, and publishes the
// resulting entities (mentions, resolved people and organizations, bank
// accounts) together with an enriched document fragment to the graph
// ingestion stream.
//
// # Architecture
//
// The package consists of a few key pieces:
//
//   - Component: NATS consumer lifecycle management
//   - Handler: runs the analyzer over one job and collects the entities
//   - JobPayload: the registered message payload for analysis jobs
//
// The analysis stack itself (extractors, resolution pipeline, backends)
// is built once per process by the models registry and shared with the
// CLI.
//
// # Entity Model
//
// For each analyzed document, the component publishes:
//
//   - Zero or more mention, Person, Organization and BankAccount entities
//   - One document fragment with mentioned names, pattern values,
//     countries, detected language and annotated index text
//
// All entities are published to the "graph.ingest.entity" subject. The
// fragment is published last so graph consumers see the document's
// entities before its summary properties. After publishing, the document
// is announced on "doc.index.request" for downstream search indexing.
//
// # Configuration
//
// Key configuration options:
//
//   - StreamName / ConsumerName: the JetStream source of analysis jobs
//   - AnalysisTimeout: per-document analysis deadline (default 120s)
//
// Backend endpoints (NER sidecar, name intelligence, geonames) come from
// the process configuration, not the component config.
//
// # Usage
//
// The component is registered via the factory and started by the
// semstreams component registry:
//
//	import entityanalyzer "github.com/c360studio/semextract/processor/entity-analyzer"
//
//	func main() {
//	    entityanalyzer.Register(registry)
//	    // Component started automatically when configured
//	}
package entityanalyzer
