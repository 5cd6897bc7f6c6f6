package namedb

import (
	"context"
	"sync"

	"github.com/c360studio/semextract/names"
)

// Memory is an in-process Client backed by static tables. It serves tests
// and offline runs; keys are matched on normalized names.
type Memory struct {
	mu          sync.RWMutex
	predictions map[string]SchemaPrediction
	invalid     map[string]bool
	lookups     map[string][]LookupResult
}

// NewMemory creates an empty in-memory name service.
func NewMemory() *Memory {
	return &Memory{
		predictions: map[string]SchemaPrediction{},
		invalid:     map[string]bool{},
		lookups:     map[string][]LookupResult{},
	}
}

// SetPrediction registers the classifier answer for a name.
func (m *Memory) SetPrediction(name string, p SchemaPrediction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.predictions[names.Normalize(name)] = p
}

// SetInvalid marks a name as failing person-name validation.
func (m *Memory) SetInvalid(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalid[names.Normalize(name)] = true
}

// SetLookup registers lookup results for a name.
func (m *Memory) SetLookup(name string, results ...LookupResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups[names.Normalize(name)] = results
}

// PredictSchema implements Client. Unknown names predict OTHER at zero
// confidence.
func (m *Memory) PredictSchema(_ context.Context, name string) (*SchemaPrediction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.predictions[names.Normalize(name)]; ok {
		return &p, nil
	}
	return &SchemaPrediction{NerTag: "OTHER", Score: 0}, nil
}

// ValidateName implements Client. Names not marked invalid validate.
func (m *Memory) ValidateName(_ context.Context, name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return !m.invalid[names.Normalize(name)], nil
}

// Lookup implements Client.
func (m *Memory) Lookup(_ context.Context, name string) ([]LookupResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lookups[names.Normalize(name)], nil
}
