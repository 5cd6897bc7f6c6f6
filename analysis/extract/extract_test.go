package extract

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semextract/ontology"
)

func TestTagForLabel(t *testing.T) {
	assert.Equal(t, TagPerson, TagForLabel("PERSON"))
	assert.Equal(t, TagPerson, TagForLabel("B-PER"))
	assert.Equal(t, TagOrg, TagForLabel("organization"))
	assert.Equal(t, TagLocation, TagForLabel("GPE"))
	assert.Equal(t, "", TagForLabel("DATE"))
}

func TestTestName(t *testing.T) {
	assert.Equal(t, "Angela Merkel", TestName(TagPerson, "  Angela   Merkel "))
	assert.Equal(t, "Jane Doeson", TestName(TagPerson, "Mrs. Jane Doeson"))
	assert.Equal(t, "", TestName(TagPerson, "Jane"), "too short after cleaning")
	assert.Equal(t, "", TestName(TagPerson, "12345 678"), "no letters")

	long := make([]byte, NameMaxLength+1)
	for i := range long {
		long[i] = 'a'
	}
	assert.Equal(t, "", TestName(TagOrg, string(long)))
}

func TestMakeNameResultsLocationCountry(t *testing.T) {
	results := makeNameResults("test", "LOC", "Germany Republic", nil)
	require.Len(t, results, 1)
	assert.Equal(t, TagLocation, results[0].Tag)

	results = makeNameResults("test", "GPE", "New York City", nil)
	require.Len(t, results, 2)
	assert.Equal(t, TagLocation, results[0].Tag)
	assert.Equal(t, TagCountry, results[1].Tag)
	assert.Equal(t, "us", results[1].Value)
}

func docEntity(t *testing.T) *ontology.Entity {
	t.Helper()
	e, err := ontology.Default().MakeEntity("PlainText")
	require.NoError(t, err)
	e.ID = "doc1"
	return e
}

func TestPatternExtractor(t *testing.T) {
	text := "Contact Jane.Doe@Example.com or +49 30 123456. " +
		"Wire to CH5604835012345678009 please."
	c := &Context{Entity: docEntity(t), Text: text}

	results, err := NewPatternExtractor().Extract(context.Background(), c)
	require.NoError(t, err)

	byTag := map[string][]string{}
	for _, r := range results {
		byTag[r.Tag] = append(byTag[r.Tag], r.Value)
		assert.Equal(t, "patterns", r.Source)
	}
	assert.Equal(t, []string{"jane.doe@example.com"}, byTag[TagEmail])
	assert.Equal(t, []string{"+4930123456"}, byTag[TagPhone])
	assert.Equal(t, []string{"CH5604835012345678009"}, byTag[TagIBAN])
	assert.Contains(t, byTag[TagCountry], "de")
	assert.Contains(t, byTag[TagCountry], "ch")
}

func TestPatternExtractorRejectsInvalid(t *testing.T) {
	c := &Context{Entity: docEntity(t), Text: "Fake iban XX00 0000 0000 0000 0000 0 and email not@here"}
	results, err := NewPatternExtractor().Extract(context.Background(), c)
	require.NoError(t, err)
	for _, r := range results {
		assert.NotEqual(t, TagIBAN, r.Tag)
		assert.NotEqual(t, TagEmail, r.Tag)
	}
}

// nerServer fakes the model sidecar with canned spans per model.
func nerServer(t *testing.T, spans map[string][]Span) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			// Readiness probes for /models/<name>.
			w.WriteHeader(http.StatusOK)
			return
		}
		var req nerRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(nerResponse{Entities: spans[req.Model]})
	}))
}

func TestStatisticalExtractorModelSelection(t *testing.T) {
	srv := nerServer(t, map[string][]Span{
		"xx_core": {{Text: "Angela Merkel", Label: "PER"}},
		"de_core": {{Text: "Emmanuel Macron", Label: "PER"}},
	})
	defer srv.Close()

	service := NewService(srv.URL)
	ctx := context.Background()
	e, err := NewStatisticalExtractor(ctx, service, map[string]string{
		"eng": "xx_core",
		"deu": "de_core",
	}, "eng")
	require.NoError(t, err)

	results, err := e.Extract(ctx, &Context{Entity: docEntity(t), Text: "x", Languages: []string{"deu"}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Emmanuel Macron", results[0].Value)

	// Unknown language falls back to the default model.
	results, err = e.Extract(ctx, &Context{Entity: docEntity(t), Text: "x", Languages: []string{"fra"}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Angela Merkel", results[0].Value)
}

func TestStatisticalExtractorRequiresDefaultModel(t *testing.T) {
	srv := nerServer(t, nil)
	defer srv.Close()
	_, err := NewStatisticalExtractor(context.Background(), NewService(srv.URL),
		map[string]string{"deu": "de_core"}, "eng")
	assert.Error(t, err)
}

func TestExtractorFailsFastOnMissingModel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewTransformerExtractor(context.Background(), NewService(srv.URL), "missing")
	assert.Error(t, err)
	_, err = NewZeroShotExtractor(context.Background(), NewService(srv.URL), "missing", 0.5)
	assert.Error(t, err)
}

func TestSequenceExtractorSplitsSentences(t *testing.T) {
	var requests []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.WriteHeader(http.StatusOK)
			return
		}
		var req nerRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		requests = append(requests, req.Text)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(nerResponse{})
	}))
	defer srv.Close()

	ctx := context.Background()
	e, err := NewSequenceExtractor(ctx, NewService(srv.URL), "seq")
	require.NoError(t, err)

	text := "Angela Merkel spoke in Berlin. The parliament listened carefully."
	_, err = e.Extract(ctx, &Context{Entity: docEntity(t), Text: text})
	require.NoError(t, err)
	assert.Len(t, requests, 2)
}

func TestZeroShotExtractorSendsLabels(t *testing.T) {
	var got nerRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.WriteHeader(http.StatusOK)
			return
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		score := 0.93
		json.NewEncoder(w).Encode(nerResponse{Entities: []Span{
			{Text: "Siemens Aktiengesellschaft", Label: "organization", Score: &score},
		}})
	}))
	defer srv.Close()

	ctx := context.Background()
	e, err := NewZeroShotExtractor(ctx, NewService(srv.URL), "zs", 0.7)
	require.NoError(t, err)

	results, err := e.Extract(ctx, &Context{Entity: docEntity(t), Text: "x"})
	require.NoError(t, err)
	assert.Equal(t, zeroShotLabels, got.Labels)
	assert.InDelta(t, 0.7, got.Threshold, 1e-9)
	require.Len(t, results, 1)
	assert.Equal(t, TagOrg, results[0].Tag)
	require.NotNil(t, results[0].Confidence)
	assert.InDelta(t, 0.93, *results[0].Confidence, 1e-9)
}
