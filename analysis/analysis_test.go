package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semextract/analysis/aggregate"
	"github.com/c360studio/semextract/analysis/extract"
	"github.com/c360studio/semextract/analysis/resolve"
	"github.com/c360studio/semextract/annotate"
	"github.com/c360studio/semextract/geodb"
	"github.com/c360studio/semextract/namedb"
	"github.com/c360studio/semextract/ontology"
)

func TestDetectLanguage(t *testing.T) {
	english := "The quick brown fox jumps over the lazy dog and keeps on running through the fields."
	assert.Equal(t, "eng", DetectLanguage(english, 0))
	assert.Equal(t, "", DetectLanguage("", 0.5))
	assert.Equal(t, "", DetectLanguage("ok", 1.1), "confidence can never exceed the floor")
}

func TestEntityLanguagesPrefersDeclared(t *testing.T) {
	doc, err := ontology.Default().MakeEntity("PlainText")
	require.NoError(t, err)
	doc.Add("language", "deu")

	languages, detected := EntityLanguages(doc, "some english text here", 0)
	assert.Equal(t, []string{"deu"}, languages)
	assert.Empty(t, detected)
}

func TestChunksShortTextsPassThrough(t *testing.T) {
	chunks := Chunks([]string{"one", "", "  ", "two"}, 100)
	assert.Equal(t, []string{"one", "two"}, chunks)
}

func TestChunksSplitsAtSentences(t *testing.T) {
	text := "First sentence here. Second sentence follows. Third one ends it."
	chunks := Chunks([]string{text}, 45)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 45)
	}
	assert.Contains(t, strings.Join(chunks, " "), "Second sentence")
}

func TestChunksHardSplitsLongSentence(t *testing.T) {
	long := strings.Repeat("abcdefghij", 30)
	chunks := Chunks([]string{long}, 100)
	require.GreaterOrEqual(t, len(chunks), 3)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 100)
	}
}

func TestTracerCounters(t *testing.T) {
	tr := NewTracer()
	tr.Extraction("ner", "PER", true, "")
	tr.Extraction("ner", "PER", false, "invalid_key")
	tr.Aggregated("PER")
	tr.Resolution(true, "", "")
	tr.Resolution(false, "geonames", "no matching toponym")
	tr.Entity("Mention")

	assert.Equal(t, 2, tr.ExtractionsTotal)
	assert.Equal(t, 1, tr.ExtractionsAccepted)
	assert.Equal(t, map[string]int{"ner": 2}, tr.ExtractionsBySource)
	assert.Equal(t, 1, tr.AggregatedByTag["PER"])
	assert.Equal(t, 1, tr.ResolutionAccepted)
	assert.Equal(t, 1, tr.RejectedByStage["geonames"])
	assert.Equal(t, 1, tr.RejectedByReason["no matching toponym"])
	assert.Equal(t, 1, tr.EntitiesBySchema["Mention"])
}

// cannedExtractor stands in for a recognizer.
type cannedExtractor struct {
	results []extract.Result
}

func (e *cannedExtractor) Name() string { return "canned" }
func (e *cannedExtractor) Extract(context.Context, *extract.Context) ([]extract.Result, error) {
	return e.results, nil
}

func testPipeline(t *testing.T) *resolve.Pipeline {
	t.Helper()
	svc := namedb.NewMemory()
	svc.SetPrediction("Angela Merkel", namedb.SchemaPrediction{NerTag: "PER", Score: 0.95})
	svc.SetPrediction("Siemens AG", namedb.SchemaPrediction{NerTag: "ORG", Score: 0.95})
	svc.SetPrediction("Berlin", namedb.SchemaPrediction{NerTag: "LOC", Score: 0.96})
	svc.SetLookup("Angela Merkel", namedb.LookupResult{
		Caption:   "Angela Merkel",
		Score:     0.93,
		Names:     []string{"Angela Merkel"},
		Schemata:  []string{"Person"},
		Countries: []string{"de"},
		EntityID:  "Q567",
	})
	tagger := geodb.NewFixtureTagger(map[string][]geodb.Location{
		"Berlin": {{Name: "Berlin", CountryCode: "de"}},
	})
	return resolve.NewPipeline([]resolve.Stage{
		resolve.NewRigourStage(),
		resolve.NewClassifierStage(svc),
		resolve.NewValidatorStage(svc),
		resolve.NewGeonamesStage(tagger),
		resolve.NewLookupStage(svc),
	})
}

func testDocument(t *testing.T) *ontology.Entity {
	t.Helper()
	doc, err := ontology.Default().MakeEntity("PlainText")
	require.NoError(t, err)
	doc.ID = "doc1"
	doc.AddCleaned("bodyText",
		"Angela Merkel met with Siemens AG in Berlin to discuss the industrial agenda. "+
			"Contact press@siemens.com for details. Wire funds to CH5604835012345678009 today.")
	return doc
}

func TestAnalyzeEntityEndToEnd(t *testing.T) {
	model := ontology.Default()
	extractors := []extract.Extractor{
		&cannedExtractor{results: []extract.Result{
			{Value: "Angela Merkel", Tag: extract.TagPerson, Source: "canned"},
			{Value: "Siemens AG", Tag: extract.TagOrg, Source: "canned"},
			{Value: "Berlin", Tag: extract.TagLocation, Source: "canned"},
		}},
		extract.NewPatternExtractor(),
	}
	analyzer := New(model, extractors, testPipeline(t), WithLanguageFloor(0))

	result, err := analyzer.AnalyzeEntity(context.Background(), testDocument(t))
	require.NoError(t, err)
	require.NotNil(t, result)

	out := result.Document
	assert.Equal(t, "doc1", out.ID)
	assert.Contains(t, out.Get("namesMentioned"), "angela merkel")
	assert.Contains(t, out.Get("companiesMentioned"), "siemens ag")
	assert.Contains(t, out.Get("locationMentioned"), "berlin")
	assert.Equal(t, []string{"press@siemens.com"}, out.Get("emailMentioned"))
	assert.Equal(t, []string{"CH5604835012345678009"}, out.Get("ibanMentioned"))
	assert.Contains(t, out.Get("country"), "ch")
	assert.Contains(t, out.Get("country"), "de")
	assert.Equal(t, []string{"eng"}, out.Get("detectedLanguage"))

	index := out.First("indexText")
	require.NotEmpty(t, index)
	assert.True(t, strings.HasPrefix(index, annotate.Marker))
	assert.Contains(t, index, "[Angela Merkel](")
	assert.Contains(t, index, "[Siemens AG](")
	// The looked-up person annotates with its resolved schema ancestry.
	assert.Contains(t, index, "s_Person")
	assert.Contains(t, index, "s_LegalEntity")
	assert.Contains(t, index, "p_namesMentioned")
	assert.Contains(t, index, "[press@siemens.com](")
	assert.Contains(t, index, "p_emailMentioned")

	schemata := map[string]int{}
	for _, e := range result.Entities {
		schemata[e.Schema.Name]++
	}
	assert.Equal(t, 1, schemata["BankAccount"])
	assert.Equal(t, 1, schemata["Person"], "looked-up mention becomes a full entity")
	assert.Equal(t, 1, schemata["Mention"], "unresolved org stays a mention stub")

	tr := result.Tracer
	assert.Equal(t, 3, tr.ResolutionTotal)
	assert.Equal(t, 3, tr.ResolutionAccepted)
	assert.Equal(t, 3, tr.EntitiesCreated)
	assert.Greater(t, tr.ExtractionsAccepted, 0)
}

func TestAnalyzeEntityAnnotatesPatterns(t *testing.T) {
	model := ontology.Default()
	analyzer := New(model, []extract.Extractor{extract.NewPatternExtractor()}, nil,
		WithLanguageFloor(0))

	doc, err := model.MakeEntity("PlainText")
	require.NoError(t, err)
	doc.ID = "doc-patterns"
	doc.AddCleaned("bodyText",
		"Contact press@siemens.com or tel:+919988111222. Wire funds to CH5604835012345678009.")

	result, err := analyzer.AnalyzeEntity(context.Background(), doc)
	require.NoError(t, err)
	require.NotNil(t, result)

	index := result.Document.First("indexText")
	require.NotEmpty(t, index, "pattern-only documents still get index text")
	assert.True(t, strings.HasPrefix(index, annotate.Marker))
	assert.Contains(t, index, "[press@siemens.com](")
	assert.Contains(t, index, "[+919988111222](")
	assert.Contains(t, index, "[CH5604835012345678009](")
	assert.Contains(t, index, "p_emailMentioned")
	assert.Contains(t, index, "p_phoneMentioned")
	assert.Contains(t, index, "p_ibanMentioned")
}

// failingClassifier simulates a confidence service outage.
type failingClassifier struct{}

func (failingClassifier) Classify(context.Context, []string) ([]aggregate.Classification, error) {
	return nil, errors.New("classifier down")
}

func TestAnalyzeEntitySurvivesScorerFailure(t *testing.T) {
	analyzer := New(ontology.Default(), []extract.Extractor{
		&cannedExtractor{results: []extract.Result{
			{Value: "Angela Merkel", Tag: extract.TagPerson, Source: "canned"},
		}},
	}, testPipeline(t),
		WithScorer(aggregate.NewScorer(failingClassifier{}, 0.5)),
		WithLanguageFloor(0))

	result, err := analyzer.AnalyzeEntity(context.Background(), testDocument(t))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Contains(t, result.Document.Get("namesMentioned"), "angela merkel")
}

func TestAnalyzeEntitySkipsNonAnalyzable(t *testing.T) {
	model := ontology.Default()
	analyzer := New(model, nil, nil)

	person, err := model.MakeEntity("Person")
	require.NoError(t, err)
	person.ID = "p1"
	result, err := analyzer.AnalyzeEntity(context.Background(), person)
	require.NoError(t, err)
	assert.Nil(t, result)

	empty, err := model.MakeEntity("PlainText")
	require.NoError(t, err)
	empty.ID = "d2"
	result, err = analyzer.AnalyzeEntity(context.Background(), empty)
	require.NoError(t, err)
	assert.Nil(t, result, "no text, nothing to analyze")

	anonymous, err := model.MakeEntity("PlainText")
	require.NoError(t, err)
	anonymous.Add("bodyText", "some text")
	_, err = analyzer.AnalyzeEntity(context.Background(), anonymous)
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestAnalyzeEntityWithoutAnnotation(t *testing.T) {
	analyzer := New(ontology.Default(), []extract.Extractor{
		&cannedExtractor{results: []extract.Result{
			{Value: "Angela Merkel", Tag: extract.TagPerson, Source: "canned"},
		}},
	}, testPipeline(t), WithAnnotation(false), WithLanguageFloor(0))

	result, err := analyzer.AnalyzeEntity(context.Background(), testDocument(t))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Empty(t, result.Document.Get("indexText"))
}

func TestAnalyzeEntities(t *testing.T) {
	model := ontology.Default()
	analyzer := New(model, []extract.Extractor{extract.NewPatternExtractor()}, nil, WithLanguageFloor(0))

	person, err := model.MakeEntity("Person")
	require.NoError(t, err)
	person.ID = "p1"

	results, err := analyzer.AnalyzeEntities(context.Background(),
		[]*ontology.Entity{testDocument(t), person})
	require.NoError(t, err)
	assert.Len(t, results, 1, "non-analyzable entities are skipped")
}
