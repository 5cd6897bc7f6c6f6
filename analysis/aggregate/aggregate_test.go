package aggregate

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semextract/analysis/extract"
)

func result(value, tag, source string) extract.Result {
	return extract.Result{Value: value, Tag: tag, Source: source}
}

func TestAggregatorCollapsesVariants(t *testing.T) {
	a := New()
	assert.Empty(t, a.Add(result("Angela Merkel", extract.TagPerson, "ner-statistical")))
	assert.Empty(t, a.Add(result("angela MERKEL", extract.TagPerson, "ner-transformer")))
	assert.Empty(t, a.Add(result("Angela Merkel", extract.TagPerson, "ner-statistical")))

	require.Equal(t, 1, a.Len())
	entry := a.Entries()[0]
	assert.Equal(t, "angela merkel", entry.Key)
	assert.Equal(t, []string{"Angela Merkel", "angela MERKEL"}, entry.Values)
	assert.Equal(t, []string{"ner-statistical", "ner-transformer"}, entry.Sources)
	assert.Equal(t, 3, entry.Count)
}

func TestAggregatorKeySeparatesTags(t *testing.T) {
	a := New()
	a.Add(result("Washington Post", extract.TagOrg, "x"))
	a.Add(result("Washington Post", extract.TagPerson, "x"))
	assert.Equal(t, 2, a.Len())
}

func TestAggregatorInvalidKey(t *testing.T) {
	a := New()
	assert.Equal(t, ReasonInvalidKey, a.Add(result("...---...", extract.TagPerson, "x")))
	assert.Zero(t, a.Len())
}

func TestAggregatorMaxConfidence(t *testing.T) {
	a := New()
	lo, hi := 0.4, 0.8
	a.Add(extract.Result{Value: "Angela Merkel", Tag: extract.TagPerson, Source: "a", Confidence: &lo})
	a.Add(extract.Result{Value: "Angela Merkel", Tag: extract.TagPerson, Source: "b", Confidence: &hi})
	a.Add(result("Angela Merkel", extract.TagPerson, "c"))

	entry := a.Entries()[0]
	require.NotNil(t, entry.Confidence)
	assert.InDelta(t, 0.8, *entry.Confidence, 1e-9)
}

func TestAggregatorMaxResults(t *testing.T) {
	a := New()
	for i := 0; i < MaxResults; i++ {
		require.Empty(t, a.Add(result(fmtKey(i), extract.TagEmail, "patterns")))
	}
	assert.Equal(t, ReasonMaxResults, a.Add(result("overflow@example.com", extract.TagEmail, "patterns")))
	// At the bound even duplicates of known keys are dropped.
	assert.Equal(t, ReasonMaxResults, a.Add(result(fmtKey(0), extract.TagEmail, "patterns")))
	assert.Equal(t, MaxResults, a.Len())
	assert.Equal(t, 1, a.Entries()[0].Count)
}

func fmtKey(i int) string {
	return "user-" + strconv.Itoa(i) + "@example.com"
}

func TestAddAllCountsRejections(t *testing.T) {
	a := New()
	rejected := a.AddAll([]extract.Result{
		result("Angela Merkel", extract.TagPerson, "x"),
		result("---", extract.TagPerson, "x"),
		result("***", extract.TagOrg, "x"),
	})
	assert.Equal(t, map[string]int{ReasonInvalidKey: 2}, rejected)
	assert.Equal(t, 1, a.Len())
}

// tableClassifier returns canned classifications keyed by query string.
type tableClassifier struct {
	answers map[string]Classification
}

func (c *tableClassifier) Classify(_ context.Context, values []string) ([]Classification, error) {
	out := make([]Classification, len(values))
	for i, v := range values {
		if answer, ok := c.answers[v]; ok {
			out[i] = answer
		} else {
			out[i] = Classification{Label: "name", Distribution: []float64{1, 0}}
		}
	}
	return out, nil
}

func TestConfidence(t *testing.T) {
	assert.InDelta(t, 1.0, confidence([]float64{1, 0, 0}), 1e-9)
	assert.InDelta(t, 0.0, confidence([]float64{0.5, 0.5}), 1e-9)
	assert.InDelta(t, 1.0, confidence([]float64{1}), 1e-9)
	mid := confidence([]float64{0.9, 0.1})
	assert.Greater(t, mid, 0.0)
	assert.Less(t, mid, 1.0)
}

func TestScorerRejectsTrash(t *testing.T) {
	scorer := NewScorer(&tableClassifier{answers: map[string]Classification{
		"page 17 of 23": {Label: TrashLabel, Distribution: []float64{0.99, 0.01}},
	}}, 0.5)

	a := New()
	a.Add(result("Page 17 of 23", extract.TagPerson, "x"))
	a.Add(result("Angela Merkel", extract.TagPerson, "x"))

	kept, rejected, err := scorer.Apply(context.Background(), a.Entries())
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, "angela merkel", kept[0].Key)
	assert.Equal(t, map[string]int{ReasonTrash: 1}, rejected)
}

func TestScorerRejectsLowConfidence(t *testing.T) {
	scorer := NewScorer(&tableClassifier{answers: map[string]Classification{
		"maybe a name": {Label: "name", Distribution: []float64{0.5, 0.5}},
	}}, 0.5)

	a := New()
	a.Add(result("Maybe A Name", extract.TagPerson, "x"))
	kept, rejected, err := scorer.Apply(context.Background(), a.Entries())
	require.NoError(t, err)
	assert.Empty(t, kept)
	assert.Equal(t, map[string]int{ReasonLowConfidence: 1}, rejected)
}

func TestScorerSkipsPatternTags(t *testing.T) {
	scorer := NewScorer(&tableClassifier{answers: map[string]Classification{
		"jane@example.com": {Label: TrashLabel, Distribution: []float64{1, 0}},
	}}, 0.5)

	a := New()
	a.Add(result("jane@example.com", extract.TagEmail, "patterns"))
	kept, rejected, err := scorer.Apply(context.Background(), a.Entries())
	require.NoError(t, err)
	assert.Len(t, kept, 1)
	assert.Empty(t, rejected)
}
