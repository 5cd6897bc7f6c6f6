package annotate

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semextract/names"
	"github.com/c360studio/semextract/ontology"
)

func queryFor(t *testing.T, a *Annotator, value string) []string {
	t.Helper()
	ann := a.annotations[names.Normalize(value)]
	require.NotNil(t, ann)
	return strings.Split(ann.Query(ontology.Default()), "&")
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "see annex 4 page 2", CleanText("see [annex 4] (page  2)"))
	assert.Equal(t, "", CleanText("  ()[] "))
}

func TestAnnotationQueryPerson(t *testing.T) {
	a := NewAnnotator(ontology.Default())
	a.AddTag("peopleMentioned", "Angela Merkel")

	parts := queryFor(t, a, "Angela Merkel")
	assert.Contains(t, parts, "f_angela+merkel")
	assert.Contains(t, parts, "p_peopleMentioned")
	assert.Contains(t, parts, "p_namesMentioned")
	assert.Contains(t, parts, "s_Person")
	assert.Contains(t, parts, "s_LegalEntity")
	assert.Contains(t, parts, "q_NAME_ANGELA")
	assert.Contains(t, parts, "q_NAME_MERKEL")
	// Tokens come out sorted.
	assert.True(t, sort.StringsAreSorted(parts))
}

func TestAnnotationQueryPattern(t *testing.T) {
	a := NewAnnotator(ontology.Default())
	a.AddTag("phoneMentioned", "+919988111222")

	parts := queryFor(t, a, "+919988111222")
	assert.Equal(t, []string{"p_phoneMentioned"}, parts,
		"pattern values carry no name tokens")
}

func TestAnnotationQueryResolvedEntity(t *testing.T) {
	model := ontology.Default()
	org, err := model.MakeEntity("Organization")
	require.NoError(t, err)
	org.ID = "org1"
	org.Add("name", "circular plastics alliance")

	a := NewAnnotator(model)
	a.AddMention(org, "Circular Plastics Alliance")

	parts := queryFor(t, a, "Circular Plastics Alliance")
	assert.Contains(t, parts, "s_Organization")
	assert.Contains(t, parts, "s_LegalEntity")
	assert.Contains(t, parts, "p_companiesMentioned")
	assert.Contains(t, parts, "p_namesMentioned")
	assert.Contains(t, parts, "f_alliance+circular+plastics")
	assert.NotContains(t, parts, "s_Thing")
}

func TestAnnotateText(t *testing.T) {
	a := NewAnnotator(ontology.Default())
	a.AddTag("peopleMentioned", "Angela Merkel")

	out := a.AnnotateText("Chancellor Angela Merkel spoke today.")
	assert.Contains(t, out, "[Angela Merkel](")
	assert.Contains(t, out, "f_angela+merkel")
	assert.True(t, strings.HasPrefix(out, "Chancellor ["))
}

func TestAnnotateTextNonWordEdges(t *testing.T) {
	a := NewAnnotator(ontology.Default())
	a.AddTag("phoneMentioned", "+919988111222")

	out := a.AnnotateText("Call tel:+919988111222 twice.")
	assert.Contains(t, out, "[+919988111222](p_phoneMentioned)")
}

func TestAnnotateTextDoesNotNest(t *testing.T) {
	a := NewAnnotator(ontology.Default())
	a.AddTag("peopleMentioned", "Angela Merkel")

	once := a.AnnotateText("Angela Merkel spoke.")
	twice := a.AnnotateText(once)
	assert.Equal(t, once, twice)
}

func TestAnnotateTextWordBoundaries(t *testing.T) {
	a := NewAnnotator(ontology.Default())
	a.AddTag("companiesMentioned", "Siemens")

	out := a.AnnotateText("Siemens and Siemensstadt differ.")
	assert.Equal(t, 1, strings.Count(out, "[Siemens]("))
	assert.Contains(t, out, "Siemensstadt")
}

func TestAnnotateTextLongestMatchWins(t *testing.T) {
	a := NewAnnotator(ontology.Default())
	a.AddTag("peopleMentioned", "Angela Merkel")
	a.AddTag("peopleMentioned", "Merkel")

	out := a.AnnotateText("Angela Merkel arrived.")
	assert.Contains(t, out, "[Angela Merkel](")
	assert.NotContains(t, out, "[Angela [Merkel]")
}

func TestAnnotatorMergesVariants(t *testing.T) {
	a := NewAnnotator(ontology.Default())
	a.AddTag("peopleMentioned", "Angela Merkel")
	a.AddTag("namesMentioned", "angela MERKEL")
	assert.Equal(t, 1, a.Len())

	out := a.AnnotateText("Angela Merkel met angela MERKEL.")
	assert.Contains(t, out, "p_peopleMentioned")
	assert.Contains(t, out, "p_namesMentioned")
}

func TestAnnotateTextNoAnnotations(t *testing.T) {
	a := NewAnnotator(ontology.Default())
	assert.Equal(t, "untouched", a.AnnotateText("untouched"))
}

func TestAnnotateEntity(t *testing.T) {
	model := ontology.Default()
	doc, err := model.MakeEntity("PlainText")
	require.NoError(t, err)
	doc.ID = "doc1"
	doc.AddCleaned("bodyText", "Angela Merkel visited (Berlin).")

	m, err := model.MakeEntity("Mention")
	require.NoError(t, err)
	m.Add("name", "Angela Merkel")
	m.AddCleaned("detectedSchema", "Person")

	out := AnnotateEntity(doc, []*ontology.Entity{m})
	assert.True(t, strings.HasPrefix(out, Marker))
	assert.Contains(t, out, "[Angela Merkel](")
	assert.NotContains(t, out, "(Berlin)")
	assert.Contains(t, out, "p_peopleMentioned")
	assert.Contains(t, out, "p_namesMentioned")
	assert.Contains(t, out, "s_LegalEntity")
}
