package analysis

import (
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// DefaultChunkSize is the default upper bound on a text chunk handed to
// the extractors.
const DefaultChunkSize = 10000

var (
	chunkTokenizer     *sentences.DefaultSentenceTokenizer
	chunkTokenizerOnce sync.Once
)

func tokenizer() *sentences.DefaultSentenceTokenizer {
	chunkTokenizerOnce.Do(func() {
		t, err := english.NewSentenceTokenizer(nil)
		if err != nil {
			panic("analysis: sentence tokenizer: " + err.Error())
		}
		chunkTokenizer = t
	})
	return chunkTokenizer
}

// Chunks splits texts into extraction-sized pieces of at most limit bytes.
// Splits happen at sentence boundaries where possible; a single sentence
// longer than the limit is cut hard. Empty texts are dropped.
func Chunks(texts []string, limit int) []string {
	if limit <= 0 {
		limit = DefaultChunkSize
	}
	var chunks []string
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if len(text) <= limit {
			chunks = append(chunks, text)
			continue
		}
		chunks = append(chunks, splitText(text, limit)...)
	}
	return chunks
}

func splitText(text string, limit int) []string {
	var chunks []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	for _, sentence := range tokenizer().Tokenize(text) {
		s := sentence.Text
		if current.Len()+len(s) > limit {
			flush()
		}
		if len(s) > limit {
			for len(s) > limit {
				if piece := strings.TrimSpace(s[:limit]); piece != "" {
					chunks = append(chunks, piece)
				}
				s = s[limit:]
			}
			current.WriteString(s)
			continue
		}
		current.WriteString(s)
	}
	flush()
	return chunks
}
