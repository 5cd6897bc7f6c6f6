// Package analysis orchestrates the document pipeline: language detection,
// text chunking, extraction, aggregation, mention resolution and entity
// emission, with a tracer counting what happened at each step.
package analysis

import (
	"github.com/abadojack/whatlanggo"

	"github.com/c360studio/semextract/ontology"
)

// languageSampleSize bounds how much text feeds the language detector.
const languageSampleSize = 30000

// DetectLanguage identifies the dominant language of the text as an ISO
// 639-3 code, or "" when the detector's confidence falls below floor.
func DetectLanguage(text string, floor float64) string {
	if text == "" {
		return ""
	}
	if len(text) > languageSampleSize {
		text = text[:languageSampleSize]
	}
	info := whatlanggo.Detect(text)
	if info.Confidence < floor {
		return ""
	}
	return info.Lang.Iso6393()
}

// EntityLanguages returns the languages declared on the entity, detecting
// one from the text when nothing is declared. The second return value is
// the detected code, "" when declared languages were used or detection
// failed.
func EntityLanguages(e *ontology.Entity, text string, floor float64) ([]string, string) {
	declared := append(e.Get("language"), e.Get("detectedLanguage")...)
	if len(declared) > 0 {
		return declared, ""
	}
	if detected := DetectLanguage(text, floor); detected != "" {
		return []string{detected}, detected
	}
	return nil, ""
}
