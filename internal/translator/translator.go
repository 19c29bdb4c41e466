// Package translator implements the canned English/French phrase translator.
//
// Translation is deterministic: a fixed phrase table per direction is
// consulted first (exact text, then normalized text, then word by word) and
// a character-substitution heuristic is used only when nothing in the input
// is covered by the table.
package translator

import (
	"strings"

	"github.com/MKhiriev/amour-lingua/models"
)

// punctuation is the set of characters removed before normalized lookups.
const punctuation = ".,?!;:"

const (
	frenchFlag  = " 🇫🇷"
	britishFlag = " 🇬🇧"
)

// direction bundles everything needed to translate one way.
type direction struct {
	table phraseTable

	// greeting is returned when the normalized text contains every marker.
	greeting        string
	greetingMarkers []string

	rules sequentialReplacer
	flag  string
}

// sequentialReplacer feeds the output of each rule into the next one.
type sequentialReplacer []*strings.Replacer

var (
	enToFrRules = sequentialReplacer{
		strings.NewReplacer("th", "z"),
		strings.NewReplacer("w", "v"),
		strings.NewReplacer("tion", "sion"),
		strings.NewReplacer("ing", "ant"),
		strings.NewReplacer("h", ""),
		strings.NewReplacer("u", "ou"),
	}
	frToEnRules = sequentialReplacer{
		strings.NewReplacer("ou", "u"),
		strings.NewReplacer("eau", "o"),
		strings.NewReplacer("ez", "e"),
		strings.NewReplacer("é", "e", "è", "e", "ê", "e"),
		strings.NewReplacer("à", "a"),
		strings.NewReplacer("ç", "c"),
	}

	enToFrDirection = direction{
		table:           enToFr,
		greeting:        "Bonjour, comment allez-vous?",
		greetingMarkers: []string{"hello", "how are you"},
		rules:           enToFrRules,
		flag:            frenchFlag,
	}
	frToEnDirection = direction{
		table:           frToEn,
		greeting:        "Hello, how are you?",
		greetingMarkers: []string{"bonjour", "comment allez"},
		rules:           frToEnRules,
		flag:            britishFlag,
	}
)

func (s sequentialReplacer) apply(text string) string {
	for _, r := range s {
		text = r.Replace(text)
	}
	return text
}

// Translate converts text from one language to the other.
//
// Same-language requests return text unchanged. Unsupported language pairs
// are treated the same way.
func Translate(text string, from, to models.Language) string {
	switch {
	case from == to:
		return text
	case from == models.English && to == models.French:
		return translate(text, enToFrDirection)
	case from == models.French && to == models.English:
		return translate(text, frToEnDirection)
	default:
		return text
	}
}

func translate(text string, d direction) string {
	// exact original-case hit wins over the normalized one
	if translated, ok := d.table[text]; ok {
		return translated
	}

	normalized := Normalize(text)
	if translated, ok := d.table[normalized]; ok {
		return translated
	}

	if translated, ok := translateWords(normalized, d.table); ok {
		return translated
	}

	if containsAll(normalized, d.greetingMarkers) {
		return d.greeting
	}

	return d.rules.apply(text) + d.flag
}

// translateWords substitutes every recognized token. The second return
// value is false when no token was recognized.
func translateWords(normalized string, table phraseTable) (string, bool) {
	words := strings.Fields(normalized)
	translatedAny := false

	for i, word := range words {
		if translated, ok := table[word]; ok {
			words[i] = translated
			translatedAny = true
		}
	}

	if !translatedAny {
		return "", false
	}

	return strings.Join(words, " "), true
}

// Normalize strips the punctuation set, trims surrounding whitespace and
// lower-cases text. It is the key form used for phrase table lookups.
func Normalize(text string) string {
	stripped := strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, text)

	return strings.ToLower(strings.TrimSpace(stripped))
}

func containsAll(s string, markers []string) bool {
	for _, m := range markers {
		if !strings.Contains(s, m) {
			return false
		}
	}
	return true
}
