package models

import "strings"

// Language is one of the two languages the application speaks.
type Language string

const (
	English Language = "en"
	French  Language = "fr"
)

// DefaultLanguage is used when a user has not chosen a preference.
const DefaultLanguage = English

// IsValid reports whether l is a supported language code.
func (l Language) IsValid() bool {
	return l == English || l == French
}

// Opposite returns the other supported language.
func (l Language) Opposite() Language {
	if l == French {
		return English
	}
	return French
}

// String implements fmt.Stringer.
func (l Language) String() string {
	return string(l)
}

// ParseLanguage normalizes s ("FR", " en ") into a Language. The second
// return value is false when s is not a supported code.
func ParseLanguage(s string) (Language, bool) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	return l, l.IsValid()
}
