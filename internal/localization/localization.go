// Package localization renders user-facing messages in English or French
// using go-i18n bundles embedded in the binary.
package localization

import (
	"context"
	"embed"
	"fmt"
	"net/http"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var locales embed.FS

type contextKey string

func (c contextKey) String() string {
	return "localization/" + string(c)
}

const ctxKeyLanguage = contextKey("languages")

// ToContext stores the ordered language preferences of a request in ctx.
func ToContext(ctx context.Context, langs []string) context.Context {
	return context.WithValue(ctx, ctxKeyLanguage, langs)
}

// FromContext returns the language preferences stored by ToContext, or nil.
func FromContext(ctx context.Context) []string {
	langs, ok := ctx.Value(ctxKeyLanguage).([]string)
	if !ok {
		return nil
	}
	return langs
}

// Manager localizes message identifiers.
type Manager struct {
	bundle *i18n.Bundle
}

// NewManager loads every embedded locale file. English is the fallback.
func NewManager() (*Manager, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := locales.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("error reading embedded locales: %w", err)
	}
	for _, entry := range entries {
		if _, err := bundle.LoadMessageFileFS(locales, "locales/"+entry.Name()); err != nil {
			return nil, fmt.Errorf("error loading locale %s: %w", entry.Name(), err)
		}
	}

	return &Manager{bundle: bundle}, nil
}

// Bundle exposes the underlying go-i18n bundle.
func (m *Manager) Bundle() *i18n.Bundle {
	return m.bundle
}

// Translate renders messageID for the first supported entry of langs.
// Entries may be bare tags ("fr") or Accept-Language values
// ("fr-CA,fr;q=0.9"). Unknown identifiers are returned unchanged.
func (m *Manager) Translate(langs []string, messageID string) string {
	localizer := i18n.NewLocalizer(m.bundle, langs...)

	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:      messageID,
		DefaultMessage: &i18n.Message{ID: messageID, Other: messageID},
	})
	if err != nil {
		return messageID
	}
	return msg
}

// TranslateContext is Translate with the languages stored in ctx followed by
// fallback.
func (m *Manager) TranslateContext(ctx context.Context, messageID string, fallback ...string) string {
	return m.Translate(append(FromContext(ctx), fallback...), messageID)
}

// LanguagesFromRequest returns the caller's language preferences in
// priority order: the "lang" query parameter, then Accept-Language.
func LanguagesFromRequest(r *http.Request) []string {
	var langs []string
	if lang := strings.TrimSpace(r.URL.Query().Get("lang")); lang != "" {
		langs = append(langs, lang)
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		langs = append(langs, accept)
	}
	return langs
}
