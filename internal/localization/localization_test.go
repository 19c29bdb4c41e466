package localization

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager()
	require.NoError(t, err)
	return m
}

func TestNewManager_LoadsBothLanguages(t *testing.T) {
	m := newTestManager(t)

	tags := m.Bundle().LanguageTags()
	var names []string
	for _, tag := range tags {
		names = append(names, tag.String())
	}
	assert.ElementsMatch(t, []string{"en", "fr"}, names)
}

func TestLocaleFiles_CoverEveryMessageID(t *testing.T) {
	for _, file := range []string{"locales/active.en.toml", "locales/active.fr.toml"} {
		t.Run(file, func(t *testing.T) {
			data, err := locales.ReadFile(file)
			require.NoError(t, err)

			var messages map[string]string
			require.NoError(t, toml.Unmarshal(data, &messages))

			for _, id := range AllMessageIDs {
				assert.NotEmpty(t, messages[id], "missing %s", id)
			}
			assert.Len(t, messages, len(AllMessageIDs), "unexpected extra entries")
		})
	}
}

func TestTranslate(t *testing.T) {
	m := newTestManager(t)

	tests := []struct {
		name  string
		langs []string
		want  string
	}{
		{name: "no preference falls back to english", langs: nil, want: "Conversation not found"},
		{name: "bare french tag", langs: []string{"fr"}, want: "Conversation introuvable"},
		{name: "regional french", langs: []string{"fr-CA"}, want: "Conversation introuvable"},
		{name: "accept-language value", langs: []string{"de-DE,fr;q=0.8,en;q=0.5"}, want: "Conversation introuvable"},
		{name: "unsupported language", langs: []string{"ja"}, want: "Conversation not found"},
		{name: "first supported wins", langs: []string{"en", "fr"}, want: "Conversation not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Translate(tt.langs, MsgConversationNotFound))
		})
	}
}

func TestTranslate_UnknownMessageID(t *testing.T) {
	m := newTestManager(t)
	assert.Equal(t, "NoSuchMessage", m.Translate([]string{"fr"}, "NoSuchMessage"))
}

func TestTranslateContext(t *testing.T) {
	m := newTestManager(t)

	ctx := ToContext(context.Background(), []string{"fr"})
	assert.Equal(t, "Non autorisé", m.TranslateContext(ctx, MsgUnauthorized, "en"))

	// no request preference: the fallback (user preference) decides
	assert.Equal(t, "Non autorisé", m.TranslateContext(context.Background(), MsgUnauthorized, "fr"))
	assert.Equal(t, "Unauthorized", m.TranslateContext(context.Background(), MsgUnauthorized))
}

func TestContextRoundTrip(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))

	ctx := ToContext(context.Background(), []string{"fr", "en"})
	assert.Equal(t, []string{"fr", "en"}, FromContext(ctx))
}

func TestLanguagesFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/translations?lang=fr", nil)
	r.Header.Set("Accept-Language", "en-US,en;q=0.9")
	assert.Equal(t, []string{"fr", "en-US,en;q=0.9"}, LanguagesFromRequest(r))

	r = httptest.NewRequest(http.MethodGet, "/api/translations", nil)
	assert.Empty(t, LanguagesFromRequest(r))

	r = httptest.NewRequest(http.MethodGet, "/api/translations", nil)
	r.Header.Set("Accept-Language", "fr")
	assert.Equal(t, []string{"fr"}, LanguagesFromRequest(r))
}
