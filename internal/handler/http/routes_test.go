package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/amour-lingua/internal/config"
	"github.com/MKhiriev/amour-lingua/internal/crypto"
	"github.com/MKhiriev/amour-lingua/internal/logger"
	"github.com/MKhiriev/amour-lingua/internal/service"
	"github.com/MKhiriev/amour-lingua/internal/store"
	"github.com/MKhiriev/amour-lingua/internal/utils"
	"github.com/MKhiriev/amour-lingua/models"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- Helpers ----

// newTestServer runs the full router over seeded memory storages.
func newTestServer(t *testing.T, demoMode bool) *httptest.Server {
	t.Helper()

	cfg := &config.StructuredConfig{
		App: config.App{DemoMode: demoMode, Version: "v-test"},
		Session: config.Session{
			TTL:        time.Hour,
			CookieName: testCookieName,
			SignKey:    "routes-test-key",
			Issuer:     "amour-lingua-test",
		},
		Server: config.Server{RequestTimeout: 5 * time.Second},
	}

	clock := utils.RealClock{}
	hasher := crypto.NewPasswordHasher()
	storages := store.NewMemoryStorages(clock)
	require.NoError(t, store.Seed(context.Background(), storages, hasher, clock.Now()))

	services, err := service.NewServices(storages, cfg, models.NewAppBuildInfo("", "", ""), hasher, clock, logger.Nop())
	require.NoError(t, err)

	server := httptest.NewServer(NewHandler(services, newTestLocalizer(t), cfg, logger.Nop()).Init())
	t.Cleanup(server.Close)
	return server
}

func newClient(server *httptest.Server) *resty.Client {
	return resty.New().SetBaseURL(server.URL)
}

func registerUser(t *testing.T, client *resty.Client, username string, lang models.Language) (models.User, string) {
	t.Helper()

	var user models.User
	resp, err := client.R().
		SetBody(models.RegisterRequest{
			Username:       username,
			Password:       "secret1",
			Email:          username + "@example.com",
			LangPreference: string(lang),
		}).
		SetResult(&user).
		Post("/api/register")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())

	token := strings.TrimPrefix(resp.Header().Get("Authorization"), "Bearer ")
	require.NotEmpty(t, token)
	return user, token
}

// ---- Scenarios ----

func TestRoutes_TranslationFlow(t *testing.T) {
	server := newTestServer(t, false)
	client := newClient(server)

	registerUser(t, client, "alice", models.English)

	var translation models.Translation
	resp, err := client.R().
		SetBody(models.TranslateRequest{Text: "Hello", FromLang: "en", ToLang: "fr"}).
		SetResult(&translation).
		Post("/api/translate")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())
	assert.Equal(t, "bonjour", translation.TranslatedText)
	assert.False(t, translation.Favorite)

	favorite := true
	resp, err = client.R().
		SetBody(models.FavoriteRequest{Favorite: &favorite}).
		Patch("/api/translations/" + itoa(translation.ID) + "/favorite")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())

	var favorites []models.Translation
	resp, err = client.R().SetResult(&favorites).Get("/api/translations/favorites")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	require.Len(t, favorites, 1)
	assert.Equal(t, translation.ID, favorites[0].ID)

	// another user cannot touch alice's record
	bruno := newClient(server)
	registerUser(t, bruno, "bruno", models.French)
	resp, err = bruno.R().
		SetBody(models.FavoriteRequest{Favorite: &favorite}).
		Patch("/api/translations/" + itoa(translation.ID) + "/favorite")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode())
	assert.Contains(t, resp.String(), "Accès interdit")
}

func TestRoutes_ConversationFlow(t *testing.T) {
	server := newTestServer(t, false)

	aliceClient := newClient(server)
	registerUser(t, aliceClient, "alice", models.English)
	brunoClient := newClient(server)
	bruno, _ := registerUser(t, brunoClient, "bruno", models.French)

	var conversation models.Conversation
	resp, err := aliceClient.R().
		SetBody(models.CreateConversationRequest{ParticipantID: bruno.UserID}).
		SetResult(&conversation).
		Post("/api/conversations")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())

	resp, err = brunoClient.R().
		SetBody(models.CreateConversationRequest{ParticipantID: conversation.UserID}).
		Post("/api/conversations")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode(), "existing pair in either order")

	resp, err = aliceClient.R().
		SetBody(models.SendMessageRequest{Text: "Thank you"}).
		Post("/api/conversations/" + itoa(conversation.ID) + "/messages")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())

	var messages []models.Message
	resp, err = brunoClient.R().
		SetQueryParam("translate", "fr").
		SetResult(&messages).
		Get("/api/conversations/" + itoa(conversation.ID) + "/messages")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	require.Len(t, messages, 1)
	assert.Equal(t, "merci", messages[0].TranslatedText)

	var read models.MarkReadResponse
	resp, err = brunoClient.R().SetResult(&read).Post("/api/conversations/" + itoa(conversation.ID) + "/read")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, models.MarkReadResponse{Success: true, Updated: 1}, read)

	// a third user is not a participant
	carol := newClient(server)
	registerUser(t, carol, "carol", models.English)
	resp, err = carol.R().Get("/api/conversations/" + itoa(conversation.ID) + "/messages")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode())

	resp, err = carol.R().Get("/api/conversations/999/messages")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}

func TestRoutes_LogoutInvalidatesToken(t *testing.T) {
	server := newTestServer(t, false)
	client := newClient(server)

	_, token := registerUser(t, client, "alice", models.English)

	resp, err := newClient(server).R().SetAuthToken(token).Get("/api/user")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	resp, err = client.R().Post("/api/logout")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	// the signature is still valid but the session is gone
	resp, err = newClient(server).R().SetAuthToken(token).Get("/api/user")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
}

func TestRoutes_SeededUsersLogin(t *testing.T) {
	server := newTestServer(t, false)

	for _, username := range []string{store.SeedUsername, "marie", "pierre", "emma"} {
		resp, err := newClient(server).R().
			SetBody(models.LoginRequest{Username: username, Password: store.SeedPassword}).
			Post("/api/login")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode(), username)
	}

	resp, err := newClient(server).R().
		SetBody(models.LoginRequest{Username: "marie", Password: "password124"}).
		Post("/api/login")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
}

func TestRoutes_DemoMode(t *testing.T) {
	t.Run("off", func(t *testing.T) {
		server := newTestServer(t, false)

		resp, err := newClient(server).R().
			SetBody(models.TranslateRequest{Text: "Hello", FromLang: "en", ToLang: "fr"}).
			Post("/api/translate")
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
	})

	t.Run("on", func(t *testing.T) {
		server := newTestServer(t, true)

		var user models.User
		resp, err := newClient(server).R().SetResult(&user).Get("/api/user")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode())
		assert.Equal(t, store.SeedUsername, user.Username)

		// conversations never fall back to the demo user
		resp, err = newClient(server).R().Get("/api/conversations")
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
	})
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
