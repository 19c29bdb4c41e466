package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// signed is the smallest layer that makes defaults() valid.
func signed() *StructuredConfig {
	return &StructuredConfig{Session: Session{SignKey: "sign-key"}}
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that an empty config does not validate.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// TestBuild_DefaultsOnly verifies that defaults plus a sign key form a
// complete in-memory configuration.
func TestBuild_DefaultsOnly(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, signed())
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.True(t, cfg.Storage.SeedEnabled())
	assert.Equal(t, SessionBackendMemory, cfg.Session.Backend)
	assert.Equal(t, 168*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "lingua_session", cfg.Session.CookieName)
	assert.Equal(t, "amour-lingua", cfg.Session.Issuer)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Empty(t, cfg.Server.GRPCAddress)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, time.Hour, cfg.Workers.SessionSweepInterval)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.False(t, cfg.App.DemoMode)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_EarlierSourceWins verifies that mergo keeps the first non-zero
// value and only fills blanks from later layers.
func TestBuild_EarlierSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Version: "flag-version"}, Session: Session{SignKey: "flag-key"}},
		&StructuredConfig{App: App{Version: "env-version", LogLevel: "info"}},
	)
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "flag-version", cfg.App.Version)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "flag-key", cfg.Session.SignKey)
}

// TestBuild_SeedPointerMerges verifies that an explicit false seed survives
// the merge instead of falling back to the driver default.
func TestBuild_SeedPointerMerges(t *testing.T) {
	off := false
	b := newConfigBuilder()
	b.configs = append(b.configs, signed(), &StructuredConfig{Storage: Storage{Seed: &off}})
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)
	assert.False(t, cfg.Storage.SeedEnabled())
}

// ── withDotEnv ────────────────────────────────────────────────────────────────

// TestWithDotEnv_MissingFileIsIgnored verifies that no .env file is fine.
func TestWithDotEnv_MissingFileIsIgnored(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withDotEnv(filepath.Join(t.TempDir(), ".env")))
	assert.NoError(t, b.err)
}

// TestWithDotEnv_DoesNotOverrideEnvironment verifies that real environment
// variables win over the .env file.
func TestWithDotEnv_DoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_VERSION=dotenv\nAPP_LOG_LEVEL=warn\n"), 0o600))

	t.Setenv("APP_VERSION", "real")
	// registers cleanup so the value loaded from the file is removed afterwards
	t.Setenv("APP_LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("APP_LOG_LEVEL"))

	b := newConfigBuilder().withDotEnv(path).withEnv()
	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "real", b.configs[0].App.Version)
	assert.Equal(t, "warn", b.configs[0].App.LogLevel)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("APP_VERSION", "env-version")
	t.Setenv("SESSION_ISSUER", "env-issuer")

	b := newConfigBuilder()
	b.withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, "env-issuer", b.configs[0].Session.Issuer)
}

// TestWithEnv_SetsErrorOnBadValue verifies that a value of the wrong type
// is reported.
func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	t.Setenv("SERVER_REQUEST_TIMEOUT", "soon")

	b := newConfigBuilder()
	b.withEnv()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_ReturnsBuilder verifies the fluent interface.
func TestWithJSON_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withJSON())
}

// TestWithJSON_NoOp_WhenNoPathSet verifies that withJSON does nothing when
// no config has a JSONFilePath.
func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

// TestWithJSON_AppendsConfig_WhenValidFile verifies that a valid JSON file is
// parsed and appended.
func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "json-version"
	payload.Session.Issuer = "json-issuer"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-version", b.configs[1].App.Version)
	assert.Equal(t, "json-issuer", b.configs[1].Session.Issuer)
}

// TestWithJSON_SetsError_WhenFileNotFound verifies that a missing file path
// sets b.err.
func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_UsesHighestPriorityPath verifies that the path from the
// earliest layer (flags before env) is used.
func TestWithJSON_UsesHighestPriorityPath(t *testing.T) {
	first := StructuredJSONConfig{}
	first.App.Version = "from-flag-path"
	second := StructuredJSONConfig{}
	second.App.Version = "from-env-path"

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, first)},
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, second)},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "from-flag-path", b.configs[2].App.Version)
}

// TestWithJSON_LowerPriorityThanEnv verifies the JSON layer only fills
// fields that env left empty.
func TestWithJSON_LowerPriorityThanEnv(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "json-version"
	payload.App.LogLevel = "error"
	payload.Session.SignKey = "json-key"

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		App:          App{Version: "env-version"},
		JSONFilePath: writeTempJSONConfig(t, payload),
	})
	b.withJSON().withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "env-version", cfg.App.Version)
	assert.Equal(t, "error", cfg.App.LogLevel)
	assert.Equal(t, "json-key", cfg.Session.SignKey)
}
