package config

import "time"

const (
	defaultDotEnvPath           = ".env"
	defaultLogLevel             = "debug"
	defaultHTTPAddress          = "localhost:8080"
	defaultRequestTimeout       = 15 * time.Second
	defaultSessionTTL           = 7 * 24 * time.Hour
	defaultSessionCookieName    = "lingua_session"
	defaultSessionIssuer        = "amour-lingua"
	defaultSessionSweepInterval = time.Hour
)

// defaults returns the lowest-priority config layer. The gRPC address has
// no default: the health server is opt-in.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			LogLevel: defaultLogLevel,
		},
		Storage: Storage{
			Driver: StorageDriverMemory,
		},
		Session: Session{
			Backend:    SessionBackendMemory,
			TTL:        defaultSessionTTL,
			CookieName: defaultSessionCookieName,
			Issuer:     defaultSessionIssuer,
		},
		Server: Server{
			HTTPAddress:    defaultHTTPAddress,
			RequestTimeout: defaultRequestTimeout,
		},
		Workers: Workers{
			SessionSweepInterval: defaultSessionSweepInterval,
		},
	}
}
