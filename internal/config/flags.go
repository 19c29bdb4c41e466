package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc health server address in format [host]:[port]
//	-storage storage driver (memory, postgres, sqlite)
//	-d database DSN
//	-seed insert fixture users and translations at startup
//	-session-backend session store backend (memory, redis)
//	-redis-address redis address in format [host]:[port]
//	-session-sign-key session token signing key
//	-session-issuer session token issuer name
//	-session-ttl session lifetime (e.g., "168h")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-sweep-interval expired session sweep interval (e.g., "1h")
//	-log-level minimum log level
//	-demo enable demo mode
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var serverAddress, grpcServerAddress NetAddress
	var redisAddress string
	var storageDriver, databaseDSN string
	var seed bool
	var sessionBackend, sessionSignKey, sessionIssuer string
	var sessionTTL, requestTimeout, sweepInterval time.Duration
	var logLevel string
	var demoMode bool
	var jsonConfigPath string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.Var(&grpcServerAddress, "grpc-address", "Net grpc health server address host:port")
	flag.StringVar(&storageDriver, "storage", "", "Storage driver: memory, postgres or sqlite")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.BoolVar(&seed, "seed", false, "Insert fixture data at startup")
	flag.StringVar(&sessionBackend, "session-backend", "", "Session store backend: memory or redis")
	flag.StringVar(&redisAddress, "redis-address", "", "Redis address host:port")
	flag.StringVar(&sessionSignKey, "session-sign-key", "", "Session token signing key")
	flag.StringVar(&sessionIssuer, "session-issuer", "", "Session token issuer")
	flag.DurationVar(&sessionTTL, "session-ttl", 0, "Session lifetime (e.g., 168h)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&sweepInterval, "sweep-interval", 0, "Expired session sweep interval (e.g., 1h)")
	flag.StringVar(&logLevel, "log-level", "", "Minimum log level")
	flag.BoolVar(&demoMode, "demo", false, "Enable demo mode")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	cfg := &StructuredConfig{
		App: App{
			DemoMode: demoMode,
			LogLevel: logLevel,
		},
		Storage: Storage{
			Driver: storageDriver,
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Session: Session{
			Backend: sessionBackend,
			TTL:     sessionTTL,
			SignKey: sessionSignKey,
			Issuer:  sessionIssuer,
			Redis: Redis{
				Address: redisAddress,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			SessionSweepInterval: sweepInterval,
		},
		JSONFilePath: jsonConfigPath,
	}

	// only an explicit -seed overrides lower sources
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			cfg.Storage.Seed = &seed
		}
	})

	return cfg
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the default server address.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
