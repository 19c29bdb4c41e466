package config

import (
	"net/url"
	"strings"
)

const redactedValue = "[REDACTED]"

// Redacted returns a copy of the config that is safe to log: the token sign
// key and the redis password are masked, and so is the password part of the
// database DSN.
func (c StructuredConfig) Redacted() StructuredConfig {
	if c.Session.SignKey != "" {
		c.Session.SignKey = redactedValue
	}
	if c.Session.Redis.Password != "" {
		c.Session.Redis.Password = redactedValue
	}
	c.Storage.DB.DSN = redactDSN(c.Storage.DB.DSN)

	return c
}

// redactDSN masks the password of URL-style DSNs. Key/value DSNs that carry
// a password are masked entirely.
func redactDSN(dsn string) string {
	if parsed, err := url.Parse(dsn); err == nil && parsed.User != nil {
		if _, hasPassword := parsed.User.Password(); hasPassword {
			parsed.User = url.UserPassword(parsed.User.Username(), redactedValue)
			return parsed.String()
		}
		return dsn
	}
	if strings.Contains(strings.ToLower(dsn), "password=") {
		return redactedValue
	}
	return dsn
}
