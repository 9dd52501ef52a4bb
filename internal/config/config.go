// Package config handles runtime configuration for the FaithGuard core,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Push holds the external push provider credential bundle. If any required
// field is missing or still a placeholder, push features silently degrade.
type Push struct {
	APIKey    string
	ProjectID string
	SenderID  string
	AppID     string
	VAPIDKey  string
}

const placeholderValue = "changeme"

// Configured reports whether the bundle carries real credentials. Required
// fields are APIKey, ProjectID and AppID; the rest only matter once those
// are present.
func (p Push) Configured() bool {
	for _, v := range []string{p.APIKey, p.ProjectID, p.AppID} {
		if v == "" || v == placeholderValue {
			return false
		}
	}
	return true
}

// Config holds runtime settings for the FaithGuard core.
//
// Fields:
//   - DatabaseDSN: SQLite DSN for the local persistent store.
//   - AdminSecretKey: HMAC secret for signing admin session tokens (HS256).
//   - SessionCheckInterval: how often session validity is re-evaluated.
//   - FreshnessInterval: how often item/message feeds are re-polled.
//   - DuplicateDebounce: quiet period before re-running the duplicate check.
//   - Push: external push provider credentials.
type Config struct {
	DatabaseDSN          string
	AdminSecretKey       string
	SessionCheckInterval time.Duration
	FreshnessInterval    time.Duration
	DuplicateDebounce    time.Duration
	Push                 Push
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "faithguard.db"
	c.AdminSecretKey = "secretKey"
	c.SessionCheckInterval = 1 * time.Second
	c.FreshnessInterval = 3 * time.Second
	c.DuplicateDebounce = 800 * time.Millisecond
	c.Push = Push{
		APIKey:    placeholderValue,
		ProjectID: placeholderValue,
		SenderID:  placeholderValue,
		AppID:     placeholderValue,
		VAPIDKey:  "",
	}
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
