package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/faithguard/faithguard/internal/flagx"
	"github.com/faithguard/faithguard/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "3s"
// or as integer nanoseconds. Zero-valued fields leave the runtime Config
// untouched, so a partial overlay file is fine.
type JsonConfig struct {
	DatabaseDSN          string         `json:"database_dsn"`
	AdminSecretKey       string         `json:"admin_secret_key"`
	SessionCheckInterval timex.Duration `json:"session_check_interval"`
	FreshnessInterval    timex.Duration `json:"freshness_interval"`
	DuplicateDebounce    timex.Duration `json:"duplicate_debounce"`
	PushAPIKey           string         `json:"push_api_key"`
	PushProjectID        string         `json:"push_project_id"`
	PushSenderID         string         `json:"push_sender_id"`
	PushAppID            string         `json:"push_app_id"`
	PushVAPIDKey         string         `json:"push_vapid_key"`
}

// parseJson overlays Config with values loaded from a JSON file located via
// the -c/-config flag. Intended usage is: defaults -> parseJson -> parseFlags,
// where later stages override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.AdminSecretKey != "" {
		cfg.AdminSecretKey = jc.AdminSecretKey
	}
	if jc.SessionCheckInterval.Duration != 0 {
		cfg.SessionCheckInterval = time.Duration(jc.SessionCheckInterval.Duration)
	}
	if jc.FreshnessInterval.Duration != 0 {
		cfg.FreshnessInterval = time.Duration(jc.FreshnessInterval.Duration)
	}
	if jc.DuplicateDebounce.Duration != 0 {
		cfg.DuplicateDebounce = time.Duration(jc.DuplicateDebounce.Duration)
	}
	if jc.PushAPIKey != "" {
		cfg.Push.APIKey = jc.PushAPIKey
	}
	if jc.PushProjectID != "" {
		cfg.Push.ProjectID = jc.PushProjectID
	}
	if jc.PushSenderID != "" {
		cfg.Push.SenderID = jc.PushSenderID
	}
	if jc.PushAppID != "" {
		cfg.Push.AppID = jc.PushAppID
	}
	if jc.PushVAPIDKey != "" {
		cfg.Push.VAPIDKey = jc.PushVAPIDKey
	}
}
