package config

import "os"

// OverlayEnv applies the environment surface on top of the loaded file.
// Precedence for these values is: environment > config file > built-in default.
// API keys are not config; they resolve through internal/secrets.
func OverlayEnv(cfg *Config) {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&cfg.Airtable.BaseID, "AIRTABLE_BASE_ID")
	set(&cfg.Airtable.Table, "AIRTABLE_CLIENTS_TABLE")
	set(&cfg.Airtable.View, "AIRTABLE_VIEW")
	set(&cfg.Airtable.NameField, "AIRTABLE_CLIENT_FIELD")
	set(&cfg.Airtable.ProfessionField, "AIRTABLE_CLIENT_PROF_FIELD")
}
