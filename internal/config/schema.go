package config

// Config is the full labelsort configuration.
// Stored at: ~/.labelsort/config.yaml (or ./config.yaml).
type Config struct {
	Shiprocket ShiprocketCfg `mapstructure:"shiprocket" yaml:"shiprocket"`
	Server     ServerCfg     `mapstructure:"server" yaml:"server"`
	Sort       SortCfg       `mapstructure:"sort" yaml:"sort"`
}

// ShiprocketCfg configures the Shiprocket API client.
type ShiprocketCfg struct {
	Email       string `mapstructure:"email" yaml:"email"`                 // account email (supports ${ENV_VAR} syntax)
	Password    string `mapstructure:"password" yaml:"password"`           // account password (supports ${ENV_VAR} syntax)
	BaseURL     string `mapstructure:"base_url" yaml:"base_url"`           // API root, empty for production
	RateDelayMS int    `mapstructure:"rate_delay_ms" yaml:"rate_delay_ms"` // pause between bulk calls
}

// ServerCfg configures the HTTP server.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
}

// SortCfg configures the sorting pipeline defaults.
type SortCfg struct {
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"` // empty: sorted_labels next to the input
	RulesFile string `mapstructure:"rules_file" yaml:"rules_file"` // optional carrier rules JSON
}
