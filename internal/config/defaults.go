package config

// DefaultConfig returns the built-in defaults. Credentials default to
// environment variable references so the config file never has to hold
// secrets directly.
func DefaultConfig() *Config {
	return &Config{
		Shiprocket: ShiprocketCfg{
			Email:       "${SHIPROCKET_EMAIL}",
			Password:    "${SHIPROCKET_PASSWORD}",
			RateDelayMS: 500,
		},
		Server: ServerCfg{
			Host: "127.0.0.1",
			Port: "8080",
		},
		Sort: SortCfg{},
	}
}
