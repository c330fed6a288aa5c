package config

// Default returns the default configuration: the built-in example key, a
// plain text report and warning-level console logs.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			JSON:     false,
			Checksum: false,
		},
		Log: LogConfig{
			Level: "warn",
			JSON:  false,
		},
	}
}
