package config

// AppConfig is the root configuration structure for an optional
// config.yaml. Every field is optional; a missing config file is not an
// error and the built-in defaults in DefaultAppConfig apply instead.
type AppConfig struct {
	DatasetRoot string `yaml:"dataset_root"`
	Workers     int    `yaml:"workers" validate:"omitempty,gte=1"`
	LogLevel    string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultAppConfig returns the configuration used when no config.yaml is
// found, or when a present file leaves a field unset.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DatasetRoot: "../Public-Transit-Data",
		Workers:     0, // 0 means "use runtime.NumCPU()", resolved by the batch runner
		LogLevel:    "info",
	}
}
