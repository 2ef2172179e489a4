package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StorageConfig contains the durable store settings.
type StorageConfig struct {
	// Path is the SQLite database file holding the card collection.
	Path string `mapstructure:"path" validate:"required"`
}

// LLMConfig contains the Gemini integration settings. The whole group
// is optional: without an API key the app runs with generation
// endpoints disabled.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	ModelName    string `mapstructure:"model_name"`
}

// GenerationEnabled reports whether the configuration carries enough to
// talk to the generation service.
func (c LLMConfig) GenerationEnabled() bool {
	return c.GeminiAPIKey != ""
}
