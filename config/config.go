package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LLMProvider defines the structure for LLM provider configuration.
type LLMProvider struct {
	APIKey  string // Name of the environment variable holding the API key
	BaseURL string
}

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string
	}
	Database struct {
		DSN string // "memory" or a file path for SQLite
	}
	Backend struct {
		BaseURL   string        `mapstructure:"base_url"`
		AgentType string        `mapstructure:"agent_type"`
		Timeout   time.Duration `mapstructure:"timeout"` // zero keeps the http.Client default (no deadline)
	}
	Classifier struct {
		Mode        string  `mapstructure:"mode"` // "backend" or "llm"
		Model       string  `mapstructure:"model"`
		Temperature float32 `mapstructure:"temperature"`
	}
	Scheduler struct {
		RolloverSpec string `mapstructure:"rollover_spec"`
		Enabled      bool   `mapstructure:"enabled"`
	}
	CalendarName    string                 `mapstructure:"calendar_name"`
	LLMSystemPrompt string                 `mapstructure:"llm_system_prompt"`
	LLMProviders    map[string]LLMProvider `mapstructure:"llm_providers"` // provider key -> provider config
	LLMModels       map[string]string      `mapstructure:"llm_models"`    // model name -> provider key
}

// AppConfig is the global configuration instance.
var AppConfig Config

// LoadConfig loads configuration from file and environment variables.
func LoadConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../config") // For running from locations like tests

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("WARN: [Config] Configuration file (config.yaml) not found. Using environment variables and defaults.")
		} else {
			log.Fatalf("FATAL: [Config] Error reading configuration file: %v", err)
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("FATAL: [Config] Failed to unmarshal configuration into AppConfig struct: %v", err)
	}

	applyEnvOverrides()
	resolveProviderKeys()

	// Model names may use "__" in YAML keys since viper treats "." as a path separator.
	updatedLLMModels := make(map[string]string)
	for modelName, provider := range AppConfig.LLMModels {
		updatedLLMModels[strings.Replace(modelName, "__", ".", 1)] = provider
	}
	AppConfig.LLMModels = updatedLLMModels
	AppConfig.Classifier.Model = strings.Replace(AppConfig.Classifier.Model, "__", ".", 1)

	log.Println("INFO: [Config] Configuration loading complete.")
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("database.dsn", "memory")
	viper.SetDefault("backend.base_url", "http://localhost:8080")
	viper.SetDefault("backend.agent_type", "general")
	viper.SetDefault("backend.timeout", 0)
	viper.SetDefault("classifier.mode", "backend")
	viper.SetDefault("classifier.temperature", 0.2)
	viper.SetDefault("scheduler.rollover_spec", "0 0 0 * * *")
	viper.SetDefault("scheduler.enabled", true)
	viper.SetDefault("calendar_name", "FitAI Calendar")
}

func applyEnvOverrides() {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		AppConfig.Server.Port = port
		log.Printf("INFO: [Config] Server port overridden by environment variable SERVER_PORT: %s", port)
	}
	if baseURL := os.Getenv("BACKEND_BASE_URL"); baseURL != "" {
		AppConfig.Backend.BaseURL = baseURL
		log.Printf("INFO: [Config] Backend base URL overridden by environment variable BACKEND_BASE_URL: %s", baseURL)
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		AppConfig.Database.DSN = dsn
		log.Printf("INFO: [Config] Database DSN overridden by environment variable DATABASE_DSN.")
	}
	if mode := os.Getenv("CLASSIFIER_MODE"); mode != "" {
		AppConfig.Classifier.Mode = mode
		log.Printf("INFO: [Config] Classifier mode overridden by environment variable CLASSIFIER_MODE: %s", mode)
	}
}

// resolveProviderKeys replaces each provider's APIKey (the env var name) with the env var's value.
func resolveProviderKeys() {
	for providerKey, providerConfig := range AppConfig.LLMProviders {
		envVarName := providerConfig.APIKey
		if envValue := os.Getenv(envVarName); envValue != "" {
			providerConfig.APIKey = envValue
			AppConfig.LLMProviders[providerKey] = providerConfig
			log.Printf("INFO: [Config] Loaded API Key for provider '%s' from environment variable '%s'.", providerKey, envVarName)
		} else if providerConfig.APIKey == "" || strings.HasSuffix(providerConfig.APIKey, "_KEY") {
			log.Printf("WARN: [Config] API Key for provider '%s' (env var '%s') is not set.", providerKey, envVarName)
		} else {
			log.Printf("WARN: [Config] API Key for provider '%s' is directly set in config.yaml. Consider using env vars for keys.", providerKey)
		}
	}
}

// ProviderForModel returns the provider key and config serving model.
func (c Config) ProviderForModel(model string) (string, LLMProvider, bool) {
	providerKey, ok := c.LLMModels[model]
	if !ok {
		return "", LLMProvider{}, false
	}
	provider, ok := c.LLMProviders[providerKey]
	return providerKey, provider, ok
}
