package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// OpenAIConfig holds configuration for the OpenAI provider
type OpenAIConfig struct {
	APIKey   string `yaml:"-"` // From Env only
	Model    string `yaml:"model"`
	Endpoint string `yaml:"endpoint"`
}

// BedrockConfig holds configuration for the Anthropic-via-Bedrock provider
type BedrockConfig struct {
	Region          string `yaml:"region"`
	ModelID         string `yaml:"model_id"`
	AccessKeyID     string `yaml:"-"` // From Env only
	SecretAccessKey string `yaml:"-"` // From Env only
}

// StorageConfig holds configuration for translation history persistence
type StorageConfig struct {
	Driver  string        `yaml:"driver"`  // sqlite
	DSN     string        `yaml:"dsn"`     // Connection string
	Timeout time.Duration `yaml:"timeout"` // Timeout for storage operations (default: 5s)
}

// DatabaseConfig points at the SQLite database whose schema is summarized
// into the generation prompt.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// Config holds the configuration for the NL-to-SQL translation service
type Config struct {
	Log struct {
		Level    string `yaml:"level"`  // DEBUG, INFO, WARN, ERROR
		Format   string `yaml:"format"` // text, json
		Output   string `yaml:"output"` // stdout, stderr, /path/to/file
		Rotation struct {
			MaxSize    int  `yaml:"max_size"`    // Megabytes
			MaxBackups int  `yaml:"max_backups"` // Number of old files to keep
			MaxAge     int  `yaml:"max_age"`     // Days to keep
			Compress   bool `yaml:"compress"`
		} `yaml:"rotation"`
	} `yaml:"log"`

	Server struct {
		Port             int           `yaml:"port"`
		ConcurrencyLimit int64         `yaml:"concurrency_limit"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxBodySize      int64         `yaml:"max_body_size"`
	} `yaml:"server"`

	LLM struct {
		Temperature float64       `yaml:"temperature"`
		MaxTokens   int           `yaml:"max_tokens"`
		Timeout     time.Duration `yaml:"timeout"` // Per-request timeout for provider calls
	} `yaml:"llm"`

	OpenAI  OpenAIConfig   `yaml:"openai"`
	Bedrock BedrockConfig  `yaml:"bedrock"`
	DB      DatabaseConfig `yaml:"database"`
	Storage StorageConfig  `yaml:"storage"`
}

// GetLogLevel returns the slog.Level based on Log.Level string
func (c *Config) GetLogLevel() slog.Level {
	switch strings.ToUpper(c.Log.Level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// HasOpenAI reports whether the OpenAI credential is configured.
func (c *Config) HasOpenAI() bool {
	return c.OpenAI.APIKey != ""
}

// HasBedrock reports whether the Bedrock credential pair is configured.
func (c *Config) HasBedrock() bool {
	return c.Bedrock.AccessKeyID != "" && c.Bedrock.SecretAccessKey != ""
}

// LoadConfig loads configuration from YAML file and supplements with environment variables
func LoadConfig() *Config {
	cfg := &Config{}

	// Set some defaults before loading
	cfg.Log.Level = "INFO"
	cfg.Log.Format = "text"
	cfg.Log.Output = "stdout"
	cfg.Server.Port = 8080
	cfg.Server.ConcurrencyLimit = 10
	cfg.Server.ReadTimeout = 10 * time.Second
	cfg.Server.WriteTimeout = 30 * time.Second
	cfg.Server.MaxBodySize = DefaultMaxBodySize
	cfg.LLM.Temperature = DefaultTemperature
	cfg.LLM.MaxTokens = DefaultMaxTokens
	cfg.LLM.Timeout = 60 * time.Second
	cfg.OpenAI.Model = DefaultOpenAIModel
	cfg.OpenAI.Endpoint = DefaultOpenAIEndpoint
	cfg.Bedrock.Region = DefaultAWSRegion
	cfg.Bedrock.ModelID = DefaultBedrockModel

	// Log Rotation defaults
	cfg.Log.Rotation.MaxSize = 100
	cfg.Log.Rotation.MaxBackups = 10
	cfg.Log.Rotation.MaxAge = 7
	cfg.Log.Rotation.Compress = true

	// Storage defaults
	cfg.Storage.Timeout = 5 * time.Second

	// Try to load from YAML
	configPath := getEnv("CONFIG_PATH", DefaultConfigPath)
	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			slog.Error("unmarshal config failed", "error", err, "path", configPath)
			os.Exit(1)
		}
		slog.Info("config loaded", "path", configPath)
	} else {
		if !os.IsNotExist(err) {
			slog.Error("read config failed", "error", err, "path", configPath)
			os.Exit(1)
		}
		slog.Info("config not found, using defaults", "path", configPath)
	}

	// Credentials always come from the environment, never from YAML
	cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Bedrock.SecretAccessKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	// AWS_ACCESS_KEY is the legacy alias some deployments still set
	cfg.Bedrock.AccessKeyID = getEnv("AWS_ACCESS_KEY_ID", os.Getenv("AWS_ACCESS_KEY"))

	// Non-secret overrides
	if region := os.Getenv("AWS_REGION"); region != "" {
		cfg.Bedrock.Region = region
	}
	if model := os.Getenv("ANTHROPIC_MODEL"); model != "" {
		cfg.Bedrock.ModelID = model
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		cfg.OpenAI.Model = model
	}
	if dbPath := os.Getenv("DATABASE_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if envPort := getEnvInt("PORT", 0); envPort != 0 {
		cfg.Server.Port = envPort
	}
	if envLogLevel := os.Getenv("LOG_LEVEL"); envLogLevel != "" {
		cfg.Log.Level = envLogLevel
	}
	if envLogFormat := os.Getenv("LOG_FORMAT"); envLogFormat != "" {
		cfg.Log.Format = envLogFormat
	}
	if envLogOutput := getEnv("LOG_OUTPUT", ""); envLogOutput != "" {
		cfg.Log.Output = envLogOutput
	}

	return cfg
}

// Validate validates the configuration.
// Provider credentials are deliberately not required here: selection happens
// per request, and a request may still name a preference that resolves.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid server port: %d", c.Server.Port))
	}

	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errs = append(errs, fmt.Sprintf("invalid llm temperature: %v", c.LLM.Temperature))
	}

	if c.LLM.MaxTokens < 1 {
		errs = append(errs, fmt.Sprintf("invalid llm max_tokens: %d", c.LLM.MaxTokens))
	}

	if c.Storage.Driver != "" && c.Storage.Driver != "sqlite" {
		errs = append(errs, fmt.Sprintf("unknown storage driver: %s", c.Storage.Driver))
	}

	if c.Storage.Driver == "sqlite" && c.Storage.DSN == "" {
		errs = append(errs, "storage dsn is required for sqlite driver")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config invalid: %s", strings.Join(errs, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}
