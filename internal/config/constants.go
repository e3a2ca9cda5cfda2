package config

// Default configuration values
const (
	DefaultMaxBodySize int64 = 2 * 1024 * 1024 // 2MB
	DefaultConfigPath        = "config.yaml"
)

// OpenAI defaults
const (
	DefaultOpenAIEndpoint = "https://api.openai.com/v1"
	DefaultOpenAIModel    = "gpt-4.1-mini"
)

// Bedrock defaults
const (
	// DefaultBedrockModel is the default Bedrock model ID for Claude.
	DefaultBedrockModel = "us.anthropic.claude-3-haiku-20240307-v1:0"
	DefaultAWSRegion    = "eu-west-3"
)

// Generation parameters sent to every provider
const (
	DefaultTemperature = 0.1
	DefaultMaxTokens   = 500
)

// SystemPromptSQL is the system prompt sent to chat-style providers.
const SystemPromptSQL = "You are a SQL expert. Convert natural language to SQL queries."
