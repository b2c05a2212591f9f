package llm

// ProviderType identifies a supported LLM provider.
type ProviderType string

const (
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOpenAI    ProviderType = "openai"
	ProviderOllama    ProviderType = "ollama"
	ProviderMock      ProviderType = "mock"
)

// ProviderConfig holds provider construction settings. API keys may be left
// empty and picked up from the conventional environment variables instead.
type ProviderConfig struct {
	Type         ProviderType `mapstructure:"type" yaml:"type"`
	APIKey       string       `mapstructure:"api_key" yaml:"api_key"`
	DefaultModel string       `mapstructure:"model" yaml:"model"`
	BaseURL      string       `mapstructure:"base_url" yaml:"base_url"`
	MaxTokens    int          `mapstructure:"max_tokens" yaml:"max_tokens"`
}
