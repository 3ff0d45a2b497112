package config

// QualityTier selects the trade-off between speed/cost and narrative quality.
type QualityTier string

const (
	QualityLite   QualityTier = "lite"
	QualityNormal QualityTier = "normal"
	QualityMax    QualityTier = "max"
)

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOpenAI    ProviderType = "openai"
	ProviderOllama    ProviderType = "ollama"
)

// Config is the top-level flowlens configuration, corresponding to .flowlens.yml.
type Config struct {
	Provider          ProviderType `yaml:"provider" koanf:"provider"`
	Model             string       `yaml:"model" koanf:"model"`
	EmbeddingProvider ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string       `yaml:"embedding_model" koanf:"embedding_model"`
	Quality           QualityTier  `yaml:"quality" koanf:"quality"`

	// Enhance controls whether analyses get an LLM rewrite by default.
	Enhance               bool   `yaml:"enhance" koanf:"enhance"`
	EnhanceMode           string `yaml:"enhance_mode" koanf:"enhance_mode"`
	EnhanceTimeoutSeconds int    `yaml:"enhance_timeout_seconds" koanf:"enhance_timeout_seconds"`

	DataDir     string   `yaml:"data_dir" koanf:"data_dir"`
	Port        int      `yaml:"port" koanf:"port"`
	MaxSourceKB int      `yaml:"max_source_kb" koanf:"max_source_kb"`
	Include     []string `yaml:"include" koanf:"include"`
	Exclude     []string `yaml:"exclude" koanf:"exclude"`
}
