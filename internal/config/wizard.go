package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
)

// projectTypePatterns maps marker files to human-readable project types
// and a recommended include glob.
var projectTypePatterns = map[string]struct {
	Name    string
	Include string
}{
	"go.mod":           {Name: "Go", Include: "**/*.go"},
	"package.json":     {Name: "Node.js/TypeScript", Include: "**/*.{js,ts,jsx,tsx}"},
	"requirements.txt": {Name: "Python", Include: "**/*.py"},
	"pyproject.toml":   {Name: "Python", Include: "**/*.py"},
	"Cargo.toml":       {Name: "Rust", Include: "**/*.rs"},
	"pom.xml":          {Name: "Java", Include: "**/*.java"},
	"build.gradle":     {Name: "Java/Kotlin", Include: "**/*.{java,kt}"},
	"Gemfile":          {Name: "Ruby", Include: "**/*.rb"},
	"composer.json":    {Name: "PHP", Include: "**/*.php"},
	"*.csproj":         {Name: ".NET", Include: "**/*.cs"},
}

// detectProjectType checks the current directory for well-known project markers.
func detectProjectType() (name string, include string) {
	for marker, info := range projectTypePatterns {
		matches, _ := filepath.Glob(marker)
		if len(matches) > 0 {
			return info.Name, info.Include
		}
	}
	return "", "**"
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .flowlens.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to flowlens! Let's configure your project.")
	fmt.Println()

	// Detect project type.
	projType, defaultInclude := detectProjectType()
	if projType != "" {
		fmt.Printf("Detected project type: %s\n\n", projType)
	}

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select LLM provider (used for narrative enhancement)",
		Items: []string{"anthropic", "openai", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	provider := ProviderType(providerStr)

	// 2. Quality tier.
	qualityPrompt := promptui.Select{
		Label: "Select quality tier",
		Items: []string{
			"lite   — fast & cheap (haiku / gpt-4o-mini)",
			"normal — balanced (sonnet / gpt-4o)",
			"max    — highest quality (opus / gpt-4)",
		},
	}
	qualityIdx, _, err := qualityPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("quality selection: %w", err)
	}
	tiers := []QualityTier{QualityLite, QualityNormal, QualityMax}
	quality := tiers[qualityIdx]

	preset := GetPreset(provider, quality)

	// 3. Enhance by default?
	enhancePrompt := promptui.Select{
		Label: "Rewrite narratives with the LLM by default",
		Items: []string{"no (heuristic text only)", "yes"},
	}
	enhanceIdx, _, err := enhancePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("enhance selection: %w", err)
	}

	// 4. Data directory.
	dataPrompt := promptui.Prompt{
		Label:   "Data directory for the analysis database",
		Default: ".flowlens",
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	// 5. Include patterns.
	includePrompt := promptui.Prompt{
		Label:   "Include patterns (comma-separated globs)",
		Default: defaultInclude,
	}
	includeStr, err := includePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}
	include := splitAndTrim(includeStr)

	// 6. Extra exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	exclude := DefaultExcludes
	if excludeStr != "" {
		exclude = append(exclude, splitAndTrim(excludeStr)...)
	}

	cfg := DefaultConfig()
	cfg.Provider = provider
	cfg.Model = preset.Model
	cfg.EmbeddingProvider = embeddingProviderFor(provider)
	cfg.EmbeddingModel = preset.EmbeddingModel
	cfg.Quality = quality
	cfg.Enhance = enhanceIdx == 1
	cfg.DataDir = dataDir
	cfg.Include = include
	cfg.Exclude = exclude

	// Check for API key.
	if envVar := APIKeyEnvVar(provider); envVar != "" && os.Getenv(envVar) == "" {
		fmt.Printf("\nNote: Set %s in your environment before enabling enhancement.\n", envVar)
	}

	configPath := ".flowlens.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}

// embeddingProviderFor returns the default embedding provider for a given
// LLM provider. OpenAI embeddings are used for cloud providers.
func embeddingProviderFor(p ProviderType) ProviderType {
	if p == ProviderOllama {
		return ProviderOllama
	}
	return ProviderOpenAI
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
