package walker

import (
	"path/filepath"
	"strings"
)

// extensionToLanguage maps lowercase file extensions to language names. The
// names reach the analyzer and end up as the language field of an analysis,
// so they use common display spellings rather than identifiers.
var extensionToLanguage = map[string]string{
	// Compiled languages.
	".go":    "Go",
	".java":  "Java",
	".rs":    "Rust",
	".c":     "C",
	".h":     "C",
	".cpp":   "C++",
	".cc":    "C++",
	".cxx":   "C++",
	".hpp":   "C++",
	".hxx":   "C++",
	".cs":    "C#",
	".swift": "Swift",
	".kt":    "Kotlin",
	".kts":   "Kotlin",
	".scala": "Scala",
	".sc":    "Scala",
	".hs":    "Haskell",
	".dart":  "Dart",

	// Scripting languages.
	".py":   "Python",
	".pyi":  "Python",
	".rb":   "Ruby",
	".php":  "PHP",
	".sh":   "Shell",
	".bash": "Shell",
	".zsh":  "Shell",
	".lua":  "Lua",
	".r":    "R",
	".pl":   "Perl",
	".pm":   "Perl",
	".ex":   "Elixir",
	".exs":  "Elixir",

	// Web stack.
	".ts":     "TypeScript",
	".tsx":    "TypeScript",
	".mts":    "TypeScript",
	".js":     "JavaScript",
	".jsx":    "JavaScript",
	".mjs":    "JavaScript",
	".cjs":    "JavaScript",
	".vue":    "Vue",
	".svelte": "Svelte",
	".html":   "HTML",
	".htm":    "HTML",
	".css":    "CSS",
	".scss":   "CSS",
	".sass":   "CSS",
	".less":   "CSS",

	// Data and configuration.
	".sql":      "SQL",
	".yaml":     "YAML",
	".yml":      "YAML",
	".json":     "JSON",
	".toml":     "TOML",
	".tf":       "Terraform",
	".tfvars":   "Terraform",
	".proto":    "Protobuf",
	".md":       "Markdown",
	".markdown": "Markdown",
}

// filenameToLanguage handles well-known files with no useful extension.
var filenameToLanguage = map[string]string{
	"Dockerfile":          "Dockerfile",
	"Makefile":            "Makefile",
	"Jenkinsfile":         "Groovy",
	"Vagrantfile":         "Ruby",
	"Gemfile":             "Ruby",
	"Rakefile":            "Ruby",
	".gitignore":          "Git",
	".dockerignore":       "Docker",
	"docker-compose.yml":  "YAML",
	"docker-compose.yaml": "YAML",
}

// DetectLanguage returns the programming language for a filename, checking
// exact filenames before extensions. Returns "unknown" for unrecognized
// files; callers treat that as a signal to fall back to generic heuristics.
func DetectLanguage(filename string) string {
	base := filepath.Base(filename)

	if lang, ok := filenameToLanguage[base]; ok {
		return lang
	}

	ext := strings.ToLower(filepath.Ext(base))
	if ext == "" {
		return "unknown"
	}
	if lang, ok := extensionToLanguage[ext]; ok {
		return lang
	}

	return "unknown"
}
