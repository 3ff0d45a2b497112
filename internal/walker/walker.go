// Package walker discovers analyzable source files under a directory tree.
// It filters with doublestar glob patterns, honors .gitignore, and skips
// binary and oversized files so batch analysis only sees real source text.
package walker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxFileSize is the maximum file size to process (1 MB).
const DefaultMaxFileSize int64 = 1 << 20

// binarySniffLen is how many leading bytes are inspected for NUL bytes.
const binarySniffLen = 512

// FileInfo holds metadata about a single file discovered during traversal.
type FileInfo struct {
	Path        string // Absolute path on disk.
	RelPath     string // Slash-separated path relative to the root.
	Size        int64  // File size in bytes.
	Language    string // Detected programming language.
	ContentHash string // SHA-256 hex digest of the file content.
	IsTest      bool   // Whether the file appears to be a test file.
}

// WalkerConfig controls the behaviour of the Walk function.
type WalkerConfig struct {
	RootDir     string   // Root directory to walk.
	Include     []string // Glob patterns; only matching files are included.
	Exclude     []string // Glob patterns; matching files are excluded.
	MaxFileSize int64    // Files larger than this are skipped (0 = use default).
}

// Walk traverses the directory tree rooted at config.RootDir and returns
// metadata for every source file that passes filtering. Unreadable entries
// are skipped rather than failing the whole walk.
func Walk(config WalkerConfig) ([]FileInfo, error) {
	root, err := filepath.Abs(config.RootDir)
	if err != nil {
		return nil, fmt.Errorf("walker: resolve root: %w", err)
	}

	maxSize := config.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	ignore := loadGitignore(filepath.Join(root, ".gitignore"))

	var files []FileInfo

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}

		name := d.Name()

		if d.IsDir() {
			if shouldExcludeDir(name) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		if ignore.matches(relPath) {
			return nil
		}
		if !MatchesInclude(relPath, config.Include) || MatchesExclude(relPath, config.Exclude) {
			return nil
		}

		info, err := d.Info()
		if err != nil || info.Size() > maxSize {
			return nil
		}
		if looksBinary(path) {
			return nil
		}

		hash, err := hashFile(path)
		if err != nil {
			return nil
		}

		files = append(files, FileInfo{
			Path:        path,
			RelPath:     filepath.ToSlash(relPath),
			Size:        info.Size(),
			Language:    DetectLanguage(name),
			ContentHash: hash,
			IsTest:      isTestFile(name, relPath),
		})

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walker: traversal: %w", err)
	}

	return files, nil
}

// looksBinary sniffs the start of a file for NUL bytes. Unreadable files
// count as binary so they are excluded from analysis.
func looksBinary(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	buf := make([]byte, binarySniffLen)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return true
	}

	for i := 0; i < n; i++ {
		if buf[i] == 0 {
			return true
		}
	}
	return false
}

// hashFile computes the SHA-256 digest of the given file.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// isTestFile returns true if the filename or path looks like a test file.
// Covers Go, Python, and JavaScript/TypeScript naming conventions plus
// anything under a test/ or tests/ directory.
func isTestFile(name, relPath string) bool {
	lower := strings.ToLower(name)

	if strings.HasSuffix(lower, "_test.go") {
		return true
	}
	if strings.HasPrefix(lower, "test_") || strings.HasSuffix(lower, "_test.py") {
		return true
	}
	for _, suffix := range []string{".test.js", ".test.ts", ".test.tsx", ".spec.js", ".spec.ts", ".spec.tsx"} {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}

	relSlash := filepath.ToSlash(strings.ToLower(relPath))
	if strings.Contains(relSlash, "/test/") || strings.Contains(relSlash, "/tests/") ||
		strings.HasPrefix(relSlash, "test/") || strings.HasPrefix(relSlash, "tests/") {
		return true
	}

	return false
}

// gitignoreRule is one parsed .gitignore line.
type gitignoreRule struct {
	pattern string
	dirOnly bool
}

type gitignore []gitignoreRule

// loadGitignore parses the .gitignore at path, ignoring blanks and comments.
// A missing file yields an empty rule set.
func loadGitignore(path string) gitignore {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var rules gitignore
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rules = append(rules, gitignoreRule{
			pattern: strings.TrimSuffix(line, "/"),
			dirOnly: strings.HasSuffix(line, "/"),
		})
	}
	return rules
}

// matches reports whether relPath is excluded by any rule. Patterns without
// a slash match any path component; patterns with a slash match the whole
// relative path, following the common .gitignore reading.
func (g gitignore) matches(relPath string) bool {
	if len(g) == 0 {
		return false
	}

	normalized := filepath.ToSlash(relPath)

	for _, rule := range g {
		if strings.Contains(rule.pattern, "/") {
			if matched, _ := filepath.Match(rule.pattern, normalized); matched {
				return true
			}
			continue
		}

		if rule.dirOnly {
			// Directory rules apply to parent components, never the file itself.
			parts := strings.Split(normalized, "/")
			for _, part := range parts[:len(parts)-1] {
				if matched, _ := filepath.Match(rule.pattern, part); matched {
					return true
				}
			}
			continue
		}

		for _, part := range strings.Split(normalized, "/") {
			if matched, _ := filepath.Match(rule.pattern, part); matched {
				return true
			}
		}
	}
	return false
}
