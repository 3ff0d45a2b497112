package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/flowlens/flowlens/internal/analyses"
	"github.com/flowlens/flowlens/internal/config"
	"github.com/flowlens/flowlens/internal/diagrams"
	"github.com/flowlens/flowlens/internal/progress"
	"github.com/flowlens/flowlens/internal/report"
	"github.com/flowlens/flowlens/internal/walker"
)

var (
	analyzeFormat  string
	analyzeOut     string
	analyzeEnhance bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path ...]",
	Short: "Analyze source files and produce flowcharts",
	Long: `Analyzes one or more source files, directories, or glob patterns.
Each file becomes a stored flowchart; output goes to stdout or, with
--out, to one file per input. Directory walks respect the include and
exclude patterns from .flowlens.yml plus any .gitignore files.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		svc, database, vectors, err := newAnalysisService(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		paths, err := collectPaths(cfg, args)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no files matched %v", args)
		}

		if analyzeOut != "" {
			if err := os.MkdirAll(analyzeOut, 0755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
		}

		var reporter progress.Reporter
		if len(paths) > 1 {
			reporter = progress.NewReporter()
			reporter.Start(len(paths))
		}

		ctx := context.Background()
		for i, path := range paths {
			if reporter != nil {
				reporter.Update(i+1, path)
			}
			if err := analyzeOne(ctx, svc, path); err != nil {
				return err
			}
		}
		if reporter != nil {
			reporter.Finish()
		}

		persistVectors(vectors, cfg)
		return nil
	},
}

// analyzeOne runs a single file through the service and emits the result.
func analyzeOne(ctx context.Context, svc *analyses.Service, path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	a, _, err := svc.Analyze(ctx, analyses.AnalyzeRequest{
		Source:   string(source),
		FileName: filepath.ToSlash(path),
		Enhance:  analyzeEnhance,
	})
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", path, err)
	}

	output, err := renderOutput(a, analyzeFormat)
	if err != nil {
		return err
	}

	if analyzeOut == "" {
		fmt.Println(output)
		return nil
	}

	outPath := filepath.Join(analyzeOut, outputFileName(path, analyzeFormat))
	if err := os.WriteFile(outPath, []byte(output), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "wrote %s\n", outPath)
	}
	return nil
}

// collectPaths expands arguments into concrete file paths. Each argument may
// be a file, a directory, or a doublestar glob pattern.
func collectPaths(cfg *config.Config, args []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)

	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		switch {
		case err == nil && info.IsDir():
			files, err := walker.Walk(walker.WalkerConfig{
				RootDir: arg,
				Include: cfg.Include,
				Exclude: cfg.Exclude,
			})
			if err != nil {
				return nil, fmt.Errorf("walking %s: %w", arg, err)
			}
			for _, f := range files {
				add(f.Path)
			}
		case err == nil:
			add(arg)
		default:
			matches, err := doublestar.FilepathGlob(arg)
			if err != nil {
				return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
			}
			for _, m := range matches {
				if fi, err := os.Stat(m); err == nil && !fi.IsDir() {
					add(m)
				}
			}
		}
	}

	return paths, nil
}

// renderOutput formats a stored analysis in the requested output format.
func renderOutput(a *analyses.Analysis, format string) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(a, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding analysis: %w", err)
		}
		return string(data), nil
	case "mermaid":
		return diagrams.Flowchart(a.Result()), nil
	case "html":
		return report.HTML(a.Result())
	case "markdown", "":
		return report.Markdown(a.Result()), nil
	default:
		return "", fmt.Errorf("unknown format %q (want markdown, mermaid, html, or json)", format)
	}
}

// outputFileName maps an input path to an output file name for --out.
func outputFileName(path, format string) string {
	base := strings.ReplaceAll(filepath.ToSlash(path), "/", "_")
	switch format {
	case "json":
		return base + ".json"
	case "mermaid":
		return base + ".mmd"
	case "html":
		return base + ".html"
	default:
		return base + ".md"
	}
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "markdown", "output format: markdown, mermaid, html, or json")
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "directory to write one output file per input")
	analyzeCmd.Flags().BoolVar(&analyzeEnhance, "enhance", false, "rewrite narratives with the configured language model")
	rootCmd.AddCommand(analyzeCmd)
}
