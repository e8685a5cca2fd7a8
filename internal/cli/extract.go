package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mvp-joe/docfacts/internal/config"
	"github.com/mvp-joe/docfacts/internal/scanner"
	"github.com/spf13/cobra"
)

var (
	quietFlag        bool
	formatFlag       string
	outputFlag       string
	kindsFlag        []string
	includeEmptyFlag bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [paths...]",
	Short: "Extract documentation facts from C# files",
	Long: `Extract parses C# files and prints, for every class, interface, constructor
and method, the facts a documentation comment is built from.

Directories are scanned with the include and ignore patterns from the
configuration; files named explicitly are always extracted. Without
arguments the current directory is scanned.

Examples:
  # Scan the current project
  docfacts extract

  # Only methods and constructors, as YAML
  docfacts extract --kind method --kind constructor --format yaml src/

  # Write results to a file without progress output
  docfacts extract -q -o facts.json
`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	extractCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Output format: json or yaml (default from config)")
	extractCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write results to this file instead of stdout")
	extractCmd.Flags().StringSliceVarP(&kindsFlag, "kind", "k", nil, "Only report these declaration kinds (class, interface, constructor, method)")
	extractCmd.Flags().BoolVar(&includeEmptyFlag, "include-empty", false, "Report declarations that have nothing beyond a name")
}

func runExtract(cmd *cobra.Command, args []string) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := loadConfig(cwd)
	if err != nil {
		return err
	}
	if err := applyExtractFlags(cmd, cfg); err != nil {
		return err
	}

	progress := NewCLIProgressReporter(cmd.ErrOrStderr(), quietFlag)
	results, err := extractTargets(ctx, cfg, cwd, args, progress)
	if err != nil {
		return err
	}

	if outputFlag == "" {
		return writeResults(cmd.OutOrStdout(), cfg.Output.Format, results)
	}
	return writeResultsFile(outputFlag, cfg.Output.Format, results)
}

// writeResultsFile writes results to a new file at path.
func writeResultsFile(path, format string, results []scanner.FileResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	return writeAndClose(f, format, results)
}

// writeAndClose writes results to wc and closes it, returning the first error.
func writeAndClose(wc io.WriteCloser, format string, results []scanner.FileResult) (err error) {
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()
	return writeResults(wc, format, results)
}

// applyExtractFlags overrides configuration with flags the user set.
func applyExtractFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = formatFlag
	}
	if flags.Changed("kind") {
		cfg.Extract.Kinds = kindsFlag
	}
	if flags.Changed("include-empty") {
		cfg.Extract.IncludeEmpty = includeEmptyFlag
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

// extractTargets scans every directory target with discovery and extracts
// file targets directly. Result paths are made relative to cwd.
func extractTargets(ctx context.Context, cfg *config.Config, cwd string, targets []string, progress scanner.ProgressReporter) ([]scanner.FileResult, error) {
	if len(targets) == 0 {
		targets = []string{cwd}
	}

	results := []scanner.FileResult{}
	var files []string
	for _, target := range targets {
		path := target
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to access %s: %w", target, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		dirResults, err := scanDir(ctx, cfg, path, progress)
		if err != nil {
			return nil, err
		}
		results = append(results, dirResults...)
	}

	if len(files) > 0 {
		s, err := scanner.New(cfg.ToScannerOptions(cwd), progress)
		if err != nil {
			return nil, err
		}
		defer s.Close()

		fileResults, err := s.ScanFiles(ctx, files)
		if err != nil {
			return nil, err
		}
		results = append(results, fileResults...)
	}

	for i := range results {
		if rel, err := filepath.Rel(cwd, results[i].Path); err == nil {
			results[i].Path = filepath.ToSlash(rel)
		}
	}
	return results, nil
}

func scanDir(ctx context.Context, cfg *config.Config, dir string, progress scanner.ProgressReporter) ([]scanner.FileResult, error) {
	s, err := scanner.New(cfg.ToScannerOptions(dir), progress)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	return s.Scan(ctx)
}

func writeResults(w io.Writer, format string, results []scanner.FileResult) error {
	enc, err := newEncoder(w, format, false)
	if err != nil {
		return err
	}
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return enc.Close()
}
