package cli

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/mvp-joe/docfacts/internal/scanner"
	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter implements scanner.ProgressReporter with a progress bar.
// All output goes to w so that results on stdout stay clean.
type CLIProgressReporter struct {
	quiet   bool
	w       io.Writer
	fileBar *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(w io.Writer, quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		quiet: quiet,
		w:     w,
	}
}

func (c *CLIProgressReporter) OnDiscoveryStart() {
	if c.quiet {
		return
	}
	log.Println("Discovering files...")
}

func (c *CLIProgressReporter) OnDiscoveryComplete(files int) {
	if c.quiet {
		return
	}
	log.Printf("Extracting %s C# files\n", formatNumber(files))

	c.fileBar = progressbar.NewOptions(files,
		progressbar.OptionSetWriter(c.w),
		progressbar.OptionSetDescription("Extracting"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.w)
		}),
	)
}

func (c *CLIProgressReporter) OnFileProcessed(path string) {
	if c.quiet || c.fileBar == nil {
		return
	}
	c.fileBar.Add(1)
}

func (c *CLIProgressReporter) OnComplete(stats *scanner.Stats) {
	if c.quiet {
		return
	}
	if c.fileBar != nil {
		c.fileBar.Finish()
		c.fileBar = nil
	}

	fmt.Fprintf(c.w, "✓ Extraction complete: %s declarations from %s files in %.1fs\n",
		formatNumber(stats.Declarations), formatNumber(stats.Files), stats.Duration.Seconds())
	fmt.Fprintf(c.w, "  Exceptions:   %s\n", formatNumber(stats.Exceptions))
	fmt.Fprintf(c.w, "  Cache hits:   %s\n", formatNumber(stats.CacheHits))
	if stats.ParseErrors > 0 {
		fmt.Fprintf(c.w, "  Syntax errors in %s files; their facts may be incomplete\n", formatNumber(stats.ParseErrors))
	}
}

// formatNumber renders n with thousands separators.
func formatNumber(n int) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}

	var result []byte
	for i := range len(str) {
		if i > 0 && (len(str)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, str[i])
	}
	return string(result)
}
