package docfacts

import (
	"log/slog"
	"strings"

	"github.com/mvp-joe/docfacts/internal/syntax"
)

// FallbackIndentation is used when a declaration has no leading trivia.
var FallbackIndentation = syntax.Trivia{Kind: syntax.Whitespace, Text: " "}

// Indentation returns the trivia to use as the left margin of a comment block
// placed before n: the last fragment of n's leading trivia. It never fails;
// a node without leading trivia is logged and gets FallbackIndentation.
func Indentation(n syntax.Node) syntax.Trivia {
	if n == nil {
		slog.Warn("indentation requested for nil node, using fallback")
		return FallbackIndentation
	}

	trivia := n.LeadingTrivia()
	if len(trivia) == 0 {
		slog.Warn("declaration has no leading trivia, using fallback indentation",
			"kind", n.Kind(),
			"line", n.StartLine(),
			"text", firstLine(n.Text()))
		return FallbackIndentation
	}
	return trivia[len(trivia)-1]
}

func firstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}
