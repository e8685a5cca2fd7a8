package syntax

import "strings"

// LexTrivia splits the text between two tokens into trivia fragments.
func LexTrivia(text string) []Trivia {
	var out []Trivia
	for i := 0; i < len(text); {
		rest := text[i:]
		var kind TriviaKind
		var n int

		switch c := rest[0]; {
		case strings.HasPrefix(rest, "\r\n"):
			kind, n = EndOfLine, 2
		case c == '\n' || c == '\r':
			kind, n = EndOfLine, 1
		case isBlank(c):
			kind, n = Whitespace, spanWhile(rest, isBlank)
		case strings.HasPrefix(rest, "///") && !strings.HasPrefix(rest, "////"):
			kind, n = DocumentationComment, lineLength(rest)
		case strings.HasPrefix(rest, "//"):
			kind, n = SingleLineComment, lineLength(rest)
		case strings.HasPrefix(rest, "/*"):
			kind, n = MultiLineComment, len(rest)
			if end := strings.Index(rest[2:], "*/"); end >= 0 {
				n = end + 4
			}
		case c == '#':
			kind, n = Directive, lineLength(rest)
		default:
			kind, n = Skipped, spanWhile(rest, func(b byte) bool {
				return !isBlank(b) && b != '\n' && b != '\r'
			})
		}

		out = append(out, Trivia{Kind: kind, Text: rest[:n]})
		i += n
	}
	return out
}

// LeadingTrivia returns the trivia of gap that belongs to the token after it.
// When the gap follows another token, everything up to and including the
// first end of line is that token's trailing trivia.
func LeadingTrivia(gap string, afterToken bool) []Trivia {
	trivia := LexTrivia(gap)
	if !afterToken {
		return trivia
	}
	for i, t := range trivia {
		if t.Kind == EndOfLine {
			return trivia[i+1:]
		}
	}
	return nil
}

// CommentText strips the marker from a single-line comment and trims it.
func CommentText(t Trivia) string {
	return strings.TrimSpace(strings.TrimPrefix(t.Text, "//"))
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t' || b == '\f' || b == '\v'
}

func spanWhile(s string, pred func(byte) bool) int {
	n := 0
	for n < len(s) && pred(s[n]) {
		n++
	}
	return n
}

func lineLength(s string) int {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return i
	}
	return len(s)
}
