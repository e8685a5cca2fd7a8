package docfacts

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mvp-joe/docfacts/internal/syntax"
)

// argumentKind tags a constructor argument for message reconstruction.
type argumentKind int

const (
	otherArgument argumentKind = iota
	literalArgument
	interpolatedArgument
)

// messageArgument is one constructor argument reduced to the text it
// contributes to an exception message.
type messageArgument struct {
	kind argumentKind
	text string
}

// classifyArgument maps an argument expression onto the tagged variant.
// String literals contribute their decoded value; interpolated strings
// contribute their raw content with the holes left as written.
func classifyArgument(expr syntax.Node) messageArgument {
	if expr == nil {
		return messageArgument{kind: otherArgument}
	}
	switch expr.Kind() {
	case syntax.KindStringLiteral, syntax.KindVerbatimStringLiteral, syntax.KindRawStringLiteral:
		return messageArgument{kind: literalArgument, text: decodeStringLiteral(expr.Text())}
	case syntax.KindInterpolatedStringExpression:
		return messageArgument{kind: interpolatedArgument, text: interpolatedContents(expr.Text())}
	}
	return messageArgument{kind: otherArgument}
}

// foldMessage joins argument fragments left to right with single spaces,
// skipping the separator while either side is still empty.
func foldMessage(args []messageArgument) string {
	message := ""
	for _, arg := range args {
		if arg.kind == otherArgument || arg.text == "" {
			continue
		}
		if message == "" {
			message = arg.text
			continue
		}
		message += " " + arg.text
	}
	return message
}

// decodeStringLiteral returns the value of a regular, verbatim or raw C#
// string literal given its source spelling.
func decodeStringLiteral(spelling string) string {
	s := strings.TrimSuffix(strings.TrimSuffix(spelling, "u8"), "U8")

	switch {
	case strings.HasPrefix(s, `"""`):
		return decodeRawString(s)
	case strings.HasPrefix(s, `@"`):
		body := strings.TrimSuffix(s[2:], `"`)
		return strings.ReplaceAll(body, `""`, `"`)
	case strings.HasPrefix(s, `"`):
		body := strings.TrimPrefix(s, `"`)
		body = strings.TrimSuffix(body, `"`)
		return unescape(body)
	}
	return s
}

// decodeRawString handles """...""" literals, including the multi-line form
// whose first and last lines are delimiters and whose closing line sets the
// indentation to remove.
func decodeRawString(s string) string {
	quotes := countLeading(s, '"')
	if len(s) < 2*quotes {
		return ""
	}
	content := s[quotes : len(s)-quotes]
	if !strings.ContainsAny(content, "\n") {
		return content
	}

	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	if len(lines) < 2 {
		return content
	}
	indent := lines[len(lines)-1]
	lines = lines[1 : len(lines)-1]
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, indent)
	}
	return strings.Join(lines, "\n")
}

// interpolatedContents returns the text between the delimiters of an
// interpolated string ($"...", @$"...", $"""...""").
func interpolatedContents(spelling string) string {
	open := strings.IndexByte(spelling, '"')
	if open < 0 {
		return ""
	}
	quotes := countLeading(spelling[open:], '"')
	if quotes < 3 {
		quotes = 1
	}
	start, end := open+quotes, len(spelling)-quotes
	if end < start {
		return ""
	}
	return spelling[start:end]
}

func countLeading(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}

// unescape decodes the escape sequences of a regular C# string literal.
// Malformed escapes are kept as written.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}

		next := s[i+1]
		if r, ok := simpleEscapes[next]; ok {
			b.WriteRune(r)
			i++
			continue
		}

		var digits int
		var exact bool
		switch next {
		case 'u':
			digits, exact = 4, true
		case 'U':
			digits, exact = 8, true
		case 'x':
			digits = 4
		default:
			b.WriteByte(c)
			continue
		}

		hex := s[i+2:]
		n := 0
		for n < digits && n < len(hex) && isHexDigit(hex[n]) {
			n++
		}
		if n == 0 || (exact && n != digits) {
			b.WriteByte(c)
			continue
		}
		v, err := strconv.ParseUint(hex[:n], 16, 32)
		if err != nil || !utf8.ValidRune(rune(v)) {
			b.WriteByte(c)
			continue
		}
		b.WriteRune(rune(v))
		i += 1 + n
	}
	return b.String()
}

var simpleEscapes = map[byte]rune{
	'\'': '\'',
	'"':  '"',
	'\\': '\\',
	'0':  0,
	'a':  '\a',
	'b':  '\b',
	'e':  0x1b,
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
