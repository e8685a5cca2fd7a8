package syntax

// Node is the read-only view of a parsed syntax tree node that the extraction
// engine works against. Implementations must be safe for concurrent reads.
type Node interface {
	// Kind returns the node-kind classification (e.g. "method_declaration").
	Kind() string

	// Text returns the exact source text spanned by the node.
	Text() string

	// StartLine returns the 1-based line the node starts on.
	StartLine() int

	// Parent returns the enclosing node, or nil for the root.
	Parent() Node

	// LeadingTrivia returns the whitespace and comment fragments that
	// precede the node's first token, after the previous token's trailing trivia.
	LeadingTrivia() []Trivia

	// ChildTokens returns the tokens that are direct children of the node.
	ChildTokens() []Token

	// ChildNodes returns the direct child nodes in document order.
	ChildNodes() []Node

	// Field returns the child node labelled with the grammar field name
	// (e.g. "returns", "body"), or nil.
	Field(name string) Node

	// DescendantTokens returns every token under the node in document order.
	DescendantTokens() []Token

	// DescendantNodes returns every node under the node in document order,
	// excluding the node itself.
	DescendantNodes() []Node

	// DescendantTrivia returns every trivia fragment between the node's
	// first and last token.
	DescendantTrivia() []Trivia
}

// Token is a terminal of the tree.
type Token struct {
	Kind string
	Text string
}

// IsIdentifier reports whether the token is an identifier.
func (t Token) IsIdentifier() bool {
	return t.Kind == KindIdentifier
}

// TriviaKind classifies a trivia fragment.
type TriviaKind int

const (
	Whitespace TriviaKind = iota
	EndOfLine
	SingleLineComment
	DocumentationComment
	MultiLineComment
	Directive
	Skipped
)

var triviaKindNames = map[TriviaKind]string{
	Whitespace:           "whitespace",
	EndOfLine:            "end_of_line",
	SingleLineComment:    "single_line_comment",
	DocumentationComment: "documentation_comment",
	MultiLineComment:     "multi_line_comment",
	Directive:            "directive",
	Skipped:              "skipped",
}

func (k TriviaKind) String() string {
	if name, ok := triviaKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Trivia is a non-semantic fragment of source text.
type Trivia struct {
	Kind TriviaKind
	Text string
}
