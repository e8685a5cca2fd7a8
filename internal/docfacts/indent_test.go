package docfacts

import (
	"testing"

	"github.com/mvp-joe/docfacts/internal/syntax"
	"github.com/stretchr/testify/assert"
)

func TestIndentation_LastLeadingTrivia(t *testing.T) {
	n := &fakeNode{
		kind: "method_declaration",
		leading: []syntax.Trivia{
			{Kind: syntax.Whitespace, Text: "\t"},
			{Kind: syntax.SingleLineComment, Text: "// note"},
			{Kind: syntax.EndOfLine, Text: "\n"},
			{Kind: syntax.Whitespace, Text: "  "},
		},
	}
	assert.Equal(t, syntax.Trivia{Kind: syntax.Whitespace, Text: "  "}, Indentation(n))
}

func TestIndentation_FallbackWhenNoTrivia(t *testing.T) {
	n := &fakeNode{kind: "class_declaration", text: "class Foo { }", line: 1}
	assert.Equal(t, FallbackIndentation, Indentation(n))
	assert.Equal(t, " ", Indentation(n).Text)
	assert.Equal(t, FallbackIndentation, Indentation(nil))
}

func TestIndentation_CSharp(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind string
		want string
	}{
		{
			name: "spaces",
			src:  "class Foo\n{\n    public void Bar() { }\n}\n",
			kind: syntax.KindMethodDeclaration,
			want: "    ",
		},
		{
			name: "tabs",
			src:  "class Foo\n{\n\tpublic void Bar() { }\n}\n",
			kind: syntax.KindMethodDeclaration,
			want: "\t",
		},
		{
			name: "after existing comment",
			src:  "class Foo\n{\n    // helper\n    void Bar() { }\n}\n",
			kind: syntax.KindMethodDeclaration,
			want: "    ",
		},
		{
			name: "attribute belongs to the declaration",
			src:  "class Foo\n{\n        [Obsolete]\n        void Bar() { }\n}\n",
			kind: syntax.KindMethodDeclaration,
			want: "        ",
		},
		{
			name: "same line as previous token",
			src:  "class Foo { void Bar() { } }",
			kind: syntax.KindMethodDeclaration,
			want: " ",
		},
		{
			name: "first token in file",
			src:  "class Foo { }",
			kind: syntax.KindClassDeclaration,
			want: " ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Indentation(parse(t, tt.src, tt.kind)).Text)
		})
	}
}
