package docfacts

import "github.com/mvp-joe/docfacts/internal/syntax"

// BodyFacts holds narrative hints pulled out of a member body.
type BodyFacts struct {
	Comments          []string `json:"comments" yaml:"comments"`
	ReturnIdentifiers []string `json:"return_identifiers" yaml:"return_identifiers"`
}

// ExtractBody returns the comments and bare returned identifiers of body.
// A nil body yields empty slices.
func ExtractBody(body syntax.Node) BodyFacts {
	return BodyFacts{
		Comments:          Comments(body),
		ReturnIdentifiers: ReturnIdentifiers(body),
	}
}

// Comments returns the text of every single-line comment in body in document
// order, with the // marker stripped and whitespace trimmed. Documentation
// and block comments are not included.
func Comments(body syntax.Node) []string {
	comments := []string{}
	if body == nil {
		return comments
	}
	for _, t := range body.DescendantTrivia() {
		if t.Kind == syntax.SingleLineComment {
			comments = append(comments, syntax.CommentText(t))
		}
	}
	return comments
}

// ReturnIdentifiers returns the identifiers named by `return <identifier>;`
// statements directly inside body. Nested blocks and any other returned
// expression are ignored.
func ReturnIdentifiers(body syntax.Node) []string {
	names := []string{}
	if body == nil {
		return names
	}
	for _, stmt := range syntax.ChildrenOfKind(body, syntax.KindReturnStatement) {
		exprs := stmt.ChildNodes()
		if len(exprs) == 1 && exprs[0].Kind() == syntax.KindIdentifier {
			names = append(names, exprs[0].Text())
		}
	}
	return names
}

// Body returns the block body of a member, or nil for abstract, extern and
// expression-bodied members.
func Body(member syntax.Node) syntax.Node {
	if member == nil {
		return nil
	}
	if b := member.Field("body"); b != nil && b.Kind() == syntax.KindBlock {
		return b
	}
	return syntax.ChildOfKind(member, syntax.KindBlock)
}

// throwScope is the part of a member searched for throw sites: its block,
// or the arrow clause of an expression-bodied member.
func throwScope(member syntax.Node) syntax.Node {
	if b := Body(member); b != nil {
		return b
	}
	return syntax.ChildOfKind(member, syntax.KindArrowExpression)
}
