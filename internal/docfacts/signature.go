package docfacts

import (
	"strings"

	"github.com/mvp-joe/docfacts/internal/syntax"
)

// Signature holds the identifying facts of one declaration.
type Signature struct {
	Identifier     string   `json:"identifier" yaml:"identifier"`
	ClassName      string   `json:"class_name,omitempty" yaml:"class_name,omitempty"`
	ReturnType     string   `json:"return_type,omitempty" yaml:"return_type,omitempty"`
	TypeParameters []string `json:"type_parameters" yaml:"type_parameters"`
	Parameters     []string `json:"parameters" yaml:"parameters"`
	BaseTypes      []string `json:"base_types" yaml:"base_types"`
}

// identifierStrategy returns the identifier of a node, if it can find one.
type identifierStrategy func(syntax.Node) (string, bool)

// identifierStrategies are tried in order; the first match wins.
var identifierStrategies = []identifierStrategy{
	directIdentifier,
	lastDescendantIdentifier,
}

var genericBraces = strings.NewReplacer("<", "{", ">", "}")

// Identifier returns the member name of a declaration node: the first
// identifier among its direct tokens, else the last identifier token anywhere
// below it. It returns "" if the node holds no identifier at all.
func Identifier(n syntax.Node) string {
	if n == nil {
		return ""
	}
	for _, strategy := range identifierStrategies {
		if id, ok := strategy(n); ok {
			return id
		}
	}
	return ""
}

func directIdentifier(n syntax.Node) (string, bool) {
	for _, tok := range n.ChildTokens() {
		if tok.IsIdentifier() {
			return tok.Text, true
		}
	}
	return "", false
}

func lastDescendantIdentifier(n syntax.Node) (string, bool) {
	tokens := n.DescendantTokens()
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].IsIdentifier() {
			return tokens[i].Text, true
		}
	}
	return "", false
}

// ClassName returns the name to use for the type a constructor builds.
// Generic classes render as Name{T1,T2} so the text can be embedded in
// XML documentation without escaping.
func ClassName(ctor syntax.Node) string {
	name := Identifier(ctor)
	owner := syntax.Ancestor(ctor, func(p syntax.Node) bool {
		return syntax.IsTypeDeclaration(p.Kind())
	})
	if owner == nil || owner.Kind() != syntax.KindClassDeclaration {
		return name
	}
	if syntax.ChildOfKind(owner, syntax.KindTypeParameterList) == nil {
		return name
	}
	return name + "{" + strings.Join(TypeParameters(owner), ",") + "}"
}

// BaseTypes returns the spelled base types of a class or interface with
// generic brackets turned into braces. It returns an empty slice when the
// declaration has no base list.
func BaseTypes(n syntax.Node) []string {
	types := []string{}
	list := syntax.ChildOfKind(n, syntax.KindBaseList)
	if list == nil {
		return types
	}
	for _, t := range list.ChildNodes() {
		if t.Kind() == syntax.KindArgumentList {
			continue
		}
		if spelled := normalizeGenerics(t.Text()); spelled != "" {
			types = append(types, spelled)
		}
	}
	return types
}

// TypeParameters returns the declared type parameter names, or an empty slice.
func TypeParameters(n syntax.Node) []string {
	names := []string{}
	list := syntax.ChildOfKind(n, syntax.KindTypeParameterList)
	if list == nil {
		return names
	}
	for _, tp := range list.ChildNodes() {
		switch tp.Kind() {
		case syntax.KindTypeParameter, syntax.KindIdentifier:
			names = append(names, nameOf(tp))
		}
	}
	return names
}

// Parameters returns the declared parameter names, or an empty slice.
func Parameters(n syntax.Node) []string {
	names := []string{}
	list := syntax.ChildOfKind(n, syntax.KindParameterList)
	if list == nil {
		return names
	}
	for _, p := range list.ChildNodes() {
		if p.Kind() == syntax.KindParameter {
			names = append(names, nameOf(p))
		}
	}
	// A params array is inlined into the list and is always last; its name
	// is the list's only identifier token.
	for _, t := range list.ChildTokens() {
		if t.Kind == syntax.KindIdentifier {
			names = append(names, t.Text)
		}
	}
	return names
}

// ReturnType returns the spelled return type of a method, braces-normalized.
func ReturnType(method syntax.Node) string {
	if method == nil || method.Kind() != syntax.KindMethodDeclaration {
		return ""
	}
	returns := method.Field("returns")
	if returns == nil {
		returns = method.Field("type")
	}
	if returns == nil {
		return ""
	}
	return normalizeGenerics(returns.Text())
}

// ExtractSignature collects the signature facts relevant to n's kind.
func ExtractSignature(n syntax.Node) Signature {
	sig := Signature{
		Identifier:     Identifier(n),
		TypeParameters: []string{},
		Parameters:     []string{},
		BaseTypes:      []string{},
	}
	if n == nil {
		return sig
	}

	switch kind := n.Kind(); {
	case syntax.IsTypeDeclaration(kind):
		sig.TypeParameters = TypeParameters(n)
		sig.BaseTypes = BaseTypes(n)
	case kind == syntax.KindConstructorDeclaration:
		sig.ClassName = ClassName(n)
		sig.Parameters = Parameters(n)
	case kind == syntax.KindMethodDeclaration:
		sig.TypeParameters = TypeParameters(n)
		sig.Parameters = Parameters(n)
		sig.ReturnType = ReturnType(n)
	}
	return sig
}

// nameOf is Identifier with the node text as a last resort.
func nameOf(n syntax.Node) string {
	if id := Identifier(n); id != "" {
		return id
	}
	return strings.TrimSpace(n.Text())
}

func normalizeGenerics(spelling string) string {
	return strings.TrimSpace(genericBraces.Replace(spelling))
}
