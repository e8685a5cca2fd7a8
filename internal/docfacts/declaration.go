package docfacts

import (
	"fmt"
	"sort"

	"github.com/mvp-joe/docfacts/internal/syntax"
)

// Declaration aggregates every fact extracted for one declaration node. It
// is what the renderer consumes to build a documentation comment.
type Declaration struct {
	Kind        string                `json:"kind" yaml:"kind"`
	Line        int                   `json:"line" yaml:"line"`
	Indentation string                `json:"indentation" yaml:"indentation"`
	Signature   Signature             `json:"signature" yaml:"signature"`
	Body        BodyFacts             `json:"body" yaml:"body"`
	Exceptions  []ExceptionDescriptor `json:"exceptions" yaml:"exceptions"`
}

// HasFacts reports whether anything beyond the identifier was extracted.
// A void return type is not a fact.
func (d Declaration) HasFacts() bool {
	s := d.Signature
	return len(s.TypeParameters) > 0 || len(s.Parameters) > 0 || len(s.BaseTypes) > 0 ||
		(s.ReturnType != "" && s.ReturnType != "void") || len(d.Exceptions) > 0 ||
		len(d.Body.Comments) > 0 || len(d.Body.ReturnIdentifiers) > 0
}

// Declaration kind names as used in configuration and output.
const (
	KindClass       = "class"
	KindInterface   = "interface"
	KindConstructor = "constructor"
	KindMethod      = "method"
)

var declarationKinds = map[string]string{
	syntax.KindClassDeclaration:       KindClass,
	syntax.KindInterfaceDeclaration:   KindInterface,
	syntax.KindConstructorDeclaration: KindConstructor,
	syntax.KindMethodDeclaration:      KindMethod,
}

// KindNames returns the supported declaration kind names, sorted.
func KindNames() []string {
	names := make([]string, 0, len(declarationKinds))
	for _, name := range declarationKinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsKindName reports whether name is a supported declaration kind.
func IsKindName(name string) bool {
	for _, k := range declarationKinds {
		if k == name {
			return true
		}
	}
	return false
}

// Describe extracts all facts about a single declaration node. It returns an
// error only if n is not a supported declaration kind.
func Describe(n syntax.Node) (Declaration, error) {
	if n == nil {
		return Declaration{}, fmt.Errorf("describe: nil node")
	}
	kind, ok := declarationKinds[n.Kind()]
	if !ok {
		return Declaration{}, fmt.Errorf("describe: unsupported declaration kind %q", n.Kind())
	}

	d := Declaration{
		Kind:        kind,
		Line:        n.StartLine(),
		Indentation: Indentation(n).Text,
		Signature:   ExtractSignature(n),
		Body:        ExtractBody(nil),
		Exceptions:  []ExceptionDescriptor{},
	}
	switch kind {
	case KindConstructor, KindMethod:
		d.Body = ExtractBody(Body(n))
		d.Exceptions = Exceptions(throwScope(n))
	}
	return d, nil
}

// Extract describes every supported declaration under root in document
// order. When kinds is non-empty only those kind names are described.
func Extract(root syntax.Node, kinds ...string) []Declaration {
	decls := []Declaration{}
	if root == nil {
		return decls
	}

	want := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}

	candidates := append([]syntax.Node{root}, root.DescendantNodes()...)
	for _, n := range candidates {
		kind, ok := declarationKinds[n.Kind()]
		if !ok || (len(want) > 0 && !want[kind]) {
			continue
		}
		d, err := Describe(n)
		if err != nil {
			continue
		}
		decls = append(decls, d)
	}
	return decls
}
