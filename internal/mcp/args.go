package mcp

import (
	"fmt"
	"strings"

	"github.com/mvp-joe/docfacts/internal/docfacts"
)

// mergeKinds appends the single kind argument to the kinds array and rejects
// unknown kind names. An empty result means every kind.
func mergeKinds(kind string, kinds []string) ([]string, error) {
	if kind != "" {
		kinds = append(kinds, kind)
	}
	for _, k := range kinds {
		if !docfacts.IsKindName(k) {
			return nil, fmt.Errorf("unknown kind %q (valid: %s)", k, strings.Join(docfacts.KindNames(), ", "))
		}
	}
	return kinds, nil
}
