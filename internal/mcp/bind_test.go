package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockArgumentGetter struct {
	args map[string]any
}

func (m *mockArgumentGetter) GetArguments() map[string]any {
	return m.args
}

type bindTarget struct {
	Path   string   `json:"path"`
	Kinds  []string `json:"kinds,omitempty"`
	Strict bool     `json:"strict,omitempty"`
}

func TestBindArguments(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want bindTarget
	}{
		{
			name: "native types",
			args: map[string]any{"path": "A.cs", "kinds": []any{"method", "class"}, "strict": true},
			want: bindTarget{Path: "A.cs", Kinds: []string{"method", "class"}, Strict: true},
		},
		{
			name: "JSON string array",
			args: map[string]any{"path": "A.cs", "kinds": `["constructor", "method"]`},
			want: bindTarget{Path: "A.cs", Kinds: []string{"constructor", "method"}},
		},
		{
			name: "comma separated string",
			args: map[string]any{"path": "A.cs", "kinds": "method,class"},
			want: bindTarget{Path: "A.cs", Kinds: []string{"method", "class"}},
		},
		{
			name: "string boolean",
			args: map[string]any{"path": "A.cs", "strict": "true"},
			want: bindTarget{Path: "A.cs", Strict: true},
		},
		{
			name: "missing optional fields",
			args: map[string]any{"path": "A.cs"},
			want: bindTarget{Path: "A.cs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got bindTarget
			require.NoError(t, bindArguments(&mockArgumentGetter{args: tt.args}, &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBindArguments_RejectsMismatchedTypes(t *testing.T) {
	var got bindTarget
	err := bindArguments(&mockArgumentGetter{args: map[string]any{"path": map[string]any{"a": 1}}}, &got)
	assert.Error(t, err)
}
