package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// resultEncoder writes one value in the configured output format. YAML
// output separates successive values as documents; JSON writes one value
// per call.
type resultEncoder interface {
	Encode(v any) error
	Close() error
}

type jsonEncoder struct {
	enc *json.Encoder
}

func (e *jsonEncoder) Encode(v any) error { return e.enc.Encode(v) }
func (e *jsonEncoder) Close() error       { return nil }

// newEncoder returns an encoder for format ("json" or "yaml"). When compact
// is set JSON values are written one per line.
func newEncoder(w io.Writer, format string, compact bool) (resultEncoder, error) {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		if !compact {
			enc.SetIndent("", "  ")
		}
		return &jsonEncoder{enc: enc}, nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		return enc, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}
