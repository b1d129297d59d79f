// Package introspection renders how a schema was resolved: which variable each key
// read, where its value came from, and what it mapped to.
package introspection

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"text/tabwriter"
)

// Report lists the resolution of every schema key in schema order.
type Report struct {
	Fields []FieldReport `json:"fields"`
}

// FieldReport captures the resolution of a single key.
type FieldReport struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Source   string `json:"source"`
	Provider string `json:"provider,omitempty"`
	Value    any    `json:"value"`
}

// serializableField mirrors FieldReport with a JSON-safe value.
type serializableField FieldReport

// MarshalJSON implements json.Marshaler. Float values that JSON cannot carry
// (NaN and infinities) are written as strings.
func (r Report) MarshalJSON() ([]byte, error) {
	fields := make([]serializableField, len(r.Fields))
	for i, f := range r.Fields {
		f.Value = jsonSafe(f.Value)
		fields[i] = serializableField(f)
	}
	return json.Marshal(struct {
		Fields []serializableField `json:"fields"`
	}{Fields: fields})
}

// FormatText writes the report as an aligned table.
func (r Report) FormatText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tVARIABLE\tSOURCE\tVALUE") //nolint:errcheck
	for _, f := range r.Fields {
		value := "<null>"
		if f.Source != "unset" {
			value = fmt.Sprintf("%v", f.Value)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.Key, f.Name, f.Source, value) //nolint:errcheck
	}
	return tw.Flush()
}

func jsonSafe(v any) any {
	switch x := v.(type) {
	case float64:
		return safeFloat(x)
	case []float64:
		out := make([]any, len(x))
		for i, f := range x {
			out[i] = safeFloat(f)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = jsonSafe(item)
		}
		return out
	default:
		return v
	}
}

func safeFloat(f float64) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	default:
		return f
	}
}
