// Package contest contains the entities fetched from the Codeforces
// problemset and per-user contest history: problems, per-problem solve
// statistics, submissions and rating-change events. Entities are
// constructed from raw API records and are immutable afterwards.
package contest

import (
	"encoding/json"
	"fmt"

	"github.com/cf-tools/cf-insight/internal/domain/shared"
)

// Record is one raw string-keyed record as decoded from the API response.
// Numeric values may arrive as float64 (encoding/json default), int or
// json.Number depending on the decoder configuration.
type Record map[string]any

// requiredString extracts a mandatory string field.
func requiredString(r Record, key string) (string, error) {
	v, ok := r[key]
	if !ok {
		return "", shared.WrapError("contest", "parse", shared.ErrMalformedRecord,
			fmt.Sprintf("missing required field %q", key), nil)
	}
	s, ok := v.(string)
	if !ok {
		return "", shared.WrapError("contest", "parse", shared.ErrMalformedRecord,
			fmt.Sprintf("field %q is not a string", key), nil)
	}
	return s, nil
}

// requiredInt extracts a mandatory integer field, coercing the numeric
// representations encoding/json may produce.
func requiredInt(r Record, key string) (int64, error) {
	v, ok := r[key]
	if !ok {
		return 0, shared.WrapError("contest", "parse", shared.ErrMalformedRecord,
			fmt.Sprintf("missing required field %q", key), nil)
	}
	n, ok := coerceInt(v)
	if !ok {
		return 0, shared.WrapError("contest", "parse", shared.ErrMalformedRecord,
			fmt.Sprintf("field %q is not an integer", key), nil)
	}
	return n, nil
}

// optionalString returns nil when the field is absent. An absent optional
// never collides with a real value.
func optionalString(r Record, key string) *string {
	v, ok := r[key]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

// optionalInt returns nil when the field is absent or non-numeric.
func optionalInt(r Record, key string) *int {
	v, ok := r[key]
	if !ok {
		return nil
	}
	n, ok := coerceInt(v)
	if !ok {
		return nil
	}
	i := int(n)
	return &i
}

// optionalFloat returns nil when the field is absent or non-numeric.
func optionalFloat(r Record, key string) *float64 {
	v, ok := r[key]
	if !ok {
		return nil
	}
	f, ok := coerceFloat(v)
	if !ok {
		return nil
	}
	return &f
}

// optionalStrings extracts a string array field, defaulting to nil.
func optionalStrings(r Record, key string) []string {
	v, ok := r[key]
	if !ok {
		return nil
	}
	switch vs := v.(type) {
	case []string:
		out := make([]string, len(vs))
		copy(out, vs)
		return out
	case []any:
		out := make([]string, 0, len(vs))
		for _, e := range vs {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func coerceInt(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

func coerceFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
