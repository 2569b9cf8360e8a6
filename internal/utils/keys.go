package utils

import "strings"

// LowercaseKeys returns a copy of m with every map key lowercased, descending
// into nested maps and slices. Colliding keys keep the last value seen.
func LowercaseKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = lowercaseValue(v)
	}
	return out
}

func lowercaseValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return LowercaseKeys(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = lowercaseValue(item)
		}
		return out
	default:
		return v
	}
}
