package utils

import "github.com/tidwall/gjson"

// LookupPath resolves a dotted property path ("driver.address.city",
// "stops.0.label") inside a JSON document. ok is false when the path is
// missing or resolves to null.
func LookupPath(doc []byte, path string) (value any, ok bool) {
	if path == "" {
		return nil, false
	}
	res := gjson.GetBytes(doc, path)
	if !res.Exists() || res.Type == gjson.Null {
		return nil, false
	}
	return res.Value(), true
}
