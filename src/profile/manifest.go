package profile

import "math"

// Manifests are unversioned JSON documents. A reader that finds an
// unexpected type for a field treats the field as absent instead of failing
// the whole restore, so these helpers return nil for anything that is not
// the expected shape.

// StringField returns the named field when it is a string, nil otherwise.
func StringField(m map[string]any, key string) *string {
	if v, ok := m[key].(string); ok {
		return &v
	}
	return nil
}

// UintField returns the named field when it is a JSON number (decoded as
// float64) that fits a uint32 exactly; negative, fractional, and oversized
// values read as absent rather than wrapping.
func UintField(m map[string]any, key string) *uint32 {
	v, ok := m[key].(float64)
	if !ok || v < 0 || v > math.MaxUint32 || v != math.Trunc(v) {
		return nil
	}
	u := uint32(v)
	return &u
}

// BoolField returns the named field when it is a bool, nil otherwise.
func BoolField(m map[string]any, key string) *bool {
	if v, ok := m[key].(bool); ok {
		return &v
	}
	return nil
}

// MapField returns the named field when it is an object, nil otherwise.
func MapField(m map[string]any, key string) map[string]any {
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	return nil
}
