package document

// Helpers for walking the loosely typed JSON tree. Every accessor tolerates
// missing keys and unexpected shapes by returning the zero value.

// AsMap returns v as an object, or nil.
func AsMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// AsList returns v as an array, or nil.
func AsList(v any) []any {
	l, _ := v.([]any)
	return l
}

// AsString returns v as a string, or "".
func AsString(v any) string {
	s, _ := v.(string)
	return s
}

// Lookup follows keys through nested objects.
func Lookup(v any, keys ...string) any {
	for _, k := range keys {
		m := AsMap(v)
		if m == nil {
			return nil
		}
		v = m[k]
	}
	return v
}

// LookupString is Lookup returning a string.
func LookupString(v any, keys ...string) string {
	return AsString(Lookup(v, keys...))
}

// Truthy mirrors how the upstream payloads use empty values: nil, "", empty
// lists and empty objects all mean "absent".
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}
