// Package itglue is a minimal read-only client for the IT Glue JSON:API.
package itglue

// ToCamel converts a kebab-case key to camelCase: each hyphen followed by a
// lowercase letter becomes the uppercased letter ("organization-type-id" ->
// "organizationTypeId"). Strings without hyphens pass through unchanged.
func ToCamel(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '-' && i+1 < len(s) && s[i+1] >= 'a' && s[i+1] <= 'z' {
			out = append(out, s[i+1]-'a'+'A')
			i++
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}

// ToKebab converts a camelCase key to kebab-case: each uppercase letter
// becomes a hyphen followed by its lowercase form.
func ToKebab(s string) string {
	out := make([]byte, 0, len(s)+4)
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			out = append(out, '-', s[i]-'A'+'a')
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}

// NormalizeKeys returns a copy of m with every key rewritten to camelCase.
// Nested maps are normalized recursively; arrays and their elements are left
// untouched. The input map is never mutated.
func NormalizeKeys(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			out[ToCamel(k)] = NormalizeKeys(nested)
			continue
		}
		out[ToCamel(k)] = v
	}
	return out
}
