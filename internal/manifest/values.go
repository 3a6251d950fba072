// Where: internal/manifest/values.go
// What: Value conversion helpers for decoded template data.
// Why: Keep classifier and encoder code concise and consistent.
package manifest

import "fmt"

func asMap(value any) map[string]any {
	if m, ok := value.(map[string]any); ok {
		return m
	}
	return nil
}

func asSlice(value any) []any {
	if v, ok := value.([]any); ok {
		return v
	}
	return nil
}

func asString(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}
