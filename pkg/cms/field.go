package cms

// unwrapLocale peels the {locale: value} envelope off a field value. A value
// without the envelope (delivery API shape) is returned as-is; a field that
// is absent for the locale yields nil. Never panics on foreign shapes.
func unwrapLocale(field interface{}, locale string) interface{} {
	if field == nil {
		return nil
	}
	if m, ok := field.(map[string]interface{}); ok {
		if v, ok := m[locale]; ok {
			return v
		}
	}
	return field
}

// Raw returns the unwrapped value of a named field, or nil when absent.
func (f Fields) Raw(name, locale string) interface{} {
	if f == nil {
		return nil
	}
	return unwrapLocale(f[name], locale)
}

// String returns the unwrapped field value when it is a string, else "".
func (f Fields) String(name, locale string) string {
	if s, ok := f.Raw(name, locale).(string); ok {
		return s
	}
	return ""
}

// Bool returns the unwrapped field value when it is a bool, else false.
func (f Fields) Bool(name, locale string) bool {
	if b, ok := f.Raw(name, locale).(bool); ok {
		return b
	}
	return false
}

// Localized wraps a value in the {locale: value} envelope the management
// API expects on writes.
func Localized(locale string, v interface{}) map[string]interface{} {
	return map[string]interface{}{locale: v}
}

// AssetLink builds a link-to-asset field value. Plain maps rather than a
// struct so that a written field and a decoded one compare equal.
func AssetLink(id string) map[string]interface{} {
	return map[string]interface{}{
		"sys": map[string]interface{}{
			"type":     "Link",
			"linkType": "Asset",
			"id":       id,
		},
	}
}

// AssetLinkID extracts the linked asset id from an unwrapped field value,
// or "" when the value does not have the {sys: {id}} link shape.
func AssetLinkID(v interface{}) string {
	m, ok := v.(map[string]interface{})
	if !ok {
		return ""
	}
	sys, ok := m["sys"].(map[string]interface{})
	if !ok {
		return ""
	}
	id, ok := sys["id"].(string)
	if !ok {
		return ""
	}
	return id
}
