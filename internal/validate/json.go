package validate

import (
	"strconv"
)

// JSONValues adapts a decoded JSON object to Values so API requests share the
// form validation rules.
type JSONValues map[string]any

// Get returns the field rendered as a string; absent or null fields are "".
func (j JSONValues) Get(key string) string {
	switch v := j[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		// Objects and arrays never validate as scalars.
		return "\x00"
	}
}
