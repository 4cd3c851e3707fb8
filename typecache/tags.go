package typecache

import (
	"fmt"
	"strings"
)

// TagKey is the struct tag key read for member and type metadata.
const TagKey = "docmap"

// ParseTag parses a docmap struct tag into key/value pairs.
// Handles comma or space separated parts: `docmap:"name=wire,omit"`
// Flags without a value map to "". Values may be quoted: `name='a b'`.
func ParseTag(tag string) (map[string]string, error) {
	result := make(map[string]string)
	if tag == "" {
		return result, nil
	}

	var parts []string
	var current strings.Builder
	inSingleQuote := false
	inDoubleQuote := false

	flush := func() {
		part := strings.TrimSpace(current.String())
		if part != "" {
			parts = append(parts, part)
		}
		current.Reset()
	}

	for i := 0; i < len(tag); i++ {
		char := tag[i]
		switch {
		case char == '\'' && !inDoubleQuote:
			inSingleQuote = !inSingleQuote
			current.WriteByte(char)
		case char == '"' && !inSingleQuote:
			inDoubleQuote = !inDoubleQuote
			current.WriteByte(char)
		case (char == ',' || char == ' ') && !inSingleQuote && !inDoubleQuote:
			flush()
		default:
			current.WriteByte(char)
		}
	}
	if inSingleQuote || inDoubleQuote {
		return nil, fmt.Errorf("invalid tag %q: unterminated quote", tag)
	}
	flush()

	for _, part := range parts {
		idx := strings.Index(part, "=")
		if idx < 0 {
			result[part] = ""
			continue
		}
		key := strings.TrimSpace(part[:idx])
		if key == "" {
			return nil, fmt.Errorf("invalid tag: empty key in %q", part)
		}
		result[key] = unquoteValue(strings.TrimSpace(part[idx+1:]))
	}
	return result, nil
}

func unquoteValue(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '\'' && last == '\'') || (first == '"' && last == '"') {
			return value[1 : len(value)-1]
		}
	}
	return value
}
