package typecache

import (
	"reflect"
	"regexp"
	"strings"
)

// qualifier matches package qualifiers such as "main." or
// "github.com/x/y." inside a type string.
var qualifier = regexp.MustCompile(`(?:[\w.-]+/)*[\w-]+\.`)

// stripQualifiers removes package qualifiers: "main.Page[main.User]" -> "Page[User]".
func stripQualifiers(s string) string {
	return qualifier.ReplaceAllString(s, "")
}

// stripTypeParams removes generic instantiation arguments: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i > 0 {
		return s[:i]
	}
	return s
}

// typeArgs splits the top-level arguments of an instantiated generic
// name: "Pair[string,Box[int]]" -> ["string", "Box[int]"].
func typeArgs(s string) []string {
	open := strings.IndexByte(s, '[')
	if open <= 0 || !strings.HasSuffix(s, "]") {
		return nil
	}
	inner := s[open+1 : len(s)-1]
	var res []string
	depth, start := 0, 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				res = append(res, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	return append(res, strings.TrimSpace(inner[start:]))
}

func fullName(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}
