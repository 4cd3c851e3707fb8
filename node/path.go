package node

import (
	"strconv"
	"strings"
)

// Path returns the route from the document root to n, for diagnostics.
//
// Examples:
//   - root → "$"
//   - object member "a" → "$.a"
//   - array element 2 → "$.a[2]"
//   - third of several "item" siblings → "$.a.item[2]"
func (n *Node) Path() string {
	if n.parent == nil {
		return "$"
	}
	return childPath(n.parent, n, n.index)
}

func childPath(p, c *Node, index int) string {
	prefix := p.Path()
	if p.kind == ArrayKind || !c.named {
		return prefix + "[" + strconv.Itoa(index) + "]"
	}
	res := prefix + "." + quoteField(c.name)
	occ, total := 0, 0
	for i, s := range p.children {
		if !s.named || s.name != c.name {
			continue
		}
		if i < index {
			occ++
		}
		total++
	}
	if total > 1 {
		res += "[" + strconv.Itoa(occ) + "]"
	}
	return res
}

func quoteField(f string) string {
	if f != "" && strings.IndexAny(f, "'.*$[] ") == -1 {
		return f
	}
	return "'" + strings.ReplaceAll(f, "'", "\\'") + "'"
}
