package node

// Equal reports whether a and b are structurally identical: same kinds,
// names, values and children in the same order. Parents, formats and
// traits are not compared.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.kind != b.kind || a.named != b.named || a.name != b.name {
		return false
	}
	if a.kind == ValueKind {
		return a.null == b.null && a.value == b.value
	}
	if len(a.children) != len(b.children) {
		return false
	}
	for i := range a.children {
		if !Equal(a.children[i], b.children[i]) {
			return false
		}
	}
	return true
}
