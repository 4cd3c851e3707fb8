package format

import (
	"net/url"
	"strings"

	"github.com/signadot/docmap/debug"
	"github.com/signadot/docmap/node"
)

// formShape makes every pair a fixed Value node where null reads back as
// the empty string.
var formShape = &node.Shape{Kind: node.ValueKind, Traits: node.FixedKind | node.NullAsEmpty}

// formAdapter reads and writes application/x-www-form-urlencoded pairs.
// The root is a fixed Object; pairs keep their input order.
type formAdapter struct{}

func (formAdapter) Format() Format { return FormFormat }

func (formAdapter) NewRoot(string) *node.Node {
	return node.NewRoot(FormFormat.String(), node.ObjectKind, "", node.FixedKind, formShape)
}

func (a formAdapter) Parse(data []byte) (*node.Node, error) {
	root := a.NewRoot("")
	s := strings.TrimSpace(string(data))
	for _, pair := range strings.Split(s, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			return nil, &SyntaxError{Format: FormFormat, Err: err}
		}
		val, err := url.QueryUnescape(v)
		if err != nil {
			return nil, &SyntaxError{Format: FormFormat, Err: err}
		}
		c, err := root.Add(key, node.ValueKind)
		if err != nil {
			return nil, err
		}
		if err := c.SetValue(val); err != nil {
			return nil, err
		}
	}
	if debug.Format() {
		debug.Logf("form: parsed %d pairs", root.Len())
	}
	return root, nil
}

func (formAdapter) Render(root *node.Node) ([]byte, error) {
	children, err := root.Children()
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	for i, c := range children {
		v, err := c.Value()
		if err != nil {
			return nil, err
		}
		name, _ := c.Name()
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(name))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(v))
	}
	return []byte(sb.String()), nil
}
