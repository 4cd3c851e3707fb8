package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/signadot/docmap/debug"
	"github.com/signadot/docmap/node"
)

// yamlAdapter maps mappings to Object nodes, sequences to Array nodes and
// scalars to Value nodes. Parsed nodes keep their kind. Mapping order is
// preserved in both directions.
type yamlAdapter struct{}

func (yamlAdapter) Format() Format { return YAMLFormat }

func (yamlAdapter) NewRoot(string) *node.Node {
	return node.NewRoot(YAMLFormat.String(), node.ValueKind, "", 0, nil)
}

func (yamlAdapter) Parse(data []byte) (*node.Node, error) {
	return parseTree(YAMLFormat, data)
}

func (yamlAdapter) Render(root *node.Node) ([]byte, error) {
	v, err := toYAMLValue(root)
	if err != nil {
		return nil, err
	}
	return yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(true))
}

// parseTree decodes YAML, or JSON as a subset of it, into a node tree.
func parseTree(f Format, data []byte) (*node.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, &SyntaxError{Format: f, Err: err}
	}
	root := node.NewRoot(f.String(), kindOfYAML(v), "", node.FixedKind, nil)
	if err := fillNode(root, v); err != nil {
		return nil, err
	}
	if debug.Format() {
		debug.Logf("%s: parsed %s root with %d children", f, root.Kind(), root.Len())
	}
	return root, nil
}

func kindOfYAML(v any) node.Kind {
	switch v.(type) {
	case yaml.MapSlice, map[string]any, map[any]any:
		return node.ObjectKind
	case []any:
		return node.ArrayKind
	}
	return node.ValueKind
}

// fillNode sets the content of n, already of the right kind, from v.
// Children are created with the fixed kind of their values.
func fillNode(n *node.Node, v any) error {
	switch x := v.(type) {
	case yaml.MapSlice:
		for _, item := range x {
			c, err := n.Add(fmt.Sprint(item.Key), kindOfYAML(item.Value))
			if err != nil {
				return err
			}
			if err := fillFixed(c, item.Value); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for _, e := range x {
			c, err := n.Add("", kindOfYAML(e))
			if err != nil {
				return err
			}
			if err := fillFixed(c, e); err != nil {
				return err
			}
		}
		return nil
	case nil:
		return n.SetValue(nil)
	}
	s, err := scalarText(v)
	if err != nil {
		return err
	}
	return n.SetValue(s)
}

func fillFixed(n *node.Node, v any) error {
	if err := fillNode(n, v); err != nil {
		return err
	}
	n.Fix()
	return nil
}

func scalarText(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case time.Time:
		return x.Format(time.RFC3339Nano), nil
	}
	return "", fmt.Errorf("unsupported scalar %T", v)
}

// toYAMLValue converts a node tree to values that go-yaml encodes in
// order. Value text that reads as a boolean or a finite number is encoded
// unquoted.
func toYAMLValue(n *node.Node) (any, error) {
	switch n.Kind() {
	case node.ObjectKind:
		children, _ := n.Children()
		res := make(yaml.MapSlice, 0, len(children))
		for _, c := range children {
			v, err := toYAMLValue(c)
			if err != nil {
				return nil, err
			}
			name, _ := c.Name()
			res = append(res, yaml.MapItem{Key: name, Value: v})
		}
		return res, nil
	case node.ArrayKind:
		children, _ := n.Children()
		res := make([]any, 0, len(children))
		for _, c := range children {
			v, err := toYAMLValue(c)
			if err != nil {
				return nil, err
			}
			res = append(res, v)
		}
		return res, nil
	}
	if n.IsNull() {
		return nil, nil
	}
	s, err := n.Value()
	if err != nil {
		return nil, err
	}
	return typedScalar(s), nil
}

// quotedText is encoded as a double-quoted scalar. Block literals cannot
// carry every multi-line string, e.g. "\n" or " \n ".
type quotedText string

func (q quotedText) MarshalYAML() ([]byte, error) {
	return []byte(strconv.Quote(string(q))), nil
}

func typedScalar(s string) any {
	if strings.ContainsAny(s, "\n\r") {
		return quotedText(s)
	}
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil && strconv.FormatInt(i, 10) == s {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) &&
		strconv.FormatFloat(f, 'g', -1, 64) == s {
		return f
	}
	return s
}
