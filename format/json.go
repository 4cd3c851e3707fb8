package format

import (
	"bytes"

	"github.com/goccy/go-yaml"

	"github.com/signadot/docmap/node"
)

// jsonAdapter shares the YAML tree mapping; JSON input is read by the YAML
// decoder and output uses go-yaml's JSON encoding.
type jsonAdapter struct{}

func (jsonAdapter) Format() Format { return JSONFormat }

func (jsonAdapter) NewRoot(string) *node.Node {
	return node.NewRoot(JSONFormat.String(), node.ValueKind, "", 0, nil)
}

func (jsonAdapter) Parse(data []byte) (*node.Node, error) {
	return parseTree(JSONFormat, data)
}

func (jsonAdapter) Render(root *node.Node) ([]byte, error) {
	v, err := toYAMLValue(root)
	if err != nil {
		return nil, err
	}
	d, err := yaml.MarshalWithOptions(v, yaml.JSON())
	if err != nil {
		return nil, err
	}
	d = bytes.TrimSpace(d)
	return append(d, '\n'), nil
}
