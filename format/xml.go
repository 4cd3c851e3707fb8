package format

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/signadot/docmap/debug"
	"github.com/signadot/docmap/node"
)

const (
	// xmlText names the child holding character data of an element that
	// also has attributes or child elements.
	xmlText = "#text"
	// xmlNil is the attribute marking a null element.
	xmlNil = "nil"
	// xmlRoot and xmlItem are used for anonymous roots and elements.
	xmlRoot = "document"
	xmlItem = "item"
)

// xmlAdapter maps elements to nodes of flexible kind: an element with
// children or attributes is an Object, a leaf element a Value. Attributes
// become Value children.
type xmlAdapter struct{}

func (xmlAdapter) Format() Format { return XMLFormat }

func (xmlAdapter) NewRoot(name string) *node.Node {
	if name == "" {
		name = xmlRoot
	}
	return node.NewRoot(XMLFormat.String(), node.ValueKind, name, 0, nil)
}

type xmlFrame struct {
	n    *node.Node
	text strings.Builder
	null bool
}

func (xmlAdapter) Parse(data []byte) (*node.Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var (
		root  *node.Node
		stack []*xmlFrame
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &SyntaxError{Format: XMLFormat, Err: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var n *node.Node
			if len(stack) == 0 {
				if root != nil {
					return nil, &SyntaxError{Format: XMLFormat, Err: errors.New("multiple root elements")}
				}
				root = node.NewRoot(XMLFormat.String(), node.ValueKind, t.Name.Local, 0, nil)
				n = root
			} else {
				n, err = stack[len(stack)-1].n.Add(t.Name.Local, node.ValueKind)
				if err != nil {
					return nil, err
				}
			}
			f := &xmlFrame{n: n}
			for _, a := range t.Attr {
				if a.Name.Local == xmlNil && a.Value == "true" {
					f.null = true
					continue
				}
				c, err := n.Add(a.Name.Local, node.ValueKind)
				if err != nil {
					return nil, err
				}
				if err := c.SetValue(a.Value); err != nil {
					return nil, err
				}
			}
			stack = append(stack, f)
		case xml.CharData:
			if len(stack) != 0 {
				stack[len(stack)-1].text.Write(t)
			}
		case xml.EndElement:
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if err := f.close(); err != nil {
				return nil, err
			}
		}
	}
	if root == nil {
		return nil, &SyntaxError{Format: XMLFormat, Err: errors.New("no root element")}
	}
	if debug.Format() {
		debug.Logf("xml: parsed root %s", root.Path())
	}
	return root, nil
}

func (f *xmlFrame) close() error {
	text := f.text.String()
	if f.n.Len() == 0 {
		if f.null && text == "" {
			return f.n.SetValue(nil)
		}
		return f.n.SetValue(text)
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}
	c, err := f.n.Add(xmlText, node.ValueKind)
	if err != nil {
		return err
	}
	return c.SetValue(strings.TrimSpace(text))
}

func (xmlAdapter) Render(root *node.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	name, ok := root.Name()
	if !ok || name == "" {
		name = xmlRoot
	}
	if err := renderXML(enc, name, root); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func renderXML(enc *xml.Encoder, name string, n *node.Node) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if n.IsNull() {
		start.Attr = []xml.Attr{{Name: xml.Name{Local: xmlNil}, Value: "true"}}
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if n.Kind() == node.ValueKind {
		v, _ := n.Value()
		if v != "" {
			if err := enc.EncodeToken(xml.CharData(v)); err != nil {
				return err
			}
		}
	} else {
		children, _ := n.Children()
		for _, c := range children {
			cname, ok := c.Name()
			if !ok || cname == "" {
				cname = xmlItem
			}
			if cname == xmlText && c.Kind() == node.ValueKind {
				v, _ := c.Value()
				if err := enc.EncodeToken(xml.CharData(v)); err != nil {
					return err
				}
				continue
			}
			if err := renderXML(enc, cname, c); err != nil {
				return err
			}
		}
	}
	return enc.EncodeToken(start.End())
}
