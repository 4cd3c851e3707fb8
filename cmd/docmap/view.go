package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/scott-cotton/cli"

	"github.com/signadot/docmap/node"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	files := inputs(args)
	c := newColors(cfg.useColor(cc.Out))
	for i, file := range files {
		root, f, err := getObjFile(cfg.MainConfig, cc, file)
		if err != nil {
			return err
		}
		if len(files) > 1 {
			fmt.Fprintf(cc.Out, "# %s (%s)\n", file, f)
		}
		if err := viewNode(cfg, c, cc.Out, root); err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		if i < len(files)-1 {
			io.WriteString(cc.Out, "\n")
		}
	}
	return nil
}

func viewNode(cfg *ViewConfig, c *colors, w io.Writer, root *node.Node) error {
	return root.Visit(func(n *node.Node, isPost bool) (bool, error) {
		if isPost {
			return true, nil
		}
		var desc string
		switch {
		case n.Kind().IsContainer():
			if cfg.Values {
				return true, nil
			}
			desc = fmt.Sprintf("(%d)", n.Len())
		case n.IsNull():
			desc = c.Null("null")
		default:
			v, err := n.Value()
			if err != nil {
				return false, err
			}
			desc = c.Value(strconv.Quote(v))
		}
		_, err := fmt.Fprintf(w, "%s %s %s\n", c.Path(n.Path()), c.Kind(n.Kind()), desc)
		return true, err
	})
}
