package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/docmap/format"
	"github.com/signadot/docmap/node"
)

// inputs returns the paths named by args, or stdin.
func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

func readObjFile(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

// getObjFile reads and parses the document at path.
func getObjFile(cfg *MainConfig, cc *cli.Context, path string) (*node.Node, format.Format, error) {
	f, err := cfg.inFormat(path)
	if err != nil {
		return nil, 0, err
	}
	d, err := readObjFile(cc, path)
	if err != nil {
		return nil, 0, err
	}
	a, err := format.For(f)
	if err != nil {
		return nil, 0, err
	}
	root, err := a.Parse(d)
	if err != nil {
		return nil, 0, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return root, f, nil
}

// render renders root in format f under the root name name, carrying it
// over to a root of f first when it was parsed from another format or
// under another name.
func render(root *node.Node, name string, f format.Format) ([]byte, error) {
	a, err := format.For(f)
	if err != nil {
		return nil, err
	}
	if cur, _ := root.Name(); root.Format() != f.String() || cur != name {
		dst := a.NewRoot(name)
		if err := dst.CopyFrom(root); err != nil {
			return nil, err
		}
		root = dst
	}
	return a.Render(root)
}

func writeSep(w io.Writer, f format.Format, i, n int) error {
	if i == n-1 {
		return nil
	}
	sep := "\n"
	if f == format.YAMLFormat {
		sep = "---\n"
	}
	_, err := io.WriteString(w, sep)
	return err
}
