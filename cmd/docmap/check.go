package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/docmap/format"
	"github.com/signadot/docmap/libdiff"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		cfg.Check.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	c := newColors(cfg.useColor(cc.Out))
	differs := false
	for _, file := range inputs(args) {
		in, err := cfg.inFormat(file)
		if err != nil {
			return err
		}
		d, err := readObjFile(cc, file)
		if err != nil {
			return err
		}
		diff, err := checkDoc(in, d)
		if err != nil {
			return fmt.Errorf("error checking %s: %w", file, err)
		}
		if diff == nil {
			if !cfg.Quiet {
				fmt.Fprintf(cc.Out, "%s: ok\n", file)
			}
			continue
		}
		differs = true
		if cfg.Quiet {
			continue
		}
		fmt.Fprintf(cc.Out, "%s: %d lines differ after re-rendering as %s\n", file, libdiff.Changed(diff), in)
		for _, l := range libdiff.Context(diff, cfg.ContextLines) {
			fmt.Fprintln(cc.Out, c.Lines[l.Op](l.String()))
		}
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// checkDoc parses d and renders it again, returning the line diff of the
// two, nil when d is already canonical.
func checkDoc(f format.Format, d []byte) ([]libdiff.Line, error) {
	a, err := format.For(f)
	if err != nil {
		return nil, err
	}
	root, err := a.Parse(d)
	if err != nil {
		return nil, err
	}
	out, err := a.Render(root)
	if err != nil {
		return nil, err
	}
	return libdiff.Lines(string(d), string(out)), nil
}
