package main

import (
	"fmt"
	"os"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"

	"github.com/signadot/docmap/debug"
	"github.com/signadot/docmap/format"
	"github.com/signadot/docmap/node"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.PatchFile == "" {
		return fmt.Errorf("%w: patch requires -p, a JSON patch file", cli.ErrUsage)
	}
	d, err := os.ReadFile(cfg.PatchFile)
	if err != nil {
		return err
	}
	ops, err := jsonpatch.DecodePatch(d)
	if err != nil {
		return fmt.Errorf("%w: error decoding patch %s: %w", cli.ErrUsage, cfg.PatchFile, err)
	}
	files := inputs(args)
	for i, file := range files {
		root, in, err := getObjFile(cfg.MainConfig, cc, file)
		if err != nil {
			return err
		}
		res, err := applyPatch(ops, root)
		if err != nil {
			return fmt.Errorf("error patching %s: %w", file, err)
		}
		out := cfg.outFormat(in)
		name, _ := root.Name()
		d, err := render(res, name, out)
		if err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
		if _, err := cc.Out.Write(d); err != nil {
			return err
		}
		if err := writeSep(cc.Out, out, i, len(files)); err != nil {
			return err
		}
	}
	return nil
}

// applyPatch applies ops to the JSON rendering of root and returns the
// patched tree as parsed JSON.
func applyPatch(ops jsonpatch.Patch, root *node.Node) (*node.Node, error) {
	if debug.Format() {
		debug.Logf("json patch of %d ops applied to %s\n", len(ops), root.Path())
	}
	name, _ := root.Name()
	j, err := render(root, name, format.JSONFormat)
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(j)
	if err != nil {
		return nil, err
	}
	a, err := format.For(format.JSONFormat)
	if err != nil {
		return nil, err
	}
	return a.Parse(out)
}
