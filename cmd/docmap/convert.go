package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		cfg.Convert.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	files := inputs(args)
	for i, file := range files {
		root, in, err := getObjFile(cfg.MainConfig, cc, file)
		if err != nil {
			return err
		}
		out := cfg.outFormat(in)
		name, _ := root.Name()
		d, err := render(root, name, out)
		if err != nil {
			return fmt.Errorf("error encoding %s as %s: %w", file, out, err)
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
