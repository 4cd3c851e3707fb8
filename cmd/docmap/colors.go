package main

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/signadot/docmap/libdiff"
)

type colors struct {
	Path, Kind, Value, Null func(a ...any) string
	Lines                   map[libdiff.Op]func(a ...any) string
}

func newColors(on bool) *colors {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		if !on {
			return fmt.Sprint
		}
		c := color.New(attrs...)
		c.EnableColor()
		return c.SprintFunc()
	}
	return &colors{
		Path:  mk(color.FgCyan),
		Kind:  mk(color.FgHiBlack),
		Value: mk(color.FgGreen),
		Null:  mk(color.FgMagenta),
		Lines: map[libdiff.Op]func(a ...any) string{
			libdiff.Equal:  mk(color.Reset),
			libdiff.Insert: mk(color.FgGreen),
			libdiff.Delete: mk(color.FgRed),
			libdiff.Elided: mk(color.FgHiBlack),
		},
	}
}
