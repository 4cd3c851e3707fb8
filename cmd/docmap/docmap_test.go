package main

import (
	"errors"
	"testing"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/google/go-cmp/cmp"
	"github.com/scott-cotton/cli"

	"github.com/signadot/docmap/format"
	"github.com/signadot/docmap/libdiff"
	"github.com/signadot/docmap/node"
)

func TestInFormat(t *testing.T) {
	cfg := &MainConfig{}
	if f, err := cfg.inFormat("doc.yaml"); err != nil || f != format.YAMLFormat {
		t.Errorf("inFormat(doc.yaml) = %s, %v", f, err)
	}
	if _, err := cfg.inFormat("-"); !errors.Is(err, cli.ErrUsage) {
		t.Errorf("expected usage error for stdin, got %v", err)
	}
	x := format.XMLFormat
	cfg.InFormat = &x
	if f, err := cfg.inFormat("doc.yaml"); err != nil || f != format.XMLFormat {
		t.Errorf("-I should win, got %s, %v", f, err)
	}
	if got := cfg.outFormat(format.JSONFormat); got != format.JSONFormat {
		t.Errorf("outFormat() = %s", got)
	}
}

func TestCheckDoc(t *testing.T) {
	diff, err := checkDoc(format.YAMLFormat, []byte("a: 1\nb:\n  - x\n"))
	if err != nil {
		t.Fatal(err)
	}
	if diff != nil {
		t.Errorf("canonical document reported as changed: %v", diff)
	}
	diff, err = checkDoc(format.YAMLFormat, []byte("a:    1\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := []libdiff.Line{{Op: libdiff.Delete, Text: "a:    1"}, {Op: libdiff.Insert, Text: "a: 1"}}
	if d := cmp.Diff(want, diff); d != "" {
		t.Errorf("checkDoc() mismatch (-want +got):\n%s", d)
	}
}

func TestApplyPatch(t *testing.T) {
	a, _ := format.For(format.YAMLFormat)
	root, err := a.Parse([]byte("a: 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	ops, err := jsonpatch.DecodePatch([]byte(`[{"op": "add", "path": "/b", "value": "x"}]`))
	if err != nil {
		t.Fatal(err)
	}
	res, err := applyPatch(ops, root)
	if err != nil {
		t.Fatal(err)
	}
	want := node.Object("", node.Scalar("a", "1"), node.Scalar("b", "x"))
	if !node.Equal(want, res) {
		t.Errorf("unexpected patch result")
	}
	d, err := render(res, "doc", format.XMLFormat)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(d), "<doc>\n  <a>1</a>\n  <b>x</b>\n</doc>\n"; got != want {
		t.Errorf("render() = %q, want %q", got, want)
	}
}
