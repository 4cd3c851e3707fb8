package libdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Equal Op = iota
	Insert
	Delete
	// Elided stands for a run of equal lines dropped by Context.
	Elided
)

func (o Op) String() string {
	switch o {
	case Equal:
		return "equal"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Elided:
		return "elided"
	}
	return "unknown"
}

// Line is one line of a line diff, without its terminating newline.
type Line struct {
	Op   Op
	Text string
}

func (l Line) String() string {
	switch l.Op {
	case Insert:
		return "+ " + l.Text
	case Delete:
		return "- " + l.Text
	case Elided:
		return "..."
	}
	return "  " + l.Text
}

// Lines returns the line diff turning from into to, or nil when they are
// identical. Deleted lines precede the lines inserted in their place.
func Lines(from, to string) []Line {
	if from == to {
		return nil
	}
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	var res []Line
	for _, d := range diffs {
		var op Op
		switch d.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		default:
			op = Equal
		}
		for _, text := range splitLines(d.Text) {
			res = append(res, Line{Op: op, Text: text})
		}
	}
	return res
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	res := strings.Split(s, "\n")
	if res[len(res)-1] == "" {
		res = res[:len(res)-1]
	}
	return res
}

// Changed counts the inserted and deleted lines of d.
func Changed(d []Line) int {
	n := 0
	for _, l := range d {
		if l.Op == Insert || l.Op == Delete {
			n++
		}
	}
	return n
}

// Context keeps the changed lines of d and up to n equal lines around
// each of them. Each dropped run is replaced by a single Elided line.
func Context(d []Line, n int) []Line {
	keep := make([]bool, len(d))
	for i, l := range d {
		if l.Op == Equal || l.Op == Elided {
			continue
		}
		for j := max(0, i-n); j <= min(len(d)-1, i+n); j++ {
			keep[j] = true
		}
	}
	var res []Line
	for i, l := range d {
		if keep[i] {
			res = append(res, l)
			continue
		}
		if len(res) == 0 || res[len(res)-1].Op != Elided {
			res = append(res, Line{Op: Elided})
		}
	}
	return res
}
