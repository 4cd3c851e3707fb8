package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"xml", XMLFormat, false},
		{"x", XMLFormat, false},
		{"form", FormFormat, false},
		{"urlencoded", FormFormat, false},
		{"YAML", YAMLFormat, false},
		{"yml", YAMLFormat, false},
		{"j", JSONFormat, false},
		{"toml", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v", tt.in, err)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrBadFormat) {
					t.Errorf("expected ErrBadFormat, got %v", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatText(t *testing.T) {
	for _, f := range AllFormats() {
		d, err := f.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Format
		if err := back.UnmarshalText(d); err != nil {
			t.Fatal(err)
		}
		if back != f {
			t.Errorf("%s did not survive text round trip", f)
		}
		got, err := FromPath("doc" + f.Suffix())
		if err != nil || got != f {
			t.Errorf("FromPath(%q) = %s, %v", "doc"+f.Suffix(), got, err)
		}
	}
	if _, err := FromPath("doc.txt"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("expected ErrBadFormat, got %v", err)
	}
	if _, err := Format(42).MarshalText(); err == nil {
		t.Errorf("expected error for unknown format")
	}
}

func TestFor(t *testing.T) {
	for _, f := range AllFormats() {
		a, err := For(f)
		if err != nil {
			t.Fatal(err)
		}
		if a.Format() != f {
			t.Errorf("adapter for %s reports %s", f, a.Format())
		}
	}
	if _, err := For(Format(42)); !errors.Is(err, ErrBadFormat) {
		t.Errorf("expected ErrBadFormat, got %v", err)
	}
}
