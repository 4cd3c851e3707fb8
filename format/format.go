package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Format int

const (
	XMLFormat Format = iota
	FormFormat
	YAMLFormat
	JSONFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"x":          XMLFormat,
		"xml":        XMLFormat,
		"f":          FormFormat,
		"form":       FormFormat,
		"urlencoded": FormFormat,
		"y":          YAMLFormat,
		"yaml":       YAMLFormat,
		"yml":        YAMLFormat,
		"j":          JSONFormat,
		"json":       JSONFormat,
	}[strings.ToLower(v)]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case XMLFormat:
		return []byte("xml"), nil
	case FormFormat:
		return []byte("form"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	case JSONFormat:
		return []byte("json"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case XMLFormat:
		return ".xml"
	case FormFormat:
		return ".form"
	case YAMLFormat:
		return ".yaml"
	case JSONFormat:
		return ".json"
	default:
		return ""
	}
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{XMLFormat, FormFormat, YAMLFormat, JSONFormat}
}

// FromPath guesses the format of a file from its extension.
func FromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == ".yml" {
		return YAMLFormat, nil
	}
	for _, f := range AllFormats() {
		if f.Suffix() == ext {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: no format for %q", ErrBadFormat, path)
}

// SyntaxError reports input that an adapter could not parse.
type SyntaxError struct {
	Format Format
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s syntax error: %v", e.Format, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
