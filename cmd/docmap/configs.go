package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/docmap/format"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='output with color'"`

	InFormat, OutFormat *format.Format

	// ContextLines is the number of unchanged lines shown around each
	// change by check.
	ContextLines int

	Out      string
	CloseOut func() error

	colorFromFile bool

	Main *cli.Command
}

// fileConfig is the content of a -config file.
type fileConfig struct {
	Input   *format.Format `yaml:"input"`
	Output  *format.Format `yaml:"output"`
	Color   *bool          `yaml:"color"`
	Context *int           `yaml:"context"`
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

// configOpt loads a YAML config file. Formats and color given as flags win
// over the file, whatever their order on the command line.
func (cfg *MainConfig) configOpt(cc *cli.Context, a string) (any, error) {
	d, err := os.ReadFile(a)
	if err != nil {
		return nil, err
	}
	fc := &fileConfig{}
	if err := yaml.Unmarshal(d, fc); err != nil {
		return nil, fmt.Errorf("%w: config %s: %w", cli.ErrUsage, a, err)
	}
	if fc.Input != nil && cfg.InFormat == nil {
		cfg.InFormat = fc.Input
	}
	if fc.Output != nil && cfg.OutFormat == nil {
		cfg.OutFormat = fc.Output
	}
	if fc.Color != nil && !cfg.colorSet() {
		cfg.Color = *fc.Color
		cfg.colorFromFile = true
	}
	if fc.Context != nil {
		cfg.ContextLines = *fc.Context
	}
	return nil, nil
}

func (cfg *MainConfig) colorSet() bool {
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		return opt.Value != nil
	}
	return false
}

// inFormat is the format of the input at path: -I if given, otherwise
// the one named by the file suffix.
func (cfg *MainConfig) inFormat(path string) (format.Format, error) {
	if cfg.InFormat != nil {
		return *cfg.InFormat, nil
	}
	if path == "-" {
		return 0, fmt.Errorf("%w: -I is required when reading stdin", cli.ErrUsage)
	}
	f, err := format.FromPath(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w (use -I)", cli.ErrUsage, err)
	}
	return f, nil
}

// outFormat is -O if given, otherwise in.
func (cfg *MainConfig) outFormat(in format.Format) format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	return in
}

func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color || cfg.colorFromFile {
		return cfg.Color
	}
	if cfg.colorSet() {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type ConvertConfig struct {
	*MainConfig

	Convert *cli.Command
}

type ViewConfig struct {
	*MainConfig

	Values bool `cli:"name=values desc='only show value nodes'"`
	View   *cli.Command
}

type CheckConfig struct {
	*MainConfig

	Quiet bool `cli:"name=q desc='only set the exit code'"`
	Check *cli.Command
}

type PatchConfig struct {
	*MainConfig

	PatchFile string `cli:"name=p aliases=patch desc='RFC 6902 JSON patch file'"`
	Patch     *cli.Command
}
