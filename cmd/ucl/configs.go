package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/signadot/go-ucl"
	"github.com/signadot/go-ucl/encode"
	"github.com/signadot/go-ucl/format"
	"github.com/signadot/go-ucl/libdiff"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Flags   string `cli:"name=f aliases=flags desc='parser flags, names joined by | or an integer'"`
	Color   bool   `cli:"name=color desc='encode with color'"`
	WireOut bool   `cli:"name=wire desc='output in compact format'"`
	Gops    bool   `cli:"name=gops desc='start a gops diagnostics agent'"`

	J bool `cli:"name=j aliases=json desc='output json'"`
	Y bool `cli:"name=y aliases=yaml desc='output yaml'"`

	Vars map[string]string

	// OutFormat is the format the -o file name suggests.
	OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) loader() (ucl.Loader, error) {
	l := ucl.DefaultLoader()
	if cfg.Flags != "" {
		f, err := ucl.FlagsOf(cfg.Flags)
		if err != nil {
			return l, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		l.Flags = f
	}
	l.Vars = cfg.Vars
	return l, nil
}

func (cfg *MainConfig) format() format.Format {
	switch {
	case cfg.J:
		return format.JSONFormat
	case cfg.Y:
		return format.YAMLFormat
	case cfg.OutFormat != nil:
		return *cfg.OutFormat
	}
	return format.UCLFormat
}

// colors reports whether output to w is colored: -color when given,
// otherwise whether w is a terminal.
func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.format()),
		encode.EncodeWire(cfg.WireOut),
	}
	if cfg.format().IsUCL() && cfg.colors(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

func (cfg *MainConfig) diffColors(w io.Writer) *libdiff.Colors {
	if !cfg.colors(w) {
		return nil
	}
	return libdiff.NewColors()
}

func (cfg *MainConfig) defineOpt(_ *cli.Context, a string) (any, error) {
	if err := define(cfg.Vars, a); err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return 0, nil
}

func define(vars map[string]string, a string) error {
	name, val, ok := strings.Cut(a, "=")
	if !ok || name == "" {
		return fmt.Errorf("expected NAME=VALUE, got %q", a)
	}
	vars[name] = val
	return nil
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Quiet bool `cli:"name=q desc='only report differences by exit code'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	String bool `cli:"name=s desc='patch arg as string'"`

	Patch *cli.Command
}

type FlagsConfig struct {
	*MainConfig

	List *cli.Command
}
