package main

import (
	"fmt"
	"io"

	"github.com/signadot/go-ucl/libdiff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	l, err := cfg.loader()
	if err != nil {
		return err
	}
	a, err := loadArg(l, cc.In, args[0])
	if err != nil {
		return err
	}
	b, err := loadArg(l, cc.In, args[1])
	if err != nil {
		return err
	}
	var w io.Writer = cc.Out
	if cfg.Quiet {
		w = io.Discard
	}
	differs, err := diffValues(w, a, b, cfg.diffColors(cc.Out))
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func diffValues(w io.Writer, a, b any, c *libdiff.Colors) (bool, error) {
	changes := libdiff.Diff(a, b)
	if len(changes) == 0 {
		return false, nil
	}
	if err := libdiff.Write(w, changes, c); err != nil {
		return false, fmt.Errorf("unable to write diff: %w", err)
	}
	return true, nil
}
