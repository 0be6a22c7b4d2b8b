package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/signadot/go-ucl"

	"github.com/scott-cotton/cli"
)

func flags(cfg *FlagsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.List.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: flags takes no arguments", cli.ErrUsage)
	}
	return writeFlags(cc.Out)
}

func writeFlags(w io.Writer) error {
	names := ucl.FlagNames()
	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		return int(names[a]) - int(names[b])
	})
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%-16s %#x\n", k, int(names[k])); err != nil {
			return err
		}
	}
	return nil
}
