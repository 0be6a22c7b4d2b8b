package main

import (
	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	l, err := cfg.loader()
	if err != nil {
		return err
	}
	return eachArg(l, cc.In, cc.Out, args, cfg.encOpts(cc.Out), func(v any) (any, error) {
		return v, nil
	})
}
