package main

import (
	"fmt"

	"github.com/signadot/go-ucl/eval"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires an expression", cli.ErrUsage)
	}
	query := args[0]
	if query == "" {
		return fmt.Errorf("%w: invalid query \"\"", cli.ErrUsage)
	}
	l, err := cfg.loader()
	if err != nil {
		return err
	}
	env := eval.Env{}
	for k, v := range cfg.Vars {
		env[k] = v
	}
	return eachArg(l, cc.In, cc.Out, args[1:], cfg.encOpts(cc.Out), func(v any) (any, error) {
		return eval.Query(query, v, env)
	})
}
