package eval

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/signadot/go-ucl/debug"
	"github.com/signadot/go-ucl/gomap"
)

type Env map[string]any

// Query evaluates input with the members of config and env as variables.
// env takes precedence over config members, and config names the whole
// configuration.
func Query(input string, config any, env Env) (any, error) {
	config = gomap.Stringify(config)
	e := Env{}
	if m, ok := config.(map[string]any); ok {
		for k, v := range m {
			e[k] = v
		}
	}
	for k, v := range env {
		e[k] = v
	}
	e["config"] = config
	program, err := expr.Compile(input, exprOpts(config)...)
	if err != nil {
		return nil, fmt.Errorf("could not compile %q: %w", input, err)
	}
	res, err := vm.Run(program, map[string]any(e))
	if err != nil {
		return nil, fmt.Errorf("could not evaluate %q: %w", input, err)
	}
	if debug.Eval() {
		debug.Logf("%q evaluated to %v\n", input, res)
	}
	return res, nil
}
