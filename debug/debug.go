package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse   bool
	Macro   bool
	Vars    bool
	Convert bool
	Eval    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("UCL_DEBUG_PARSE")
	d.Macro = boolEnv("UCL_DEBUG_MACRO")
	d.Vars = boolEnv("UCL_DEBUG_VARS")
	d.Convert = boolEnv("UCL_DEBUG_CONVERT")
	d.Eval = boolEnv("UCL_DEBUG_EVAL")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Macro() bool {
	return d.Macro
}
func Vars() bool {
	return d.Vars
}
func Convert() bool {
	return d.Convert
}
func Eval() bool {
	return d.Eval
}
