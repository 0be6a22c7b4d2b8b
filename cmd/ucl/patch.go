package main

import (
	"bytes"
	"fmt"

	"github.com/signadot/go-ucl"
	"github.com/signadot/go-ucl/encode"
	"github.com/signadot/go-ucl/format"

	"github.com/scott-cotton/cli"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-json"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch argument", cli.ErrUsage)
	}
	l, err := cfg.loader()
	if err != nil {
		return err
	}
	ops, err := getPatch(cfg, l, args[0])
	if err != nil {
		return err
	}
	return eachArg(l, cc.In, cc.Out, args[1:], cfg.encOpts(cc.Out), func(v any) (any, error) {
		return applyPatch(ops, v)
	})
}

// getPatch loads a patch document, written in UCL or JSON, from the file
// at arg or from arg itself under -s.
func getPatch(cfg *PatchConfig, l ucl.Loader, arg string) (jsonpatch.Patch, error) {
	var (
		v   any
		err error
	)
	if cfg.String {
		v, err = l.ParseString(arg)
	} else {
		v, err = l.LoadFile(arg)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: error loading patch: %w", cli.ErrUsage, err)
	}
	d, err := toJSON(v)
	if err != nil {
		return nil, err
	}
	ops, err := jsonpatch.DecodePatch(d)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid patch: %w", cli.ErrUsage, err)
	}
	return ops, nil
}

func applyPatch(ops jsonpatch.Patch, v any) (any, error) {
	d, err := toJSON(v)
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(d)
	if err != nil {
		return nil, fmt.Errorf("error applying patch: %w", err)
	}
	return fromJSON(out)
}

func toJSON(v any) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	err := encode.Encode(v, buf, encode.EncodeFormat(format.JSONFormat), encode.EncodeWire(true))
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fromJSON decodes d keeping integers as int64.
func fromJSON(d []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("error decoding patch result: %w", err)
	}
	return numbers(v), nil
}

func numbers(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			x[k] = numbers(e)
		}
	case []any:
		for i, e := range x {
			x[i] = numbers(e)
		}
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		f, _ := x.Float64()
		return f
	}
	return v
}
