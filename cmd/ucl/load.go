package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/go-ucl"
	"github.com/signadot/go-ucl/encode"
)

// loadArg loads the config file at arg, or reads in when arg is "-".
func loadArg(l ucl.Loader, in io.Reader, arg string) (any, error) {
	if arg != "-" {
		v, err := l.LoadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", arg, err)
		}
		return v, nil
	}
	if in == nil {
		in = os.Stdin
	}
	d, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("error reading: %w", err)
	}
	v, err := l.Parse(d)
	if err != nil {
		return nil, fmt.Errorf("error loading stdin: %w", err)
	}
	return v, nil
}

// eachArg loads each of args, or stdin when there are none, and writes
// what f returns for it to w, separating documents.
func eachArg(l ucl.Loader, in io.Reader, w io.Writer, args []string, opts []encode.EncodeOption, f func(any) (any, error)) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, arg := range args {
		v, err := loadArg(l, in, arg)
		if err != nil {
			return err
		}
		res, err := f(v)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", arg, err)
		}
		if i > 0 {
			if _, err := w.Write([]byte("---\n")); err != nil {
				return err
			}
		}
		if err := encode.Encode(res, w, opts...); err != nil {
			return fmt.Errorf("error encoding result %d: %w", i, err)
		}
	}
	return nil
}
