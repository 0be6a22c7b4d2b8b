package ucl

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/signadot/go-ucl/parse"
)

// Flags is a bitmask of loading options.  Callers combine the named
// constants with |.
type Flags int

const (
	// KeyLowercase lowercases object keys.
	KeyLowercase Flags = Flags(parse.KeyLowercase)
	// NoTime leaves time suffixed values such as 10s as strings.
	NoTime Flags = Flags(parse.NoTime)
	// DisableMacro makes .include and the other directives inert.
	DisableMacro Flags = Flags(parse.DisableMacro)
	// NoFileVars keeps FILENAME and CURDIR from being defined.
	NoFileVars Flags = Flags(parse.NoFileVars)
	// KeySymbol materializes object keys as gomap.Symbol.
	KeySymbol Flags = 1 << 10
)

// parserMask is the set of caller flags the grammar engine understands.
const parserMask = KeyLowercase | NoTime | DisableMacro | NoFileVars

var flagNames = []struct {
	name string
	flag Flags
}{
	{"KEY_LOWERCASE", KeyLowercase},
	{"NO_TIME", NoTime},
	{"DISABLE_MACRO", DisableMacro},
	{"NO_FILEVARS", NoFileVars},
	{"KEY_SYMBOL", KeySymbol},
}

// FlagNames returns the names of the flags and their values.
func FlagNames() map[string]Flags {
	res := make(map[string]Flags, len(flagNames))
	for _, fn := range flagNames {
		res[fn.name] = fn.flag
	}
	return res
}

func (f Flags) String() string {
	if f == 0 {
		return "0"
	}
	var parts []string
	rest := f
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			parts = append(parts, fn.name)
			rest &^= fn.flag
		}
	}
	if rest != 0 {
		parts = append(parts, "0x"+strconv.FormatUint(uint64(rest), 16))
	}
	return strings.Join(parts, "|")
}

var defaultFlags atomic.Int64

// DefaultFlags returns the flags used when none are given.  It is 0 until
// changed by SetDefaultFlags.
func DefaultFlags() Flags {
	return Flags(defaultFlags.Load())
}

// SetDefaultFlags changes the flags used when none are given.  Concurrent
// callers see either the old or the new value; nothing orders a change
// with respect to loads already in progress.
func SetDefaultFlags(f Flags) {
	defaultFlags.Store(int64(f))
}

// SetDefaultFlagsValue is SetDefaultFlags for a dynamically typed value,
// converted with FlagsOf.
func SetDefaultFlagsValue(v any) error {
	f, err := FlagsOf(v)
	if err != nil {
		return err
	}
	SetDefaultFlags(f)
	return nil
}

// EffectiveParserFlags returns the grammar engine flags for requested.
// Bits the engine does not know, including KeySymbol, are dropped and
// repeated keys always build explicit arrays.
func EffectiveParserFlags(requested Flags) parse.Flags {
	return parse.Flags(requested&parserMask) | parse.NoImplicitArrays
}

// FlagsOf converts a dynamically typed flags argument: any Go integer, a
// Flags value, or flag names separated by '|' such as
// "KEY_SYMBOL|NO_TIME".
func FlagsOf(v any) (Flags, error) {
	switch x := v.(type) {
	case Flags:
		return x, nil
	case int:
		return Flags(x), nil
	case int8:
		return Flags(x), nil
	case int16:
		return Flags(x), nil
	case int32:
		return Flags(x), nil
	case int64:
		return Flags(x), nil
	case uint:
		return Flags(x), nil
	case uint8:
		return Flags(x), nil
	case uint16:
		return Flags(x), nil
	case uint32:
		return Flags(x), nil
	case uint64:
		return Flags(x), nil
	case uintptr:
		return Flags(x), nil
	case string:
		return flagsOfNames(x)
	default:
		return 0, fmt.Errorf("%w: flags must be an integer bitmask, got %T", ErrInvalidArgument, v)
	}
}

func flagsOfNames(s string) (Flags, error) {
	var res Flags
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	names := FlagNames()
	for _, part := range strings.Split(s, "|") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if f, ok := names[part]; ok {
			res |= f
			continue
		}
		if n, err := strconv.ParseInt(part, 0, 64); err == nil {
			res |= Flags(n)
			continue
		}
		n, err := strconv.ParseUint(part, 0, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: unknown flag %q", ErrInvalidArgument, part)
		}
		res |= Flags(n)
	}
	return res, nil
}
