package token

import (
	"bytes"
	"errors"
	"math"
	"strconv"
)

type NumberKind int

const (
	NotNumber NumberKind = iota
	IntNumber
	FloatNumber
	TimeNumber
)

type Number struct {
	Kind  NumberKind
	Int   int64
	Float float64
}

var (
	byteMults = map[string]int64{
		"k": 1000, "m": 1000 * 1000, "g": 1000 * 1000 * 1000,
		"kb": 1 << 10, "mb": 1 << 20, "gb": 1 << 30,
	}
	timeMults = map[string]float64{
		"ms": 0.001, "s": 1, "min": 60, "h": 60 * 60,
		"d": 24 * 60 * 60, "w": 7 * 24 * 60 * 60, "y": 365 * 24 * 60 * 60,
	}
)

// ParseNumber recognizes a numeric atom: an optionally signed decimal or
// hex integer, or a float, followed by an optional multiplier (k, m, g,
// kb, mb, gb) or time suffix (ms, s, min, h, d, w, y).  Time suffixes are
// only recognized when allowTime is set.  An atom which is not entirely a
// number yields NotNumber and no error; a number which does not fit in 64
// bits yields ErrRange.
func ParseNumber(d []byte, allowTime bool) (Number, error) {
	i := 0
	if i < len(d) && (d[i] == '-' || d[i] == '+') {
		i++
	}
	neg := i > 0 && d[0] == '-'
	if len(d) > i+2 && d[i] == '0' && (d[i+1] == 'x' || d[i+1] == 'X') {
		hd := d[i+2:]
		if !allHex(hd) {
			return Number{}, nil
		}
		u, err := strconv.ParseUint(string(hd), 16, 64)
		if err != nil || (!neg && u > math.MaxInt64) || (neg && u > 1<<63) {
			return Number{}, ErrRange
		}
		v := int64(u)
		if neg {
			v = -v
		}
		return Number{Kind: IntNumber, Int: v}, nil
	}
	digits := asciiDigits(d[i:])
	if digits == 0 {
		return Number{}, nil
	}
	end := i + digits
	f := fract(d[end:])
	end += f
	e := exp(d[end:])
	end += e
	isFloat := f+e > 0
	num := string(d[:end])
	suffix := string(bytes.ToLower(d[end:]))

	if secs, ok := timeMults[suffix]; ok {
		if !allowTime {
			return Number{}, nil
		}
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return Number{}, rangeErr(err)
		}
		return Number{Kind: TimeNumber, Float: v * secs}, nil
	}
	mult, ok := byteMults[suffix]
	if !ok {
		if suffix != "" {
			return Number{}, nil
		}
		mult = 1
	}
	if isFloat {
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return Number{}, rangeErr(err)
		}
		return Number{Kind: FloatNumber, Float: v * float64(mult)}, nil
	}
	v, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return Number{}, rangeErr(err)
	}
	if mult != 1 {
		if v > math.MaxInt64/mult || v < math.MinInt64/mult {
			return Number{}, ErrRange
		}
		v *= mult
	}
	return Number{Kind: IntNumber, Int: v}, nil
}

func rangeErr(err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return ErrRange
	}
	return err
}

func asciiDigits(d []byte) int {
	i := 0
	for i < len(d) {
		if !asciiDigit(d[i]) {
			return i
		}
		i++
	}
	return i
}

func asciiDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func allHex(d []byte) bool {
	for _, c := range d {
		if c >= '0' && c <= '9' {
			continue
		}
		if c >= 'a' && c <= 'f' {
			continue
		}
		if c >= 'A' && c <= 'F' {
			continue
		}
		return false
	}
	return true
}

func exp(d []byte) int {
	if len(d) < 2 {
		return 0
	}
	switch d[0] {
	case 'e', 'E':
	default:
		return 0
	}
	i := 1
	switch d[1] {
	case '+', '-':
		i++
	default:
	}
	if i == len(d) {
		return 0
	}
	n := asciiDigits(d[i:])
	if n == 0 {
		return 0
	}
	return n + i
}

func fract(d []byte) int {
	if len(d) < 2 || d[0] != '.' {
		return 0
	}
	n := asciiDigits(d[1:])
	if n == 0 {
		// . must be followed by 1 or more digits
		return 0
	}
	return n + 1
}
