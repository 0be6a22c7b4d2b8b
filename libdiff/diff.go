package libdiff

import (
	"bytes"
	"fmt"
	"slices"
	"unicode/utf8"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/signadot/go-ucl/gomap"
)

// Diff returns the changes turning from into to, both values as produced
// by gomap.ToValue.  Equal values give no changes.
func Diff(from, to any) []Change {
	d := &differ{}
	d.diff("$", gomap.Stringify(from), gomap.Stringify(to))
	return d.changes
}

type differ struct {
	changes []Change
}

func (d *differ) add(c Change) {
	d.changes = append(d.changes, c)
}

func (d *differ) replace(path string, from, to any) {
	d.add(Change{Path: path, Op: Replace, From: from, To: to})
}

func (d *differ) diff(path string, from, to any) {
	switch f := from.(type) {
	case map[string]any:
		t, ok := to.(map[string]any)
		if !ok {
			d.replace(path, from, to)
			return
		}
		d.diffObject(path, f, t)
	case []any:
		t, ok := to.([]any)
		if !ok {
			d.replace(path, from, to)
			return
		}
		d.diffArray(path, f, t)
	case string:
		t, ok := to.(string)
		if !ok {
			d.replace(path, from, to)
			return
		}
		if f != t {
			d.diffString(path, f, t)
		}
	case []byte:
		t, ok := to.([]byte)
		if !ok || !bytes.Equal(f, t) {
			d.replace(path, from, to)
		}
	default:
		switch to.(type) {
		case map[string]any, []any, []byte:
			d.replace(path, from, to)
			return
		}
		if from != to {
			d.replace(path, from, to)
		}
	}
}

func (d *differ) diffObject(path string, from, to map[string]any) {
	keys := make([]string, 0, len(from)+len(to))
	for k := range from {
		keys = append(keys, k)
	}
	for k := range to {
		if _, ok := from[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		fv, inFrom := from[k]
		tv, inTo := to[k]
		kPath := fieldPath(path, k)
		switch {
		case !inTo:
			d.add(Change{Path: kPath, Op: Delete, From: fv})
		case !inFrom:
			d.add(Change{Path: kPath, Op: Insert, To: tv})
		default:
			d.diff(kPath, fv, tv)
		}
	}
}

// diffArray aligns the elements of from and to by diffing sequences of
// element summaries.  Aligned containers are diffed recursively and a
// delete followed by an insert is diffed as a modification.  Deletes are
// located by their index in from, everything else by the index in to.
func (d *differ) diffArray(path string, from, to []any) {
	m := map[string]rune{}
	fromRunes := summarize(m, from)
	toRunes := summarize(m, to)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)

	fi, ti := 0, 0
	var deleted []int
	flush := func() {
		for _, j := range deleted {
			d.add(Change{Path: indexPath(path, j), Op: Delete, From: from[j]})
		}
		deleted = deleted[:0]
	}
	for i := range diffs {
		diff := &diffs[i]
		n := utf8.RuneCountInString(diff.Text)
		switch diff.Type {
		case diffpatch.DiffEqual:
			flush()
			for range n {
				d.diff(indexPath(path, ti), from[fi], to[ti])
				fi++
				ti++
			}
		case diffpatch.DiffDelete:
			for range n {
				deleted = append(deleted, fi)
				fi++
			}
		case diffpatch.DiffInsert:
			for range n {
				if len(deleted) > 0 {
					d.diff(indexPath(path, ti), from[deleted[0]], to[ti])
					deleted = deleted[1:]
				} else {
					d.add(Change{Path: indexPath(path, ti), Op: Insert, To: to[ti]})
				}
				ti++
			}
		}
	}
	flush()
}

// summarize maps each element to a rune standing for its type, and for
// scalars its value, so that equal runes align.
func summarize(m map[string]rune, vs []any) []rune {
	res := make([]rune, len(vs))
	for i, v := range vs {
		var key string
		switch x := v.(type) {
		case map[string]any, []any:
			key = fmt.Sprintf("%T", x)
		default:
			key = fmt.Sprintf("%T-%v", x, x)
		}
		r, ok := m[key]
		if !ok {
			r = rune(len(m) + 1)
			if r >= 0xD800 {
				// skip surrogates, which do not survive a string round trip
				r += 0x800
			}
			m[key] = r
		}
		res[i] = r
	}
	return res
}
