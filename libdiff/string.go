package libdiff

import (
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// diffString records an Edit change when from and to mostly agree and a
// Replace otherwise.
func (d *differ) diffString(path, from, to string) {
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(from, to, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	diffSize := 0
	edits := make([]StringEdit, 0, len(diffs))
	for i := range diffs {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffInsert:
			edits = append(edits, StringEdit{Op: Insert, Text: diff.Text})
			diffSize += len(diff.Text)
		case diffpatch.DiffDelete:
			edits = append(edits, StringEdit{Op: Delete, Text: diff.Text})
			diffSize += len(diff.Text)
		case diffpatch.DiffEqual:
			edits = append(edits, StringEdit{Op: Keep, Text: diff.Text})
		}
	}
	if diffSize > min(len(from), len(to))/2 {
		d.replace(path, from, to)
		return
	}
	d.add(Change{Path: path, Op: Edit, From: from, To: to, Edits: edits})
}
