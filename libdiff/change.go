package libdiff

type Op int

const (
	Insert Op = iota
	Delete
	Replace
	// Edit is a change of a string described by character edits.
	Edit
	// Keep marks unchanged text in string edits.
	Keep
)

func (o Op) String() string {
	switch o {
	case Insert:
		return "+"
	case Delete:
		return "-"
	case Replace:
		return "~"
	case Edit:
		return "%"
	case Keep:
		return "="
	default:
		return "?"
	}
}

// Change is one difference at Path, a path as accepted by eval.GetPath.
type Change struct {
	Path string
	Op   Op
	From any
	To   any
	// Edits holds the character edits of an Edit change.
	Edits []StringEdit
}

type StringEdit struct {
	Op   Op
	Text string
}
