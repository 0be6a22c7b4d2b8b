package parse

// Flags select grammar engine behavior.  The values match libucl's parser
// flags.
type Flags int

const (
	// KeyLowercase lowercases object keys.
	KeyLowercase Flags = 1 << 0
	// NoTime leaves time suffixed numbers as strings.
	NoTime Flags = 1 << 2
	// NoImplicitArrays turns repeated keys into explicit arrays.
	NoImplicitArrays Flags = 1 << 3
	// DisableMacro makes macro directives inert.
	DisableMacro Flags = 1 << 5
	// NoFileVars disables the built in FILENAME and CURDIR variables.
	NoFileVars Flags = 1 << 6
)

// AllFlags is the set of flags the grammar engine recognizes.
const AllFlags = KeyLowercase | NoTime | NoImplicitArrays | DisableMacro | NoFileVars

func (f Flags) Has(g Flags) bool {
	return f&g == g
}
