package ir

import (
	"strconv"
	"sync/atomic"
)

type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string
	Fields      []*Node
	Values      []*Node

	String  string
	Bool    bool
	Int64   int64
	Float64 float64
	Data    []byte

	// Priority is the priority of the chunk which defined the node, used
	// to resolve repeated keys.
	Priority int
	// Implicit marks an array built from repeated keys rather than
	// written with brackets.
	Implicit bool

	// refs counts references beyond the one every node is born with.
	refs     atomic.Int32
	released atomic.Bool
	gen      uint64
}

func FromString(v string) *Node {
	return FromStringAt(&Node{}, v)
}

func FromStringAt(p *Node, v string) *Node {
	p.Type = StringType
	p.String = v
	return p
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  IntType,
		Int64: v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    FloatType,
		Float64: f,
	}
}

// FromTime creates a time node holding secs seconds.
func FromTime(secs float64) *Node {
	return &Node{
		Type:    TimeType,
		Float64: secs,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func FromUserData(d []byte) *Node {
	return &Node{
		Type: UserDataType,
		Data: d,
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

func NewObject() *Node {
	return &Node{Type: ObjectType}
}

func NewArray() *Node {
	return &Node{Type: ArrayType}
}

type KeyVal struct {
	Key string
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	res := NewObject()
	for i := range kvs {
		res.Insert(kvs[i].Key, kvs[i].Val)
	}
	return res
}

func FromSlice(ySlice []*Node) *Node {
	res := NewArray()
	for _, y := range ySlice {
		res.Append(y)
	}
	return res
}

// Insert appends a key/value pair to an object.  Keys are not required to
// be unique.
func (y *Node) Insert(key string, v *Node) error {
	if y.Type != ObjectType {
		return ErrNotObj
	}
	i := len(y.Values)
	field := &Node{
		Type:        StringType,
		String:      key,
		Parent:      y,
		ParentIndex: i,
		ParentField: key,
	}
	v.Parent = y
	v.ParentIndex = i
	v.ParentField = key
	y.Fields = append(y.Fields, field)
	y.Values = append(y.Values, v)
	y.gen++
	return nil
}

// Append appends v to an array.
func (y *Node) Append(v *Node) error {
	if y.Type != ArrayType {
		return ErrNotArray
	}
	v.Parent = y
	v.ParentIndex = len(y.Values)
	v.ParentField = ""
	y.Values = append(y.Values, v)
	y.gen++
	return nil
}

// Replace replaces the i'th value of an object or array.
func (y *Node) Replace(i int, v *Node) {
	old := y.Values[i]
	v.Parent = y
	v.ParentIndex = i
	v.ParentField = old.ParentField
	y.Values[i] = v
	y.gen++
}

// Lookup returns the index of the last value under field, or -1.
func (y *Node) Lookup(field string) int {
	for i := len(y.Fields) - 1; i >= 0; i-- {
		if y.Fields[i].String == field {
			return i
		}
	}
	return -1
}

func Get(y *Node, field string) *Node {
	i := y.Lookup(field)
	if i < 0 {
		return nil
	}
	return y.Values[i]
}

func (y *Node) Len() int {
	return len(y.Values)
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.ParentField = y.ParentField
	dst.Type = y.Type
	dst.Priority = y.Priority
	dst.Implicit = y.Implicit
	dst.Values = make([]*Node, len(y.Values))
	if y.Type == ObjectType {
		dst.Fields = make([]*Node, len(y.Fields))
	}
	for i, yv := range y.Values {
		dstI := &Node{}
		yv.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dst.Values[i] = dstI
	}
	for i, yf := range y.Fields {
		dstI := &Node{}
		yf.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dst.Fields[i] = dstI
	}
	dst.String = y.String
	dst.Int64 = y.Int64
	dst.Float64 = y.Float64
	dst.Bool = y.Bool
	if y.Data != nil {
		dst.Data = append([]byte(nil), y.Data...)
	}
	return dst
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

// Ref takes an additional reference to the tree rooted at y.
func (y *Node) Ref() *Node {
	y.refs.Add(1)
	return y
}

// Unref drops a reference.  When the last reference is dropped the whole
// tree rooted at y is released and may no longer be iterated.
func (y *Node) Unref() {
	if y.refs.Add(-1) >= 0 {
		return
	}
	y.Visit(func(n *Node, isPost bool) (bool, error) {
		if !isPost {
			n.released.Store(true)
		}
		return true, nil
	})
}

func (y *Node) Released() bool {
	return y.released.Load()
}

// ScalarString renders a scalar node the way it would be written in a
// document.  Containers render as their type name.
func (y *Node) ScalarString() string {
	switch y.Type {
	case StringType:
		return y.String
	case IntType:
		return strconv.FormatInt(y.Int64, 10)
	case FloatType, TimeType:
		return strconv.FormatFloat(y.Float64, 'g', -1, 64)
	case BoolType:
		return strconv.FormatBool(y.Bool)
	case NullType:
		return "null"
	case UserDataType:
		return string(y.Data)
	default:
		return y.Type.String()
	}
}
