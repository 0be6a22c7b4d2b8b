// Package ir provides the object model for UCL documents.
//
// # Overview
//
// A parsed document is a tree of [Node] values.  The tree is language
// agnostic: it records what the document said, not how a caller wants it
// represented.  Package gomap materializes it into plain Go values.
//
// # Node Types
//
// The Type field indicates the node's type:
//
//   - NullType: null value
//   - IntType: 64 bit signed integer (Int64)
//   - FloatType: double (Float64)
//   - StringType: byte string (String), may contain any byte
//   - BoolType: boolean (Bool)
//   - TimeType: a duration in seconds (Float64)
//   - ObjectType: ordered key/value pairs (Fields, Values)
//   - ArrayType: ordered values (Values)
//   - UserDataType: opaque bytes (Data)
//
// For ObjectType nodes, Fields[i] is the key for the value at Values[i].
// Keys are not unique at this layer; consumers decide what repeated keys
// mean.
//
// # Lifetime
//
// Every node is born holding one reference.  [Node.Ref] adds a reference
// and [Node.Unref] drops one; dropping the last releases the tree.  A
// released tree can still be inspected field by field but [Iter] refuses
// to walk it, which is how traversal failures surface to consumers.
package ir
