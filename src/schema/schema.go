// Package schema describes the typed column tree an ORC writer encodes
// against: a recursive tagged value mirroring ORC's type system, with a
// depth-first preorder column-id numbering fixed at construction.
package schema

import "fmt"

// Kind identifies the variant of a Schema node.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBoolean
	KindByte
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindString
	KindBinary
	KindDate
	KindTimestamp
	KindDecimal
	KindList
	KindMap
	KindStruct
	KindUnion
)

func (k Kind) String() string {
	return []string{
		"invalid", "boolean", "byte", "short", "int", "long", "float", "double",
		"string", "binary", "date", "timestamp", "decimal", "list", "map", "struct", "union",
	}[k]
}

// Field names one member of a Struct, in declaration order.
type Field struct {
	Name string
	Type *Schema
}

// Schema is a recursive tagged value. Only the fields relevant to Kind are
// populated; the zero value of the others is ignored. Precision/Scale apply
// to KindDecimal; Elem to KindList; Key/Value to KindMap; Fields to
// KindStruct; Variants to KindUnion.
//
// ColumnID is assigned once, by Assign, in depth-first preorder starting at
// 0 for the root - every stream, statistics accumulator and stripe footer
// entry downstream is indexed by this id.
type Schema struct {
	Kind Kind

	Precision int
	Scale     int

	Elem *Schema

	Key   *Schema
	Value *Schema

	Fields   []Field
	Variants []*Schema

	ColumnID int
}

func Boolean() *Schema   { return &Schema{Kind: KindBoolean} }
func Byte() *Schema      { return &Schema{Kind: KindByte} }
func Short() *Schema     { return &Schema{Kind: KindShort} }
func Int() *Schema       { return &Schema{Kind: KindInt} }
func Long() *Schema      { return &Schema{Kind: KindLong} }
func Float() *Schema     { return &Schema{Kind: KindFloat} }
func Double() *Schema    { return &Schema{Kind: KindDouble} }
func String() *Schema    { return &Schema{Kind: KindString} }
func Binary() *Schema    { return &Schema{Kind: KindBinary} }
func Date() *Schema      { return &Schema{Kind: KindDate} }
func Timestamp() *Schema { return &Schema{Kind: KindTimestamp} }

// Decimal builds a Decimal(precision, scale) node. Only precision <= 18
// (the Decimal64 path) is supported by this writer's data nodes.
func Decimal(precision, scale int) *Schema {
	return &Schema{Kind: KindDecimal, Precision: precision, Scale: scale}
}

func List(elem *Schema) *Schema {
	return &Schema{Kind: KindList, Elem: elem}
}

func Map(key, value *Schema) *Schema {
	return &Schema{Kind: KindMap, Key: key, Value: value}
}

func Struct(fields ...Field) *Schema {
	return &Schema{Kind: KindStruct, Fields: fields}
}

func Union(variants ...*Schema) *Schema {
	return &Schema{Kind: KindUnion, Variants: variants}
}

// Assign walks the tree in depth-first preorder, numbering every node
// starting at 0 for the root, and returns the total column count. Call
// once, immediately after building the tree; the writer treats the tree
// shape and column-id assignment as fixed thereafter.
func Assign(root *Schema) int {
	next := 0
	var walk func(n *Schema)
	walk = func(n *Schema) {
		n.ColumnID = next
		next++
		switch n.Kind {
		case KindList:
			walk(n.Elem)
		case KindMap:
			walk(n.Key)
			walk(n.Value)
		case KindStruct:
			for i := range n.Fields {
				walk(n.Fields[i].Type)
			}
		case KindUnion:
			for _, v := range n.Variants {
				walk(v)
			}
		}
	}
	walk(root)
	return next
}

// Walk visits every node of the tree in the same depth-first preorder
// Assign uses, invoking fn on each. Column ids must already be assigned.
func Walk(root *Schema, fn func(*Schema)) {
	fn(root)
	switch root.Kind {
	case KindList:
		Walk(root.Elem, fn)
	case KindMap:
		Walk(root.Key, fn)
		Walk(root.Value, fn)
	case KindStruct:
		for i := range root.Fields {
			Walk(root.Fields[i].Type, fn)
		}
	case KindUnion:
		for _, v := range root.Variants {
			Walk(v, fn)
		}
	}
}

// Validate reports a schema mismatch if the node's Kind can never be
// encoded by this writer's data nodes (e.g. a Decimal with precision > 18,
// which falls outside the Decimal64 path this core implements).
func Validate(n *Schema) error {
	var err error
	Walk(n, func(s *Schema) {
		if err != nil {
			return
		}
		if s.Kind == KindInvalid {
			err = fmt.Errorf("schema: column %d has an invalid kind", s.ColumnID)
			return
		}
		if s.Kind == KindDecimal && s.Precision > 18 {
			err = fmt.Errorf("schema: column %d is Decimal(%d,%d), precision > 18 is outside the Decimal64 path", s.ColumnID, s.Precision, s.Scale)
		}
	})
	return err
}
