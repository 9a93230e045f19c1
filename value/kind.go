// Package value implements the XISF Property value: a tagged union ("sum
// type") over the forty scalar, complex, string, timestamp, vector and
// matrix variants the format defines. A Value's Kind fully determines which
// accessor is valid; calling the wrong accessor for the active Kind returns
// an error rather than panicking or silently returning a zero value, per the
// spec's tagged-union invariant.
//
// Dispatch throughout this package is a single switch on Kind, not an open
// type hierarchy, so adding or auditing a variant means touching one
// exhaustive switch rather than hunting down implementations scattered
// across files.
package value

import "fmt"

// Kind names one of the 40 Value variants.
type Kind uint8

const (
	Monostate Kind = iota
	Boolean
	Int8
	UInt8
	Int16
	UInt16
	Int32
	UInt32
	Int64
	UInt64
	Float32
	Float64
	Complex32
	Complex64
	String
	TimePoint

	I8Vector
	UI8Vector
	I16Vector
	UI16Vector
	I32Vector
	UI32Vector
	I64Vector
	UI64Vector
	F32Vector
	F64Vector
	C32Vector
	C64Vector

	I8Matrix
	UI8Matrix
	I16Matrix
	UI16Matrix
	I32Matrix
	UI32Matrix
	I64Matrix
	UI64Matrix
	F32Matrix
	F64Matrix
	C32Matrix
	C64Matrix
)

// kindNames is the XISF wire name for each Kind, used for the Property
// "type" attribute.
//
// NOTE: the original implementation this format was distilled from aliased
// F32Matrix to the wire name "I8Matrix" and F64Matrix to "UI8Matrix" — a
// source defect. This table does not reproduce it: F32Matrix and F64Matrix
// round-trip under their own names.
var kindNames = [...]string{
	Monostate:  "Monostate",
	Boolean:    "Boolean",
	Int8:       "Int8",
	UInt8:      "UInt8",
	Int16:      "Int16",
	UInt16:     "UInt16",
	Int32:      "Int32",
	UInt32:     "UInt32",
	Int64:      "Int64",
	UInt64:     "UInt64",
	Float32:    "Float32",
	Float64:    "Float64",
	Complex32:  "Complex32",
	Complex64:  "Complex64",
	String:     "String",
	TimePoint:  "TimePoint",
	I8Vector:   "I8Vector",
	UI8Vector:  "UI8Vector",
	I16Vector:  "I16Vector",
	UI16Vector: "UI16Vector",
	I32Vector:  "I32Vector",
	UI32Vector: "UI32Vector",
	I64Vector:  "I64Vector",
	UI64Vector: "UI64Vector",
	F32Vector:  "F32Vector",
	F64Vector:  "F64Vector",
	C32Vector:  "C32Vector",
	C64Vector:  "C64Vector",
	I8Matrix:   "I8Matrix",
	UI8Matrix:  "UI8Matrix",
	I16Matrix:  "I16Matrix",
	UI16Matrix: "UI16Matrix",
	I32Matrix:  "I32Matrix",
	UI32Matrix: "UI32Matrix",
	I64Matrix:  "I64Matrix",
	UI64Matrix: "UI64Matrix",
	F32Matrix:  "F32Matrix",
	F64Matrix:  "F64Matrix",
	C32Matrix:  "C32Matrix",
	C64Matrix:  "C64Matrix",
}

var kindByName map[string]Kind

func init() {
	kindByName = make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		kindByName[name] = Kind(k)
	}
}

// String returns the XISF wire name for k.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind resolves a wire type name to a Kind. An unrecognized name MUST
// abort the enclosing property parse rather than silently producing
// Monostate (spec section 4.4); callers check the second return value.
func ParseKind(name string) (Kind, bool) {
	k, ok := kindByName[name]

	return k, ok
}

// IsVector reports whether k is one of the twelve dense-vector variants.
func (k Kind) IsVector() bool {
	return k >= I8Vector && k <= C64Vector
}

// IsMatrix reports whether k is one of the twelve dense-matrix variants.
func (k Kind) IsMatrix() bool {
	return k >= I8Matrix && k <= C64Matrix
}

// ElementSize returns the size in bytes of one scalar element of the
// vector/matrix kind k (e.g. UI16Vector -> 2, C64Matrix -> 16). Panics if k
// is not a vector or matrix kind; callers only reach this path after
// dispatching on IsVector/IsMatrix.
func (k Kind) ElementSize() int {
	switch k {
	case I8Vector, UI8Vector, I8Matrix, UI8Matrix:
		return 1
	case I16Vector, UI16Vector, I16Matrix, UI16Matrix:
		return 2
	case I32Vector, UI32Vector, I32Matrix, UI32Matrix, F32Vector, F32Matrix:
		return 4
	case I64Vector, UI64Vector, I64Matrix, UI64Matrix, F64Vector, F64Matrix, C32Vector, C32Matrix:
		return 8
	case C64Vector, C64Matrix:
		return 16
	default:
		panic(fmt.Sprintf("value: ElementSize: %v is not a vector/matrix kind", k))
	}
}
