package value

import (
	"fmt"
	"time"
)

// Value is the tagged union itself. The zero Value is Monostate.
//
// Only the fields matching the active Kind are meaningful; this is enforced
// at the API boundary (constructors set exactly the right fields, accessors
// check Kind before reading them), not by the zero value.
type Value struct {
	kind Kind

	boolVal bool
	intVal  int64  // backs Int8/16/32/64
	uintVal uint64 // backs UInt8/16/32/64
	f32Val  float32
	f64Val  float64
	reVal   float64 // complex real part (width tracked by kind)
	imVal   float64 // complex imaginary part
	strVal  string
	timeVal time.Time

	vecData []byte // raw little-endian element bytes for vector/matrix kinds
	rows    int
	cols    int
}

// Kind returns the active variant.
func (v Value) Kind() Kind { return v.kind }

// errWrongKind reports an attempt to read a Value of kind v.kind as want.
func (v Value) errWrongKind(want Kind) error {
	return fmt.Errorf("value: cannot read %v as %v", v.kind, want)
}

// NewMonostate returns the empty variant.
func NewMonostate() Value { return Value{kind: Monostate} }

// NewBoolean constructs a Boolean value.
func NewBoolean(b bool) Value { return Value{kind: Boolean, boolVal: b} }

// AsBoolean returns the Boolean payload.
func (v Value) AsBoolean() (bool, error) {
	if v.kind != Boolean {
		return false, v.errWrongKind(Boolean)
	}

	return v.boolVal, nil
}

// NewInt8, NewUInt8, ... construct the eight integer scalar variants.
func NewInt8(x int8) Value   { return Value{kind: Int8, intVal: int64(x)} }
func NewUInt8(x uint8) Value { return Value{kind: UInt8, uintVal: uint64(x)} }

func NewInt16(x int16) Value   { return Value{kind: Int16, intVal: int64(x)} }
func NewUInt16(x uint16) Value { return Value{kind: UInt16, uintVal: uint64(x)} }

func NewInt32(x int32) Value   { return Value{kind: Int32, intVal: int64(x)} }
func NewUInt32(x uint32) Value { return Value{kind: UInt32, uintVal: uint64(x)} }

func NewInt64(x int64) Value   { return Value{kind: Int64, intVal: x} }
func NewUInt64(x uint64) Value { return Value{kind: UInt64, uintVal: x} }

// AsInt8 returns the Int8 payload, and so on for each integer width.
func (v Value) AsInt8() (int8, error) {
	if v.kind != Int8 {
		return 0, v.errWrongKind(Int8)
	}

	return int8(v.intVal), nil
}

func (v Value) AsUInt8() (uint8, error) {
	if v.kind != UInt8 {
		return 0, v.errWrongKind(UInt8)
	}

	return uint8(v.uintVal), nil
}

func (v Value) AsInt16() (int16, error) {
	if v.kind != Int16 {
		return 0, v.errWrongKind(Int16)
	}

	return int16(v.intVal), nil
}

func (v Value) AsUInt16() (uint16, error) {
	if v.kind != UInt16 {
		return 0, v.errWrongKind(UInt16)
	}

	return uint16(v.uintVal), nil
}

func (v Value) AsInt32() (int32, error) {
	if v.kind != Int32 {
		return 0, v.errWrongKind(Int32)
	}

	return int32(v.intVal), nil
}

func (v Value) AsUInt32() (uint32, error) {
	if v.kind != UInt32 {
		return 0, v.errWrongKind(UInt32)
	}

	return uint32(v.uintVal), nil
}

func (v Value) AsInt64() (int64, error) {
	if v.kind != Int64 {
		return 0, v.errWrongKind(Int64)
	}

	return v.intVal, nil
}

func (v Value) AsUInt64() (uint64, error) {
	if v.kind != UInt64 {
		return 0, v.errWrongKind(UInt64)
	}

	return v.uintVal, nil
}

// NewFloat32 and NewFloat64 construct the float scalar variants.
func NewFloat32(x float32) Value { return Value{kind: Float32, f32Val: x} }
func NewFloat64(x float64) Value { return Value{kind: Float64, f64Val: x} }

func (v Value) AsFloat32() (float32, error) {
	if v.kind != Float32 {
		return 0, v.errWrongKind(Float32)
	}

	return v.f32Val, nil
}

func (v Value) AsFloat64() (float64, error) {
	if v.kind != Float64 {
		return 0, v.errWrongKind(Float64)
	}

	return v.f64Val, nil
}

// NewComplex32 and NewComplex64 construct the complex scalar variants from a
// real/imaginary pair in the matching float width.
func NewComplex32(re, im float32) Value {
	return Value{kind: Complex32, reVal: float64(re), imVal: float64(im)}
}

func NewComplex64(re, im float64) Value {
	return Value{kind: Complex64, reVal: re, imVal: im}
}

func (v Value) AsComplex32() (re, im float32, err error) {
	if v.kind != Complex32 {
		return 0, 0, v.errWrongKind(Complex32)
	}

	return float32(v.reVal), float32(v.imVal), nil
}

func (v Value) AsComplex64() (re, im float64, err error) {
	if v.kind != Complex64 {
		return 0, 0, v.errWrongKind(Complex64)
	}

	return v.reVal, v.imVal, nil
}

// NewString constructs a String value.
func NewString(s string) Value { return Value{kind: String, strVal: s} }

func (v Value) AsString() (string, error) {
	if v.kind != String {
		return "", v.errWrongKind(String)
	}

	return v.strVal, nil
}

// NewTimePoint constructs a TimePoint value. The instant is normalized to
// UTC with second precision, matching the wire format's resolution.
func NewTimePoint(t time.Time) Value {
	return Value{kind: TimePoint, timeVal: t.UTC().Truncate(time.Second)}
}

func (v Value) AsTimePoint() (time.Time, error) {
	if v.kind != TimePoint {
		return time.Time{}, v.errWrongKind(TimePoint)
	}

	return v.timeVal, nil
}
