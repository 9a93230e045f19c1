package value

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Vector and matrix kinds store their elements as raw little-endian bytes
// in vecData, matching the wire encoding used in a DataBlock (spec section
// 4.4). Matrices are row-major; rows/cols are recorded alongside the bytes
// so the accessor can reshape without re-deriving dimensions from length
// and element size alone (ambiguous for non-square matrices of length 1).

func newVector(kind Kind, elemBytes []byte) Value {
	return Value{kind: kind, vecData: elemBytes, rows: 1, cols: len(elemBytes) / kind.ElementSize()}
}

func newMatrix(kind Kind, rows, cols int, elemBytes []byte) Value {
	return Value{kind: kind, vecData: elemBytes, rows: rows, cols: cols}
}

// VectorFromBytes builds a vector Value of the given kind directly from
// raw little-endian element bytes, e.g. as fetched from a DataBlock. The
// byte count must be a multiple of kind's element size.
func VectorFromBytes(kind Kind, data []byte) (Value, error) {
	if !kind.IsVector() {
		return Value{}, fmt.Errorf("value: %v is not a vector kind", kind)
	}

	if len(data)%kind.ElementSize() != 0 {
		return Value{}, fmt.Errorf("value: %d bytes is not a multiple of %v's element size %d", len(data), kind, kind.ElementSize())
	}

	return newVector(kind, append([]byte(nil), data...)), nil
}

// MatrixFromBytes builds a matrix Value of the given kind, shape and raw
// little-endian row-major element bytes, as fetched from a DataBlock.
func MatrixFromBytes(kind Kind, rows, cols int, data []byte) (Value, error) {
	if !kind.IsMatrix() {
		return Value{}, fmt.Errorf("value: %v is not a matrix kind", kind)
	}

	want := rows * cols * kind.ElementSize()
	if len(data) != want {
		return Value{}, fmt.Errorf("value: matrix %v expects %d bytes for %dx%d, got %d", kind, want, rows, cols, len(data))
	}

	return newMatrix(kind, rows, cols, append([]byte(nil), data...)), nil
}

func (v Value) checkVector(want Kind) error {
	if v.kind != want {
		return v.errWrongKind(want)
	}

	return nil
}

func (v Value) checkMatrix(want Kind) error {
	if v.kind != want {
		return v.errWrongKind(want)
	}

	return nil
}

// Len returns the element count of a vector, or rows*cols of a matrix.
func (v Value) Len() int {
	if v.kind.IsVector() {
		return v.cols
	}

	if v.kind.IsMatrix() {
		return v.rows * v.cols
	}

	return 0
}

// Dims returns the row and column count of a matrix Value. Vectors report
// (1, length).
func (v Value) Dims() (rows, cols int) { return v.rows, v.cols }

// RawBytes returns the little-endian element bytes backing a vector or
// matrix Value, without copying. Callers that retain it must treat it as
// read-only.
func (v Value) RawBytes() []byte { return v.vecData }

func int8Bytes(vals []int8) []byte {
	out := make([]byte, len(vals))
	for i, x := range vals {
		out[i] = byte(x)
	}

	return out
}

func bytesToInt8(b []byte) []int8 {
	out := make([]int8, len(b))
	for i, x := range b {
		out[i] = int8(x)
	}

	return out
}

func uint16Bytes(vals []uint16) []byte {
	out := make([]byte, len(vals)*2)
	for i, x := range vals {
		binary.LittleEndian.PutUint16(out[i*2:], x)
	}

	return out
}

func bytesToUint16(b []byte) []uint16 {
	out := make([]uint16, len(b)/2)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(b[i*2:])
	}

	return out
}

func int16Bytes(vals []int16) []byte {
	u := make([]uint16, len(vals))
	for i, x := range vals {
		u[i] = uint16(x)
	}

	return uint16Bytes(u)
}

func bytesToInt16(b []byte) []int16 {
	u := bytesToUint16(b)
	out := make([]int16, len(u))
	for i, x := range u {
		out[i] = int16(x)
	}

	return out
}

func uint32Bytes(vals []uint32) []byte {
	out := make([]byte, len(vals)*4)
	for i, x := range vals {
		binary.LittleEndian.PutUint32(out[i*4:], x)
	}

	return out
}

func bytesToUint32(b []byte) []uint32 {
	out := make([]uint32, len(b)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(b[i*4:])
	}

	return out
}

func int32Bytes(vals []int32) []byte {
	u := make([]uint32, len(vals))
	for i, x := range vals {
		u[i] = uint32(x)
	}

	return uint32Bytes(u)
}

func bytesToInt32(b []byte) []int32 {
	u := bytesToUint32(b)
	out := make([]int32, len(u))
	for i, x := range u {
		out[i] = int32(x)
	}

	return out
}

func uint64Bytes(vals []uint64) []byte {
	out := make([]byte, len(vals)*8)
	for i, x := range vals {
		binary.LittleEndian.PutUint64(out[i*8:], x)
	}

	return out
}

func bytesToUint64(b []byte) []uint64 {
	out := make([]uint64, len(b)/8)
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(b[i*8:])
	}

	return out
}

func int64Bytes(vals []int64) []byte {
	u := make([]uint64, len(vals))
	for i, x := range vals {
		u[i] = uint64(x)
	}

	return uint64Bytes(u)
}

func bytesToInt64(b []byte) []int64 {
	u := bytesToUint64(b)
	out := make([]int64, len(u))
	for i, x := range u {
		out[i] = int64(x)
	}

	return out
}

func float32Bytes(vals []float32) []byte {
	u := make([]uint32, len(vals))
	for i, x := range vals {
		u[i] = math.Float32bits(x)
	}

	return uint32Bytes(u)
}

func bytesToFloat32(b []byte) []float32 {
	u := bytesToUint32(b)
	out := make([]float32, len(u))
	for i, x := range u {
		out[i] = math.Float32frombits(x)
	}

	return out
}

func float64Bytes(vals []float64) []byte {
	u := make([]uint64, len(vals))
	for i, x := range vals {
		u[i] = math.Float64bits(x)
	}

	return uint64Bytes(u)
}

func bytesToFloat64(b []byte) []float64 {
	u := bytesToUint64(b)
	out := make([]float64, len(u))
	for i, x := range u {
		out[i] = math.Float64frombits(x)
	}

	return out
}

// complex32 pairs are stored as two consecutive float32 (re, im); complex64
// pairs as two consecutive float64.

func complex64Bytes(vals []complex64) []byte {
	flat := make([]float32, 0, len(vals)*2)
	for _, c := range vals {
		flat = append(flat, real(c), imag(c))
	}

	return float32Bytes(flat)
}

func bytesToComplex64(b []byte) []complex64 {
	flat := bytesToFloat32(b)
	out := make([]complex64, len(flat)/2)
	for i := range out {
		out[i] = complex(flat[i*2], flat[i*2+1])
	}

	return out
}

func complex128Bytes(vals []complex128) []byte {
	flat := make([]float64, 0, len(vals)*2)
	for _, c := range vals {
		flat = append(flat, real(c), imag(c))
	}

	return float64Bytes(flat)
}

func bytesToComplex128(b []byte) []complex128 {
	flat := bytesToFloat64(b)
	out := make([]complex128, len(flat)/2)
	for i := range out {
		out[i] = complex(flat[i*2], flat[i*2+1])
	}

	return out
}

// Vector constructors and accessors, one pair per numeric scalar type.

func NewI8Vector(vals []int8) Value     { return newVector(I8Vector, int8Bytes(vals)) }
func NewUI8Vector(vals []uint8) Value   { return newVector(UI8Vector, append([]byte(nil), vals...)) }
func NewI16Vector(vals []int16) Value   { return newVector(I16Vector, int16Bytes(vals)) }
func NewUI16Vector(vals []uint16) Value { return newVector(UI16Vector, uint16Bytes(vals)) }
func NewI32Vector(vals []int32) Value   { return newVector(I32Vector, int32Bytes(vals)) }
func NewUI32Vector(vals []uint32) Value { return newVector(UI32Vector, uint32Bytes(vals)) }
func NewI64Vector(vals []int64) Value   { return newVector(I64Vector, int64Bytes(vals)) }
func NewUI64Vector(vals []uint64) Value { return newVector(UI64Vector, uint64Bytes(vals)) }
func NewF32Vector(vals []float32) Value { return newVector(F32Vector, float32Bytes(vals)) }
func NewF64Vector(vals []float64) Value { return newVector(F64Vector, float64Bytes(vals)) }
func NewC32Vector(vals []complex64) Value {
	return newVector(C32Vector, complex64Bytes(vals))
}
func NewC64Vector(vals []complex128) Value {
	return newVector(C64Vector, complex128Bytes(vals))
}

func (v Value) AsI8Vector() ([]int8, error) {
	if err := v.checkVector(I8Vector); err != nil {
		return nil, err
	}

	return bytesToInt8(v.vecData), nil
}

func (v Value) AsUI8Vector() ([]uint8, error) {
	if err := v.checkVector(UI8Vector); err != nil {
		return nil, err
	}

	return append([]byte(nil), v.vecData...), nil
}

func (v Value) AsI16Vector() ([]int16, error) {
	if err := v.checkVector(I16Vector); err != nil {
		return nil, err
	}

	return bytesToInt16(v.vecData), nil
}

func (v Value) AsUI16Vector() ([]uint16, error) {
	if err := v.checkVector(UI16Vector); err != nil {
		return nil, err
	}

	return bytesToUint16(v.vecData), nil
}

func (v Value) AsI32Vector() ([]int32, error) {
	if err := v.checkVector(I32Vector); err != nil {
		return nil, err
	}

	return bytesToInt32(v.vecData), nil
}

func (v Value) AsUI32Vector() ([]uint32, error) {
	if err := v.checkVector(UI32Vector); err != nil {
		return nil, err
	}

	return bytesToUint32(v.vecData), nil
}

func (v Value) AsI64Vector() ([]int64, error) {
	if err := v.checkVector(I64Vector); err != nil {
		return nil, err
	}

	return bytesToInt64(v.vecData), nil
}

func (v Value) AsUI64Vector() ([]uint64, error) {
	if err := v.checkVector(UI64Vector); err != nil {
		return nil, err
	}

	return bytesToUint64(v.vecData), nil
}

func (v Value) AsF32Vector() ([]float32, error) {
	if err := v.checkVector(F32Vector); err != nil {
		return nil, err
	}

	return bytesToFloat32(v.vecData), nil
}

func (v Value) AsF64Vector() ([]float64, error) {
	if err := v.checkVector(F64Vector); err != nil {
		return nil, err
	}

	return bytesToFloat64(v.vecData), nil
}

func (v Value) AsC32Vector() ([]complex64, error) {
	if err := v.checkVector(C32Vector); err != nil {
		return nil, err
	}

	return bytesToComplex64(v.vecData), nil
}

func (v Value) AsC64Vector() ([]complex128, error) {
	if err := v.checkVector(C64Vector); err != nil {
		return nil, err
	}

	return bytesToComplex128(v.vecData), nil
}

// Matrix constructors and accessors. vals must hold rows*cols elements in
// row-major order; a mismatch is a caller bug and is reported rather than
// silently truncated.

func NewI8Matrix(rows, cols int, vals []int8) (Value, error) {
	if len(vals) != rows*cols {
		return Value{}, fmt.Errorf("value: I8Matrix expects %d elements, got %d", rows*cols, len(vals))
	}

	return newMatrix(I8Matrix, rows, cols, int8Bytes(vals)), nil
}

func NewUI8Matrix(rows, cols int, vals []uint8) (Value, error) {
	if len(vals) != rows*cols {
		return Value{}, fmt.Errorf("value: UI8Matrix expects %d elements, got %d", rows*cols, len(vals))
	}

	return newMatrix(UI8Matrix, rows, cols, append([]byte(nil), vals...)), nil
}

func NewI16Matrix(rows, cols int, vals []int16) (Value, error) {
	if len(vals) != rows*cols {
		return Value{}, fmt.Errorf("value: I16Matrix expects %d elements, got %d", rows*cols, len(vals))
	}

	return newMatrix(I16Matrix, rows, cols, int16Bytes(vals)), nil
}

func NewUI16Matrix(rows, cols int, vals []uint16) (Value, error) {
	if len(vals) != rows*cols {
		return Value{}, fmt.Errorf("value: UI16Matrix expects %d elements, got %d", rows*cols, len(vals))
	}

	return newMatrix(UI16Matrix, rows, cols, uint16Bytes(vals)), nil
}

func NewI32Matrix(rows, cols int, vals []int32) (Value, error) {
	if len(vals) != rows*cols {
		return Value{}, fmt.Errorf("value: I32Matrix expects %d elements, got %d", rows*cols, len(vals))
	}

	return newMatrix(I32Matrix, rows, cols, int32Bytes(vals)), nil
}

func NewUI32Matrix(rows, cols int, vals []uint32) (Value, error) {
	if len(vals) != rows*cols {
		return Value{}, fmt.Errorf("value: UI32Matrix expects %d elements, got %d", rows*cols, len(vals))
	}

	return newMatrix(UI32Matrix, rows, cols, uint32Bytes(vals)), nil
}

func NewI64Matrix(rows, cols int, vals []int64) (Value, error) {
	if len(vals) != rows*cols {
		return Value{}, fmt.Errorf("value: I64Matrix expects %d elements, got %d", rows*cols, len(vals))
	}

	return newMatrix(I64Matrix, rows, cols, int64Bytes(vals)), nil
}

func NewUI64Matrix(rows, cols int, vals []uint64) (Value, error) {
	if len(vals) != rows*cols {
		return Value{}, fmt.Errorf("value: UI64Matrix expects %d elements, got %d", rows*cols, len(vals))
	}

	return newMatrix(UI64Matrix, rows, cols, uint64Bytes(vals)), nil
}

func NewF32Matrix(rows, cols int, vals []float32) (Value, error) {
	if len(vals) != rows*cols {
		return Value{}, fmt.Errorf("value: F32Matrix expects %d elements, got %d", rows*cols, len(vals))
	}

	return newMatrix(F32Matrix, rows, cols, float32Bytes(vals)), nil
}

func NewF64Matrix(rows, cols int, vals []float64) (Value, error) {
	if len(vals) != rows*cols {
		return Value{}, fmt.Errorf("value: F64Matrix expects %d elements, got %d", rows*cols, len(vals))
	}

	return newMatrix(F64Matrix, rows, cols, float64Bytes(vals)), nil
}

func NewC32Matrix(rows, cols int, vals []complex64) (Value, error) {
	if len(vals) != rows*cols {
		return Value{}, fmt.Errorf("value: C32Matrix expects %d elements, got %d", rows*cols, len(vals))
	}

	return newMatrix(C32Matrix, rows, cols, complex64Bytes(vals)), nil
}

func NewC64Matrix(rows, cols int, vals []complex128) (Value, error) {
	if len(vals) != rows*cols {
		return Value{}, fmt.Errorf("value: C64Matrix expects %d elements, got %d", rows*cols, len(vals))
	}

	return newMatrix(C64Matrix, rows, cols, complex128Bytes(vals)), nil
}

func (v Value) AsI8Matrix() (rows, cols int, vals []int8, err error) {
	if err = v.checkMatrix(I8Matrix); err != nil {
		return 0, 0, nil, err
	}

	return v.rows, v.cols, bytesToInt8(v.vecData), nil
}

func (v Value) AsUI8Matrix() (rows, cols int, vals []uint8, err error) {
	if err = v.checkMatrix(UI8Matrix); err != nil {
		return 0, 0, nil, err
	}

	return v.rows, v.cols, append([]byte(nil), v.vecData...), nil
}

func (v Value) AsI16Matrix() (rows, cols int, vals []int16, err error) {
	if err = v.checkMatrix(I16Matrix); err != nil {
		return 0, 0, nil, err
	}

	return v.rows, v.cols, bytesToInt16(v.vecData), nil
}

func (v Value) AsUI16Matrix() (rows, cols int, vals []uint16, err error) {
	if err = v.checkMatrix(UI16Matrix); err != nil {
		return 0, 0, nil, err
	}

	return v.rows, v.cols, bytesToUint16(v.vecData), nil
}

func (v Value) AsI32Matrix() (rows, cols int, vals []int32, err error) {
	if err = v.checkMatrix(I32Matrix); err != nil {
		return 0, 0, nil, err
	}

	return v.rows, v.cols, bytesToInt32(v.vecData), nil
}

func (v Value) AsUI32Matrix() (rows, cols int, vals []uint32, err error) {
	if err = v.checkMatrix(UI32Matrix); err != nil {
		return 0, 0, nil, err
	}

	return v.rows, v.cols, bytesToUint32(v.vecData), nil
}

func (v Value) AsI64Matrix() (rows, cols int, vals []int64, err error) {
	if err = v.checkMatrix(I64Matrix); err != nil {
		return 0, 0, nil, err
	}

	return v.rows, v.cols, bytesToInt64(v.vecData), nil
}

func (v Value) AsUI64Matrix() (rows, cols int, vals []uint64, err error) {
	if err = v.checkMatrix(UI64Matrix); err != nil {
		return 0, 0, nil, err
	}

	return v.rows, v.cols, bytesToUint64(v.vecData), nil
}

func (v Value) AsF32Matrix() (rows, cols int, vals []float32, err error) {
	if err = v.checkMatrix(F32Matrix); err != nil {
		return 0, 0, nil, err
	}

	return v.rows, v.cols, bytesToFloat32(v.vecData), nil
}

func (v Value) AsF64Matrix() (rows, cols int, vals []float64, err error) {
	if err = v.checkMatrix(F64Matrix); err != nil {
		return 0, 0, nil, err
	}

	return v.rows, v.cols, bytesToFloat64(v.vecData), nil
}

func (v Value) AsC32Matrix() (rows, cols int, vals []complex64, err error) {
	if err = v.checkMatrix(C32Matrix); err != nil {
		return 0, 0, nil, err
	}

	return v.rows, v.cols, bytesToComplex64(v.vecData), nil
}

func (v Value) AsC64Matrix() (rows, cols int, vals []complex128, err error) {
	if err = v.checkMatrix(C64Matrix); err != nil {
		return 0, 0, nil, err
	}

	return v.rows, v.cols, bytesToComplex128(v.vecData), nil
}
