package value

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindStringAndParse(t *testing.T) {
	for k := Monostate; k <= C64Matrix; k++ {
		name := k.String()
		require.NotContains(t, name, "Kind(")

		parsed, ok := ParseKind(name)
		require.True(t, ok)
		assert.Equal(t, k, parsed)
	}

	_, ok := ParseKind("NotARealKind")
	assert.False(t, ok)
}

func TestKindFidelityNoAliasBug(t *testing.T) {
	assert.Equal(t, "F32Matrix", F32Matrix.String())
	assert.Equal(t, "F64Matrix", F64Matrix.String())
}

func TestElementSize(t *testing.T) {
	assert.Equal(t, 1, I8Vector.ElementSize())
	assert.Equal(t, 2, UI16Matrix.ElementSize())
	assert.Equal(t, 4, F32Vector.ElementSize())
	assert.Equal(t, 8, C32Matrix.ElementSize())
	assert.Equal(t, 16, C64Vector.ElementSize())
}

func TestElementSize_PanicsOnScalar(t *testing.T) {
	assert.Panics(t, func() { Boolean.ElementSize() })
}

func TestScalarRoundTrip(t *testing.T) {
	v := NewBoolean(true)
	b, err := v.AsBoolean()
	require.NoError(t, err)
	assert.True(t, b)

	_, err = v.AsInt8()
	assert.Error(t, err)

	i8 := NewInt8(-12)
	got, err := i8.AsInt8()
	require.NoError(t, err)
	assert.Equal(t, int8(-12), got)

	u64 := NewUInt64(1 << 63)
	gu, err := u64.AsUInt64()
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<63), gu)

	f32 := NewFloat32(3.5)
	gf, err := f32.AsFloat32()
	require.NoError(t, err)
	assert.Equal(t, float32(3.5), gf)

	c64 := NewComplex64(1.5, -2.5)
	re, im, err := c64.AsComplex64()
	require.NoError(t, err)
	assert.Equal(t, 1.5, re)
	assert.Equal(t, -2.5, im)

	s := NewString("hello")
	gs, err := s.AsString()
	require.NoError(t, err)
	assert.Equal(t, "hello", gs)
}

func TestTimePointNormalizesToUTCSeconds(t *testing.T) {
	loc := time.FixedZone("TEST", 3600)
	in := time.Date(2024, 3, 1, 12, 30, 45, 500_000_000, loc)

	v := NewTimePoint(in)
	got, err := v.AsTimePoint()
	require.NoError(t, err)

	assert.Equal(t, time.UTC, got.Location())
	assert.Zero(t, got.Nanosecond())
	assert.Equal(t, in.UTC().Truncate(time.Second), got)
}

func TestFormatText_Scalars(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{NewBoolean(true), "1"},
		{NewBoolean(false), "0"},
		{NewInt32(-42), "-42"},
		{NewUInt32(42), "42"},
		{NewFloat64(1.5), "1.5"},
		{NewComplex32(1, -2), "(1,-2)"},
	}

	for _, tt := range tests {
		got, err := tt.v.FormatText()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestFormatText_TimePoint(t *testing.T) {
	v := NewTimePoint(time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC))
	got, err := v.FormatText()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01T12:30:45Z", got)
}

func TestParseText_RoundTrip(t *testing.T) {
	tests := []struct {
		kind Kind
		text string
	}{
		{Boolean, "1"},
		{Int8, "-5"},
		{UInt8, "250"},
		{Int16, "-1000"},
		{UInt16, "60000"},
		{Int32, "-100000"},
		{UInt32, "4000000000"},
		{Int64, "-9000000000000"},
		{UInt64, "18000000000000000000"},
		{Float32, "3.25"},
		{Float64, "3.14159"},
		{Complex32, "(1.5,-2.5)"},
		{Complex64, "(1.5,-2.5)"},
		{TimePoint, "2024-03-01T12:30:45Z"},
		{String, "arbitrary text"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			v, err := ParseText(tt.kind, tt.text)
			require.NoError(t, err)

			got, err := v.FormatText()
			if tt.kind == String {
				s, serr := v.AsString()
				require.NoError(t, serr)
				assert.Equal(t, tt.text, s)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.text, got)
		})
	}
}

func TestParseText_InvalidInput(t *testing.T) {
	_, err := ParseText(Int8, "not a number")
	assert.Error(t, err)

	_, err = ParseText(Boolean, "maybe")
	assert.Error(t, err)

	_, err = ParseText(Complex64, "1.5,-2.5")
	assert.Error(t, err)

	_, err = ParseText(TimePoint, "not-a-date")
	assert.Error(t, err)
}

func TestVectorRoundTrip(t *testing.T) {
	i8 := NewI8Vector([]int8{-1, 2, -3})
	gi8, err := i8.AsI8Vector()
	require.NoError(t, err)
	assert.Equal(t, []int8{-1, 2, -3}, gi8)
	assert.Equal(t, 3, i8.Len())

	ui16 := NewUI16Vector([]uint16{1, 2, 65535})
	gu16, err := ui16.AsUI16Vector()
	require.NoError(t, err)
	assert.Equal(t, []uint16{1, 2, 65535}, gu16)

	f64 := NewF64Vector([]float64{1.1, -2.2, 3.3})
	gf64, err := f64.AsF64Vector()
	require.NoError(t, err)
	assert.Equal(t, []float64{1.1, -2.2, 3.3}, gf64)

	c32 := NewC32Vector([]complex64{complex(1, 2), complex(-3, 4)})
	gc32, err := c32.AsC32Vector()
	require.NoError(t, err)
	assert.Equal(t, []complex64{complex(1, 2), complex(-3, 4)}, gc32)

	_, err = i8.AsUI8Vector()
	assert.Error(t, err)
}

func TestMatrixRoundTrip(t *testing.T) {
	m, err := NewI32Matrix(2, 3, []int32{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	rows, cols, vals, err := m.AsI32Matrix()
	require.NoError(t, err)
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, []int32{1, 2, 3, 4, 5, 6}, vals)
	assert.Equal(t, 6, m.Len())

	gotRows, gotCols := m.Dims()
	assert.Equal(t, 2, gotRows)
	assert.Equal(t, 3, gotCols)
}

func TestMatrixConstructor_RejectsWrongLength(t *testing.T) {
	_, err := NewF32Matrix(2, 2, []float32{1, 2, 3})
	assert.Error(t, err)
}

func TestComplexMatrixRoundTrip(t *testing.T) {
	m, err := NewC64Matrix(1, 2, []complex128{complex(1.5, -1), complex(0, 2)})
	require.NoError(t, err)

	rows, cols, vals, err := m.AsC64Matrix()
	require.NoError(t, err)
	assert.Equal(t, 1, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, []complex128{complex(1.5, -1), complex(0, 2)}, vals)
}

func TestVectorFromBytes(t *testing.T) {
	orig := NewUI16Vector([]uint16{1, 2, 3})
	v, err := VectorFromBytes(UI16Vector, orig.RawBytes())
	require.NoError(t, err)

	got, err := v.AsUI16Vector()
	require.NoError(t, err)
	assert.Equal(t, []uint16{1, 2, 3}, got)
}

func TestVectorFromBytes_RejectsNonVectorKind(t *testing.T) {
	_, err := VectorFromBytes(Boolean, []byte{1})
	assert.Error(t, err)
}

func TestVectorFromBytes_RejectsMisalignedLength(t *testing.T) {
	_, err := VectorFromBytes(UI16Vector, []byte{1, 2, 3})
	assert.Error(t, err)
}

func TestMatrixFromBytes(t *testing.T) {
	orig, err := NewI32Matrix(2, 2, []int32{1, 2, 3, 4})
	require.NoError(t, err)

	v, err := MatrixFromBytes(I32Matrix, 2, 2, orig.RawBytes())
	require.NoError(t, err)

	rows, cols, vals, err := v.AsI32Matrix()
	require.NoError(t, err)
	assert.Equal(t, 2, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, []int32{1, 2, 3, 4}, vals)
}

func TestMatrixFromBytes_RejectsWrongLength(t *testing.T) {
	_, err := MatrixFromBytes(I32Matrix, 2, 2, []byte{1, 2, 3})
	assert.Error(t, err)
}

func TestRawBytesLittleEndian(t *testing.T) {
	v := NewUI16Vector([]uint16{0x0102})
	b := v.RawBytes()
	require.Len(t, b, 2)
	assert.Equal(t, byte(0x02), b[0])
	assert.Equal(t, byte(0x01), b[1])
}
