// Package value implements Cottontail's tagged scalar and vector value
// model: a closed set of kinds (boolean, byte, short, int, long, float,
// double, string, complex32, complex64), each either a scalar or a fixed-
// length vector of that element type.
//
// Values are represented as a single tagged struct rather than an interface
// hierarchy, matching the teacher's metadata.Value: a closed, fully known
// set of kinds is cheaper to promote, compare, and marshal as a tagged
// struct than to dispatch through an interface.
package value

import "fmt"

// Value is an immutable tagged scalar or vector value.
type Value struct {
	kind   Kind
	vector bool

	b    bool
	i8   int8
	i16  int16
	i32  int32
	i64  int64
	f32  float32
	f64  float64
	str  string
	c64  complex64
	c128 complex128

	boolVec []bool
	i8Vec   []int8
	i16Vec  []int16
	i32Vec  []int32
	i64Vec  []int64
	f32Vec  []float32
	f64Vec  []float64
	c64Vec  []complex64
	c128Vec []complex128
}

// Kind returns the element kind of the value.
func (v Value) Kind() Kind { return v.kind }

// IsVector reports whether the value is a vector (as opposed to a scalar).
func (v Value) IsVector() bool { return v.vector }

// IsNull reports whether the value is the zero Value, Cottontail's NULL.
func (v Value) IsNull() bool { return v.kind == Unknown }

// Null returns the NULL value.
func Null() Value { return Value{} }

// LogicalSize returns the number of elements the value logically holds: 1
// for a scalar, the element count for a vector.
func (v Value) LogicalSize() int {
	if !v.vector {
		return 1
	}
	switch v.kind {
	case Boolean:
		return len(v.boolVec)
	case Byte:
		return len(v.i8Vec)
	case Short:
		return len(v.i16Vec)
	case Int:
		return len(v.i32Vec)
	case Long:
		return len(v.i64Vec)
	case Float:
		return len(v.f32Vec)
	case Double:
		return len(v.f64Vec)
	case Complex32:
		return len(v.c64Vec)
	case Complex64:
		return len(v.c128Vec)
	default:
		return 0
	}
}

// StorageSize returns the on-disk byte footprint of the value's fixed-width
// representation. Complex vectors report 2x their logical size in
// components, matching the component width already doubling for complex
// kinds: a complex vector of n elements needs n*2*componentWidth bytes
// where componentWidth is measured per real/imaginary float component.
func (v Value) StorageSize() int {
	if v.kind == String {
		return len(v.str) // variable-length; length prefix accounted for by the caller
	}
	n := v.LogicalSize()
	return n * v.kind.componentWidth()
}

// --- scalar constructors ---

func NewBool(b bool) Value       { return Value{kind: Boolean, b: b} }
func NewByte(x int8) Value       { return Value{kind: Byte, i8: x} }
func NewShort(x int16) Value     { return Value{kind: Short, i16: x} }
func NewInt(x int32) Value       { return Value{kind: Int, i32: x} }
func NewLong(x int64) Value      { return Value{kind: Long, i64: x} }
func NewFloat(x float32) Value   { return Value{kind: Float, f32: x} }
func NewDouble(x float64) Value  { return Value{kind: Double, f64: x} }
func NewString(s string) Value   { return Value{kind: String, str: s} }
func NewComplex32(c complex64) Value  { return Value{kind: Complex32, c64: c} }
func NewComplex64(c complex128) Value { return Value{kind: Complex64, c128: c} }

// --- vector constructors ---

func NewBoolVector(v []bool) Value          { return Value{kind: Boolean, vector: true, boolVec: v} }
func NewByteVector(v []int8) Value          { return Value{kind: Byte, vector: true, i8Vec: v} }
func NewShortVector(v []int16) Value        { return Value{kind: Short, vector: true, i16Vec: v} }
func NewIntVector(v []int32) Value          { return Value{kind: Int, vector: true, i32Vec: v} }
func NewLongVector(v []int64) Value         { return Value{kind: Long, vector: true, i64Vec: v} }
func NewFloatVector(v []float32) Value      { return Value{kind: Float, vector: true, f32Vec: v} }
func NewDoubleVector(v []float64) Value     { return Value{kind: Double, vector: true, f64Vec: v} }
func NewComplex32Vector(v []complex64) Value  { return Value{kind: Complex32, vector: true, c64Vec: v} }
func NewComplex64Vector(v []complex128) Value { return Value{kind: Complex64, vector: true, c128Vec: v} }

// --- scalar accessors ---

func (v Value) Bool() bool           { return v.b }
func (v Value) Byte() int8           { return v.i8 }
func (v Value) Short() int16         { return v.i16 }
func (v Value) Int() int32           { return v.i32 }
func (v Value) Long() int64          { return v.i64 }
func (v Value) Float() float32       { return v.f32 }
func (v Value) Double() float64      { return v.f64 }
func (v Value) String() string       { return v.str }
func (v Value) Complex32() complex64  { return v.c64 }
func (v Value) Complex64() complex128 { return v.c128 }

// --- vector accessors ---

func (v Value) BoolVector() []bool            { return v.boolVec }
func (v Value) ByteVector() []int8            { return v.i8Vec }
func (v Value) ShortVector() []int16          { return v.i16Vec }
func (v Value) IntVector() []int32            { return v.i32Vec }
func (v Value) LongVector() []int64           { return v.i64Vec }
func (v Value) FloatVector() []float32        { return v.f32Vec }
func (v Value) DoubleVector() []float64       { return v.f64Vec }
func (v Value) Complex32Vector() []complex64  { return v.c64Vec }
func (v Value) Complex64Vector() []complex128 { return v.c128Vec }

// AsDoubleVector widens any numeric vector to []float64, the common working
// representation distance kernels evaluate against. It panics if called on
// a non-numeric or non-vector value; callers in this module always check
// Kind first.
func (v Value) AsDoubleVector() []float64 {
	if !v.vector {
		panic("value: AsDoubleVector on scalar")
	}
	switch v.kind {
	case Byte:
		out := make([]float64, len(v.i8Vec))
		for i, x := range v.i8Vec {
			out[i] = float64(x)
		}
		return out
	case Short:
		out := make([]float64, len(v.i16Vec))
		for i, x := range v.i16Vec {
			out[i] = float64(x)
		}
		return out
	case Int:
		out := make([]float64, len(v.i32Vec))
		for i, x := range v.i32Vec {
			out[i] = float64(x)
		}
		return out
	case Long:
		out := make([]float64, len(v.i64Vec))
		for i, x := range v.i64Vec {
			out[i] = float64(x)
		}
		return out
	case Float:
		out := make([]float64, len(v.f32Vec))
		for i, x := range v.f32Vec {
			out[i] = float64(x)
		}
		return out
	case Double:
		return v.f64Vec
	default:
		panic(fmt.Sprintf("value: AsDoubleVector unsupported kind %s", v.kind))
	}
}

// AsDouble widens a numeric scalar value to float64. It returns an error
// for a vector or non-numeric value.
func (v Value) AsDouble() (float64, error) {
	if v.vector {
		return 0, fmt.Errorf("value: AsDouble on vector")
	}
	switch v.kind {
	case Byte, Short, Int, Long, Float, Double:
		return scalarAsDouble(v), nil
	default:
		return 0, fmt.Errorf("value: AsDouble unsupported kind %s", v.kind)
	}
}

// GoString renders the value's kind followed by every data field, so values
// that differ in kind, shape or contents render differently.
func (v Value) GoString() string {
	type fields Value // same fields, no methods: fmt prints the raw data
	return fmt.Sprintf("Value{%s %+v}", v.kind, fields(v))
}
