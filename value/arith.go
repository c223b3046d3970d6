package value

import "math"

// Add returns a+b, promoting both to a common numeric kind first.
func Add(a, b Value) (Value, error) { return binary(a, b, func(x, y float64) float64 { return x + y }) }

// Sub returns a-b, promoting both to a common numeric kind first.
func Sub(a, b Value) (Value, error) { return binary(a, b, func(x, y float64) float64 { return x - y }) }

// Mul returns a*b, promoting both to a common numeric kind first.
func Mul(a, b Value) (Value, error) { return binary(a, b, func(x, y float64) float64 { return x * y }) }

// Div returns a/b, promoting both to a common numeric kind first.
func Div(a, b Value) (Value, error) { return binary(a, b, func(x, y float64) float64 { return x / y }) }

func binary(a, b Value, op func(x, y float64) float64) (Value, error) {
	pa, pb, target, err := promote(a, b)
	if err != nil {
		return Value{}, err
	}
	if !pa.vector {
		return fromDouble(op(scalarAsDouble(pa), scalarAsDouble(pb)), target), nil
	}

	da, db := pa.AsDoubleVector(), pb.AsDoubleVector()
	out := make([]float64, len(da))
	for i := range da {
		out[i] = op(da[i], db[i])
	}
	v := NewDoubleVector(out)
	cast, err := castVector(v, target)
	if err != nil {
		return Value{}, err
	}
	return cast, nil
}

func fromDouble(f float64, target Kind) Value {
	switch target {
	case Short:
		return NewShort(int16(f))
	case Int:
		return NewInt(int32(f))
	case Long:
		return NewLong(int64(f))
	case Float:
		return NewFloat(float32(f))
	default:
		return NewDouble(f)
	}
}

// Abs returns the element-wise absolute value of a numeric scalar or
// vector.
func Abs(a Value) (Value, error) {
	if !a.vector {
		return NewDouble(math.Abs(scalarAsDouble(a))), nil
	}
	d := a.AsDoubleVector()
	out := make([]float64, len(d))
	for i, x := range d {
		out[i] = math.Abs(x)
	}
	return NewDoubleVector(out), nil
}

// Pow raises every element of a to exponent p.
func Pow(a Value, p float64) (Value, error) {
	if !a.vector {
		return NewDouble(math.Pow(scalarAsDouble(a), p)), nil
	}
	d := a.AsDoubleVector()
	out := make([]float64, len(d))
	for i, x := range d {
		out[i] = math.Pow(x, p)
	}
	return NewDoubleVector(out), nil
}

// Sqrt returns the element-wise square root of a.
func Sqrt(a Value) (Value, error) {
	if !a.vector {
		return NewDouble(math.Sqrt(scalarAsDouble(a))), nil
	}
	d := a.AsDoubleVector()
	out := make([]float64, len(d))
	for i, x := range d {
		out[i] = math.Sqrt(x)
	}
	return NewDoubleVector(out), nil
}

// Sum reduces a numeric vector to the scalar sum of its elements. It
// returns a's own logical value unchanged if a is already a scalar.
func Sum(a Value) (float64, error) {
	if !a.vector {
		return scalarAsDouble(a), nil
	}
	var s float64
	for _, x := range a.AsDoubleVector() {
		s += x
	}
	return s, nil
}

// Norm2 returns the Euclidean (L2) norm of a numeric vector.
func Norm2(a Value) (float64, error) {
	var s float64
	for _, x := range a.AsDoubleVector() {
		s += x * x
	}
	return math.Sqrt(s), nil
}

// Dot returns the inner product of two numeric vectors of equal length.
func Dot(a, b Value) (float64, error) {
	pa, pb, _, err := promote(a, b)
	if err != nil {
		return 0, err
	}
	da, db := pa.AsDoubleVector(), pb.AsDoubleVector()
	var s float64
	for i := range da {
		s += da[i] * db[i]
	}
	return s, nil
}
