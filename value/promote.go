package value

import "fmt"

// promote widens a and b to a common numeric kind and returns both
// re-typed to that kind, following §9's explicit-promotion design note:
// Cottontail never relies on virtual dispatch to pick a common type, it
// computes one up front and converts both operands to it.
func promote(a, b Value) (Value, Value, Kind, error) {
	if !a.kind.numeric() || !b.kind.numeric() {
		return Value{}, Value{}, Unknown, fmt.Errorf("value: promote: non-numeric operand kind %s/%s", a.kind, b.kind)
	}
	if a.vector != b.vector {
		return Value{}, Value{}, Unknown, fmt.Errorf("value: promote: cannot mix scalar and vector operands")
	}
	if a.vector && a.LogicalSize() != b.LogicalSize() {
		return Value{}, Value{}, Unknown, fmt.Errorf("value: promote: vector size mismatch %d != %d", a.LogicalSize(), b.LogicalSize())
	}

	target := a.kind
	if b.kind.rank() > target.rank() {
		target = b.kind
	}

	pa, err := cast(a, target)
	if err != nil {
		return Value{}, Value{}, Unknown, err
	}
	pb, err := cast(b, target)
	if err != nil {
		return Value{}, Value{}, Unknown, err
	}
	return pa, pb, target, nil
}

// cast widens v to the target numeric kind. Narrowing casts (e.g. Double to
// Int) are intentionally not supported here; promotion only ever widens.
func cast(v Value, target Kind) (Value, error) {
	if v.kind == target {
		return v, nil
	}
	if target.rank() < v.kind.rank() {
		return Value{}, fmt.Errorf("value: cast: %s does not widen to %s", v.kind, target)
	}

	if !v.vector {
		return castScalar(v, target)
	}
	return castVector(v, target)
}

func castScalar(v Value, target Kind) (Value, error) {
	f := scalarAsDouble(v)
	switch target {
	case Short:
		return NewShort(int16(f)), nil
	case Int:
		return NewInt(int32(f)), nil
	case Long:
		return NewLong(int64(f)), nil
	case Float:
		return NewFloat(float32(f)), nil
	case Double:
		return NewDouble(f), nil
	case Complex32:
		return NewComplex32(complex(float32(f), 0)), nil
	case Complex64:
		return NewComplex64(complex(f, 0)), nil
	default:
		return Value{}, fmt.Errorf("value: cast: unsupported target %s", target)
	}
}

func scalarAsDouble(v Value) float64 {
	switch v.kind {
	case Byte:
		return float64(v.i8)
	case Short:
		return float64(v.i16)
	case Int:
		return float64(v.i32)
	case Long:
		return float64(v.i64)
	case Float:
		return float64(v.f32)
	case Double:
		return v.f64
	default:
		return 0
	}
}

func castVector(v Value, target Kind) (Value, error) {
	d := v.AsDoubleVector()
	switch target {
	case Float:
		out := make([]float32, len(d))
		for i, x := range d {
			out[i] = float32(x)
		}
		return NewFloatVector(out), nil
	case Double:
		return NewDoubleVector(d), nil
	case Complex32:
		out := make([]complex64, len(d))
		for i, x := range d {
			out[i] = complex(float32(x), 0)
		}
		return NewComplex32Vector(out), nil
	case Complex64:
		out := make([]complex128, len(d))
		for i, x := range d {
			out[i] = complex(x, 0)
		}
		return NewComplex64Vector(out), nil
	default:
		return Value{}, fmt.Errorf("value: cast: unsupported vector target %s", target)
	}
}
