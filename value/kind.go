package value

// Kind tags the scalar type carried by a Value. A Value additionally carries
// a Vector flag; Kind alone does not say whether the value is a scalar or a
// vector of that element type.
type Kind uint8

const (
	Unknown Kind = iota
	Boolean
	Byte
	Short
	Int
	Long
	Float
	Double
	String
	Complex32
	Complex64
)

// String renders the kind for logging and error messages.
func (k Kind) String() string {
	switch k {
	case Boolean:
		return "BOOLEAN"
	case Byte:
		return "BYTE"
	case Short:
		return "SHORT"
	case Int:
		return "INT"
	case Long:
		return "LONG"
	case Float:
		return "FLOAT"
	case Double:
		return "DOUBLE"
	case String:
		return "STRING"
	case Complex32:
		return "COMPLEX32"
	case Complex64:
		return "COMPLEX64"
	default:
		return "UNKNOWN"
	}
}

// numeric reports whether values of this kind support arithmetic promotion.
func (k Kind) numeric() bool {
	switch k {
	case Byte, Short, Int, Long, Float, Double, Complex32, Complex64:
		return true
	default:
		return false
	}
}

// rank orders numeric kinds by widening precedence, used by promote to pick
// the common type of a binary operation. Complex kinds always win over real
// kinds of equal-or-lower width.
func (k Kind) rank() int {
	switch k {
	case Byte:
		return 1
	case Short:
		return 2
	case Int:
		return 3
	case Long:
		return 4
	case Float:
		return 5
	case Double:
		return 6
	case Complex32:
		return 7
	case Complex64:
		return 8
	default:
		return 0
	}
}

// componentWidth returns the byte width of a single scalar component of this
// kind, used to compute StorageSize for vectors.
func (k Kind) componentWidth() int {
	switch k {
	case Boolean, Byte:
		return 1
	case Short:
		return 2
	case Int, Float:
		return 4
	case Long, Double:
		return 8
	case Complex32:
		return 8 // two float32 components
	case Complex64:
		return 16 // two float64 components
	case String:
		return 0 // variable-length, accounted for separately
	default:
		return 0
	}
}
