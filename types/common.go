package types

// ValueType is the normalized value type of a field (option or positional) as seen by
// completion and parsing.
type ValueType int

const (
	Unknown ValueType = iota // Unknown denotes a field whose type could not be determined
	String                   // String denotes a field accepting a single value
	Number                   // Number denotes a field accepting a numeric value
	Boolean                  // Boolean denotes a flag which does not accept a value
	Array                    // Array denotes a repeatable field accepting one value per occurrence
)

// String returns the string representation of a ValueType
func (v ValueType) String() string {
	switch v {
	case String:
		return "string"
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	case Array:
		return "array"
	case Unknown:
		fallthrough
	default:
		return "unknown"
	}
}

// TakesValue is false only for boolean fields
func (v ValueType) TakesValue() bool {
	return v != Boolean
}

// Repeatable reports whether a field of this type may appear more than once on the command line
func (v ValueType) Repeatable() bool {
	return v == Array
}

// ParseValueType converts the textual form of a ValueType. Unrecognized names yield Unknown and false.
func ParseValueType(s string) (ValueType, bool) {
	switch s {
	case "string", "str", "":
		return String, true
	case "number", "int", "float":
		return Number, true
	case "boolean", "bool":
		return Boolean, true
	case "array", "list":
		return Array, true
	case "unknown":
		return Unknown, true
	}

	return Unknown, false
}

// KeyValue denotes Key Value pairs
type KeyValue[K, V any] struct {
	Key   K
	Value V
}
