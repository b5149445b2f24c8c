package protojson

// FieldType enumerates the wire types a field descriptor may declare. The set
// is closed; conversion support per type and direction is defined by the
// coercion table and the field value converter.
type FieldType int

const (
	TypeBool    FieldType = iota + 1 // JSON true/false.
	TypeFloat                        // JSON number, converted to float64.
	TypeInt32                        // JSON number, range-checked to int32.
	TypeInt64                        // JSON number, range-checked to int64.
	TypeUint32                       // JSON number, range-checked to uint32.
	TypeUint64                       // JSON number, range-checked to uint64.
	TypeString                       // JSON string.
	TypeEnum                         // JSON string holding the symbolic name.
	TypeMessage                      // Embedded message; encode-only.
	TypeDouble                       // Declared but unsupported in conversion.
	TypeBytes                        // Declared but unsupported in conversion.
)

var fieldTypeNames = map[FieldType]string{
	TypeBool:    "bool",
	TypeFloat:   "float",
	TypeInt32:   "int32",
	TypeInt64:   "int64",
	TypeUint32:  "uint32",
	TypeUint64:  "uint64",
	TypeString:  "string",
	TypeEnum:    "enum",
	TypeMessage: "message",
	TypeDouble:  "double",
	TypeBytes:   "bytes",
}

func (t FieldType) String() string {
	if s, ok := fieldTypeNames[t]; ok {
		return s
	}
	return "unknown"
}

// Label expresses a field's cardinality/presence contract.
type Label int

const (
	LabelOptional Label = iota // May be absent; left unset unless defaulted.
	LabelRequired              // Must be supplied or defaulted.
	LabelRepeated              // Ordered sequence of element values.
)

func (l Label) String() string {
	switch l {
	case LabelRequired:
		return "required"
	case LabelRepeated:
		return "repeated"
	default:
		return "optional"
	}
}
