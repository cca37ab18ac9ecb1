package types

// NilType is the type of Nil. Its only legal value is Nil. It is
// represented as a one-byte integer type, not struct{}, so that Nil can be
// a typed constant (mirrors lang/machine.NilType in the teacher package).
type NilType byte

// Nil is the singular inhabitant of NilType.
const Nil = NilType(0)

var _ Value = Nil

func (NilType) String() string { return "nil" }
func (NilType) Type() string   { return "nil" }
