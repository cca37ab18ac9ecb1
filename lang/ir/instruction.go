package ir

import "strings"

// Opcode identifies one of the 35 IPPcode22 operations. Instruction.Opcode
// is always upper-case, matching the case-insensitive XML opcode attribute.
type Opcode string

// Instruction is one parsed <instruction> element: its execution order, its
// opcode, and its (already position-sorted) arguments.
type Instruction struct {
	Order  uint32
	Opcode Opcode
	Args   []Argument
}

// NormalizeOpcode upper-cases an opcode name for case-insensitive matching,
// per spec §6.
func NormalizeOpcode(s string) Opcode { return Opcode(strings.ToUpper(s)) }

// ByOrder sorts instructions by ascending Order, the only ordering the
// engine's fetch loop relies on (spec §8 "Ordering" property).
type ByOrder []Instruction

func (b ByOrder) Len() int           { return len(b) }
func (b ByOrder) Less(i, j int) bool { return b[i].Order < b[j].Order }
func (b ByOrder) Swap(i, j int)      { b[i], b[j] = b[j], b[i] }
