// Package resolver performs the one static pass between ingest and
// execution: building the label map and rejecting duplicate label names.
// It plays the same pipeline role as the teacher's lang/resolver package (a
// pass that runs after parsing and before the machine sees the program),
// but resolves labels instead of lexical bindings.
package resolver

import (
	"github.com/sktedro/ipp22/internal/interp"
	"github.com/sktedro/ipp22/lang/ir"
)

// LabelMap maps a label name to the index (not the Order value — see spec
// §3 and §9) of its LABEL instruction in the sorted instruction slice.
type LabelMap map[string]int

// Resolve builds the label map over instrs and rejects duplicate label
// declarations. instrs must already be sorted by Order (internal/ingest
// guarantees this via ir.ByOrder), since LabelMap indexes into this same
// slice position by position. It mirrors original_source/interpret.py's
// Program.__init__ label-collection loop.
func Resolve(instrs []ir.Instruction) (LabelMap, error) {
	labels := make(LabelMap)
	for i, instr := range instrs {
		if instr.Opcode != "LABEL" {
			continue
		}
		name := instr.Args[0].Text
		if _, exists := labels[name]; exists {
			return nil, interp.New(interp.ExitSemantic, "label %q declared more than once", name)
		}
		labels[name] = i
	}
	return labels, nil
}
