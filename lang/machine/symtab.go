package machine

import (
	"fmt"
	"sort"

	"github.com/sktedro/ipp22/lang/ir"
	"github.com/sktedro/ipp22/lang/types"
)

// SymbolTable is the three-tier frame store of spec §3/§4.3: a single
// global frame, a stack of local frames (only the top is addressable), and
// an optional temporary frame.
type SymbolTable struct {
	global *Frame
	locals []*Frame
	temp   *Frame
}

func newSymbolTable() *SymbolTable {
	return &SymbolTable{global: newFrame()}
}

// frameFor resolves a frame sigil to its Frame, per spec §4.3 "Resolution
// of a var reference". Error 55 is raised by errNoSuchFrame.
func (st *SymbolTable) frameFor(f ir.Frame) (*Frame, error) {
	switch f {
	case ir.FrameGlobal:
		return st.global, nil
	case ir.FrameTemp:
		if st.temp == nil {
			return nil, errNoSuchFrame("TF")
		}
		return st.temp, nil
	case ir.FrameLocal:
		if len(st.locals) == 0 {
			return nil, errNoSuchFrame("LF")
		}
		return st.locals[len(st.locals)-1], nil
	default:
		return nil, fmt.Errorf("unknown frame %v", f)
	}
}

// Declare implements DEFVAR: declare name in the frame addressed by ref.
func (st *SymbolTable) Declare(ref ir.VarRef) error {
	fr, err := st.frameFor(ref.Frame)
	if err != nil {
		return err
	}
	return fr.declare(ref.Name)
}

// Define sets the Cell addressed by ref to v — the shape every handler in
// §4.5 needs (MOVE, arithmetic results, READ, POPS, ...). The slot must
// already be declared: an undeclared name is error 54, and a missing frame
// is error 55.
func (st *SymbolTable) Define(ref ir.VarRef, v types.Value) error {
	fr, err := st.frameFor(ref.Frame)
	if err != nil {
		return err
	}
	cell, ok := fr.get(ref.Name)
	if !ok {
		return errNotDeclared(ref.String())
	}
	cell.Set(v)
	return nil
}

// Cell returns the Cell addressed by ref, or error 54 if the frame exists
// but the name was never declared, or error 55 if the frame itself doesn't
// exist.
func (st *SymbolTable) Cell(ref ir.VarRef) (*Cell, error) {
	fr, err := st.frameFor(ref.Frame)
	if err != nil {
		return nil, err
	}
	cell, ok := fr.get(ref.Name)
	if !ok {
		return nil, errNotDeclared(ref.String())
	}
	return cell, nil
}

// CreateFrame implements CREATEFRAME: replace TF with a fresh, empty frame.
func (st *SymbolTable) CreateFrame() {
	st.temp = newFrame()
}

// PushFrame implements PUSHFRAME: move TF to the top of the local stack.
func (st *SymbolTable) PushFrame() error {
	if st.temp == nil {
		return errNoSuchFrame("TF")
	}
	st.locals = append(st.locals, st.temp)
	st.temp = nil
	return nil
}

// PopFrame implements POPFRAME: move the top local frame to TF.
func (st *SymbolTable) PopFrame() error {
	if len(st.locals) == 0 {
		return errNoSuchFrame("LF")
	}
	n := len(st.locals) - 1
	st.temp = st.locals[n]
	st.locals = st.locals[:n]
	return nil
}

// Dump renders the whole symbol table for BREAK, with variable names
// sorted for deterministic output.
func (st *SymbolTable) Dump(w fmtWriter) {
	dumpFrame(w, "GF", st.global)
	for i, fr := range st.locals {
		dumpFrame(w, fmt.Sprintf("LF[%d]", i), fr)
	}
	if st.temp != nil {
		dumpFrame(w, "TF", st.temp)
	} else {
		fmt.Fprintln(w, "  TF: (none)")
	}
}

type fmtWriter interface {
	Write(p []byte) (int, error)
}

func dumpFrame(w fmtWriter, label string, fr *Frame) {
	names := append([]string(nil), fr.names...)
	sort.Strings(names)
	fmt.Fprintf(w, "  %s:\n", label)
	for _, name := range names {
		c, _ := fr.cells.Get(name)
		if !c.Defined() {
			fmt.Fprintf(w, "    %s = (undefined)\n", name)
			continue
		}
		fmt.Fprintf(w, "    %s = %s (%s)\n", name, c.Value().String(), c.Value().Type())
	}
}
