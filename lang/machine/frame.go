package machine

import "github.com/dolthub/swiss"

// Frame is a mapping from variable name to Cell, one of the three roles
// spec §3 describes (global, a local-frame-stack entry, or the temporary
// frame). Backed by swiss.Map, the same generic hash map the teacher's
// lang/machine/map.go wraps for its language-level Map value — here it
// backs variable storage instead.
type Frame struct {
	cells *swiss.Map[string, *Cell]
	// names records declaration order; swiss.Map has no portable iteration
	// order, and BREAK's dump (spec §4.6) needs a stable variable list.
	names []string
}

func newFrame() *Frame {
	return &Frame{cells: swiss.NewMap[string, *Cell](8)}
}

// declare creates a new, undefined Cell for name. It fails if name already
// exists in this frame (spec §3: "redeclaration in the same frame is an
// error").
func (f *Frame) declare(name string) error {
	if _, ok := f.cells.Get(name); ok {
		return errRedeclared(name)
	}
	f.cells.Put(name, newCell())
	f.names = append(f.names, name)
	return nil
}

func (f *Frame) get(name string) (*Cell, bool) {
	return f.cells.Get(name)
}
