package machine

import "github.com/sktedro/ipp22/lang/types"

// Cell is the record held at a (frame, name) slot, per spec §3: a Cell's
// mere presence in a Frame means its name is declared; defined tracks
// whether a value has since been assigned (MOVE, arithmetic result,
// READ, POPS, ...). The invariant defined ⇒ declared always holds since
// an undeclared name has no Cell at all. Named and shaped after the
// teacher's boxed cell type, repurposed from closure-variable storage to
// declared/defined bookkeeping.
type Cell struct {
	defined bool
	value   types.Value
}

func newCell() *Cell { return &Cell{} }

func (c *Cell) Defined() bool { return c.defined }

func (c *Cell) Set(v types.Value) {
	c.defined = true
	c.value = v
}

func (c *Cell) Value() types.Value { return c.value }
