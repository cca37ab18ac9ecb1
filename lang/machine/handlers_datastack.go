package machine

import (
	"github.com/sktedro/ipp22/internal/interp"
	"github.com/sktedro/ipp22/lang/ir"
)

func execPushs(e *Engine, args []ir.Argument) error {
	e.dataStack = append(e.dataStack, e.resolve(args[0]))
	return nil
}

func execPops(e *Engine, args []ir.Argument) error {
	if len(e.dataStack) == 0 {
		return interp.New(interp.ExitMissingValue, "data stack is empty")
	}
	n := len(e.dataStack) - 1
	v := e.dataStack[n]
	e.dataStack = e.dataStack[:n]
	return e.symtab.Define(args[0].Var, v)
}
