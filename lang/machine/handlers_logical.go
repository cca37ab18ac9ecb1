package machine

import (
	"github.com/sktedro/ipp22/lang/ir"
	"github.com/sktedro/ipp22/lang/types"
)

func execAnd(e *Engine, args []ir.Argument) error {
	x := bool(e.resolve(args[1]).(types.Bool))
	y := bool(e.resolve(args[2]).(types.Bool))
	return e.symtab.Define(args[0].Var, types.Bool(x && y))
}

func execOr(e *Engine, args []ir.Argument) error {
	x := bool(e.resolve(args[1]).(types.Bool))
	y := bool(e.resolve(args[2]).(types.Bool))
	return e.symtab.Define(args[0].Var, types.Bool(x || y))
}

func execNot(e *Engine, args []ir.Argument) error {
	x := bool(e.resolve(args[1]).(types.Bool))
	return e.symtab.Define(args[0].Var, types.Bool(!x))
}
