package machine

import (
	"github.com/sktedro/ipp22/lang/ir"
	"github.com/sktedro/ipp22/lang/types"
)

func execLt(e *Engine, args []ir.Argument) error {
	return e.symtab.Define(args[0].Var, types.Bool(types.Less(e.resolve(args[1]), e.resolve(args[2]))))
}

func execGt(e *Engine, args []ir.Argument) error {
	return e.symtab.Define(args[0].Var, types.Bool(types.Less(e.resolve(args[2]), e.resolve(args[1]))))
}

func execEq(e *Engine, args []ir.Argument) error {
	return e.symtab.Define(args[0].Var, types.Bool(types.Equal(e.resolve(args[1]), e.resolve(args[2]))))
}
