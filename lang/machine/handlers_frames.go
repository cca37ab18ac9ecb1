package machine

import (
	"github.com/sktedro/ipp22/lang/ir"
	"github.com/sktedro/ipp22/lang/types"
)

func execMove(e *Engine, args []ir.Argument) error {
	return e.symtab.Define(args[0].Var, e.resolve(args[1]))
}

func execCreateFrame(e *Engine, args []ir.Argument) error {
	e.symtab.CreateFrame()
	return nil
}

func execPushFrame(e *Engine, args []ir.Argument) error {
	return e.symtab.PushFrame()
}

func execPopFrame(e *Engine, args []ir.Argument) error {
	return e.symtab.PopFrame()
}

func execDefvar(e *Engine, args []ir.Argument) error {
	return e.symtab.Declare(args[0].Var)
}

func execType(e *Engine, args []ir.Argument) error {
	var t string
	if args[1].Kind == ir.KindVar {
		cell, err := e.symtab.Cell(args[1].Var)
		if err != nil {
			return err
		}
		if cell.Defined() {
			t = cell.Value().Type()
		}
	} else {
		t = args[1].Literal.Type()
	}
	return e.symtab.Define(args[0].Var, types.Str(t))
}
