package machine

import (
	"github.com/sktedro/ipp22/internal/interp"
	"github.com/sktedro/ipp22/lang/ir"
	"github.com/sktedro/ipp22/lang/types"
)

func execCall(e *Engine, args []ir.Argument) error {
	target := e.labels[args[0].Text]
	e.retStack = append(e.retStack, e.pos+1)
	e.pos = target
	return nil
}

func execReturn(e *Engine, args []ir.Argument) error {
	if len(e.retStack) == 0 {
		return interp.New(interp.ExitMissingValue, "return stack is empty")
	}
	n := len(e.retStack) - 1
	e.pos = e.retStack[n]
	e.retStack = e.retStack[:n]
	return nil
}

func execLabel(e *Engine, args []ir.Argument) error {
	return nil
}

func execJump(e *Engine, args []ir.Argument) error {
	e.pos = e.labels[args[0].Text]
	return nil
}

func execJumpIfEq(e *Engine, args []ir.Argument) error {
	if types.Equal(e.resolve(args[1]), e.resolve(args[2])) {
		e.pos = e.labels[args[0].Text]
	}
	return nil
}

func execJumpIfNeq(e *Engine, args []ir.Argument) error {
	if !types.Equal(e.resolve(args[1]), e.resolve(args[2])) {
		e.pos = e.labels[args[0].Text]
	}
	return nil
}
