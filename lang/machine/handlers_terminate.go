package machine

import (
	"fmt"

	"github.com/sktedro/ipp22/internal/interp"
	"github.com/sktedro/ipp22/lang/ir"
	"github.com/sktedro/ipp22/lang/types"
)

func execExit(e *Engine, args []ir.Argument) error {
	code := int64(e.resolve(args[0]).(types.Int))
	if code < 0 || code > 49 {
		return interp.New(interp.ExitBadOperandValue, "exit code %d out of range 0-49", code)
	}
	e.halted = true
	e.exitCode = int(code)
	return nil
}

func execDprint(e *Engine, args []ir.Argument) error {
	interp.Trace(e.Stderr, e.order, e.resolve(args[0]).String())
	return nil
}

func execBreak(e *Engine, args []ir.Argument) error {
	interp.Trace(e.Stderr, e.order, fmt.Sprintf("BREAK, %d instruction(s) executed so far:", e.steps))
	e.symtab.Dump(e.Stderr)
	return nil
}
