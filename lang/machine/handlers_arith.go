package machine

import (
	"github.com/sktedro/ipp22/internal/interp"
	"github.com/sktedro/ipp22/lang/ir"
	"github.com/sktedro/ipp22/lang/types"
)

func binaryInt(e *Engine, args []ir.Argument, op func(a, b int64) (int64, error)) error {
	x := int64(e.resolve(args[1]).(types.Int))
	y := int64(e.resolve(args[2]).(types.Int))
	r, err := op(x, y)
	if err != nil {
		return err
	}
	return e.symtab.Define(args[0].Var, types.Int(r))
}

func execAdd(e *Engine, args []ir.Argument) error {
	return binaryInt(e, args, func(a, b int64) (int64, error) { return a + b, nil })
}

func execSub(e *Engine, args []ir.Argument) error {
	return binaryInt(e, args, func(a, b int64) (int64, error) { return a - b, nil })
}

func execMul(e *Engine, args []ir.Argument) error {
	return binaryInt(e, args, func(a, b int64) (int64, error) { return a * b, nil })
}

func execIdiv(e *Engine, args []ir.Argument) error {
	return binaryInt(e, args, func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, interp.New(interp.ExitBadOperandValue, "integer division by zero")
		}
		return floorDiv(a, b), nil
	})
}

// floorDiv rounds toward negative infinity, matching the original
// implementation's use of Python's // operator — Go's / truncates toward
// zero instead.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
