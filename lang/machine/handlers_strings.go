package machine

import (
	"unicode/utf8"

	"github.com/sktedro/ipp22/internal/interp"
	"github.com/sktedro/ipp22/lang/ir"
	"github.com/sktedro/ipp22/lang/types"
)

func execInt2Char(e *Engine, args []ir.Argument) error {
	n := int64(e.resolve(args[1]).(types.Int))
	if n < 0 || n > utf8.MaxRune || !utf8.ValidRune(rune(n)) {
		return interp.New(interp.ExitStringRange, "%d is not a valid Unicode code point", n)
	}
	return e.symtab.Define(args[0].Var, types.Str(string(rune(n))))
}

func execStri2Int(e *Engine, args []ir.Argument) error {
	runes := e.resolve(args[1]).(types.Str).Runes()
	i := int64(e.resolve(args[2]).(types.Int))
	if i < 0 || i >= int64(len(runes)) {
		return interp.New(interp.ExitStringRange, "index %d out of range for string of length %d", i, len(runes))
	}
	return e.symtab.Define(args[0].Var, types.Int(int64(runes[i])))
}

func execConcat(e *Engine, args []ir.Argument) error {
	a := e.resolve(args[1]).(types.Str)
	b := e.resolve(args[2]).(types.Str)
	return e.symtab.Define(args[0].Var, types.Str(string(a)+string(b)))
}

func execStrlen(e *Engine, args []ir.Argument) error {
	s := e.resolve(args[1]).(types.Str)
	return e.symtab.Define(args[0].Var, types.Int(int64(len(s.Runes()))))
}

func execGetChar(e *Engine, args []ir.Argument) error {
	runes := e.resolve(args[1]).(types.Str).Runes()
	i := int64(e.resolve(args[2]).(types.Int))
	if i < 0 || i >= int64(len(runes)) {
		return interp.New(interp.ExitStringRange, "index %d out of range for string of length %d", i, len(runes))
	}
	return e.symtab.Define(args[0].Var, types.Str(string(runes[i])))
}

func execSetChar(e *Engine, args []ir.Argument) error {
	ref := args[0].Var
	cell, err := e.symtab.Cell(ref)
	if err != nil {
		return err
	}
	base := cell.Value().(types.Str).Runes()
	idx := int64(e.resolve(args[1]).(types.Int))
	repl := e.resolve(args[2]).(types.Str).Runes()
	if idx < 0 || idx >= int64(len(base)) || len(repl) == 0 {
		return interp.New(interp.ExitStringRange, "SETCHAR index %d out of range or empty replacement", idx)
	}
	base[idx] = repl[0]
	return e.symtab.Define(ref, types.Str(string(base)))
}
