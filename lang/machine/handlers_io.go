package machine

import (
	"fmt"
	"io"
	"strings"

	"github.com/sktedro/ipp22/lang/ir"
	"github.com/sktedro/ipp22/lang/types"
)

// execRead implements READ var type, per spec §4.5: a line is consumed
// from stdin and converted according to type's text; anything that fails
// to parse, or EOF, yields nil rather than an error — the original
// implementation's behavior, not a static-validation failure.
func execRead(e *Engine, args []ir.Argument) error {
	line, err := e.Stdin.ReadString('\n')
	if err != nil && line == "" {
		return e.symtab.Define(args[0].Var, types.Nil)
	}
	line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")

	switch args[1].Text {
	case "int":
		n, ok := parseInt(line)
		if !ok {
			return e.symtab.Define(args[0].Var, types.Nil)
		}
		return e.symtab.Define(args[0].Var, types.Int(n))
	case "bool":
		return e.symtab.Define(args[0].Var, types.Bool(strings.EqualFold(line, "true")))
	case "string":
		return e.symtab.Define(args[0].Var, types.Str(line))
	default:
		return e.symtab.Define(args[0].Var, types.Nil)
	}
}

// execWrite implements WRITE symb, per spec §4.5: Nil writes nothing,
// grounded on original_source/interpret.py's e_write, which guards
// `if args[0].symb_type() != "nil":` before printing.
func execWrite(e *Engine, args []ir.Argument) error {
	v := e.resolve(args[0])
	if v.Type() == "nil" {
		return nil
	}
	_, err := fmt.Fprint(e.Stdout, v.String())
	if err != nil && err != io.EOF {
		return err
	}
	return nil
}
