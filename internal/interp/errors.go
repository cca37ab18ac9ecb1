// Package interp implements the error taxonomy and exit-code reporting of
// spec §6/§7: every engine failure carries one of the fixed numeric exit
// codes, and is reported as a single line naming the offending
// instruction's order and opcode before the process terminates.
//
// Grounded on original_source/interpret.py's err/code_err pair: err prints
// a message and optionally exits; code_err additionally prefixes the
// current instruction's order. CodedError/Report are the Go shape of that
// same split — an unattributed CodedError (zero Order, empty Opcode)
// reports in err's plain form, an attributed one in code_err's form.
package interp

import "fmt"

// Exit codes, per spec §6.
const (
	ExitOK               = 0
	ExitCLIUsage         = 10
	ExitFileOpen         = 11
	ExitXMLNotWellFormed = 31
	ExitNotIPPcode22     = 32
	ExitSemantic         = 52
	ExitWrongType        = 53
	ExitUndeclaredVar    = 54
	ExitNoSuchFrame      = 55
	ExitMissingValue     = 56
	ExitBadOperandValue  = 57
	ExitStringRange      = 58
)

// CodedError is an error that terminates the interpreter with Code. Order
// and Opcode are filled in by the engine when the error surfaces during
// execution of a specific instruction; they are zero/empty for errors
// raised before execution starts (ingest, label resolution).
type CodedError struct {
	Code   int
	Order  uint32
	Opcode string
	Msg    string
}

func (e *CodedError) Error() string { return e.Msg }

// New builds a CodedError not yet attributed to an instruction.
func New(code int, format string, args ...any) *CodedError {
	return &CodedError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// At returns a copy of e attributed to the given instruction, used by the
// engine loop to add order/opcode context to an error a handler returned.
func (e *CodedError) At(order uint32, opcode string) *CodedError {
	cp := *e
	cp.Order, cp.Opcode = order, opcode
	return &cp
}
