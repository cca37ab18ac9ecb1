package interp

import (
	"fmt"
	"io"
)

// Report writes a CodedError to w in the one-line shape spec §7 requires.
// With instruction context it reads "Error at instruction #<order>
// (<OPCODE>): <msg>"; without it (ingest-stage errors) just "<msg>".
func Report(w io.Writer, err *CodedError) {
	if err.Opcode != "" {
		fmt.Fprintf(w, "Error at instruction #%d (%s): %s\n", err.Order, err.Opcode, err.Msg)
		return
	}
	fmt.Fprintf(w, "%s\n", err.Msg)
}

// Trace writes a diagnostic line that never terminates the process — the
// DPRINT/BREAK sibling of Report, grounded on the original's
// code_err(None, ...) calls, which share code_err's "Error at instruction
// #<order>: " prefix but never exit.
func Trace(w io.Writer, order uint32, text string) {
	fmt.Fprintf(w, "Error at instruction #%d: %s\n", order, text)
}
