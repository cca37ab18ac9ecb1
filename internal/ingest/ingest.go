// Package ingest is the XML boundary of spec §6: it turns a
// <program> document into a sorted, structurally valid []ir.Instruction,
// or a *interp.CodedError carrying exit code 31 (not well-formed XML), 32
// (well-formed but not a valid IPPcode22 program, e.g. bad structural
// shape), or 53 (a literal's content doesn't match its declared type).
package ingest

import (
	"encoding/xml"
	"errors"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/sktedro/ipp22/internal/interp"
	"github.com/sktedro/ipp22/lang/ir"
	"github.com/sktedro/ipp22/lang/machine"
)

type xmlArg struct {
	Type string `xml:"type,attr"`
	Text string `xml:",chardata"`
}

type xmlInstruction struct {
	Order  string  `xml:"order,attr"`
	Opcode string  `xml:"opcode,attr"`
	Arg1   *xmlArg `xml:"arg1"`
	Arg2   *xmlArg `xml:"arg2"`
	Arg3   *xmlArg `xml:"arg3"`
}

type xmlProgram struct {
	XMLName      xml.Name
	Language     string           `xml:"language,attr"`
	Instructions []xmlInstruction `xml:"instruction"`
}

// Load decodes r into a sorted, validated instruction list. Structural
// problems (malformed XML, wrong root/language, bad attributes, unknown
// opcodes, duplicate orders) are reported as *interp.CodedError with no
// instruction context attached, per spec §7's "ingest-stage errors use a
// plain form" convention.
func Load(r io.Reader) ([]ir.Instruction, error) {
	dec := xml.NewDecoder(r)
	var doc xmlProgram
	if err := dec.Decode(&doc); err != nil {
		return nil, interp.New(interp.ExitXMLNotWellFormed, "input is not well-formed XML: %s", err)
	}
	if doc.XMLName.Local != "program" {
		return nil, interp.New(interp.ExitNotIPPcode22, "root element must be <program>, got <%s>", doc.XMLName.Local)
	}
	if !strings.EqualFold(doc.Language, "IPPcode22") {
		return nil, interp.New(interp.ExitNotIPPcode22, "language attribute must be %q, got %q", "IPPcode22", doc.Language)
	}

	instrs := make([]ir.Instruction, 0, len(doc.Instructions))
	seenOrder := make(map[uint32]bool, len(doc.Instructions))
	for _, xi := range doc.Instructions {
		instr, err := convertInstruction(xi)
		if err != nil {
			return nil, err
		}
		if seenOrder[instr.Order] {
			return nil, interp.New(interp.ExitNotIPPcode22, "duplicate instruction order %d", instr.Order)
		}
		seenOrder[instr.Order] = true
		instrs = append(instrs, instr)
	}

	sort.Sort(ir.ByOrder(instrs))
	return instrs, nil
}

func convertInstruction(xi xmlInstruction) (ir.Instruction, error) {
	order, err := strconv.ParseUint(xi.Order, 10, 32)
	if err != nil || order == 0 {
		return ir.Instruction{}, interp.New(interp.ExitNotIPPcode22, "instruction order %q must be a positive integer", xi.Order)
	}

	opcode := ir.NormalizeOpcode(xi.Opcode)
	if !machine.IsKnownOpcode(opcode) {
		return ir.Instruction{}, interp.New(interp.ExitNotIPPcode22, "unknown opcode %q", xi.Opcode)
	}

	rawArgs, err := denseArgs(xi)
	if err != nil {
		return ir.Instruction{}, err
	}

	args := make([]ir.Argument, 0, len(rawArgs))
	for i, ra := range rawArgs {
		kind, ok := ir.KindFromXML(ra.Type)
		if !ok {
			return ir.Instruction{}, interp.New(interp.ExitNotIPPcode22, "arg%d: unknown type %q", i+1, ra.Type)
		}
		arg, err := ir.NewArgument(i+1, kind, strings.TrimSpace(ra.Text))
		if err != nil {
			var litErr *ir.LiteralError
			if errors.As(err, &litErr) {
				return ir.Instruction{}, interp.New(interp.ExitWrongType, "arg%d: %s", i+1, err)
			}
			return ir.Instruction{}, interp.New(interp.ExitNotIPPcode22, "arg%d: %s", i+1, err)
		}
		args = append(args, arg)
	}

	return ir.Instruction{Order: uint32(order), Opcode: opcode, Args: args}, nil
}

// denseArgs validates that the present arg1/arg2/arg3 elements form a
// dense run from 1 (no gaps) and that each carries a type attribute, per
// spec §6.
func denseArgs(xi xmlInstruction) ([]*xmlArg, error) {
	all := [3]*xmlArg{xi.Arg1, xi.Arg2, xi.Arg3}
	var out []*xmlArg
	for i, a := range all {
		if a == nil {
			for _, rest := range all[i:] {
				if rest != nil {
					return nil, interp.New(interp.ExitNotIPPcode22, "argument positions are not dense from 1")
				}
			}
			break
		}
		if a.Type == "" {
			return nil, interp.New(interp.ExitNotIPPcode22, "arg%d: missing required type attribute", i+1)
		}
		out = append(out, a)
	}
	return out, nil
}
