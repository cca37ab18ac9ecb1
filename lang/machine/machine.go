// Package machine implements the IPPcode22 execution engine: the
// three-tier frame model, the opcode dispatch table, and the
// fetch-validate-execute loop of spec §4.
package machine

import (
	"bufio"
	"context"
	"io"

	"github.com/sktedro/ipp22/internal/interp"
	"github.com/sktedro/ipp22/lang/ir"
	"github.com/sktedro/ipp22/lang/resolver"
	"github.com/sktedro/ipp22/lang/types"
)

// Engine holds everything a running program needs: the instruction vector
// in program order, the label map built by the resolver, the three-tier
// symbol table, the data and return stacks, and the I/O handles WRITE,
// READ, DPRINT and BREAK address.
type Engine struct {
	instrs []ir.Instruction
	labels resolver.LabelMap
	pos    int

	symtab    *SymbolTable
	dataStack []types.Value
	retStack  []int

	Stdout io.Writer
	Stderr io.Writer
	Stdin  *bufio.Reader

	// MaxSteps bounds the number of executed instructions; zero means
	// unbounded. Grounded on the teacher's Thread.maxSteps cooperative
	// cancellation mechanism.
	MaxSteps uint64
	steps    uint64

	order   uint32
	opcode  string
	halted  bool
	exitCode int
}

// NewEngine builds an Engine ready to run instrs starting at the first
// instruction in program order.
func NewEngine(instrs []ir.Instruction, labels resolver.LabelMap, stdout, stderr io.Writer, stdin io.Reader) *Engine {
	return &Engine{
		instrs: instrs,
		labels: labels,
		symtab: newSymbolTable(),
		Stdout: stdout,
		Stderr: stderr,
		Stdin:  bufio.NewReader(stdin),
	}
}

// Run executes the program to completion, to an EXIT instruction, to a
// runtime error, or until ctx is cancelled. The returned exit code matches
// spec §6 on every path except cancellation, which is not itself part of
// that taxonomy.
func (e *Engine) Run(ctx context.Context) (int, error) {
	for e.pos < len(e.instrs) {
		select {
		case <-ctx.Done():
			return 1, ctx.Err()
		default:
		}

		instr := e.instrs[e.pos]
		e.order = instr.Order
		e.opcode = string(instr.Opcode)

		desc, ok := opcodeTable[instr.Opcode]
		if !ok {
			return e.fail(interp.New(interp.ExitSemantic, "unknown instruction %s", instr.Opcode))
		}
		if err := e.validate(desc, instr.Args); err != nil {
			return e.fail(err)
		}

		before := e.pos
		if err := desc.Handler(e, instr.Args); err != nil {
			return e.fail(err)
		}
		if e.halted {
			return e.exitCode, nil
		}
		if e.pos == before {
			e.pos++
		}

		e.steps++
		if e.MaxSteps > 0 && e.steps >= e.MaxSteps {
			return e.fail(interp.New(interp.ExitSemantic, "step limit of %d instructions exceeded", e.MaxSteps))
		}
	}
	return e.exitCode, nil
}

func (e *Engine) fail(err error) (int, error) {
	if ce, ok := err.(*interp.CodedError); ok {
		attributed := ce.At(e.order, e.opcode)
		return attributed.Code, attributed
	}
	return 1, err
}

// validate runs the five-step check of spec §4.4 against instr's actual
// arguments: arity, declared/defined preconditions, static kind, concrete
// data type, and operand-family agreement.
func (e *Engine) validate(desc opcodeDescriptor, args []ir.Argument) error {
	if len(args) != desc.Arity {
		return interp.New(interp.ExitWrongType, "expected %d argument(s), got %d", desc.Arity, len(args))
	}

	for i := range args {
		if err := e.checkRequirement(desc.Requirements[i], args[i]); err != nil {
			return err
		}
	}

	for i := range args {
		if !kindMatches(desc.Kinds[i], args[i].Kind) {
			return interp.New(interp.ExitWrongType, "argument %d: wrong argument kind", i+1)
		}
	}

	var eqSeen bool
	var eqType string
	var eqHasNil bool
	for i := range args {
		switch desc.DataTypes[i] {
		case DTAny:
			continue
		case DTInt, DTString, DTBool:
			want := dtName(desc.DataTypes[i])
			if got := e.resolvedType(args[i]); got != want {
				return interp.New(interp.ExitWrongType, "argument %d: expected %s, got %s", i+1, want, got)
			}
		case DTEq:
			got := e.resolvedType(args[i])
			if got == "nil" {
				eqHasNil = true
			}
			if !eqSeen {
				eqType, eqSeen = got, true
			} else if got != eqType && got != "nil" && eqType != "nil" {
				return interp.New(interp.ExitWrongType, "argument %d: operand types differ (%s vs %s)", i+1, eqType, got)
			}
		}
	}
	if desc.ForbidNil && eqHasNil {
		return interp.New(interp.ExitWrongType, "nil is not an ordered operand")
	}
	return nil
}

// checkRequirement is step 2 of spec §4.4: a label argument must exist in
// the label map (error 52); a variable argument must be declared (error
// 54) and, if the requirement demands it, defined (error 56). Literal and
// "type" arguments always satisfy any requirement.
func (e *Engine) checkRequirement(req Requirement, arg ir.Argument) error {
	if req == ReqNone {
		return nil
	}
	switch arg.Kind {
	case ir.KindLabel:
		if _, ok := e.labels[arg.Text]; !ok {
			return interp.New(interp.ExitSemantic, "label %q is not defined", arg.Text)
		}
		return nil
	case ir.KindVar:
		cell, err := e.symtab.Cell(arg.Var)
		if err != nil {
			return err
		}
		if req == ReqDefined && !cell.Defined() {
			return errUndefined(arg.Var.String())
		}
		return nil
	default:
		return nil
	}
}

func kindMatches(k DescKind, argKind ir.Kind) bool {
	switch k {
	case DescVar:
		return argKind == ir.KindVar
	case DescSymb:
		return argKind == ir.KindVar || argKind.IsLiteral()
	case DescLabel:
		return argKind == ir.KindLabel
	case DescType:
		return argKind == ir.KindType
	default:
		return false
	}
}

func dtName(d DataTypeReq) string {
	switch d {
	case DTInt:
		return "int"
	case DTString:
		return "string"
	case DTBool:
		return "bool"
	default:
		return "any"
	}
}

// resolvedType is step 4/5's notion of "the argument's current data
// type": a literal's fixed type, or a variable's Cell's current type, or
// "" for a declared-but-undefined variable (validate never meets that
// case, since it only calls resolvedType for concrete-type and DTEq
// positions, and every one of those also requires ReqDefined).
func (e *Engine) resolvedType(arg ir.Argument) string {
	if arg.Kind == ir.KindVar {
		cell, err := e.symtab.Cell(arg.Var)
		if err != nil || !cell.Defined() {
			return ""
		}
		return cell.Value().Type()
	}
	if arg.Kind.IsLiteral() {
		return arg.Literal.Type()
	}
	return ""
}

// resolve returns the value a validated symb argument carries: a
// variable's current Cell value, or a literal's own value.
func (e *Engine) resolve(arg ir.Argument) types.Value {
	if arg.Kind == ir.KindVar {
		cell, _ := e.symtab.Cell(arg.Var)
		return cell.Value()
	}
	return arg.Literal
}
