package machine_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sktedro/ipp22/internal/interp"
	"github.com/sktedro/ipp22/lang/ir"
	"github.com/sktedro/ipp22/lang/machine"
	"github.com/sktedro/ipp22/lang/resolver"
	"github.com/sktedro/ipp22/lang/types"
)

func gf(name string) ir.Argument {
	return ir.Argument{Kind: ir.KindVar, Var: ir.VarRef{Frame: ir.FrameGlobal, Name: name}}
}

func litInt(n int64) ir.Argument     { return ir.Argument{Kind: ir.KindInt, Literal: types.Int(n)} }
func litStr(s string) ir.Argument    { return ir.Argument{Kind: ir.KindString, Literal: types.Str(s)} }
func litBool(b bool) ir.Argument     { return ir.Argument{Kind: ir.KindBool, Literal: types.Bool(b)} }
func litNil() ir.Argument            { return ir.Argument{Kind: ir.KindNil, Literal: types.Nil} }
func label(name string) ir.Argument  { return ir.Argument{Kind: ir.KindLabel, Text: name} }
func typeTag(name string) ir.Argument { return ir.Argument{Kind: ir.KindType, Text: name} }

func instr(order uint32, op ir.Opcode, args ...ir.Argument) ir.Instruction {
	return ir.Instruction{Order: order, Opcode: op, Args: args}
}

func runProgram(t *testing.T, instrs []ir.Instruction, stdin string) (int, string, string, error) {
	t.Helper()
	labels, err := resolver.Resolve(instrs)
	require.NoError(t, err)
	var out, errOut bytes.Buffer
	eng := machine.NewEngine(instrs, labels, &out, &errOut, strings.NewReader(stdin))
	code, runErr := eng.Run(context.Background())
	return code, out.String(), errOut.String(), runErr
}

func TestArithmeticAndWrite(t *testing.T) {
	instrs := []ir.Instruction{
		instr(1, "DEFVAR", gf("x")),
		instr(2, "MOVE", gf("x"), litInt(10)),
		instr(3, "ADD", gf("x"), gf("x"), litInt(5)),
		instr(4, "WRITE", gf("x")),
	}
	code, out, _, err := runProgram(t, instrs, "")
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, "15", out)
}

func TestLoopWithLabelAndJump(t *testing.T) {
	instrs := []ir.Instruction{
		instr(1, "DEFVAR", gf("i")),
		instr(2, "MOVE", gf("i"), litInt(0)),
		instr(3, "DEFVAR", gf("done")),
		instr(4, "LABEL", label("loop")),
		instr(5, "ADD", gf("i"), gf("i"), litInt(1)),
		instr(6, "LT", gf("done"), gf("i"), litInt(3)),
		instr(7, "JUMPIFNEQ", label("loop"), gf("done"), litBool(false)),
		instr(8, "WRITE", gf("i")),
	}
	code, out, _, err := runProgram(t, instrs, "")
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, "3", out)
}

func TestCallAndReturn(t *testing.T) {
	instrs := []ir.Instruction{
		instr(1, "CALL", label("fn")),
		instr(2, "WRITE", litStr("after")),
		instr(3, "EXIT", litInt(0)),
		instr(4, "LABEL", label("fn")),
		instr(5, "WRITE", litStr("in fn; ")),
		instr(6, "RETURN"),
	}
	code, out, _, err := runProgram(t, instrs, "")
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, "in fn; after", out)
}

func TestEqNilIsLegalButLtForbidsIt(t *testing.T) {
	instrs := []ir.Instruction{
		instr(1, "DEFVAR", gf("x")),
		instr(2, "DEFVAR", gf("y")),
		instr(3, "MOVE", gf("x"), litNil()),
		instr(4, "MOVE", gf("y"), litInt(1)),
		instr(5, "DEFVAR", gf("r")),
		instr(6, "EQ", gf("r"), gf("x"), gf("y")),
		instr(7, "WRITE", gf("r")),
	}
	code, out, _, err := runProgram(t, instrs, "")
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, "false", out)

	ltInstrs := []ir.Instruction{
		instr(1, "DEFVAR", gf("x")),
		instr(2, "DEFVAR", gf("y")),
		instr(3, "MOVE", gf("x"), litNil()),
		instr(4, "MOVE", gf("y"), litInt(1)),
		instr(5, "DEFVAR", gf("r")),
		instr(6, "LT", gf("r"), gf("x"), gf("y")),
	}
	code, _, _, err = runProgram(t, ltInstrs, "")
	require.Error(t, err)
	require.Equal(t, interp.ExitWrongType, code)
}

func TestUndeclaredVariableIsError54(t *testing.T) {
	instrs := []ir.Instruction{
		instr(1, "WRITE", gf("ghost")),
	}
	code, _, _, err := runProgram(t, instrs, "")
	require.Error(t, err)
	require.Equal(t, interp.ExitUndeclaredVar, code)
}

func TestDeclaredButUndefinedIsError56(t *testing.T) {
	instrs := []ir.Instruction{
		instr(1, "DEFVAR", gf("x")),
		instr(2, "WRITE", gf("x")),
	}
	code, _, _, err := runProgram(t, instrs, "")
	require.Error(t, err)
	require.Equal(t, interp.ExitMissingValue, code)
}

func TestDivisionByZeroIsError57(t *testing.T) {
	instrs := []ir.Instruction{
		instr(1, "DEFVAR", gf("r")),
		instr(2, "IDIV", gf("r"), litInt(1), litInt(0)),
	}
	code, _, _, err := runProgram(t, instrs, "")
	require.Error(t, err)
	require.Equal(t, interp.ExitBadOperandValue, code)
}

func TestFloorDivisionRoundsTowardNegativeInfinity(t *testing.T) {
	instrs := []ir.Instruction{
		instr(1, "DEFVAR", gf("r")),
		instr(2, "IDIV", gf("r"), litInt(-7), litInt(2)),
		instr(3, "WRITE", gf("r")),
	}
	code, out, _, err := runProgram(t, instrs, "")
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, "-4", out)
}

func TestStringOps(t *testing.T) {
	instrs := []ir.Instruction{
		instr(1, "DEFVAR", gf("s")),
		instr(2, "CONCAT", gf("s"), litStr("foo"), litStr("bar")),
		instr(3, "DEFVAR", gf("n")),
		instr(4, "STRLEN", gf("n"), gf("s")),
		instr(5, "WRITE", gf("n")),
		instr(6, "WRITE", litStr(" ")),
		instr(7, "DEFVAR", gf("c")),
		instr(8, "GETCHAR", gf("c"), gf("s"), litInt(3)),
		instr(9, "WRITE", gf("c")),
	}
	code, out, _, err := runProgram(t, instrs, "")
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, "6 b", out)
}

func TestGetCharOutOfRangeIsError58(t *testing.T) {
	instrs := []ir.Instruction{
		instr(1, "DEFVAR", gf("c")),
		instr(2, "GETCHAR", gf("c"), litStr("hi"), litInt(9)),
	}
	code, _, _, err := runProgram(t, instrs, "")
	require.Error(t, err)
	require.Equal(t, interp.ExitStringRange, code)
}

func TestReadParsesTypedStdinLines(t *testing.T) {
	instrs := []ir.Instruction{
		instr(1, "DEFVAR", gf("n")),
		instr(2, "READ", gf("n"), typeTag("int")),
		instr(3, "WRITE", gf("n")),
	}
	code, out, _, err := runProgram(t, instrs, "42\n")
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, "42", out)
}

func TestReadFailureYieldsNilNotError(t *testing.T) {
	instrs := []ir.Instruction{
		instr(1, "DEFVAR", gf("n")),
		instr(2, "READ", gf("n"), typeTag("int")),
		instr(3, "DEFVAR", gf("t")),
		instr(4, "TYPE", gf("t"), gf("n")),
		instr(5, "WRITE", gf("t")),
	}
	code, out, _, err := runProgram(t, instrs, "not-a-number\n")
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, "nil", out)
}

func TestWriteOfNilPrintsNothing(t *testing.T) {
	instrs := []ir.Instruction{
		instr(1, "DEFVAR", gf("n")),
		instr(2, "READ", gf("n"), typeTag("int")),
		instr(3, "WRITE", litStr("before,")),
		instr(4, "WRITE", gf("n")),
		instr(5, "WRITE", litStr("after")),
	}
	code, out, _, err := runProgram(t, instrs, "not-a-number\n")
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, "before,after", out)
}

func TestExitOutOfRangeIsError57(t *testing.T) {
	instrs := []ir.Instruction{instr(1, "EXIT", litInt(50))}
	code, _, _, err := runProgram(t, instrs, "")
	require.Error(t, err)
	require.Equal(t, interp.ExitBadOperandValue, code)
}

func TestExitSetsProcessExitCode(t *testing.T) {
	instrs := []ir.Instruction{
		instr(1, "WRITE", litStr("before")),
		instr(2, "EXIT", litInt(7)),
		instr(3, "WRITE", litStr("unreachable")),
	}
	code, out, _, err := runProgram(t, instrs, "")
	require.NoError(t, err)
	require.Equal(t, 7, code)
	require.Equal(t, "before", out)
}

func TestFrameStack(t *testing.T) {
	instrs := []ir.Instruction{
		instr(1, "CREATEFRAME"),
		instr(2, "DEFVAR", ir.Argument{Kind: ir.KindVar, Var: ir.VarRef{Frame: ir.FrameTemp, Name: "x"}}),
		instr(3, "MOVE", ir.Argument{Kind: ir.KindVar, Var: ir.VarRef{Frame: ir.FrameTemp, Name: "x"}}, litInt(1)),
		instr(4, "PUSHFRAME"),
		instr(5, "WRITE", ir.Argument{Kind: ir.KindVar, Var: ir.VarRef{Frame: ir.FrameLocal, Name: "x"}}),
		instr(6, "POPFRAME"),
	}
	code, out, _, err := runProgram(t, instrs, "")
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, "1", out)
}

func TestPushFrameWithoutCreateFrameIsError55(t *testing.T) {
	instrs := []ir.Instruction{instr(1, "PUSHFRAME")}
	code, _, _, err := runProgram(t, instrs, "")
	require.Error(t, err)
	require.Equal(t, interp.ExitNoSuchFrame, code)
}

func TestDataStackPushPop(t *testing.T) {
	instrs := []ir.Instruction{
		instr(1, "PUSHS", litInt(1)),
		instr(2, "PUSHS", litInt(2)),
		instr(3, "DEFVAR", gf("b")),
		instr(4, "DEFVAR", gf("a")),
		instr(5, "POPS", gf("b")),
		instr(6, "POPS", gf("a")),
		instr(7, "WRITE", gf("a")),
		instr(8, "WRITE", gf("b")),
	}
	code, out, _, err := runProgram(t, instrs, "")
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, "12", out)
}

func TestPopsOnEmptyStackIsError56(t *testing.T) {
	instrs := []ir.Instruction{
		instr(1, "DEFVAR", gf("x")),
		instr(2, "POPS", gf("x")),
	}
	code, _, _, err := runProgram(t, instrs, "")
	require.Error(t, err)
	require.Equal(t, interp.ExitMissingValue, code)
}

func TestBreakWritesDumpToStderr(t *testing.T) {
	instrs := []ir.Instruction{
		instr(1, "DEFVAR", gf("x")),
		instr(2, "MOVE", gf("x"), litInt(1)),
		instr(3, "BREAK"),
	}
	code, _, errOut, err := runProgram(t, instrs, "")
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Contains(t, errOut, "BREAK")
	require.Contains(t, errOut, "x = 1 (int)")
}
