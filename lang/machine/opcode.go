package machine

import (
	"strconv"
	"strings"

	"github.com/sktedro/ipp22/lang/ir"
)

// DescKind classifies what shape of argument a descriptor position accepts,
// independent of the concrete XML type attribute — the "static kind" check
// of spec §4.4, step 3.
type DescKind uint8

const (
	DescVar   DescKind = iota // must be a variable reference
	DescSymb                  // variable or literal (int/string/bool/nil)
	DescLabel                 // label name
	DescType                  // the "type" literal used by READ
)

// DataTypeReq is the concrete runtime data type a descriptor position
// demands, or one of the relational markers ("eq" in spec §4.4, step 5).
type DataTypeReq uint8

const (
	DTAny DataTypeReq = iota // no concrete-type check
	DTInt
	DTString
	DTBool
	DTEq // operand family must agree in type, modulo the nil exceptions below
)

// Requirement is the declared/defined precondition of spec §4.4, step 2.
type Requirement uint8

const (
	ReqNone     Requirement = iota // no check: typically a destination var
	ReqDeclared                    // label must exist in the label map, var must be declared
	ReqDefined                     // var must additionally hold a value
)

type handlerFunc func(e *Engine, args []ir.Argument) error

// opcodeDescriptor is one row of the dispatch table spec §4.4 describes:
// arity plus, per argument position, the static kind, runtime data-type
// requirement, and declared/defined precondition, and the handler that
// runs once every check passes.
type opcodeDescriptor struct {
	Arity        int
	Kinds        [3]DescKind
	DataTypes    [3]DataTypeReq
	Requirements [3]Requirement
	// ForbidNil rejects a DTEq position whose resolved type is nil
	// (LT/GT, spec §4.5: "nil is not ordered").
	ForbidNil bool
	Handler   handlerFunc
}

var opcodeTable = map[ir.Opcode]opcodeDescriptor{
	"MOVE": {
		Arity:        2,
		Kinds:        [3]DescKind{DescVar, DescSymb},
		Requirements: [3]Requirement{ReqNone, ReqDefined},
		Handler:      execMove,
	},
	"CREATEFRAME": {Handler: execCreateFrame},
	"PUSHFRAME":   {Handler: execPushFrame},
	"POPFRAME":    {Handler: execPopFrame},
	"DEFVAR": {
		Arity:   1,
		Kinds:   [3]DescKind{DescVar},
		Handler: execDefvar,
	},
	"CALL": {
		Arity:        1,
		Kinds:        [3]DescKind{DescLabel},
		Requirements: [3]Requirement{ReqDeclared},
		Handler:      execCall,
	},
	"RETURN": {Handler: execReturn},
	"PUSHS": {
		Arity:        1,
		Kinds:        [3]DescKind{DescSymb},
		Requirements: [3]Requirement{ReqDefined},
		Handler:      execPushs,
	},
	"POPS": {
		Arity:   1,
		Kinds:   [3]DescKind{DescVar},
		Handler: execPops,
	},
	"ADD":  arithDescriptor(execAdd),
	"SUB":  arithDescriptor(execSub),
	"MUL":  arithDescriptor(execMul),
	"IDIV": arithDescriptor(execIdiv),
	"LT":   relDescriptor(true, execLt),
	"GT":   relDescriptor(true, execGt),
	"EQ":   relDescriptor(false, execEq),
	"AND": {
		Arity:        3,
		Kinds:        [3]DescKind{DescVar, DescSymb, DescSymb},
		DataTypes:    [3]DataTypeReq{DTAny, DTBool, DTBool},
		Requirements: [3]Requirement{ReqNone, ReqDefined, ReqDefined},
		Handler:      execAnd,
	},
	"OR": {
		Arity:        3,
		Kinds:        [3]DescKind{DescVar, DescSymb, DescSymb},
		DataTypes:    [3]DataTypeReq{DTAny, DTBool, DTBool},
		Requirements: [3]Requirement{ReqNone, ReqDefined, ReqDefined},
		Handler:      execOr,
	},
	"NOT": {
		Arity:        2,
		Kinds:        [3]DescKind{DescVar, DescSymb},
		DataTypes:    [3]DataTypeReq{DTAny, DTBool},
		Requirements: [3]Requirement{ReqNone, ReqDefined},
		Handler:      execNot,
	},
	"INT2CHAR": {
		Arity:        2,
		Kinds:        [3]DescKind{DescVar, DescSymb},
		DataTypes:    [3]DataTypeReq{DTAny, DTInt},
		Requirements: [3]Requirement{ReqNone, ReqDefined},
		Handler:      execInt2Char,
	},
	"STRI2INT": {
		Arity:        3,
		Kinds:        [3]DescKind{DescVar, DescSymb, DescSymb},
		DataTypes:    [3]DataTypeReq{DTAny, DTString, DTInt},
		Requirements: [3]Requirement{ReqNone, ReqDefined, ReqDefined},
		Handler:      execStri2Int,
	},
	"READ": {
		Arity:   2,
		Kinds:   [3]DescKind{DescVar, DescType},
		Handler: execRead,
	},
	"WRITE": {
		Arity:        1,
		Kinds:        [3]DescKind{DescSymb},
		Requirements: [3]Requirement{ReqDefined},
		Handler:      execWrite,
	},
	"CONCAT": {
		Arity:        3,
		Kinds:        [3]DescKind{DescVar, DescSymb, DescSymb},
		DataTypes:    [3]DataTypeReq{DTAny, DTString, DTString},
		Requirements: [3]Requirement{ReqNone, ReqDefined, ReqDefined},
		Handler:      execConcat,
	},
	"STRLEN": {
		Arity:        2,
		Kinds:        [3]DescKind{DescVar, DescSymb},
		DataTypes:    [3]DataTypeReq{DTAny, DTString},
		Requirements: [3]Requirement{ReqNone, ReqDefined},
		Handler:      execStrlen,
	},
	"GETCHAR": {
		Arity:        3,
		Kinds:        [3]DescKind{DescVar, DescSymb, DescSymb},
		DataTypes:    [3]DataTypeReq{DTAny, DTString, DTInt},
		Requirements: [3]Requirement{ReqNone, ReqDefined, ReqDefined},
		Handler:      execGetChar,
	},
	"SETCHAR": {
		Arity:        3,
		Kinds:        [3]DescKind{DescVar, DescSymb, DescSymb},
		DataTypes:    [3]DataTypeReq{DTString, DTInt, DTString},
		Requirements: [3]Requirement{ReqDefined, ReqDefined, ReqDefined},
		Handler:      execSetChar,
	},
	"TYPE": {
		Arity:        2,
		Kinds:        [3]DescKind{DescVar, DescSymb},
		Requirements: [3]Requirement{ReqNone, ReqDeclared},
		Handler:      execType,
	},
	"LABEL": {
		Arity:   1,
		Kinds:   [3]DescKind{DescLabel},
		Handler: execLabel,
	},
	"JUMP": {
		Arity:        1,
		Kinds:        [3]DescKind{DescLabel},
		Requirements: [3]Requirement{ReqDeclared},
		Handler:      execJump,
	},
	"JUMPIFEQ":  jumpIfDescriptor(execJumpIfEq),
	"JUMPIFNEQ": jumpIfDescriptor(execJumpIfNeq),
	"EXIT": {
		Arity:        1,
		Kinds:        [3]DescKind{DescSymb},
		DataTypes:    [3]DataTypeReq{DTInt},
		Requirements: [3]Requirement{ReqDefined},
		Handler:      execExit,
	},
	"DPRINT": {
		Arity:        1,
		Kinds:        [3]DescKind{DescSymb},
		Requirements: [3]Requirement{ReqDefined},
		Handler:      execDprint,
	},
	"BREAK": {Handler: execBreak},
}

func arithDescriptor(h handlerFunc) opcodeDescriptor {
	return opcodeDescriptor{
		Arity:        3,
		Kinds:        [3]DescKind{DescVar, DescSymb, DescSymb},
		DataTypes:    [3]DataTypeReq{DTAny, DTInt, DTInt},
		Requirements: [3]Requirement{ReqNone, ReqDefined, ReqDefined},
		Handler:      h,
	}
}

func relDescriptor(forbidNil bool, h handlerFunc) opcodeDescriptor {
	return opcodeDescriptor{
		Arity:        3,
		Kinds:        [3]DescKind{DescVar, DescSymb, DescSymb},
		DataTypes:    [3]DataTypeReq{DTAny, DTEq, DTEq},
		Requirements: [3]Requirement{ReqNone, ReqDefined, ReqDefined},
		ForbidNil:    forbidNil,
		Handler:      h,
	}
}

func jumpIfDescriptor(h handlerFunc) opcodeDescriptor {
	return opcodeDescriptor{
		Arity:        3,
		Kinds:        [3]DescKind{DescLabel, DescSymb, DescSymb},
		DataTypes:    [3]DataTypeReq{DTAny, DTEq, DTEq},
		Requirements: [3]Requirement{ReqDeclared, ReqDefined, ReqDefined},
		Handler:      h,
	}
}

// IsKnownOpcode reports whether op is one of the 35 recognized IPPcode22
// instructions. internal/ingest uses this to reject an unknown opcode at
// parse time (error 32) rather than let it reach the engine.
func IsKnownOpcode(op ir.Opcode) bool {
	_, ok := opcodeTable[op]
	return ok
}

// Arity returns the declared argument count for a known opcode. The
// argument count itself is checked by the engine's validate step (error
// 53); internal/ingest only checks that argN positions are dense.
func Arity(op ir.Opcode) int {
	return opcodeTable[op].Arity
}

// parseInt parses an IPPcode22 int literal text form; kept here since
// READ needs it against string content that isn't itself a literal
// Argument (its stdin text).
func parseInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil
}
