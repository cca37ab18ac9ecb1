// Package ir defines the in-memory intermediate representation IPPcode22
// instructions are decoded into: Instruction and Argument. It is the
// product of internal/ingest (§6 of the spec) and the input consumed by
// lang/resolver and lang/machine.
//
// Argument mirrors original_source/interpret.py's Argument class: escape
// decoding and literal-shape validation happen once, at construction, so
// that every later read of an Argument is infallible.
package ir

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sktedro/ipp22/lang/types"
)

// Kind is the static shape of an argument, taken from its XML type
// attribute.
type Kind uint8

const (
	KindVar Kind = iota
	KindInt
	KindString
	KindBool
	KindNil
	KindLabel
	KindType
)

var kindNames = [...]string{
	KindVar:    "var",
	KindInt:    "int",
	KindString: "string",
	KindBool:   "bool",
	KindNil:    "nil",
	KindLabel:  "label",
	KindType:   "type",
}

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return fmt.Sprintf("<invalid kind %d>", k)
	}
	return kindNames[k]
}

// KindFromXML maps an XML arg type="..." attribute to a Kind. ok is false
// for an unrecognized type string.
func KindFromXML(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// IsLiteral reports whether the kind denotes a literal (symb minus var).
func (k Kind) IsLiteral() bool {
	switch k {
	case KindInt, KindString, KindBool, KindNil:
		return true
	default:
		return false
	}
}

// Frame is the frame-sigil half of a variable reference.
type Frame uint8

const (
	FrameGlobal Frame = iota
	FrameLocal
	FrameTemp
)

var frameNames = [...]string{
	FrameGlobal: "GF",
	FrameLocal:  "LF",
	FrameTemp:   "TF",
}

func (f Frame) String() string {
	if int(f) >= len(frameNames) {
		return fmt.Sprintf("<invalid frame %d>", f)
	}
	return frameNames[f]
}

// VarRef is a frame-qualified variable name, e.g. GF@counter.
type VarRef struct {
	Frame Frame
	Name  string
}

func (v VarRef) String() string { return v.Frame.String() + "@" + v.Name }

var intRe = regexp.MustCompile(`^[+-]?[0-9]+$`)

// LiteralError marks a NewArgument failure caused by malformed literal
// content (bad int/bool/nil text) rather than a structural problem (bad
// var-ref shape, unknown frame sigil). internal/ingest uses this to tell
// the two apart: spec §6's code-32 bucket covers structural shape, while
// a bad literal value is a data-type error, code 53 — grounded on
// original_source/interpret.py's Argument.__init__, which raises
// code_err(53, ...) for exactly these three cases.
type LiteralError struct {
	err error
}

func (e *LiteralError) Error() string { return e.err.Error() }
func (e *LiteralError) Unwrap() error { return e.err }

func literalErrorf(format string, args ...any) error {
	return &LiteralError{err: fmt.Errorf(format, args...)}
}

// Argument is a single positional operand of an Instruction: either a
// variable reference (Kind == KindVar), a label or type name (KindLabel /
// KindType, Text holds the raw name), or a typed literal (Literal holds the
// decoded value).
type Argument struct {
	Position int // 1, 2 or 3
	Kind     Kind

	Var     VarRef      // valid iff Kind == KindVar
	Literal types.Value // valid iff Kind.IsLiteral()
	Text    string      // valid iff Kind == KindLabel || Kind == KindType
}

// NewArgument validates raw (the XML element's text content) against kind
// and builds an Argument. It is the single place that decodes \ddd escapes
// and validates literal shapes (int/bool/nil), per spec §4.1/§4.2.
func NewArgument(position int, kind Kind, raw string) (Argument, error) {
	a := Argument{Position: position, Kind: kind}
	switch kind {
	case KindVar:
		fr, name, err := splitVarRef(raw)
		if err != nil {
			return Argument{}, err
		}
		a.Var = VarRef{Frame: fr, Name: name}
	case KindInt:
		if !intRe.MatchString(raw) {
			return Argument{}, literalErrorf("invalid integer literal %q", raw)
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Argument{}, literalErrorf("invalid integer literal %q: %s", raw, err)
		}
		a.Literal = types.Int(n)
	case KindString:
		decoded, err := decodeEscapes(raw)
		if err != nil {
			return Argument{}, err
		}
		a.Literal = types.Str(decoded)
	case KindBool:
		switch raw {
		case "true":
			a.Literal = types.True
		case "false":
			a.Literal = types.False
		default:
			return Argument{}, literalErrorf("invalid bool literal %q", raw)
		}
	case KindNil:
		if raw != "nil" {
			return Argument{}, literalErrorf("invalid nil literal %q", raw)
		}
		a.Literal = types.Nil
	case KindLabel, KindType:
		a.Text = raw
	default:
		return Argument{}, fmt.Errorf("unknown argument kind %d", kind)
	}
	return a, nil
}

func splitVarRef(raw string) (Frame, string, error) {
	sigil, name, ok := strings.Cut(raw, "@")
	if !ok || name == "" {
		return 0, "", fmt.Errorf("malformed variable reference %q", raw)
	}
	switch sigil {
	case "GF":
		return FrameGlobal, name, nil
	case "LF":
		return FrameLocal, name, nil
	case "TF":
		return FrameTemp, name, nil
	default:
		return 0, "", fmt.Errorf("unknown frame sigil %q in %q", sigil, raw)
	}
}

// decodeEscapes replaces every \ddd (exactly three decimal digits, value
// 0-255) run with the corresponding code point, once, per spec §4.1.
func decodeEscapes(s string) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		if i+3 >= len(s) {
			return "", fmt.Errorf("truncated escape sequence in %q", s)
		}
		digits := s[i+1 : i+4]
		n, err := strconv.Atoi(digits)
		if err != nil || n < 0 || n > 255 {
			return "", fmt.Errorf("invalid escape sequence %q in %q", "\\"+digits, s)
		}
		b.WriteRune(rune(n))
		i += 3
	}
	return b.String(), nil
}
