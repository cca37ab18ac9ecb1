package machine

import "github.com/sktedro/ipp22/internal/interp"

func errNoSuchFrame(sigil string) *interp.CodedError {
	return interp.New(interp.ExitNoSuchFrame, "frame %s does not exist", sigil)
}

func errNotDeclared(ref string) *interp.CodedError {
	return interp.New(interp.ExitUndeclaredVar, "variable %s is not declared", ref)
}

func errRedeclared(name string) *interp.CodedError {
	return interp.New(interp.ExitSemantic, "variable %q redeclared in this frame", name)
}

func errUndefined(ref string) *interp.CodedError {
	return interp.New(interp.ExitMissingValue, "variable %s is declared but not defined", ref)
}
