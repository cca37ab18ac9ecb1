package maincmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mna/mainer"

	"github.com/sktedro/ipp22/internal/ingest"
	"github.com/sktedro/ipp22/internal/interp"
	"github.com/sktedro/ipp22/lang/machine"
	"github.com/sktedro/ipp22/lang/resolver"
)

const binName = "ipp22"

var (
	shortUsage = fmt.Sprintf(`usage: %s --source=PATH --input=PATH
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [--source=PATH] [--input=PATH]
       %[1]s -h|--help
       %[1]s -v|--version

Interpreter for IPPcode22, a three-address XML intermediate representation.

Valid flag options are:
       --source=PATH             Path to the XML program. Defaults to
                                 standard input.
       --input=PATH              Path to the program's input stream.
                                 Defaults to standard input.
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.

If neither --source nor --input is given, a short usage message is
printed and the program exits with status 0.
`, binName)
)

// Cmd is the ipp22 command line: no subcommands, a single Run operation
// (ingest → resolve → execute), per spec §6.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Source string `flag:"source"`
	Input  string `flag:"input"`

	args []string
}

func (c *Cmd) SetArgs(args []string) { c.args = args }

func (c *Cmd) Validate() error { return nil }

// Main parses flags, handles --help/--version and the no-flags "nothing
// to do" case, then runs the interpreter and maps its result to a
// process exit code.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.ExitCode(interp.ExitCLIUsage)
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.ExitCode(interp.ExitOK)
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.ExitCode(interp.ExitOK)
	}

	if c.Source == "" && c.Input == "" {
		fmt.Fprint(stdio.Stdout, shortUsage)
		return mainer.ExitCode(interp.ExitOK)
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	code, err := c.Run(ctx, stdio)
	if err != nil {
		if ce, ok := err.(*interp.CodedError); ok {
			interp.Report(stdio.Stderr, ce)
		} else {
			fmt.Fprintln(stdio.Stderr, err)
		}
	}
	return mainer.ExitCode(code)
}

// Run ingests the source program, resolves its labels, and executes it,
// returning the process exit code spec §6 specifies for the outcome.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio) (int, error) {
	sourceR, closeSource, err := openOrDefault(c.Source, stdio.Stdin)
	if err != nil {
		return interp.ExitFileOpen, err
	}
	defer closeSource()

	inputR, closeInput, err := openOrDefault(c.Input, stdio.Stdin)
	if err != nil {
		return interp.ExitFileOpen, err
	}
	defer closeInput()

	instrs, err := ingest.Load(sourceR)
	if err != nil {
		return codeOf(err), err
	}

	labels, err := resolver.Resolve(instrs)
	if err != nil {
		return codeOf(err), err
	}

	eng := machine.NewEngine(instrs, labels, stdio.Stdout, stdio.Stderr, inputR)
	return eng.Run(ctx)
}

func codeOf(err error) int {
	if ce, ok := err.(*interp.CodedError); ok {
		return ce.Code
	}
	return 1
}

func openOrDefault(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, interp.New(interp.ExitFileOpen, "cannot open %s: %s", path, err)
	}
	return f, func() { f.Close() }, nil
}
