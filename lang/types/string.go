package types

import (
	"strconv"
	"strings"
)

// Str is the type of a text string: an immutable sequence of Unicode code
// points. \ddd escapes in source literals are already decoded to code
// points by the time a Str is constructed (see lang/ir.Argument).
type Str string

var (
	_ Value   = Str("")
	_ Ordered = Str("")
)

func (s Str) String() string { return string(s) }
func (s Str) Type() string   { return "string" }

// Runes returns the string's code points, the unit GETCHAR/SETCHAR/STRLEN
// and STRI2INT operate on.
func (s Str) Runes() []rune { return []rune(s) }

func (s Str) Quoted() string { return strconv.Quote(string(s)) }

// Less implements lexicographic order over code points, per spec §4.1.
func (s Str) Less(y Value) bool {
	return strings.Compare(string(s), string(y.(Str))) < 0
}
