package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/utkarsh5026/budgetwc/internal/count"
)

// Fields selects which counters are printed.
type Fields struct {
	Lines bool
	Words bool
	Bytes bool
	Chars bool
}

// None reports whether no counter was selected.
func (f Fields) None() bool {
	return !f.Lines && !f.Words && !f.Bytes && !f.Chars
}

// Normalize returns f, or lines+words+bytes when nothing was selected.
func (f Fields) Normalize() Fields {
	if f.None() {
		return Fields{Lines: true, Words: true, Bytes: true}
	}
	return f
}

// FormatLine renders one result line: the selected counters in the fixed
// order lines, words, bytes, chars, followed by name. An empty name (stdin)
// leaves just the counters.
func FormatLine(t count.Tally, f Fields, name string) string {
	f = f.Normalize()

	var b strings.Builder
	if f.Lines {
		fmt.Fprintf(&b, "%d ", t.Lines)
	}
	if f.Words {
		fmt.Fprintf(&b, " %d ", t.Words)
	}
	if f.Bytes {
		fmt.Fprintf(&b, " %d ", t.Bytes)
	}
	if f.Chars {
		fmt.Fprintf(&b, " %d ", t.Chars)
	}
	b.WriteString(name)
	b.WriteByte('\n')
	return b.String()
}

// WriteLine writes FormatLine's output to w.
func WriteLine(w io.Writer, t count.Tally, f Fields, name string) error {
	_, err := io.WriteString(w, FormatLine(t, f, name))
	return err
}
