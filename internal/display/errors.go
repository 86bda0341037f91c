package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// ErrorPrinter writes user-facing error lines prefixed with the program
// name. The prefix is red when color output is enabled.
type ErrorPrinter struct {
	w      io.Writer
	prefix *color.Color
}

// NewErrorPrinter creates an ErrorPrinter writing to w.
func NewErrorPrinter(w io.Writer) *ErrorPrinter {
	return &ErrorPrinter{
		w:      w,
		prefix: color.New(color.FgRed, color.Bold),
	}
}

// Printf writes "budgetWC: <message>\n".
func (p *ErrorPrinter) Printf(format string, args ...any) {
	_, _ = p.prefix.Fprint(p.w, ProgramName+":")
	_, _ = fmt.Fprintf(p.w, " "+format+"\n", args...)
}

// Missing reports a file that could not be opened.
func (p *ErrorPrinter) Missing(name string) {
	p.Printf("%s: No such file or directory", name)
}

// UsageHint writes the "Try --help" line that follows option errors.
func (p *ErrorPrinter) UsageHint() {
	_, _ = fmt.Fprintf(p.w, "Try '%s --help' for more information.\n", ProgramName)
}

// SetColorMode applies an auto/always/never choice globally. Auto keeps
// fatih/color's own terminal detection.
func SetColorMode(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
}
