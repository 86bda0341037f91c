package display

import (
	"fmt"
	"io"
)

// ProgramName is used in help and error messages.
const ProgramName = "budgetWC"

const helpText = `Usage: %[1]s [OPTION]... [FILE]...
Count lines, words, bytes, and ASCII characters in text files.

Options:
  -l, --lines  print line count
  -w, --words  print word count
  -c, --bytes  print byte count
  -m, --chars  print character count
      --help   show this help

Pool and output:
      --workers=N      number of counting workers (default 4)
      --queue=N        pending file queue capacity (default 100)
      --rate=R         start at most R files per second
      --burst=N        burst size for --rate (default 1)
      --lock-threads   run each worker on its own pinned OS thread
      --config=PATH    read defaults from a YAML file
      --table          print results as a table
      --progress       show a progress bar on standard error
      --color=WHEN     colorize errors and tables: auto, always, never
      --verbose        log pool activity on standard error

With no options, prints lines, words, and bytes.
With no FILE, reads from standard input.
`

// Help writes the usage text to w.
func Help(w io.Writer) {
	_, _ = fmt.Fprintf(w, helpText, ProgramName)
}
