package display

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/utkarsh5026/budgetwc/internal/count"
)

// RenderTable writes entries as a table with one column per selected
// counter. A "total" row is appended when there is more than one entry.
func RenderTable(w io.Writer, entries []count.Entry, f Fields) error {
	f = f.Normalize()

	header := []any{"File"}
	if f.Lines {
		header = append(header, "Lines")
	}
	if f.Words {
		header = append(header, "Words")
	}
	if f.Bytes {
		header = append(header, "Bytes")
	}
	if f.Chars {
		header = append(header, "Chars")
	}

	table := tablewriter.NewWriter(w)
	table.Header(header...)

	var total count.Tally
	for _, e := range entries {
		name := e.Label()
		if e.Stdin {
			name = "-"
		}
		if err := table.Append(row(name, e.Tally, f)...); err != nil {
			return fmt.Errorf("append row %q: %w", name, err)
		}
		total = total.Add(e.Tally)
	}

	if len(entries) > 1 {
		label := color.New(color.Bold).Sprint("total")
		if err := table.Append(row(label, total, f)...); err != nil {
			return fmt.Errorf("append total row: %w", err)
		}
	}

	return table.Render()
}

func row(name string, t count.Tally, f Fields) []any {
	r := []any{name}
	if f.Lines {
		r = append(r, strconv.FormatInt(t.Lines, 10))
	}
	if f.Words {
		r = append(r, strconv.FormatInt(t.Words, 10))
	}
	if f.Bytes {
		r = append(r, strconv.FormatInt(t.Bytes, 10))
	}
	if f.Chars {
		r = append(r, strconv.FormatInt(t.Chars, 10))
	}
	return r
}
