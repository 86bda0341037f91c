// Package count turns byte streams into line, word, byte and character
// tallies and collects the per-file results of a run.
package count

import "io"

// Tally holds the four counters produced for one stream.
type Tally struct {
	Lines int64
	Words int64
	Bytes int64
	Chars int64
}

// Add returns the element-wise sum of t and o.
func (t Tally) Add(o Tally) Tally {
	return Tally{
		Lines: t.Lines + o.Lines,
		Words: t.Words + o.Words,
		Bytes: t.Bytes + o.Bytes,
		Chars: t.Chars + o.Chars,
	}
}

const readBufferSize = 64 * 1024

// Count scans r byte by byte and returns its tally.
//
// Lines is the number of '\n' bytes, Words the number of maximal runs of
// non-space bytes, Bytes the total length and Chars the number of bytes in
// the ASCII range. On a read error the partial tally is returned with it.
func Count(r io.Reader) (Tally, error) {
	var t Tally
	inWord := false

	buf := make([]byte, readBufferSize)
	for {
		n, err := r.Read(buf)
		for _, c := range buf[:n] {
			t.Bytes++
			if c <= 0x7f {
				t.Chars++
			}
			if c == '\n' {
				t.Lines++
			}
			if isSpace(c) {
				inWord = false
			} else if !inWord {
				inWord = true
				t.Words++
			}
		}

		if err == io.EOF {
			return t, nil
		}
		if err != nil {
			return t, err
		}
	}
}

// isSpace matches the C locale isspace set.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
