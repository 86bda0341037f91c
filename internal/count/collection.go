package count

// Entry is the outcome of counting one input. Stdin marks the entry that
// was read from standard input, in which case Name is empty.
type Entry struct {
	Tally Tally
	Name  string
	Stdin bool
}

// Label returns the name printed next to the entry, or "" for stdin.
func (e Entry) Label() string {
	if e.Stdin {
		return ""
	}
	return e.Name
}

// Collection is an append-only list of entries.
//
// It has no lock of its own. Concurrent writers must hold the mutex they
// share for output, so that an append and the line printed for it happen
// together. Order is completion order, not submission order.
type Collection struct {
	entries []Entry
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Append adds e to the end of the collection.
func (c *Collection) Append(e Entry) {
	c.entries = append(c.entries, e)
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the entries in insertion order.
func (c *Collection) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Aggregate sums every entry. An empty collection yields the zero Tally.
// Call it only after all writers are done.
func (c *Collection) Aggregate() Tally {
	var total Tally
	for _, e := range c.entries {
		total = total.Add(e.Tally)
	}
	return total
}
