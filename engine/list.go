package engine

import "slices"

// List is an ordered list of raw "name: value" header lines handed to a
// Session through OptHTTPHeader. The zero value and a nil *List are both
// empty lists.
type List struct {
	lines []string
	freed bool
}

// Append adds line to l and returns the list, allocating one when l is
// nil. Appending to a freed list starts a new one.
func (l *List) Append(line string) *List {
	if l == nil || l.freed {
		l = &List{}
	}

	l.lines = append(l.lines, line)

	return l
}

// Lines returns a copy of the lines in l.
func (l *List) Lines() []string {
	if l == nil || l.freed {
		return nil
	}

	return slices.Clone(l.lines)
}

// Len returns the number of lines in l.
func (l *List) Len() int {
	if l == nil || l.freed {
		return 0
	}

	return len(l.lines)
}

// Free releases the lines held by l. Freeing twice or freeing a nil list
// is a no-op.
func (l *List) Free() {
	if l == nil {
		return
	}

	l.lines = nil
	l.freed = true
}

func (l *List) clone() *List {
	if l == nil || l.freed {
		return nil
	}

	return &List{lines: slices.Clone(l.lines)}
}
