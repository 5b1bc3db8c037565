package result

import "github.com/sachitrajbhandari/swrlapi/internal/ir"

// SelectionKind identifies a positional selection directive.
type SelectionKind int

const (
	SelectNone SelectionKind = iota
	SelectLimit
	SelectFirst
	SelectLast
	SelectNth
	SelectNotNth
	SelectNthSlice
	SelectNotNthSlice
	SelectNotFirst
	SelectNotLast
	SelectNthLastSlice
	SelectNotNthLastSlice
)

var selectionNames = map[SelectionKind]string{
	SelectNone:            "none",
	SelectLimit:           "limit",
	SelectFirst:           "first",
	SelectLast:            "last",
	SelectNth:             "nth",
	SelectNotNth:          "notNth",
	SelectNthSlice:        "nthSlice",
	SelectNotNthSlice:     "notNthSlice",
	SelectNotFirst:        "notFirst",
	SelectNotLast:         "notLast",
	SelectNthLastSlice:    "nthLastSlice",
	SelectNotNthLastSlice: "notNthLastSlice",
}

func (k SelectionKind) String() string { return selectionNames[k] }

// ParseSelectionKind resolves a selection name such as "nthSlice".
func ParseSelectionKind(name string) (SelectionKind, bool) {
	for k, n := range selectionNames {
		if n == name && k != SelectNone {
			return k, true
		}
	}
	return SelectNone, false
}

// IsSlice reports whether the selection takes a slice size.
func (k SelectionKind) IsSlice() bool {
	switch k {
	case SelectNthSlice, SelectNotNthSlice, SelectNthLastSlice, SelectNotNthLastSlice:
		return true
	}
	return false
}

// Selection is a positional selection over the ordered rows. Positions are
// 1-based. Size is used only by slice selections.
type Selection struct {
	Kind SelectionKind
	N    int
	Size int
}

// block returns the 0-based half-open range [start, end) the selection
// addresses in a sequence of n rows, and whether the rows in the block are
// kept (true) or removed (false).
func (s Selection) block(n int) (start, end int, keep bool) {
	switch s.Kind {
	case SelectLimit, SelectFirst:
		return 0, s.N, true
	case SelectLast:
		return n - s.N, n, true
	case SelectNth:
		return s.N - 1, s.N, true
	case SelectNotNth:
		return s.N - 1, s.N, false
	case SelectNthSlice:
		return s.N - 1, s.N - 1 + s.Size, true
	case SelectNotNthSlice:
		return s.N - 1, s.N - 1 + s.Size, false
	case SelectNotFirst:
		return 0, s.N, false
	case SelectNotLast:
		return n - s.N, n, false
	case SelectNthLastSlice:
		return n - s.N - s.Size + 1, n - s.N + 1, true
	case SelectNotNthLastSlice:
		return n - s.N - s.Size + 1, n - s.N + 1, false
	}
	return 0, n, true
}

// apply returns the selected rows in their existing relative order.
func (s Selection) apply(rows [][]ir.Value) [][]ir.Value {
	if s.Kind == SelectNone {
		return rows
	}
	start, end, keep := s.block(len(rows))
	start = min(max(start, 0), len(rows))
	end = min(max(end, start), len(rows))
	if keep {
		return rows[start:end]
	}
	out := make([][]ir.Value, 0, len(rows)-(end-start))
	out = append(out, rows[:start]...)
	return append(out, rows[end:]...)
}
