package core

// Edit is one pending operator edit: either a replacement value or an
// explicit clear. A clear sets the row's value field to the empty string;
// it is not the same as "no edit".
type Edit struct {
	Value string
	Clear bool
}

// PendingEdits maps original positions to edits not yet reconciled into the
// working table.
type PendingEdits map[int]Edit

// Reconcile merges pending edits into the working table and returns the
// result as a new table; the input is never mutated, so reconciling the same
// edits against the same input twice yields identical tables and the call is
// safe to make speculatively.
//
// Positions that name no row in the table are ignored: positions are
// assigned by the system itself, so a mismatch means stale state, not an
// operator fault worth failing over.
func Reconcile(t *WorkingTable, edits PendingEdits) *WorkingTable {
	out := t.clone()
	if len(edits) == 0 {
		return out
	}
	byPos := make(map[int]int, len(out.Rows))
	for i, r := range out.Rows {
		byPos[r.OrigIndex] = i
	}
	for pos, edit := range edits {
		i, ok := byPos[pos]
		if !ok {
			continue
		}
		if edit.Clear {
			out.Rows[i].Cells[ColFieldValue] = ""
		} else {
			out.Rows[i].Cells[ColFieldValue] = edit.Value
		}
	}
	return out
}
