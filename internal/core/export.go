package core

// Export is one output snapshot of the working table: cell values restricted
// to the original source column order, with internal bookkeeping (original
// positions) dropped. Row order is whatever the table currently holds.
type Export struct {
	Sheet   string
	Columns []string
	Rows    [][]string
}

// FullExport derives the snapshot containing every row of the working table.
func (t *WorkingTable) FullExport() Export {
	return t.export(func(Row) bool { return true })
}

// FilledExport derives the snapshot containing only the rows whose value
// field is non-empty at export time. Its rows are always a subset of
// FullExport's, produced by the same projection over the same table.
func (t *WorkingTable) FilledExport() Export {
	return t.export(func(r Row) bool { return HasValue(r.Get(ColFieldValue)) })
}

func (t *WorkingTable) export(include func(Row) bool) Export {
	out := Export{
		Sheet:   t.Sheet,
		Columns: append([]string(nil), t.Columns...),
	}
	for _, r := range t.Rows {
		if !include(r) {
			continue
		}
		record := make([]string, len(out.Columns))
		for i, col := range out.Columns {
			record[i] = r.Get(col)
		}
		out.Rows = append(out.Rows, record)
	}
	return out
}
