package core

import "strings"

// Column names of the work order extract. The required set is fatal to miss
// at ingestion; any extra columns are carried through untouched.
const (
	ColJob           = "Job"
	ColMK            = "MK"
	ColISO           = "ISO"
	ColOperationDesc = "Operation Description1"
	ColOperationCode = "OperationCode"
	ColFieldName     = "CustomFieldName"
	ColFieldValue    = "CustomFieldValue"
	ColItemCode      = "ItemCode"
	ColStepOrder     = "StepOrder"
	ColBomVersionID  = "BomVersionId"
)

// RequiredColumns must all be present in the source header, by exact name.
var RequiredColumns = []string{
	ColJob,
	ColMK,
	ColISO,
	ColOperationDesc,
	ColOperationCode,
	ColFieldName,
	ColFieldValue,
	ColItemCode,
	ColStepOrder,
	ColBomVersionID,
}

// DateField is the custom field name that carries a completion timestamp.
// It is matched against CustomFieldName through Normalize, not by column.
const DateField = "DateTermine"

// Row is one record of the working table. Cells are keyed by column name;
// OrigIndex is the row's index in the source table, assigned once at
// ingestion and never reassigned. It serves purely as a stable identity and
// tie-breaker and is never serialized into an export.
type Row struct {
	Cells     map[string]string
	OrigIndex int
}

// Get returns the cell value for a column, or "" if the column is absent.
func (r Row) Get(col string) string {
	return r.Cells[col]
}

// clone returns an independent copy of the row.
func (r Row) clone() Row {
	cells := make(map[string]string, len(r.Cells))
	for k, v := range r.Cells {
		cells[k] = v
	}
	return Row{Cells: cells, OrigIndex: r.OrigIndex}
}

// WorkingTable is the in-memory set of rows surviving classification, plus
// the original column order and sheet identity of the source. A session
// holds at most one; loading a new source replaces it wholesale.
type WorkingTable struct {
	Sheet    string
	Columns  []string // original source column order
	Rows     []Row    // kept rows, ascending OrigIndex
	Excluded int      // rows removed by classification
}

// NewWorkingTable ingests a raw table (header row first) into a working
// table. It validates the required columns, assigns original positions, and
// applies the Keep predicate exactly once per row. Rows shorter than the
// header get empty cells for the trailing columns.
//
// Returns a *MissingColumnsError listing every absent required column, or
// ErrEmptySource when there is no header row at all.
func NewWorkingTable(records [][]string, sheet string) (*WorkingTable, error) {
	if len(records) == 0 {
		return nil, ErrEmptySource
	}
	header := records[0]

	present := make(map[string]struct{}, len(header))
	for _, col := range header {
		present[strings.TrimSpace(col)] = struct{}{}
	}
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}

	columns := make([]string, len(header))
	for i, col := range header {
		columns[i] = strings.TrimSpace(col)
	}

	t := &WorkingTable{Sheet: sheet, Columns: columns}
	for i, record := range records[1:] {
		cells := make(map[string]string, len(columns))
		for j, col := range columns {
			if j < len(record) {
				cells[col] = record[j]
			} else {
				cells[col] = ""
			}
		}
		row := Row{Cells: cells, OrigIndex: i}
		if Keep(row) {
			t.Rows = append(t.Rows, row)
		} else {
			t.Excluded++
		}
	}
	return t, nil
}

// clone returns a deep copy of the table. Exports and reconciliation work on
// copies so a failed downstream write can never corrupt the current state.
func (t *WorkingTable) clone() *WorkingTable {
	out := &WorkingTable{
		Sheet:    t.Sheet,
		Columns:  append([]string(nil), t.Columns...),
		Rows:     make([]Row, len(t.Rows)),
		Excluded: t.Excluded,
	}
	for i, r := range t.Rows {
		out.Rows[i] = r.clone()
	}
	return out
}
