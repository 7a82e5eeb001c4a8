package core

import (
	"errors"
	"strings"
	"testing"
)

// testHeader is a full required-column header in a scrambled-but-fixed order
// plus one passthrough extra.
var testHeader = []string{
	"Job", "MK", "ISO", "Operation Description1", "OperationCode",
	"CustomFieldName", "CustomFieldValue", "ItemCode", "StepOrder",
	"BomVersionId", "Extra",
}

// rec builds a record matching testHeader.
func rec(job, op, field, value, joint string) []string {
	return []string{job, "mk", "iso", joint, op, field, value, "item", "10", "v1", "extra"}
}

func TestNewWorkingTable_MissingColumns(t *testing.T) {
	records := [][]string{
		{"Job", "MK", "ISO", "OperationCode", "CustomFieldValue"},
		{"J1", "mk", "iso", "SOU", ""},
	}
	_, err := NewWorkingTable(records, "Sheet1")
	if err == nil {
		t.Fatal("expected missing-columns error")
	}

	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingColumnsError, got %T: %v", err, err)
	}
	for _, col := range []string{"Operation Description1", "CustomFieldName", "ItemCode", "StepOrder", "BomVersionId"} {
		found := false
		for _, m := range missing.Missing {
			if m == col {
				found = true
			}
		}
		if !found {
			t.Errorf("missing list %v should contain %q", missing.Missing, col)
		}
	}
	if !strings.Contains(err.Error(), "missing required columns") {
		t.Errorf("error text %q should name the failure", err.Error())
	}
}

func TestNewWorkingTable_EmptySource(t *testing.T) {
	if _, err := NewWorkingTable(nil, "Sheet1"); !errors.Is(err, ErrEmptySource) {
		t.Fatalf("expected ErrEmptySource, got %v", err)
	}
}

func TestNewWorkingTable_ClassifiesOnce(t *testing.T) {
	records := [][]string{
		testHeader,
		rec("J1", "SOU", "Diametre", "", "A2"),    // kept
		rec("J1", "SOU", "Diametre", "12", "A3"),  // excluded: filled
		rec("J1", "ASS", "Diametre", "", "A4"),    // excluded: assembly target
		rec("J1", "ASS", "DateTermine", "", "A5"), // kept: non-target field
	}
	table, err := NewWorkingTable(records, "Feuil1")
	if err != nil {
		t.Fatal(err)
	}

	if table.Sheet != "Feuil1" {
		t.Errorf("sheet = %q, want Feuil1", table.Sheet)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("kept %d rows, want 2", len(table.Rows))
	}
	if table.Excluded != 2 {
		t.Errorf("excluded = %d, want 2", table.Excluded)
	}

	// Original positions index into the source data rows, not the kept set.
	if table.Rows[0].OrigIndex != 0 || table.Rows[1].OrigIndex != 3 {
		t.Errorf("original positions = %d,%d, want 0,3",
			table.Rows[0].OrigIndex, table.Rows[1].OrigIndex)
	}
	if got := table.Rows[1].Get(ColFieldName); got != "DateTermine" {
		t.Errorf("row 3 field = %q, want DateTermine", got)
	}
}

func TestNewWorkingTable_ShortRowsPadded(t *testing.T) {
	short := rec("J1", "SOU", "Diametre", "", "A2")[:5]
	records := [][]string{testHeader, short}
	table, err := NewWorkingTable(records, "Sheet1")
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("kept %d rows, want 1", len(table.Rows))
	}
	if got := table.Rows[0].Get(ColFieldValue); got != "" {
		t.Errorf("missing trailing cell should read empty, got %q", got)
	}
	if got := table.Rows[0].Get("Extra"); got != "" {
		t.Errorf("missing passthrough cell should read empty, got %q", got)
	}
}

func TestNewWorkingTable_PreservesColumnOrder(t *testing.T) {
	records := [][]string{testHeader, rec("J1", "SOU", "Diametre", "", "A2")}
	table, err := NewWorkingTable(records, "Sheet1")
	if err != nil {
		t.Fatal(err)
	}
	for i, col := range testHeader {
		if table.Columns[i] != col {
			t.Fatalf("columns = %v, want %v", table.Columns, testHeader)
		}
	}
}
