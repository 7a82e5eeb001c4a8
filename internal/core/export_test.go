package core

import (
	"reflect"
	"testing"
)

func TestFullExport_PreservesColumnOrderAndRows(t *testing.T) {
	table := reconcileFixture(t)

	export := table.FullExport()

	if !reflect.DeepEqual(export.Columns, table.Columns) {
		t.Errorf("export columns = %v, want original order %v", export.Columns, table.Columns)
	}
	if export.Sheet != "Sheet1" {
		t.Errorf("export sheet = %q, want Sheet1", export.Sheet)
	}
	if len(export.Rows) != len(table.Rows) {
		t.Fatalf("full export has %d rows, want %d", len(export.Rows), len(table.Rows))
	}
	// Original position is bookkeeping, never a column.
	for _, record := range export.Rows {
		if len(record) != len(table.Columns) {
			t.Fatalf("record width %d, want %d", len(record), len(table.Columns))
		}
	}
}

func TestFilledExport_SubsetOfFull(t *testing.T) {
	table := reconcileFixture(t)
	updated := Reconcile(table, PendingEdits{0: {Value: "12"}, 2: {Value: "40"}})

	full := updated.FullExport()
	filled := updated.FilledExport()

	if len(filled.Rows) != 2 {
		t.Fatalf("filled export has %d rows, want 2", len(filled.Rows))
	}
	// Every filled record appears verbatim in the full export.
	for _, fr := range filled.Rows {
		found := false
		for _, record := range full.Rows {
			if reflect.DeepEqual(fr, record) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("filled record %v missing from full export", fr)
		}
	}
	if !reflect.DeepEqual(filled.Columns, full.Columns) {
		t.Error("both exports must share the original column order")
	}
}

func TestFilledExport_WhitespaceValueExcluded(t *testing.T) {
	table := reconcileFixture(t)
	updated := Reconcile(table, PendingEdits{0: {Value: "   "}})

	if got := len(updated.FilledExport().Rows); got != 0 {
		t.Errorf("whitespace-only value counted as filled: %d rows", got)
	}
}

func TestExport_ColumnOrderStableAcrossEdits(t *testing.T) {
	table := reconcileFixture(t)
	before := table.FullExport().Columns

	updated := Reconcile(table, PendingEdits{1: {Value: "x"}})
	after := updated.FullExport().Columns

	if !reflect.DeepEqual(before, after) {
		t.Errorf("column order changed by edits: %v -> %v", before, after)
	}
}
