package core

import (
	"reflect"
	"testing"
)

func reconcileFixture(t *testing.T) *WorkingTable {
	t.Helper()
	records := [][]string{
		testHeader,
		rec("J1", "SOU", "Diametre", "", "A2"),
		rec("J1", "SOU", "Diametre", "", "A10"),
		rec("J2", "SOU", "Sch", "", "B1"),
	}
	table, err := NewWorkingTable(records, "Sheet1")
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func TestReconcile_AppliesValues(t *testing.T) {
	table := reconcileFixture(t)

	out := Reconcile(table, PendingEdits{
		0: {Value: "12"},
		2: {Value: "40"},
	})

	if got := out.Rows[0].Get(ColFieldValue); got != "12" {
		t.Errorf("row 0 value = %q, want 12", got)
	}
	if got := out.Rows[1].Get(ColFieldValue); got != "" {
		t.Errorf("row 1 value = %q, want unchanged empty", got)
	}
	if got := out.Rows[2].Get(ColFieldValue); got != "40" {
		t.Errorf("row 2 value = %q, want 40", got)
	}
}

func TestReconcile_DoesNotMutateInput(t *testing.T) {
	table := reconcileFixture(t)

	Reconcile(table, PendingEdits{0: {Value: "12"}})

	if got := table.Rows[0].Get(ColFieldValue); got != "" {
		t.Errorf("input table mutated: row 0 value = %q", got)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	table := reconcileFixture(t)
	edits := PendingEdits{0: {Value: "12"}, 1: {Clear: true}}

	once := Reconcile(table, edits)
	twice := Reconcile(once, edits)

	if !reflect.DeepEqual(once.Rows, twice.Rows) {
		t.Error("reconciling the same edits twice must yield an identical table")
	}
}

func TestReconcile_ClearSetsEmpty(t *testing.T) {
	table := reconcileFixture(t)

	filled := Reconcile(table, PendingEdits{1: {Value: "99"}})
	cleared := Reconcile(filled, PendingEdits{1: {Clear: true}})

	if got := cleared.Rows[1].Get(ColFieldValue); got != "" {
		t.Errorf("cleared value = %q, want empty string", got)
	}
}

func TestReconcile_OutOfRangePositionsIgnored(t *testing.T) {
	table := reconcileFixture(t)

	out := Reconcile(table, PendingEdits{
		0:   {Value: "12"},
		999: {Value: "ghost"},
		-1:  {Value: "ghost"},
	})

	if len(out.Rows) != len(table.Rows) {
		t.Fatalf("row count changed: %d -> %d", len(table.Rows), len(out.Rows))
	}
	if got := out.Rows[0].Get(ColFieldValue); got != "12" {
		t.Errorf("valid edit should still apply, got %q", got)
	}
	for _, r := range out.Rows {
		if r.Get(ColFieldValue) == "ghost" {
			t.Error("out-of-range edit must not create or touch any row")
		}
	}
}

func TestReconcile_EmptyEditsReturnsCopy(t *testing.T) {
	table := reconcileFixture(t)
	out := Reconcile(table, nil)

	if !reflect.DeepEqual(table.Rows, out.Rows) {
		t.Error("empty reconcile must preserve all rows")
	}
	out.Rows[0].Cells[ColFieldValue] = "changed"
	if table.Rows[0].Get(ColFieldValue) == "changed" {
		t.Error("result must be independent of the input")
	}
}
