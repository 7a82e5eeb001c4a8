package core

import "testing"

func jointRow(orig int, label string) Row {
	return Row{
		Cells:     map[string]string{ColOperationDesc: label},
		OrigIndex: orig,
	}
}

func labelsOf(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Get(ColOperationDesc)
	}
	return out
}

func TestSortRowsByJoint_NumericSuffixBeatsLexical(t *testing.T) {
	rows := []Row{
		jointRow(0, "B2"),
		jointRow(1, "A10"),
		jointRow(2, "A2"),
		jointRow(3, "foo"),
	}
	SortRowsByJoint(rows)

	want := []string{"A2", "A10", "B2", "foo"}
	got := labelsOf(rows)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSortRowsByJoint_Stability(t *testing.T) {
	// Identical keys keep their relative input order.
	rows := []Row{
		jointRow(5, "A2"),
		jointRow(1, "A2"),
		jointRow(9, "A2"),
	}
	SortRowsByJoint(rows)

	wantOrder := []int{5, 1, 9}
	for i, r := range rows {
		if r.OrigIndex != wantOrder[i] {
			t.Fatalf("stability broken: positions %v, want %v",
				[]int{rows[0].OrigIndex, rows[1].OrigIndex, rows[2].OrigIndex}, wantOrder)
		}
	}
}

func TestSortRowsByJoint_UnparsedSortLast(t *testing.T) {
	rows := []Row{
		jointRow(0, "123"),  // no letter prefix: unparsed
		jointRow(1, "A1"),
		jointRow(2, ""),     // blank: unparsed
		jointRow(3, "Z9"),
	}
	SortRowsByJoint(rows)

	got := labelsOf(rows)
	want := []string{"A1", "Z9", "123", ""}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestJointSortKey(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		unparsed bool
		prefix   string
		number   int
	}{
		{"exact match", "A2", false, "a", 2},
		{"exact with spaces", "AB  17", false, "ab", 17},
		{"case folds", "ab2", false, "ab", 2},
		{"loose match", "A-10x", false, "a", 10},
		{"loose takes first digit run", "A joint 3 of 12", false, "a", 3},
		{"digits only", "42", true, "", 0},
		{"no digits", "foo", true, "", 0},
		{"empty", "", true, "", 0},
		{"whitespace", "   ", true, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := JointSortKey(tt.label, 7)
			if k.unparsed != tt.unparsed {
				t.Fatalf("JointSortKey(%q).unparsed = %v, want %v", tt.label, k.unparsed, tt.unparsed)
			}
			if !tt.unparsed && (k.prefix != tt.prefix || k.number != tt.number) {
				t.Errorf("JointSortKey(%q) = (%q, %d), want (%q, %d)",
					tt.label, k.prefix, k.number, tt.prefix, tt.number)
			}
			if tt.unparsed && k.origIndex != 7 {
				t.Errorf("unparsed key must keep the original position, got %d", k.origIndex)
			}
		})
	}
}

func TestSortKey_LessOrdering(t *testing.T) {
	a2 := JointSortKey("A2", 0)
	a10 := JointSortKey("A10", 1)
	b1 := JointSortKey("B1", 2)
	plain := JointSortKey("foo", 3)
	plainLater := JointSortKey("bar", 4)

	if !a2.Less(a10) {
		t.Error("A2 must order before A10")
	}
	if !a10.Less(b1) {
		t.Error("A10 must order before B1")
	}
	if !b1.Less(plain) {
		t.Error("parsed labels must order before unparsed ones")
	}
	if !plain.Less(plainLater) {
		t.Error("unparsed labels must order by original position")
	}
	if a2.Less(a2) || plain.Less(plain) {
		t.Error("a key must not order before itself")
	}
}
