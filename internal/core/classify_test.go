package core

import "testing"

func makeRow(orig int, cells map[string]string) Row {
	return Row{Cells: cells, OrigIndex: orig}
}

func TestHasValue(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", false},
		{"   ", false},
		{"\t\n", false},
		{"0", true},
		{"x", true},
		{"  x  ", true},
	}
	for _, tt := range tests {
		if got := HasValue(tt.input); got != tt.want {
			t.Errorf("HasValue(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestKeep_FilledValueExcluded(t *testing.T) {
	// A non-empty value excludes the row regardless of every other field.
	row := makeRow(0, map[string]string{
		ColOperationCode: "SOU",
		ColFieldName:     "Diametre",
		ColFieldValue:    "42",
	})
	if Keep(row) {
		t.Error("row with filled CustomFieldValue must not enter the working set")
	}
}

func TestKeep_AssemblyTargetsExcluded(t *testing.T) {
	targets := []string{"Diametre", "diamètre", "MATERIEL", "Matériel", "PosouDureCorrige", "sch", "Type"}
	codes := []string{"ass", "ASS", "Àss", " Ass "}

	for _, code := range codes {
		for _, field := range targets {
			row := makeRow(0, map[string]string{
				ColOperationCode: code,
				ColFieldName:     field,
				ColFieldValue:    "",
			})
			if Keep(row) {
				t.Errorf("assembly row (code %q, field %q) must not enter the working set", code, field)
			}
		}
	}
}

func TestKeep_AssemblyNonTargetFieldKept(t *testing.T) {
	row := makeRow(0, map[string]string{
		ColOperationCode: "ASS",
		ColFieldName:     "DateTermine",
		ColFieldValue:    "",
	})
	if !Keep(row) {
		t.Error("assembly row with a non-target field must stay editable")
	}
}

func TestKeep_EmptyRowKept(t *testing.T) {
	row := makeRow(0, map[string]string{
		ColOperationCode: "SOU",
		ColFieldName:     "Diametre",
		ColFieldValue:    "   ",
	})
	if !Keep(row) {
		t.Error("non-assembly row with blank value must enter the working set")
	}
}
