package core

import "strings"

// assemblyCode is the normalized operation code whose rows are pre-filled by
// the assembly department and must not be offered for manual entry.
const assemblyCode = "ass"

// assemblyFields are the normalized custom field names excluded from the
// working set when they appear on an assembly operation.
var assemblyFields = map[string]struct{}{
	"diametre":         {},
	"materiel":         {},
	"posoudurecorrige": {},
	"sch":              {},
	"type":             {},
}

// HasValue reports whether a cell holds a real value: anything other than
// absent or whitespace-only text.
func HasValue(v string) bool {
	return strings.TrimSpace(v) != ""
}

// isAssemblyTarget reports whether the row belongs to an assembly operation
// whose field is maintained elsewhere. Both the operation code and the field
// name are compared through Normalize, so case and accent variants match.
func isAssemblyTarget(r Row) bool {
	if Normalize(r.Get(ColOperationCode)) != assemblyCode {
		return false
	}
	_, ok := assemblyFields[Normalize(r.Get(ColFieldName))]
	return ok
}

// Keep is the editable-row predicate evaluated once per row at ingestion.
// A row enters the working set only if its value field is still empty and it
// is not an assembly-maintained field. Keep is never re-evaluated afterwards:
// a row that becomes filled by an operator edit stays in the working set.
func Keep(r Row) bool {
	return !(HasValue(r.Get(ColFieldValue)) || isAssemblyTarget(r))
}
