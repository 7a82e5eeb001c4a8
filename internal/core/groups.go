package core

// Presentation grouping for the editing shell: jobs in first-appearance
// order, operations within a job in first-appearance order, and within an
// operation the completion-date rows separated from the free-text field
// groups. None of this reorders the working table itself; grouping works on
// copies of the row data and identity stays with the original position.

// FieldGroup is the set of rows for one custom field within an operation,
// natural-ordered by joint label.
type FieldGroup struct {
	Field string `json:"field"`
	Rows  []RowView `json:"rows"`
}

// RowView is the editable projection of a row handed to the shell. Position
// is the row's original position, which is how edits find their way back.
type RowView struct {
	Position   int    `json:"position"`
	JointLabel string `json:"jointLabel"`
	Value      string `json:"value"`
}

// DateGroup describes the completion-date rows of one operation. Positions
// lists every DateTermine row so a single date entry can fan out to all of
// them. Existing holds the first non-empty current value, raw.
type DateGroup struct {
	Positions []int  `json:"positions"`
	Existing  string `json:"existing,omitempty"`
}

// OperationView is the grouped editable view of one operation code.
type OperationView struct {
	OperationCode string       `json:"operationCode"`
	Date          *DateGroup   `json:"date,omitempty"`
	Fields        []FieldGroup `json:"fields"`
}

// uniqueInOrder returns the distinct non-empty values in first-appearance
// order.
func uniqueInOrder(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var ordered []string
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		ordered = append(ordered, v)
	}
	return ordered
}

// Jobs returns the distinct job keys of the working table in
// first-appearance order.
func (t *WorkingTable) Jobs() []string {
	values := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		values[i] = r.Get(ColJob)
	}
	return uniqueInOrder(values)
}

// JobView builds the grouped editable view for one job. Within each
// operation, rows whose field name normalizes to DateField form the date
// group; the remaining field names are listed unique-in-order and each field
// group is natural-sorted by joint label.
func (t *WorkingTable) JobView(job string) []OperationView {
	var jobRows []Row
	for _, r := range t.Rows {
		if r.Get(ColJob) == job {
			jobRows = append(jobRows, r)
		}
	}
	dateKey := Normalize(DateField)

	var views []OperationView
	for _, op := range rowValuesInOrder(jobRows, ColOperationCode) {
		var opRows, dateRows, fieldRows []Row
		for _, r := range jobRows {
			if r.Get(ColOperationCode) == op {
				opRows = append(opRows, r)
			}
		}
		for _, r := range opRows {
			if Normalize(r.Get(ColFieldName)) == dateKey {
				dateRows = append(dateRows, r)
			} else {
				fieldRows = append(fieldRows, r)
			}
		}

		view := OperationView{OperationCode: op}

		if len(dateRows) > 0 {
			dg := &DateGroup{}
			for _, r := range dateRows {
				dg.Positions = append(dg.Positions, r.OrigIndex)
				if dg.Existing == "" && HasValue(r.Get(ColFieldValue)) {
					dg.Existing = r.Get(ColFieldValue)
				}
			}
			view.Date = dg
		}

		for _, field := range rowValuesInOrder(fieldRows, ColFieldName) {
			var group []Row
			for _, r := range fieldRows {
				if r.Get(ColFieldName) == field {
					group = append(group, r.clone())
				}
			}
			SortRowsByJoint(group)
			fg := FieldGroup{Field: field}
			for _, r := range group {
				fg.Rows = append(fg.Rows, RowView{
					Position:   r.OrigIndex,
					JointLabel: r.Get(ColOperationDesc),
					Value:      r.Get(ColFieldValue),
				})
			}
			view.Fields = append(view.Fields, fg)
		}

		views = append(views, view)
	}
	return views
}

// rowValuesInOrder collects the distinct non-empty values of one column
// across rows, in first-appearance order.
func rowValuesInOrder(rows []Row, col string) []string {
	values := make([]string, len(rows))
	for i, r := range rows {
		values[i] = r.Get(col)
	}
	return uniqueInOrder(values)
}
