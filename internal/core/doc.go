// Package core implements the business logic for work order field entry.
//
// A work order extract is loaded from a spreadsheet, filtered down to the
// rows an operator can still fill in, grouped for presentation, reconciled
// with pending edits, and exported back out in two shapes (the full working
// copy and the filled-only subset). The package has no UI or HTTP
// dependencies and can be driven by any frontend.
//
// The main pieces:
//
//   - Normalize: case/diacritic-insensitive comparison key for labels
//   - Keep / HasValue: the editable-row predicate applied at ingestion
//   - JointSortKey: natural ordering for joint labels like "A2", "A10"
//   - FormatCompletion / ParseCompletion: the DateTermine text codec
//   - Reconcile: merges pending edits into a fresh working table
//   - FullExport / FilledExport: the two output snapshots
//   - Service: the single-document session tying it all together
package core
