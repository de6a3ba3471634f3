// Package alert decides which processed notifications warrant a desktop
// alert on this polling cycle and composes the alert text. Delivery is a
// platform collaborator's job; this package only decides whether and
// what to send.
package alert

import "github.com/AmarBego/GitTop/internal/model"

// Batch is the subset of processed records that should trigger an
// OS-level alert: priority records are shown individually, regular
// records collapse into a single summary.
type Batch struct {
	Priority []model.ProcessedNotification
	Regular  []model.ProcessedNotification
}

// Build splits new-or-updated records into priority and regular alert
// sets. Silent records never alert, Hidden records were already dropped
// by the pipeline, and records whose id and timestamp are both known
// stay quiet. Build does not touch seen; committing the seen state is a
// separate step owned by the caller.
func Build(processed []model.ProcessedNotification, seen SeenMap) Batch {
	var b Batch
	for _, p := range processed {
		if !seen.isNew(p.Record) {
			continue
		}
		switch p.Action {
		case model.ActionImportant:
			b.Priority = append(b.Priority, p)
		case model.ActionShow:
			b.Regular = append(b.Regular, p)
		}
	}
	return b
}

// Empty reports whether the batch holds nothing to deliver.
func (b Batch) Empty() bool {
	return len(b.Priority) == 0 && len(b.Regular) == 0
}

// Total returns the number of records in the batch.
func (b Batch) Total() int {
	return len(b.Priority) + len(b.Regular)
}
