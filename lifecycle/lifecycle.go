// Package lifecycle enforces the experiment status transition policy.
//
// Allowed edges:
//
//	pending  → analyzed
//	pending  → archived
//	analyzed → archived
//
// Archiving does not require prior analysis, and archived is terminal.
//
// Authorization is asymmetric on purpose: only the original participant may
// trigger analysis, while any connected account may archive any record. The
// asymmetry mirrors the deployed behavior; whether it is deliberate or an
// oversight is an open product question, so it is preserved rather than
// silently tightened. TODO(product): confirm whether archive should be
// participant-restricted too.
package lifecycle

import (
	"errors"
	"fmt"

	"github.com/fhelabs/experiment-registry/interfaces"
)

var (
	// ErrUnauthorized is returned when the acting account may not trigger
	// the requested transition. It is raised before any write happens.
	ErrUnauthorized = errors.New("account not authorized for this transition")

	// ErrInvalidTransition is returned for any status edge outside the
	// allowed set. It is raised before any write happens.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// CanTransition reports whether the edge from → to is allowed.
func CanTransition(from, to interfaces.Status) bool {
	switch from {
	case interfaces.StatusPending:
		return to == interfaces.StatusAnalyzed || to == interfaces.StatusArchived
	case interfaces.StatusAnalyzed:
		return to == interfaces.StatusArchived
	default:
		return false
	}
}

// Transition validates and applies a status change, returning a copy of the
// record with only Status updated. ID, participant, timestamp and the
// encrypted payload are never touched.
func Transition(rec interfaces.ExperimentRecord, target interfaces.Status, actor string) (interfaces.ExperimentRecord, error) {
	if !target.Valid() {
		return interfaces.ExperimentRecord{}, fmt.Errorf("%w: unknown target %q", ErrInvalidTransition, target)
	}
	if !CanTransition(rec.Status, target) {
		return interfaces.ExperimentRecord{}, fmt.Errorf("%w: %s → %s", ErrInvalidTransition, rec.Status, target)
	}
	if target == interfaces.StatusAnalyzed && !rec.OwnedBy(actor) {
		return interfaces.ExperimentRecord{}, fmt.Errorf("%w: only the participant may analyze experiment %s", ErrUnauthorized, rec.ID)
	}

	updated := rec
	updated.Status = target
	return updated, nil
}
