// Package orchestrator sequences the multi-step store writes behind each
// user-visible operation and reports their outcome through a Notifier.
//
// Every operation runs its steps serially; each store call blocks until the
// remote write reaches a terminal outcome. There is no compensating
// rollback: a creation whose record write lands but whose index append fails
// leaves an orphan record — present in the store, invisible on refresh. The
// operation surfaces as an error so the user can retry, and a retry re-runs
// all steps (the record re-write is idempotent by key).
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fhelabs/experiment-registry/codec"
	"github.com/fhelabs/experiment-registry/interfaces"
	"github.com/fhelabs/experiment-registry/lifecycle"
	"github.com/fhelabs/experiment-registry/metrics"
	"github.com/fhelabs/experiment-registry/registry"
)

var (
	// ErrUserRejected marks a write the user's signing agent declined. It
	// is reported distinctly from other failures.
	ErrUserRejected = errors.New("transaction rejected by user")

	// ErrOperationInFlight is returned when an operation targets a record
	// that already has one pending from this client instance.
	ErrOperationInFlight = errors.New("operation already in flight for this experiment")

	// ErrNoAccount is returned when an operation requires a connected
	// account and none is.
	ErrNoAccount = errors.New("no account connected")

	// ErrInvalidInput marks user input rejected before any store call.
	ErrInvalidInput = errors.New("invalid experiment input")
)

// idRetries bounds the verify-then-retry loop for identifier collisions.
const idRetries = 3

// CreateParams is the user input for a new experiment. ExperimentName and
// QuestionSet are required; ParticipantInfo is free text.
type CreateParams struct {
	ExperimentName  string
	QuestionSet     string
	ParticipantInfo string
}

func (p CreateParams) validate() error {
	if p.ExperimentName == "" {
		return fmt.Errorf("%w: experiment name is required", ErrInvalidInput)
	}
	if p.QuestionSet == "" {
		return fmt.Errorf("%w: question set is required", ErrInvalidInput)
	}
	return nil
}

// Orchestrator executes named operations as single observable units.
type Orchestrator struct {
	registry *registry.Registry
	accounts interfaces.AccountSource
	notifier *Notifier
	log      *slog.Logger

	mu       sync.Mutex
	inflight map[string]struct{}

	// now is swapped in tests.
	now func() time.Time
}

// New creates an orchestrator. The notifier may be shared with whatever
// surface presents the feedback (HTTP handler, CLI).
func New(reg *registry.Registry, accounts interfaces.AccountSource, notifier *Notifier, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	if notifier == nil {
		notifier = NewNotifier(0, 0)
	}
	return &Orchestrator{
		registry: reg,
		accounts: accounts,
		notifier: notifier,
		log:      log,
		inflight: make(map[string]struct{}),
		now:      time.Now,
	}
}

// Notifier returns the feedback notifier driven by this orchestrator.
func (o *Orchestrator) Notifier() *Notifier {
	return o.notifier
}

// CreateExperiment runs the full creation sequence: envelope the payload,
// pick a free id, write the record blob, then append the id to the index.
// It returns the new id on success. On failure after the record write the
// store holds an orphan record; see the package comment.
func (o *Orchestrator) CreateExperiment(ctx context.Context, params CreateParams) (interfaces.ExperimentID, error) {
	if err := params.validate(); err != nil {
		return "", err
	}
	account := o.accounts.Current()
	if account == "" {
		return "", ErrNoAccount
	}

	o.notifier.Pending("Encrypting participant data with FHE...")

	envelope, err := codec.WrapPayload(codec.Payload{
		ExperimentName:  params.ExperimentName,
		QuestionSet:     params.QuestionSet,
		ParticipantInfo: params.ParticipantInfo,
	})
	if err != nil {
		return "", o.failCreate(err)
	}

	id, err := o.pickFreeID(ctx)
	if err != nil {
		return "", o.failCreate(err)
	}

	release, err := o.acquire(id.RecordKey())
	if err != nil {
		return "", o.failCreate(err)
	}
	defer release()

	rec := interfaces.ExperimentRecord{
		ID:                 id,
		ExperimentName:     params.ExperimentName,
		Participant:        account,
		Timestamp:          o.now().Unix(),
		EncryptedResponses: envelope,
		Status:             interfaces.StatusPending,
	}

	if err := o.registry.WriteRecord(ctx, rec); err != nil {
		return "", o.failCreate(err)
	}
	if err := o.registry.AppendID(ctx, id); err != nil {
		// The record blob is already in the store: this is the orphan
		// partial-failure mode. Surface the error; retrying re-runs
		// every step.
		o.log.Warn("Index append failed after record write, record is orphaned",
			slog.String("id", id.String()),
			"err", err)
		return "", o.failCreate(err)
	}

	o.notifier.Success("Encrypted experiment data submitted securely!")
	metrics.RecordOperation("create", "success")
	o.log.Info("Experiment created",
		slog.String("id", id.String()),
		slog.String("participant", account))
	return id, nil
}

// TransitionExperiment applies a lifecycle status change to one record:
// read, decode, validate the edge and the actor, re-encode, write back. The
// index is untouched — the id already exists.
func (o *Orchestrator) TransitionExperiment(ctx context.Context, id interfaces.ExperimentID, target interfaces.Status) error {
	if err := id.Validate(); err != nil {
		return err
	}
	account := o.accounts.Current()
	if account == "" {
		return ErrNoAccount
	}

	op := "archive"
	if target == interfaces.StatusAnalyzed {
		op = "analyze"
	}

	release, err := o.acquire(id.RecordKey())
	if err != nil {
		return err
	}
	defer release()

	switch target {
	case interfaces.StatusAnalyzed:
		o.notifier.Pending("Analyzing encrypted data with FHE...")
	default:
		o.notifier.Pending("Archiving experiment data...")
	}

	rec, err := o.registry.ReadRecord(ctx, id)
	if err != nil {
		return o.failTransition(op, err)
	}

	updated, err := lifecycle.Transition(rec, target, account)
	if err != nil {
		return o.failTransition(op, err)
	}

	if err := o.registry.WriteRecord(ctx, updated); err != nil {
		return o.failTransition(op, err)
	}

	switch target {
	case interfaces.StatusAnalyzed:
		o.notifier.Success("FHE analysis completed successfully!")
	default:
		o.notifier.Success("Experiment archived successfully!")
	}
	metrics.RecordOperation(op, "success")
	o.log.Info("Experiment status updated",
		slog.String("id", id.String()),
		slog.String("from", rec.Status.String()),
		slog.String("to", target.String()),
		slog.String("actor", account))
	return nil
}

// CheckAvailability probes the store surface and reports the result through
// the notifier. It never touches the read/write path.
func (o *Orchestrator) CheckAvailability(ctx context.Context) bool {
	available := o.registry.Available(ctx)
	if available {
		o.notifier.Info(StateSuccess, "FHE contract is available and ready!")
	} else {
		o.notifier.Info(StateError, "FHE contract is not available")
	}
	metrics.RecordOperation("availability", outcomeLabel(available))
	return available
}

func outcomeLabel(ok bool) string {
	if ok {
		return "success"
	}
	return "error"
}

// pickFreeID generates an identifier and verifies its derived key is
// unoccupied, regenerating on collision. Duplicate-id probability from the
// time+random scheme is non-zero, so the ambiguity is resolved explicitly
// instead of inherited.
func (o *Orchestrator) pickFreeID(ctx context.Context) (interfaces.ExperimentID, error) {
	for attempt := 0; attempt < idRetries; attempt++ {
		id := interfaces.NewExperimentID()
		_, err := o.registry.ReadRecord(ctx, id)
		switch {
		case errors.Is(err, interfaces.ErrRecordNotFound):
			return id, nil
		case errors.Is(err, codec.ErrMalformedRecord):
			// An undecodable blob still occupies the key.
			continue
		case err == nil:
			o.log.Warn("Experiment id collision, regenerating", slog.String("id", id.String()))
			continue
		default:
			return "", err
		}
	}
	return "", fmt.Errorf("could not find a free experiment id after %d attempts", idRetries)
}

// acquire marks key as busy for this client instance, enforcing the
// one-operation-per-record rule. Operations on different records may run
// concurrently; each performs its own independent read-modify-write cycle.
func (o *Orchestrator) acquire(key string) (func(), error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, busy := o.inflight[key]; busy {
		return nil, ErrOperationInFlight
	}
	o.inflight[key] = struct{}{}
	return func() {
		o.mu.Lock()
		delete(o.inflight, key)
		o.mu.Unlock()
	}, nil
}

func (o *Orchestrator) failCreate(err error) error {
	err = classify(err)
	if errors.Is(err, ErrUserRejected) {
		o.notifier.Fail("Transaction rejected by user")
		metrics.RecordOperation("create", "rejected")
	} else {
		o.notifier.Fail("Submission failed: " + err.Error())
		metrics.RecordOperation("create", "error")
	}
	return err
}

func (o *Orchestrator) failTransition(op string, err error) error {
	err = classify(err)
	label := "Archiving failed: "
	if op == "analyze" {
		label = "Analysis failed: "
	}
	if errors.Is(err, ErrUserRejected) {
		o.notifier.Fail("Transaction rejected by user")
		metrics.RecordOperation(op, "rejected")
	} else {
		o.notifier.Fail(label + err.Error())
		metrics.RecordOperation(op, "error")
	}
	return err
}

// classify maps a declined signing action onto ErrUserRejected. Signers are
// not uniform about the message, so this is a substring match over the known
// phrasings ("user rejected", "user denied", "request denied").
func classify(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "user rejected") ||
		strings.Contains(msg, "user denied") ||
		strings.Contains(msg, "request denied") {
		return fmt.Errorf("%w: %v", ErrUserRejected, err)
	}
	return err
}
