package interfaces

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// IndexKey is the fixed storage key of the experiment index blob.
const IndexKey = "experiment_keys"

// RecordKeyPrefix is prepended to an experiment id to derive its record key.
// The prefix guarantees record keys never collide with IndexKey.
const RecordKeyPrefix = "experiment_"

// Status is the lifecycle state of an experiment record. It only ever
// advances: pending → analyzed → archived, with pending → archived as a
// shortcut. Archived is terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAnalyzed Status = "analyzed"
	StatusArchived Status = "archived"
)

// ParseStatus validates a wire-format status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusAnalyzed, StatusArchived:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown experiment status: %q", s)
	}
}

// Valid reports whether the status is one of the three known states.
func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// String returns the wire representation of the status.
func (s Status) String() string {
	return string(s)
}

// ExperimentID is an opaque, client-generated identifier for one experiment
// record. Ids are never reused; archival is a status change, not a deletion.
type ExperimentID string

const idSuffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewExperimentID generates a fresh identifier: the current Unix time in
// milliseconds plus a 7-character base36 suffix. The format matches what
// existing deployments already have in their index blobs.
//
// The collision probability is non-zero; callers that write records should
// verify the derived key is unoccupied first (see the orchestrator).
func NewExperimentID() ExperimentID {
	suffix := make([]byte, 7)
	for i := range suffix {
		suffix[i] = idSuffixAlphabet[rand.IntN(len(idSuffixAlphabet))]
	}
	return ExperimentID(fmt.Sprintf("%d-%s", time.Now().UnixMilli(), suffix))
}

// RecordKey derives the storage key for this experiment's record blob.
func (id ExperimentID) RecordKey() string {
	return RecordKeyPrefix + string(id)
}

// String returns the raw identifier.
func (id ExperimentID) String() string {
	return string(id)
}

// Validate rejects empty ids and ids whose derived key would shadow the
// index blob.
func (id ExperimentID) Validate() error {
	if id == "" {
		return errors.New("empty experiment id")
	}
	if id.RecordKey() == IndexKey {
		return fmt.Errorf("experiment id %q collides with the index key", id)
	}
	return nil
}

// ExperimentRecord is one experiment entity as stored in the blob store.
// After creation only Status is mutable; every other field is written once.
// The id is not part of the encoded blob: it travels in the storage key and
// the index.
type ExperimentRecord struct {
	ID                 ExperimentID `json:"-"`
	ExperimentName     string       `json:"experimentName"`
	Participant        string       `json:"participant"`
	Timestamp          int64        `json:"timestamp"`
	EncryptedResponses string       `json:"encryptedResponses"`
	Status             Status       `json:"status"`
}

// OwnedBy reports whether account is the record's participant. Account
// identifiers are compared case-insensitively, matching how hex addresses
// are usually presented.
func (r ExperimentRecord) OwnedBy(account string) bool {
	return account != "" && strings.EqualFold(r.Participant, account)
}
