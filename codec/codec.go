package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fhelabs/experiment-registry/interfaces"
)

// ErrMalformedRecord is wrapped by every record decode failure: empty blob,
// invalid JSON, or a missing required field. Decode errors are recoverable
// by design; a bulk load skips the bad record and keeps going.
var ErrMalformedRecord = errors.New("malformed experiment record")

// wireRecord mirrors the on-chain JSON layout with pointer fields so that
// absent required fields are detectable after unmarshaling.
type wireRecord struct {
	ExperimentName     *string `json:"experimentName"`
	Participant        *string `json:"participant"`
	Timestamp          *int64  `json:"timestamp"`
	EncryptedResponses *string `json:"encryptedResponses"`
	Status             string  `json:"status,omitempty"`
}

// EncodeRecord serializes a record to its storage blob. The id is not part
// of the blob; it is carried by the storage key.
func EncodeRecord(rec interfaces.ExperimentRecord) ([]byte, error) {
	if rec.ExperimentName == "" {
		return nil, errors.New("experiment name is required")
	}
	if rec.Participant == "" {
		return nil, errors.New("participant is required")
	}
	if rec.Timestamp <= 0 {
		return nil, fmt.Errorf("invalid timestamp %d", rec.Timestamp)
	}
	if !rec.Status.Valid() {
		return nil, fmt.Errorf("invalid status %q", rec.Status)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode experiment record: %w", err)
	}
	return data, nil
}

// DecodeRecord parses a storage blob into a record. The returned record has
// no id set; callers attach the id they derived the key from.
//
// A missing status defaults to pending — the only field with a decode-time
// default. All other fields are required.
func DecodeRecord(data []byte) (interfaces.ExperimentRecord, error) {
	if len(data) == 0 {
		return interfaces.ExperimentRecord{}, fmt.Errorf("%w: empty blob", ErrMalformedRecord)
	}

	var wire wireRecord
	if err := json.Unmarshal(data, &wire); err != nil {
		return interfaces.ExperimentRecord{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	switch {
	case wire.ExperimentName == nil:
		return interfaces.ExperimentRecord{}, fmt.Errorf("%w: missing experimentName", ErrMalformedRecord)
	case wire.Participant == nil:
		return interfaces.ExperimentRecord{}, fmt.Errorf("%w: missing participant", ErrMalformedRecord)
	case wire.Timestamp == nil:
		return interfaces.ExperimentRecord{}, fmt.Errorf("%w: missing timestamp", ErrMalformedRecord)
	case wire.EncryptedResponses == nil:
		return interfaces.ExperimentRecord{}, fmt.Errorf("%w: missing encryptedResponses", ErrMalformedRecord)
	}

	status := interfaces.StatusPending
	if wire.Status != "" {
		parsed, err := interfaces.ParseStatus(wire.Status)
		if err != nil {
			return interfaces.ExperimentRecord{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
		}
		status = parsed
	}

	return interfaces.ExperimentRecord{
		ExperimentName:     *wire.ExperimentName,
		Participant:        *wire.Participant,
		Timestamp:          *wire.Timestamp,
		EncryptedResponses: *wire.EncryptedResponses,
		Status:             status,
	}, nil
}

// EncodeIndex serializes the index as a flat JSON array of id strings.
func EncodeIndex(ids []interfaces.ExperimentID) ([]byte, error) {
	if ids == nil {
		ids = []interfaces.ExperimentID{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to encode experiment index: %w", err)
	}
	return data, nil
}

// DecodeIndex parses the index blob. An empty blob is an empty index.
func DecodeIndex(data []byte) ([]interfaces.ExperimentID, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var ids []interfaces.ExperimentID
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	return ids, nil
}
