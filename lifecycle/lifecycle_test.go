package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fhelabs/experiment-registry/interfaces"
)

const participant = "0xAbC0000000000000000000000000000000000001"
const otherAccount = "0xDeF0000000000000000000000000000000000002"

func record(status interfaces.Status) interfaces.ExperimentRecord {
	return interfaces.ExperimentRecord{
		ID:                 "1718000000000-abc1234",
		ExperimentName:     "Sleep Study",
		Participant:        participant,
		Timestamp:          1718000000,
		EncryptedResponses: "FHE-eyJ9",
		Status:             status,
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to interfaces.Status
		allowed  bool
	}{
		{interfaces.StatusPending, interfaces.StatusAnalyzed, true},
		{interfaces.StatusPending, interfaces.StatusArchived, true},
		{interfaces.StatusAnalyzed, interfaces.StatusArchived, true},
		{interfaces.StatusAnalyzed, interfaces.StatusAnalyzed, false},
		{interfaces.StatusAnalyzed, interfaces.StatusPending, false},
		{interfaces.StatusArchived, interfaces.StatusPending, false},
		{interfaces.StatusArchived, interfaces.StatusAnalyzed, false},
		{interfaces.StatusArchived, interfaces.StatusArchived, false},
		{interfaces.StatusPending, interfaces.StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTransition_AnalyzeRequiresParticipant(t *testing.T) {
	rec := record(interfaces.StatusPending)

	_, err := Transition(rec, interfaces.StatusAnalyzed, otherAccount)
	assert.ErrorIs(t, err, ErrUnauthorized)

	updated, err := Transition(rec, interfaces.StatusAnalyzed, participant)
	require.NoError(t, err)
	assert.Equal(t, interfaces.StatusAnalyzed, updated.Status)
}

func TestTransition_AnalyzeMatchesParticipantCaseInsensitively(t *testing.T) {
	rec := record(interfaces.StatusPending)

	updated, err := Transition(rec, interfaces.StatusAnalyzed, "0xABC0000000000000000000000000000000000001")
	require.NoError(t, err)
	assert.Equal(t, interfaces.StatusAnalyzed, updated.Status)
}

func TestTransition_ArchiveAllowedForAnyAccount(t *testing.T) {
	for _, from := range []interfaces.Status{interfaces.StatusPending, interfaces.StatusAnalyzed} {
		updated, err := Transition(record(from), interfaces.StatusArchived, otherAccount)
		require.NoError(t, err)
		assert.Equal(t, interfaces.StatusArchived, updated.Status)
	}
}

func TestTransition_InvalidEdges(t *testing.T) {
	_, err := Transition(record(interfaces.StatusArchived), interfaces.StatusAnalyzed, participant)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = Transition(record(interfaces.StatusAnalyzed), interfaces.StatusPending, participant)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = Transition(record(interfaces.StatusPending), "paused", participant)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransition_OnlyStatusChanges(t *testing.T) {
	rec := record(interfaces.StatusPending)

	updated, err := Transition(rec, interfaces.StatusArchived, participant)
	require.NoError(t, err)

	assert.Equal(t, rec.ID, updated.ID)
	assert.Equal(t, rec.ExperimentName, updated.ExperimentName)
	assert.Equal(t, rec.Participant, updated.Participant)
	assert.Equal(t, rec.Timestamp, updated.Timestamp)
	assert.Equal(t, rec.EncryptedResponses, updated.EncryptedResponses)

	// The input record is untouched
	assert.Equal(t, interfaces.StatusPending, rec.Status)
}
