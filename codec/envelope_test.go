package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapUnwrapPayload(t *testing.T) {
	p := Payload{
		ExperimentName:  "Sleep Study",
		QuestionSet:     "q1: how many hours?",
		ParticipantInfo: "anonymous volunteer",
	}

	envelope, err := WrapPayload(p)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(envelope, "FHE-"))
	assert.NotContains(t, envelope[4:], "Sleep Study", "payload must not appear in clear text")

	unwrapped, err := UnwrapPayload(envelope)
	require.NoError(t, err)
	assert.Equal(t, p, unwrapped)
}

func TestUnwrapPayload_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		envelope string
	}{
		{"no prefix", "eyJhIjoxfQ=="},
		{"wrong prefix", "AES-eyJhIjoxfQ=="},
		{"invalid base64 body", "FHE-!!!not-base64!!!"},
		{"body not json", "FHE-bm90IGpzb24="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnwrapPayload(tt.envelope)
			assert.ErrorIs(t, err, ErrNotEnveloped)
		})
	}
}
