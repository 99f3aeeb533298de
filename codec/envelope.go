package codec

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// envelopePrefix tags a payload as (placeholder-)encrypted. Existing records
// on chain carry this exact prefix.
const envelopePrefix = "FHE-"

// ErrNotEnveloped is returned when unwrapping data that does not carry the
// envelope prefix or whose body is not valid base64.
var ErrNotEnveloped = errors.New("payload is not an encrypted envelope")

// Payload is the free-text experiment content that gets enveloped at
// creation time.
type Payload struct {
	ExperimentName  string `json:"experimentName"`
	QuestionSet     string `json:"questionSet"`
	ParticipantInfo string `json:"participantInfo"`
}

// WrapPayload produces the opaque envelope string stored in a record's
// encryptedResponses field. This is a simulation, not encryption: the body
// is base64 of the JSON payload. Do not rely on it for confidentiality.
func WrapPayload(p Payload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}
	return envelopePrefix + base64.StdEncoding.EncodeToString(data), nil
}

// UnwrapPayload reverses WrapPayload.
func UnwrapPayload(s string) (Payload, error) {
	if !strings.HasPrefix(s, envelopePrefix) {
		return Payload{}, ErrNotEnveloped
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(s, envelopePrefix))
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrNotEnveloped, err)
	}
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrNotEnveloped, err)
	}
	return p, nil
}
