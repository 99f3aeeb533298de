package codec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fhelabs/experiment-registry/interfaces"
)

func validRecord() interfaces.ExperimentRecord {
	return interfaces.ExperimentRecord{
		ID:                 "1718000000000-abc1234",
		ExperimentName:     "Sleep Study",
		Participant:        "0xAbC0000000000000000000000000000000000001",
		Timestamp:          1718000000,
		EncryptedResponses: "FHE-eyJ9",
		Status:             interfaces.StatusPending,
	}
}

func TestEncodeDecodeRecord(t *testing.T) {
	rec := validRecord()

	data, err := EncodeRecord(rec)
	require.NoError(t, err)

	// The id travels in the storage key, never in the blob
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.NotContains(t, raw, "id")

	decoded, err := DecodeRecord(data)
	require.NoError(t, err)
	assert.Empty(t, decoded.ID)

	decoded.ID = rec.ID
	assert.Equal(t, rec, decoded)
}

func TestEncodeRecord_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*interfaces.ExperimentRecord)
	}{
		{"missing name", func(r *interfaces.ExperimentRecord) { r.ExperimentName = "" }},
		{"missing participant", func(r *interfaces.ExperimentRecord) { r.Participant = "" }},
		{"zero timestamp", func(r *interfaces.ExperimentRecord) { r.Timestamp = 0 }},
		{"negative timestamp", func(r *interfaces.ExperimentRecord) { r.Timestamp = -5 }},
		{"unknown status", func(r *interfaces.ExperimentRecord) { r.Status = "paused" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(&rec)
			_, err := EncodeRecord(rec)
			assert.Error(t, err)
		})
	}
}

func TestDecodeRecord_Malformed(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"empty blob", ""},
		{"not json", "not json at all"},
		{"json array", `["experimentName"]`},
		{"missing experimentName", `{"participant":"0xab","timestamp":1,"encryptedResponses":"FHE-x"}`},
		{"missing participant", `{"experimentName":"a","timestamp":1,"encryptedResponses":"FHE-x"}`},
		{"missing timestamp", `{"experimentName":"a","participant":"0xab","encryptedResponses":"FHE-x"}`},
		{"missing encryptedResponses", `{"experimentName":"a","participant":"0xab","timestamp":1}`},
		{"unknown status", `{"experimentName":"a","participant":"0xab","timestamp":1,"encryptedResponses":"FHE-x","status":"paused"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRecord([]byte(tt.blob))
			assert.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}

func TestDecodeRecord_StatusDefaultsToPending(t *testing.T) {
	blob := `{"experimentName":"a","participant":"0xab","timestamp":1,"encryptedResponses":"FHE-x"}`

	rec, err := DecodeRecord([]byte(blob))
	require.NoError(t, err)
	assert.Equal(t, interfaces.StatusPending, rec.Status)
}

func TestEncodeDecodeIndex(t *testing.T) {
	ids := []interfaces.ExperimentID{"100-aaaaaaa", "200-bbbbbbb"}

	data, err := EncodeIndex(ids)
	require.NoError(t, err)

	decoded, err := DecodeIndex(data)
	require.NoError(t, err)
	assert.Equal(t, ids, decoded)
}

func TestDecodeIndex(t *testing.T) {
	tests := []struct {
		name    string
		blob    string
		want    int
		wantErr bool
	}{
		{"empty blob is empty index", "", 0, false},
		{"empty array", "[]", 0, false},
		{"single entry", `["100-aaaaaaa"]`, 1, false},
		{"not an array", `{"a":1}`, 0, true},
		{"garbage", "][", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := DecodeIndex([]byte(tt.blob))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, ids, tt.want)
		})
	}
}

func TestEncodeIndex_NilIsEmptyArray(t *testing.T) {
	data, err := EncodeIndex(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
