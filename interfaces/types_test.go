package interfaces

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExperimentID_Format(t *testing.T) {
	idFormat := regexp.MustCompile(`^\d{13}-[0-9a-z]{7}$`)

	for i := 0; i < 100; i++ {
		id := NewExperimentID()
		assert.Regexp(t, idFormat, id.String())
		require.NoError(t, id.Validate())
	}
}

func TestNewExperimentID_Unique(t *testing.T) {
	seen := make(map[ExperimentID]bool)
	for i := 0; i < 1000; i++ {
		id := NewExperimentID()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestExperimentID_RecordKey(t *testing.T) {
	id := ExperimentID("1718000000000-abc1234")
	assert.Equal(t, "experiment_1718000000000-abc1234", id.RecordKey())
}

func TestExperimentID_Validate(t *testing.T) {
	assert.Error(t, ExperimentID("").Validate())
	assert.Error(t, ExperimentID("keys").Validate(), "derived key must not shadow the index")
	assert.NoError(t, ExperimentID("1718000000000-abc1234").Validate())
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "analyzed", "archived"} {
		got, err := ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, got.String())
	}

	_, err := ParseStatus("paused")
	assert.Error(t, err)
	_, err = ParseStatus("")
	assert.Error(t, err)
	_, err = ParseStatus("Pending")
	assert.Error(t, err)
}

func TestExperimentRecord_OwnedBy(t *testing.T) {
	rec := ExperimentRecord{Participant: "0xAbC0000000000000000000000000000000000001"}

	assert.True(t, rec.OwnedBy("0xAbC0000000000000000000000000000000000001"))
	assert.True(t, rec.OwnedBy("0xABC0000000000000000000000000000000000001"))
	assert.False(t, rec.OwnedBy("0xDeF0000000000000000000000000000000000002"))
	assert.False(t, rec.OwnedBy(""))
}
