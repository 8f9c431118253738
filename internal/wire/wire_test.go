package wire_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksalp/lernportal/internal/domain/learnset"
	"github.com/ksalp/lernportal/internal/wire"
)

func TestLearnSetKeys(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	dto := wire.FromLearnSet(learnset.LearnSet{
		ID: "s1", Title: "Tiere", Subject: "bio", Class: "7b",
		Grade: "-", Language: "-", OwnerID: "a1", OwnerName: "Mia",
		Created: created, Edited: created, Size: 2,
	})

	raw, err := json.Marshal(dto)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "s1", m["id_"])
	assert.Equal(t, "7b", m["class_"])
	assert.Equal(t, "a1", m["owner"])
	assert.Equal(t, "Mia", m["owner_name"])
	assert.Equal(t, "2024-03-01 12:30:00", m["created"])
	assert.EqualValues(t, 2, m["size"])

	back := dto.Domain()
	assert.True(t, back.Created.Equal(created))
	assert.Equal(t, "a1", back.OwnerID)
}

func TestLearnSetDomain_BadDate(t *testing.T) {
	ls := wire.LearnSet{ID: "s1", Created: "yesterday"}.Domain()
	assert.True(t, ls.Created.IsZero())
}

func TestExerciseKeys(t *testing.T) {
	dto := wire.FromExercise(learnset.Exercise{
		ID: "e1", SetID: "s1", Question: "dog", Answer: "Hund", Frequency: 1,
	})

	raw, err := json.Marshal(dto)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id_":"e1","set_id":"s1","question":"dog","answer":"Hund","answers":[],"frequency":1,"auto_check":0}`,
		string(raw))
}

func TestAnswerRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"complete", `{"answer":"Hund","value":true}`, false},
		{"false value", `{"answer":"","value":false}`, false},
		{"missing value", `{"answer":"Hund"}`, true},
		{"missing answer", `{"value":true}`, true},
		{"empty object", `{}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req wire.AnswerRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			if tt.wantErr {
				assert.Error(t, req.Validate())
			} else {
				assert.NoError(t, req.Validate())
			}
		})
	}
}

func TestExerciseUnmarshal_DefaultFrequency(t *testing.T) {
	var missing, explicit wire.Exercise
	require.NoError(t, json.Unmarshal([]byte(`{"id_":"e1","question":"dog","answer":"Hund"}`), &missing))
	require.NoError(t, json.Unmarshal([]byte(`{"id_":"e2","frequency":0}`), &explicit))

	assert.Equal(t, learnset.DefaultFrequency, missing.Frequency)
	assert.Equal(t, "Hund", missing.Answer)
	assert.Equal(t, 0.0, explicit.Frequency)

	var broken wire.Exercise
	assert.Error(t, json.Unmarshal([]byte(`{"frequency":"high"}`), &broken))
}
