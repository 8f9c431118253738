package portal_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksalp/lernportal/internal/domain/outcome"
	"github.com/ksalp/lernportal/internal/pool"
	"github.com/ksalp/lernportal/internal/portal"
	"github.com/ksalp/lernportal/internal/wire"
)

func TestFetchBundle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/learnsets/bulk/s1.s2", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(wire.BulkResponse{
			Status: "success",
			LearnSets: []wire.LearnSet{
				{ID: "s1", Title: "Tiere", Subject: "bio", Created: "2024-03-01 12:00:00"},
				{ID: "s2", Title: "Zahlen", Subject: "math"},
			},
			Exercises: []wire.Exercise{
				{ID: "e1", SetID: "s1", Question: "dog", Answer: "Hund", Frequency: 1},
			},
			Stats: map[string]wire.LearnStat{
				"e1": {ExerciseID: "e1", Correct: 2, Wrong: 1},
			},
		})
	}))
	defer srv.Close()

	c := portal.NewClient(srv.URL+"/", portal.WithToken("tok"))
	b, err := c.FetchBundle(context.Background(), []string{"s1", "s2"})
	require.NoError(t, err)

	require.Len(t, b.LearnSets, 2)
	require.Len(t, b.Exercises, 1)
	assert.Equal(t, "Hund", b.Exercises[0].Answer)
	assert.Equal(t, 2024, b.LearnSets[0].Created.Year())
	assert.Equal(t, outcome.Counter{Correct: 2, Wrong: 1}, b.Stats["e1"])
}

func TestFetchBundle_MissingExercisesIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","message":"Exercises could not be loaded.","learnsets":[{"id_":"s1"}]}`))
	}))
	defer srv.Close()

	_, _, err := pool.Load(context.Background(), portal.NewClient(srv.URL), []string{"s1"})
	assert.ErrorIs(t, err, pool.ErrMalformedBundle)
	assert.Contains(t, err.Error(), "Exercises could not be loaded.")
}

func TestFetchBundle_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(wire.ErrorResponse{
			Error:   "learnsets not found",
			Message: "The requested learnsets could not be found.",
		})
	}))
	defer srv.Close()

	_, err := portal.NewClient(srv.URL).FetchBundle(context.Background(), []string{"nope"})

	var reqErr *portal.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusNotFound, reqErr.Status)
	assert.Contains(t, reqErr.Error(), "could not be found")
}

func TestFetchBundle_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, _, err := pool.Load(context.Background(), portal.NewClient(url), []string{"s1"})
	assert.ErrorIs(t, err, pool.ErrConnectivity)
}

func TestRecordAnswer(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/learnsets/answer/e1", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"status":"success","message":"The statistics have been updated."}`))
	}))
	defer srv.Close()

	err := portal.NewClient(srv.URL).RecordAnswer(context.Background(),
		outcome.Answer{ExerciseID: "e1", Submitted: "Hund", Correct: false})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"answer": "Hund", "value": false}, got)
}

func TestRecordAnswer_NotAcknowledged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","message":"nope"}`))
	}))
	defer srv.Close()

	err := portal.NewClient(srv.URL).RecordAnswer(context.Background(), outcome.Answer{ExerciseID: "e1"})
	assert.Error(t, err)
}

func TestRecordAnswer_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := portal.NewClient(srv.URL).RecordAnswer(context.Background(), outcome.Answer{ExerciseID: "e1"})

	var reqErr *portal.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusUnauthorized, reqErr.Status)
}

func TestAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"valid":true,"info":{"name":"Mia","classes":["7b"]}}`))
	}))
	defer srv.Close()

	acc, err := portal.NewClient(srv.URL).Account(context.Background())
	require.NoError(t, err)
	assert.True(t, acc.Valid)
	require.NotNil(t, acc.Info)
	assert.Equal(t, "Mia", acc.Info.Name)
}

func TestListLearnSets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/learnsets/list", r.URL.Path)
		w.Write([]byte(`{"status":"success","learnsets":[{"id_":"s1","title":"Tiere","size":3}]}`))
	}))
	defer srv.Close()

	sets, err := portal.NewClient(srv.URL).ListLearnSets(context.Background())
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, 3, sets[0].Size)
}
