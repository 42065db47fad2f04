package codeforces

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cf-tools/cf-insight/internal/domain/shared"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(ClientConfig{
		BaseURL:     server.URL,
		PacerConfig: PacerConfig{MinInterval: 0},
	})
	return client, server
}

func TestGetProfiles(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user.info", r.URL.Path)
		assert.Equal(t, "alice;bob", r.URL.Query().Get("handles"))
		w.Write([]byte(`{"status":"OK","result":[
			{"handle":"alice","rating":1500},
			{"handle":"bob","rating":1600}
		]}`))
	})
	defer server.Close()

	records, err := client.GetProfiles(context.Background(), []string{"alice", "bob"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "alice", records[0]["handle"])
	assert.Equal(t, float64(1500), records[0]["rating"])
}

func TestGetRatingHistory(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user.rating", r.URL.Path)
		assert.Equal(t, "alice", r.URL.Query().Get("handle"))
		w.Write([]byte(`{"status":"OK","result":[{"contestId":1,"newRating":1400}]}`))
	})
	defer server.Close()

	records, err := client.GetRatingHistory(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, float64(1400), records[0]["newRating"])
}

func TestGetSubmissions_LimitParam(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user.status", r.URL.Path)
		assert.Equal(t, "250", r.URL.Query().Get("count"))
		w.Write([]byte(`{"status":"OK","result":[]}`))
	})
	defer server.Close()

	_, err := client.GetSubmissions(context.Background(), "alice", 250)
	require.NoError(t, err)
}

func TestGetSubmissions_DefaultLimit(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1000", r.URL.Query().Get("count"))
		w.Write([]byte(`{"status":"OK","result":[]}`))
	})
	defer server.Close()

	_, err := client.GetSubmissions(context.Background(), "alice", 0)
	require.NoError(t, err)
}

func TestGetCatalog(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/problemset.problems", r.URL.Path)
		w.Write([]byte(`{"status":"OK","result":{
			"problems":[{"index":"A","name":"One","type":"PROGRAMMING"}],
			"problemStatistics":[{"index":"A","solvedCount":7}]
		}}`))
	})
	defer server.Close()

	problems, statistics, err := client.GetCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, problems, 1)
	require.Len(t, statistics, 1)
	assert.Equal(t, "A", problems[0]["index"])
	assert.Equal(t, float64(7), statistics[0]["solvedCount"])
}

func TestDoGet_FailedStatusMapsToSourceUnavailable(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status":"FAILED","comment":"handles: User with handle nosuch not found"}`))
	})
	defer server.Close()

	_, err := client.GetProfiles(context.Background(), []string{"nosuch"})
	assert.ErrorIs(t, err, shared.ErrSourceUnavailable)
	assert.Contains(t, err.Error(), "not found")
}

func TestDoGet_GarbageBodyMapsToSourceUnavailable(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	})
	defer server.Close()

	_, err := client.GetRatingHistory(context.Background(), "alice")
	assert.ErrorIs(t, err, shared.ErrSourceUnavailable)
}

func TestDoGet_ConnectionRefusedMapsToSourceUnavailable(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {})
	server.Close() // kill the server before the request

	_, err := client.GetProfiles(context.Background(), []string{"alice"})
	assert.ErrorIs(t, err, shared.ErrSourceUnavailable)
}

func TestDoGet_NoRetry(t *testing.T) {
	calls := 0
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"status":"FAILED","comment":"Call limit exceeded"}`))
	})
	defer server.Close()

	_, err := client.GetProfiles(context.Background(), []string{"alice"})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
