package fireflies

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodedRequest captures one GraphQL request body received by the fake
// backend.
type decodedRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// decodeRequest runs inside handler goroutines, so it reports failures with
// assert rather than require.
func decodeRequest(t *testing.T, r *http.Request) decodedRequest {
	t.Helper()
	var req decodedRequest
	assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
	return req
}

func writeData(t *testing.T, w http.ResponseWriter, data string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"data":` + data + `}`))
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts = append([]Option{WithEndpoint(srv.URL)}, opts...)
	client, err := NewClient("test-key", opts...)
	require.NoError(t, err)
	return client, srv
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient("")
	assert.Error(t, err)

	_, err = NewClient("   ")
	assert.Error(t, err)
}

func TestExecute_SendsBearerToken(t *testing.T) {
	var authHeader atomic.Value
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		authHeader.Store(r.Header.Get("Authorization"))
		writeData(t, w, `{"transcripts":[]}`)
	})

	_, _, err := client.ListTranscripts(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-key", authHeader.Load())
}

func TestExecute_GraphQLErrorSurfacesFirstMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":null,"errors":[{"message":"field does not exist"},{"message":"second"}]}`))
	})

	_, _, err := client.ListTranscripts(context.Background(), ListOptions{})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInternal))
	assert.Contains(t, err.Error(), "field does not exist")
	assert.NotContains(t, err.Error(), "second")
}

func TestExecute_ClassifiesHTTPStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, _, err := client.ListTranscripts(context.Background(), ListOptions{})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindUnauthorized))
}

func TestListTranscripts_DefaultLimitAndNoDateFilter(t *testing.T) {
	var captured atomic.Value
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		captured.Store(decodeRequest(t, r))
		writeData(t, w, `{"transcripts":[{"id":"t1","title":"Standup","date":1704204000000}]}`)
	})

	transcripts, degraded, err := client.ListTranscripts(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.False(t, degraded)
	require.Len(t, transcripts, 1)
	assert.Equal(t, "t1", transcripts[0].ID)

	req := captured.Load().(decodedRequest)
	assert.Equal(t, float64(DefaultListLimit), req.Variables["limit"])
	assert.NotContains(t, req.Variables, "fromDate")
	assert.NotContains(t, req.Variables, "toDate")
}

func TestListTranscripts_NormalizesDateOnlyBounds(t *testing.T) {
	var captured atomic.Value
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		captured.Store(decodeRequest(t, r))
		writeData(t, w, `{"transcripts":[]}`)
	})

	_, _, err := client.ListTranscripts(context.Background(), ListOptions{
		Limit:    5,
		FromDate: "2024-01-02",
		ToDate:   "2024-02-01T12:30:00.000Z",
	})
	require.NoError(t, err)

	req := captured.Load().(decodedRequest)
	assert.Equal(t, float64(5), req.Variables["limit"])
	assert.Equal(t, "2024-01-02T00:00:00.000Z", req.Variables["fromDate"])
	assert.Equal(t, "2024-02-01T12:30:00.000Z", req.Variables["toDate"])
}

func TestListTranscripts_TimeoutFallsBackToMinimalQuery(t *testing.T) {
	var minimalCalls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req := decodeRequest(t, r)
		if req.Query == listTranscriptsMinimalQuery {
			minimalCalls.Add(1)
			writeData(t, w, `{"transcripts":[{"id":"t1","title":"Standup","date":1704204000000}]}`)
			return
		}
		w.WriteHeader(http.StatusGatewayTimeout)
	})

	transcripts, degraded, err := client.ListTranscripts(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.Equal(t, int32(1), minimalCalls.Load())
	require.Len(t, transcripts, 1)
	assert.Equal(t, "t1", transcripts[0].ID)
	assert.Equal(t, "Standup", transcripts[0].Title)
	assert.Empty(t, transcripts[0].Speakers)
	assert.Nil(t, transcripts[0].Summary)
}

func TestListTranscripts_DeadlineElapsedFallsBack(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req := decodeRequest(t, r)
		if req.Query == listTranscriptsMinimalQuery {
			writeData(t, w, `{"transcripts":[{"id":"t2","title":"Retro","date":1704204000000}]}`)
			return
		}
		// Primary query outlives the list deadline.
		time.Sleep(500 * time.Millisecond)
		writeData(t, w, `{"transcripts":[{"id":"slow"}]}`)
	}, WithListDeadline(50*time.Millisecond))

	transcripts, degraded, err := client.ListTranscripts(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.True(t, degraded)
	require.Len(t, transcripts, 1)
	assert.Equal(t, "t2", transcripts[0].ID)
}

func TestListTranscripts_NonTimeoutErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, degraded, err := client.ListTranscripts(context.Background(), ListOptions{})
	require.Error(t, err)
	assert.False(t, degraded)
	assert.True(t, IsKind(err, KindUnauthorized))
	assert.Equal(t, int32(1), calls.Load())
}

func TestGetTranscript(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req := decodeRequest(t, r)
		if req.Variables["transcriptId"] != "t1" {
			writeData(t, w, `{"transcript":null}`)
			return
		}
		writeData(t, w, `{"transcript":{
			"id":"t1",
			"title":"Design review",
			"date":"2024-01-02T15:04:05Z",
			"duration":1800,
			"speakers":[{"id":"s1","name":"Ada"}],
			"sentences":[{"index":0,"speaker_name":"Ada","text":"Hello everyone","start_time":0.5,"end_time":2.1}]
		}}`)
	})

	transcript, err := client.GetTranscript(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "Design review", transcript.Title)
	require.Len(t, transcript.Sentences, 1)
	assert.Equal(t, "Ada", transcript.Sentences[0].Speaker)
	assert.Equal(t, 0.5, transcript.Sentences[0].StartTime)

	_, err = client.GetTranscript(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestGetTranscript_EmptyIDFailsWithoutNetworkCall(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	_, err := client.GetTranscript(context.Background(), "  ")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalidParams))
	assert.Equal(t, int32(0), calls.Load())
}

func searchFixture(t *testing.T, w http.ResponseWriter) {
	writeData(t, w, `{"transcripts":[
		{"id":"t1","title":"Roadmap planning","sentences":[{"text":"budget review"}]},
		{"id":"t2","title":"Standup","sentences":[{"text":"We discussed the ROADMAP today"}]},
		{"id":"t3","title":"1:1","summary":{"keywords":["roadmap","okrs"]}},
		{"id":"t4","title":"All hands","sentences":[{"text":"unrelated"}]}
	]}`)
}

func TestSearchTranscripts_MatchesTitleSentencesAndKeywords(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		searchFixture(t, w)
	})

	matches, err := client.SearchTranscripts(context.Background(), "Roadmap", 0)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, "t1", matches[0].ID)
	assert.Equal(t, "t2", matches[1].ID)
	assert.Equal(t, "t3", matches[2].ID)
}

func TestSearchTranscripts_TruncatesToLimit(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		searchFixture(t, w)
	})

	matches, err := client.SearchTranscripts(context.Background(), "roadmap", 2)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestSearchTranscripts_FetchesCandidateFloor(t *testing.T) {
	var captured atomic.Value
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		captured.Store(decodeRequest(t, r))
		writeData(t, w, `{"transcripts":[]}`)
	})

	// Small limits still fetch a full candidate page for filtering.
	_, err := client.SearchTranscripts(context.Background(), "anything", 3)
	require.NoError(t, err)
	req := captured.Load().(decodedRequest)
	assert.Equal(t, float64(searchFetchFloor), req.Variables["limit"])

	// Limits above the floor are used as-is.
	_, err = client.SearchTranscripts(context.Background(), "anything", 50)
	require.NoError(t, err)
	req = captured.Load().(decodedRequest)
	assert.Equal(t, float64(50), req.Variables["limit"])
}

func TestSearchTranscripts_EmptyQueryFailsWithoutNetworkCall(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	_, err := client.SearchTranscripts(context.Background(), "   ", 5)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalidParams))
	assert.Equal(t, int32(0), calls.Load())
}

func TestGetSummary(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req := decodeRequest(t, r)
		switch req.Variables["transcriptId"] {
		case "with-summary":
			writeData(t, w, `{"transcript":{"id":"with-summary","title":"Sync","summary":{"overview":"All good"}}}`)
		case "empty-summary":
			writeData(t, w, `{"transcript":{"id":"empty-summary","title":"Sync","summary":{}}}`)
		case "no-summary":
			writeData(t, w, `{"transcript":{"id":"no-summary","title":"Sync","summary":null}}`)
		default:
			writeData(t, w, `{"transcript":null}`)
		}
	})

	transcript, err := client.GetSummary(context.Background(), "with-summary")
	require.NoError(t, err)
	assert.Equal(t, "All good", transcript.Summary.Overview)

	// An empty summary record is valid; only a missing record fails.
	transcript, err = client.GetSummary(context.Background(), "empty-summary")
	require.NoError(t, err)
	require.NotNil(t, transcript.Summary)

	_, err = client.GetSummary(context.Background(), "no-summary")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalidParams))
	assert.True(t, errors.Is(err, ErrNoSummary))

	_, err = client.GetSummary(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2024-01-02T00:00:00.000Z", normalizeDate("2024-01-02"))
	assert.Equal(t, "2024-01-02T10:00:00.000Z", normalizeDate("2024-01-02T10:00:00.000Z"))
	assert.Equal(t, "garbage", normalizeDate("garbage"))
}
