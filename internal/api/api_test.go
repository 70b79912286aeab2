package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duelcode-game/duelcode/internal/api"
	"github.com/duelcode-game/duelcode/internal/api/handler"
	"github.com/duelcode-game/duelcode/internal/factory"
	"github.com/duelcode-game/duelcode/internal/model"
	"github.com/duelcode-game/duelcode/internal/testutil"
)

// testServer wires the REST surface over a freshly built app
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	router := api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		Gateway:        app.Gateway,
		HistoryService: app.HistoryService,
	})

	return &testServer{handler: router, app: app}
}

func (ts *testServer) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) record(t *testing.T, roomID model.RoomID, winner model.PlayerID) {
	t.Helper()
	err := ts.app.HistoryService.Record(context.Background(), &model.MatchSummary{
		RoomID:     roomID,
		Players:    [2]model.PlayerID{"p1", "p2"},
		Winner:     winner,
		Attempts:   map[model.PlayerID]int{"p1": 3, "p2": 2},
		FinishedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.get("/api/v1/health")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestRecentMatches(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.get("/api/v1/matches")
	require.Equal(t, http.StatusOK, rr.Code)
	var empty handler.MatchListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &empty))
	assert.Empty(t, empty.Matches)

	ts.record(t, "ROOM01", "p1")
	ts.record(t, "ROOM02", "p2")

	rr = ts.get("/api/v1/matches")
	require.Equal(t, http.StatusOK, rr.Code)
	var got handler.MatchListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got.Matches, 2)
	// Newest first
	assert.Equal(t, model.RoomID("ROOM02"), got.Matches[0].RoomID)
	assert.Equal(t, model.PlayerID("p1"), got.Matches[1].Winner)
}

func TestMatchesForRoom(t *testing.T) {
	ts := newTestServer(t)
	ts.record(t, "ROOM01", "p1")
	ts.record(t, "ROOM02", "p2")

	rr := ts.get("/api/v1/rooms/ROOM01/matches")
	require.Equal(t, http.StatusOK, rr.Code)
	var got handler.MatchListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got.Matches, 1)
	assert.Equal(t, model.RoomID("ROOM01"), got.Matches[0].RoomID)
}

func TestMatchesLimit(t *testing.T) {
	ts := newTestServer(t)
	for i := 0; i < 5; i++ {
		ts.record(t, "ROOM01", "p1")
	}

	rr := ts.get("/api/v1/matches?limit=2")
	require.Equal(t, http.StatusOK, rr.Code)
	var got handler.MatchListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got.Matches, 2)
}

func TestMatchesBadLimit(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.get("/api/v1/matches?limit=nope")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_REQUEST")
}
