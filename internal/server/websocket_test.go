package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/tileforge/tileforge/internal/core/level"
)

func testServer() *Server {
	cfg := DefaultConfig()
	return New(cfg)
}

func TestHandleLevel_ReturnsLevel(t *testing.T) {
	srv := testServer()
	ts := httptest.NewServer(http.HandlerFunc(srv.handleLevel))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "?seed=1234&mode=cave&width=64&height=48&fill_percent=45&cave_iterations=4")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var lr LevelResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&lr))
	require.Equal(t, uint64(1234), lr.Seed)
	require.Equal(t, 64, lr.Width)
	require.Equal(t, 48, lr.Height)
	require.Len(t, lr.Tiles, 64*48)
	require.NotEmpty(t, lr.Spawns)

	// The wire hash matches a local generation of the same request.
	want, err := level.Generate(1234, level.Config{
		Width: 64, Height: 48, Mode: level.ModeCave,
		FillPercent: 45, CaveIterations: 4,
	})
	require.NoError(t, err)
	require.Equal(t, lr.Hash, levelResponse(want).Hash)
}

func TestHandleLevel_BaseConfigFromPreset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseLevel = level.Config{
		Width: 48, Height: 32, Mode: level.ModeCave,
		FillPercent: 50, CaveIterations: 3,
	}
	srv := New(cfg)
	ts := httptest.NewServer(http.HandlerFunc(srv.handleLevel))
	defer ts.Close()

	// No query overrides: the response reflects the configured base, not
	// the package defaults.
	resp, err := http.Get(ts.URL + "?seed=9")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var lr LevelResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&lr))
	require.Equal(t, 48, lr.Width)
	require.Equal(t, 32, lr.Height)

	want, err := level.Generate(9, cfg.BaseLevel)
	require.NoError(t, err)
	require.Equal(t, levelResponse(want).Hash, lr.Hash)

	// An explicit parameter still overrides the base field by field.
	resp2, err := http.Get(ts.URL + "?seed=9&width=64")
	require.NoError(t, err)
	defer func() { _ = resp2.Body.Close() }()

	var lr2 LevelResponse
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&lr2))
	require.Equal(t, 64, lr2.Width)
	require.Equal(t, 32, lr2.Height)
}

func TestHandleLevel_BadQuery(t *testing.T) {
	srv := testServer()
	ts := httptest.NewServer(http.HandlerFunc(srv.handleLevel))
	defer ts.Close()

	for _, q := range []string{"?seed=banana", "?width=x", "?seed=1&width=2"} {
		resp, err := http.Get(ts.URL + q)
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.NotEqual(t, http.StatusOK, resp.StatusCode, "query %q accepted", q)
	}
}

func TestHandleLevel_MethodGuard(t *testing.T) {
	srv := testServer()
	ts := httptest.NewServer(http.HandlerFunc(srv.handleLevel))
	defer ts.Close()

	resp, err := http.Post(ts.URL, "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestWebSocket_GenerateRoundTrip(t *testing.T) {
	srv := testServer()
	ts := httptest.NewServer(http.HandlerFunc(srv.handleWebSocket))
	defer ts.Close()

	u := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	req := GenerateRequest{
		Seed: 7,
		Config: level.Config{
			Width: 40, Height: 30, Mode: level.ModeDungeon,
			MinRoomSize: 4, MaxRoomSize: 8, MaxDepth: 4,
		},
	}
	require.NoError(t, conn.WriteJSON(req))

	var lr LevelResponse
	require.NoError(t, conn.ReadJSON(&lr))
	require.Equal(t, uint64(7), lr.Seed)
	require.Equal(t, 40, lr.Width)
	require.Len(t, lr.Tiles, 40*30)

	// Same request again: identical payload, via the cache.
	require.NoError(t, conn.WriteJSON(req))
	var lr2 LevelResponse
	require.NoError(t, conn.ReadJSON(&lr2))
	require.Equal(t, lr.Hash, lr2.Hash)
}

func TestWebSocket_GenerationErrorReported(t *testing.T) {
	srv := testServer()
	ts := httptest.NewServer(http.HandlerFunc(srv.handleWebSocket))
	defer ts.Close()

	u := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	req := GenerateRequest{Seed: 1, Config: level.Config{Width: 2, Height: 2, Mode: level.ModeDungeon}}
	require.NoError(t, conn.WriteJSON(req))

	var payload map[string]any
	require.NoError(t, conn.ReadJSON(&payload))
	require.Contains(t, payload, "error")
}
