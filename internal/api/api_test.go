package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repdec/internal/catalog"
	"repdec/internal/replay"
	"repdec/internal/store"
	"repdec/internal/testrep"
)

func testServer(t *testing.T, history *store.History) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(newRouter(NewHandler(1<<20, history)))
	t.Cleanup(srv.Close)
	return srv
}

func fixture() []byte {
	return testrep.New().
		Human(0, "Alice", catalog.RaceTerran).
		Human(1, "Bob", catalog.RaceZerg).
		AdvanceFrames(24).
		Command(0x1F, 0, 0x07, 0x00).
		Bytes()
}

// --- Decode Endpoint Tests ---

func TestDecodeRawBody(t *testing.T) {
	srv := testServer(t, nil)

	res, err := http.Post(srv.URL+"/api/v1/replays", "application/octet-stream", bytes.NewReader(fixture()))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var result replay.Result
	require.NoError(t, json.NewDecoder(res.Body).Decode(&result))
	assert.Equal(t, "Lost Temple", result.Header.MapName)
	require.Len(t, result.Players, 2)
	assert.Equal(t, 1, result.Stats.CommandCount)
}

func TestDecodeMultipart(t *testing.T) {
	srv := testServer(t, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("replay", "game1.rep")
	require.NoError(t, err)
	_, err = part.Write(fixture())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	res, err := http.Post(srv.URL+"/api/v1/replays", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))
}

func TestDecodeRejectsBadSignature(t *testing.T) {
	srv := testServer(t, nil)

	bad := testrep.New().Signature("NOPE").Bytes()
	res, err := http.Post(srv.URL+"/api/v1/replays", "application/octet-stream", bytes.NewReader(bad))
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)

	var e map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&e))
	assert.Equal(t, "Not a recognized replay file", e["error"])
}

func TestDecodeRejectsEmptyBody(t *testing.T) {
	srv := testServer(t, nil)

	res, err := http.Post(srv.URL+"/api/v1/replays", "application/octet-stream", bytes.NewReader(nil))
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestDecodeRejectsOversizedUpload(t *testing.T) {
	srv := httptest.NewServer(newRouter(NewHandler(64, nil)))
	defer srv.Close()

	res, err := http.Post(srv.URL+"/api/v1/replays", "application/octet-stream", bytes.NewReader(fixture()))
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

// --- History Endpoint Tests ---

func TestDecodeRecordsHistory(t *testing.T) {
	h, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer h.Close()
	srv := testServer(t, h)

	res, err := http.Post(srv.URL+"/api/v1/replays", "application/octet-stream", bytes.NewReader(fixture()))
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	id := res.Header.Get("X-Decode-ID")
	require.NotEmpty(t, id)

	res, err = http.Get(srv.URL + "/api/v1/history/" + id)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var entry store.Entry
	require.NoError(t, json.NewDecoder(res.Body).Decode(&entry))
	assert.Equal(t, "Lost Temple", entry.MapName)
	assert.Equal(t, []string{"Alice", "Bob"}, entry.Players)
}

func TestHistoryList(t *testing.T) {
	h, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer h.Close()
	srv := testServer(t, h)

	for i := 0; i < 3; i++ {
		res, err := http.Post(srv.URL+"/api/v1/replays", "application/octet-stream", bytes.NewReader(fixture()))
		require.NoError(t, err)
		res.Body.Close()
	}

	res, err := http.Get(srv.URL + "/api/v1/history?limit=2")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body struct {
		Entries []store.Entry `json:"entries"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Len(t, body.Entries, 2)
}

func TestHistoryDisabled(t *testing.T) {
	srv := testServer(t, nil)

	res, err := http.Get(srv.URL + "/api/v1/history")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestHistoryUnknownID(t *testing.T) {
	h, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer h.Close()
	srv := testServer(t, h)

	res, err := http.Get(srv.URL + "/api/v1/history/01AN4Z07BY79KA1307SR9X4MV3")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

// --- Infrastructure Tests ---

func TestHealthCheck(t *testing.T) {
	srv := testServer(t, nil)

	res, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := testServer(t, nil)

	res, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestRequestIDPropagated(t *testing.T) {
	srv := testServer(t, nil)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "req-123")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, "req-123", res.Header.Get("X-Request-ID"))
}
