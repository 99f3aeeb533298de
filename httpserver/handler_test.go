package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fhelabs/experiment-registry/api"
	"github.com/fhelabs/experiment-registry/interfaces"
	"github.com/fhelabs/experiment-registry/orchestrator"
	"github.com/fhelabs/experiment-registry/registry"
	"github.com/fhelabs/experiment-registry/storage"
)

const participant = "0xAbC0000000000000000000000000000000000001"

type staticAccount struct{ account string }

func (s staticAccount) Current() string { return s.account }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(t *testing.T, account string) (http.Handler, *registry.Registry) {
	t.Helper()

	store := storage.NewMemoryStore()
	reg := registry.New(store, testLogger())
	notifier := orchestrator.NewNotifier(time.Minute, time.Minute)
	orch := orchestrator.New(reg, staticAccount{account: account}, notifier, testLogger())

	srv, err := New(&HTTPServerConfig{
		ListenAddr: "127.0.0.1:0",
		Log:        testLogger(),
	}, NewHandler(orch, reg, testLogger()))
	require.NoError(t, err)

	return srv.getRouter(), reg
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func createExperiment(t *testing.T, router http.Handler) string {
	t.Helper()

	rr := doJSON(t, router, http.MethodPost, "/api/experiments", api.CreateExperimentRequest{
		ExperimentName:  "Sleep Study",
		QuestionSet:     "q1: how many hours?",
		ParticipantInfo: "anonymous volunteer",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp api.CreateExperimentResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

func TestHandleCreateAndGetExperiment(t *testing.T) {
	router, _ := newTestRouter(t, participant)

	id := createExperiment(t, router)

	rr := doJSON(t, router, http.MethodGet, "/api/experiments/"+id, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var exp api.ExperimentResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &exp))
	assert.Equal(t, id, exp.ID)
	assert.Equal(t, "Sleep Study", exp.ExperimentName)
	assert.Equal(t, participant, exp.Participant)
	assert.Equal(t, "pending", exp.Status)
	assert.Contains(t, exp.EncryptedResponses, "FHE-")
}

func TestHandleCreateExperiment_BadBody(t *testing.T) {
	router, _ := newTestRouter(t, participant)

	req := httptest.NewRequest(http.MethodPost, "/api/experiments", bytes.NewReader([]byte("{")))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleCreateExperiment_NoAccount(t *testing.T) {
	router, _ := newTestRouter(t, "")

	rr := doJSON(t, router, http.MethodPost, "/api/experiments", api.CreateExperimentRequest{
		ExperimentName: "Sleep Study",
		QuestionSet:    "q1",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleListExperiments(t *testing.T) {
	router, reg := newTestRouter(t, participant)
	ctx := context.Background()

	first := createExperiment(t, router)
	second := createExperiment(t, router)

	// Push the second record's timestamp ahead so ordering is deterministic
	rec, err := reg.ReadRecord(ctx, interfaces.ExperimentID(second))
	require.NoError(t, err)
	rec.Timestamp += 1000
	require.NoError(t, reg.WriteRecord(ctx, rec))

	rr := doJSON(t, router, http.MethodGet, "/api/experiments", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp api.ListExperimentsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Experiments, 2)
	assert.Equal(t, second, resp.Experiments[0].ID)
	assert.Equal(t, first, resp.Experiments[1].ID)
}

func TestHandleGetExperiment_NotFound(t *testing.T) {
	router, _ := newTestRouter(t, participant)

	rr := doJSON(t, router, http.MethodGet, "/api/experiments/100-aaaaaaa", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandleAnalyzeExperiment(t *testing.T) {
	router, _ := newTestRouter(t, participant)

	id := createExperiment(t, router)

	rr := doJSON(t, router, http.MethodPost, "/api/experiments/"+id+"/analyze", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var exp api.ExperimentResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &exp))
	assert.Equal(t, "analyzed", exp.Status)
}

func TestHandleAnalyzeExperiment_NonParticipantIsForbidden(t *testing.T) {
	store := storage.NewMemoryStore()
	reg := registry.New(store, testLogger())

	owner := orchestrator.New(reg, staticAccount{account: participant}, nil, testLogger())
	id, err := owner.CreateExperiment(context.Background(), orchestrator.CreateParams{
		ExperimentName: "Sleep Study",
		QuestionSet:    "q1",
	})
	require.NoError(t, err)

	stranger := orchestrator.New(reg, staticAccount{account: "0xDeF0000000000000000000000000000000000002"}, nil, testLogger())
	srv, err := New(&HTTPServerConfig{ListenAddr: "127.0.0.1:0", Log: testLogger()},
		NewHandler(stranger, reg, testLogger()))
	require.NoError(t, err)

	rr := doJSON(t, srv.getRouter(), http.MethodPost, "/api/experiments/"+id.String()+"/analyze", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestHandleArchiveExperiment_TerminalConflict(t *testing.T) {
	router, _ := newTestRouter(t, participant)

	id := createExperiment(t, router)

	rr := doJSON(t, router, http.MethodPost, "/api/experiments/"+id+"/archive", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodPost, "/api/experiments/"+id+"/archive", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestHandleTxStatus(t *testing.T) {
	router, _ := newTestRouter(t, participant)

	rr := doJSON(t, router, http.MethodGet, "/api/tx-status", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var status api.TxStatusResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.Equal(t, "idle", status.State)

	createExperiment(t, router)

	rr = doJSON(t, router, http.MethodGet, "/api/tx-status", nil)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.Equal(t, "success", status.State)
}

func TestHandleStoreAvailability(t *testing.T) {
	router, _ := newTestRouter(t, participant)

	rr := doJSON(t, router, http.MethodGet, "/api/store/availability", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var avail api.AvailabilityResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &avail))
	assert.True(t, avail.Available)
	assert.Equal(t, "memory://", avail.Store)
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := newTestRouter(t, participant)

	rr := doJSON(t, router, http.MethodGet, "/livez", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/drain", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/undrain", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}
