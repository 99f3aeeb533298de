package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fhelabs/experiment-registry/api"
	"github.com/fhelabs/experiment-registry/codec"
	"github.com/fhelabs/experiment-registry/interfaces"
	"github.com/fhelabs/experiment-registry/lifecycle"
	"github.com/fhelabs/experiment-registry/orchestrator"
	"github.com/fhelabs/experiment-registry/registry"
)

// Handler implements the experiment API routes. Mutating routes go through
// the orchestrator so they produce notifier feedback; reads go straight to
// the registry.
type Handler struct {
	orch *orchestrator.Orchestrator
	reg  *registry.Registry
	log  *slog.Logger
}

// NewHandler creates a request handler over the given orchestrator and
// registry.
func NewHandler(orch *orchestrator.Orchestrator, reg *registry.Registry, log *slog.Logger) *Handler {
	return &Handler{orch: orch, reg: reg, log: log}
}

// HandleListExperiments serves GET /api/experiments: every decodable record,
// newest first.
func (h *Handler) HandleListExperiments(w http.ResponseWriter, r *http.Request) {
	records, err := h.reg.Refresh(r.Context())
	if err != nil {
		h.writeError(w, http.StatusBadGateway, err)
		return
	}

	resp := api.ListExperimentsResponse{
		Experiments: make([]api.ExperimentResponse, 0, len(records)),
	}
	for _, rec := range records {
		resp.Experiments = append(resp.Experiments, toExperimentResponse(rec))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// HandleCreateExperiment serves POST /api/experiments.
func (h *Handler) HandleCreateExperiment(w http.ResponseWriter, r *http.Request) {
	var req api.CreateExperimentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	id, err := h.orch.CreateExperiment(r.Context(), orchestrator.CreateParams{
		ExperimentName:  req.ExperimentName,
		QuestionSet:     req.QuestionSet,
		ParticipantInfo: req.ParticipantInfo,
	})
	if err != nil {
		h.writeError(w, statusForError(err), err)
		return
	}

	h.writeJSON(w, http.StatusCreated, api.CreateExperimentResponse{ID: id.String()})
}

// HandleGetExperiment serves GET /api/experiments/{id}.
func (h *Handler) HandleGetExperiment(w http.ResponseWriter, r *http.Request) {
	id := interfaces.ExperimentID(chi.URLParam(r, "id"))
	if err := id.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	rec, err := h.reg.ReadRecord(r.Context(), id)
	if err != nil {
		h.writeError(w, statusForError(err), err)
		return
	}
	h.writeJSON(w, http.StatusOK, toExperimentResponse(rec))
}

// HandleAnalyzeExperiment serves POST /api/experiments/{id}/analyze.
func (h *Handler) HandleAnalyzeExperiment(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, interfaces.StatusAnalyzed)
}

// HandleArchiveExperiment serves POST /api/experiments/{id}/archive.
func (h *Handler) HandleArchiveExperiment(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, interfaces.StatusArchived)
}

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request, target interfaces.Status) {
	id := interfaces.ExperimentID(chi.URLParam(r, "id"))
	if err := id.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.orch.TransitionExperiment(r.Context(), id, target); err != nil {
		h.writeError(w, statusForError(err), err)
		return
	}

	rec, err := h.reg.ReadRecord(r.Context(), id)
	if err != nil {
		h.writeError(w, statusForError(err), err)
		return
	}
	h.writeJSON(w, http.StatusOK, toExperimentResponse(rec))
}

// HandleTxStatus serves GET /api/tx-status with the notifier snapshot.
func (h *Handler) HandleTxStatus(w http.ResponseWriter, r *http.Request) {
	notice := h.orch.Notifier().Current()
	h.writeJSON(w, http.StatusOK, api.TxStatusResponse{
		State:   notice.State.String(),
		Message: notice.Message,
	})
}

// HandleStoreAvailability serves GET /api/store/availability.
func (h *Handler) HandleStoreAvailability(w http.ResponseWriter, r *http.Request) {
	available := h.orch.CheckAvailability(r.Context())
	h.writeJSON(w, http.StatusOK, api.AvailabilityResponse{
		Available: available,
		Store:     h.reg.StoreURI(),
	})
}

func toExperimentResponse(rec interfaces.ExperimentRecord) api.ExperimentResponse {
	return api.ExperimentResponse{
		ID:                 rec.ID.String(),
		ExperimentName:     rec.ExperimentName,
		Participant:        rec.Participant,
		Timestamp:          rec.Timestamp,
		EncryptedResponses: rec.EncryptedResponses,
		Status:             rec.Status.String(),
	}
}

// statusForError maps domain errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, interfaces.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, lifecycle.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, orchestrator.ErrOperationInFlight):
		return http.StatusConflict
	case errors.Is(err, orchestrator.ErrNoAccount),
		errors.Is(err, orchestrator.ErrUserRejected),
		errors.Is(err, orchestrator.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, codec.ErrMalformedRecord):
		return http.StatusUnprocessableEntity
	case errors.Is(err, interfaces.ErrNoTransactOpts):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("Failed to encode response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, api.ErrorResponse{Error: err.Error()})
}
