package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/varsity/internal/domain/model"
	"github.com/okian/varsity/internal/domain/valuation"
)

// ValuationsHandler serves valuation submission, batch, WAR preview and
// lookup.
type ValuationsHandler struct {
	deps ValuationDependencies
}

// NewValuationsHandler creates a new valuations handler.
func NewValuationsHandler(deps ValuationDependencies) *ValuationsHandler {
	return &ValuationsHandler{deps: deps}
}

// submitRequest is a valuation request plus an optional idempotency key.
type submitRequest struct {
	RequestID string `json:"request_id,omitempty"`
	valuation.Request
}

type submitResponse struct {
	Status    string `json:"status"`
	JobID     string `json:"job_id,omitempty"`
	RequestID string `json:"request_id"`
	Duplicate bool   `json:"duplicate"`
}

type batchRequest struct {
	Requests []valuation.Request `json:"requests"`
}

type batchItem struct {
	Index     int              `json:"index"`
	AthleteID string           `json:"athlete_id"`
	Valuation *model.Valuation `json:"valuation,omitempty"`
	Error     *errorResponse   `json:"error,omitempty"`
}

type batchResponse struct {
	Results   []batchItem `json:"results"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
}

// HandleSubmit handles POST /valuations.
func (h *ValuationsHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_valuation"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	res, err := h.deps.Submit(r.Context(), req.RequestID, req.Request)
	if err != nil {
		writeClassified(w, Wrap(op, err))
		return
	}
	if res.Duplicate {
		writeJSON(w, http.StatusOK, submitResponse{Status: "duplicate", RequestID: res.RequestID, Duplicate: true})
		return
	}
	writeJSON(w, http.StatusAccepted, submitResponse{Status: "accepted", JobID: res.JobID, RequestID: res.RequestID})
}

// HandleBatch handles POST /valuations/batch. Per-athlete failures are
// reported inline with status 200.
func (h *ValuationsHandler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.value_batch"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	results, err := h.deps.ValueBatch(r.Context(), req.Requests)
	if err != nil {
		writeClassified(w, Wrap(op, err))
		return
	}

	resp := batchResponse{Results: make([]batchItem, len(results))}
	for i, res := range results {
		item := batchItem{Index: res.Index, AthleteID: res.AthleteID, Valuation: res.Valuation}
		if res.Err != nil {
			_, code := classify(res.Err)
			item.Error = &errorResponse{Code: code, Message: res.Err.Error()}
			resp.Failed++
		} else {
			resp.Succeeded++
		}
		resp.Results[i] = item
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleWAR handles POST /war.
func (h *ValuationsHandler) HandleWAR(w http.ResponseWriter, r *http.Request) {
	const op = "api.preview_war"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req valuation.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	res, err := h.deps.WAR(r.Context(), req)
	if err != nil {
		writeClassified(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleGet handles GET /valuations/{athlete_id}?season=YYYY.
func (h *ValuationsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_valuation"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	athleteID := strings.TrimPrefix(r.URL.Path, "/valuations/")
	if athleteID == "" || strings.Contains(athleteID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	season := 0
	if s := r.URL.Query().Get("season"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		season = n
	}

	v, err := h.deps.Valuation(r.Context(), athleteID, season)
	if err != nil {
		writeClassified(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, v)
}
