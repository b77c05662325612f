// Package handler exposes workflow import, simulation and export over
// HTTP.
package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/mvandrade/loanlens/internal/domain/workflow"
	"github.com/mvandrade/loanlens/internal/domain/workflow/export"
)

const (
	maxUploadBytes int64 = 1 << 20 // 1 MiB

	defaultStepDelay = 700 * time.Millisecond
	maxStepDelay     = 5 * time.Second
)

// WorkflowHandler handles workflow step requests.
type WorkflowHandler struct {
	logger *slog.Logger
}

// NewWorkflowHandler constructs a new handler.
func NewWorkflowHandler(logger *slog.Logger) *WorkflowHandler {
	return &WorkflowHandler{logger: logger}
}

// Import handles POST /v1/workflow/import: a CSV of "title,type" rows
// becomes an ordered step sequence.
func (h *WorkflowHandler) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}
	if len(bytes.TrimSpace(body)) == 0 {
		writeError(w, http.StatusBadRequest, "csv body is required")
		return
	}

	wf := workflow.New()
	added := wf.ImportCSV(string(body))
	if added == 0 {
		writeError(w, http.StatusUnprocessableEntity, "no valid steps found in the file")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"imported": added,
		"steps":    wf.Steps(),
	})
}

type runRequest struct {
	Nodes []workflow.Node `json:"nodes"`
}

type runResponse struct {
	Steps  []workflow.Step     `json:"steps"`
	Events []workflow.RunEvent `json:"events"`
}

// Run handles POST /v1/workflow/run: simulates an execution pass over
// the posted nodes and returns the ordered steps with the state
// transition timeline. step_delay_ms overrides the per-step delay.
func (h *WorkflowHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUploadBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	delay := defaultStepDelay
	if raw := r.URL.Query().Get("step_delay_ms"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms < 0 {
			writeError(w, http.StatusBadRequest, "invalid step_delay_ms")
			return
		}
		delay = time.Duration(ms) * time.Millisecond
		if delay > maxStepDelay {
			delay = maxStepDelay
		}
	}

	wf := workflow.New()
	for _, n := range req.Nodes {
		node := wf.AddNode(n.Type, n.Title, n.X, n.Y)
		node.Description = n.Description
		node.Owner = n.Owner
		node.EstimatedTime = n.EstimatedTime
	}

	var events []workflow.RunEvent
	steps, err := wf.Run(r.Context(), delay, func(ev workflow.RunEvent) {
		events = append(events, ev)
	})
	if err != nil {
		switch {
		case errors.Is(err, workflow.ErrNoSteps), errors.Is(err, workflow.ErrNoStartStep):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, r.Context().Err()):
			// Client went away mid-run; nothing useful to write.
		default:
			h.logger.Error("workflow run failed", "error", err)
			writeError(w, http.StatusInternalServerError, "workflow run failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, runResponse{Steps: steps, Events: events})
}

// Export handles POST /v1/workflow/export?format=json|text|csv|xlsx:
// the posted step records are serialized into the requested download
// format.
func (h *WorkflowHandler) Export(w http.ResponseWriter, r *http.Request) {
	var steps []workflow.Step
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUploadBytes)).Decode(&steps); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(steps) == 0 {
		writeError(w, http.StatusBadRequest, "steps are required")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	var (
		payload     []byte
		err         error
		contentType string
		filename    string
	)
	switch format {
	case "json":
		payload, err = export.JSON(steps)
		contentType, filename = "application/json", "workflow.json"
	case "text":
		payload = export.Text(steps)
		contentType, filename = "text/plain", "workflow.txt"
	case "csv":
		payload = export.CSV(steps)
		contentType, filename = "text/csv", "workflow.csv"
	case "xlsx":
		payload, err = export.XLSX(steps)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = "workflow.xlsx"
	default:
		writeError(w, http.StatusBadRequest, "unknown format: "+format)
		return
	}
	if err != nil {
		h.logger.Error("workflow export failed", "format", format, "error", err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
