package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvandrade/loanlens/internal/domain/workflow"
)

func newTestHandler() *WorkflowHandler {
	return NewWorkflowHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestImport_OK(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/v1/workflow/import",
		strings.NewReader("Title,Type\nKick off,start\nReview,task\n"))
	rec := httptest.NewRecorder()

	h.Import(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Imported int             `json:"imported"`
		Steps    []workflow.Step `json:"steps"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Imported)
	require.Len(t, resp.Steps, 2)
	assert.Equal(t, "start", resp.Steps[0].Type)
}

func TestImport_NoValidSteps(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/v1/workflow/import",
		strings.NewReader("Title,Type\nonly-one-field\n"))
	rec := httptest.NewRecorder()

	h.Import(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRun_OK(t *testing.T) {
	h := newTestHandler()

	body := `{"nodes":[
		{"type":"start","title":"Kick off","y":40},
		{"type":"task","title":"Review","y":120}
	]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/workflow/run?step_delay_ms=0", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Run(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp runResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Steps, 2)
	require.Len(t, resp.Events, 4)
	assert.Equal(t, workflow.StatusCompleted, resp.Events[3].Status)
}

func TestRun_MissingStartStep(t *testing.T) {
	h := newTestHandler()

	body := `{"nodes":[{"type":"task","title":"Orphan","y":40}]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/workflow/run?step_delay_ms=0", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Run(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestExport_CSV(t *testing.T) {
	h := newTestHandler()

	body := `[{"step":1,"title":"Kick off","type":"start"}]`
	req := httptest.NewRequest(http.MethodPost, "/v1/workflow/export?format=csv", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Export(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "workflow.csv")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Step,Title,Type,Owner,EstimatedTime,Description\n"))
}

func TestExport_UnknownFormat(t *testing.T) {
	h := newTestHandler()

	body := `[{"step":1,"title":"Kick off","type":"start"}]`
	req := httptest.NewRequest(http.MethodPost, "/v1/workflow/export?format=pdf", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Export(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExport_EmptySteps(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/v1/workflow/export?format=json", strings.NewReader("[]"))
	rec := httptest.NewRecorder()

	h.Export(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
