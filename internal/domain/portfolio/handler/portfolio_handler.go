// Package handler exposes the portfolio analysis pipeline over HTTP.
package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mvandrade/loanlens/internal/domain/portfolio/service"
)

const maxUploadBytes int64 = 10 << 20 // 10 MiB

// PortfolioHandler handles CSV uploads for portfolio analysis.
type PortfolioHandler struct {
	svc    *service.AnalysisService
	logger *slog.Logger
}

// NewPortfolioHandler constructs a new handler.
func NewPortfolioHandler(svc *service.AnalysisService, logger *slog.Logger) *PortfolioHandler {
	return &PortfolioHandler{svc: svc, logger: logger}
}

// AnalyzeResponse is the payload the rendering client consumes: the
// raw analysis, the narrative summary lines, and the display table.
type AnalyzeResponse struct {
	Analysis *service.Analysis  `json:"analysis"`
	Summary  []string           `json:"summary"`
	Table    []service.TableRow `json:"table"`
}

// Analyze handles POST /v1/portfolio/analyze. The request body is one
// whole UTF-8 CSV blob; the optional reference_date query pins the
// instant overdue days are computed against.
func (h *PortfolioHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	analysis, ok := h.analyzeRequest(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		Analysis: analysis,
		Summary:  service.BuildSummary(analysis),
		Table:    service.TableRows(analysis),
	})
}

// ExportTable handles POST /v1/portfolio/export. Same input contract
// as Analyze; the response is the ranked-client table as an XLSX
// download.
func (h *PortfolioHandler) ExportTable(w http.ResponseWriter, r *http.Request) {
	analysis, ok := h.analyzeRequest(w, r)
	if !ok {
		return
	}

	payload, err := service.TableXLSX(analysis)
	if err != nil {
		h.logger.Error("table export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="portfolio.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

// analyzeRequest reads the CSV body and reference_date and runs the
// analysis, writing the error response itself when anything fails.
func (h *PortfolioHandler) analyzeRequest(w http.ResponseWriter, r *http.Request) (*service.Analysis, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return nil, false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		writeError(w, http.StatusBadRequest, "csv body is required")
		return nil, false
	}

	reference := time.Now().UTC()
	if raw := r.URL.Query().Get("reference_date"); raw != "" {
		parsed, err := parseReferenceDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid reference_date, want YYYY-MM-DD or RFC3339")
			return nil, false
		}
		reference = parsed
	}

	analysis, err := h.svc.Analyze(r.Context(), string(body), reference)
	if err != nil {
		if errors.Is(err, service.ErrNoValidRows) {
			writeError(w, http.StatusUnprocessableEntity, service.ErrNoValidRows.Error())
			return nil, false
		}
		h.logger.Error("analysis failed", "error", err)
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return nil, false
	}

	return analysis, true
}

func parseReferenceDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
