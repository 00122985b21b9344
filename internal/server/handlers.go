package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Snakegate/ux-wcag-agent/internal/annotate"
	"github.com/Snakegate/ux-wcag-agent/internal/pipeline"
	"github.com/Snakegate/ux-wcag-agent/internal/types"
)

// AuditResponse is the response for POST /audits. On a stage failure the
// report still carries everything completed before the failure, so the UI
// can display partial results next to the error.
type AuditResponse struct {
	Report    *types.AuditReport `json:"report"`
	ErrorKind string             `json:"error_kind,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// ExportRequest is the request body for POST /audits/{id}/export
type ExportRequest struct {
	Target string `json:"target" validate:"required,oneof=notion sheets"`
}

// ExportResponse is the response for POST /audits/{id}/export
type ExportResponse struct {
	AuditID    string    `json:"audit_id"`
	Target     string    `json:"target"`
	ExportedAt time.Time `json:"exported_at"`
}

// decodeAuditRequest decodes and validates the audit request body.
func (s *Server) decodeAuditRequest(w http.ResponseWriter, r *http.Request) (types.AuditRequest, bool) {
	var req types.AuditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, KindInvalidRequest, "Invalid request body: "+err.Error())
		return req, false
	}
	if err := s.validate.Struct(req); err != nil {
		msg := "url must be a valid http(s) URL"
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "required" {
			msg = "url is required"
		}
		s.errorResponse(w, http.StatusBadRequest, KindInvalidRequest, msg)
		return req, false
	}
	return req, true
}

// handleRunAudit runs the full pipeline synchronously and returns the
// report. Each submission is an independent run; a failure is surfaced in
// the response without discarding earlier stage results.
func (s *Server) handleRunAudit(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeAuditRequest(w, r)
	if !ok {
		return
	}

	log.Printf("[audit] starting audit for %s", req.URL)

	report, err := s.runner.Run(r.Context(), req, nil)
	if report != nil {
		s.storeReport(report)
	}

	resp := AuditResponse{Report: report}
	status := http.StatusOK
	if err != nil {
		log.Printf("[audit] audit for %s failed: %v", req.URL, err)
		resp.ErrorKind = ErrorKind(err)
		resp.Error = err.Error()
		status = HTTPStatus(err)
	}
	s.jsonResponse(w, status, resp)
}

// handleRunAuditStream runs the pipeline and streams stage progress via
// SSE, ending with the (possibly partial) report.
func (s *Server) handleRunAuditStream(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeAuditRequest(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, KindInternalError, err.Error())
		return
	}

	onProgress := func(event pipeline.ProgressEvent) {
		sse.WriteEvent("progress", event) //nolint:errcheck
	}

	report, runErr := s.runner.Run(r.Context(), req, onProgress)
	if report != nil {
		s.storeReport(report)
		sse.WriteEvent("report", AuditResponse{Report: report}) //nolint:errcheck
	}

	if runErr != nil {
		sse.WriteError(ErrorKind(runErr), runErr.Error())
		return
	}
	sse.WriteComplete(report.ID.String(), "completed")
}

// handleGetAudit returns a stored report by ID.
func (s *Server) handleGetAudit(w http.ResponseWriter, r *http.Request) {
	report, ok := s.reportFromPath(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, AuditResponse{Report: report})
}

// handleScreenshot returns the report's screenshot with accessibility
// findings highlighted in red.
func (s *Server) handleScreenshot(w http.ResponseWriter, r *http.Request) {
	report, ok := s.reportFromPath(w, r)
	if !ok {
		return
	}
	if report.Snapshot == nil || len(report.Snapshot.Screenshot) == 0 {
		s.errorResponse(w, http.StatusNotFound, KindInternalError, "No screenshot captured for this audit")
		return
	}

	annotated, err := annotate.Screenshot(report.Snapshot.Screenshot, report.Accessibility)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, KindInternalError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(annotated)
}

// handleExport writes a stored report to the requested external service.
// There is no dedup key: exporting the same report twice creates two
// independent sets of entries.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	report, ok := s.reportFromPath(w, r)
	if !ok {
		return
	}

	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, KindInvalidRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, KindInvalidRequest, "target must be one of: notion, sheets")
		return
	}

	exporter, exists := s.exporters[req.Target]
	if !exists {
		s.errorResponse(w, http.StatusBadRequest, KindExportError, "Export target not configured: "+req.Target)
		return
	}

	if err := exporter.Export(r.Context(), report); err != nil {
		log.Printf("[export] export of %s to %s failed: %v", report.ID, req.Target, err)
		s.errorResponse(w, HTTPStatus(err), ErrorKind(err), err.Error())
		return
	}

	exportedAt := time.Now().UTC()
	s.markExported(report.ID, exportedAt)
	log.Printf("[export] exported audit %s to %s", report.ID, req.Target)

	s.jsonResponse(w, http.StatusOK, ExportResponse{
		AuditID:    report.ID.String(),
		Target:     req.Target,
		ExportedAt: exportedAt,
	})
}

// reportFromPath parses the {id} path value and looks up the report.
func (s *Server) reportFromPath(w http.ResponseWriter, r *http.Request) (*types.AuditReport, bool) {
	idStr := r.PathValue("id")
	auditID, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, KindInvalidRequest, "Invalid audit ID format")
		return nil, false
	}

	report := s.getReport(auditID)
	if report == nil {
		s.errorResponse(w, http.StatusNotFound, KindInternalError, "Audit not found")
		return nil, false
	}
	return report, true
}
