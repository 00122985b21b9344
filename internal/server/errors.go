// Package server provides the HTTP surface for the audit agent: the
// single-page form, the audit endpoints, and the export action.
package server

import (
	"errors"
	"net/http"

	"github.com/Snakegate/ux-wcag-agent/internal/evaluate"
	"github.com/Snakegate/ux-wcag-agent/internal/export"
	"github.com/Snakegate/ux-wcag-agent/internal/fetch"
)

// Stable error kind strings surfaced to the UI. The first three mirror the
// typed pipeline errors; invalid_request covers malformed or failing-
// validation input, leaving internal_error for genuine server faults.
const (
	KindFetchError      = "fetch_error"
	KindEvaluationError = "evaluation_error"
	KindExportError     = "export_error"
	KindInvalidRequest  = "invalid_request"
	KindInternalError   = "internal_error"
)

// ErrorKind maps a pipeline or export error to its stable kind string.
func ErrorKind(err error) string {
	var fetchErr *fetch.Error
	if errors.As(err, &fetchErr) {
		return KindFetchError
	}
	var evalErr *evaluate.Error
	if errors.As(err, &evalErr) {
		return KindEvaluationError
	}
	var exportErr *export.Error
	if errors.As(err, &exportErr) {
		return KindExportError
	}
	return KindInternalError
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Domain errors all originate in an upstream dependency (the page, the
// model API, the notes service), so they map to 502.
func HTTPStatus(err error) int {
	switch ErrorKind(err) {
	case KindFetchError, KindEvaluationError, KindExportError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
