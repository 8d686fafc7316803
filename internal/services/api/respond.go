package api

import (
	"encoding/json"
	"net/http"

	perr "peloton/internal/platform/errors"
)

// Envelope is the standard response body for all endpoints
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// writeJSON writes v as application/json with the given status
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondOK writes a 200 envelope with data
func respondOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Envelope{
		StatusCode: http.StatusOK,
		Status:     http.StatusText(http.StatusOK),
		Data:       data,
	})
}

// respondError maps a project error into an envelope and writes it
func respondError(w http.ResponseWriter, err error) {
	status := perr.HTTPStatus(err)
	wr := perr.WireFrom(err)
	writeJSON(w, status, Envelope{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       wr.Code,
		Error:      wr.Message,
	})
}
