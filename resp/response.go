// Package resp writes the JSON response envelope used by table
// endpoints.
package resp

import (
	"encoding/json"
	"net/http"

	"github.com/tablekit/tablekit/ecode"
)

// Exception represents the response structure.
type Exception struct {
	Status  int    `json:"status,omitempty"`  // HTTP status
	Code    int    `json:"code,omitempty"`    // Business code
	Message string `json:"message,omitempty"` // Message
	Errors  any    `json:"errors,omitempty"`  // Validation errors
	Data    any    `json:"data,omitempty"`    // Response data
}

// Success handles success responses.
func Success(w http.ResponseWriter, r *Exception) {
	statusCode, result := success(r)
	write(w, statusCode, result)
}

// success builds the success response.
func success(r *Exception) (int, any) {
	status := http.StatusOK

	if r != nil && r.Status != 0 {
		status = r.Status
	}

	if status < 200 || status >= 400 {
		return fail(r)
	}

	if r != nil && r.Data != nil {
		return status, r.Data
	}

	return status, map[string]any{"message": ecode.Success()}
}

// Fail handles failure responses.
func Fail(w http.ResponseWriter, r *Exception) {
	statusCode, result := fail(r)
	write(w, statusCode, result)
}

// fail builds the failure response. Fields left unset fall back to the
// generic bad request envelope.
func fail(r *Exception) (int, any) {
	e := BadRequest(ecode.Text(ecode.RequestErr))
	if r != nil {
		if r.Status != 0 {
			e.Status = r.Status
		}
		if r.Code != 0 {
			e.Code = r.Code
		}
		if r.Message != "" {
			e.Message = r.Message
		}
		e.Errors = r.Errors
	}
	return e.Status, &Exception{Code: e.Code, Message: e.Message, Errors: e.Errors}
}

// write writes the JSON response with the given status code.
func write(w http.ResponseWriter, code int, res any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		return
	}
}
