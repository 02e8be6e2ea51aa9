// Package response writes JSON bodies and client-facing errors.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dtroode/taskmanager-server/internal/apierror"
	"github.com/dtroode/taskmanager-server/internal/logger"
)

// MaxBodyBytes caps request bodies accepted by Decode.
const MaxBodyBytes = 1 << 20

type errorBody struct {
	Error errorPayload `json:"error"`
}

type errorPayload struct {
	Code      string   `json:"code"`
	Message   string   `json:"message"`
	Details   []string `json:"details,omitempty"`
	RequestID string   `json:"request_id,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StatusOf maps an error kind to its HTTP status.
func StatusOf(kind apierror.Kind) int {
	switch kind {
	case apierror.KindValidation:
		return http.StatusBadRequest
	case apierror.KindUnauthenticated, apierror.KindUnauthorized:
		return http.StatusUnauthorized
	case apierror.KindNotFound:
		return http.StatusNotFound
	case apierror.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as {"error": {...}}. Errors that are not an *apierror.APIError
// are reported as a generic internal error; the cause only reaches the log.
func Error(w http.ResponseWriter, r *http.Request, err error, fallback *logger.Logger) {
	apiErr, ok := apierror.As(err)
	if !ok {
		apiErr = apierror.NewErrInternalServerError(err)
	}

	status := StatusOf(apiErr.Kind)
	log := logger.FromContext(r.Context(), fallback)
	if status >= http.StatusInternalServerError {
		log.Error("HTTP: request failed", "error", err.Error())
	} else {
		log.Debug("HTTP: request rejected", "code", apiErr.Code, "error", err.Error())
	}

	JSON(w, status, errorBody{Error: errorPayload{
		Code:      apiErr.Code,
		Message:   apiErr.Message,
		Details:   apiErr.Details,
		RequestID: middleware.GetReqID(r.Context()),
	}})
}

// Decode reads a single JSON object from the request body into dst.
// Unknown fields, trailing data and oversized bodies are rejected.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return apierror.NewErrInvalidArgument(fmt.Sprintf("Request body must not exceed %d bytes", MaxBodyBytes))
		case errors.Is(err, io.EOF):
			return apierror.NewErrInvalidArgument("Request body is required")
		default:
			e := apierror.NewErrInvalidArgument("Invalid JSON body")
			e.Err = err
			return e
		}
	}

	if dec.More() {
		return apierror.NewErrInvalidArgument("Request body must contain a single JSON object")
	}

	return nil
}
