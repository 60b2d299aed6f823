package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"wiki-quiz-service/internal/domain"
	"wiki-quiz-service/internal/generator"
)

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var remote *generator.RemoteError
	switch {
	case errors.Is(err, domain.ErrURLRequired), errors.Is(err, domain.ErrInvalidSourceURL):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrQuizNotFound), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrMalformedLegacyField):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.As(err, &remote):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	switch status {
	case http.StatusInternalServerError:
		writeJSON(w, status, errorResponse{Error: "request failed"})
	default:
		writeJSON(w, status, errorResponse{Error: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
