// Package response writes JSON bodies and maps domain errors to HTTP.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/lcalzada-xor/snapgram/internal/core/domain"
	"github.com/sirupsen/logrus"
)

// ValidationBody is the 400 response shape.
type ValidationBody struct {
	ErrorsMessages domain.FieldErrors `json:"errorsMessages"`
}

// ErrorBody is the shape of every other error response.
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// NoContent writes 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// StatusOf maps an error kind to an HTTP status.
func StatusOf(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// Error writes err. Internal errors are logged and their message hidden.
func Error(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, err error) {
	status := StatusOf(err)

	if status == http.StatusBadRequest {
		fields, ok := domain.AsFieldErrors(err)
		if !ok {
			fields = domain.FieldErrors{{Message: err.Error()}}
		}
		JSON(w, status, ValidationBody{ErrorsMessages: fields})
		return
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("request failed")
		msg = http.StatusText(status)
	}
	JSON(w, status, ErrorBody{StatusCode: status, Message: msg})
}
