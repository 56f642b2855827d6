package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/justestif/wellness-journal/internal/journal"
)

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Message string               `json:"message"`
	Errors  []journal.FieldError `json:"errors,omitempty"`
}

// badRequest is a malformed request the services never saw.
type badRequest struct {
	msg string
}

func (e *badRequest) Error() string { return e.msg }

var errInvalidBody = &badRequest{msg: "Invalid request body"}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err onto a status code and response body. Unclassified
// errors are logged and reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, err error) {
	var (
		verr *journal.ValidationError
		jerr *journal.Error
		berr *badRequest
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Validation failed", Errors: verr.Fields})
	case errors.As(err, &berr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: berr.msg})
	case errors.As(err, &jerr):
		writeJSON(w, statusFor(jerr.Kind), errorResponse{Message: jerr.Message})
	case errors.Is(err, journal.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "Not found"})
	default:
		log.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
		}).WithError(err).Error("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Server error"})
	}
}

func statusFor(kind error) int {
	switch {
	case errors.Is(kind, journal.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(kind, journal.ErrConflict):
		return http.StatusConflict
	case errors.Is(kind, journal.ErrUnauthenticated):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a single JSON object from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return errInvalidBody
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errInvalidBody
	}
	return nil
}
