package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/The-Gleb/advertisement_form/internal/errors"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func statusFor(err error) int {
	switch errors.Code(err) {
	case errors.ErrEndBeforeStart:
		return http.StatusUnprocessableEntity
	case errors.ErrMissingIdentity:
		return http.StatusPreconditionFailed
	case errors.ErrSubmissionInFlight, errors.ErrDialogClosed, errors.ErrResponseDiscarded, errors.ErrAlreadyExists:
		return http.StatusConflict
	case errors.ErrNoDataFound:
		return http.StatusNotFound
	case errors.ErrRemote:
		return http.StatusBadGateway
	case errors.ErrUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrForbidden:
		return http.StatusForbidden
	case errors.ErrInvalidMode, errors.ErrInvalidType, errors.ErrInvalidDate, errors.ErrInvalidMedia:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("error marshalling response", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// errorMessage prefers the text the error was built with and falls back to its code.
func errorMessage(err error) string {
	if msg := errors.Message(err); msg != "" {
		return msg
	}
	return string(errors.Code(err))
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{
		Error: errorMessage(err),
		Code:  string(errors.Code(err)),
	})
}
