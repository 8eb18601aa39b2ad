package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/zatekoja/clinicdirectory/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/clinicdirectory/pkg/errors"
)

const msgInvalidBody = "invalid request body"

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps an error to its status code. Unexpected errors are
// logged with the request context.
func respondWithAppError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperrors.As(err)
	status := appErr.StatusCode()
	if status >= http.StatusInternalServerError {
		observability.LoggerFromContext(r.Context()).Error().
			Err(err).
			Str("path", r.URL.Path).
			Msg("Request failed")
	}
	respondWithError(w, status, appErr.PublicMessage())
}

// decodeJSON reads the request body into dst. An empty body leaves dst unchanged.
func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return apperrors.NewValidationError(msgInvalidBody)
	}
	return nil
}

// MethodNotAllowed answers 405 with a JSON body listing the allowed methods
func MethodNotAllowed(allowed string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allowed)
		respondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
