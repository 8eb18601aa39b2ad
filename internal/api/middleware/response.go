package middleware

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/zatekoja/clinicdirectory/pkg/errors"
)

func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func writeAppError(w http.ResponseWriter, err error) {
	appErr := apperrors.As(err)
	writeError(w, appErr.StatusCode(), appErr.PublicMessage())
}
