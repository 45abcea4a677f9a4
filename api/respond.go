package api

import (
	"encoding/json"
	"net/http"

	"log/slog"

	"github.com/jobdeck/jobdeck/pkg/apperr"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

// writeError translates any error into the taxonomy's status code and
// client-facing message. Internal errors are logged in full but surface
// only a generic body.
func writeError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.Internal {
		logger.Error("internal error", slog.Any("err", err))
	}
	writeJSON(w, errorResponse{Error: apperr.Message(err)}, apperr.HTTPStatus(kind))
}
