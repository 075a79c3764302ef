package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor - the only place application errors become HTTP statuses.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound, apperror.ErrNotFound.Error()
	case errors.Is(err, apperror.ErrSessionFull):
		return http.StatusBadRequest, apperror.ErrSessionFull.Error()
	case errors.Is(err, apperror.ErrInvalidInput):
		return http.StatusBadRequest, apperror.ErrInvalidInput.Error()
	case errors.Is(err, apperror.ErrInvalidState):
		return http.StatusConflict, apperror.ErrInvalidState.Error()
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	status, message := statusFor(err)

	if status == http.StatusInternalServerError {
		log.Error("request failed", "error", err)
	} else {
		log.Info("request rejected", "status", status, "error", err)
	}

	writeJSON(w, log, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("failed to write response", "error", err)
	}
}
