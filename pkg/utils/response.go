package utils

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Response is the message envelope every non-2xx handler reply uses.
type Response struct {
	Message string `json:"message"`
}

// RespondWithJSON writes the payload with the given status. A nil
// payload sends the status line and headers only; encode failures are
// logged because the status has already gone out.
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("can't encode response", zap.Int("status", statusCode), zap.Error(err))
	}
}

func RespondWithError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, Response{Message: message})
}
