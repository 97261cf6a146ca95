package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lively-votes/api/internal/core/domain"
	"github.com/sirupsen/logrus"
)

// envelope is the uniform response shape: {status, data?, message?}.
// Signup and login additionally carry the access token at the top
// level next to data.
type envelope struct {
	Status      string `json:"status"`
	AccessToken string `json:"accessToken,omitempty"`
	Data        any    `json:"data,omitempty"`
	Message     string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Status: "success", Data: data})
}

func writeToken(w http.ResponseWriter, status int, accessToken string, data any) {
	writeJSON(w, status, envelope{Status: "success", AccessToken: accessToken, Data: data})
}

// writeError translates a domain error into the envelope. Anything
// unrecognized is logged and collapsed to a generic 500.
func writeError(w http.ResponseWriter, err error) {
	var de *domain.Error
	if errors.As(err, &de) && de.Kind != domain.KindInternal {
		writeJSON(w, de.Status, envelope{Status: "error", Message: de.Message})
		return
	}

	logrus.WithError(err).Error("unexpected error")
	writeJSON(w, http.StatusInternalServerError, envelope{Status: "error", Message: "something went wrong"})
}
