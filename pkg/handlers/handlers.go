// Package handlers exposes the service surface over HTTP.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	srvErrors "sqlrunner/pkg/errors"
	"sqlrunner/pkg/services"
)

// Handler bundles the services behind the HTTP API.
type Handler struct {
	query    services.QueryService
	history  services.HistoryService
	metadata services.MetadataService
	auth     services.AuthService
	logger   zerolog.Logger
	version  string
}

// New creates the HTTP handler set.
func New(
	query services.QueryService,
	history services.HistoryService,
	metadata services.MetadataService,
	auth services.AuthService,
	logger zerolog.Logger,
	version string,
) *Handler {
	return &Handler{
		query:    query,
		history:  history,
		metadata: metadata,
		auth:     auth,
		logger:   logger,
		version:  version,
	}
}

// writeJSON serializes a response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// errorBody is the uniform error response shape.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps a service error to an HTTP status and writes the body.
func writeError(w http.ResponseWriter, err error) {
	code := srvErrors.GetCode(err)

	status := http.StatusInternalServerError
	switch code {
	case srvErrors.CodeInvalidRequest, srvErrors.CodeAlreadyExists:
		status = http.StatusBadRequest
	case srvErrors.CodeNotFound:
		status = http.StatusNotFound
	case srvErrors.CodeUnauthorized:
		status = http.StatusUnauthorized
	case srvErrors.CodePermissionDenied:
		status = http.StatusForbidden
	case srvErrors.CodeUnavailable:
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, errorBody{Code: code, Message: srvErrors.GetMessage(err)})
}

// decodeBody parses a JSON request body.
func decodeBody(r *http.Request, into interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		return srvErrors.New(srvErrors.CodeInvalidRequest, "invalid request body")
	}
	return nil
}
