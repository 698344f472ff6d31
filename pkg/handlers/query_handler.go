package handlers

import (
	"net/http"

	"sqlrunner/cmd/server/middleware"
	srvErrors "sqlrunner/pkg/errors"
	"sqlrunner/pkg/models"
)

// ExecuteQuery handles POST /query/execute. The response always has status
// 200: failures are reported through the body's success flag, never as raw
// driver errors.
func (h *Handler) ExecuteQuery(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, srvErrors.ErrInvalidToken)
		return
	}

	var req models.QueryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp := h.query.ExecuteStatement(r.Context(), user, req.Query)
	writeJSON(w, http.StatusOK, resp)
}

// GetHistory handles GET /query/history.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, srvErrors.ErrInvalidToken)
		return
	}

	writeJSON(w, http.StatusOK, h.history.List(user))
}

// ClearHistory handles DELETE /query/history.
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, srvErrors.ErrInvalidToken)
		return
	}

	h.history.Clear(user)
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Query history cleared successfully",
	})
}
