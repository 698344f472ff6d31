package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"sqlrunner/pkg/models"
)

// ListTables handles GET /tables.
func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.metadata.ListTables(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.TableListResponse{Tables: tables})
}

// GetTableInfo handles GET /tables/{table}.
func (h *Handler) GetTableInfo(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "table")

	schema, err := h.metadata.DescribeTable(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, schema)
}
