package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"sqlrunner/cmd/server/middleware"
)

// Routes mounts the API onto a chi router. Authenticated routes sit behind
// the bearer-token middleware; signup, login, and health stay open.
func (h *Handler) Routes(verifier middleware.TokenVerifier) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Index)
	r.Get("/health", h.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(verifier, h.logger))
			r.Get("/me", h.Me)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(verifier, h.logger))

		r.Post("/query/execute", h.ExecuteQuery)
		r.Get("/query/history", h.GetHistory)
		r.Delete("/query/history", h.ClearHistory)

		r.Get("/tables", h.ListTables)
		r.Get("/tables/{table}", h.GetTableInfo)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{
			Code:    "NOT_FOUND",
			Message: "resource not found",
		})
	})

	return r
}
