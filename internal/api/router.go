package api

import (
	_ "embed"
	"log/slog"
	"net/http"
)

//go:embed index.html
var landingPage []byte

func Router(h *Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /register", h.Register)
	mux.HandleFunc("GET /users", h.ListUsers)
	mux.HandleFunc("POST /send-reminders", h.SendReminders)
	mux.HandleFunc("GET /education", h.Education)
	mux.HandleFunc("GET /health", h.Health)

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(landingPage)
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Endpoint not found")
	})

	return recoverMiddleware(mux)
}

// recoverMiddleware keeps a panicking handler from killing the connection
// without a response; clients get the same generic 500 as any other
// unexpected error.
func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("handler panic recovered", "path", r.URL.Path, "panic", rec)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
