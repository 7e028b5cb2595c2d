package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(
	sessionHandler *SessionHandler,
	mergeHandler *MergeHandler,
	splitHandler *SplitHandler,
	previewHandler *PreviewHandler,
	allowedOrigins []string,
	middlewares ...mux.MiddlewareFunc,
) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(notFound)
	for _, m := range middlewares {
		router.Use(m)
	}

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"pdf-fusion"}`))
	}).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()

	// Sessions
	api.HandleFunc("/sessions", sessionHandler.CreateSession).Methods("POST")
	api.HandleFunc("/sessions/{id}", sessionHandler.GetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", sessionHandler.DeleteSession).Methods("DELETE")

	// Selection
	api.HandleFunc("/sessions/{id}/files", sessionHandler.AddFiles).Methods("POST")
	api.HandleFunc("/sessions/{id}/folders", sessionHandler.AddFolder).Methods("POST")
	api.HandleFunc("/sessions/{id}/files/{index:[0-9]+}/move-up", sessionHandler.MoveUp).Methods("POST")
	api.HandleFunc("/sessions/{id}/files/{index:[0-9]+}/move-down", sessionHandler.MoveDown).Methods("POST")
	api.HandleFunc("/sessions/{id}/files/{index:[0-9]+}/range", sessionHandler.SetRange).Methods("PUT")
	api.HandleFunc("/sessions/{id}/files/{index:[0-9]+}/range", sessionHandler.ClearRange).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/output", sessionHandler.SetOutput).Methods("PUT")

	// Preview
	api.HandleFunc("/sessions/{id}/files/{index:[0-9]+}/preview", previewHandler.RenderPage).Methods("GET")
	api.HandleFunc("/sessions/{id}/files/{index:[0-9]+}/info", previewHandler.GetInfo).Methods("GET")

	// Merge and split
	api.HandleFunc("/sessions/{id}/merge", mergeHandler.Merge).Methods("POST")
	api.HandleFunc("/split", splitHandler.Split).Methods("POST")

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
