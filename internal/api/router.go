// internal/api/router.go
package api

import "net/http"

// RegisterRoutes attaches every handler to the mux using Go 1.22
// method-aware patterns.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Questions
	mux.HandleFunc("POST /questions", h.addQuestion)
	mux.HandleFunc("GET /questions", h.listQuestions)
	mux.HandleFunc("GET /questions/{questionID}", h.getQuestion)
	mux.HandleFunc("DELETE /questions/{questionID}", h.deleteQuestion)
	mux.HandleFunc("GET /topics", h.listTopics)

	// Sessions
	mux.HandleFunc("POST /sessions", h.createSession)
	mux.HandleFunc("GET /sessions/{sessionID}", h.getSession)
	mux.HandleFunc("POST /sessions/{sessionID}/complete", h.completeSession)

	// Streak
	mux.HandleFunc("GET /streak", h.getStreak)

	// PDF imports
	mux.HandleFunc("POST /imports", h.startImport)
	mux.HandleFunc("GET /imports/{jobID}", h.getImportJob)

	// Backup
	mux.HandleFunc("GET /export", h.exportAll)
	mux.HandleFunc("POST /restore", h.restore)
}
