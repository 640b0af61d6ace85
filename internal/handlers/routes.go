package handlers

import (
	"net/http"

	"github.com/chepyr/task-tracker-api/internal/metrics"
	"github.com/gorilla/mux"
)

// Routes builds the router. Everything under /api except login requires a
// bearer token.
func (h *Handler) Routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware, MetricsMiddleware, CORSMiddleware(h.AllowedOrigins))
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		methodNotAllowed(w)
	})
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		sendError(w, "Not found", http.StatusNotFound)
	})

	r.HandleFunc("/health", h.Health)
	r.Handle("/metrics", metrics.Handler())

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/login", h.Login)

	protect := func(path string, fn http.HandlerFunc) {
		api.HandleFunc(path, h.AuthMiddleware(fn))
	}

	protect("/users", h.ListUsers())

	protect("/tasks", h.HandleTasks)
	protect("/tasks/statistics", h.TaskStatistics)
	protect("/tasks/report/by-state", h.ReportByState())
	protect("/tasks/report/by-project", h.ReportByProject())
	protect("/tasks/report/by-user", h.ReportByUser())
	protect("/tasks/users", h.ListUsers())
	protect("/tasks/projects", h.ProjectOptions())
	protect("/tasks/states", h.StateOptions())
	protect("/tasks/priorities", h.PriorityOptions())
	protect("/tasks/{id:[0-9]+}", h.HandleTaskByID)

	protect("/projects", h.HandleProjects)
	protect("/projects/{id:[0-9]+}", h.HandleProjectByID)

	protect("/comments", h.HandleComments)
	protect("/comments/all", h.AllComments)
	protect("/comments/task/{taskId:[0-9]+}", h.CommentsByTask)

	protect("/history", h.HandleHistory)
	protect("/history/all", h.AllHistory)
	protect("/history/task/{taskId:[0-9]+}", h.HistoryByTask)
	protect("/history/{id:[0-9]+}", h.DeleteHistory)

	protect("/notifications", h.CreateNotification)
	protect("/notifications/user/{userId:[0-9]+}", h.NotificationsForUser)
	protect("/notifications/user/{userId:[0-9]+}/unread-count", h.UnreadCount)
	protect("/notifications/mark-read/{id:[0-9]+}", h.MarkNotificationRead)
	protect("/notifications/mark-all-read/{userId:[0-9]+}", h.MarkAllNotificationsRead)

	return r
}
