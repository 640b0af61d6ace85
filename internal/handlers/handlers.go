// Package handlers is the HTTP surface of the API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/chepyr/task-tracker-api/internal/auth"
	"github.com/chepyr/task-tracker-api/internal/logging"
	"github.com/chepyr/task-tracker-api/internal/service"
	"github.com/gorilla/mux"
)

const defaultRequestTimeout = 5 * time.Second

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Services       *service.Services
	Auth           *auth.Authenticator
	Tokens         *auth.TokenManager
	RateLimiter    *RateLimiter
	DB             Pinger
	RequestTimeout time.Duration
	AllowedOrigins []string
}

// response is the envelope of every endpoint except login.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Logger.WithError(err).Warn("write response")
	}
}

func sendOK(w http.ResponseWriter, status int, message string, data any) {
	sendJSON(w, status, response{Success: true, Message: message, Data: data})
}

func sendError(w http.ResponseWriter, message string, status int) {
	sendJSON(w, status, response{Success: false, Message: message})
}

// handleError maps service errors to statuses. Anything unexpected is
// logged and answered with a generic 500.
func handleError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		sendError(w, verr.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrTaskInactive):
		sendError(w, "Task does not exist or is inactive", http.StatusBadRequest)
	case errors.Is(err, service.ErrNotFound):
		sendError(w, notFoundMsg, http.StatusNotFound)
	case errors.Is(err, service.ErrConflict):
		sendError(w, "The record was modified by someone else, reload and try again", http.StatusConflict)
	default:
		logging.FromContext(r.Context()).
			WithError(err).
			WithField("path", r.URL.Path).
			Error("request failed")
		sendError(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	timeout := h.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return context.WithTimeout(r.Context(), timeout)
}

func isJSONContentType(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	return err == nil && mediaType == "application/json"
}

// decodeJSON writes a 400 and returns false when the body is unusable.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !isJSONContentType(r) {
		sendError(w, "Content-Type must be application/json", http.StatusBadRequest)
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		sendError(w, "Invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

// pathID parses a numeric route variable.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		sendError(w, fmt.Sprintf("Invalid %s", name), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func queryID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		sendError(w, fmt.Sprintf("Invalid %s", name), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func methodNotAllowed(w http.ResponseWriter) {
	sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
}
