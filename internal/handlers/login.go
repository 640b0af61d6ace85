package handlers

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/chepyr/task-tracker-api/internal/auth"
	"github.com/chepyr/task-tracker-api/internal/logging"
	"github.com/chepyr/task-tracker-api/internal/metrics"
)

// Login answers with the bare session object, not the envelope.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, "Use POST method for login", http.StatusMethodNotAllowed)
		return
	}
	log := logging.FromContext(r.Context())

	clientIP := clientIP(r)
	if h.RateLimiter != nil && !h.RateLimiter.Allow(clientIP) {
		log.WithField("ip", clientIP).Warn("login rate limit exceeded")
		metrics.RecordLogin(metrics.LoginRateLimited)
		sendError(w, "Too many login attempts. Please try again later.", http.StatusTooManyRequests)
		return
	}

	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &input) {
		return
	}
	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" || input.Password == "" {
		sendError(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	session, err := h.Auth.Login(ctx, input.Username, input.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		log.WithField("username", input.Username).Info("login rejected")
		metrics.RecordLogin(metrics.LoginFailure)
		sendError(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}
	if err != nil {
		metrics.RecordLogin(metrics.LoginFailure)
		handleError(w, r, err, "")
		return
	}

	metrics.RecordLogin(metrics.LoginSuccess)
	log.WithField("user_id", session.User.ID).Info("user logged in")
	sendJSON(w, http.StatusOK, session)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
