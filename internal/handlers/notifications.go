package handlers

import (
	"fmt"
	"net/http"

	"github.com/chepyr/task-tracker-api/internal/service"
)

// ownUser checks that the userId route variable is the caller.
func ownUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	actor, ok := caller(w, r)
	if !ok {
		return 0, false
	}
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return 0, false
	}
	if userID != actor.UserID {
		sendError(w, "Notifications belong to another user", http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}

// GET /api/notifications/user/{userId}
func (h *Handler) NotificationsForUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	userID, ok := ownUser(w, r)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(r)
	defer cancel()

	notifications, err := h.Services.Notifications.ListForUser(ctx, userID)
	if err != nil {
		handleError(w, r, err, "")
		return
	}
	sendOK(w, http.StatusOK, "Notifications retrieved", notifications)
}

// GET /api/notifications/user/{userId}/unread-count
func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	userID, ok := ownUser(w, r)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(r)
	defer cancel()

	count, err := h.Services.Notifications.UnreadCount(ctx, userID)
	if err != nil {
		handleError(w, r, err, "")
		return
	}
	sendOK(w, http.StatusOK, "Unread count retrieved", count)
}

// POST /api/notifications
func (h *Handler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if _, ok := caller(w, r); !ok {
		return
	}
	var input service.NotificationInput
	if !decodeJSON(w, r, &input) {
		return
	}
	ctx, cancel := h.requestContext(r)
	defer cancel()

	n, err := h.Services.Notifications.Create(ctx, input)
	if err != nil {
		handleError(w, r, err, "")
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/notifications/user/%d", n.UserID))
	sendOK(w, http.StatusCreated, "Notification created", n)
}

// PUT /api/notifications/mark-read/{id}
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	actor, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(r)
	defer cancel()

	n, err := h.Services.Notifications.Get(ctx, id)
	if err != nil {
		handleError(w, r, err, "Notification not found")
		return
	}
	if n.UserID != actor.UserID {
		sendError(w, "Notification belongs to another user", http.StatusUnauthorized)
		return
	}
	marked, err := h.Services.Notifications.MarkRead(ctx, id)
	if err != nil {
		handleError(w, r, err, "")
		return
	}
	if !marked {
		sendError(w, "Notification not found", http.StatusNotFound)
		return
	}
	sendOK(w, http.StatusOK, "Notification marked as read", true)
}

// PUT /api/notifications/mark-all-read/{userId}
func (h *Handler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	userID, ok := ownUser(w, r)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(r)
	defer cancel()

	done, err := h.Services.Notifications.MarkAllRead(ctx, userID)
	if err != nil {
		handleError(w, r, err, "")
		return
	}
	sendOK(w, http.StatusOK, "Notifications marked as read", done)
}
