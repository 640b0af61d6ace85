package handlers

import (
	"net/http"

	"github.com/chepyr/task-tracker-api/internal/service"
)

/*
handles routes:
GET /api/history - list all history entries
POST /api/history - record a history entry
*/
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listHistory(w, r)
	case http.MethodPost:
		h.createHistory(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *Handler) listHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	entries, err := h.Services.History.ListAll(ctx)
	if err != nil {
		handleError(w, r, err, "")
		return
	}
	sendOK(w, http.StatusOK, "History retrieved", entries)
}

// GET /api/history/all
func (h *Handler) AllHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	h.listHistory(w, r)
}

// GET /api/history/task/{taskId}
func (h *Handler) HistoryByTask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	taskID, ok := pathID(w, r, "taskId")
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(r)
	defer cancel()

	entries, err := h.Services.History.ListByTask(ctx, taskID)
	if err != nil {
		handleError(w, r, err, "")
		return
	}
	sendOK(w, http.StatusOK, "History retrieved", entries)
}

func (h *Handler) createHistory(w http.ResponseWriter, r *http.Request) {
	actor, ok := caller(w, r)
	if !ok {
		return
	}
	var input service.HistoryInput
	if !decodeJSON(w, r, &input) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	entry, err := h.Services.History.Create(ctx, input, actor.UserID)
	if err != nil {
		handleError(w, r, err, "")
		return
	}
	sendOK(w, http.StatusOK, "History entry recorded", entry)
}

// DELETE /api/history/{id}
func (h *Handler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(r)
	defer cancel()

	deleted, err := h.Services.History.Delete(ctx, id)
	if err != nil {
		handleError(w, r, err, "")
		return
	}
	if !deleted {
		sendError(w, "History entry not found", http.StatusNotFound)
		return
	}
	sendOK(w, http.StatusOK, "History entry deleted", true)
}
