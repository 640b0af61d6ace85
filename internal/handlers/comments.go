package handlers

import (
	"net/http"

	"github.com/chepyr/task-tracker-api/internal/service"
)

/*
handles routes:
GET /api/comments - list all comments
POST /api/comments - add a comment to a task
*/
func (h *Handler) HandleComments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listComments(w, r)
	case http.MethodPost:
		h.createComment(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *Handler) listComments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	comments, err := h.Services.Comments.ListAll(ctx)
	if err != nil {
		handleError(w, r, err, "")
		return
	}
	sendOK(w, http.StatusOK, "Comments retrieved", comments)
}

// GET /api/comments/all
func (h *Handler) AllComments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	h.listComments(w, r)
}

// GET /api/comments/task/{taskId}
func (h *Handler) CommentsByTask(w http.ResponseWriter, r *http.Request) {
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

	comments, err := h.Services.Comments.ListByTask(ctx, taskID)
	if err != nil {
		handleError(w, r, err, "")
		return
	}
	sendOK(w, http.StatusOK, "Comments retrieved", comments)
}

func (h *Handler) createComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := caller(w, r)
	if !ok {
		return
	}
	var input service.CommentInput
	if !decodeJSON(w, r, &input) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	comment, err := h.Services.Comments.Create(ctx, input, actor.UserID)
	if err != nil {
		handleError(w, r, err, "")
		return
	}
	sendOK(w, http.StatusOK, "Comment added", comment)
}
