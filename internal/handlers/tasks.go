package handlers

import (
	"fmt"
	"net/http"

	"github.com/chepyr/task-tracker-api/internal/models"
	"github.com/chepyr/task-tracker-api/internal/service"
)

/*
handles routes:
GET /api/tasks - list tasks, optionally filtered
POST /api/tasks - create task
PUT /api/tasks - update task
*/
func (h *Handler) HandleTasks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listTasks(w, r)
	case http.MethodPost:
		h.createTask(w, r)
	case http.MethodPut:
		h.updateTask(w, r)
	default:
		methodNotAllowed(w)
	}
}

/*
handles routes:
GET /api/tasks/{id} - get task
DELETE /api/tasks/{id} - soft-delete task
*/
func (h *Handler) HandleTaskByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.getTask(w, r, id)
	case http.MethodDelete:
		h.deleteTask(w, r, id)
	default:
		methodNotAllowed(w)
	}
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	filter := models.TaskFilter{Search: r.URL.Query().Get("search")}
	for name, dst := range map[string]*int64{
		"stateId":    &filter.StateID,
		"priorityId": &filter.PriorityID,
		"projectId":  &filter.ProjectID,
		"assigneeId": &filter.AssigneeID,
	} {
		id, ok := queryID(w, r, name)
		if !ok {
			return
		}
		*dst = id
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	tasks, err := h.Services.Tasks.List(ctx, filter)
	if err != nil {
		handleError(w, r, err, "")
		return
	}
	sendOK(w, http.StatusOK, "Tasks retrieved", tasks)
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request, id int64) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	task, err := h.Services.Tasks.Get(ctx, id)
	if err != nil {
		handleError(w, r, err, "Task not found")
		return
	}
	sendOK(w, http.StatusOK, "Task retrieved", task)
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := caller(w, r)
	if !ok {
		return
	}
	var input service.TaskInput
	if !decodeJSON(w, r, &input) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	task, err := h.Services.Tasks.Create(ctx, input, actor.UserID)
	if err != nil {
		handleError(w, r, err, "Task not found")
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/tasks/%d", task.ID))
	sendOK(w, http.StatusCreated, "Task created", task)
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := caller(w, r)
	if !ok {
		return
	}
	var input service.TaskInput
	if !decodeJSON(w, r, &input) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	task, err := h.Services.Tasks.Update(ctx, input, actor.UserID)
	if err != nil {
		handleError(w, r, err, "Task not found")
		return
	}
	sendOK(w, http.StatusOK, "Task updated", task)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request, id int64) {
	actor, ok := caller(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	if err := h.Services.Tasks.Delete(ctx, id, actor.UserID); err != nil {
		handleError(w, r, err, "Task not found")
		return
	}
	sendOK(w, http.StatusOK, "Task deleted", true)
}

func (h *Handler) TaskStatistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	ctx, cancel := h.requestContext(r)
	defer cancel()

	stats, err := h.Services.Reports.Statistics(ctx)
	if err != nil {
		handleError(w, r, err, "")
		return
	}
	sendOK(w, http.StatusOK, "Statistics retrieved", stats)
}
