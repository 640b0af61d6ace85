package handlers

import (
	"fmt"
	"net/http"

	"github.com/chepyr/task-tracker-api/internal/service"
)

/*
handles routes:
GET /api/projects - list projects
POST /api/projects - create project
PUT /api/projects - update project
*/
func (h *Handler) HandleProjects(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listProjects(w, r)
	case http.MethodPost:
		h.createProject(w, r)
	case http.MethodPut:
		h.updateProject(w, r)
	default:
		methodNotAllowed(w)
	}
}

/*
handles routes:
GET /api/projects/{id} - get project
DELETE /api/projects/{id} - soft-delete project and its tasks
*/
func (h *Handler) HandleProjectByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.getProject(w, r, id)
	case http.MethodDelete:
		h.deleteProject(w, r, id)
	default:
		methodNotAllowed(w)
	}
}

func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	projects, err := h.Services.Projects.List(ctx)
	if err != nil {
		handleError(w, r, err, "")
		return
	}
	sendOK(w, http.StatusOK, "Projects retrieved", projects)
}

func (h *Handler) getProject(w http.ResponseWriter, r *http.Request, id int64) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	project, err := h.Services.Projects.Get(ctx, id)
	if err != nil {
		handleError(w, r, err, "Project not found")
		return
	}
	sendOK(w, http.StatusOK, "Project retrieved", project)
}

func (h *Handler) createProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := caller(w, r)
	if !ok {
		return
	}
	var input service.ProjectInput
	if !decodeJSON(w, r, &input) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	project, err := h.Services.Projects.Create(ctx, input, actor.UserID)
	if err != nil {
		handleError(w, r, err, "Project not found")
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/projects/%d", project.ID))
	sendOK(w, http.StatusCreated, "Project created", project)
}

func (h *Handler) updateProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := caller(w, r)
	if !ok {
		return
	}
	var input service.ProjectInput
	if !decodeJSON(w, r, &input) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	project, err := h.Services.Projects.Update(ctx, input, actor.UserID)
	if err != nil {
		handleError(w, r, err, "Project not found")
		return
	}
	sendOK(w, http.StatusOK, "Project updated", project)
}

func (h *Handler) deleteProject(w http.ResponseWriter, r *http.Request, id int64) {
	actor, ok := caller(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	if err := h.Services.Projects.Delete(ctx, id, actor.UserID); err != nil {
		handleError(w, r, err, "Project not found")
		return
	}
	sendOK(w, http.StatusOK, "Project deleted", true)
}
