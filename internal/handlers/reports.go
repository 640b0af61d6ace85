package handlers

import (
	"context"
	"net/http"

	"github.com/chepyr/task-tracker-api/internal/models"
)

// listHandler serves a read-only list in the envelope.
func listHandler[T any](h *Handler, message string, list func(context.Context) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		ctx, cancel := h.requestContext(r)
		defer cancel()

		items, err := list(ctx)
		if err != nil {
			handleError(w, r, err, "")
			return
		}
		sendOK(w, http.StatusOK, message, items)
	}
}

func (h *Handler) ReportByState() http.HandlerFunc {
	return listHandler[models.ReportRow](h, "Report by state retrieved", h.Services.Reports.ByState)
}

func (h *Handler) ReportByProject() http.HandlerFunc {
	return listHandler[models.ReportRow](h, "Report by project retrieved", h.Services.Reports.ByProject)
}

func (h *Handler) ReportByUser() http.HandlerFunc {
	return listHandler[models.ReportRow](h, "Report by user retrieved", h.Services.Reports.ByAssignee)
}

func (h *Handler) ListUsers() http.HandlerFunc {
	return listHandler[models.UserSummary](h, "Users retrieved", h.Services.Users.ListActive)
}

func (h *Handler) ProjectOptions() http.HandlerFunc {
	return listHandler[models.Option](h, "Projects retrieved", h.Services.Reference.Projects)
}

func (h *Handler) StateOptions() http.HandlerFunc {
	return listHandler[models.Option](h, "States retrieved", h.Services.Reference.States)
}

func (h *Handler) PriorityOptions() http.HandlerFunc {
	return listHandler[models.Option](h, "Priorities retrieved", h.Services.Reference.Priorities)
}
