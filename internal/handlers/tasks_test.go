package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/chepyr/task-tracker-api/internal/models"
)

// checks that protected routes reject anonymous callers
func TestTasks_RequiresToken(t *testing.T) {
	env := setupHTTP(t)
	rec := env.do(t, http.MethodGet, "/api/tasks", nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", rec.Code)
	}
}

func TestTasks_HappyPath(t *testing.T) {
	env := setupHTTP(t)

	// create
	rec := env.do(t, http.MethodPost, "/api/tasks", env.taskBody("Write docs", env.bob.ID), env.alice)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: want 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	var created models.Task
	decodeEnvelope(t, rec, &created)
	if loc := rec.Header().Get("Location"); loc == "" || !strings.HasSuffix(loc, "/api/tasks/"+itoa(created.ID)) {
		t.Fatalf("unexpected Location %q", loc)
	}
	if created.AssigneeName != "bob" || created.StateName != "Pending" || created.Version != 1 {
		t.Fatalf("unexpected task %+v", created)
	}

	// get
	rec = env.do(t, http.MethodGet, "/api/tasks/"+itoa(created.ID), nil, env.bob)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: want 200, got %d", rec.Code)
	}

	// update
	body := env.taskBody("Write better docs", env.bob.ID)
	body["id"] = created.ID
	body["version"] = created.Version
	rec = env.do(t, http.MethodPut, "/api/tasks", body, env.alice)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: want 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var updated models.Task
	decodeEnvelope(t, rec, &updated)
	if updated.Title != "Write better docs" || updated.Version != 2 {
		t.Fatalf("unexpected updated task %+v", updated)
	}

	// list with search
	rec = env.do(t, http.MethodGet, "/api/tasks?search=BETTER", nil, env.alice)
	var tasks []models.Task
	decodeEnvelope(t, rec, &tasks)
	if len(tasks) != 1 {
		t.Fatalf("search: want 1 task, got %d", len(tasks))
	}

	// delete
	rec = env.do(t, http.MethodDelete, "/api/tasks/"+itoa(created.ID), nil, env.alice)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: want 200, got %d", rec.Code)
	}
	rec = env.do(t, http.MethodGet, "/api/tasks/"+itoa(created.ID), nil, env.alice)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: want 404, got %d", rec.Code)
	}
}

// checks that a stale version yields 409
func TestTasks_UpdateConflict(t *testing.T) {
	env := setupHTTP(t)
	task := env.createTask(t, "Ship", env.bob.ID, env.alice)

	body := env.taskBody("Ship it", env.bob.ID)
	body["id"] = task.ID
	body["version"] = task.Version + 5
	rec := env.do(t, http.MethodPut, "/api/tasks", body, env.alice)
	if rec.Code != http.StatusConflict {
		t.Fatalf("want 409, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestTasks_ValidationErrors(t *testing.T) {
	env := setupHTTP(t)
	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"missing title", func(b map[string]any) { b["title"] = "  " }},
		{"long title", func(b map[string]any) { b["title"] = strings.Repeat("x", 201) }},
		{"unknown state", func(b map[string]any) { b["stateId"] = 99 }},
		{"missing project", func(b map[string]any) { b["projectId"] = 0 }},
		{"negative hours", func(b map[string]any) { b["estimatedHours"] = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := env.taskBody("Valid", env.bob.ID)
			tt.mutate(body)
			rec := env.do(t, http.MethodPost, "/api/tasks", body, env.alice)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("want 400, got %d body=%s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestTasks_BadRequests(t *testing.T) {
	env := setupHTTP(t)
	if rec := env.do(t, http.MethodPost, "/api/tasks", `{"title":`, env.alice); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad json: want 400, got %d", rec.Code)
	}
	if rec := env.do(t, http.MethodGet, "/api/tasks?stateId=abc", nil, env.alice); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad filter: want 400, got %d", rec.Code)
	}
	if rec := env.do(t, http.MethodPatch, "/api/tasks", nil, env.alice); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("patch: want 405, got %d", rec.Code)
	}
	if rec := env.do(t, http.MethodDelete, "/api/tasks/999", nil, env.alice); rec.Code != http.StatusNotFound {
		t.Fatalf("delete missing: want 404, got %d", rec.Code)
	}
}

func TestTasks_LookupsAndReports(t *testing.T) {
	env := setupHTTP(t)
	env.createTask(t, "One", env.bob.ID, env.alice)
	env.createTask(t, "Two", env.bob.ID, env.alice)

	var stats models.TaskStatistics
	rec := env.do(t, http.MethodGet, "/api/tasks/statistics", nil, env.alice)
	decodeEnvelope(t, rec, &stats)
	if stats.Total != 2 || stats.Pending != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	var rows []models.ReportRow
	rec = env.do(t, http.MethodGet, "/api/tasks/report/by-user", nil, env.alice)
	decodeEnvelope(t, rec, &rows)
	if len(rows) != 1 || rows[0].Name != "bob" || rows[0].Count != 2 {
		t.Fatalf("unexpected by-user report %+v", rows)
	}

	var states []models.Option
	rec = env.do(t, http.MethodGet, "/api/tasks/states", nil, env.alice)
	decodeEnvelope(t, rec, &states)
	if len(states) != 3 {
		t.Fatalf("want 3 states, got %d", len(states))
	}

	for _, path := range []string{
		"/api/tasks/report/by-state",
		"/api/tasks/report/by-project",
		"/api/tasks/users",
		"/api/tasks/projects",
		"/api/tasks/priorities",
		"/api/users",
	} {
		if rec := env.do(t, http.MethodGet, path, nil, env.alice); rec.Code != http.StatusOK {
			t.Errorf("%s: want 200, got %d", path, rec.Code)
		}
	}
}
