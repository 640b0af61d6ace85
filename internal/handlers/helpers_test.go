package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/chepyr/task-tracker-api/internal/auth"
	"github.com/chepyr/task-tracker-api/internal/db"
	"github.com/chepyr/task-tracker-api/internal/db/migrations"
	"github.com/chepyr/task-tracker-api/internal/models"
	"github.com/chepyr/task-tracker-api/internal/service"
	"github.com/gorilla/mux"
	_ "github.com/mattn/go-sqlite3"
)

var testSecret = strings.Repeat("a", 32)

var _ Pinger = (*db.Store)(nil)

type testEnv struct {
	h       *Handler
	router  *mux.Router
	store   *db.Store
	tokens  *auth.TokenManager
	alice   *models.User
	bob     *models.User
	project int64
}

func setupHTTP(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	// in-memory sqlite DB
	dbx, err := db.Connect(ctx, "sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { dbx.Close() })
	if err := migrations.Apply(ctx, dbx, migrations.SQLite); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	ref, err := migrations.DefaultReferenceData()
	if err != nil {
		t.Fatalf("reference data: %v", err)
	}
	if _, err := migrations.Seed(ctx, dbx, ref, time.Now()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	store := db.NewStore(dbx)
	tokens := auth.NewTokenManager(testSecret, "task-tracker", "task-tracker-clients", time.Hour)
	env := &testEnv{store: store, tokens: tokens}
	env.h = &Handler{
		Services:       service.New(store),
		Auth:           auth.NewAuthenticator(store.Users, tokens),
		Tokens:         tokens,
		RateLimiter:    NewRateLimiter(5, time.Minute),
		DB:             store,
		RequestTimeout: 2 * time.Second,
		AllowedOrigins: []string{"https://app.example"},
	}
	env.router = env.h.Routes()
	env.alice = createUser(t, store, "alice", "alice-password")
	env.bob = createUser(t, store, "bob", "bob-password")

	project, err := env.h.Services.Projects.Create(ctx, service.ProjectInput{Name: "Website"}, env.alice.ID)
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	env.project = project.ID
	return env
}

func createUser(t *testing.T, store *db.Store, username, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{Username: username, PasswordHash: hash, Active: true, CreationDate: time.Now().UTC()}
	if err := store.Users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func (e *testEnv) bearer(t *testing.T, user *models.User) string {
	t.Helper()
	token, _, err := e.tokens.Issue(user.ID, user.Username)
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}
	return "Bearer " + token
}

// do sends body (marshalled unless it is already a string) as user, or
// anonymously when user is nil.
func (e *testEnv) do(t *testing.T, method, path string, body any, user *models.User) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		req.Header.Set("Authorization", e.bearer(t, user))
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v body=%s", err, rec.Body.String())
	}
	if data != nil {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode data: %v body=%s", err, rec.Body.String())
		}
	}
	return env
}

func (e *testEnv) taskBody(title string, assignee int64) map[string]any {
	return map[string]any{
		"title":          title,
		"description":    "desc",
		"stateId":        1,
		"priorityId":     2,
		"projectId":      e.project,
		"assigneeId":     assignee,
		"expirationDate": "2030-01-01",
		"estimatedHours": 2,
	}
}

func (e *testEnv) createTask(t *testing.T, title string, assignee int64, actor *models.User) models.Task {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/tasks", e.taskBody(title, assignee), actor)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create task: want 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	var task models.Task
	decodeEnvelope(t, rec, &task)
	return task
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
