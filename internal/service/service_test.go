package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/chepyr/task-tracker-api/internal/db"
	"github.com/chepyr/task-tracker-api/internal/db/migrations"
	"github.com/chepyr/task-tracker-api/internal/models"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type recordingRecorder struct {
	mu            sync.Mutex
	notifications []string
	history       []string
}

func (r *recordingRecorder) NotificationCreated(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, kind)
}

func (r *recordingRecorder) HistoryRecorded(action string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, action)
}

type fixture struct {
	store    *db.Store
	svc      *Services
	recorder *recordingRecorder
	alice    int64
	bob      int64
	carol    int64
	project  int64
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	dbx, err := db.Connect(ctx, "sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { dbx.Close() })
	require.NoError(t, migrations.Apply(ctx, dbx, migrations.SQLite))
	ref, err := migrations.DefaultReferenceData()
	require.NoError(t, err)
	_, err = migrations.Seed(ctx, dbx, ref, testNow)
	require.NoError(t, err)

	f := &fixture{store: db.NewStore(dbx), recorder: &recordingRecorder{}}
	f.svc = New(f.store, WithClock(func() time.Time { return testNow }), WithRecorder(f.recorder))
	f.alice = f.user(t, "alice")
	f.bob = f.user(t, "bob")
	f.carol = f.user(t, "carol")

	project, err := f.svc.Projects.Create(ctx, ProjectInput{Name: "Website"}, f.alice)
	require.NoError(t, err)
	f.project = project.ID
	return f
}

func (f *fixture) user(t *testing.T, name string) int64 {
	t.Helper()
	u := &models.User{Username: name, PasswordHash: "x", Active: true, CreationDate: testNow}
	require.NoError(t, f.store.Users.Create(context.Background(), u))
	return u.ID
}

func (f *fixture) taskInput(title string, assignee int64) TaskInput {
	return TaskInput{
		Title:          title,
		Description:    "desc",
		StateID:        1,
		PriorityID:     2,
		ProjectID:      f.project,
		AssigneeID:     assignee,
		ExpirationDate: models.NewDate(2025, time.April, 1),
		EstimatedHours: 3,
	}
}

func (f *fixture) createTask(t *testing.T, title string, assignee, actor int64) *models.Task {
	t.Helper()
	task, err := f.svc.Tasks.Create(context.Background(), f.taskInput(title, assignee), actor)
	require.NoError(t, err)
	return task
}
