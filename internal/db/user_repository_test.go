package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/chepyr/task-tracker-api/internal/models"
)

func TestUserRepository_Create(t *testing.T) {
	dbx, store := setupTestDB(t)

	user := insertUser(t, store, "alice", true)
	if user.ID == 0 {
		t.Fatal("Expected generated id")
	}

	// verify user was created
	var count int
	err := dbx.QueryRow("SELECT COUNT(*) FROM users WHERE username = ?", user.Username).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query user: %v", err)
	}
	if count != 1 {
		t.Fatalf("Expected 1 user, got %d", count)
	}
}

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	_, store := setupTestDB(t)
	insertUser(t, store, "alice", true)

	dup := &models.User{Username: "alice", PasswordHash: "other", Active: true, CreationDate: testNow}
	err := store.Users.Create(context.Background(), dup)
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate for duplicate username, got %v", err)
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	_, store := setupTestDB(t)
	user := insertUser(t, store, "alice", true)

	fetched, err := store.Users.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByUsername failed: %v", err)
	}
	if fetched.ID != user.ID {
		t.Errorf("Expected ID %v, got %v", user.ID, fetched.ID)
	}
	if fetched.PasswordHash != user.PasswordHash {
		t.Errorf("Expected password hash %v, got %v", user.PasswordHash, fetched.PasswordHash)
	}
	if !fetched.Active {
		t.Error("Expected active user")
	}
}

func TestUserRepository_GetByUsername_NotFound(t *testing.T) {
	_, store := setupTestDB(t)

	_, err := store.Users.GetByUsername(context.Background(), "nobody")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Expected sql.ErrNoRows, got %v", err)
	}
}

func TestUserRepository_ListActive_SkipsInactive(t *testing.T) {
	_, store := setupTestDB(t)
	insertUser(t, store, "bob", true)
	insertUser(t, store, "alice", true)
	insertUser(t, store, "ghost", false)

	users, err := store.Users.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("Expected 2 users, got %d", len(users))
	}
	if users[0].Username != "alice" || users[1].Username != "bob" {
		t.Errorf("Unexpected order: %+v", users)
	}
}

func TestUserRepository_DisplayName(t *testing.T) {
	_, store := setupTestDB(t)
	user := insertUser(t, store, "alice", true)

	name, err := store.Users.DisplayName(context.Background(), user.ID)
	if err != nil || name != "alice" {
		t.Errorf("Expected alice, got %q (%v)", name, err)
	}
	name, err = store.Users.DisplayName(context.Background(), 999)
	if err != nil || name != UnknownUser {
		t.Errorf("Expected placeholder, got %q (%v)", name, err)
	}
}
