package models

import "time"

const (
	ActionCreated   = "CREATED"
	ActionUpdated   = "UPDATED"
	ActionDeleted   = "DELETED"
	ActionCommented = "COMMENTED"
)

type History struct {
	ID           int64     `db:"id" json:"id"`
	TaskID       int64     `db:"task_id" json:"taskId"`
	Action       string    `db:"action" json:"action"`
	Description  string    `db:"description" json:"description"`
	ActorID      *int64    `db:"actor_id" json:"actorId"`
	CreationDate time.Time `db:"creation_date" json:"creationDate"`
	Active       bool      `db:"active" json:"active"`
}
