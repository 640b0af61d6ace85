package models

import "time"

const (
	NotificationTaskAssigned   = "task_assigned"
	NotificationTaskReassigned = "task_reassigned"
	NotificationTaskUpdated    = "task_updated"
)

type Notification struct {
	ID               int64      `db:"id" json:"id"`
	UserID           int64      `db:"user_id" json:"userId"`
	TaskID           int64      `db:"task_id" json:"taskId"`
	Title            string     `db:"title" json:"title"`
	Message          string     `db:"message" json:"message"`
	Type             string     `db:"type" json:"type"`
	Read             bool       `db:"is_read" json:"read"`
	CreationDate     time.Time  `db:"creation_date" json:"creationDate"`
	ModificationDate *time.Time `db:"modification_date" json:"modificationDate"`
	Active           bool       `db:"active" json:"active"`

	UserName  string `db:"user_name" json:"userName"`
	TaskTitle string `db:"task_title" json:"taskTitle"`
}
