package models

import "time"

type Task struct {
	ID               int64      `db:"id" json:"id"`
	Title            string     `db:"title" json:"title"`
	Description      string     `db:"description" json:"description"`
	StateID          int64      `db:"state_id" json:"stateId"`
	PriorityID       int64      `db:"priority_id" json:"priorityId"`
	ProjectID        int64      `db:"project_id" json:"projectId"`
	AssigneeID       int64      `db:"assignee_id" json:"assigneeId"`
	ExpirationDate   Date       `db:"expiration_date" json:"expirationDate"`
	EstimatedHours   int        `db:"estimated_hours" json:"estimatedHours"`
	CreatorID        int64      `db:"creator_id" json:"creatorId"`
	ModifierID       *int64     `db:"modifier_id" json:"modifierId"`
	Version          int        `db:"version" json:"version"`
	CreationDate     time.Time  `db:"creation_date" json:"creationDate"`
	ModificationDate *time.Time `db:"modification_date" json:"modificationDate"`
	Active           bool       `db:"active" json:"active"`

	// resolved through lookups, never stored
	StateName    string `db:"state_name" json:"stateName"`
	PriorityName string `db:"priority_name" json:"priorityName"`
	ProjectName  string `db:"project_name" json:"projectName"`
	AssigneeName string `db:"assignee_name" json:"assigneeName"`
	CreatorName  string `db:"creator_name" json:"creatorName"`
}

// TaskFilter narrows a task listing. Zero values mean "any".
type TaskFilter struct {
	Search     string
	StateID    int64
	PriorityID int64
	ProjectID  int64
	AssigneeID int64
}

type TaskStatistics struct {
	Total        int `json:"total"`
	Completed    int `json:"completed"`
	Pending      int `json:"pending"`
	HighPriority int `json:"highPriority"`
	Overdue      int `json:"overdue"`
}
