package models

import "time"

type Comment struct {
	ID               int64      `db:"id" json:"id"`
	TaskID           int64      `db:"task_id" json:"taskId"`
	Text             string     `db:"text" json:"comment"`
	AuthorID         int64      `db:"author_id" json:"authorId"`
	ModifierID       *int64     `db:"modifier_id" json:"modifierId"`
	CreationDate     time.Time  `db:"creation_date" json:"creationDate"`
	ModificationDate *time.Time `db:"modification_date" json:"modificationDate"`
	Active           bool       `db:"active" json:"active"`

	AuthorName string `db:"author_name" json:"authorName"`
	TaskTitle  string `db:"task_title" json:"taskTitle"`
}
