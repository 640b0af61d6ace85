package models

import "time"

type Project struct {
	ID               int64      `db:"id" json:"id"`
	Name             string     `db:"name" json:"name"`
	Description      string     `db:"description" json:"description"`
	CreatorID        int64      `db:"creator_id" json:"creatorId"`
	ModifierID       *int64     `db:"modifier_id" json:"modifierId"`
	Version          int        `db:"version" json:"version"`
	CreationDate     time.Time  `db:"creation_date" json:"creationDate"`
	ModificationDate *time.Time `db:"modification_date" json:"modificationDate"`
	Active           bool       `db:"active" json:"active"`
}
