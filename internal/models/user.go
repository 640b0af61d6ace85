package models

import "time"

type User struct {
	ID               int64      `db:"id" json:"id"`
	Username         string     `db:"username" json:"username"`
	PasswordHash     string     `db:"password_hash" json:"-"`
	Active           bool       `db:"active" json:"active"`
	CreationDate     time.Time  `db:"creation_date" json:"creationDate"`
	ModificationDate *time.Time `db:"modification_date" json:"modificationDate"`
}

// UserSummary is the public shape of a user, used for form population and
// the login response.
type UserSummary struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
}
