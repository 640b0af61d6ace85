package models

// State and Priority are static reference data. The flags classify rows so
// that statistics never depend on hard-coded ids.
type State struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	IsCompleted bool   `db:"is_completed" json:"isCompleted"`
	IsPending   bool   `db:"is_pending" json:"isPending"`
	Active      bool   `db:"active" json:"active"`
}

type Priority struct {
	ID     int64  `db:"id" json:"id"`
	Name   string `db:"name" json:"name"`
	IsHigh bool   `db:"is_high" json:"isHigh"`
	Active bool   `db:"active" json:"active"`
}

// Option is an id/name pair for populating selects.
type Option struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// ReportRow is one bucket of an aggregate report.
type ReportRow struct {
	Name  string `db:"name" json:"name"`
	Count int    `db:"count" json:"count"`
}
