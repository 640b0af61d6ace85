package migrations

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jmoiron/sqlx"
	"gopkg.in/yaml.v3"
)

//go:embed reference.yaml
var defaultReference []byte

type StateSeed struct {
	Name      string `yaml:"name"`
	Completed bool   `yaml:"completed"`
	Pending   bool   `yaml:"pending"`
}

type PrioritySeed struct {
	Name string `yaml:"name"`
	High bool   `yaml:"high"`
}

// ReferenceData is the static state and priority catalogue.
type ReferenceData struct {
	States     []StateSeed    `yaml:"states"`
	Priorities []PrioritySeed `yaml:"priorities"`
}

func DefaultReferenceData() (*ReferenceData, error) {
	var ref ReferenceData
	if err := yaml.Unmarshal(defaultReference, &ref); err != nil {
		return nil, fmt.Errorf("parse embedded reference data: %w", err)
	}
	return &ref, nil
}

func LoadReferenceData(r io.Reader) (*ReferenceData, error) {
	var ref ReferenceData
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ref); err != nil {
		return nil, fmt.Errorf("parse reference data: %w", err)
	}
	for _, s := range ref.States {
		if s.Name == "" {
			return nil, errors.New("state without name")
		}
	}
	for _, p := range ref.Priorities {
		if p.Name == "" {
			return nil, errors.New("priority without name")
		}
	}
	return &ref, nil
}

// Seed inserts every state and priority whose name is not present yet and
// reports how many rows were added.
func Seed(ctx context.Context, db sqlx.ExtContext, ref *ReferenceData, now time.Time) (int, error) {
	added := 0
	for _, s := range ref.States {
		var exists bool
		q := db.Rebind(`SELECT EXISTS(SELECT 1 FROM states WHERE name = ?)`)
		if err := sqlx.GetContext(ctx, db, &exists, q, s.Name); err != nil {
			return added, fmt.Errorf("check state %q: %w", s.Name, err)
		}
		if exists {
			continue
		}
		q = db.Rebind(`INSERT INTO states (name, is_completed, is_pending, active, creation_date)
		 VALUES (?, ?, ?, TRUE, ?)`)
		if _, err := db.ExecContext(ctx, q, s.Name, s.Completed, s.Pending, now); err != nil {
			return added, fmt.Errorf("insert state %q: %w", s.Name, err)
		}
		added++
	}
	for _, p := range ref.Priorities {
		var exists bool
		q := db.Rebind(`SELECT EXISTS(SELECT 1 FROM priorities WHERE name = ?)`)
		if err := sqlx.GetContext(ctx, db, &exists, q, p.Name); err != nil {
			return added, fmt.Errorf("check priority %q: %w", p.Name, err)
		}
		if exists {
			continue
		}
		q = db.Rebind(`INSERT INTO priorities (name, is_high, active, creation_date)
		 VALUES (?, ?, TRUE, ?)`)
		if _, err := db.ExecContext(ctx, q, p.Name, p.High, now); err != nil {
			return added, fmt.Errorf("insert priority %q: %w", p.Name, err)
		}
		added++
	}
	return added, nil
}
