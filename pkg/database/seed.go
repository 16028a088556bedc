package database

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/repository"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Seed is a set of fixture rows. Fields use the same names as the JSON API,
// so subject references may be plain strings or objects.
type Seed struct {
	Users    []model.User    `json:"users"`
	Subjects []model.Subject `json:"subjects"`
	Modules  []model.Module  `json:"modules"`
	Tests    []model.Test    `json:"tests"`
	Classes  []model.Class   `json:"classes"`
}

// LoadSeed reads a YAML or JSON fixture file.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", path, err)
	}
	asJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", path, err)
	}
	var seed Seed
	if err := json.Unmarshal(asJSON, &seed); err != nil {
		return nil, fmt.Errorf("decode seed %s: %w", path, err)
	}
	return &seed, nil
}

// ApplySeed inserts every row whose id is not stored yet, in one unit of
// work. It returns the number of inserted rows.
func ApplySeed(ctx context.Context, store repository.Store, seed *Seed) (int, error) {
	inserted := 0
	err := store.Update(ctx, func(tx repository.Tx) error {
		inserted = 0
		for i := range seed.Users {
			ok, err := insertMissing(seed.Users[i].ID, &seed.Users[i], tx.Users().FindByID, tx.Users().Create)
			if err != nil {
				return err
			}
			inserted += ok
		}
		for i := range seed.Subjects {
			ok, err := insertMissing(seed.Subjects[i].ID, &seed.Subjects[i], tx.Subjects().FindByID, tx.Subjects().Create)
			if err != nil {
				return err
			}
			inserted += ok
		}
		for i := range seed.Modules {
			ok, err := insertMissing(seed.Modules[i].ID, &seed.Modules[i], tx.Modules().FindByID, tx.Modules().Create)
			if err != nil {
				return err
			}
			inserted += ok
		}
		for i := range seed.Tests {
			t := &seed.Tests[i]
			if t.Status == "" {
				t.Status = model.TestDraft
			}
			if t.MaxScore == 0 {
				t.MaxScore = 100
			}
			ok, err := insertMissing(t.ID, t, tx.Tests().FindByID, tx.Tests().Create)
			if err != nil {
				return err
			}
			inserted += ok
		}
		for i := range seed.Classes {
			ok, err := insertMissing(seed.Classes[i].ID, &seed.Classes[i], tx.Classes().FindByID, tx.Classes().Create)
			if err != nil {
				return err
			}
			inserted += ok
		}
		return nil
	})
	return inserted, err
}

func insertMissing[T any](id string, row T, find func(id string) (T, error), create func(T) error) (int, error) {
	if id != "" {
		_, err := find(id)
		if err == nil {
			return 0, nil
		}
		if !errors.Is(err, repository.ErrRecordNotFound) {
			return 0, err
		}
	}
	if err := create(row); err != nil {
		return 0, err
	}
	return 1, nil
}
