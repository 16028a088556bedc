package service

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/repository"
	"assessment_backend/internal/util"
	"context"
	"errors"
	"time"
)

type ProgressService struct {
	Store repository.Store
	now   func() time.Time
}

func NewProgressService(store repository.Store) *ProgressService {
	return &ProgressService{Store: store, now: time.Now}
}

// ProgressInput is the client-side state of an unfinished attempt.
type ProgressInput struct {
	CurrentQuestion int              `json:"currentQuestion"`
	Answers         model.Selections `json:"answers"`
}

// Save overwrites the caller's slot for the test.
func (s *ProgressService) Save(ctx context.Context, caller model.Caller, testID string, input ProgressInput) (*model.Progress, error) {
	progress := &model.Progress{
		UserID:          caller.UserID,
		TestID:          testID,
		CurrentQuestion: input.CurrentQuestion,
		Answers:         input.Answers,
		SavedAt:         s.now().UTC(),
	}
	if progress.Answers == nil {
		progress.Answers = model.Selections{}
	}

	err := s.Store.Update(ctx, func(tx repository.Tx) error {
		if _, err := tx.Tests().FindByID(testID); err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return util.ErrTestNotFound
			}
			return err
		}
		return tx.Progress().Save(progress)
	})
	if err != nil {
		return nil, err
	}
	return progress, nil
}

// Get returns nil when nothing is saved.
func (s *ProgressService) Get(ctx context.Context, caller model.Caller, testID string) (*model.Progress, error) {
	var progress *model.Progress
	err := s.Store.View(ctx, func(tx repository.Tx) error {
		p, err := tx.Progress().Find(caller.UserID, testID)
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil
		}
		progress = p
		return err
	})
	return progress, err
}

// clear runs inside the submitting transaction.
func (s *ProgressService) clear(tx repository.Tx, userID, testID string) error {
	return tx.Progress().Delete(userID, testID)
}
