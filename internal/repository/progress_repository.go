package repository

import (
	"assessment_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type progressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *progressRepository {
	return &progressRepository{DB: db}
}

// Save upserts on the (user_id, test_id) primary key.
func (r *progressRepository) Save(progress *model.Progress) error {
	return r.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(progress).Error
}

func (r *progressRepository) Find(userID, testID string) (*model.Progress, error) {
	return first[model.Progress](r.DB, "user_id = ? AND test_id = ?", userID, testID)
}

func (r *progressRepository) Delete(userID, testID string) error {
	return r.DB.Where("user_id = ? AND test_id = ?", userID, testID).Delete(&model.Progress{}).Error
}

func (r *progressRepository) DeleteByTest(testID string) error {
	return r.DB.Where("test_id = ?", testID).Delete(&model.Progress{}).Error
}
