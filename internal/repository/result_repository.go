package repository

import (
	"assessment_backend/internal/model"

	"gorm.io/gorm"
)

type resultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *resultRepository {
	return &resultRepository{DB: db}
}

func (r *resultRepository) Create(result *model.Result) error {
	return r.DB.Create(result).Error
}

func (r *resultRepository) FindByID(id string) (*model.Result, error) {
	return first[model.Result](r.DB, "id = ?", id)
}

func (r *resultRepository) List() ([]model.Result, error) {
	var results []model.Result
	err := r.DB.Order("completed_at asc, created_at asc").Find(&results).Error
	return results, err
}

func (r *resultRepository) ListByUser(userID string) ([]model.Result, error) {
	var results []model.Result
	err := r.DB.Where("user_id = ?", userID).Order("completed_at asc, created_at asc").Find(&results).Error
	return results, err
}

func (r *resultRepository) ListByUserAndTest(userID, testID string) ([]model.Result, error) {
	var results []model.Result
	err := r.DB.Where("user_id = ? AND test_id = ?", userID, testID).
		Order("completed_at asc, created_at asc").
		Find(&results).Error
	return results, err
}

func (r *resultRepository) DeleteByTest(testID string) error {
	return r.DB.Where("test_id = ?", testID).Delete(&model.Result{}).Error
}
