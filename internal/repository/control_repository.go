package repository

import (
	"assessment_backend/internal/model"

	"gorm.io/gorm"
)

type controlTestRepository struct {
	DB *gorm.DB
}

func NewControlTestRepository(db *gorm.DB) *controlTestRepository {
	return &controlTestRepository{DB: db}
}

func (r *controlTestRepository) Create(test *model.ControlTest) error {
	return r.DB.Create(test).Error
}

func (r *controlTestRepository) Update(test *model.ControlTest) error {
	return r.DB.Save(test).Error
}

func (r *controlTestRepository) FindByID(id string) (*model.ControlTest, error) {
	return first[model.ControlTest](r.DB, "id = ?", id)
}

func (r *controlTestRepository) List() ([]model.ControlTest, error) {
	var tests []model.ControlTest
	err := r.DB.Order("created_at asc").Find(&tests).Error
	return tests, err
}

func (r *controlTestRepository) Delete(id string) error {
	return r.DB.Delete(&model.ControlTest{}, "id = ?", id).Error
}

type controlResultRepository struct {
	DB *gorm.DB
}

func NewControlResultRepository(db *gorm.DB) *controlResultRepository {
	return &controlResultRepository{DB: db}
}

func (r *controlResultRepository) Create(result *model.ControlResult) error {
	return r.DB.Create(result).Error
}

func (r *controlResultRepository) ListByTest(testID string) ([]model.ControlResult, error) {
	var results []model.ControlResult
	err := r.DB.Where("test_id = ?", testID).Order("completed_at asc, created_at asc").Find(&results).Error
	return results, err
}

func (r *controlResultRepository) ListByTeacher(teacherID string) ([]model.ControlResult, error) {
	var results []model.ControlResult
	err := r.DB.Where("teacher_id = ?", teacherID).Order("completed_at asc, created_at asc").Find(&results).Error
	return results, err
}

func (r *controlResultRepository) DeleteByTest(testID string) error {
	return r.DB.Where("test_id = ?", testID).Delete(&model.ControlResult{}).Error
}
