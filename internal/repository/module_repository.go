package repository

import (
	"assessment_backend/internal/model"

	"gorm.io/gorm"
)

type moduleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *moduleRepository {
	return &moduleRepository{DB: db}
}

func (r *moduleRepository) Create(module *model.Module) error {
	return r.DB.Create(module).Error
}

func (r *moduleRepository) FindByID(id string) (*model.Module, error) {
	return first[model.Module](r.DB, "id = ?", id)
}

func (r *moduleRepository) ListBySubject(subjectID string) ([]model.Module, error) {
	var modules []model.Module
	err := r.DB.Where("subject_id = ?", subjectID).Order("created_at asc").Find(&modules).Error
	return modules, err
}

func (r *moduleRepository) ListByCreator(userID string) ([]model.Module, error) {
	var modules []model.Module
	err := r.DB.Where("created_by = ?", userID).Order("created_at asc").Find(&modules).Error
	return modules, err
}

func (r *moduleRepository) Delete(id string) error {
	return r.DB.Delete(&model.Module{}, "id = ?", id).Error
}
