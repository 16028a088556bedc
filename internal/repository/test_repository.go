package repository

import (
	"assessment_backend/internal/model"

	"gorm.io/gorm"
)

type testRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *testRepository {
	return &testRepository{DB: db}
}

func (r *testRepository) Create(test *model.Test) error {
	return r.DB.Create(test).Error
}

func (r *testRepository) Update(test *model.Test) error {
	return r.DB.Save(test).Error
}

func (r *testRepository) FindByID(id string) (*model.Test, error) {
	return first[model.Test](r.DB, "id = ?", id)
}

func (r *testRepository) FindByModule(moduleID string) (*model.Test, error) {
	return first[model.Test](r.DB, "module_id = ?", moduleID)
}

func (r *testRepository) ListByModule(moduleID string) ([]model.Test, error) {
	var tests []model.Test
	err := r.DB.Where("module_id = ?", moduleID).Order("created_at asc").Find(&tests).Error
	return tests, err
}

func (r *testRepository) Delete(id string) error {
	return r.DB.Delete(&model.Test{}, "id = ?", id).Error
}

type classRepository struct {
	DB *gorm.DB
}

func NewClassRepository(db *gorm.DB) *classRepository {
	return &classRepository{DB: db}
}

func (r *classRepository) Create(class *model.Class) error {
	return r.DB.Create(class).Error
}

func (r *classRepository) FindByID(id string) (*model.Class, error) {
	return first[model.Class](r.DB, "id = ?", id)
}

func (r *classRepository) List() ([]model.Class, error) {
	var classes []model.Class
	err := r.DB.Order("created_at asc").Find(&classes).Error
	return classes, err
}

func (r *classRepository) ListByTeacher(teacherID string) ([]model.Class, error) {
	var classes []model.Class
	err := r.DB.Where("teacher_id = ?", teacherID).Order("created_at asc").Find(&classes).Error
	return classes, err
}
