package repository

import (
	"assessment_backend/internal/model"

	"gorm.io/gorm"
)

type userRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(user *model.User) error {
	user.Normalize()
	return r.DB.Create(user).Error
}

func (r *userRepository) FindByID(id string) (*model.User, error) {
	return first[model.User](r.DB, "id = ?", id)
}

func (r *userRepository) List() ([]model.User, error) {
	var users []model.User
	err := r.DB.Order("created_at asc").Find(&users).Error
	return users, err
}

func (r *userRepository) ListByRole(role model.UserRole) ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("role = ?", role).Order("created_at asc").Find(&users).Error
	return users, err
}

type subjectRepository struct {
	DB *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *subjectRepository {
	return &subjectRepository{DB: db}
}

func (r *subjectRepository) Create(subject *model.Subject) error {
	return r.DB.Create(subject).Error
}

func (r *subjectRepository) FindByID(id string) (*model.Subject, error) {
	return first[model.Subject](r.DB, "id = ?", id)
}

func (r *subjectRepository) List() ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.DB.Order("created_at asc").Find(&subjects).Error
	return subjects, err
}
