package service

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/repository"
	"assessment_backend/internal/util"
	"errors"
)

// AccessResolver decides what a caller may read. It holds no state: every
// predicate re-reads assignments through the given transaction.
type AccessResolver struct{}

func NewAccessResolver() *AccessResolver {
	return &AccessResolver{}
}

// ClassScope is an analytics target resolved from a class id or a grade.
type ClassScope struct {
	Class   *model.Class
	Grade   string
	Section string
}

// ResolveClassScope looks ref up as a class id first and as a grade second.
// The resolved section falls back to the class's pinned name.
func (r *AccessResolver) ResolveClassScope(tx repository.Tx, ref, section string) (*ClassScope, error) {
	class, err := tx.Classes().FindByID(ref)
	if err != nil && !errors.Is(err, repository.ErrRecordNotFound) {
		return nil, err
	}
	if class == nil {
		classes, err := tx.Classes().List()
		if err != nil {
			return nil, err
		}
		for i := range classes {
			if classes[i].Grade == ref && (section == "" || classes[i].AllowsSection(section)) {
				class = &classes[i]
				break
			}
		}
	}

	scope := &ClassScope{Class: class, Grade: ref, Section: section}
	if class != nil {
		scope.Grade = class.Grade
		if section == "" {
			scope.Section = class.Name
		}
	}
	return scope, nil
}

func (r *AccessResolver) CanAccessClass(tx repository.Tx, caller model.Caller, class *model.Class, section string) (bool, error) {
	switch caller.Role {
	case model.Admin:
		return true, nil
	case model.Teacher:
		if class == nil || class.TeacherID == "" || class.TeacherID != caller.UserID {
			return false, nil
		}
		return section == "" || class.AllowsSection(section), nil
	case model.Student:
		if class == nil {
			return false, nil
		}
		student, err := findUser(tx, caller.UserID)
		if err != nil || student == nil {
			return false, err
		}
		if student.Role != model.Student || student.Grade != class.Grade {
			return false, nil
		}
		if section != "" && student.GradeSection != section {
			return false, nil
		}
		if class.Name != "" && student.GradeSection != class.Name {
			return false, nil
		}
		return true, nil
	}
	return false, nil
}

// TeacherSubjectKeys collects the normalized ids and names a teacher lists.
func TeacherSubjectKeys(teacher *model.User) map[model.SubjectKey]struct{} {
	keys := make(map[model.SubjectKey]struct{})
	for _, ref := range teacher.Subjects {
		for _, k := range ref.Keys() {
			keys[k] = struct{}{}
		}
	}
	return keys
}

func subjectMatches(keys map[model.SubjectKey]struct{}, subject *model.Subject) bool {
	for _, k := range subject.Keys() {
		if _, ok := keys[k]; ok {
			return true
		}
	}
	return false
}

// TeacherHasSubject gates module and test access for teachers. Other roles
// pass. A teacher without any listed subject is denied every subject.
func (r *AccessResolver) TeacherHasSubject(tx repository.Tx, teacher *model.User, subjectID string) (bool, error) {
	if teacher == nil || teacher.Role != model.Teacher {
		return true, nil
	}
	keys := TeacherSubjectKeys(teacher)
	if len(keys) == 0 {
		return false, nil
	}
	if _, ok := keys[model.NormalizeSubjectKey(subjectID)]; ok {
		return true, nil
	}

	subject, err := tx.Subjects().FindByID(subjectID)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return subjectMatches(keys, subject), nil
}

// ResolveTeacherSubjects lists the subjects a teacher's references point at.
func (r *AccessResolver) ResolveTeacherSubjects(tx repository.Tx, teacher *model.User) ([]model.Subject, error) {
	out := make([]model.Subject, 0)
	if teacher == nil || teacher.Role != model.Teacher {
		return out, nil
	}
	keys := TeacherSubjectKeys(teacher)
	if len(keys) == 0 {
		return out, nil
	}
	subjects, err := tx.Subjects().List()
	if err != nil {
		return nil, err
	}
	for i := range subjects {
		if subjectMatches(keys, &subjects[i]) {
			out = append(out, subjects[i])
		}
	}
	return out, nil
}

func (r *AccessResolver) CanTeacherAccessStudent(tx repository.Tx, teacherID string, student *model.User) (bool, error) {
	classes, err := tx.Classes().ListByTeacher(teacherID)
	if err != nil {
		return false, err
	}
	for i := range classes {
		if classes[i].Grade == student.Grade && classes[i].AllowsSection(student.GradeSection) {
			return true, nil
		}
	}
	return false, nil
}

// requireTeacherSubject loads the caller and fails with ErrPermissionDenied
// when a teacher may not touch the subject.
func (r *AccessResolver) requireTeacherSubject(tx repository.Tx, caller model.Caller, subjectID string) error {
	if caller.Role != model.Teacher {
		return nil
	}
	teacher, err := findUser(tx, caller.UserID)
	if err != nil {
		return err
	}
	if teacher == nil {
		return util.ErrTeacherNotFound
	}
	ok, err := r.TeacherHasSubject(tx, teacher, subjectID)
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrPermissionDenied
	}
	return nil
}

// findUser returns nil without error when the user does not exist.
func findUser(tx repository.Tx, id string) (*model.User, error) {
	user, err := tx.Users().FindByID(id)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return nil, nil
	}
	return user, err
}
