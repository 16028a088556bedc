package service

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/repository"
	"assessment_backend/internal/util"
	"assessment_backend/pkg/logger"
	"assessment_backend/pkg/monitoring"
	"context"
	"errors"
	"slices"
	"sort"
	"time"

	"go.uber.org/zap"
)

// ControlService runs control tests: graded tests a teacher assigns to
// classes directly, outside the subject and module catalog.
type ControlService struct {
	Store repository.Store

	now func() time.Time
}

func NewControlService(store repository.Store) *ControlService {
	return &ControlService{Store: store, now: time.Now}
}

type ControlTestFilter struct {
	CreatedBy  string `form:"createdBy"`
	AssignedTo string `form:"assignedTo"`
}

type CreateControlTestInput struct {
	NameRu          string           `json:"nameRu" binding:"required"`
	NameUz          string           `json:"nameUz"`
	DescriptionRu   string           `json:"descriptionRu"`
	DescriptionUz   string           `json:"descriptionUz"`
	Duration        int              `json:"duration"`
	MaxScore        int              `json:"maxScore"`
	Questions       []model.Question `json:"questions"`
	AssignedClasses []string         `json:"assignedClasses"`
}

// UpdateControlTestInput carries the fields to change. Nil fields, empty
// names and non-positive numbers keep the stored value.
type UpdateControlTestInput struct {
	NameRu          *string           `json:"nameRu"`
	NameUz          *string           `json:"nameUz"`
	DescriptionRu   *string           `json:"descriptionRu"`
	DescriptionUz   *string           `json:"descriptionUz"`
	Duration        *int              `json:"duration"`
	MaxScore        *int              `json:"maxScore"`
	Questions       *[]model.Question `json:"questions"`
	AssignedClasses *[]string         `json:"assignedClasses"`
}

func (in UpdateControlTestInput) apply(test *model.ControlTest) {
	setText := func(dst *string, v *string) {
		if v != nil && *v != "" {
			*dst = *v
		}
	}
	setText(&test.NameRu, in.NameRu)
	setText(&test.NameUz, in.NameUz)
	setText(&test.DescriptionRu, in.DescriptionRu)
	setText(&test.DescriptionUz, in.DescriptionUz)
	if in.Duration != nil && *in.Duration > 0 {
		test.Duration = *in.Duration
	}
	if in.MaxScore != nil && *in.MaxScore > 0 {
		test.MaxScore = *in.MaxScore
	}
	if in.Questions != nil {
		test.Questions = *in.Questions
	}
	if in.AssignedClasses != nil {
		test.AssignedClasses = *in.AssignedClasses
	}
}

// StudentControlTest is a control test without its answer key.
//
// swagger:model StudentControlTest
type StudentControlTest struct {
	ID            string              `json:"_id"`
	NameRu        string              `json:"nameRu"`
	NameUz        string              `json:"nameUz"`
	DescriptionRu string              `json:"descriptionRu"`
	DescriptionUz string              `json:"descriptionUz"`
	Duration      int                 `json:"duration"`
	MaxScore      int                 `json:"maxScore"`
	Questions     []DeliveredQuestion `json:"questions"`
}

func forStudent(t *model.ControlTest) StudentControlTest {
	questions := make([]DeliveredQuestion, len(t.Questions))
	for i, q := range t.Questions {
		answers := make([]DeliveredAnswer, len(q.Answers))
		for j, a := range q.Answers {
			answers[j] = DeliveredAnswer{OriginalIndex: j, TextRu: a.TextRu, TextUz: a.TextUz}
		}
		questions[i] = DeliveredQuestion{QuestionIndex: i, QuestionRu: q.QuestionRu, QuestionUz: q.QuestionUz, Answers: answers}
	}
	return StudentControlTest{
		ID:            t.ID,
		NameRu:        t.NameRu,
		NameUz:        t.NameUz,
		DescriptionRu: t.DescriptionRu,
		DescriptionUz: t.DescriptionUz,
		Duration:      t.Duration,
		MaxScore:      t.MaxScore,
		Questions:     questions,
	}
}

func findControlTest(tx repository.Tx, id string) (*model.ControlTest, error) {
	test, err := tx.ControlTests().FindByID(id)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return nil, util.ErrControlNotFound
	}
	return test, err
}

// requireOwner lets the creator or an admin change a control test.
func requireOwner(caller model.Caller, test *model.ControlTest) error {
	if caller.Is(model.Admin) || (caller.Is(model.Teacher) && test.CreatedBy == caller.UserID) {
		return nil
	}
	return util.ErrPermissionDenied
}

// List returns control tests, optionally narrowed to one author or one
// class label.
func (s *ControlService) List(ctx context.Context, caller model.Caller, filter ControlTestFilter) ([]model.ControlTest, error) {
	if err := requireAuthor(caller); err != nil {
		return nil, err
	}
	out := make([]model.ControlTest, 0)
	err := s.Store.View(ctx, func(tx repository.Tx) error {
		tests, err := tx.ControlTests().List()
		if err != nil {
			return err
		}
		for _, t := range tests {
			if filter.CreatedBy != "" && t.CreatedBy != filter.CreatedBy {
				continue
			}
			if filter.AssignedTo != "" && !slices.Contains(t.AssignedClasses, filter.AssignedTo) {
				continue
			}
			out = append(out, t)
		}
		return nil
	})
	return out, err
}

// Get returns a control test with its answer key. Only authors see it.
func (s *ControlService) Get(ctx context.Context, caller model.Caller, id string) (*model.ControlTest, error) {
	if err := requireAuthor(caller); err != nil {
		return nil, err
	}
	var test *model.ControlTest
	err := s.Store.View(ctx, func(tx repository.Tx) error {
		var err error
		test, err = findControlTest(tx, id)
		return err
	})
	return test, err
}

// GetForStudent returns an assigned control test without its answer key.
func (s *ControlService) GetForStudent(ctx context.Context, caller model.Caller, id string) (*StudentControlTest, error) {
	var out *StudentControlTest
	err := s.Store.View(ctx, func(tx repository.Tx) error {
		test, err := s.assigned(tx, caller, id)
		if err != nil {
			return err
		}
		view := forStudent(test)
		out = &view
		return nil
	})
	return out, err
}

// ListForStudent returns the control tests assigned to the caller's grade
// or class.
func (s *ControlService) ListForStudent(ctx context.Context, caller model.Caller) ([]StudentControlTest, error) {
	if !caller.Is(model.Student) {
		return nil, util.ErrPermissionDenied
	}
	out := make([]StudentControlTest, 0)
	err := s.Store.View(ctx, func(tx repository.Tx) error {
		student, err := findUser(tx, caller.UserID)
		if err != nil || student == nil {
			return err
		}
		tests, err := tx.ControlTests().List()
		if err != nil {
			return err
		}
		for i := range tests {
			if tests[i].AssignedTo(student.Grade, student.GradeSection) {
				out = append(out, forStudent(&tests[i]))
			}
		}
		return nil
	})
	return out, err
}

// assigned loads a control test for a student it is assigned to.
func (s *ControlService) assigned(tx repository.Tx, caller model.Caller, id string) (*model.ControlTest, error) {
	if !caller.Is(model.Student) {
		return nil, util.ErrPermissionDenied
	}
	test, err := findControlTest(tx, id)
	if err != nil {
		return nil, err
	}
	student, err := findUser(tx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, util.ErrStudentNotFound
	}
	if !test.AssignedTo(student.Grade, student.GradeSection) {
		return nil, util.ErrPermissionDenied
	}
	return test, nil
}

func (s *ControlService) Create(ctx context.Context, caller model.Caller, input CreateControlTestInput) (*model.ControlTest, error) {
	if err := requireAuthor(caller); err != nil {
		return nil, err
	}
	test := &model.ControlTest{
		NameRu:          input.NameRu,
		NameUz:          input.NameUz,
		DescriptionRu:   input.DescriptionRu,
		DescriptionUz:   input.DescriptionUz,
		Duration:        input.Duration,
		MaxScore:        input.MaxScore,
		Questions:       input.Questions,
		AssignedClasses: input.AssignedClasses,
		CreatedBy:       caller.UserID,
	}
	if test.Duration <= 0 {
		test.Duration = 30
	}
	if test.MaxScore <= 0 {
		test.MaxScore = 100
	}
	if test.Questions == nil {
		test.Questions = []model.Question{}
	}
	if test.AssignedClasses == nil {
		test.AssignedClasses = []string{}
	}

	err := s.Store.Update(ctx, func(tx repository.Tx) error {
		return tx.ControlTests().Create(test)
	})
	if err != nil {
		return nil, err
	}
	logger.Log.Info("control test created",
		zap.String("testId", test.ID),
		zap.Strings("classes", test.AssignedClasses),
		zap.String("createdBy", caller.UserID))
	return test, nil
}

func (s *ControlService) Update(ctx context.Context, caller model.Caller, id string, input UpdateControlTestInput) (*model.ControlTest, error) {
	var test *model.ControlTest
	err := s.Store.Update(ctx, func(tx repository.Tx) error {
		var err error
		test, err = findControlTest(tx, id)
		if err != nil {
			return err
		}
		if err := requireOwner(caller, test); err != nil {
			return err
		}
		input.apply(test)
		return tx.ControlTests().Update(test)
	})
	if err != nil {
		return nil, err
	}
	logger.Log.Info("control test updated", zap.String("testId", id), zap.String("by", caller.UserID))
	return test, nil
}

// Delete removes a control test together with its results.
func (s *ControlService) Delete(ctx context.Context, caller model.Caller, id string) error {
	err := s.Store.Update(ctx, func(tx repository.Tx) error {
		test, err := findControlTest(tx, id)
		if err != nil {
			return err
		}
		if err := requireOwner(caller, test); err != nil {
			return err
		}
		if err := tx.ControlResults().DeleteByTest(id); err != nil {
			return err
		}
		return tx.ControlTests().Delete(id)
	})
	if err != nil {
		return err
	}
	logger.Log.Info("control test deleted", zap.String("testId", id), zap.String("by", caller.UserID))
	return nil
}

// Submit scores a control test for an assigned student. The score is
// scaled to the test's MaxScore; repeated submissions are all kept.
func (s *ControlService) Submit(ctx context.Context, caller model.Caller, id string, input SubmitInput) (*model.ControlResult, error) {
	var result *model.ControlResult
	err := s.Store.Update(ctx, func(tx repository.Tx) error {
		test, err := s.assigned(tx, caller, id)
		if err != nil {
			return err
		}
		scored, err := ScoreAttempt(&model.Test{Questions: test.Questions}, input.Answers)
		if err != nil {
			return err
		}
		result = &model.ControlResult{
			UserID:          caller.UserID,
			TestID:          test.ID,
			TestName:        test.NameRu,
			TeacherID:       test.CreatedBy,
			Score:           Scaled(scored.CorrectCount, scored.TotalCount, test.MaxScore),
			CorrectCount:    scored.CorrectCount,
			TotalCount:      scored.TotalCount,
			TimeTaken:       input.TimeTaken,
			QuestionResults: scored.QuestionResults,
			CompletedAt:     s.now().UTC(),
		}
		return tx.ControlResults().Create(result)
	})
	if err != nil {
		return nil, err
	}

	monitoring.ControlSubmissionsTotal.Inc()
	logger.Log.Info("control test submitted",
		zap.String("resultId", result.ID),
		zap.String("testId", id),
		zap.String("userId", caller.UserID),
		zap.Int("score", result.Score))
	return result, nil
}

// Results lists the results of one control test for its creator or an
// admin.
func (s *ControlService) Results(ctx context.Context, caller model.Caller, id string) ([]model.ControlResultRow, error) {
	var out []model.ControlResultRow
	err := s.Store.View(ctx, func(tx repository.Tx) error {
		test, err := findControlTest(tx, id)
		if err != nil {
			return err
		}
		if err := requireOwner(caller, test); err != nil {
			return err
		}
		results, err := tx.ControlResults().ListByTest(id)
		if err != nil {
			return err
		}
		out, err = withStudents(tx, results, nil)
		return err
	})
	return out, err
}

// TeacherResults lists every result of the caller's control tests, most
// recent first, under each test's current name.
func (s *ControlService) TeacherResults(ctx context.Context, caller model.Caller) ([]model.ControlResultRow, error) {
	if !caller.Is(model.Teacher) {
		return nil, util.ErrPermissionDenied
	}
	var out []model.ControlResultRow
	err := s.Store.View(ctx, func(tx repository.Tx) error {
		results, err := tx.ControlResults().ListByTeacher(caller.UserID)
		if err != nil {
			return err
		}
		names := make(map[string]string)
		for _, r := range results {
			if _, ok := names[r.TestID]; ok {
				continue
			}
			test, err := findControlTest(tx, r.TestID)
			if errors.Is(err, util.ErrControlNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			names[r.TestID] = test.NameRu
		}
		out, err = withStudents(tx, results, names)
		return err
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CompletedAt.After(out[j].CompletedAt) })
	return out, nil
}

// withStudents attaches student names and class labels. Results of deleted
// students read "Unknown".
func withStudents(tx repository.Tx, results []model.ControlResult, testNames map[string]string) ([]model.ControlResultRow, error) {
	users := make(map[string]*model.User)
	out := make([]model.ControlResultRow, 0, len(results))
	for _, r := range results {
		u, seen := users[r.UserID]
		if !seen {
			var err error
			if u, err = findUser(tx, r.UserID); err != nil {
				return nil, err
			}
			users[r.UserID] = u
		}
		row := model.ControlResultRow{ControlResult: r, StudentName: "Unknown", StudentGrade: "Unknown"}
		if u != nil {
			row.StudentName = u.FullName()
			row.StudentGrade = u.Grade + u.GradeSection
		}
		if name, ok := testNames[r.TestID]; ok && name != "" {
			row.TestName = name
		}
		out = append(out, row)
	}
	return out, nil
}
