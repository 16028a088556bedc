package service

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/repository"
	"assessment_backend/internal/util"
	"assessment_backend/pkg/logger"
	"assessment_backend/pkg/monitoring"
	"assessment_backend/pkg/tracing"
	"context"
	"errors"
	"math/rand/v2"
	"sort"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Policy holds the runtime switches of test delivery and submission.
type Policy struct {
	// ExposeAnswerKey ships isCorrect flags with delivered answers.
	ExposeAnswerKey bool
	// SingleAttempt rejects a second submission of the same test.
	SingleAttempt bool
}

type AssessmentService struct {
	Store    repository.Store
	Layouts  repository.LayoutCache
	Access   *AccessResolver
	Progress *ProgressService

	policy atomic.Pointer[Policy]
	now    func() time.Time
	seed   func() int64
}

func NewAssessmentService(store repository.Store, layouts repository.LayoutCache, access *AccessResolver, progress *ProgressService, policy Policy) *AssessmentService {
	s := &AssessmentService{
		Store:    store,
		Layouts:  layouts,
		Access:   access,
		Progress: progress,
		now:      time.Now,
		seed:     rand.Int64,
	}
	s.SetPolicy(policy)
	return s
}

// SetPolicy swaps the policy for subsequent calls.
func (s *AssessmentService) SetPolicy(p Policy) {
	s.policy.Store(&p)
}

func (s *AssessmentService) Policy() Policy {
	return *s.policy.Load()
}

type CreateTestInput struct {
	NameRu         string           `json:"nameRu" binding:"required"`
	NameUz         string           `json:"nameUz"`
	Status         model.TestStatus `json:"status"`
	Duration       *int             `json:"duration"`
	TimeLimit      *int             `json:"timeLimit"`
	MaxScore       int              `json:"maxScore"`
	Questions      []model.Question `json:"questions"`
	AssignedGrades []string         `json:"assignedGrades"`
}

// UpdateTestInput carries the fields to change; nil fields are left alone.
type UpdateTestInput struct {
	NameRu         *string           `json:"nameRu"`
	NameUz         *string           `json:"nameUz"`
	Status         *model.TestStatus `json:"status"`
	Duration       *int              `json:"duration"`
	TimeLimit      *int              `json:"timeLimit"`
	MaxScore       *int              `json:"maxScore"`
	Questions      *[]model.Question `json:"questions"`
	AssignedGrades *[]string         `json:"assignedGrades"`
}

func (in UpdateTestInput) apply(test *model.Test) {
	if in.NameRu != nil && *in.NameRu != "" {
		test.NameRu = *in.NameRu
	}
	if in.NameUz != nil {
		test.NameUz = *in.NameUz
	}
	if in.Status != nil {
		test.Status = *in.Status
	}
	if in.Duration != nil {
		test.Duration = in.Duration
	}
	if in.TimeLimit != nil {
		test.TimeLimit = in.TimeLimit
	}
	if in.MaxScore != nil && *in.MaxScore > 0 {
		test.MaxScore = *in.MaxScore
	}
	if in.Questions != nil {
		test.Questions = append([]model.Question{}, *in.Questions...)
	}
	if in.AssignedGrades != nil {
		test.AssignedGrades = append([]string{}, *in.AssignedGrades...)
	}
}

type SubmitInput struct {
	Answers   model.Selections `json:"answers"`
	TimeTaken int              `json:"timeTaken"`
}

func findTest(tx repository.Tx, id string) (*model.Test, error) {
	test, err := tx.Tests().FindByID(id)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return nil, util.ErrTestNotFound
	}
	return test, err
}

func findModule(tx repository.Tx, id string) (*model.Module, error) {
	module, err := tx.Modules().FindByID(id)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return nil, util.ErrModuleNotFound
	}
	return module, err
}

// moduleOf returns nil for a test whose module no longer exists.
func moduleOf(tx repository.Tx, test *model.Test) (*model.Module, error) {
	module, err := findModule(tx, test.ModuleID)
	if errors.Is(err, util.ErrModuleNotFound) {
		return nil, nil
	}
	return module, err
}

func requireAuthor(caller model.Caller) error {
	if caller.Is(model.Teacher) || caller.Is(model.Admin) {
		return nil
	}
	return util.ErrPermissionDenied
}

// ListAvailableTests lists a module's tests. Students only see published
// tests assigned to their grade.
func (s *AssessmentService) ListAvailableTests(ctx context.Context, caller model.Caller, moduleID string) ([]model.TestSummary, error) {
	out := make([]model.TestSummary, 0)
	err := s.Store.View(ctx, func(tx repository.Tx) error {
		module, err := findModule(tx, moduleID)
		if err != nil {
			return err
		}
		if err := s.Access.requireTeacherSubject(tx, caller, module.SubjectID); err != nil {
			return err
		}

		grade := ""
		if caller.Is(model.Student) {
			student, err := findUser(tx, caller.UserID)
			if err != nil {
				return err
			}
			if student == nil {
				return util.ErrStudentNotFound
			}
			grade = student.Grade
		}

		tests, err := tx.Tests().ListByModule(moduleID)
		if err != nil {
			return err
		}
		for i := range tests {
			t := &tests[i]
			if caller.Is(model.Student) && (!t.IsPublished() || !t.AvailableToGrade(grade)) {
				continue
			}
			out = append(out, t.Summary())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTest attaches a test to a module. A module holds at most one test.
func (s *AssessmentService) CreateTest(ctx context.Context, caller model.Caller, moduleID string, input CreateTestInput) (*model.Test, error) {
	if err := requireAuthor(caller); err != nil {
		return nil, err
	}

	test := &model.Test{
		ModuleID:       moduleID,
		NameRu:         input.NameRu,
		NameUz:         input.NameUz,
		Status:         input.Status,
		Duration:       input.Duration,
		TimeLimit:      input.TimeLimit,
		MaxScore:       input.MaxScore,
		Questions:      input.Questions,
		AssignedGrades: input.AssignedGrades,
		CreatedBy:      caller.UserID,
	}
	switch test.Status {
	case "":
		test.Status = model.TestDraft
	case model.TestDraft, model.TestPublished:
	default:
		return nil, util.ErrInvalidTestStatus
	}
	if test.MaxScore <= 0 {
		test.MaxScore = 100
	}
	if test.Questions == nil {
		test.Questions = []model.Question{}
	}
	if test.IsPublished() && len(test.Questions) == 0 {
		return nil, util.ErrNoQuestions
	}

	err := s.Store.Update(ctx, func(tx repository.Tx) error {
		module, err := findModule(tx, moduleID)
		if err != nil {
			return err
		}
		if err := s.Access.requireTeacherSubject(tx, caller, module.SubjectID); err != nil {
			return err
		}
		existing, err := tx.Tests().FindByModule(moduleID)
		if err != nil && !errors.Is(err, repository.ErrRecordNotFound) {
			return err
		}
		if existing != nil {
			return util.ErrModuleHasTest
		}
		return tx.Tests().Create(test)
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("test created",
		zap.String("testId", test.ID),
		zap.String("moduleId", moduleID),
		zap.String("createdBy", caller.UserID))
	return test, nil
}

// UpdateTest edits a test in place. Publishing requires at least one
// question. Changing the questions drops in-flight attempt layouts.
func (s *AssessmentService) UpdateTest(ctx context.Context, caller model.Caller, testID string, input UpdateTestInput) (*model.Test, error) {
	if err := requireAuthor(caller); err != nil {
		return nil, err
	}

	var test *model.Test
	err := s.Store.Update(ctx, func(tx repository.Tx) error {
		var err error
		test, err = findTest(tx, testID)
		if err != nil {
			return err
		}
		module, err := moduleOf(tx, test)
		if err != nil {
			return err
		}
		if module != nil {
			if err := s.Access.requireTeacherSubject(tx, caller, module.SubjectID); err != nil {
				return err
			}
		}

		input.apply(test)
		switch test.Status {
		case model.TestDraft, model.TestPublished:
		default:
			return util.ErrInvalidTestStatus
		}
		if test.IsPublished() && len(test.Questions) == 0 {
			return util.ErrNoQuestions
		}
		return tx.Tests().Update(test)
	})
	if err != nil {
		return nil, err
	}

	if input.Questions != nil {
		s.forgetLayouts(ctx, testID)
	}
	logger.Log.Info("test updated",
		zap.String("testId", testID),
		zap.String("status", string(test.Status)),
		zap.String("by", caller.UserID))
	return test, nil
}

// DeleteTest removes a test together with its results and saved progress.
func (s *AssessmentService) DeleteTest(ctx context.Context, caller model.Caller, testID string) error {
	if err := requireAuthor(caller); err != nil {
		return err
	}
	err := s.Store.Update(ctx, func(tx repository.Tx) error {
		test, err := findTest(tx, testID)
		if err != nil {
			return err
		}
		module, err := moduleOf(tx, test)
		if err != nil {
			return err
		}
		if module != nil {
			if err := s.Access.requireTeacherSubject(tx, caller, module.SubjectID); err != nil {
				return err
			}
		}
		return deleteTestCascade(tx, testID)
	})
	if err != nil {
		return err
	}
	s.forgetLayouts(ctx, testID)
	logger.Log.Info("test deleted", zap.String("testId", testID), zap.String("by", caller.UserID))
	return nil
}

// DeleteModule removes a module and cascades through its tests.
func (s *AssessmentService) DeleteModule(ctx context.Context, caller model.Caller, moduleID string) error {
	if err := requireAuthor(caller); err != nil {
		return err
	}
	var testIDs []string
	err := s.Store.Update(ctx, func(tx repository.Tx) error {
		module, err := findModule(tx, moduleID)
		if err != nil {
			return err
		}
		if err := s.Access.requireTeacherSubject(tx, caller, module.SubjectID); err != nil {
			return err
		}
		tests, err := tx.Tests().ListByModule(moduleID)
		if err != nil {
			return err
		}
		for _, t := range tests {
			if err := deleteTestCascade(tx, t.ID); err != nil {
				return err
			}
			testIDs = append(testIDs, t.ID)
		}
		return tx.Modules().Delete(moduleID)
	})
	if err != nil {
		return err
	}
	for _, id := range testIDs {
		s.forgetLayouts(ctx, id)
	}
	logger.Log.Info("module deleted", zap.String("moduleId", moduleID), zap.Int("tests", len(testIDs)))
	return nil
}

func deleteTestCascade(tx repository.Tx, testID string) error {
	if err := tx.Results().DeleteByTest(testID); err != nil {
		return err
	}
	if err := tx.Progress().DeleteByTest(testID); err != nil {
		return err
	}
	return tx.Tests().Delete(testID)
}

func (s *AssessmentService) forgetLayouts(ctx context.Context, testID string) {
	if s.Layouts == nil {
		return
	}
	if err := s.Layouts.DeleteTest(ctx, testID); err != nil {
		logger.Log.Warn("failed to drop attempt layouts", zap.String("testId", testID), zap.Error(err))
	}
}

// StartAttempt delivers a shuffled copy of a published test. While the
// attempt is open the caller gets the same layout back on every call.
func (s *AssessmentService) StartAttempt(ctx context.Context, caller model.Caller, testID string) (*RandomizedTest, error) {
	ctx, span := tracing.Start(ctx, "assessment.StartAttempt", caller.UserID, attribute.String("test.id", testID))
	defer span.End()

	var test *model.Test
	err := s.Store.View(ctx, func(tx repository.Tx) error {
		var err error
		test, err = findTest(tx, testID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !test.IsPublished() {
		return nil, util.ErrTestNotPublished
	}

	seed := s.layoutSeed(ctx, caller.UserID, testID)
	monitoring.AttemptsStarted.Inc()
	return Randomize(test, seed, s.Policy().ExposeAnswerKey), nil
}

func (s *AssessmentService) layoutSeed(ctx context.Context, userID, testID string) int64 {
	if s.Layouts == nil {
		return s.seed()
	}
	seed, ok, err := s.Layouts.Get(ctx, userID, testID)
	if err != nil {
		logger.Log.Warn("layout cache read failed", zap.String("testId", testID), zap.Error(err))
	}
	if ok {
		return seed
	}
	candidate := s.seed()
	seed, err = s.Layouts.Claim(ctx, userID, testID, candidate)
	if err != nil {
		logger.Log.Warn("layout cache write failed", zap.String("testId", testID), zap.Error(err))
		return candidate
	}
	return seed
}

// Submit scores an attempt, stores the result and clears saved progress in
// one transaction.
func (s *AssessmentService) Submit(ctx context.Context, caller model.Caller, testID string, input SubmitInput) (*model.Result, error) {
	ctx, span := tracing.Start(ctx, "assessment.Submit", caller.UserID, attribute.String("test.id", testID))
	defer span.End()

	policy := s.Policy()
	var result *model.Result
	err := s.Store.Update(ctx, func(tx repository.Tx) error {
		test, err := findTest(tx, testID)
		if err != nil {
			return err
		}
		if policy.SingleAttempt {
			prior, err := tx.Results().ListByUserAndTest(caller.UserID, testID)
			if err != nil {
				return err
			}
			if len(prior) > 0 {
				return util.ErrTestAlreadySubmitted
			}
		}

		scored, err := ScoreAttempt(test, input.Answers)
		if err != nil {
			return err
		}

		module, err := moduleOf(tx, test)
		if err != nil {
			return err
		}
		subjectID := ""
		if module != nil {
			subjectID = module.SubjectID
		}

		result = &model.Result{
			UserID:          caller.UserID,
			TestID:          test.ID,
			TestName:        test.NameRu,
			ModuleID:        test.ModuleID,
			SubjectID:       subjectID,
			Score:           scored.Score,
			CorrectCount:    scored.CorrectCount,
			TotalCount:      scored.TotalCount,
			TimeTaken:       input.TimeTaken,
			QuestionResults: scored.QuestionResults,
			CompletedAt:     s.now().UTC(),
		}
		if err := tx.Results().Create(result); err != nil {
			return err
		}
		return s.Progress.clear(tx, caller.UserID, testID)
	})
	if err != nil {
		return nil, err
	}

	if s.Layouts != nil {
		if err := s.Layouts.Delete(ctx, caller.UserID, testID); err != nil {
			logger.Log.Warn("failed to drop attempt layout", zap.String("testId", testID), zap.Error(err))
		}
	}
	monitoring.RecordSubmission(result.SubjectID, result.Score)
	span.SetAttributes(attribute.Int("result.score", result.Score))
	logger.Log.Info("test submitted",
		zap.String("resultId", result.ID),
		zap.String("testId", testID),
		zap.String("userId", caller.UserID),
		zap.Int("score", result.Score))
	return result, nil
}

// ResultsForStudent lists the caller's results, most recent first.
func (s *AssessmentService) ResultsForStudent(ctx context.Context, caller model.Caller) ([]model.Result, error) {
	var results []model.Result
	err := s.Store.View(ctx, func(tx repository.Tx) error {
		var err error
		results, err = tx.Results().ListByUser(caller.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}
	sortRecentFirst(results)
	return results, nil
}

// GetResult only returns results owned by the caller.
func (s *AssessmentService) GetResult(ctx context.Context, caller model.Caller, resultID string) (*model.Result, error) {
	var result *model.Result
	err := s.Store.View(ctx, func(tx repository.Tx) error {
		r, err := tx.Results().FindByID(resultID)
		if errors.Is(err, repository.ErrRecordNotFound) {
			return util.ErrResultNotFound
		}
		if err != nil {
			return err
		}
		if r.UserID != caller.UserID {
			return util.ErrResultNotFound
		}
		result = r
		return nil
	})
	return result, err
}

// ResultsForTest lists the caller's attempts at one test, most recent first.
func (s *AssessmentService) ResultsForTest(ctx context.Context, caller model.Caller, testID string) ([]model.Result, error) {
	var results []model.Result
	err := s.Store.View(ctx, func(tx repository.Tx) error {
		if _, err := findTest(tx, testID); err != nil {
			return err
		}
		var err error
		results, err = tx.Results().ListByUserAndTest(caller.UserID, testID)
		return err
	})
	if err != nil {
		return nil, err
	}
	sortRecentFirst(results)
	return results, nil
}

func sortRecentFirst(results []model.Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CompletedAt.After(results[j].CompletedAt)
	})
}
