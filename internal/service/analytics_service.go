package service

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/repository"
	"assessment_backend/internal/util"
	"assessment_backend/pkg/tracing"
	"context"
	"sort"

	"go.opentelemetry.io/otel/attribute"
)

const (
	recentCompletionsLimit = 10
	topStudentsLimit       = 5
)

// AnalyticsService computes read-only aggregates. Every method resolves
// access before it touches results, and runs against one store snapshot.
type AnalyticsService struct {
	Store  repository.Store
	Access *AccessResolver
}

func NewAnalyticsService(store repository.Store, access *AccessResolver) *AnalyticsService {
	return &AnalyticsService{Store: store, Access: access}
}

func studentsOf(tx repository.Tx, grade, section string) ([]model.User, error) {
	all, err := tx.Users().ListByRole(model.Student)
	if err != nil {
		return nil, err
	}
	out := make([]model.User, 0)
	for _, u := range all {
		if u.Grade == grade && (section == "" || u.GradeSection == section) {
			out = append(out, u)
		}
	}
	return out, nil
}

// classScope resolves and authorizes a class target and loads its students.
func (s *AnalyticsService) classScope(tx repository.Tx, caller model.Caller, ref, section string) (*ClassScope, []model.User, error) {
	scope, err := s.Access.ResolveClassScope(tx, ref, section)
	if err != nil {
		return nil, nil, err
	}
	ok, err := s.Access.CanAccessClass(tx, caller, scope.Class, section)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, util.ErrPermissionDenied
	}
	students, err := studentsOf(tx, scope.Grade, scope.Section)
	if err != nil {
		return nil, nil, err
	}
	if scope.Class == nil && len(students) == 0 {
		return nil, nil, util.ErrClassNotFound
	}
	return scope, students, nil
}

func (s *AnalyticsService) ClassStats(ctx context.Context, caller model.Caller, ref, section string) (*model.ClassStats, error) {
	ctx, span := tracing.Start(ctx, "analytics.ClassStats", caller.UserID, attribute.String("class.ref", ref))
	defer span.End()

	var stats *model.ClassStats
	err := s.Store.View(ctx, func(tx repository.Tx) error {
		_, students, err := s.classScope(tx, caller, ref, section)
		if err != nil {
			return err
		}
		all, err := tx.Results().List()
		if err != nil {
			return err
		}
		subjects, err := tx.Subjects().List()
		if err != nil {
			return err
		}

		results := indexStudents(students).results(all)
		stats = &model.ClassStats{
			AverageScore:  round1(meanScore(results)),
			TotalTests:    len(results),
			StudentsCount: len(students),
			SubjectStats:  SubjectStats(results, newSubjectNamer(subjects)),
			Distribution:  Distribute(results),
		}
		return nil
	})
	return stats, err
}

func (s *AnalyticsService) ClassTimeline(ctx context.Context, caller model.Caller, ref, section string) (*model.Timeline, error) {
	var timeline *model.Timeline
	err := s.Store.View(ctx, func(tx repository.Tx) error {
		scope, students, err := s.classScope(tx, caller, ref, section)
		if err != nil {
			return err
		}
		all, err := tx.Results().List()
		if err != nil {
			return err
		}
		subjects, err := tx.Subjects().List()
		if err != nil {
			return err
		}

		labels, series := BuildTimeline(indexStudents(students).results(all), newSubjectNamer(subjects))
		classID := ref
		if scope.Class != nil {
			classID = scope.Class.ID
		}
		timeline = &model.Timeline{
			Labels: labels,
			Series: series,
			Meta: map[string]any{
				"classId":    classID,
				"grade":      scope.Grade,
				"section":    optional(scope.Section),
				"classLabel": scope.Class.Label(),
			},
		}
		return nil
	})
	return timeline, err
}

// StudentTimeline is open to admins, to teachers of the student's class and
// to the student.
func (s *AnalyticsService) StudentTimeline(ctx context.Context, caller model.Caller, studentID string) (*model.Timeline, error) {
	var timeline *model.Timeline
	err := s.Store.View(ctx, func(tx repository.Tx) error {
		student, err := findUser(tx, studentID)
		if err != nil {
			return err
		}
		if student == nil || student.Role != model.Student {
			return util.ErrStudentNotFound
		}

		allowed := caller.Is(model.Admin) || caller.UserID == student.ID
		if !allowed && caller.Is(model.Teacher) {
			if allowed, err = s.Access.CanTeacherAccessStudent(tx, caller.UserID, student); err != nil {
				return err
			}
		}
		if !allowed {
			return util.ErrPermissionDenied
		}

		results, err := tx.Results().ListByUser(student.ID)
		if err != nil {
			return err
		}
		subjects, err := tx.Subjects().List()
		if err != nil {
			return err
		}
		labels, series := BuildTimeline(results, newSubjectNamer(subjects))
		timeline = &model.Timeline{
			Labels: labels,
			Series: series,
			Meta: map[string]any{
				"studentId":   student.ID,
				"studentName": student.FullName(),
				"grade":       student.Grade,
				"section":     optional(student.GradeSection),
			},
		}
		return nil
	})
	return timeline, err
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// authoredResults collects the modules, tests and results owned by a teacher.
type authoredResults struct {
	modules []model.Module
	tests   []model.Test
	results []model.Result
}

func loadAuthored(tx repository.Tx, teacherID string) (*authoredResults, error) {
	modules, err := tx.Modules().ListByCreator(teacherID)
	if err != nil {
		return nil, err
	}
	out := &authoredResults{modules: modules}
	testIDs := make(map[string]struct{})
	for _, m := range modules {
		tests, err := tx.Tests().ListByModule(m.ID)
		if err != nil {
			return nil, err
		}
		for _, t := range tests {
			testIDs[t.ID] = struct{}{}
			out.tests = append(out.tests, t)
		}
	}
	all, err := tx.Results().List()
	if err != nil {
		return nil, err
	}
	for _, r := range all {
		if _, ok := testIDs[r.TestID]; ok {
			out.results = append(out.results, r)
		}
	}
	return out, nil
}

// TeacherAnalytics summarizes results of the tests the calling teacher
// authored.
func (s *AnalyticsService) TeacherAnalytics(ctx context.Context, caller model.Caller) (*model.TeacherAnalytics, error) {
	if !caller.Is(model.Teacher) {
		return nil, util.ErrPermissionDenied
	}
	ctx, span := tracing.Start(ctx, "analytics.TeacherAnalytics", caller.UserID)
	defer span.End()

	var out *model.TeacherAnalytics
	err := s.Store.View(ctx, func(tx repository.Tx) error {
		teacher, err := findUser(tx, caller.UserID)
		if err != nil {
			return err
		}
		if teacher == nil {
			return util.ErrTeacherNotFound
		}
		authored, err := loadAuthored(tx, teacher.ID)
		if err != nil {
			return err
		}
		users, err := tx.Users().List()
		if err != nil {
			return err
		}
		students := indexStudents(users)
		classes, err := tx.Classes().List()
		if err != nil {
			return err
		}
		subjects, err := tx.Subjects().List()
		if err != nil {
			return err
		}

		out = &model.TeacherAnalytics{
			TotalModules:      len(authored.modules),
			TotalTests:        len(authored.tests),
			TotalCompletions:  len(authored.results),
			AverageScore:      roundInt(meanScore(authored.results)),
			StatsByClass:      statsByClass(classes, users, students, authored.results),
			StatsBySubject:    statsBySubject(authored, subjects),
			RecentCompletions: recentCompletions(authored, students, subjects),
			TopStudents:       topStudents(authored.results, students),
		}
		return nil
	})
	return out, err
}

func statsByClass(classes []model.Class, users []model.User, byID studentSet, results []model.Result) []model.ClassScoreStat {
	out := make([]model.ClassScoreStat, 0)
	seen := make(map[string]struct{})
	for _, c := range classes {
		if _, ok := seen[c.Grade]; ok {
			continue
		}
		seen[c.Grade] = struct{}{}

		count := 0
		for _, u := range users {
			if u.Role == model.Student && u.Grade == c.Grade {
				count++
			}
		}
		var graded []model.Result
		for _, r := range results {
			if u, ok := byID[r.UserID]; ok && u.Role == model.Student && u.Grade == c.Grade {
				graded = append(graded, r)
			}
		}
		out = append(out, model.ClassScoreStat{
			Grade:          c.Grade,
			StudentCount:   count,
			CompletedTests: len(graded),
			AverageScore:   roundInt(meanScore(graded)),
		})
	}
	return out
}

// statsBySubject groups authored modules by the Russian subject name.
func statsBySubject(authored *authoredResults, subjects []model.Subject) []model.SubjectScoreStat {
	byID := make(map[string]*model.Subject, len(subjects))
	for i := range subjects {
		byID[subjects[i].ID] = &subjects[i]
	}

	var order []string
	stats := make(map[string]*model.SubjectScoreStat)
	scores := make(map[string][]model.Result)
	for _, m := range authored.modules {
		subject, ok := byID[m.SubjectID]
		if !ok {
			continue
		}
		name := subject.NameRu
		stat, ok := stats[name]
		if !ok {
			stat = &model.SubjectScoreStat{Subject: name}
			stats[name] = stat
			order = append(order, name)
		}
		for _, t := range authored.tests {
			if t.ModuleID != m.ID {
				continue
			}
			stat.TestsCount++
			for _, r := range authored.results {
				if r.TestID == t.ID {
					scores[name] = append(scores[name], r)
				}
			}
		}
	}

	out := make([]model.SubjectScoreStat, 0, len(order))
	for _, name := range order {
		stat := stats[name]
		stat.CompletedCount = len(scores[name])
		stat.AverageScore = roundInt(meanScore(scores[name]))
		out = append(out, *stat)
	}
	return out
}

func recentCompletions(authored *authoredResults, students studentSet, subjects []model.Subject) []model.RecentCompletion {
	recent := append([]model.Result(nil), authored.results...)
	sortRecentFirst(recent)
	if len(recent) > recentCompletionsLimit {
		recent = recent[:recentCompletionsLimit]
	}

	tests := make(map[string]*model.Test, len(authored.tests))
	for i := range authored.tests {
		tests[authored.tests[i].ID] = &authored.tests[i]
	}
	modules := make(map[string]*model.Module, len(authored.modules))
	for i := range authored.modules {
		modules[authored.modules[i].ID] = &authored.modules[i]
	}
	names := newSubjectNamer(subjects)

	out := make([]model.RecentCompletion, 0, len(recent))
	for _, r := range recent {
		rc := model.RecentCompletion{
			StudentName:  "Unknown",
			StudentGrade: "N/A",
			TestName:     "Unknown",
			SubjectName:  "Unknown",
			Score:        r.Score,
			SubmittedAt:  r.CompletedAt,
		}
		if u, ok := students[r.UserID]; ok {
			rc.StudentName = u.FullName()
			rc.StudentGrade = u.Grade
		}
		if t, ok := tests[r.TestID]; ok {
			rc.TestName = t.NameRu
			if m, ok := modules[t.ModuleID]; ok {
				if name, ok := names[m.SubjectID]; ok {
					rc.SubjectName = name
				}
			}
		}
		out = append(out, rc)
	}
	return out
}

// topStudents ranks by average score; equal averages keep encounter order.
func topStudents(results []model.Result, students studentSet) []model.TopStudent {
	var order []string
	byUser := make(map[string][]model.Result)
	for _, r := range results {
		if _, ok := byUser[r.UserID]; !ok {
			order = append(order, r.UserID)
		}
		byUser[r.UserID] = append(byUser[r.UserID], r)
	}

	out := make([]model.TopStudent, 0, len(order))
	for _, id := range order {
		ts := model.TopStudent{
			Name:           "Unknown",
			Grade:          "N/A",
			AverageScore:   roundInt(meanScore(byUser[id])),
			TestsCompleted: len(byUser[id]),
		}
		if u, ok := students[id]; ok {
			ts.Name = u.FullName()
			ts.Grade = u.Grade
		}
		out = append(out, ts)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AverageScore > out[j].AverageScore })
	if len(out) > topStudentsLimit {
		out = out[:topStudentsLimit]
	}
	return out
}

// TeacherSubjectAnalytics is open to admins and to the teacher themself.
func (s *AnalyticsService) TeacherSubjectAnalytics(ctx context.Context, caller model.Caller, teacherID string) ([]model.TeacherSubjectStat, error) {
	if !caller.Is(model.Admin) && caller.UserID != teacherID {
		return nil, util.ErrPermissionDenied
	}
	out := make([]model.TeacherSubjectStat, 0)
	err := s.Store.View(ctx, func(tx repository.Tx) error {
		authored, err := loadAuthored(tx, teacherID)
		if err != nil {
			return err
		}
		subjects, err := tx.Subjects().List()
		if err != nil {
			return err
		}
		names := newSubjectNamer(subjects)
		order, groups := groupBySubject(authored.results)
		for _, id := range order {
			out = append(out, model.TeacherSubjectStat{
				SubjectID:      id,
				SubjectName:    names.name(id),
				AverageScore:   round1(meanScore(groups[id])),
				TestsCompleted: len(groups[id]),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AnalyticsService) loadTeacher(tx repository.Tx, caller model.Caller) (*model.User, error) {
	if !caller.Is(model.Teacher) {
		return nil, util.ErrPermissionDenied
	}
	teacher, err := findUser(tx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if teacher == nil {
		return nil, util.ErrTeacherNotFound
	}
	return teacher, nil
}

// ModuleDifficultyOptions lists the subjects, classes and grades a teacher
// can pick for ModuleDifficulty.
func (s *AnalyticsService) ModuleDifficultyOptions(ctx context.Context, caller model.Caller) (*model.ModuleDifficultyOptions, error) {
	var out *model.ModuleDifficultyOptions
	err := s.Store.View(ctx, func(tx repository.Tx) error {
		teacher, err := s.loadTeacher(tx, caller)
		if err != nil {
			return err
		}
		subjects, err := s.Access.ResolveTeacherSubjects(tx, teacher)
		if err != nil {
			return err
		}
		classes, err := tx.Classes().ListByTeacher(teacher.ID)
		if err != nil {
			return err
		}
		seen := make(map[string]struct{})
		grades := make([]string, 0)
		for _, c := range classes {
			if _, ok := seen[c.Grade]; c.Grade != "" && !ok {
				seen[c.Grade] = struct{}{}
				grades = append(grades, c.Grade)
			}
		}
		sort.Strings(grades)
		if classes == nil {
			classes = []model.Class{}
		}
		out = &model.ModuleDifficultyOptions{Subjects: subjects, Classes: classes, Grades: grades}
		return nil
	})
	return out, err
}

// sectionFilter is the union of sections a teacher's classes of one grade
// cover. any is set when one of them is unpinned.
type sectionFilter struct {
	any     bool
	allowed map[string]struct{}
}

func newSectionFilter(classes []model.Class) sectionFilter {
	f := sectionFilter{allowed: make(map[string]struct{})}
	for _, c := range classes {
		switch {
		case len(c.Sections) > 0:
			for _, sec := range c.Sections {
				f.allowed[sec] = struct{}{}
			}
		case c.Name != "":
			f.allowed[c.Name] = struct{}{}
		default:
			f.any = true
		}
	}
	return f
}

func (f sectionFilter) permits(section string) bool {
	if f.any || len(f.allowed) == 0 {
		return true
	}
	_, ok := f.allowed[section]
	return ok
}

// ModuleDifficulty reports per-module averages of one subject for the
// students of a grade, optionally narrowed to a section.
func (s *AnalyticsService) ModuleDifficulty(ctx context.Context, caller model.Caller, subjectID, grade, section string) (*model.ModuleDifficultyReport, error) {
	var out *model.ModuleDifficultyReport
	err := s.Store.View(ctx, func(tx repository.Tx) error {
		teacher, err := s.loadTeacher(tx, caller)
		if err != nil {
			return err
		}
		if subjectID == "" || grade == "" {
			return util.ErrSubjectGradeRequired
		}
		ok, err := s.Access.TeacherHasSubject(tx, teacher, subjectID)
		if err != nil {
			return err
		}
		if !ok {
			return util.ErrPermissionDenied
		}

		owned, err := tx.Classes().ListByTeacher(teacher.ID)
		if err != nil {
			return err
		}
		var gradeClasses []model.Class
		for _, c := range owned {
			if c.Grade == grade {
				gradeClasses = append(gradeClasses, c)
			}
		}
		if len(gradeClasses) == 0 {
			return util.ErrPermissionDenied
		}
		filter := newSectionFilter(gradeClasses)
		if section != "" && !filter.permits(section) {
			return util.ErrPermissionDenied
		}

		all, err := studentsOf(tx, grade, section)
		if err != nil {
			return err
		}
		students := make([]model.User, 0, len(all))
		for _, u := range all {
			if section != "" || filter.permits(u.GradeSection) {
				students = append(students, u)
			}
		}

		modules, err := tx.Modules().ListBySubject(subjectID)
		if err != nil {
			return err
		}
		results, err := tx.Results().List()
		if err != nil {
			return err
		}
		scoped := indexStudents(students).results(results)

		report := &model.ModuleDifficultyReport{
			SubjectID:    subjectID,
			Grade:        grade,
			Section:      optional(section),
			StudentCount: len(students),
			Modules:      make([]model.ModuleDifficulty, 0, len(modules)),
		}
		for _, m := range modules {
			md := model.ModuleDifficulty{ModuleID: m.ID, NameRu: m.NameRu, NameUz: m.NameUz}
			var attempts []model.Result
			distinct := make(map[string]struct{})
			for _, r := range scoped {
				if r.ModuleID == m.ID {
					attempts = append(attempts, r)
					distinct[r.UserID] = struct{}{}
				}
			}
			if len(attempts) > 0 {
				avg := round1(meanScore(attempts))
				md.AverageScore = &avg
				md.Attempts = len(attempts)
				md.StudentsCount = len(distinct)
			}
			report.Modules = append(report.Modules, md)
		}
		out = report
		return nil
	})
	return out, err
}

// CompareClasses returns one row per grade found among students.
func (s *AnalyticsService) CompareClasses(ctx context.Context, caller model.Caller) ([]model.ClassComparison, error) {
	if !caller.Is(model.Admin) {
		return nil, util.ErrPermissionDenied
	}
	out := make([]model.ClassComparison, 0)
	err := s.Store.View(ctx, func(tx repository.Tx) error {
		students, err := tx.Users().ListByRole(model.Student)
		if err != nil {
			return err
		}
		results, err := tx.Results().List()
		if err != nil {
			return err
		}

		byGrade := make(map[string][]model.User)
		var grades []string
		for _, u := range students {
			if u.Grade == "" {
				continue
			}
			if _, ok := byGrade[u.Grade]; !ok {
				grades = append(grades, u.Grade)
			}
			byGrade[u.Grade] = append(byGrade[u.Grade], u)
		}
		sort.Strings(grades)

		for _, g := range grades {
			graded := indexStudents(byGrade[g]).results(results)
			out = append(out, model.ClassComparison{
				Grade:          g,
				AverageScore:   round1(meanScore(graded)),
				StudentsCount:  len(byGrade[g]),
				TestsCompleted: len(graded),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
