package memory

import "assessment_backend/internal/model"

func cloneUser(u *model.User) *model.User {
	c := *u
	c.Subjects = append([]model.SubjectRef(nil), u.Subjects...)
	return &c
}

func cloneSubject(s *model.Subject) *model.Subject {
	c := *s
	return &c
}

func cloneModule(m *model.Module) *model.Module {
	c := *m
	return &c
}

func cloneTest(t *model.Test) *model.Test {
	c := *t
	c.AssignedGrades = append([]string(nil), t.AssignedGrades...)
	c.Questions = make([]model.Question, len(t.Questions))
	for i, q := range t.Questions {
		q.Answers = append([]model.Answer(nil), q.Answers...)
		c.Questions[i] = q
	}
	return &c
}

func cloneClass(cl *model.Class) *model.Class {
	c := *cl
	c.Sections = append([]string(nil), cl.Sections...)
	return &c
}

func cloneResult(r *model.Result) *model.Result {
	c := *r
	c.QuestionResults = append([]model.QuestionResult(nil), r.QuestionResults...)
	return &c
}

func cloneProgress(p *model.Progress) *model.Progress {
	c := *p
	c.Answers = make(model.Selections, len(p.Answers))
	for k, v := range p.Answers {
		c.Answers[k] = v
	}
	return &c
}

func cloneControlTest(t *model.ControlTest) *model.ControlTest {
	c := *t
	c.AssignedClasses = append([]string(nil), t.AssignedClasses...)
	c.Questions = make([]model.Question, len(t.Questions))
	for i, q := range t.Questions {
		q.Answers = append([]model.Answer(nil), q.Answers...)
		c.Questions[i] = q
	}
	return &c
}

func cloneControlResult(r *model.ControlResult) *model.ControlResult {
	c := *r
	c.QuestionResults = append([]model.QuestionResult(nil), r.QuestionResults...)
	return &c
}
