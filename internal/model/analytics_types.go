package model

import "time"

type ScoreDistribution struct {
	Excellent    int `json:"excellent"`
	Good         int `json:"good"`
	Satisfactory int `json:"satisfactory"`
	Poor         int `json:"poor"`
}

func (d ScoreDistribution) Total() int {
	return d.Excellent + d.Good + d.Satisfactory + d.Poor
}

type SubjectStat struct {
	SubjectID  string  `json:"subjectId"`
	Subject    string  `json:"subject"`
	Average    float64 `json:"average"`
	TestsCount int     `json:"testsCount"`
}

type ClassStats struct {
	AverageScore  float64           `json:"averageScore"`
	TotalTests    int               `json:"totalTests"`
	StudentsCount int               `json:"studentsCount"`
	SubjectStats  []SubjectStat     `json:"subjectStats"`
	Distribution  ScoreDistribution `json:"distribution"`
}

type TimelineSeries struct {
	SubjectID   string     `json:"subjectId"`
	SubjectName string     `json:"subjectName"`
	Data        []*float64 `json:"data"`
}

type Timeline struct {
	Labels []string         `json:"labels"`
	Series []TimelineSeries `json:"series"`
	Meta   map[string]any   `json:"meta"`
}

type ClassScoreStat struct {
	Grade          string `json:"grade"`
	StudentCount   int    `json:"studentCount"`
	CompletedTests int    `json:"completedTests"`
	AverageScore   int    `json:"averageScore"`
}

type SubjectScoreStat struct {
	Subject        string `json:"subject"`
	TestsCount     int    `json:"testsCount"`
	CompletedCount int    `json:"completedCount"`
	AverageScore   int    `json:"averageScore"`
}

type RecentCompletion struct {
	StudentName  string    `json:"studentName"`
	StudentGrade string    `json:"studentGrade"`
	TestName     string    `json:"testName"`
	SubjectName  string    `json:"subjectName"`
	Score        int       `json:"score"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

type TopStudent struct {
	Name           string `json:"name"`
	Grade          string `json:"grade"`
	AverageScore   int    `json:"averageScore"`
	TestsCompleted int    `json:"testsCompleted"`
}

type TeacherAnalytics struct {
	TotalModules      int                `json:"totalModules"`
	TotalTests        int                `json:"totalTests"`
	TotalCompletions  int                `json:"totalCompletions"`
	AverageScore      int                `json:"averageScore"`
	StatsByClass      []ClassScoreStat   `json:"statsByClass"`
	StatsBySubject    []SubjectScoreStat `json:"statsBySubject"`
	RecentCompletions []RecentCompletion `json:"recentCompletions"`
	TopStudents       []TopStudent       `json:"topStudents"`
}

type TeacherSubjectStat struct {
	SubjectID      string  `json:"subjectId"`
	SubjectName    string  `json:"subjectName"`
	AverageScore   float64 `json:"averageScore"`
	TestsCompleted int     `json:"testsCompleted"`
}

type ModuleDifficulty struct {
	ModuleID      string   `json:"moduleId"`
	NameRu        string   `json:"nameRu"`
	NameUz        string   `json:"nameUz"`
	AverageScore  *float64 `json:"averageScore"`
	Attempts      int      `json:"attempts"`
	StudentsCount int      `json:"studentsCount"`
}

type ModuleDifficultyReport struct {
	SubjectID    string             `json:"subjectId"`
	Grade        string             `json:"grade"`
	Section      *string            `json:"section"`
	StudentCount int                `json:"studentCount"`
	Modules      []ModuleDifficulty `json:"modules"`
}

type ModuleDifficultyOptions struct {
	Subjects []Subject `json:"subjects"`
	Classes  []Class   `json:"classes"`
	Grades   []string  `json:"grades"`
}

type ClassComparison struct {
	Grade          string  `json:"grade"`
	AverageScore   float64 `json:"averageScore"`
	StudentsCount  int     `json:"studentsCount"`
	TestsCompleted int     `json:"testsCompleted"`
}
