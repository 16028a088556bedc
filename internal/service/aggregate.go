package service

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/util"
	"math"
	"sort"
)

// Score buckets: excellent >= 85, good [70,85), satisfactory [50,70), poor < 50.
const (
	excellentFrom    = 85
	goodFrom         = 70
	satisfactoryFrom = 50
)

func round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

func roundInt(x float64) int {
	return int(math.Floor(x + 0.5))
}

func scoreSum(results []model.Result) int {
	sum := 0
	for _, r := range results {
		sum += r.Score
	}
	return sum
}

// meanScore is 0 for an empty slice.
func meanScore(results []model.Result) float64 {
	if len(results) == 0 {
		return 0
	}
	return float64(scoreSum(results)) / float64(len(results))
}

func Distribute(results []model.Result) model.ScoreDistribution {
	var d model.ScoreDistribution
	for _, r := range results {
		switch {
		case r.Score >= excellentFrom:
			d.Excellent++
		case r.Score >= goodFrom:
			d.Good++
		case r.Score >= satisfactoryFrom:
			d.Satisfactory++
		default:
			d.Poor++
		}
	}
	return d
}

// subjectNamer resolves display names for subject ids.
type subjectNamer map[string]string

func newSubjectNamer(subjects []model.Subject) subjectNamer {
	names := make(subjectNamer, len(subjects))
	for _, s := range subjects {
		names[s.ID] = s.NameRu
	}
	return names
}

func (n subjectNamer) name(id string) string {
	if name, ok := n[id]; ok {
		return name
	}
	return "Subject " + id
}

// groupBySubject groups results in first-encounter order of their subject.
func groupBySubject(results []model.Result) ([]string, map[string][]model.Result) {
	var order []string
	groups := make(map[string][]model.Result)
	for _, r := range results {
		if _, ok := groups[r.SubjectID]; !ok {
			order = append(order, r.SubjectID)
		}
		groups[r.SubjectID] = append(groups[r.SubjectID], r)
	}
	return order, groups
}

func SubjectStats(results []model.Result, names subjectNamer) []model.SubjectStat {
	order, groups := groupBySubject(results)
	out := make([]model.SubjectStat, 0, len(order))
	for _, id := range order {
		out = append(out, model.SubjectStat{
			SubjectID:  id,
			Subject:    names.name(id),
			Average:    round1(meanScore(groups[id])),
			TestsCount: len(groups[id]),
		})
	}
	return out
}

func dateLabel(r model.Result) string {
	return r.CompletedAt.UTC().Format(util.DateFormat)
}

// BuildTimeline averages scores per subject and UTC date. A subject without
// results on a labelled date gets a nil point.
func BuildTimeline(results []model.Result, names subjectNamer) ([]string, []model.TimelineSeries) {
	seen := make(map[string]struct{})
	labels := make([]string, 0)
	for _, r := range results {
		d := dateLabel(r)
		if _, ok := seen[d]; !ok {
			seen[d] = struct{}{}
			labels = append(labels, d)
		}
	}
	sort.Strings(labels)

	order, groups := groupBySubject(results)
	series := make([]model.TimelineSeries, 0, len(order))
	for _, id := range order {
		byDate := make(map[string][]model.Result)
		for _, r := range groups[id] {
			byDate[dateLabel(r)] = append(byDate[dateLabel(r)], r)
		}
		data := make([]*float64, len(labels))
		for i, label := range labels {
			if bucket, ok := byDate[label]; ok {
				avg := round1(meanScore(bucket))
				data[i] = &avg
			}
		}
		series = append(series, model.TimelineSeries{SubjectID: id, SubjectName: names.name(id), Data: data})
	}
	return labels, series
}

// studentSet indexes users by id.
type studentSet map[string]*model.User

func indexStudents(students []model.User) studentSet {
	set := make(studentSet, len(students))
	for i := range students {
		set[students[i].ID] = &students[i]
	}
	return set
}

func (s studentSet) results(all []model.Result) []model.Result {
	out := make([]model.Result, 0)
	for _, r := range all {
		if _, ok := s[r.UserID]; ok {
			out = append(out, r)
		}
	}
	return out
}
