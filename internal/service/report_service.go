package service

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/repository"
	"assessment_backend/internal/util"
	"assessment_backend/pkg/logger"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClassExport points at an uploaded CSV of a class's results.
type ClassExport struct {
	URL         string    `json:"url"`
	Filename    string    `json:"filename"`
	Rows        int       `json:"rows"`
	GeneratedAt time.Time `json:"generatedAt"`
}

var exportHeader = []string{
	"student", "grade", "section", "test", "subject",
	"score", "correctCount", "totalCount", "timeTaken", "completedAt",
}

// csvCell quotes text that a spreadsheet would evaluate as a formula.
func csvCell(s string) string {
	if s != "" && strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}

type ReportService struct {
	Analytics *AnalyticsService
	Storage   *StorageService
	now       func() time.Time
}

func NewReportService(analytics *AnalyticsService, storage *StorageService) *ReportService {
	return &ReportService{Analytics: analytics, Storage: storage, now: time.Now}
}

// ExportClassResults writes every result of a class's students as CSV and
// uploads it. Access follows the class analytics rules; students are
// always refused.
func (s *ReportService) ExportClassResults(ctx context.Context, caller model.Caller, ref, section string) (*ClassExport, error) {
	if err := requireAuthor(caller); err != nil {
		return nil, err
	}

	var (
		buf  bytes.Buffer
		rows int
		name string
	)
	err := s.Analytics.Store.View(ctx, func(tx repository.Tx) error {
		scope, students, err := s.Analytics.classScope(tx, caller, ref, section)
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
		names := newSubjectNamer(subjects)
		byID := indexStudents(students)

		w := csv.NewWriter(&buf)
		if err := w.Write(exportHeader); err != nil {
			return err
		}
		for _, r := range byID.results(all) {
			u := byID[r.UserID]
			record := []string{
				csvCell(u.FullName()),
				csvCell(u.Grade),
				csvCell(u.GradeSection),
				csvCell(r.TestName),
				csvCell(names.name(r.SubjectID)),
				strconv.Itoa(r.Score),
				strconv.Itoa(r.CorrectCount),
				strconv.Itoa(r.TotalCount),
				strconv.Itoa(r.TimeTaken),
				r.CompletedAt.UTC().Format(time.RFC3339),
			}
			if err := w.Write(record); err != nil {
				return err
			}
			rows++
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
		name = fmt.Sprintf("exports/class-%s%s-%s.csv", scope.Grade, scope.Section, uuid.NewString())
		return nil
	})
	if err != nil {
		return nil, err
	}

	url, err := s.Storage.Upload(ctx, name, bytes.NewReader(buf.Bytes()), int64(buf.Len()), util.MimeCSV)
	if err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}
	logger.Log.Info("class results exported",
		zap.String("file", name),
		zap.Int("rows", rows),
		zap.String("by", caller.UserID))

	return &ClassExport{URL: url, Filename: name, Rows: rows, GeneratedAt: s.now().UTC()}, nil
}
