package service

import (
	"assessment_backend/internal/config"
	"assessment_backend/internal/model"
	"assessment_backend/internal/util"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportService(t *testing.T, f *fixture) (*ReportService, string) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Storage.Type = util.StorageLocal
	cfg.Storage.LocalPath = t.TempDir()
	return NewReportService(f.analytics, NewStorageService(cfg)), cfg.Storage.LocalPath
}

func TestExportClassResultsNeutralizesFormulas(t *testing.T) {
	f := newFixture(t)
	f.seedCatalog(t, nil)
	s := student("s1", "8", "А")
	s.FirstName, s.LastName = `=HYPERLINK("http://x")`, ""
	f.addUsers(t, s, teacher("t1", model.SubjectRef{ID: "math"}))
	f.addClasses(t, &model.Class{UUIDBase: model.UUIDBase{ID: "c8"}, Grade: "8", TeacherID: "t1"})
	r := result("s1", "math", 80, day0)
	r.TestName = "+SUM(A1:A9)"
	f.addResults(t, r)

	reports, dir := newReportService(t, f)
	export, err := reports.ExportClassResults(f.ctx, model.Caller{UserID: "t1", Role: model.Teacher}, "8", "")
	require.NoError(t, err)
	assert.Equal(t, 1, export.Rows)

	file, err := os.Open(filepath.Join(dir, filepath.FromSlash(export.Filename)))
	require.NoError(t, err)
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, exportHeader, rows[0])
	assert.Equal(t, `'=HYPERLINK("http://x")`, rows[1][0])
	assert.Equal(t, "8", rows[1][1])
	assert.Equal(t, "'+SUM(A1:A9)", rows[1][3])
	assert.Equal(t, "Математика", rows[1][4])
	assert.Equal(t, "80", rows[1][5])
}

func TestExportClassResultsRefusesStudents(t *testing.T) {
	f := newFixture(t)
	s := student("s1", "8", "А")
	f.addUsers(t, s)

	reports, _ := newReportService(t, f)
	_, err := reports.ExportClassResults(f.ctx, caller(s), "8", "")
	assert.ErrorIs(t, err, util.ErrForbidden)
}

func TestCSVCell(t *testing.T) {
	cases := map[string]string{
		"":     "",
		"Aziz": "Aziz",
		"=1+1": "'=1+1",
		"+998": "'+998",
		"-5":   "'-5",
		"@cmd": "'@cmd",
		"\tx":  "'\tx",
		"8А":   "8А",
		"a=b":  "a=b",
	}
	for in, want := range cases {
		assert.Equal(t, want, csvCell(in), in)
	}
}
