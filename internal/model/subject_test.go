package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectRefAcceptsStringsAndObjects(t *testing.T) {
	var refs []SubjectRef
	raw := `["math", {"_id": "phys", "nameRu": "Физика"}, {"subjectId": "chem", "label": "Химия"}, {"name": "Биология"}]`
	require.NoError(t, json.Unmarshal([]byte(raw), &refs))

	assert.Equal(t, []SubjectRef{
		{ID: "math"},
		{ID: "phys", Name: "Физика"},
		{ID: "chem", Name: "Химия"},
		{Name: "Биология"},
	}, refs)
	assert.Equal(t, []SubjectKey{"phys", "физика"}, refs[1].Keys())
}

func TestSubjectRefRejectsGarbage(t *testing.T) {
	var ref SubjectRef
	assert.Error(t, json.Unmarshal([]byte(`42`), &ref))
}

func TestSubjectKeysSkipBlanks(t *testing.T) {
	s := Subject{UUIDBase: UUIDBase{ID: "Math"}, NameRu: " Математика "}
	assert.Equal(t, []SubjectKey{"math", "математика"}, s.Keys())
}
