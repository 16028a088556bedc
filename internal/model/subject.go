package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// swagger:model Subject
type Subject struct {
	UUIDBase
	NameRu string `gorm:"size:255;not null" json:"nameRu"`
	NameUz string `gorm:"size:255" json:"nameUz"`
}

func (Subject) TableName() string {
	return "subjects"
}

// SubjectKey is the case-insensitive identity of a subject reference.
type SubjectKey string

func NormalizeSubjectKey(s string) SubjectKey {
	return SubjectKey(strings.ToLower(strings.TrimSpace(s)))
}

// Keys returns the id and display-name keys of the subject, skipping blanks.
func (s *Subject) Keys() []SubjectKey {
	keys := make([]SubjectKey, 0, 3)
	for _, v := range []string{s.ID, s.NameRu, s.NameUz} {
		if k := NormalizeSubjectKey(v); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// SubjectRef is a teacher's reference to a subject. Clients send either the
// bare id/name string or an object carrying an id and a display name.
type SubjectRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

func (r *SubjectRef) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*r = SubjectRef{ID: raw}
		return nil
	}

	var obj struct {
		ID        string `json:"id"`
		LegacyID  string `json:"_id"`
		SubjectID string `json:"subjectId"`
		NameRu    string `json:"nameRu"`
		NameUz    string `json:"nameUz"`
		Name      string `json:"name"`
		Label     string `json:"label"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("subject reference: %w", err)
	}
	*r = SubjectRef{
		ID:   firstNonEmpty(obj.ID, obj.LegacyID, obj.SubjectID),
		Name: firstNonEmpty(obj.NameRu, obj.NameUz, obj.Name, obj.Label),
	}
	return nil
}

func (r SubjectRef) Keys() []SubjectKey {
	keys := make([]SubjectKey, 0, 2)
	if k := NormalizeSubjectKey(r.ID); k != "" {
		keys = append(keys, k)
	}
	if k := NormalizeSubjectKey(r.Name); k != "" {
		keys = append(keys, k)
	}
	return keys
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
