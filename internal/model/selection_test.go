package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionsDropSkippedQuestions(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want Selections
	}{
		{"object", `{"0":2,"3":1}`, Selections{0: 2, 3: 1}},
		{"object with null", `{"0":null,"1":1}`, Selections{1: 1}},
		{"array", `[1,null,2]`, Selections{0: 1, 2: 2}},
		{"empty array", `[]`, Selections{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got Selections
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &got))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSelectionsNullAndGarbage(t *testing.T) {
	var got Selections
	require.NoError(t, json.Unmarshal([]byte(`null`), &got))
	assert.Nil(t, got)

	assert.Error(t, json.Unmarshal([]byte(`"x"`), &got))
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &got))
}

func TestSelectionsInsideStruct(t *testing.T) {
	var body struct {
		Answers Selections `json:"answers"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"answers":{"0":null,"1":1}}`), &body))
	_, answered := body.Answers[0]
	assert.False(t, answered)
	assert.Equal(t, 1, body.Answers[1])

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"answers":{"1":1}}`, string(raw))
}
