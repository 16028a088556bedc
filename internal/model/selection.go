package model

import (
	"bytes"
	"encoding/json"
)

// Selections maps a canonical question index to the chosen answer index.
// Clients send either an object keyed by question index or an array
// indexed by question; null entries mean the question was skipped and are
// dropped.
type Selections map[int]int

func (s *Selections) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}

	out := Selections{}
	if len(data) > 0 && data[0] == '[' {
		var list []*int
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		for i, v := range list {
			if v != nil {
				out[i] = *v
			}
		}
		*s = out
		return nil
	}

	var keyed map[int]*int
	if err := json.Unmarshal(data, &keyed); err != nil {
		return err
	}
	for k, v := range keyed {
		if v != nil {
			out[k] = *v
		}
	}
	*s = out
	return nil
}
