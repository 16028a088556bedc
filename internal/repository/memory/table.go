package memory

import "assessment_backend/internal/repository"

// table keeps rows in insertion order. Rows are replaced, never mutated in
// place, so a copy of the slice is a valid snapshot.
type table[T any] struct {
	rows  []*T
	clone func(*T) *T
}

func newTable[T any](clone func(*T) *T) *table[T] {
	return &table[T]{clone: clone}
}

func (t *table[T]) snapshot() []*T {
	return append([]*T(nil), t.rows...)
}

func (t *table[T]) restore(rows []*T) {
	t.rows = rows
}

func (t *table[T]) insert(v *T) {
	t.rows = append(t.rows, t.clone(v))
}

func (t *table[T]) find(pred func(*T) bool) (*T, error) {
	for _, row := range t.rows {
		if pred(row) {
			return t.clone(row), nil
		}
	}
	return nil, repository.ErrRecordNotFound
}

func (t *table[T]) filter(pred func(*T) bool) []T {
	out := make([]T, 0)
	for _, row := range t.rows {
		if pred == nil || pred(row) {
			out = append(out, *t.clone(row))
		}
	}
	return out
}

// replace swaps the first matching row for v and reports whether one matched.
func (t *table[T]) replace(pred func(*T) bool, v *T) bool {
	for i, row := range t.rows {
		if pred(row) {
			t.rows[i] = t.clone(v)
			return true
		}
	}
	return false
}

func (t *table[T]) remove(pred func(*T) bool) {
	kept := t.rows[:0:0]
	for _, row := range t.rows {
		if !pred(row) {
			kept = append(kept, row)
		}
	}
	t.rows = kept
}
