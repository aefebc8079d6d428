// internal/repository/postgres/assembler.go
package postgres

import (
	"github.com/jmoiron/sqlx"
)

// assembler collapses flat joined rows into deduplicated parent entities
// while preserving first-seen order. It is the single row-to-object routine
// shared by every multi-row join read in this package.
type assembler[K comparable, E any] struct {
	index map[K]*E
	keys  []K
}

func newAssembler[K comparable, E any]() *assembler[K, E] {
	return &assembler[K, E]{index: make(map[K]*E)}
}

// entity returns the in-progress entity for key, constructing it via build
// the first time the key appears.
func (a *assembler[K, E]) entity(key K, build func() *E) *E {
	if e, ok := a.index[key]; ok {
		return e
	}
	e := build()
	a.index[key] = e
	a.keys = append(a.keys, key)
	return e
}

// result returns the assembled entities in insertion order.
func (a *assembler[K, E]) result() []E {
	out := make([]E, 0, len(a.keys))
	for _, k := range a.keys {
		out = append(out, *a.index[k])
	}
	return out
}

// assembleRows drains a joined row stream into deduplicated entities.
// key extracts the parent identifier from a decoded row, build constructs the
// parent shell the first time its id appears, and attach folds the row's
// child columns into the parent. attach must treat a NULL child id as "this
// parent has no children" and contribute nothing for that row.
func assembleRows[R any, K comparable, E any](rows *sqlx.Rows, key func(R) K, build func(R) *E, attach func(*E, R)) ([]E, error) {
	a := newAssembler[K, E]()
	for rows.Next() {
		var row R
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		e := a.entity(key(row), func() *E { return build(row) })
		attach(e, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return a.result(), nil
}
