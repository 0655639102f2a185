// Package reconcile turns a grid of pending edits into a save plan:
// one insert batch plus per-id updates. The daily pointing sheet and
// the agent/project grids all stage their rows through the same Set.
package reconcile

type Kind int

const (
	// New is a row that only exists client-side, keyed by a temporary id.
	New Kind = iota
	// Existing is a persisted row keyed by its id, carrying changed fields.
	Existing
)

type row[T any] struct {
	kind   Kind
	key    string
	fields T
}

// Update is one pending UPDATE call for a persisted row.
type Update[T any] struct {
	ID     string
	Fields T
}

// Plan is the partition of a Set for one save pass. Inserts are meant
// to go out as a single batch call, Updates one call per id in order.
type Plan[T any] struct {
	Inserts []T
	Updates []Update[T]
	// Skipped counts new rows dropped for missing required fields.
	Skipped int
}

// Set is an insertion-ordered collection of pending rows. Staging the
// same key again replaces the fields but keeps the original position,
// so each id appears at most once in the resulting plan.
type Set[T any] struct {
	order []string
	rows  map[string]row[T]
}

func NewSet[T any]() *Set[T] {
	return &Set[T]{rows: make(map[string]row[T])}
}

// StageNew records a client-generated row under its temporary key.
func (s *Set[T]) StageNew(tempID string, fields T) {
	s.stage(row[T]{kind: New, key: tempID, fields: fields})
}

// StageEdit records changed fields for a persisted row id.
func (s *Set[T]) StageEdit(id string, fields T) {
	s.stage(row[T]{kind: Existing, key: id, fields: fields})
}

func (s *Set[T]) stage(r row[T]) {
	if _, seen := s.rows[r.key]; !seen {
		s.order = append(s.order, r.key)
	}
	s.rows[r.key] = r
}

func (s *Set[T]) Len() int { return len(s.order) }

// Partition splits the staged rows into the save plan.
//
// A new row makes the insert batch only when insertable reports its
// required fields as filled; otherwise it is silently dropped and
// counted in Skipped. An edited row makes the update list only when
// changed reports a non-empty field set (no-op edits issue no call).
func (s *Set[T]) Partition(insertable func(T) bool, changed func(T) bool) Plan[T] {
	var p Plan[T]
	for _, key := range s.order {
		r := s.rows[key]
		switch r.kind {
		case New:
			if insertable(r.fields) {
				p.Inserts = append(p.Inserts, r.fields)
			} else {
				p.Skipped++
			}
		case Existing:
			if changed(r.fields) {
				p.Updates = append(p.Updates, Update[T]{ID: r.key, Fields: r.fields})
			}
		}
	}
	return p
}
