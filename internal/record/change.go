package record

import (
	"slices"

	"github.com/google/uuid"
)

// Op names a mutating operation on a Store.
type Op string

const (
	OpAdd    Op = "add"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	OpClear  Op = "clear"
)

// Change is delivered to subscribers after a mutation has been applied and
// persisted. Record is the zero value for OpDelete and OpClear.
type Change[T Record] struct {
	Op      Op
	ID      uuid.UUID
	Record  T
	Removed int
}

// Observer receives store lifecycle signals. The metrics package implements
// it; a nil Observer is ignored.
type Observer interface {
	Loaded(key string, n int)
	Mutated(key string, op Op, n int)
	PersistFailed(key string)
}

// Subscribe registers fn and returns a func that removes it. Calling the
// returned func more than once is harmless.
func (s *Store[T]) Subscribe(fn func(Change[T])) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store[T]) notify(c Change[T]) {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	fns := make([]func(Change[T]), 0, len(ids))
	// Deliver in subscription order.
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
}
