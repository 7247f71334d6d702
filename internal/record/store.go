// Package record implements the collection engine shared by every entity
// store: an insertion-ordered list of records held in memory and rewritten
// wholesale to one key of a kv.Store after each mutation.
//
// Persistence problems never reach callers. A failed load starts the store
// empty, a failed save leaves the in-memory list authoritative until the next
// successful save. Both are logged and reported to the Observer.
package record

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/vbonduro/truckfest/internal/kv"
)

// ErrDuplicateIdentity is returned by Add when the store already holds a
// record with the same identity.
var ErrDuplicateIdentity = errors.New("duplicate record identity")

// Record is anything with a stable identity assigned at creation.
type Record interface {
	Identity() uuid.UUID
}

type options struct {
	logger   *slog.Logger
	observer Observer
	codec    Codec
}

// Option configures a Store.
type Option func(*options)

// WithLogger sets the logger; slog.Default is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithObserver reports loads, mutations and persistence failures to observer.
func WithObserver(observer Observer) Option {
	return func(o *options) { o.observer = observer }
}

// WithCodec replaces the default JSONCodec.
func WithCodec(codec Codec) Option {
	return func(o *options) { o.codec = codec }
}

// Store owns the collection for one entity type. Records are handed out by
// value; slice and map fields inside them are shared with the store and must
// not be modified in place.
type Store[T Record] struct {
	mu      sync.RWMutex
	records []T

	key      string
	backend  kv.Store
	codec    Codec
	logger   *slog.Logger
	observer Observer

	subMu   sync.Mutex
	subs    map[int]func(Change[T])
	nextSub int
}

// New builds a store over key and loads whatever was last persisted there.
func New[T Record](backend kv.Store, key string, opts ...Option) *Store[T] {
	o := options{codec: JSONCodec{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	s := &Store[T]{
		key:      key,
		backend:  backend,
		codec:    o.codec,
		logger:   o.logger.With("store", key),
		observer: o.observer,
		subs:     make(map[int]func(Change[T])),
	}
	s.records = s.load()
	if s.observer != nil {
		s.observer.Loaded(key, len(s.records))
	}
	return s
}

func (s *Store[T]) load() []T {
	data, err := s.backend.Get(s.key)
	if errors.Is(err, kv.ErrNotFound) {
		s.logger.Debug("no persisted records")
		return nil
	}
	if err != nil {
		s.logger.Warn("failed to read persisted records, starting empty", "error", err)
		return nil
	}

	var records []T
	if err := s.codec.Unmarshal(data, &records); err != nil {
		s.logger.Warn("failed to decode persisted records, starting empty", "error", err, "bytes", len(data))
		return nil
	}
	s.logger.Debug("loaded records", "count", len(records))
	return records
}

// persistLocked writes the full collection. Callers hold s.mu for writing.
func (s *Store[T]) persistLocked() {
	records := s.records
	if records == nil {
		records = []T{}
	}

	data, err := s.codec.Marshal(records)
	if err == nil {
		err = s.backend.Set(s.key, data)
	}
	if err != nil {
		s.logger.Error("failed to persist records", "error", err, "count", len(s.records))
		if s.observer != nil {
			s.observer.PersistFailed(s.key)
		}
	}
}

func (s *Store[T]) mutated(op Op, n int) {
	if s.observer != nil {
		s.observer.Mutated(s.key, op, n)
	}
}

// Key is the kv key this store owns.
func (s *Store[T]) Key() string {
	return s.key
}

// List returns the records in insertion order.
func (s *Store[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Get returns the first record with identity id.
func (s *Store[T]) Get(id uuid.UUID) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.records[i], true
	}
	var zero T
	return zero, false
}

// Filter returns, in store order, the records for which keep reports true.
func (s *Store[T]) Filter(keep func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0)
	for _, r := range s.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Add appends r and persists.
func (s *Store[T]) Add(r T) error {
	id := r.Identity()

	s.mu.Lock()
	if s.indexOf(id) >= 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrDuplicateIdentity, id)
	}
	s.records = append(s.records, r)
	s.persistLocked()
	n := len(s.records)
	s.mu.Unlock()

	s.mutated(OpAdd, n)
	s.notify(Change[T]{Op: OpAdd, ID: id, Record: r})
	return nil
}

// Update replaces the record sharing r's identity, keeping its position. It
// reports false and persists nothing when no such record exists.
func (s *Store[T]) Update(r T) bool {
	id := r.Identity()

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.records[i] = r
	s.persistLocked()
	n := len(s.records)
	s.mu.Unlock()

	s.mutated(OpUpdate, n)
	s.notify(Change[T]{Op: OpUpdate, ID: id, Record: r})
	return true
}

// Delete removes every record with identity id and persists, whether or not
// anything matched. It reports whether a record was removed.
func (s *Store[T]) Delete(id uuid.UUID) bool {
	s.mu.Lock()
	kept := s.records[:0]
	removed := 0
	for _, r := range s.records {
		if r.Identity() == id {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	// Zero the tail so removed records are not retained by the backing array.
	var zero T
	for i := len(kept); i < len(s.records); i++ {
		s.records[i] = zero
	}
	s.records = kept
	s.persistLocked()
	n := len(s.records)
	s.mu.Unlock()

	s.mutated(OpDelete, n)
	if removed > 0 {
		s.notify(Change[T]{Op: OpDelete, ID: id, Removed: removed})
	}
	return removed > 0
}

// Clear empties the store and persists.
func (s *Store[T]) Clear() {
	s.mu.Lock()
	removed := len(s.records)
	s.records = nil
	s.persistLocked()
	s.mu.Unlock()

	s.mutated(OpClear, 0)
	s.notify(Change[T]{Op: OpClear, Removed: removed})
}

func (s *Store[T]) indexOf(id uuid.UUID) int {
	for i, r := range s.records {
		if r.Identity() == id {
			return i
		}
	}
	return -1
}
