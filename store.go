package hanscan

import "sync"

// Store aggregates unique normalized literals per scope for one run.
// The first location recorded for a value wins and records are never removed.
// It is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	order   []string
	records map[string][]ExtractionRecord
	seen    map[string]map[string]struct{}
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		records: make(map[string][]ExtractionRecord),
		seen:    make(map[string]map[string]struct{}),
	}
}

// Record inserts value for scope unless it is already present.
// It reports whether a new record was created.
func (s *Store) Record(value string, loc SourceLocation, scope string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, ok := s.seen[scope]
	if !ok {
		values = make(map[string]struct{})
		s.seen[scope] = values
		s.order = append(s.order, scope)
	}
	if _, dup := values[value]; dup {
		return false
	}
	values[value] = struct{}{}
	s.records[scope] = append(s.records[scope], ExtractionRecord{Value: value, Location: loc})
	return true
}

// Drain returns the records of scope in first-insertion order.
// The store keeps its records; Drain may be called repeatedly.
func (s *Store) Drain(scope string) []ExtractionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.records[scope]
	out := make([]ExtractionRecord, len(records))
	copy(out, records)
	return out
}

// Len returns the number of records held for scope.
func (s *Store) Len(scope string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records[scope])
}

// Scopes returns the scopes in the order they were first recorded.
func (s *Store) Scopes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
