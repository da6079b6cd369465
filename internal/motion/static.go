package motion

import "sync"

// Static is an Environment with fixed answers that can be flipped by hand.
type Static struct {
	mu      sync.Mutex
	queries map[string]*StaticQuery
	Touch   bool
}

// NewStatic returns an environment where the given queries match.
func NewStatic(touch bool, matching ...string) *Static {
	s := &Static{queries: map[string]*StaticQuery{}, Touch: touch}
	for _, q := range matching {
		s.query(q).matches = true
	}
	return s
}

func (s *Static) query(q string) *StaticQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queries == nil {
		s.queries = map[string]*StaticQuery{}
	}
	sq, ok := s.queries[q]
	if !ok {
		sq = &StaticQuery{listeners: map[int]func(bool){}}
		s.queries[q] = sq
	}
	return sq
}

// MatchMedia implements Environment.
func (s *Static) MatchMedia(q string) MediaQuery { return s.query(q) }

// TouchCapable implements Environment.
func (s *Static) TouchCapable() bool { return s.Touch }

// Set changes the result of q and notifies its listeners.
func (s *Static) Set(q string, matches bool) { s.query(q).set(matches) }

// Listeners returns how many listeners are attached to q.
func (s *Static) Listeners(q string) int {
	sq := s.query(q)
	sq.mu.Lock()
	defer sq.mu.Unlock()
	return len(sq.listeners)
}

// StaticQuery is the MediaQuery handed out by Static.
type StaticQuery struct {
	mu        sync.Mutex
	matches   bool
	listeners map[int]func(bool)
	next      int
}

// Matches implements MediaQuery.
func (q *StaticQuery) Matches() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.matches
}

// Listen implements MediaQuery.
func (q *StaticQuery) Listen(fn func(bool)) func() {
	q.mu.Lock()
	id := q.next
	q.next++
	q.listeners[id] = fn
	q.mu.Unlock()
	return func() {
		q.mu.Lock()
		delete(q.listeners, id)
		q.mu.Unlock()
	}
}

func (q *StaticQuery) set(v bool) {
	q.mu.Lock()
	if q.matches == v {
		q.mu.Unlock()
		return
	}
	q.matches = v
	fns := make([]func(bool), 0, len(q.listeners))
	for _, fn := range q.listeners {
		fns = append(fns, fn)
	}
	q.mu.Unlock()
	for _, fn := range fns {
		fn(v)
	}
}
