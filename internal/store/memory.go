package store

import (
	"sync"

	"git.sr.ht/~jakintosh/tasklist/internal/domain"
)

// InMemoryStore keeps the session state in process memory. The mutex only
// serialises dispatches arriving from concurrent shell goroutines; each
// dispatch is still a single synchronous reduce.
type InMemoryStore struct {
	mu    sync.RWMutex
	ids   domain.IDGenerator
	state domain.State
}

func NewInMemoryStore(ids domain.IDGenerator) *InMemoryStore {
	if ids == nil {
		ids = domain.UUIDGenerator{}
	}
	return &InMemoryStore{
		ids:   ids,
		state: domain.NewState(),
	}
}

func (s *InMemoryStore) State() (domain.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, nil
}

func (s *InMemoryStore) Dispatch(a domain.Action) (domain.Transition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tr := domain.Apply(s.state, domain.AssignID(a, s.ids))
	s.state = tr.Next
	return tr, nil
}
