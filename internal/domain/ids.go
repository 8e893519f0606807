package domain

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator hands out task ids that are unique for the session.
type IDGenerator interface {
	NewID() string
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// CounterGenerator issues "1", "2", ... in order.
type CounterGenerator struct {
	next atomic.Uint64
}

func (g *CounterGenerator) NewID() string {
	return strconv.FormatUint(g.next.Add(1), 10)
}

// AssignID fills in a fresh id on Add and Submit actions that carry none.
// Other actions are returned as is.
func AssignID(a Action, ids IDGenerator) Action {
	switch a := a.(type) {
	case Add:
		if a.ID == "" {
			a.ID = ids.NewID()
		}
		return a
	case Submit:
		if a.ID == "" {
			a.ID = ids.NewID()
		}
		return a
	}
	return a
}
