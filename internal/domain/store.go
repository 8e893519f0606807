package domain

// Store owns one session's State and applies actions to it. Errors come only
// from the backing storage; the actions themselves always succeed.
type Store interface {
	State() (State, error)
	Dispatch(a Action) (Transition, error)
}
