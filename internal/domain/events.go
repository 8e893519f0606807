package domain

type EventKind string

const (
	TaskAdded       EventKind = "task-added"
	TaskToggled     EventKind = "task-toggled"
	TaskRemoved     EventKind = "task-removed"
	DraftChanged    EventKind = "draft-changed"
	CategoryChanged EventKind = "category-changed"
)

// Event describes one observable change between two states. TaskID is set
// for task events and empty otherwise.
type Event struct {
	Kind   EventKind
	TaskID string
}

// Transition is the result of dispatching one action.
type Transition struct {
	Prev   State
	Next   State
	Events []Event
}

// Diff lists what changed from prev to next. Removals come first, then
// toggles and additions in list order, then draft and category changes.
func Diff(prev, next State) []Event {
	var events []Event

	nextByID := make(map[string]Task, len(next.Tasks))
	for _, t := range next.Tasks {
		nextByID[t.ID] = t
	}
	prevByID := make(map[string]Task, len(prev.Tasks))
	for _, t := range prev.Tasks {
		prevByID[t.ID] = t
		if _, ok := nextByID[t.ID]; !ok {
			events = append(events, Event{Kind: TaskRemoved, TaskID: t.ID})
		}
	}

	for _, t := range next.Tasks {
		old, ok := prevByID[t.ID]
		switch {
		case !ok:
			events = append(events, Event{Kind: TaskAdded, TaskID: t.ID})
		case old.Completed != t.Completed:
			events = append(events, Event{Kind: TaskToggled, TaskID: t.ID})
		}
	}

	if prev.Draft != next.Draft {
		events = append(events, Event{Kind: DraftChanged})
	}
	if prev.Category != next.Category {
		events = append(events, Event{Kind: CategoryChanged})
	}
	return events
}

// Apply reduces a against prev and reports the resulting transition.
func Apply(prev State, a Action) Transition {
	next := Reduce(prev, a)
	return Transition{
		Prev:   prev,
		Next:   next,
		Events: Diff(prev, next),
	}
}

// Changed reports whether the transition altered anything.
func (t Transition) Changed() bool {
	return len(t.Events) > 0
}

func (t Transition) Has(kind EventKind) bool {
	for _, e := range t.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
