package domain

// Action is a single user intent applied to a State by Reduce.
type Action interface {
	action()
}

// SetDraft replaces the draft text exactly as typed.
type SetDraft struct {
	Text string
}

// SelectCategory changes the category new tasks are filed under.
type SelectCategory struct {
	Category Category
}

// Add appends a task built from Text and Category under ID.
type Add struct {
	ID       string
	Text     string
	Category Category
}

// Submit adds a task from the current draft and selected category.
type Submit struct {
	ID string
}

type Toggle struct {
	ID string
}

type Remove struct {
	ID string
}

func (SetDraft) action()       {}
func (SelectCategory) action() {}
func (Add) action()            {}
func (Submit) action()         {}
func (Toggle) action()         {}
func (Remove) action()         {}
