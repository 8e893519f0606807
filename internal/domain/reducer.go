package domain

// Reduce applies a to s and returns the next state. It never mutates s and
// never fails: invalid input (blank text, unknown category, unknown or
// duplicate id) leaves the state as it was.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetDraft:
		s.Draft = a.Text
		return s
	case SelectCategory:
		if a.Category.Valid() {
			s.Category = a.Category
		}
		return s
	case Submit:
		return add(s, a.ID, s.Draft, s.Category)
	case Add:
		return add(s, a.ID, a.Text, a.Category)
	case Toggle:
		i := s.index(a.ID)
		if i < 0 {
			return s
		}
		tasks := cloneTasks(s.Tasks)
		tasks[i].Completed = !tasks[i].Completed
		s.Tasks = tasks
		return s
	case Remove:
		i := s.index(a.ID)
		if i < 0 {
			return s
		}
		tasks := make([]Task, 0, len(s.Tasks)-1)
		tasks = append(tasks, s.Tasks[:i]...)
		tasks = append(tasks, s.Tasks[i+1:]...)
		s.Tasks = tasks
		return s
	}
	return s
}

func add(s State, id, text string, cat Category) State {
	if isBlank(text) || !cat.Valid() || id == "" || s.index(id) >= 0 {
		return s
	}
	tasks := make([]Task, len(s.Tasks), len(s.Tasks)+1)
	copy(tasks, s.Tasks)
	s.Tasks = append(tasks, Task{
		ID:       id,
		Text:     text,
		Category: cat,
	})
	s.Draft = ""
	return s
}

func cloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}
