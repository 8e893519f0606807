package web

import (
	"io"
	"net/url"

	"git.sr.ht/~jakintosh/tasklist/internal/domain"
)

// TaskView is the view model for Task
type TaskView struct {
	ID           string
	Text         string
	Category     string
	Completed    bool
	Entering     bool // just added; drives the entry animation
	ToggleURL    string
	DeleteButton DeleteButtonView
}

// NewTaskView creates a TaskView from a domain Task
func NewTaskView(t domain.Task, entering bool) TaskView {
	base := "/tasks/" + url.PathEscape(t.ID)
	return TaskView{
		ID:        t.ID,
		Text:      t.Text,
		Category:  string(t.Category),
		Completed: t.Completed,
		Entering:  entering,
		ToggleURL: base + "/toggle",
		DeleteButton: DeleteButtonView{
			URL:         base,
			FallbackURL: base + "/delete",
			Label:       "Delete " + t.Text,
		},
	}
}

// ListView is the view model for the task list and its empty state
type ListView struct {
	Tasks        []TaskView
	Empty        bool
	EmptyMessage string
	Remaining    int
	OOB          bool
}

// NewListView builds the list, flagging tasks named by TaskAdded events
func NewListView(st domain.State, events []domain.Event, oob bool) ListView {
	entering := make(map[string]bool)
	for _, e := range events {
		if e.Kind == domain.TaskAdded {
			entering[e.TaskID] = true
		}
	}

	view := ListView{
		Empty:        st.Empty(),
		EmptyMessage: emptyMessage,
		Remaining:    st.Remaining(),
		OOB:          oob,
	}
	if len(st.Tasks) > 0 {
		view.Tasks = make([]TaskView, len(st.Tasks))
		for i, t := range st.Tasks {
			view.Tasks[i] = NewTaskView(t, entering[t.ID])
		}
	}
	return view
}

// RenderList renders the task list fragment
func (p *Presentation) RenderList(w io.Writer, view ListView) error {
	return p.tmpl.ExecuteTemplate(w, "task_list", view)
}
