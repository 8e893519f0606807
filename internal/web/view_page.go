package web

import (
	"io"

	"git.sr.ht/~jakintosh/tasklist/internal/domain"
)

const (
	pageTitle    = "Todo List"
	placeholder  = "Add a new task"
	emptyMessage = "No tasks yet. Add your first task!"
)

// FormView is the view model for the draft input and category selector
type FormView struct {
	Draft       string
	Placeholder string
	Categories  []CategoryOptionView
	OOB         bool
}

func NewFormView(st domain.State, oob bool) FormView {
	return FormView{
		Draft:       st.Draft,
		Placeholder: placeholder,
		Categories:  NewCategoryOptionViews(st.Category),
		OOB:         oob,
	}
}

type PageView struct {
	Title string
	Form  FormView
	List  ListView
}

func NewPageView(st domain.State) PageView {
	return PageView{
		Title: pageTitle,
		Form:  NewFormView(st, false),
		List:  NewListView(st, nil, false),
	}
}

func (p *Presentation) RenderIndex(w io.Writer, view PageView) error {
	return p.tmpl.ExecuteTemplate(w, "layout.html", view)
}

// RenderForm renders the add-task form fragment
func (p *Presentation) RenderForm(w io.Writer, view FormView) error {
	return p.tmpl.ExecuteTemplate(w, "task_form", view)
}
