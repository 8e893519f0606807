package web

import "git.sr.ht/~jakintosh/tasklist/internal/domain"

// CategoryOptionView is one entry of the category selector
type CategoryOptionView struct {
	Name     string
	Selected bool
}

// NewCategoryOptionViews lists the category set with selected marked
func NewCategoryOptionViews(selected domain.Category) []CategoryOptionView {
	cats := domain.Categories()
	views := make([]CategoryOptionView, len(cats))
	for i, c := range cats {
		views[i] = CategoryOptionView{
			Name:     string(c),
			Selected: c == selected,
		}
	}
	return views
}
