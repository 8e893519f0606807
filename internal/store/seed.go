package store

import (
	"fmt"

	"git.sr.ht/~jakintosh/tasklist/internal/domain"
)

// Seed fills st with a few sample tasks, one per category, and completes the
// first.
func Seed(st domain.Store) error {
	samples := []domain.Add{
		{Text: "Finish report", Category: domain.Work},
		{Text: "Buy groceries", Category: domain.Shopping},
		{Text: "Call mom", Category: domain.Personal},
		{Text: "Water the plants", Category: domain.General},
	}

	var first string
	for _, add := range samples {
		tr, err := st.Dispatch(add)
		if err != nil {
			return fmt.Errorf("seed %q: %w", add.Text, err)
		}
		if first == "" && len(tr.Next.Tasks) > 0 {
			first = tr.Next.Tasks[0].ID
		}
	}
	if first != "" {
		if _, err := st.Dispatch(domain.Toggle{ID: first}); err != nil {
			return fmt.Errorf("seed toggle: %w", err)
		}
	}
	return nil
}
