package domain

import (
	"errors"
	"strings"
)

var ErrUnknownCategory = errors.New("unknown category")

// Category is one label from the closed set a task can be filed under.
type Category string

const (
	General  Category = "General"
	Work     Category = "Work"
	Personal Category = "Personal"
	Shopping Category = "Shopping"
)

const DefaultCategory = General

var categories = []Category{General, Work, Personal, Shopping}

// Categories returns the closed category set in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory matches s exactly against the category set.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", ErrUnknownCategory
	}
	return c, nil
}

type Task struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	Completed bool     `json:"completed"`
	Category  Category `json:"category"`
}

// State is everything a task list session holds: the ordered tasks plus the
// not-yet-submitted draft and the selected category.
type State struct {
	Tasks    []Task   `json:"tasks"`
	Draft    string   `json:"draft"`
	Category Category `json:"category"`
}

func NewState() State {
	return State{
		Tasks:    []Task{},
		Category: DefaultCategory,
	}
}

// Helper methods

func (s State) Empty() bool {
	return len(s.Tasks) == 0
}

func (s State) Find(id string) (Task, bool) {
	if i := s.index(id); i >= 0 {
		return s.Tasks[i], true
	}
	return Task{}, false
}

func (s State) index(id string) int {
	for i, t := range s.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Remaining counts tasks not yet completed.
func (s State) Remaining() int {
	n := 0
	for _, t := range s.Tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
