// Package task describes the work items boardfill turns into cards.
package task

import (
	"fmt"
	"strings"
)

// Task is a literal card definition. Tasks are values; Clone before handing
// one out so the catalog source stays untouched.
type Task struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Checklist   []string `yaml:"checklist,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
}

// Clone returns a deep copy of t.
func (t Task) Clone() Task {
	t.Checklist = append([]string(nil), t.Checklist...)
	t.Tags = append([]string(nil), t.Tags...)
	return t
}

// Validate reports whether t can be turned into a card.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("task name is required")
	}
	for i, item := range t.Checklist {
		if strings.TrimSpace(item) == "" {
			return fmt.Errorf("task %q: checklist item %d is empty", t.Name, i+1)
		}
	}
	for _, tag := range t.Tags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("task %q: empty tag", t.Name)
		}
	}
	return nil
}

// UniqueTags returns every tag used by tasks, in first-appearance order.
func UniqueTags(tasks []Task) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range tasks {
		for _, tag := range t.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}

// State is the lifecycle of a task within one run.
type State int

// Task states. Created and Failed are terminal.
const (
	StatePending State = iota
	StateCreating
	StateCreated
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateCreating:
		return "creating"
	case StateCreated:
		return "created"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further transition is allowed.
func (s State) Terminal() bool {
	return s == StateCreated || s == StateFailed
}

// Advance moves s to next, rejecting transitions the run loop never makes.
func (s State) Advance(next State) (State, error) {
	ok := false
	switch s {
	case StatePending:
		ok = next == StateCreating
	case StateCreating:
		ok = next == StateCreated || next == StateFailed
	}
	if !ok {
		return s, fmt.Errorf("invalid task transition %s -> %s", s, next)
	}
	return next, nil
}
