// Package gittask defines the data model stored in the task reference: tasks,
// comments, labels, and the action log that records how each task changed.
package gittask

import (
	"fmt"
	"time"
)

const (
	propName        = "name"
	propDescription = "description"
	propStatus      = "status"
	propCreated     = "created"
	propAuthor      = "author"
)

// Task is a single tracked issue. Props carries arbitrary key/value state;
// name, description, status, and created are reserved keys within it.
// Comments and Labels are nil until the first one is added, matching the
// on-disk representation where an absent collection means "no entries" rather
// than "empty slice".
type Task struct {
	ID       string            `json:"id,omitempty"`
	Props    map[string]string `json:"props"`
	Comments []Comment         `json:"comments,omitempty"`
	Labels   []Label           `json:"labels,omitempty"`
}

// Comment is a free-text note attached to a Task, identified within that
// task by a decimal-string ID assigned at add time.
type Comment struct {
	ID    string            `json:"id,omitempty"`
	Props map[string]string `json:"props"`
	Text  string            `json:"text"`
}

// Label tags a Task. Name is the sole identity; color and description are
// optional presentation hints.
type Label struct {
	Name        string  `json:"name"`
	Color       *string `json:"color,omitempty"`
	Description *string `json:"description,omitempty"`
}

// NewTask constructs a Task with the reserved props populated. It returns an
// error if name or status is empty, matching the construction invariant in
// spec.md §3.
func NewTask(name, description, status, author string) (Task, error) {
	if name == "" || status == "" {
		return Task{}, fmt.Errorf("%w: name or status is empty", ErrEmptyTask)
	}
	props := map[string]string{
		propName:        name,
		propDescription: description,
		propStatus:      status,
		propCreated:      currentTimestamp(),
	}
	if author != "" {
		props[propAuthor] = author
	}
	return Task{Props: props}, nil
}

// TaskFromProperties builds a Task from a caller-supplied property map,
// assigning created if absent. It returns an error if name or status is
// empty or missing.
func TaskFromProperties(id string, props map[string]string) (Task, error) {
	name := props[propName]
	status := props[propStatus]
	if name == "" || status == "" {
		return Task{}, fmt.Errorf("%w: name or status is empty", ErrEmptyTask)
	}
	out := make(map[string]string, len(props)+1)
	for k, v := range props {
		out[k] = v
	}
	if _, ok := out[propCreated]; !ok {
		out[propCreated] = currentTimestamp()
	}
	return Task{ID: id, Props: out}, nil
}

// HasProperty reports whether prop is set on the task.
func (t *Task) HasProperty(prop string) bool {
	_, ok := t.Props[prop]
	return ok
}

// SetProperty sets prop to value, creating the property map if needed.
func (t *Task) SetProperty(prop, value string) {
	if t.Props == nil {
		t.Props = make(map[string]string)
	}
	t.Props[prop] = value
}

// DeleteProperty removes prop and reports whether it was present.
func (t *Task) DeleteProperty(prop string) bool {
	if _, ok := t.Props[prop]; !ok {
		return false
	}
	delete(t.Props, prop)
	return true
}

// AddComment appends a new comment, assigning an ID of len(comments)+1 when
// id is empty, and filling in created/author when not already present in
// props.
func (t *Task) AddComment(id string, props map[string]string, text, author string) Comment {
	if id == "" {
		id = fmt.Sprintf("%d", len(t.Comments)+1)
	}
	merged := make(map[string]string, len(props)+2)
	for k, v := range props {
		merged[k] = v
	}
	if _, ok := merged[propCreated]; !ok {
		merged[propCreated] = currentTimestamp()
	}
	if _, ok := merged[propAuthor]; !ok && author != "" {
		merged[propAuthor] = author
	}
	c := Comment{ID: id, Props: merged, Text: text}
	t.Comments = append(t.Comments, c)
	return c
}

// DeleteComment removes the comment with the given ID.
func (t *Task) DeleteComment(id string) error {
	for i, c := range t.Comments {
		if c.ID == id {
			t.Comments = append(t.Comments[:i], t.Comments[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: comment %s", ErrEntryNotFound, id)
}

// LabelByName finds a label by its name.
func (t *Task) LabelByName(name string) *Label {
	for i := range t.Labels {
		if t.Labels[i].Name == name {
			return &t.Labels[i]
		}
	}
	return nil
}

// AddLabel appends a new label.
func (t *Task) AddLabel(name string, color, description *string) Label {
	l := Label{Name: name, Color: color, Description: description}
	t.Labels = append(t.Labels, l)
	return l
}

// DeleteLabel removes the label with the given name.
func (t *Task) DeleteLabel(name string) error {
	for i, l := range t.Labels {
		if l.Name == name {
			t.Labels = append(t.Labels[:i], t.Labels[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: label %s", ErrEntryNotFound, name)
}

// GetColor returns the label's color, or "" if unset.
func (l Label) GetColor() string {
	if l.Color == nil {
		return ""
	}
	return *l.Color
}

func currentTimestamp() string {
	return fmt.Sprintf("%d", time.Now().Unix())
}
