package gittask

import "encoding/json"

// TaskAction is the closed set of mutation kinds recorded alongside each
// task commit. UnknownUpdate is the forward-compatibility fallback used when
// decoding an action tag this version doesn't recognize.
type TaskAction int

const (
	TaskCreate TaskAction = iota
	UpdateStatus
	SetProperty
	EditProperty
	DeleteProperty
	SearchReplaceProperty
	AddComment
	DeleteComment
	AddLabel
	UpdateLabel
	DeleteLabel
	UnknownUpdate
)

var actionNames = [...]string{
	"TaskCreate",
	"UpdateStatus",
	"SetProperty",
	"EditProperty",
	"DeleteProperty",
	"SearchReplaceProperty",
	"AddComment",
	"DeleteComment",
	"AddLabel",
	"UpdateLabel",
	"DeleteLabel",
	"UnknownUpdate",
}

func (a TaskAction) String() string {
	if int(a) < 0 || int(a) >= len(actionNames) {
		return "UnknownUpdate"
	}
	return actionNames[a]
}

// MarshalJSON writes the action as its tag name, e.g. "TaskCreate".
func (a TaskAction) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts any of the known tag names and maps everything else
// to UnknownUpdate rather than failing, per spec.md §3/§9.
func (a *TaskAction) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	for i, name := range actionNames {
		if name == tag {
			*a = TaskAction(i)
			return nil
		}
	}
	*a = UnknownUpdate
	return nil
}
