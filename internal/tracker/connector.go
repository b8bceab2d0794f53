// Package tracker defines the remote-connector contract every external
// issue-tracker adapter (github, gitlab, jira, redmine) satisfies, and the
// registry that matches remote URLs to adapters. It is grounded on the
// teacher's self-registering tracker.Register/init() pattern, generalized
// from the teacher's Dolt-backed IssueTracker interface to the narrower
// git-remote-matching contract this store requires.
package tracker

import "context"

// RemoteTaskStateKind selects which side of a tracker's open/closed split
// list_remote_tasks should fetch.
type RemoteTaskStateKind int

const (
	// All fetches every remote task regardless of state.
	All RemoteTaskStateKind = iota
	// Open fetches only tasks considered open on the remote.
	Open
	// Closed fetches only tasks considered closed on the remote.
	Closed
)

// RemoteTaskState filters list_remote_tasks by remote lifecycle state.
// OpenLabel/ClosedLabel carry the locally-configured status labels an
// adapter projects remote states onto; they are meaningless when Kind is
// All.
type RemoteTaskState struct {
	Kind        RemoteTaskStateKind
	OpenLabel   string
	ClosedLabel string
}

// RemoteTask is the adapter-agnostic shape of a task fetched from, or
// pushed to, an external tracker.
type RemoteTask struct {
	ID          string
	Title       string
	Description string
	State       string
	Labels      []string
	Comments    []RemoteComment
	URL         string
}

// RemoteComment is a single comment on a RemoteTask.
type RemoteComment struct {
	ID     string
	Author string
	Text   string
}

// ListOptions controls list_remote_tasks fan-out.
type ListOptions struct {
	State        RemoteTaskState
	WithComments bool
	WithLabels   bool
	MaxCount     int
	StatusLabels []string
}

// Connector is the contract every external-tracker adapter satisfies
// (spec.md §4.4). Implementations self-register via Register in an init
// function, the way the teacher's tracker adapters self-register into the
// teacher's own registry.
type Connector interface {
	// TypeName is the adapter's short tag, e.g. "github", "jira".
	TypeName() string

	// ConfigOptions lists adapter-contributed config keys the generic
	// config surface must accept (nil if the adapter needs none beyond
	// its own environment variables).
	ConfigOptions() []string

	// SupportsRemote pattern-matches a git remote URL. ok is false when
	// the URL doesn't belong to this adapter's kind of tracker.
	SupportsRemote(url string) (owner, repo string, ok bool)

	ListRemoteTasks(ctx context.Context, owner, repo string, opts ListOptions) ([]RemoteTask, error)
	GetRemoteTask(ctx context.Context, owner, repo, id string) (*RemoteTask, error)
	CreateRemoteTask(ctx context.Context, owner, repo string, task RemoteTask) (*RemoteTask, error)
	UpdateRemoteTask(ctx context.Context, owner, repo, id string, task RemoteTask) (*RemoteTask, error)
	DeleteRemoteTask(ctx context.Context, owner, repo, id string) error

	CreateRemoteComment(ctx context.Context, owner, repo, taskID string, comment RemoteComment) (*RemoteComment, error)
	UpdateRemoteComment(ctx context.Context, owner, repo, taskID, commentID, text string) error
	DeleteRemoteComment(ctx context.Context, owner, repo, taskID, commentID string) error

	CreateRemoteLabel(ctx context.Context, owner, repo, name, color string) error
	DeleteRemoteLabel(ctx context.Context, owner, repo, name string) error
}

// Factory constructs a fresh, unconfigured Connector instance.
type Factory func() Connector

var (
	registry = map[string]Factory{}
	order    []string
)

// Register adds a named adapter factory to the package-level registry. It
// is called from each adapter package's init function, mirroring the
// teacher's self-registering tracker adapters. Registration order is
// preserved so MatchingConnectors can iterate adapters deterministically.
func Register(typeName string, factory Factory) {
	if _, exists := registry[typeName]; !exists {
		order = append(order, typeName)
	}
	registry[typeName] = factory
}

// Get returns the factory registered under typeName, or nil if none is
// registered.
func Get(typeName string) Factory {
	return registry[typeName]
}

// TypeNames returns every registered adapter's type name in registration
// order.
func TypeNames() []string {
	names := make([]string, len(order))
	copy(names, order)
	return names
}
