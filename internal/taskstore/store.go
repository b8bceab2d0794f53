// Package taskstore implements the task store described in spec.md §4.3: CRUD
// and history over tasks, owning the tree layout and commit semantics on the
// task reference. It is grounded on original_source/src/lib.rs's TaskContext,
// rebuilt atop the gitrepo adapter instead of libgit2.
package taskstore

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/steveyegge/gittask/internal/gitrepo"
	"github.com/steveyegge/gittask/internal/gittask"
)

// DefaultRefPath is the task reference used when task.ref isn't configured.
const DefaultRefPath = "refs/tasks/tasks"

// Store is a handle bound to a filesystem path. Every operation opens the
// enclosing repository, reads the task reference, and commits; nothing is
// cached across calls (spec.md §5).
type Store struct {
	path        string
	refOverride string
}

// New returns a store handle rooted at path. path need not be the
// repository root — discovery walks up to find the enclosing repository.
func New(path string) *Store {
	return &Store{path: path}
}

// UseRef overrides the task reference for this handle, bypassing task.ref
// git config entirely (the CLI's --ref flag). An empty ref clears the
// override and restores config-driven resolution.
func (s *Store) UseRef(ref string) {
	s.refOverride = ref
}

func (s *Store) open() (*gitrepo.Repository, error) {
	return gitrepo.Discover(s.path)
}

// refPath resolves the task reference in effect: refOverride if set,
// otherwise the configured task.ref, defaulting to DefaultRefPath.
func (s *Store) refPath(repo *gitrepo.Repository) string {
	if s.refOverride != "" {
		return s.refOverride
	}
	if v, err := repo.ConfigGetString("task.ref"); err == nil && v != "" {
		return v
	}
	return DefaultRefPath
}

func isTaskEntryName(name string) bool {
	_, err := strconv.ParseInt(name, 10, 64)
	return err == nil
}

// ListTasks walks the current task tree and returns every task payload,
// skipping action-<id> entries (§9: their payload is a TaskAction, not a
// Task).
func (s *Store) ListTasks() ([]gittask.Task, error) {
	repo, err := s.open()
	if err != nil {
		return nil, err
	}
	refName := s.refPath(repo)
	tip, err := repo.FindReference(refName)
	if err != nil {
		if errors.Is(err, gittask.ErrReferenceAbsent) {
			return nil, nil
		}
		return nil, err
	}
	tree, err := repo.PeelToTree(tip)
	if err != nil {
		return nil, err
	}

	var tasks []gittask.Task
	err = tree.Walk(func(name string, oid plumbing.Hash) error {
		if !isTaskEntryName(name) {
			return nil
		}
		data, err := repo.FindBlob(oid)
		if err != nil {
			return err
		}
		task, err := gittask.DecodeTask(data)
		if err != nil {
			return fmt.Errorf("task %s: %w", name, err)
		}
		tasks = append(tasks, task)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindTask looks up a single task by id. It returns (nil, nil) both when the
// task reference doesn't exist yet and when the id isn't present in the
// current tree.
func (s *Store) FindTask(id string) (*gittask.Task, error) {
	repo, err := s.open()
	if err != nil {
		return nil, err
	}
	tip, err := repo.FindReference(s.refPath(repo))
	if err != nil {
		if errors.Is(err, gittask.ErrReferenceAbsent) {
			return nil, nil
		}
		return nil, err
	}
	tree, err := repo.PeelToTree(tip)
	if err != nil {
		return nil, err
	}
	oid, ok := tree.GetName(id)
	if !ok {
		return nil, nil
	}
	data, err := repo.FindBlob(oid)
	if err != nil {
		return nil, err
	}
	task, err := gittask.DecodeTask(data)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", id, err)
	}
	return &task, nil
}

// nextID returns one plus the maximum integer-parsable entry name in the
// current tree, or "1" if the task reference doesn't exist.
func (s *Store) nextID(repo *gitrepo.Repository, refName string) (string, error) {
	tip, err := repo.FindReference(refName)
	if err != nil {
		if errors.Is(err, gittask.ErrReferenceAbsent) {
			return "1", nil
		}
		return "", err
	}
	tree, err := repo.PeelToTree(tip)
	if err != nil {
		return "", err
	}
	var max int64
	err = tree.Walk(func(name string, _ plumbing.Hash) error {
		if id, parseErr := strconv.ParseInt(name, 10, 64); parseErr == nil && id > max {
			max = id
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(max+1, 10), nil
}

// CreateTask assigns an id if task.ID is empty, writes the task blob and a
// TaskCreate action blob, and commits. If the task reference doesn't exist
// yet, this is a root commit that creates it.
func (s *Store) CreateTask(task gittask.Task) (gittask.Task, error) {
	repo, err := s.open()
	if err != nil {
		return gittask.Task{}, err
	}
	refName := s.refPath(repo)

	tip, tipErr := repo.FindReference(refName)
	var baseTree *gitrepo.Tree
	var parents []plumbing.Hash
	switch {
	case tipErr == nil:
		tree, err := repo.PeelToTree(tip)
		if err != nil {
			return gittask.Task{}, err
		}
		baseTree = tree
		parents = []plumbing.Hash{tip}
	case errors.Is(tipErr, gittask.ErrReferenceAbsent):
		// Root commit: no base tree, no parents.
	default:
		return gittask.Task{}, tipErr
	}

	if task.ID == "" {
		id, err := s.nextID(repo, refName)
		if err != nil {
			return gittask.Task{}, err
		}
		task.ID = id
	}

	taskData, err := gittask.EncodeTask(task)
	if err != nil {
		return gittask.Task{}, err
	}
	taskOid, err := repo.BlobCreate(taskData)
	if err != nil {
		return gittask.Task{}, err
	}

	actionData, err := gittask.EncodeAction(gittask.TaskCreate)
	if err != nil {
		return gittask.Task{}, err
	}
	actionOid, err := repo.BlobCreate(actionData)
	if err != nil {
		return gittask.Task{}, err
	}

	tb := repo.TreeBuilder(baseTree)
	tb.Insert(task.ID, taskOid)
	tb.Insert("action-"+task.ID, actionOid)
	treeHash, err := tb.Write()
	if err != nil {
		return gittask.Task{}, err
	}

	sig, err := repo.Signature()
	if err != nil {
		return gittask.Task{}, err
	}
	if _, err := repo.Commit(refName, sig, sig, fmt.Sprintf("Create task %s", task.ID), treeHash, parents); err != nil {
		return gittask.Task{}, err
	}
	return task, nil
}

// UpdateTask overwrites the task blob and, when action is non-nil, the
// action-<id> blob, then commits a single-parent update. It requires the
// task reference to already exist.
func (s *Store) UpdateTask(task gittask.Task, action *gittask.TaskAction) (string, error) {
	if task.ID == "" {
		return "", fmt.Errorf("%w: task id required to update", gittask.ErrEmptyTask)
	}
	repo, err := s.open()
	if err != nil {
		return "", err
	}
	refName := s.refPath(repo)
	tip, err := repo.FindReference(refName)
	if err != nil {
		return "", err
	}
	tree, err := repo.PeelToTree(tip)
	if err != nil {
		return "", err
	}

	data, err := gittask.EncodeTask(task)
	if err != nil {
		return "", err
	}
	oid, err := repo.BlobCreate(data)
	if err != nil {
		return "", err
	}

	tb := repo.TreeBuilder(tree)
	tb.Insert(task.ID, oid)
	if action != nil {
		actionData, err := gittask.EncodeAction(*action)
		if err != nil {
			return "", err
		}
		actionOid, err := repo.BlobCreate(actionData)
		if err != nil {
			return "", err
		}
		tb.Insert("action-"+task.ID, actionOid)
	}
	treeHash, err := tb.Write()
	if err != nil {
		return "", err
	}

	sig, err := repo.Signature()
	if err != nil {
		return "", err
	}
	if _, err := repo.Commit(refName, sig, sig, fmt.Sprintf("Update task %s", task.ID), treeHash, []plumbing.Hash{tip}); err != nil {
		return "", err
	}
	return task.ID, nil
}

// UpdateTaskID renames a task's id. It is implemented, faithfully to
// original_source, as create-then-delete: a TaskCreate action lands on the
// history of the new id and the old entry is removed in a second commit.
// See DESIGN.md for why this historical quirk is kept rather than introducing
// a dedicated rename action.
func (s *Store) UpdateTaskID(oldID, newID string) error {
	task, err := s.FindTask(oldID)
	if err != nil {
		return err
	}
	if task == nil {
		return fmt.Errorf("%w: task %s", gittask.ErrEntryNotFound, oldID)
	}
	task.ID = newID
	if _, err := s.CreateTask(*task); err != nil {
		return err
	}
	return s.DeleteTasks([]string{oldID})
}

// UpdateCommentID rewrites the id of one of a task's comments and persists
// the task with no explicit action (the prior action-<id> blob is preserved
// unchanged by the tree copy in UpdateTask).
func (s *Store) UpdateCommentID(taskID, oldID, newID string) error {
	task, err := s.FindTask(taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return fmt.Errorf("%w: task %s", gittask.ErrEntryNotFound, taskID)
	}
	for i := range task.Comments {
		if task.Comments[i].ID == oldID {
			task.Comments[i].ID = newID
		}
	}
	_, err = s.UpdateTask(*task, nil)
	return err
}

// DeleteTasks removes the given task entries (but not their action-<id>
// siblings — a legacy quirk from original_source, see §9) and commits with
// a message listing the ids sorted ascending numerically.
func (s *Store) DeleteTasks(ids []string) error {
	repo, err := s.open()
	if err != nil {
		return err
	}
	refName := s.refPath(repo)
	tip, err := repo.FindReference(refName)
	if err != nil {
		return err
	}
	tree, err := repo.PeelToTree(tip)
	if err != nil {
		return err
	}

	tb := repo.TreeBuilder(tree)
	nums := make([]int64, 0, len(ids))
	for _, id := range ids {
		tb.Remove(id)
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid task id %q: %w", id, err)
		}
		nums = append(nums, n)
	}
	treeHash, err := tb.Write()
	if err != nil {
		return err
	}

	sort.Slice(nums, func(i, j int) bool { return nums[i] < nums[j] })
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.FormatInt(n, 10)
	}
	message := "Delete task " + strings.Join(parts, ", ")

	sig, err := repo.Signature()
	if err != nil {
		return err
	}
	_, err = repo.Commit(refName, sig, sig, message, treeHash, []plumbing.Hash{tip})
	return err
}

// ClearTasks removes every task entry and returns the number of tasks that
// were present. The count divides the prior entry count by two because each
// task contributes two entries (task and action-task); this undercounts if
// an action-<id> sibling is already missing, matching original_source.
func (s *Store) ClearTasks() (int, error) {
	repo, err := s.open()
	if err != nil {
		return 0, err
	}
	refName := s.refPath(repo)
	tip, err := repo.FindReference(refName)
	if err != nil {
		return 0, err
	}
	tree, err := repo.PeelToTree(tip)
	if err != nil {
		return 0, err
	}

	tb := repo.TreeBuilder(tree)
	count := tb.Len() / 2
	tb.Clear()
	treeHash, err := tb.Write()
	if err != nil {
		return 0, err
	}

	sig, err := repo.Signature()
	if err != nil {
		return 0, err
	}
	if _, err := repo.Commit(refName, sig, sig, "Clear tasks", treeHash, []plumbing.Hash{tip}); err != nil {
		return 0, err
	}
	return count, nil
}

// GetTaskHistory walks up to 10 ancestors along the first-parent chain,
// collecting the action recorded for id at each commit (nil when that
// commit's tree has no action-<id> entry), and returns them oldest-first.
func (s *Store) GetTaskHistory(id string) ([]*gittask.TaskAction, error) {
	repo, err := s.open()
	if err != nil {
		return nil, err
	}
	tip, err := repo.FindReference(s.refPath(repo))
	if err != nil {
		return nil, err
	}
	commit, err := repo.PeelToCommit(tip)
	if err != nil {
		return nil, err
	}

	const maxAncestors = 10
	actionEntry := "action-" + id
	var actions []*gittask.TaskAction

	current := commit
	for i := 0; i < maxAncestors; i++ {
		tree, err := current.Tree()
		if err != nil {
			return nil, fmt.Errorf("read commit tree: %w", err)
		}
		wrapped := gitrepo.WrapTree(tree)
		if oid, ok := wrapped.GetName(actionEntry); ok {
			data, err := repo.FindBlob(oid)
			if err != nil {
				return nil, err
			}
			action, err := gittask.DecodeAction(data)
			if err != nil {
				return nil, err
			}
			actions = append(actions, &action)
		} else {
			actions = append(actions, nil)
		}

		if current.NumParents() == 0 {
			break
		}
		parent, err := current.Parent(0)
		if err != nil {
			return nil, fmt.Errorf("read parent commit: %w", err)
		}
		current = parent
	}

	for l, r := 0, len(actions)-1; l < r; l, r = l+1, r-1 {
		actions[l], actions[r] = actions[r], actions[l]
	}
	return actions, nil
}

// ListRemotes returns the URLs of configured remotes, optionally restricted
// to a single remote name.
func (s *Store) ListRemotes(filter string) ([]string, error) {
	repo, err := s.open()
	if err != nil {
		return nil, err
	}
	names, err := repo.Remotes()
	if err != nil {
		return nil, err
	}
	var urls []string
	for _, name := range names {
		if filter != "" && filter != name {
			continue
		}
		url, err := repo.FindRemoteURL(name)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// GetRefPath returns the task reference in effect: the UseRef override if
// set, otherwise the configured task.ref, defaulting to DefaultRefPath if
// discovery or the config lookup fails.
func (s *Store) GetRefPath() string {
	repo, err := s.open()
	if err != nil {
		return DefaultRefPath
	}
	return s.refPath(repo)
}

// SetRefPath migrates the task reference to refPath. If the current
// reference exists, a new reference is created pointing at the same commit
// before task.ref is updated; when moveRef is set, the old reference is then
// deleted.
func (s *Store) SetRefPath(refPath string, moveRef bool) error {
	repo, err := s.open()
	if err != nil {
		return err
	}
	current := s.refPath(repo)
	tip, tipErr := repo.FindReference(current)
	switch {
	case tipErr == nil:
		if err := repo.SetReference(refPath, tip, true, "task.ref migrated"); err != nil {
			return err
		}
	case errors.Is(tipErr, gittask.ErrReferenceAbsent):
		// Nothing to migrate yet.
	default:
		return tipErr
	}

	if err := repo.ConfigSetString("task.ref", refPath); err != nil {
		return err
	}

	if moveRef && tipErr == nil {
		if err := repo.DeleteReference(current); err != nil {
			return err
		}
	}
	return nil
}

// GetConfigValue is a thin pass-through to the repository config.
func (s *Store) GetConfigValue(key string) (string, error) {
	repo, err := s.open()
	if err != nil {
		return "", err
	}
	return repo.ConfigGetString(key)
}

// SetConfigValue is a thin pass-through to the repository config.
func (s *Store) SetConfigValue(key, value string) error {
	repo, err := s.open()
	if err != nil {
		return err
	}
	return repo.ConfigSetString(key, value)
}

// GetCurrentUser returns the signature's name, falling back to email, or
// ("", false, nil) if neither is set.
func (s *Store) GetCurrentUser() (string, bool, error) {
	repo, err := s.open()
	if err != nil {
		return "", false, err
	}
	sig, err := repo.Signature()
	if err != nil {
		return "", false, err
	}
	if sig.Name != "" {
		return sig.Name, true, nil
	}
	if sig.Email != "" {
		return sig.Email, true, nil
	}
	return "", false, nil
}
