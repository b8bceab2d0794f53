// Package gitrepo is the thin repository adapter described in spec.md §4.2:
// it exposes exactly the git primitives the task store consumes (discover,
// blob create, treebuilder, reference read/write, commit, signature, remote
// enumeration, config get/set) and nothing else. It is grounded on
// other_examples' go-git plumbing task store (a gitstore.Store built the same
// way: refs, blobs, and trees as a task database), since the teacher repo
// itself shells out to the git binary rather than linking a plumbing library.
package gitrepo

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/steveyegge/gittask/internal/gittask"
)

// Repository wraps a discovered git repository.
type Repository struct {
	repo *git.Repository
}

// Discover opens the repository that contains path, searching parent
// directories the way `git` itself does.
func Discover(path string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", gittask.ErrRepositoryNotFound, path, err)
	}
	return &Repository{repo: repo}, nil
}

// FindReference resolves name to its current target commit, or
// ErrReferenceAbsent if it doesn't exist.
func (r *Repository) FindReference(name string) (plumbing.Hash, error) {
	ref, err := r.repo.Reference(plumbing.ReferenceName(name), true)
	if err != nil {
		if err == plumbing.ErrReferenceNotFound {
			return plumbing.ZeroHash, fmt.Errorf("%w: %s", gittask.ErrReferenceAbsent, name)
		}
		return plumbing.ZeroHash, fmt.Errorf("find reference %s: %w", name, err)
	}
	return ref.Hash(), nil
}

// PeelToCommit resolves a commit-ish hash to its commit object.
func (r *Repository) PeelToCommit(h plumbing.Hash) (*object.Commit, error) {
	c, err := r.repo.CommitObject(h)
	if err != nil {
		return nil, fmt.Errorf("peel to commit %s: %w", h, err)
	}
	return c, nil
}

// PeelToTree resolves a commit-ish hash to its tree.
func (r *Repository) PeelToTree(h plumbing.Hash) (*Tree, error) {
	c, err := r.PeelToCommit(h)
	if err != nil {
		return nil, err
	}
	tree, err := c.Tree()
	if err != nil {
		return nil, fmt.Errorf("peel to tree %s: %w", h, err)
	}
	return &Tree{tree: tree}, nil
}

// FindBlob reads the content of the blob at oid.
func (r *Repository) FindBlob(oid plumbing.Hash) ([]byte, error) {
	blob, err := r.repo.BlobObject(oid)
	if err != nil {
		return nil, fmt.Errorf("find blob %s: %w", oid, err)
	}
	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("open blob %s: %w", oid, err)
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", oid, err)
	}
	return data, nil
}

// BlobCreate writes data as a new blob object and returns its hash.
func (r *Repository) BlobCreate(data []byte) (plumbing.Hash, error) {
	obj := r.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(data)))

	w, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("create blob writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return plumbing.ZeroHash, fmt.Errorf("write blob: %w", err)
	}
	if err := w.Close(); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("close blob writer: %w", err)
	}

	hash, err := r.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("store blob: %w", err)
	}
	return hash, nil
}

// Tree wraps a git tree object for read access.
type Tree struct {
	tree *object.Tree
}

// WrapTree adapts a tree object read directly off a commit (e.g. via
// object.Commit.Tree during history traversal) into a Tree for read access.
func WrapTree(tree *object.Tree) *Tree {
	return &Tree{tree: tree}
}

// GetName looks up an entry by exact name.
func (t *Tree) GetName(name string) (plumbing.Hash, bool) {
	for _, e := range t.tree.Entries {
		if e.Name == name {
			return e.Hash, true
		}
	}
	return plumbing.ZeroHash, false
}

// Walk calls fn for every entry in the tree, in lexicographic (tree-sorted)
// order. Returning an error from fn stops the walk and propagates the error.
func (t *Tree) Walk(fn func(name string, oid plumbing.Hash) error) error {
	for _, e := range t.tree.Entries {
		if err := fn(e.Name, e.Hash); err != nil {
			return err
		}
	}
	return nil
}

// TreeBuilder incrementally constructs a new flat tree (no subdirectories,
// which matches the task store's layout: every entry is a same-level blob).
type TreeBuilder struct {
	repo    *Repository
	entries map[string]plumbing.Hash
}

// TreeBuilder starts a new builder seeded from base, or empty if base is
// nil.
func (r *Repository) TreeBuilder(base *Tree) *TreeBuilder {
	tb := &TreeBuilder{repo: r, entries: make(map[string]plumbing.Hash)}
	if base != nil {
		for _, e := range base.tree.Entries {
			tb.entries[e.Name] = e.Hash
		}
	}
	return tb
}

// Insert adds or overwrites a blob entry.
func (tb *TreeBuilder) Insert(name string, oid plumbing.Hash) {
	tb.entries[name] = oid
}

// Remove deletes an entry if present; removing a missing entry is a no-op,
// matching go-git's treebuilder semantics used by the teacher's gitstore.
func (tb *TreeBuilder) Remove(name string) {
	delete(tb.entries, name)
}

// Clear empties the builder.
func (tb *TreeBuilder) Clear() {
	tb.entries = make(map[string]plumbing.Hash)
}

// Len reports the current entry count.
func (tb *TreeBuilder) Len() int {
	return len(tb.entries)
}

// Write encodes the accumulated entries as a tree object and returns its
// hash. Entries must be written in lexicographic order for the resulting
// tree hash to be stable across builders with the same contents.
func (tb *TreeBuilder) Write() (plumbing.Hash, error) {
	names := make([]string, 0, len(tb.entries))
	for name := range tb.entries {
		names = append(names, name)
	}
	sort.Strings(names)

	tree := &object.Tree{}
	for _, name := range names {
		tree.Entries = append(tree.Entries, object.TreeEntry{
			Name: name,
			Mode: filemode.Regular,
			Hash: tb.entries[name],
		})
	}

	obj := tb.repo.repo.Storer.NewEncodedObject()
	if err := tree.Encode(obj); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("encode tree: %w", err)
	}
	hash, err := tb.repo.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("store tree: %w", err)
	}
	return hash, nil
}

// Signature returns the committer identity the repository's config yields
// for new commits (name/email from user.name/user.email).
func (r *Repository) Signature() (object.Signature, error) {
	cfg, err := r.repo.Config()
	if err != nil {
		return object.Signature{}, fmt.Errorf("read signature: %w", err)
	}
	return object.Signature{
		Name:  cfg.User.Name,
		Email: cfg.User.Email,
		When:  time.Now(),
	}, nil
}

// Commit creates a new commit object, advances the reference named refName
// to point at it (creating the reference if it doesn't exist), and returns
// the new commit hash.
func (r *Repository) Commit(refName string, author, committer object.Signature, message string, tree plumbing.Hash, parents []plumbing.Hash) (plumbing.Hash, error) {
	commit := &object.Commit{
		Author:       author,
		Committer:    committer,
		Message:      message,
		TreeHash:     tree,
		ParentHashes: parents,
	}

	obj := r.repo.Storer.NewEncodedObject()
	if err := commit.Encode(obj); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("encode commit: %w", err)
	}
	hash, err := r.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("store commit: %w", err)
	}

	if err := r.SetReference(refName, hash, true, ""); err != nil {
		return plumbing.ZeroHash, err
	}
	return hash, nil
}

// SetReference points name at oid. reflogMsg is accepted for interface
// parity with libgit2-backed adapters but go-git's filesystem storer writes
// its own reflog entry; force is accepted for the same reason (go-git's
// SetReference always overwrites).
func (r *Repository) SetReference(name string, oid plumbing.Hash, force bool, reflogMsg string) error {
	_ = force
	_ = reflogMsg
	ref := plumbing.NewHashReference(plumbing.ReferenceName(name), oid)
	if err := r.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("set reference %s: %w", name, err)
	}
	return nil
}

// DeleteReference removes a reference.
func (r *Repository) DeleteReference(name string) error {
	if err := r.repo.Storer.RemoveReference(plumbing.ReferenceName(name)); err != nil {
		return fmt.Errorf("remove reference %s: %w", name, err)
	}
	return nil
}

// ConfigGetString reads a dotted config key, e.g. "task.ref", as
// section="task", option="ref".
func (r *Repository) ConfigGetString(key string) (string, error) {
	section, option, err := splitConfigKey(key)
	if err != nil {
		return "", err
	}
	cfg, err := r.repo.Config()
	if err != nil {
		return "", fmt.Errorf("read config: %w", err)
	}
	raw := cfg.Raw.Section(section)
	if !raw.HasOption(option) {
		return "", fmt.Errorf("config key %s not set", key)
	}
	return raw.Option(option), nil
}

// ConfigSetString writes a dotted config key.
func (r *Repository) ConfigSetString(key, value string) error {
	section, option, err := splitConfigKey(key)
	if err != nil {
		return err
	}
	cfg, err := r.repo.Config()
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	cfg.Raw.Section(section).SetOption(option, value)
	if err := r.repo.SetConfig(cfg); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func splitConfigKey(key string) (section, option string, err error) {
	for i := len(key) - 1; i >= 0; i-- {
		if key[i] == '.' {
			return key[:i], key[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("invalid config key %q: expected section.option", key)
}

// Remotes returns the configured remote names.
func (r *Repository) Remotes() ([]string, error) {
	remotes, err := r.repo.Remotes()
	if err != nil {
		return nil, fmt.Errorf("list remotes: %w", err)
	}
	names := make([]string, 0, len(remotes))
	for _, rm := range remotes {
		names = append(names, rm.Config().Name)
	}
	return names, nil
}

// CreateRemote configures a new remote with a single URL.
func (r *Repository) CreateRemote(name, url string) error {
	_, err := r.repo.CreateRemote(&gitconfig.RemoteConfig{Name: name, URLs: []string{url}})
	if err != nil {
		return fmt.Errorf("create remote %s: %w", name, err)
	}
	return nil
}

// FindRemoteURL returns the first configured URL for the named remote.
func (r *Repository) FindRemoteURL(name string) (string, error) {
	rm, err := r.repo.Remote(name)
	if err != nil {
		return "", fmt.Errorf("find remote %s: %w", name, err)
	}
	urls := rm.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL", name)
	}
	return urls[0], nil
}
