// Package github implements tracker.Connector for GitHub Issues, grounded
// on internal/github/client.go's REST client shape (bearer auth, JSON
// issue payloads) but rebuilt against the narrower Connector contract.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/steveyegge/gittask/internal/tracker"
	"github.com/steveyegge/gittask/internal/tracker/httpretry"
)

func init() {
	tracker.Register("github", func() tracker.Connector {
		return &Connector{}
	})
}

const defaultAPIEndpoint = "https://api.github.com"

// Connector implements tracker.Connector for GitHub. Credentials come from
// GITHUB_TOKEN, matching the teacher's environment-variable convention for
// tracker adapters.
type Connector struct {
	client  *httpretry.Client
	token   string
	baseURL string
}

func (c *Connector) TypeName() string { return "github" }

func (c *Connector) ConfigOptions() []string {
	return []string{"github.token"}
}

var remotePattern = regexp.MustCompile(`github\.com[:/]([^/]+)/([^/.]+?)(?:\.git)?/?$`)

// SupportsRemote recognizes github.com SSH and HTTPS remote URLs.
func (c *Connector) SupportsRemote(remote string) (owner, repo string, ok bool) {
	m := remotePattern.FindStringSubmatch(remote)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

func (c *Connector) ensureClient() error {
	if c.client != nil {
		return nil
	}
	c.token = os.Getenv("GITHUB_TOKEN")
	if c.token == "" {
		return fmt.Errorf("github: GITHUB_TOKEN not configured")
	}
	c.baseURL = defaultAPIEndpoint
	c.client = httpretry.New(30 * time.Second)
	return nil
}

func (c *Connector) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	var reader *strings.Reader
	if body != nil {
		reader = strings.NewReader(string(body))
	} else {
		reader = strings.NewReader("")
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("github: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

type ghIssue struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	State  string `json:"state"`
	Labels []struct {
		Name string `json:"name"`
	} `json:"labels"`
	HTMLURL string `json:"html_url"`
}

func (i ghIssue) toRemoteTask() tracker.RemoteTask {
	labels := make([]string, 0, len(i.Labels))
	for _, l := range i.Labels {
		labels = append(labels, l.Name)
	}
	return tracker.RemoteTask{
		ID:          strconv.Itoa(i.Number),
		Title:       i.Title,
		Description: i.Body,
		State:       i.State,
		Labels:      labels,
		URL:         i.HTMLURL,
	}
}

func (c *Connector) ListRemoteTasks(ctx context.Context, owner, repo string, opts tracker.ListOptions) ([]tracker.RemoteTask, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	state := "all"
	switch opts.State.Kind {
	case tracker.Open:
		state = "open"
	case tracker.Closed:
		state = "closed"
	}
	perPage := 100
	if opts.MaxCount > 0 && opts.MaxCount < perPage {
		perPage = opts.MaxCount
	}
	params := url.Values{"state": {state}, "per_page": {strconv.Itoa(perPage)}}
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/repos/%s/%s/issues?%s", owner, repo, params.Encode()), nil)
	if err != nil {
		return nil, err
	}
	data, _, err := c.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("github: list issues for %s/%s: %w", owner, repo, err)
	}
	var issues []ghIssue
	if err := unmarshalJSON(data, &issues); err != nil {
		return nil, fmt.Errorf("github: parse issues response: %w", err)
	}
	tasks := make([]tracker.RemoteTask, 0, len(issues))
	for _, issue := range issues {
		tasks = append(tasks, issue.toRemoteTask())
		if opts.MaxCount > 0 && len(tasks) >= opts.MaxCount {
			break
		}
	}
	return tasks, nil
}

func (c *Connector) GetRemoteTask(ctx context.Context, owner, repo, id string) (*tracker.RemoteTask, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/repos/%s/%s/issues/%s", owner, repo, id), nil)
	if err != nil {
		return nil, err
	}
	data, status, err := c.client.Do(ctx, req)
	if status == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("github: get issue %s/%s#%s: %w", owner, repo, id, err)
	}
	var issue ghIssue
	if err := unmarshalJSON(data, &issue); err != nil {
		return nil, fmt.Errorf("github: parse issue response: %w", err)
	}
	task := issue.toRemoteTask()
	return &task, nil
}

func (c *Connector) CreateRemoteTask(ctx context.Context, owner, repo string, task tracker.RemoteTask) (*tracker.RemoteTask, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	payload := map[string]interface{}{"title": task.Title, "body": task.Description, "labels": task.Labels}
	body, err := marshalJSON(payload)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/repos/%s/%s/issues", owner, repo), body)
	if err != nil {
		return nil, err
	}
	data, _, err := c.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("github: create issue on %s/%s: %w", owner, repo, err)
	}
	var issue ghIssue
	if err := unmarshalJSON(data, &issue); err != nil {
		return nil, fmt.Errorf("github: parse create response: %w", err)
	}
	created := issue.toRemoteTask()
	return &created, nil
}

func (c *Connector) UpdateRemoteTask(ctx context.Context, owner, repo, id string, task tracker.RemoteTask) (*tracker.RemoteTask, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	payload := map[string]interface{}{"title": task.Title, "body": task.Description}
	if task.State != "" {
		payload["state"] = task.State
	}
	body, err := marshalJSON(payload)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPatch, fmt.Sprintf("/repos/%s/%s/issues/%s", owner, repo, id), body)
	if err != nil {
		return nil, err
	}
	data, _, err := c.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("github: update issue %s/%s#%s: %w", owner, repo, id, err)
	}
	var issue ghIssue
	if err := unmarshalJSON(data, &issue); err != nil {
		return nil, fmt.Errorf("github: parse update response: %w", err)
	}
	updated := issue.toRemoteTask()
	return &updated, nil
}

// DeleteRemoteTask has no GitHub REST equivalent — issues can only be
// closed, never deleted, via the public API. Closing is the closest
// approximation.
func (c *Connector) DeleteRemoteTask(ctx context.Context, owner, repo, id string) error {
	if err := c.ensureClient(); err != nil {
		return err
	}
	body, err := marshalJSON(map[string]interface{}{"state": "closed"})
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPatch, fmt.Sprintf("/repos/%s/%s/issues/%s", owner, repo, id), body)
	if err != nil {
		return err
	}
	_, _, err = c.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("github: close issue %s/%s#%s: %w", owner, repo, id, err)
	}
	return nil
}

func (c *Connector) CreateRemoteComment(ctx context.Context, owner, repo, taskID string, comment tracker.RemoteComment) (*tracker.RemoteComment, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	body, err := marshalJSON(map[string]interface{}{"body": comment.Text})
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/repos/%s/%s/issues/%s/comments", owner, repo, taskID), body)
	if err != nil {
		return nil, err
	}
	data, _, err := c.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("github: add comment to %s/%s#%s: %w", owner, repo, taskID, err)
	}
	var created struct {
		ID int `json:"id"`
	}
	if err := unmarshalJSON(data, &created); err != nil {
		return nil, fmt.Errorf("github: parse comment response: %w", err)
	}
	comment.ID = strconv.Itoa(created.ID)
	return &comment, nil
}

func (c *Connector) UpdateRemoteComment(ctx context.Context, owner, repo, _, commentID, text string) error {
	if err := c.ensureClient(); err != nil {
		return err
	}
	body, err := marshalJSON(map[string]interface{}{"body": text})
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPatch, fmt.Sprintf("/repos/%s/%s/issues/comments/%s", owner, repo, commentID), body)
	if err != nil {
		return err
	}
	_, _, err = c.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("github: update comment %s on %s/%s: %w", commentID, owner, repo, err)
	}
	return nil
}

func (c *Connector) DeleteRemoteComment(ctx context.Context, owner, repo, _, commentID string) error {
	if err := c.ensureClient(); err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/repos/%s/%s/issues/comments/%s", owner, repo, commentID), nil)
	if err != nil {
		return err
	}
	_, _, err = c.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("github: delete comment %s on %s/%s: %w", commentID, owner, repo, err)
	}
	return nil
}

func (c *Connector) CreateRemoteLabel(ctx context.Context, owner, repo, name, color string) error {
	if err := c.ensureClient(); err != nil {
		return err
	}
	body, err := marshalJSON(map[string]interface{}{"name": name, "color": strings.TrimPrefix(color, "#")})
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/repos/%s/%s/labels", owner, repo), body)
	if err != nil {
		return err
	}
	_, _, err = c.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("github: create label %s on %s/%s: %w", name, owner, repo, err)
	}
	return nil
}

func (c *Connector) DeleteRemoteLabel(ctx context.Context, owner, repo, name string) error {
	if err := c.ensureClient(); err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/repos/%s/%s/labels/%s", owner, repo, url.PathEscape(name)), nil)
	if err != nil {
		return err
	}
	_, _, err = c.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("github: delete label %s on %s/%s: %w", name, owner, repo, err)
	}
	return nil
}
