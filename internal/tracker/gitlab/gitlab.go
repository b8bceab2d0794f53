// Package gitlab implements tracker.Connector for GitLab Issues, grounded
// on internal/gitlab/tracker.go's token/base-URL configuration conventions
// but rebuilt against the narrower Connector contract.
package gitlab

import (
	"context"
	"encoding/json"
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
	tracker.Register("gitlab", func() tracker.Connector {
		return &Connector{}
	})
}

const defaultBaseURL = "https://gitlab.com"

// Connector implements tracker.Connector for GitLab.
type Connector struct {
	client  *httpretry.Client
	token   string
	baseURL string
}

func (c *Connector) TypeName() string { return "gitlab" }

func (c *Connector) ConfigOptions() []string {
	return []string{"gitlab.url", "gitlab.token"}
}

var remotePattern = regexp.MustCompile(`gitlab\.com[:/]([^/]+)/([^/.]+?)(?:\.git)?/?$`)

// SupportsRemote recognizes gitlab.com SSH and HTTPS remote URLs.
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
	c.token = os.Getenv("GITLAB_TOKEN")
	if c.token == "" {
		return fmt.Errorf("gitlab: GITLAB_TOKEN not configured")
	}
	c.baseURL = os.Getenv("GITLAB_URL")
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	c.baseURL = strings.TrimSuffix(c.baseURL, "/")
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
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api/v4"+path, reader)
	if err != nil {
		return nil, fmt.Errorf("gitlab: build request: %w", err)
	}
	req.Header.Set("PRIVATE-TOKEN", c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func projectPath(owner, repo string) string {
	return url.PathEscape(owner + "/" + repo)
}

type glIssue struct {
	IID         int      `json:"iid"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	State       string   `json:"state"`
	Labels      []string `json:"labels"`
	WebURL      string   `json:"web_url"`
}

func (i glIssue) toRemoteTask() tracker.RemoteTask {
	return tracker.RemoteTask{
		ID:          strconv.Itoa(i.IID),
		Title:       i.Title,
		Description: i.Description,
		State:       i.State,
		Labels:      i.Labels,
		URL:         i.WebURL,
	}
}

func (c *Connector) ListRemoteTasks(ctx context.Context, owner, repo string, opts tracker.ListOptions) ([]tracker.RemoteTask, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	state := "all"
	switch opts.State.Kind {
	case tracker.Open:
		state = "opened"
	case tracker.Closed:
		state = "closed"
	}
	perPage := 100
	if opts.MaxCount > 0 && opts.MaxCount < perPage {
		perPage = opts.MaxCount
	}
	params := url.Values{"state": {state}, "per_page": {strconv.Itoa(perPage)}}
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/projects/%s/issues?%s", projectPath(owner, repo), params.Encode()), nil)
	if err != nil {
		return nil, err
	}
	data, _, err := c.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("gitlab: list issues for %s/%s: %w", owner, repo, err)
	}
	var issues []glIssue
	if err := json.Unmarshal(data, &issues); err != nil {
		return nil, fmt.Errorf("gitlab: parse issues response: %w", err)
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
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/projects/%s/issues/%s", projectPath(owner, repo), id), nil)
	if err != nil {
		return nil, err
	}
	data, status, err := c.client.Do(ctx, req)
	if status == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("gitlab: get issue %s/%s!%s: %w", owner, repo, id, err)
	}
	var issue glIssue
	if err := json.Unmarshal(data, &issue); err != nil {
		return nil, fmt.Errorf("gitlab: parse issue response: %w", err)
	}
	task := issue.toRemoteTask()
	return &task, nil
}

func (c *Connector) CreateRemoteTask(ctx context.Context, owner, repo string, task tracker.RemoteTask) (*tracker.RemoteTask, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	payload := map[string]interface{}{"title": task.Title, "description": task.Description, "labels": strings.Join(task.Labels, ",")}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/projects/%s/issues", projectPath(owner, repo)), body)
	if err != nil {
		return nil, err
	}
	data, _, err := c.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("gitlab: create issue on %s/%s: %w", owner, repo, err)
	}
	var issue glIssue
	if err := json.Unmarshal(data, &issue); err != nil {
		return nil, fmt.Errorf("gitlab: parse create response: %w", err)
	}
	created := issue.toRemoteTask()
	return &created, nil
}

func (c *Connector) UpdateRemoteTask(ctx context.Context, owner, repo, id string, task tracker.RemoteTask) (*tracker.RemoteTask, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	payload := map[string]interface{}{"title": task.Title, "description": task.Description}
	if task.State == "closed" {
		payload["state_event"] = "close"
	} else if task.State == "opened" {
		payload["state_event"] = "reopen"
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/projects/%s/issues/%s", projectPath(owner, repo), id), body)
	if err != nil {
		return nil, err
	}
	data, _, err := c.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("gitlab: update issue %s/%s!%s: %w", owner, repo, id, err)
	}
	var issue glIssue
	if err := json.Unmarshal(data, &issue); err != nil {
		return nil, fmt.Errorf("gitlab: parse update response: %w", err)
	}
	updated := issue.toRemoteTask()
	return &updated, nil
}

func (c *Connector) DeleteRemoteTask(ctx context.Context, owner, repo, id string) error {
	if err := c.ensureClient(); err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/projects/%s/issues/%s", projectPath(owner, repo), id), nil)
	if err != nil {
		return err
	}
	_, _, err = c.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("gitlab: delete issue %s/%s!%s: %w", owner, repo, id, err)
	}
	return nil
}

func (c *Connector) CreateRemoteComment(ctx context.Context, owner, repo, taskID string, comment tracker.RemoteComment) (*tracker.RemoteComment, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(map[string]interface{}{"body": comment.Text})
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/projects/%s/issues/%s/notes", projectPath(owner, repo), taskID), body)
	if err != nil {
		return nil, err
	}
	data, _, err := c.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("gitlab: add comment to %s/%s!%s: %w", owner, repo, taskID, err)
	}
	var created struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(data, &created); err != nil {
		return nil, fmt.Errorf("gitlab: parse comment response: %w", err)
	}
	comment.ID = strconv.Itoa(created.ID)
	return &comment, nil
}

func (c *Connector) UpdateRemoteComment(ctx context.Context, owner, repo, taskID, commentID, text string) error {
	if err := c.ensureClient(); err != nil {
		return err
	}
	body, err := json.Marshal(map[string]interface{}{"body": text})
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/projects/%s/issues/%s/notes/%s", projectPath(owner, repo), taskID, commentID), body)
	if err != nil {
		return err
	}
	_, _, err = c.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("gitlab: update comment %s on %s/%s!%s: %w", commentID, owner, repo, taskID, err)
	}
	return nil
}

func (c *Connector) DeleteRemoteComment(ctx context.Context, owner, repo, taskID, commentID string) error {
	if err := c.ensureClient(); err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/projects/%s/issues/%s/notes/%s", projectPath(owner, repo), taskID, commentID), nil)
	if err != nil {
		return err
	}
	_, _, err = c.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("gitlab: delete comment %s on %s/%s!%s: %w", commentID, owner, repo, taskID, err)
	}
	return nil
}

func (c *Connector) CreateRemoteLabel(ctx context.Context, owner, repo, name, color string) error {
	if err := c.ensureClient(); err != nil {
		return err
	}
	if !strings.HasPrefix(color, "#") {
		color = "#" + color
	}
	body, err := json.Marshal(map[string]interface{}{"name": name, "color": color})
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/projects/%s/labels", projectPath(owner, repo)), body)
	if err != nil {
		return err
	}
	_, _, err = c.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("gitlab: create label %s on %s/%s: %w", name, owner, repo, err)
	}
	return nil
}

func (c *Connector) DeleteRemoteLabel(ctx context.Context, owner, repo, name string) error {
	if err := c.ensureClient(); err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/projects/%s/labels/%s", projectPath(owner, repo), url.PathEscape(name)), nil)
	if err != nil {
		return err
	}
	_, _, err = c.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("gitlab: delete label %s on %s/%s: %w", name, owner, repo, err)
	}
	return nil
}
