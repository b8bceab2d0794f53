// Package redmine implements tracker.Connector for Redmine. No Redmine
// integration exists in the example corpus, so this adapter is built by
// structural analogy to internal/tracker/jira and internal/tracker/github —
// same httpretry-backed REST client shape, same self-registration pattern —
// against Redmine's documented REST API (X-Redmine-API-Key auth,
// issues.json endpoints, journals for comments).
package redmine

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
	tracker.Register("redmine", func() tracker.Connector {
		return &Connector{}
	})
}

// Connector implements tracker.Connector for Redmine.
type Connector struct {
	client    *httpretry.Client
	baseURL   string
	apiKey    string
	projectID string
}

func (c *Connector) TypeName() string { return "redmine" }

func (c *Connector) ConfigOptions() []string {
	return []string{"redmine.url", "redmine.api_key", "redmine.project_id"}
}

// issuePattern matches Redmine issue URLs, e.g. https://redmine.example.com/issues/123.
var issuePattern = regexp.MustCompile(`^(https?://[^/]+)/issues/(\d+)`)

// SupportsRemote recognizes a Redmine issue URL; owner carries the
// instance's base URL and repo is empty. The other methods ignore owner:
// the instance and project come from REDMINE_URL and REDMINE_PROJECT_ID.
func (c *Connector) SupportsRemote(remote string) (owner, repo string, ok bool) {
	m := issuePattern.FindStringSubmatch(remote)
	if m == nil {
		return "", "", false
	}
	return m[1], "", true
}

func (c *Connector) ensureClient() error {
	if c.client != nil {
		return nil
	}
	c.baseURL = strings.TrimSuffix(os.Getenv("REDMINE_URL"), "/")
	if c.baseURL == "" {
		return fmt.Errorf("redmine: REDMINE_URL not configured")
	}
	c.apiKey = os.Getenv("REDMINE_API_KEY")
	if c.apiKey == "" {
		return fmt.Errorf("redmine: REDMINE_API_KEY not configured")
	}
	c.projectID = os.Getenv("REDMINE_PROJECT_ID")
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
		return nil, fmt.Errorf("redmine: build request: %w", err)
	}
	req.Header.Set("X-Redmine-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

type rmIssue struct {
	ID          int    `json:"id"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Status      struct {
		Name string `json:"name"`
	} `json:"status"`
}

func (i rmIssue) toRemoteTask(baseURL string) tracker.RemoteTask {
	return tracker.RemoteTask{
		ID:          strconv.Itoa(i.ID),
		Title:       i.Subject,
		Description: i.Description,
		State:       i.Status.Name,
		URL:         fmt.Sprintf("%s/issues/%d", baseURL, i.ID),
	}
}

func (c *Connector) ListRemoteTasks(ctx context.Context, _, _ string, opts tracker.ListOptions) ([]tracker.RemoteTask, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	params := url.Values{}
	if c.projectID != "" {
		params.Set("project_id", c.projectID)
	}
	switch opts.State.Kind {
	case tracker.Open:
		params.Set("status_id", "open")
	case tracker.Closed:
		params.Set("status_id", "closed")
	default:
		params.Set("status_id", "*")
	}
	limit := 100
	if opts.MaxCount > 0 && opts.MaxCount < limit {
		limit = opts.MaxCount
	}
	params.Set("limit", strconv.Itoa(limit))

	req, err := c.newRequest(ctx, http.MethodGet, "/issues.json?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	data, _, err := c.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("redmine: list issues: %w", err)
	}
	var result struct {
		Issues []rmIssue `json:"issues"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("redmine: parse issues response: %w", err)
	}
	tasks := make([]tracker.RemoteTask, 0, len(result.Issues))
	for _, issue := range result.Issues {
		tasks = append(tasks, issue.toRemoteTask(c.baseURL))
		if opts.MaxCount > 0 && len(tasks) >= opts.MaxCount {
			break
		}
	}
	return tasks, nil
}

func (c *Connector) GetRemoteTask(ctx context.Context, _, _, id string) (*tracker.RemoteTask, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/issues/%s.json", id), nil)
	if err != nil {
		return nil, err
	}
	data, status, err := c.client.Do(ctx, req)
	if status == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redmine: get issue %s: %w", id, err)
	}
	var result struct {
		Issue rmIssue `json:"issue"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("redmine: parse issue response: %w", err)
	}
	task := result.Issue.toRemoteTask(c.baseURL)
	return &task, nil
}

func (c *Connector) CreateRemoteTask(ctx context.Context, _, _ string, task tracker.RemoteTask) (*tracker.RemoteTask, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	payload := map[string]interface{}{
		"issue": map[string]interface{}{
			"project_id":  c.projectID,
			"subject":     task.Title,
			"description": task.Description,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/issues.json", body)
	if err != nil {
		return nil, err
	}
	data, _, err := c.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("redmine: create issue: %w", err)
	}
	var result struct {
		Issue rmIssue `json:"issue"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("redmine: parse create response: %w", err)
	}
	created := result.Issue.toRemoteTask(c.baseURL)
	return &created, nil
}

func (c *Connector) UpdateRemoteTask(ctx context.Context, _, _, id string, task tracker.RemoteTask) (*tracker.RemoteTask, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	payload := map[string]interface{}{
		"issue": map[string]interface{}{"subject": task.Title, "description": task.Description},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/issues/%s.json", id), body)
	if err != nil {
		return nil, err
	}
	if _, _, err := c.client.Do(ctx, req); err != nil {
		return nil, fmt.Errorf("redmine: update issue %s: %w", id, err)
	}
	task.ID = id
	return &task, nil
}

func (c *Connector) DeleteRemoteTask(ctx context.Context, _, _, id string) error {
	if err := c.ensureClient(); err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/issues/%s.json", id), nil)
	if err != nil {
		return err
	}
	_, _, err = c.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("redmine: delete issue %s: %w", id, err)
	}
	return nil
}

// CreateRemoteComment adds a journal note, Redmine's equivalent of a
// comment; Redmine doesn't return a note ID, so the issue id is reused.
func (c *Connector) CreateRemoteComment(ctx context.Context, _, _, taskID string, comment tracker.RemoteComment) (*tracker.RemoteComment, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	payload := map[string]interface{}{"issue": map[string]interface{}{"notes": comment.Text}}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/issues/%s.json", taskID), body)
	if err != nil {
		return nil, err
	}
	if _, _, err := c.client.Do(ctx, req); err != nil {
		return nil, fmt.Errorf("redmine: add note to issue %s: %w", taskID, err)
	}
	comment.ID = taskID
	return &comment, nil
}

// UpdateRemoteComment appends a correction note: Redmine journals are
// append-only and cannot be edited through the public API.
func (c *Connector) UpdateRemoteComment(ctx context.Context, owner, repo, taskID, _, text string) error {
	_, err := c.CreateRemoteComment(ctx, owner, repo, taskID, tracker.RemoteComment{Text: "(edit) " + text})
	return err
}

// DeleteRemoteComment is a no-op: Redmine journals cannot be deleted
// through the public API.
func (c *Connector) DeleteRemoteComment(_ context.Context, _, _, _, _ string) error {
	return nil
}

// CreateRemoteLabel is a no-op: Redmine has no first-class label resource;
// categories and custom fields serve that role per-instance and aren't
// generically addressable here.
func (c *Connector) CreateRemoteLabel(_ context.Context, _, _, _, _ string) error {
	return nil
}

// DeleteRemoteLabel is a no-op for the same reason as CreateRemoteLabel.
func (c *Connector) DeleteRemoteLabel(_ context.Context, _, _, _ string) error {
	return nil
}
