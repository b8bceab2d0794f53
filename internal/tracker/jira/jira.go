// Package jira implements tracker.Connector for Jira Cloud/Server, grounded
// on internal/jira's REST client (same auth scheme, same endpoint shapes)
// but rebuilt against the narrower Connector contract: URL-based remote
// matching instead of Dolt-backed sync state.
package jira

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/steveyegge/gittask/internal/tracker"
	"github.com/steveyegge/gittask/internal/tracker/httpretry"
)

func init() {
	tracker.Register("jira", func() tracker.Connector {
		return &Connector{}
	})
}

// Connector implements tracker.Connector for Jira. It reads its instance
// URL and credentials from environment variables (the project key is the
// owner SupportsRemote extracts) rather than
// the git-level config the task store owns, since jira.* keys are adapter
// config (spec.md §4.4's get_config_options), not core config.
type Connector struct {
	client *httpretry.Client
	url    string
	user   string
	token  string
}

func (c *Connector) TypeName() string { return "jira" }

// ConfigOptions lists the config keys this adapter contributes to the
// generic config surface.
func (c *Connector) ConfigOptions() []string {
	return []string{"jira.url", "jira.project", "jira.username", "jira.api_token"}
}

// SupportsRemote recognizes URLs that contain "atlassian.net" or a
// "/browse/" path (e.g. https://company.atlassian.net/browse/PROJ-123); no
// configured instance host is consulted. owner is the project key taken
// from the text after "/browse/", or empty when the URL has no such path
// or key; repo is empty (Jira has no repo concept).
func (c *Connector) SupportsRemote(remote string) (owner, repo string, ok bool) {
	if !strings.Contains(remote, "atlassian.net") && !strings.Contains(remote, "/browse/") {
		return "", "", false
	}
	idx := strings.LastIndex(remote, "/browse/")
	if idx == -1 {
		return "", "", true
	}
	key := remote[idx+len("/browse/"):]
	if dash := strings.LastIndex(key, "-"); dash > 0 {
		return key[:dash], "", true
	}
	return "", "", true
}

func (c *Connector) ensureClient() error {
	if c.client != nil {
		return nil
	}
	jiraURL := os.Getenv("JIRA_URL")
	if jiraURL == "" {
		return fmt.Errorf("jira: JIRA_URL not configured")
	}
	c.url = strings.TrimSuffix(jiraURL, "/")
	c.user = os.Getenv("JIRA_USERNAME")
	c.token = os.Getenv("JIRA_API_TOKEN")
	if c.token == "" {
		return fmt.Errorf("jira: JIRA_API_TOKEN not configured")
	}
	c.client = httpretry.New(30 * time.Second)
	return nil
}

func (c *Connector) authHeader() string {
	if c.user != "" {
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.user+":"+c.token))
	}
	return "Bearer " + c.token
}

func (c *Connector) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	var reader *strings.Reader
	if body != nil {
		reader = strings.NewReader(string(body))
	} else {
		reader = strings.NewReader("")
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url+path, reader)
	if err != nil {
		return nil, fmt.Errorf("jira: build request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader())
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

const searchFields = "summary,description,status,labels,created,updated"

func (c *Connector) ListRemoteTasks(ctx context.Context, owner, _ string, opts tracker.ListOptions) ([]tracker.RemoteTask, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	jql := fmt.Sprintf("project = %q", owner)
	switch opts.State.Kind {
	case tracker.Open:
		jql += " AND statusCategory != Done"
	case tracker.Closed:
		jql += " AND statusCategory = Done"
	}
	jql += " ORDER BY updated DESC"

	params := url.Values{"jql": {jql}, "fields": {searchFields}, "maxResults": {"100"}}
	req, err := c.newRequest(ctx, http.MethodGet, "/rest/api/3/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	data, _, err := c.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("jira: search issues: %w", err)
	}

	var result struct {
		Issues []struct {
			ID     string `json:"id"`
			Key    string `json:"key"`
			Self   string `json:"self"`
			Fields struct {
				Summary string   `json:"summary"`
				Labels  []string `json:"labels"`
				Status  struct {
					Name string `json:"name"`
				} `json:"status"`
			} `json:"fields"`
		} `json:"issues"`
	}
	if err := unmarshalJSON(data, &result); err != nil {
		return nil, fmt.Errorf("jira: parse search response: %w", err)
	}

	tasks := make([]tracker.RemoteTask, 0, len(result.Issues))
	for _, issue := range result.Issues {
		tasks = append(tasks, tracker.RemoteTask{
			ID:     issue.Key,
			Title:  issue.Fields.Summary,
			State:  issue.Fields.Status.Name,
			Labels: issue.Fields.Labels,
			URL:    issue.Self,
		})
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
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/rest/api/3/issue/%s?fields=%s", url.PathEscape(id), searchFields), nil)
	if err != nil {
		return nil, err
	}
	data, status, err := c.client.Do(ctx, req)
	if status == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("jira: get issue %s: %w", id, err)
	}

	var issue struct {
		Key    string `json:"key"`
		Self   string `json:"self"`
		Fields struct {
			Summary string   `json:"summary"`
			Labels  []string `json:"labels"`
			Status  struct {
				Name string `json:"name"`
			} `json:"status"`
		} `json:"fields"`
	}
	if err := unmarshalJSON(data, &issue); err != nil {
		return nil, fmt.Errorf("jira: parse issue response: %w", err)
	}
	return &tracker.RemoteTask{
		ID:     issue.Key,
		Title:  issue.Fields.Summary,
		State:  issue.Fields.Status.Name,
		Labels: issue.Fields.Labels,
		URL:    issue.Self,
	}, nil
}

func (c *Connector) CreateRemoteTask(ctx context.Context, owner, _ string, task tracker.RemoteTask) (*tracker.RemoteTask, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	payload := map[string]interface{}{
		"fields": map[string]interface{}{
			"project":   map[string]string{"key": owner},
			"summary":   task.Title,
			"issuetype": map[string]string{"name": "Task"},
		},
	}
	body, err := marshalJSON(payload)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/rest/api/3/issue", body)
	if err != nil {
		return nil, err
	}
	data, _, err := c.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("jira: create issue: %w", err)
	}
	var created struct {
		Key  string `json:"key"`
		Self string `json:"self"`
	}
	if err := unmarshalJSON(data, &created); err != nil {
		return nil, fmt.Errorf("jira: parse create response: %w", err)
	}
	task.ID = created.Key
	task.URL = created.Self
	return &task, nil
}

func (c *Connector) UpdateRemoteTask(ctx context.Context, _, _, id string, task tracker.RemoteTask) (*tracker.RemoteTask, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	payload := map[string]interface{}{
		"fields": map[string]interface{}{"summary": task.Title},
	}
	body, err := marshalJSON(payload)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPut, "/rest/api/3/issue/"+url.PathEscape(id), body)
	if err != nil {
		return nil, err
	}
	if _, _, err := c.client.Do(ctx, req); err != nil {
		return nil, fmt.Errorf("jira: update issue %s: %w", id, err)
	}
	task.ID = id
	return &task, nil
}

func (c *Connector) DeleteRemoteTask(ctx context.Context, _, _, id string) error {
	if err := c.ensureClient(); err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodDelete, "/rest/api/3/issue/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	_, _, err = c.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("jira: delete issue %s: %w", id, err)
	}
	return nil
}

func (c *Connector) CreateRemoteComment(ctx context.Context, _, _, taskID string, comment tracker.RemoteComment) (*tracker.RemoteComment, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	payload := map[string]interface{}{"body": plainTextToADF(comment.Text)}
	body, err := marshalJSON(payload)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/rest/api/3/issue/%s/comment", url.PathEscape(taskID)), body)
	if err != nil {
		return nil, err
	}
	data, _, err := c.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("jira: add comment to %s: %w", taskID, err)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := unmarshalJSON(data, &created); err != nil {
		return nil, fmt.Errorf("jira: parse comment response: %w", err)
	}
	comment.ID = created.ID
	return &comment, nil
}

func (c *Connector) UpdateRemoteComment(ctx context.Context, _, _, taskID, commentID, text string) error {
	if err := c.ensureClient(); err != nil {
		return err
	}
	payload := map[string]interface{}{"body": plainTextToADF(text)}
	body, err := marshalJSON(payload)
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/rest/api/3/issue/%s/comment/%s", url.PathEscape(taskID), url.PathEscape(commentID)), body)
	if err != nil {
		return err
	}
	_, _, err = c.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("jira: update comment %s on %s: %w", commentID, taskID, err)
	}
	return nil
}

func (c *Connector) DeleteRemoteComment(ctx context.Context, _, _, taskID, commentID string) error {
	if err := c.ensureClient(); err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/rest/api/3/issue/%s/comment/%s", url.PathEscape(taskID), url.PathEscape(commentID)), nil)
	if err != nil {
		return err
	}
	_, _, err = c.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("jira: delete comment %s on %s: %w", commentID, taskID, err)
	}
	return nil
}

// CreateRemoteLabel is a no-op: Jira labels are free text attached directly
// to issues, not a separately-created project resource.
func (c *Connector) CreateRemoteLabel(_ context.Context, _, _, _, _ string) error {
	return nil
}

// DeleteRemoteLabel is a no-op for the same reason as CreateRemoteLabel.
func (c *Connector) DeleteRemoteLabel(_ context.Context, _, _, _ string) error {
	return nil
}
