package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"gitmcp/server/internal/modules"
	"gitmcp/server/pkg/githubapi"
)

// =============================================================================
// Repositories
// =============================================================================

func (m *GitHubModule) listRepositories(ctx context.Context, params map[string]any) (string, error) {
	owner := modules.String(params, "owner")
	var path string
	switch {
	case owner == "":
		path = "/user/repos"
	case modules.Bool(params, "org"):
		path = githubapi.Path("orgs", owner, "repos")
	default:
		path = githubapi.Path("users", owner, "repos")
	}
	body, err := m.client.Get(ctx, path, queryFrom(params, "type", "sort", "per_page", "page"))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (m *GitHubModule) getRepository(ctx context.Context, params map[string]any) (string, error) {
	body, err := m.client.Get(ctx, repoPath(params), nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (m *GitHubModule) createRepository(ctx context.Context, params map[string]any) (string, error) {
	path := "/user/repos"
	if org := modules.String(params, "org"); org != "" {
		path = githubapi.Path("orgs", org, "repos")
	}
	body, err := m.client.Post(ctx, path, bodyFrom(params, "name", "description", "private", "auto_init", "homepage"))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (m *GitHubModule) updateRepository(ctx context.Context, params map[string]any) (string, error) {
	patch := bodyFrom(params, "name", "description", "private", "default_branch", "archived", "homepage")
	if len(patch) == 0 {
		return "", fmt.Errorf("nothing to update: provide at least one of name, description, private, default_branch, archived, homepage")
	}
	body, err := m.client.Patch(ctx, repoPath(params), patch)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (m *GitHubModule) deleteRepository(ctx context.Context, params map[string]any) (string, error) {
	if err := m.client.Delete(ctx, repoPath(params)); err != nil {
		return "", err
	}
	return fmt.Sprintf("Deleted repository %s/%s", modules.String(params, "owner"), modules.String(params, "repo")), nil
}

func (m *GitHubModule) listBranches(ctx context.Context, params map[string]any) (string, error) {
	body, err := m.client.Get(ctx, repoPath(params, "branches"), queryFrom(params, "protected", "per_page", "page"))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (m *GitHubModule) listCommits(ctx context.Context, params map[string]any) (string, error) {
	body, err := m.client.Get(ctx, repoPath(params, "commits"), queryFrom(params, "sha", "path", "author", "since", "until", "per_page", "page"))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (m *GitHubModule) getFileContents(ctx context.Context, params map[string]any) (string, error) {
	body, err := m.client.Get(ctx, repoPath(params, "contents", modules.String(params, "path")), queryFrom(params, "ref"))
	if err != nil {
		return "", err
	}
	// Directories come back as an array and are returned unchanged.
	var f map[string]any
	if json.Unmarshal(body, &f) != nil {
		return string(body), nil
	}
	// Decode base64 content inline
	if enc, _ := f["encoding"].(string); enc == "base64" {
		if content, ok := f["content"].(string); ok {
			decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(content, "\n", ""))
			if err == nil {
				f["content"] = string(decoded)
				f["encoding"] = "utf-8"
			}
		}
	}
	return modules.ToJSON(f)
}

// =============================================================================
// Composite: describe-repository
// =============================================================================

// describeRepository fetches the repository, README, branches, open issues
// and open pull requests concurrently. Only the repository itself is
// required; the other parts are left out when they fail.
func (m *GitHubModule) describeRepository(ctx context.Context, params map[string]any) (string, error) {
	owner := modules.String(params, "owner")
	repoName := modules.String(params, "repo")
	base := map[string]any{"owner": owner, "repo": repoName}
	with := func(extra map[string]any) map[string]any {
		p := make(map[string]any, len(base)+len(extra))
		for k, v := range base {
			p[k] = v
		}
		for k, v := range extra {
			p[k] = v
		}
		return p
	}

	calls := []struct {
		key      string
		required bool
		fn       toolHandler
		params   map[string]any
	}{
		{"repo", true, m.getRepository, base},
		{"readme", false, m.getFileContents, with(map[string]any{"path": "README.md"})},
		{"branches", false, m.listBranches, with(map[string]any{"per_page": float64(10)})},
		{"issues", false, m.listIssues, with(map[string]any{"state": "open", "per_page": float64(10)})},
		{"prs", false, m.listPullRequests, with(map[string]any{"state": "open", "per_page": float64(10)})},
	}

	raw := make([]string, len(calls))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range calls {
		g.Go(func() error {
			v, err := c.fn(gctx, c.params)
			if err != nil {
				if c.required {
					return err
				}
				return nil
			}
			raw[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	out := map[string]any{
		"_note": "Partial data. Use get-repository, get-issue, get-pull-request, get-file-contents for full details.",
	}

	// Repo: essential fields only (no html_url, owner)
	var r map[string]any
	if json.Unmarshal([]byte(raw[0]), &r) == nil {
		p := map[string]any{}
		for _, k := range []string{"full_name", "description", "language", "visibility", "stargazers_count", "forks_count", "open_issues_count", "default_branch", "archived", "fork"} {
			if v, ok := r[k]; ok && v != nil {
				p[k] = v
			}
		}
		if arr, ok := r["topics"].([]any); ok && len(arr) > 0 {
			p["topics"] = arr
		}
		if v := date(str(r, "created_at")); v != "" {
			p["created"] = v
		}
		if v := date(str(r, "pushed_at")); v != "" {
			p["last_push"] = v
		}
		out["repo"] = p
	}

	// README: content field, truncated
	var f map[string]any
	if raw[1] != "" && json.Unmarshal([]byte(raw[1]), &f) == nil {
		if content := str(f, "content"); content != "" {
			out["readme"] = truncate(content, 2000)
		}
	}

	var branches []map[string]any
	if raw[2] != "" && json.Unmarshal([]byte(raw[2]), &branches) == nil {
		names := make([]string, 0, len(branches))
		for _, b := range branches {
			if name := str(b, "name"); name != "" {
				names = append(names, name)
			}
		}
		out["branches"] = names
	}

	var issues []map[string]any
	if raw[3] != "" && json.Unmarshal([]byte(raw[3]), &issues) == nil {
		compact := make([]map[string]any, 0, len(issues))
		for _, i := range issues {
			// The issues endpoint also returns pull requests.
			if _, isPR := i["pull_request"]; isPR {
				continue
			}
			c := map[string]any{"number": i["number"], "title": i["title"], "author": login(i)}
			if d := date(str(i, "created_at")); d != "" {
				c["date"] = d
			}
			if labels := labelsStr(i); labels != "" {
				c["labels"] = strings.Split(labels, ";")
			}
			compact = append(compact, c)
		}
		out["issues"] = compact
	}

	var prs []map[string]any
	if raw[4] != "" && json.Unmarshal([]byte(raw[4]), &prs) == nil {
		compact := make([]map[string]any, 0, len(prs))
		for _, p := range prs {
			c := map[string]any{"number": p["number"], "title": p["title"], "author": login(p)}
			if boolVal(p, "draft") {
				c["draft"] = true
			}
			if d := date(str(p, "created_at")); d != "" {
				c["date"] = d
			}
			compact = append(compact, c)
		}
		out["prs"] = compact
	}

	return modules.ToJSON(out)
}
