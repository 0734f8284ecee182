package github

import (
	"context"
	"fmt"

	"gitmcp/server/internal/modules"
)

// =============================================================================
// Pull Requests
// =============================================================================

func (m *GitHubModule) listPullRequests(ctx context.Context, params map[string]any) (string, error) {
	body, err := m.client.Get(ctx, repoPath(params, "pulls"), queryFrom(params, "state", "head", "base", "sort", "direction", "per_page", "page"))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (m *GitHubModule) getPullRequest(ctx context.Context, params map[string]any) (string, error) {
	body, err := m.client.Get(ctx, repoPath(params, "pulls", number(params, "pull_number")), nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (m *GitHubModule) createPullRequest(ctx context.Context, params map[string]any) (string, error) {
	body, err := m.client.Post(ctx, repoPath(params, "pulls"), bodyFrom(params, "title", "head", "base", "body", "draft", "maintainer_can_modify"))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (m *GitHubModule) updatePullRequest(ctx context.Context, params map[string]any) (string, error) {
	patch := bodyFrom(params, "title", "body", "state", "base", "maintainer_can_modify")
	if len(patch) == 0 {
		return "", fmt.Errorf("nothing to update: provide at least one of title, body, state, base")
	}
	body, err := m.client.Patch(ctx, repoPath(params, "pulls", number(params, "pull_number")), patch)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (m *GitHubModule) mergePullRequest(ctx context.Context, params map[string]any) (string, error) {
	body, err := m.client.Put(ctx, repoPath(params, "pulls", number(params, "pull_number"), "merge"),
		bodyFrom(params, "commit_title", "commit_message", "merge_method", "sha"))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (m *GitHubModule) listPullRequestFiles(ctx context.Context, params map[string]any) (string, error) {
	body, err := m.client.Get(ctx, repoPath(params, "pulls", number(params, "pull_number"), "files"), queryFrom(params, "per_page", "page"))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// =============================================================================
// Issues
// =============================================================================

func (m *GitHubModule) listIssues(ctx context.Context, params map[string]any) (string, error) {
	body, err := m.client.Get(ctx, repoPath(params, "issues"), queryFrom(params, "state", "labels", "assignee", "sort", "direction", "per_page", "page"))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (m *GitHubModule) getIssue(ctx context.Context, params map[string]any) (string, error) {
	body, err := m.client.Get(ctx, repoPath(params, "issues", number(params, "issue_number")), nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (m *GitHubModule) createIssue(ctx context.Context, params map[string]any) (string, error) {
	body, err := m.client.Post(ctx, repoPath(params, "issues"), bodyFrom(params, "title", "body", "labels", "assignees", "milestone"))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (m *GitHubModule) updateIssue(ctx context.Context, params map[string]any) (string, error) {
	patch := bodyFrom(params, "title", "body", "state", "state_reason", "labels", "assignees", "milestone")
	if len(patch) == 0 {
		return "", fmt.Errorf("nothing to update: provide at least one of title, body, state, labels, assignees")
	}
	body, err := m.client.Patch(ctx, repoPath(params, "issues", number(params, "issue_number")), patch)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (m *GitHubModule) addIssueComment(ctx context.Context, params map[string]any) (string, error) {
	body, err := m.client.Post(ctx, repoPath(params, "issues", number(params, "issue_number"), "comments"),
		map[string]any{"body": modules.String(params, "body")})
	if err != nil {
		return "", err
	}
	return string(body), nil
}
