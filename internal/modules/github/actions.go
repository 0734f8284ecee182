package github

import (
	"context"
	"fmt"

	"gitmcp/server/internal/modules"
)

// =============================================================================
// Actions
// =============================================================================

func (m *GitHubModule) listWorkflows(ctx context.Context, params map[string]any) (string, error) {
	body, err := m.client.Get(ctx, repoPath(params, "actions", "workflows"), queryFrom(params, "per_page", "page"))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// listWorkflowRuns lists runs for the whole repository, or for one workflow
// when workflow_id (numeric id or file name) is given.
func (m *GitHubModule) listWorkflowRuns(ctx context.Context, params map[string]any) (string, error) {
	path := repoPath(params, "actions", "runs")
	if id := modules.String(params, "workflow_id"); id != "" {
		path = repoPath(params, "actions", "workflows", id, "runs")
	}
	body, err := m.client.Get(ctx, path, queryFrom(params, "branch", "event", "status", "actor", "per_page", "page"))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// triggerWorkflow creates a workflow_dispatch event. GitHub answers 204.
func (m *GitHubModule) triggerWorkflow(ctx context.Context, params map[string]any) (string, error) {
	id := modules.String(params, "workflow_id")
	payload := bodyFrom(params, "ref", "inputs")
	if _, err := m.client.Post(ctx, repoPath(params, "actions", "workflows", id, "dispatches"), payload); err != nil {
		return "", err
	}
	return fmt.Sprintf("Triggered workflow %s on %s/%s at ref %s",
		id, modules.String(params, "owner"), modules.String(params, "repo"), modules.String(params, "ref")), nil
}
