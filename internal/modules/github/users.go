package github

import (
	"context"
	"fmt"

	"gitmcp/server/internal/modules"
	"gitmcp/server/pkg/githubapi"
)

// =============================================================================
// Users
// =============================================================================

func (m *GitHubModule) getUser(ctx context.Context, params map[string]any) (string, error) {
	body, err := m.client.Get(ctx, githubapi.Path("users", modules.String(params, "username")), nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (m *GitHubModule) getAuthenticatedUser(ctx context.Context, params map[string]any) (string, error) {
	body, err := m.client.Get(ctx, "/user", nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (m *GitHubModule) listUsers(ctx context.Context, params map[string]any) (string, error) {
	body, err := m.client.Get(ctx, "/users", queryFrom(params, "since", "per_page"))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// =============================================================================
// Enterprise administration (GitHub Enterprise Server site admin)
// =============================================================================

func (m *GitHubModule) createUser(ctx context.Context, params map[string]any) (string, error) {
	body, err := m.client.Post(ctx, "/admin/users", bodyFrom(params, "login", "email", "suspended"))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (m *GitHubModule) deleteUser(ctx context.Context, params map[string]any) (string, error) {
	username := modules.String(params, "username")
	if err := m.client.Delete(ctx, githubapi.Path("admin", "users", username)); err != nil {
		return "", err
	}
	return fmt.Sprintf("Deleted user %s", username), nil
}

func (m *GitHubModule) suspendUser(ctx context.Context, params map[string]any) (string, error) {
	username := modules.String(params, "username")
	var payload any
	if reason := modules.String(params, "reason"); reason != "" {
		payload = map[string]any{"reason": reason}
	}
	if _, err := m.client.Put(ctx, githubapi.Path("users", username, "suspended"), payload); err != nil {
		return "", err
	}
	return fmt.Sprintf("Suspended user %s", username), nil
}

func (m *GitHubModule) unsuspendUser(ctx context.Context, params map[string]any) (string, error) {
	username := modules.String(params, "username")
	if err := m.client.Delete(ctx, githubapi.Path("users", username, "suspended")); err != nil {
		return "", err
	}
	return fmt.Sprintf("Unsuspended user %s", username), nil
}

func (m *GitHubModule) getLicenseInfo(ctx context.Context, params map[string]any) (string, error) {
	body, err := m.client.Get(ctx, "/enterprise/settings/license", nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
