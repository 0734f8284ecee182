package github

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"gitmcp/server/internal/modules"
	"gitmcp/server/pkg/githubapi"
)

// GitHubModule implements the Module interface for the GitHub REST API.
type GitHubModule struct {
	client   *githubapi.Client
	handlers map[string]toolHandler
}

type toolHandler func(ctx context.Context, params map[string]any) (string, error)

// New creates a GitHubModule that issues requests through client.
func New(client *githubapi.Client) *GitHubModule {
	m := &GitHubModule{client: client}
	m.handlers = map[string]toolHandler{
		// Repositories
		"list-repositories":   m.listRepositories,
		"get-repository":      m.getRepository,
		"create-repository":   m.createRepository,
		"update-repository":   m.updateRepository,
		"delete-repository":   m.deleteRepository,
		"list-branches":       m.listBranches,
		"list-commits":        m.listCommits,
		"get-file-contents":   m.getFileContents,
		"describe-repository": m.describeRepository,
		// Pull requests
		"list-pull-requests":      m.listPullRequests,
		"get-pull-request":        m.getPullRequest,
		"create-pull-request":     m.createPullRequest,
		"update-pull-request":     m.updatePullRequest,
		"merge-pull-request":      m.mergePullRequest,
		"list-pull-request-files": m.listPullRequestFiles,
		// Issues
		"list-issues":       m.listIssues,
		"get-issue":         m.getIssue,
		"create-issue":      m.createIssue,
		"update-issue":      m.updateIssue,
		"add-issue-comment": m.addIssueComment,
		// Actions
		"list-workflows":     m.listWorkflows,
		"list-workflow-runs": m.listWorkflowRuns,
		"trigger-workflow":   m.triggerWorkflow,
		// Users / admin
		"get-user":               m.getUser,
		"get-authenticated-user": m.getAuthenticatedUser,
		"list-users":             m.listUsers,
		"create-user":            m.createUser,
		"delete-user":            m.deleteUser,
		"suspend-user":           m.suspendUser,
		"unsuspend-user":         m.unsuspendUser,
		"get-license-info":       m.getLicenseInfo,
	}
	return m
}

// Module descriptions
var moduleDescriptions = modules.LocalizedText{
	"en-US": "GitHub API - Repository, Pull Request, Issue, Actions, and user administration operations",
	"ja-JP": "GitHub API - リポジトリ、PR、Issue、Actions、ユーザー管理操作",
}

// Name returns the module name
func (m *GitHubModule) Name() string {
	return "github"
}

// Descriptions returns the module descriptions in all languages
func (m *GitHubModule) Descriptions() modules.LocalizedText {
	return moduleDescriptions
}

// Description returns the module description (English)
func (m *GitHubModule) Description() string {
	return moduleDescriptions["en-US"]
}

// APIVersion returns the GitHub API version
func (m *GitHubModule) APIVersion() string {
	return githubapi.APIVersion
}

// Tools returns all available tools
func (m *GitHubModule) Tools() []modules.Tool {
	return toolDefinitions
}

// ExecuteTool executes a tool by name and returns the upstream JSON (or a
// confirmation line for endpoints without a body).
func (m *GitHubModule) ExecuteTool(ctx context.Context, name string, params map[string]any) (string, error) {
	handler, ok := m.handlers[name]
	if !ok {
		return "", fmt.Errorf("unknown tool: %s", name)
	}
	return handler(ctx, params)
}

// ToCompact converts JSON result to compact format (MD or CSV)
// Implements modules.CompactConverter interface
func (m *GitHubModule) ToCompact(toolName string, jsonResult string) string {
	return formatCompact(toolName, jsonResult)
}

// =============================================================================
// Request helpers
// =============================================================================

// queryFrom copies the named params into a query string. Arrays are joined
// with commas, which is how GitHub takes multi-valued filters (labels).
func queryFrom(params map[string]any, keys ...string) url.Values {
	q := url.Values{}
	for _, k := range keys {
		switch v := params[k].(type) {
		case string:
			if v != "" {
				q.Set(k, v)
			}
		case float64:
			q.Set(k, strconv.Itoa(int(v)))
		case bool:
			q.Set(k, strconv.FormatBool(v))
		case []interface{}:
			if s := modules.ToStringSlice(v); len(s) > 0 {
				q.Set(k, strings.Join(s, ","))
			}
		}
	}
	return q
}

// bodyFrom copies the named params that were supplied into a request body.
func bodyFrom(params map[string]any, keys ...string) map[string]any {
	body := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := params[k]; ok && v != nil {
			body[k] = v
		}
	}
	return body
}

func repoPath(params map[string]any, rest ...string) string {
	segs := append([]string{"repos", modules.String(params, "owner"), modules.String(params, "repo")}, rest...)
	return githubapi.Path(segs...)
}

func number(params map[string]any, key string) string {
	n, _ := modules.Int(params, key)
	return strconv.Itoa(n)
}
