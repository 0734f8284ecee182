package github

import "gitmcp/server/internal/modules"

// =============================================================================
// Tool Definitions
// =============================================================================

var toolDefinitions = []modules.Tool{
	// Repositories
	{
		ID:   "github:list-repositories",
		Name: "list-repositories",
		Descriptions: modules.LocalizedText{
			"en-US": "List repositories. Without owner, lists the authenticated user's repositories; with org: true, lists an organization's.",
			"ja-JP": "リポジトリを一覧表示します。ownerを省略すると認証ユーザーのリポジトリ、org: trueで組織のリポジトリを返します。",
		},
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":    {Type: "string", Description: "User or organization login. Omit for the authenticated user"},
				"org":      {Type: "boolean", Description: "Treat owner as an organization. Default: false"},
				"type":     {Type: "string", Description: "Repository type filter. Default: owner (all for organizations)"},
				"sort":     {Type: "string", Description: "Sort by", Enum: []string{"created", "updated", "pushed", "full_name"}},
				"per_page": {Type: "integer", Description: "Results per page (max 100). Default: 30"},
				"page":     {Type: "integer", Description: "Page number. Default: 1"},
			},
		},
	},
	{
		ID:   "github:get-repository",
		Name: "get-repository",
		Descriptions: modules.LocalizedText{
			"en-US": "Get details of a specific repository.",
			"ja-JP": "特定のリポジトリの詳細を取得します。",
		},
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner": {Type: "string", Description: "Repository owner"},
				"repo":  {Type: "string", Description: "Repository name"},
			},
			Required: []string{"owner", "repo"},
		},
	},
	{
		ID:   "github:create-repository",
		Name: "create-repository",
		Descriptions: modules.LocalizedText{
			"en-US": "Create a repository for the authenticated user, or in an organization when org is given.",
			"ja-JP": "認証ユーザー（orgを指定した場合は組織）にリポジトリを作成します。",
		},
		Annotations: modules.AnnotateCreate,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"name":        {Type: "string", Description: "Repository name"},
				"org":         {Type: "string", Description: "Organization login to create the repository in"},
				"description": {Type: "string", Description: "Short description"},
				"homepage":    {Type: "string", Description: "Homepage URL"},
				"private":     {Type: "boolean", Description: "Create a private repository. Default: false"},
				"auto_init":   {Type: "boolean", Description: "Create an initial commit with an empty README. Default: false"},
			},
			Required: []string{"name"},
		},
	},
	{
		ID:   "github:update-repository",
		Name: "update-repository",
		Descriptions: modules.LocalizedText{
			"en-US": "Update repository settings.",
			"ja-JP": "リポジトリの設定を更新します。",
		},
		Annotations: modules.AnnotateUpdate,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":          {Type: "string", Description: "Repository owner"},
				"repo":           {Type: "string", Description: "Repository name"},
				"name":           {Type: "string", Description: "New name"},
				"description":    {Type: "string", Description: "New description"},
				"homepage":       {Type: "string", Description: "New homepage URL"},
				"private":        {Type: "boolean", Description: "Change visibility"},
				"default_branch": {Type: "string", Description: "New default branch"},
				"archived":       {Type: "boolean", Description: "Archive or unarchive"},
			},
			Required: []string{"owner", "repo"},
		},
	},
	{
		ID:   "github:delete-repository",
		Name: "delete-repository",
		Descriptions: modules.LocalizedText{
			"en-US": "Delete a repository. Requires the delete_repo scope.",
			"ja-JP": "リポジトリを削除します。delete_repoスコープが必要です。",
		},
		Annotations: modules.AnnotateDelete,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner": {Type: "string", Description: "Repository owner"},
				"repo":  {Type: "string", Description: "Repository name"},
			},
			Required: []string{"owner", "repo"},
		},
	},
	{
		ID:   "github:list-branches",
		Name: "list-branches",
		Descriptions: modules.LocalizedText{
			"en-US": "List branches in a repository.",
			"ja-JP": "リポジトリ内のブランチを一覧表示します。",
		},
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":     {Type: "string", Description: "Repository owner"},
				"repo":      {Type: "string", Description: "Repository name"},
				"protected": {Type: "boolean", Description: "Only protected branches"},
				"per_page":  {Type: "integer", Description: "Results per page. Default: 30"},
				"page":      {Type: "integer", Description: "Page number. Default: 1"},
			},
			Required: []string{"owner", "repo"},
		},
	},
	{
		ID:   "github:list-commits",
		Name: "list-commits",
		Descriptions: modules.LocalizedText{
			"en-US": "List commits in a repository.",
			"ja-JP": "リポジトリ内のコミットを一覧表示します。",
		},
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":    {Type: "string", Description: "Repository owner"},
				"repo":     {Type: "string", Description: "Repository name"},
				"sha":      {Type: "string", Description: "Branch name or commit SHA to start from"},
				"path":     {Type: "string", Description: "Only commits touching this path"},
				"author":   {Type: "string", Description: "GitHub login or email address"},
				"since":    {Type: "string", Description: "ISO 8601 timestamp lower bound"},
				"until":    {Type: "string", Description: "ISO 8601 timestamp upper bound"},
				"per_page": {Type: "integer", Description: "Results per page. Default: 30"},
				"page":     {Type: "integer", Description: "Page number. Default: 1"},
			},
			Required: []string{"owner", "repo"},
		},
	},
	{
		ID:   "github:get-file-contents",
		Name: "get-file-contents",
		Descriptions: modules.LocalizedText{
			"en-US": "Get the content of a file (decoded) or the listing of a directory in a repository.",
			"ja-JP": "リポジトリ内のファイル内容（デコード済み）またはディレクトリ一覧を取得します。",
		},
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner": {Type: "string", Description: "Repository owner"},
				"repo":  {Type: "string", Description: "Repository name"},
				"path":  {Type: "string", Description: "File or directory path"},
				"ref":   {Type: "string", Description: "Branch name, tag or commit SHA"},
			},
			Required: []string{"owner", "repo", "path"},
		},
	},
	{
		ID:   "github:describe-repository",
		Name: "describe-repository",
		Descriptions: modules.LocalizedText{
			"en-US": "Overview of a repository in one call: metadata, README excerpt, branches, open issues and open pull requests.",
			"ja-JP": "リポジトリの概要（メタデータ、README抜粋、ブランチ、オープンなIssueとPR）を一度に取得します。",
		},
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner": {Type: "string", Description: "Repository owner"},
				"repo":  {Type: "string", Description: "Repository name"},
			},
			Required: []string{"owner", "repo"},
		},
	},
	// Pull Requests
	{
		ID:   "github:list-pull-requests",
		Name: "list-pull-requests",
		Descriptions: modules.LocalizedText{
			"en-US": "List pull requests in a repository.",
			"ja-JP": "リポジトリ内のプルリクエストを一覧表示します。",
		},
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":     {Type: "string", Description: "Repository owner"},
				"repo":      {Type: "string", Description: "Repository name"},
				"state":     {Type: "string", Description: "Pull request state. Default: open", Enum: []string{"open", "closed", "all"}},
				"head":      {Type: "string", Description: "Filter by head user or org and branch (user:ref-name)"},
				"base":      {Type: "string", Description: "Filter by base branch"},
				"sort":      {Type: "string", Description: "Sort by", Enum: []string{"created", "updated", "popularity", "long-running"}},
				"direction": {Type: "string", Description: "Sort direction", Enum: []string{"asc", "desc"}},
				"per_page":  {Type: "integer", Description: "Results per page. Default: 30"},
				"page":      {Type: "integer", Description: "Page number. Default: 1"},
			},
			Required: []string{"owner", "repo"},
		},
	},
	{
		ID:   "github:get-pull-request",
		Name: "get-pull-request",
		Descriptions: modules.LocalizedText{
			"en-US": "Get details of a specific pull request.",
			"ja-JP": "特定のプルリクエストの詳細を取得します。",
		},
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":       {Type: "string", Description: "Repository owner"},
				"repo":        {Type: "string", Description: "Repository name"},
				"pull_number": {Type: "integer", Description: "Pull request number"},
			},
			Required: []string{"owner", "repo", "pull_number"},
		},
	},
	{
		ID:   "github:create-pull-request",
		Name: "create-pull-request",
		Descriptions: modules.LocalizedText{
			"en-US": "Create a pull request.",
			"ja-JP": "プルリクエストを作成します。",
		},
		Annotations: modules.AnnotateCreate,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":                 {Type: "string", Description: "Repository owner"},
				"repo":                  {Type: "string", Description: "Repository name"},
				"title":                 {Type: "string", Description: "Pull request title"},
				"head":                  {Type: "string", Description: "Branch containing the changes"},
				"base":                  {Type: "string", Description: "Branch to merge into"},
				"body":                  {Type: "string", Description: "Pull request description"},
				"draft":                 {Type: "boolean", Description: "Create as draft. Default: false"},
				"maintainer_can_modify": {Type: "boolean", Description: "Allow maintainers to push to the head branch"},
			},
			Required: []string{"owner", "repo", "title", "head", "base"},
		},
	},
	{
		ID:   "github:update-pull-request",
		Name: "update-pull-request",
		Descriptions: modules.LocalizedText{
			"en-US": "Update a pull request's title, body, state or base branch.",
			"ja-JP": "プルリクエストのタイトル、本文、状態、ベースブランチを更新します。",
		},
		Annotations: modules.AnnotateUpdate,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":                 {Type: "string", Description: "Repository owner"},
				"repo":                  {Type: "string", Description: "Repository name"},
				"pull_number":           {Type: "integer", Description: "Pull request number"},
				"title":                 {Type: "string", Description: "New title"},
				"body":                  {Type: "string", Description: "New body"},
				"state":                 {Type: "string", Description: "New state", Enum: []string{"open", "closed"}},
				"base":                  {Type: "string", Description: "New base branch"},
				"maintainer_can_modify": {Type: "boolean", Description: "Allow maintainers to push to the head branch"},
			},
			Required: []string{"owner", "repo", "pull_number"},
		},
	},
	{
		ID:   "github:merge-pull-request",
		Name: "merge-pull-request",
		Descriptions: modules.LocalizedText{
			"en-US": "Merge a pull request.",
			"ja-JP": "プルリクエストをマージします。",
		},
		Annotations: modules.AnnotateUpdate,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":          {Type: "string", Description: "Repository owner"},
				"repo":           {Type: "string", Description: "Repository name"},
				"pull_number":    {Type: "integer", Description: "Pull request number"},
				"commit_title":   {Type: "string", Description: "Title for the merge commit"},
				"commit_message": {Type: "string", Description: "Extra detail for the merge commit"},
				"merge_method":   {Type: "string", Description: "Merge method. Default: merge", Enum: []string{"merge", "squash", "rebase"}},
				"sha":            {Type: "string", Description: "Head SHA that must match to allow the merge"},
			},
			Required: []string{"owner", "repo", "pull_number"},
		},
	},
	{
		ID:   "github:list-pull-request-files",
		Name: "list-pull-request-files",
		Descriptions: modules.LocalizedText{
			"en-US": "List files changed in a pull request.",
			"ja-JP": "プルリクエストで変更されたファイルを一覧表示します。",
		},
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":       {Type: "string", Description: "Repository owner"},
				"repo":        {Type: "string", Description: "Repository name"},
				"pull_number": {Type: "integer", Description: "Pull request number"},
				"per_page":    {Type: "integer", Description: "Results per page. Default: 30"},
				"page":        {Type: "integer", Description: "Page number. Default: 1"},
			},
			Required: []string{"owner", "repo", "pull_number"},
		},
	},
	// Issues
	{
		ID:   "github:list-issues",
		Name: "list-issues",
		Descriptions: modules.LocalizedText{
			"en-US": "List issues in a repository. Pull requests are included by GitHub and marked in the output.",
			"ja-JP": "リポジトリ内のIssueを一覧表示します。",
		},
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":     {Type: "string", Description: "Repository owner"},
				"repo":      {Type: "string", Description: "Repository name"},
				"state":     {Type: "string", Description: "Issue state. Default: open", Enum: []string{"open", "closed", "all"}},
				"labels":    {Type: "array", Description: "Label names; issues must have all of them", Items: &modules.Property{Type: "string"}},
				"assignee":  {Type: "string", Description: "Login, none or *"},
				"sort":      {Type: "string", Description: "Sort by", Enum: []string{"created", "updated", "comments"}},
				"direction": {Type: "string", Description: "Sort direction", Enum: []string{"asc", "desc"}},
				"per_page":  {Type: "integer", Description: "Results per page. Default: 30"},
				"page":      {Type: "integer", Description: "Page number. Default: 1"},
			},
			Required: []string{"owner", "repo"},
		},
	},
	{
		ID:   "github:get-issue",
		Name: "get-issue",
		Descriptions: modules.LocalizedText{
			"en-US": "Get details of a specific issue.",
			"ja-JP": "特定のIssueの詳細を取得します。",
		},
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":        {Type: "string", Description: "Repository owner"},
				"repo":         {Type: "string", Description: "Repository name"},
				"issue_number": {Type: "integer", Description: "Issue number"},
			},
			Required: []string{"owner", "repo", "issue_number"},
		},
	},
	{
		ID:   "github:create-issue",
		Name: "create-issue",
		Descriptions: modules.LocalizedText{
			"en-US": "Create a new issue in a repository.",
			"ja-JP": "リポジトリに新しいIssueを作成します。",
		},
		Annotations: modules.AnnotateCreate,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":     {Type: "string", Description: "Repository owner"},
				"repo":      {Type: "string", Description: "Repository name"},
				"title":     {Type: "string", Description: "Issue title"},
				"body":      {Type: "string", Description: "Issue body"},
				"labels":    {Type: "array", Description: "Labels to assign", Items: &modules.Property{Type: "string"}},
				"assignees": {Type: "array", Description: "Users to assign", Items: &modules.Property{Type: "string"}},
				"milestone": {Type: "integer", Description: "Milestone number"},
			},
			Required: []string{"owner", "repo", "title"},
		},
	},
	{
		ID:   "github:update-issue",
		Name: "update-issue",
		Descriptions: modules.LocalizedText{
			"en-US": "Update an existing issue.",
			"ja-JP": "既存のIssueを更新します。",
		},
		Annotations: modules.AnnotateUpdate,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":        {Type: "string", Description: "Repository owner"},
				"repo":         {Type: "string", Description: "Repository name"},
				"issue_number": {Type: "integer", Description: "Issue number"},
				"title":        {Type: "string", Description: "New title"},
				"body":         {Type: "string", Description: "New body"},
				"state":        {Type: "string", Description: "New state", Enum: []string{"open", "closed"}},
				"state_reason": {Type: "string", Description: "Reason for the state change", Enum: []string{"completed", "not_planned", "reopened"}},
				"labels":       {Type: "array", Description: "Labels to set", Items: &modules.Property{Type: "string"}},
				"assignees":    {Type: "array", Description: "Users to assign", Items: &modules.Property{Type: "string"}},
				"milestone":    {Type: "integer", Description: "Milestone number"},
			},
			Required: []string{"owner", "repo", "issue_number"},
		},
	},
	{
		ID:   "github:add-issue-comment",
		Name: "add-issue-comment",
		Descriptions: modules.LocalizedText{
			"en-US": "Add a comment to an issue or pull request.",
			"ja-JP": "IssueまたはPRにコメントを追加します。",
		},
		Annotations: modules.AnnotateCreate,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":        {Type: "string", Description: "Repository owner"},
				"repo":         {Type: "string", Description: "Repository name"},
				"issue_number": {Type: "integer", Description: "Issue or pull request number"},
				"body":         {Type: "string", Description: "Comment body"},
			},
			Required: []string{"owner", "repo", "issue_number", "body"},
		},
	},
	// Actions
	{
		ID:   "github:list-workflows",
		Name: "list-workflows",
		Descriptions: modules.LocalizedText{
			"en-US": "List GitHub Actions workflows in a repository.",
			"ja-JP": "リポジトリのGitHub Actionsワークフローを一覧表示します。",
		},
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":    {Type: "string", Description: "Repository owner"},
				"repo":     {Type: "string", Description: "Repository name"},
				"per_page": {Type: "integer", Description: "Results per page. Default: 30"},
				"page":     {Type: "integer", Description: "Page number. Default: 1"},
			},
			Required: []string{"owner", "repo"},
		},
	},
	{
		ID:   "github:list-workflow-runs",
		Name: "list-workflow-runs",
		Descriptions: modules.LocalizedText{
			"en-US": "List workflow runs for a repository or a single workflow.",
			"ja-JP": "リポジトリまたは特定ワークフローの実行履歴を一覧表示します。",
		},
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":       {Type: "string", Description: "Repository owner"},
				"repo":        {Type: "string", Description: "Repository name"},
				"workflow_id": {Type: "string", Description: "Workflow id or file name (e.g. ci.yml). Omit for all workflows"},
				"branch":      {Type: "string", Description: "Filter by branch"},
				"event":       {Type: "string", Description: "Filter by triggering event"},
				"status":      {Type: "string", Description: "Filter by status or conclusion"},
				"actor":       {Type: "string", Description: "Filter by login that triggered the run"},
				"per_page":    {Type: "integer", Description: "Results per page. Default: 30"},
				"page":        {Type: "integer", Description: "Page number. Default: 1"},
			},
			Required: []string{"owner", "repo"},
		},
	},
	{
		ID:   "github:trigger-workflow",
		Name: "trigger-workflow",
		Descriptions: modules.LocalizedText{
			"en-US": "Trigger a workflow_dispatch event for a workflow.",
			"ja-JP": "ワークフローのworkflow_dispatchイベントを実行します。",
		},
		Annotations: modules.AnnotateCreate,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":       {Type: "string", Description: "Repository owner"},
				"repo":        {Type: "string", Description: "Repository name"},
				"workflow_id": {Type: "string", Description: "Workflow id or file name (e.g. deploy.yml)"},
				"ref":         {Type: "string", Description: "Branch or tag to run on"},
				"inputs":      {Type: "object", Description: "Workflow inputs (max 10 keys)"},
			},
			Required: []string{"owner", "repo", "workflow_id", "ref"},
		},
	},
	// Users
	{
		ID:   "github:get-user",
		Name: "get-user",
		Descriptions: modules.LocalizedText{
			"en-US": "Get a GitHub user's profile by username.",
			"ja-JP": "GitHubユーザーのプロフィールをユーザー名で取得します。",
		},
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"username": {Type: "string", Description: "GitHub username"},
			},
			Required: []string{"username"},
		},
	},
	{
		ID:   "github:get-authenticated-user",
		Name: "get-authenticated-user",
		Descriptions: modules.LocalizedText{
			"en-US": "Get the profile of the user the token belongs to.",
			"ja-JP": "トークンの所有者のプロフィールを取得します。",
		},
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type:       "object",
			Properties: map[string]modules.Property{},
		},
	},
	{
		ID:   "github:list-users",
		Name: "list-users",
		Descriptions: modules.LocalizedText{
			"en-US": "List all users in the order they signed up.",
			"ja-JP": "登録順に全ユーザーを一覧表示します。",
		},
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"since":    {Type: "integer", Description: "Only users with an id greater than this"},
				"per_page": {Type: "integer", Description: "Results per page. Default: 30"},
			},
		},
	},
	// Enterprise administration
	{
		ID:   "github:create-user",
		Name: "create-user",
		Descriptions: modules.LocalizedText{
			"en-US": "Create a user account (GitHub Enterprise Server site admin).",
			"ja-JP": "ユーザーアカウントを作成します（GitHub Enterprise Serverのサイト管理者）。",
		},
		Annotations: modules.AnnotateCreate,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"login":     {Type: "string", Description: "Login for the new user"},
				"email":     {Type: "string", Description: "Email address (required unless built-in authentication is disabled)"},
				"suspended": {Type: "boolean", Description: "Create the user suspended"},
			},
			Required: []string{"login"},
		},
	},
	{
		ID:   "github:delete-user",
		Name: "delete-user",
		Descriptions: modules.LocalizedText{
			"en-US": "Delete a user account (GitHub Enterprise Server site admin).",
			"ja-JP": "ユーザーアカウントを削除します（GitHub Enterprise Serverのサイト管理者）。",
		},
		Annotations: modules.AnnotateDelete,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"username": {Type: "string", Description: "Login of the user to delete"},
			},
			Required: []string{"username"},
		},
	},
	{
		ID:   "github:suspend-user",
		Name: "suspend-user",
		Descriptions: modules.LocalizedText{
			"en-US": "Suspend a user (GitHub Enterprise Server site admin).",
			"ja-JP": "ユーザーを停止します（GitHub Enterprise Serverのサイト管理者）。",
		},
		Annotations: modules.AnnotateUpdate,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"username": {Type: "string", Description: "Login of the user to suspend"},
				"reason":   {Type: "string", Description: "Reason recorded in the audit log"},
			},
			Required: []string{"username"},
		},
	},
	{
		ID:   "github:unsuspend-user",
		Name: "unsuspend-user",
		Descriptions: modules.LocalizedText{
			"en-US": "Unsuspend a user (GitHub Enterprise Server site admin).",
			"ja-JP": "ユーザーの停止を解除します（GitHub Enterprise Serverのサイト管理者）。",
		},
		Annotations: modules.AnnotateUpdate,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"username": {Type: "string", Description: "Login of the user to unsuspend"},
			},
			Required: []string{"username"},
		},
	},
	{
		ID:   "github:get-license-info",
		Name: "get-license-info",
		Descriptions: modules.LocalizedText{
			"en-US": "Get GitHub Enterprise license information: seats, usage and expiry.",
			"ja-JP": "GitHub Enterpriseのライセンス情報（シート数、使用数、有効期限）を取得します。",
		},
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type:       "object",
			Properties: map[string]modules.Property{},
		},
	},
}
