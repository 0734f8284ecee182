package github

import (
	"encoding/json"
	"fmt"
	"strings"
)

// =============================================================================
// Compact formatters per tool: (toolName, JSON) -> CSV or Markdown text
// =============================================================================

func formatCompact(toolName, jsonStr string) string {
	switch toolName {
	// Lists -> CSV
	case "list-repositories":
		return reposToCSV(jsonStr)
	case "list-branches":
		return branchesToCSV(jsonStr)
	case "list-commits":
		return commitsToCSV(jsonStr)
	case "list-issues":
		return issuesToCSV(jsonStr)
	case "list-pull-requests":
		return prsToCSV(jsonStr)
	case "list-pull-request-files":
		return prFilesToCSV(jsonStr)
	case "list-workflows":
		return workflowsToCSV(jsonStr)
	case "list-workflow-runs":
		return workflowRunsToCSV(jsonStr)
	case "list-users":
		return usersToCSV(jsonStr)
	// Single item -> MD
	case "get-user", "get-authenticated-user":
		return userToCompact(jsonStr)
	case "get-repository":
		return repoToCompact(jsonStr)
	case "get-issue":
		return issueToCompact(jsonStr)
	case "get-pull-request":
		return prToCompact(jsonStr)
	case "get-file-contents":
		return contentsToCompact(jsonStr)
	case "get-license-info":
		return licenseToCompact(jsonStr)
	// Writes: echo identifying fields only
	case "create-repository", "update-repository":
		return pickKeys(jsonStr, "full_name", "html_url", "private", "default_branch", "archived")
	case "create-issue", "update-issue":
		return pickKeys(jsonStr, "number", "html_url", "state")
	case "add-issue-comment":
		return pickKeys(jsonStr, "id", "html_url")
	case "create-pull-request", "update-pull-request":
		return pickKeys(jsonStr, "number", "html_url", "state", "draft")
	case "merge-pull-request":
		return pickKeys(jsonStr, "merged", "sha", "message")
	case "create-user":
		return pickKeys(jsonStr, "login", "id", "site_admin", "html_url")
	// describe-repository is built compact; deletes and dispatches are plain text
	default:
		return jsonStr
	}
}

// pickKeys extracts only the specified keys from a JSON object.
func pickKeys(jsonStr string, keys ...string) string {
	var data map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return jsonStr
	}
	result := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := data[k]; ok && v != nil {
			result[k] = v
		}
	}
	out, err := json.Marshal(result)
	if err != nil {
		return jsonStr
	}
	return string(out)
}

// userToCompact: user profile
func userToCompact(jsonStr string) string {
	var u map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &u); err != nil {
		return jsonStr
	}
	var sb strings.Builder
	sb.WriteString("# " + str(u, "login"))
	if name := str(u, "name"); name != "" {
		fmt.Fprintf(&sb, " (%s)", name)
	}
	sb.WriteString("\n")
	if t := str(u, "type"); t != "" && t != "User" {
		fmt.Fprintf(&sb, "- **Type**: %s\n", t)
	}
	if boolVal(u, "site_admin") {
		sb.WriteString("- **Site Admin**: true\n")
	}
	if company := str(u, "company"); company != "" {
		fmt.Fprintf(&sb, "- **Company**: %s\n", company)
	}
	if bio := str(u, "bio"); bio != "" {
		fmt.Fprintf(&sb, "- **Bio**: %s\n", bio)
	}
	if repos, ok := u["public_repos"].(float64); ok {
		fmt.Fprintf(&sb, "- **Repos**: %d\n", int(repos))
	}
	if followers, ok := u["followers"].(float64); ok {
		fmt.Fprintf(&sb, "- **Followers**: %d\n", int(followers))
	}
	if created := date(str(u, "created_at")); created != "" {
		fmt.Fprintf(&sb, "- **Joined**: %s\n", created)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// usersToCSV: id,login,type,site_admin
func usersToCSV(jsonStr string) string {
	var users []map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &users); err != nil {
		return jsonStr
	}
	if len(users) == 0 {
		return "# 0 users"
	}
	var sb strings.Builder
	sb.WriteString("```csv\nid,login,type,site_admin\n")
	for _, u := range users {
		fmt.Fprintf(&sb, "%d,%s,%s,%v\n",
			intVal(u, "id"),
			csvEscape(str(u, "login")),
			str(u, "type"),
			boolVal(u, "site_admin"),
		)
	}
	sb.WriteString("```")
	return sb.String()
}

// reposToCSV: name,visibility,language,stars,fork,updated
func reposToCSV(jsonStr string) string {
	var repos []map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &repos); err != nil {
		return jsonStr
	}
	if len(repos) == 0 {
		return "# 0 repos"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "```csv  # %d repos\nname,visibility,language,stars,fork,updated\n", len(repos))
	for _, r := range repos {
		fmt.Fprintf(&sb, "%s,%s,%s,%d,%v,%s\n",
			csvEscape(str(r, "name")),
			str(r, "visibility"),
			str(r, "language"),
			intVal(r, "stargazers_count"),
			boolVal(r, "fork"),
			date(str(r, "updated_at")),
		)
	}
	sb.WriteString("```")
	return sb.String()
}

// repoToCompact: single repo detail
func repoToCompact(jsonStr string) string {
	var r map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &r); err != nil {
		return jsonStr
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", str(r, "full_name"))
	if desc := str(r, "description"); desc != "" {
		fmt.Fprintf(&sb, "- **Description**: %s\n", desc)
	}
	if lang := str(r, "language"); lang != "" {
		fmt.Fprintf(&sb, "- **Language**: %s\n", lang)
	}
	fmt.Fprintf(&sb, "- **Stars**: %d\n", intVal(r, "stargazers_count"))
	fmt.Fprintf(&sb, "- **Forks**: %d\n", intVal(r, "forks_count"))
	fmt.Fprintf(&sb, "- **Open Issues**: %d\n", intVal(r, "open_issues_count"))
	fmt.Fprintf(&sb, "- **Default Branch**: %s\n", str(r, "default_branch"))
	if vis := str(r, "visibility"); vis != "" {
		fmt.Fprintf(&sb, "- **Visibility**: %s\n", vis)
	}
	if boolVal(r, "archived") {
		sb.WriteString("- **Archived**: true\n")
	}
	if pushed := date(str(r, "pushed_at")); pushed != "" {
		fmt.Fprintf(&sb, "- **Last Push**: %s\n", pushed)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// branchesToCSV: name,protected,sha
func branchesToCSV(jsonStr string) string {
	var branches []map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &branches); err != nil {
		return jsonStr
	}
	if len(branches) == 0 {
		return "# 0 branches"
	}
	var sb strings.Builder
	sb.WriteString("```csv\nname,protected,sha\n")
	for _, b := range branches {
		sha := ""
		if c, ok := b["commit"].(map[string]any); ok {
			sha = shortSHA(str(c, "sha"))
		}
		fmt.Fprintf(&sb, "%s,%v,%s\n", csvEscape(str(b, "name")), boolVal(b, "protected"), sha)
	}
	sb.WriteString("```")
	return sb.String()
}

// commitsToCSV: sha,author,date,message
func commitsToCSV(jsonStr string) string {
	var commits []map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &commits); err != nil {
		return jsonStr
	}
	if len(commits) == 0 {
		return "# 0 commits"
	}
	var sb strings.Builder
	sb.WriteString("```csv\nsha,author,date,message\n")
	for _, c := range commits {
		var author, when, message string
		if cm, ok := c["commit"].(map[string]any); ok {
			message = firstLine(str(cm, "message"))
			if a, ok := cm["author"].(map[string]any); ok {
				author = str(a, "name")
				when = date(str(a, "date"))
			}
		}
		fmt.Fprintf(&sb, "%s,%s,%s,%s\n",
			shortSHA(str(c, "sha")),
			csvEscape(author),
			when,
			csvEscape(message),
		)
	}
	sb.WriteString("```")
	return sb.String()
}

// issuesToCSV: number,title,state,author,labels,comments,created,pr
func issuesToCSV(jsonStr string) string {
	var issues []map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &issues); err != nil {
		return jsonStr
	}
	if len(issues) == 0 {
		return "# 0 issues"
	}
	var sb strings.Builder
	sb.WriteString("```csv\nnumber,title,state,author,labels,comments,created,pr\n")
	for _, i := range issues {
		_, isPR := i["pull_request"]
		fmt.Fprintf(&sb, "%d,%s,%s,%s,%s,%d,%s,%v\n",
			intVal(i, "number"),
			csvEscape(str(i, "title")),
			str(i, "state"),
			csvEscape(login(i)),
			csvEscape(labelsStr(i)),
			intVal(i, "comments"),
			date(str(i, "created_at")),
			isPR,
		)
	}
	sb.WriteString("```")
	return sb.String()
}

// issueToCompact: single issue
func issueToCompact(jsonStr string) string {
	var i map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &i); err != nil {
		return jsonStr
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "# #%d: %s\n", intVal(i, "number"), str(i, "title"))
	fmt.Fprintf(&sb, "- **State**: %s\n", str(i, "state"))
	if author := login(i); author != "" {
		fmt.Fprintf(&sb, "- **Author**: %s\n", author)
	}
	if labels := labelsStr(i); labels != "" {
		fmt.Fprintf(&sb, "- **Labels**: %s\n", labels)
	}
	if n := intVal(i, "comments"); n > 0 {
		fmt.Fprintf(&sb, "- **Comments**: %d\n", n)
	}
	if created := date(str(i, "created_at")); created != "" {
		fmt.Fprintf(&sb, "- **Created**: %s\n", created)
	}
	if body := str(i, "body"); body != "" {
		fmt.Fprintf(&sb, "\n## Body\n%s\n", truncate(body, 3000))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// prsToCSV: number,title,state,author,draft,head,base,created
func prsToCSV(jsonStr string) string {
	var prs []map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &prs); err != nil {
		return jsonStr
	}
	if len(prs) == 0 {
		return "# 0 PRs"
	}
	var sb strings.Builder
	sb.WriteString("```csv\nnumber,title,state,author,draft,head,base,created\n")
	for _, p := range prs {
		fmt.Fprintf(&sb, "%d,%s,%s,%s,%v,%s,%s,%s\n",
			intVal(p, "number"),
			csvEscape(str(p, "title")),
			str(p, "state"),
			csvEscape(login(p)),
			boolVal(p, "draft"),
			csvEscape(ref(p, "head")),
			csvEscape(ref(p, "base")),
			date(str(p, "created_at")),
		)
	}
	sb.WriteString("```")
	return sb.String()
}

// prToCompact: single PR detail
func prToCompact(jsonStr string) string {
	var p map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &p); err != nil {
		return jsonStr
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "# #%d: %s\n", intVal(p, "number"), str(p, "title"))
	fmt.Fprintf(&sb, "- **State**: %s\n", str(p, "state"))
	if boolVal(p, "draft") {
		sb.WriteString("- **Draft**: true\n")
	}
	if boolVal(p, "merged") {
		sb.WriteString("- **Merged**: true\n")
	} else if m, ok := p["mergeable"].(bool); ok {
		fmt.Fprintf(&sb, "- **Mergeable**: %v\n", m)
	}
	if author := login(p); author != "" {
		fmt.Fprintf(&sb, "- **Author**: %s\n", author)
	}
	fmt.Fprintf(&sb, "- **Head**: %s\n", ref(p, "head"))
	fmt.Fprintf(&sb, "- **Base**: %s\n", ref(p, "base"))
	if _, ok := p["changed_files"]; ok {
		fmt.Fprintf(&sb, "- **Changes**: %d files, +%d -%d\n", intVal(p, "changed_files"), intVal(p, "additions"), intVal(p, "deletions"))
	}
	if created := date(str(p, "created_at")); created != "" {
		fmt.Fprintf(&sb, "- **Created**: %s\n", created)
	}
	if body := str(p, "body"); body != "" {
		fmt.Fprintf(&sb, "\n## Body\n%s\n", truncate(body, 3000))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// prFilesToCSV: filename,status,additions,deletions
func prFilesToCSV(jsonStr string) string {
	var files []map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &files); err != nil {
		return jsonStr
	}
	if len(files) == 0 {
		return "# 0 files"
	}
	var sb strings.Builder
	sb.WriteString("```csv\nfilename,status,additions,deletions\n")
	for _, f := range files {
		fmt.Fprintf(&sb, "%s,%s,%d,%d\n",
			csvEscape(str(f, "filename")),
			str(f, "status"),
			intVal(f, "additions"),
			intVal(f, "deletions"),
		)
	}
	sb.WriteString("```")
	return sb.String()
}

// contentsToCompact: a decoded file as MD, or a directory listing as CSV.
func contentsToCompact(jsonStr string) string {
	var entries []map[string]any
	if json.Unmarshal([]byte(jsonStr), &entries) == nil {
		if len(entries) == 0 {
			return "# 0 entries"
		}
		var sb strings.Builder
		sb.WriteString("```csv\nname,type,size\n")
		for _, e := range entries {
			fmt.Fprintf(&sb, "%s,%s,%d\n", csvEscape(str(e, "name")), str(e, "type"), intVal(e, "size"))
		}
		sb.WriteString("```")
		return sb.String()
	}

	var f map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &f); err != nil {
		return jsonStr
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", str(f, "path"))
	fmt.Fprintf(&sb, "- **Size**: %d bytes\n", intVal(f, "size"))
	if sha := str(f, "sha"); sha != "" {
		fmt.Fprintf(&sb, "- **SHA**: %s\n", shortSHA(sha))
	}
	if content := str(f, "content"); content != "" {
		fmt.Fprintf(&sb, "\n```\n%s\n```\n", truncate(content, 5000))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// workflowsToCSV: id,name,state,path
func workflowsToCSV(jsonStr string) string {
	var wrapper map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &wrapper); err != nil {
		return jsonStr
	}
	workflows, ok := wrapper["workflows"].([]any)
	if !ok {
		return jsonStr
	}
	if len(workflows) == 0 {
		return "# 0 workflows"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "```csv  # %d/%d workflows\nid,name,state,path\n", len(workflows), intVal(wrapper, "total_count"))
	for _, raw := range workflows {
		w, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "%d,%s,%s,%s\n",
			intVal(w, "id"),
			csvEscape(str(w, "name")),
			str(w, "state"),
			csvEscape(str(w, "path")),
		)
	}
	sb.WriteString("```")
	return sb.String()
}

// workflowRunsToCSV: id,name,status,conclusion,branch,event,created
func workflowRunsToCSV(jsonStr string) string {
	var wrapper map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &wrapper); err != nil {
		return jsonStr
	}
	runs, ok := wrapper["workflow_runs"].([]any)
	if !ok {
		return jsonStr
	}
	if len(runs) == 0 {
		return "# 0 workflow runs"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "```csv  # %d/%d runs\nid,name,status,conclusion,branch,event,created\n", len(runs), intVal(wrapper, "total_count"))
	for _, raw := range runs {
		r, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "%d,%s,%s,%s,%s,%s,%s\n",
			intVal(r, "id"),
			csvEscape(str(r, "name")),
			str(r, "status"),
			str(r, "conclusion"),
			csvEscape(str(r, "head_branch")),
			str(r, "event"),
			date(str(r, "created_at")),
		)
	}
	sb.WriteString("```")
	return sb.String()
}

// licenseToCompact: enterprise license summary
func licenseToCompact(jsonStr string) string {
	var l map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &l); err != nil {
		return jsonStr
	}
	var sb strings.Builder
	sb.WriteString("# GitHub Enterprise License\n")
	seats := "unlimited"
	if s, ok := l["seats"].(float64); ok {
		seats = fmt.Sprintf("%d", int(s))
	}
	fmt.Fprintf(&sb, "- **Seats**: %s\n", seats)
	fmt.Fprintf(&sb, "- **Seats Used**: %d\n", intVal(l, "seats_used"))
	if avail, ok := l["seats_available"].(float64); ok {
		fmt.Fprintf(&sb, "- **Seats Available**: %d\n", int(avail))
	}
	if kind := str(l, "kind"); kind != "" {
		fmt.Fprintf(&sb, "- **Kind**: %s\n", kind)
	}
	if exp := date(str(l, "expire_at")); exp != "" {
		fmt.Fprintf(&sb, "- **Expires**: %s (%d days)\n", exp, intVal(l, "days_until_expiration"))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// =============================================================================
// Helpers
// =============================================================================

func str(obj map[string]any, key string) string {
	if v, ok := obj[key].(string); ok {
		return v
	}
	return ""
}

func intVal(obj map[string]any, key string) int {
	if v, ok := obj[key].(float64); ok {
		return int(v)
	}
	return 0
}

func boolVal(obj map[string]any, key string) bool {
	if v, ok := obj[key].(bool); ok {
		return v
	}
	return false
}

// login returns obj.user.login.
func login(obj map[string]any) string {
	if u, ok := obj["user"].(map[string]any); ok {
		return str(u, "login")
	}
	return ""
}

// ref returns obj[key].ref for pull request head/base.
func ref(obj map[string]any, key string) string {
	if r, ok := obj[key].(map[string]any); ok {
		return str(r, "ref")
	}
	return ""
}

func labelsStr(obj map[string]any) string {
	labels, ok := obj["labels"].([]any)
	if !ok || len(labels) == 0 {
		return ""
	}
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		if lm, ok := l.(map[string]any); ok {
			if name := str(lm, "name"); name != "" {
				names = append(names, name)
			}
		}
	}
	return strings.Join(names, ";")
}

// date keeps the YYYY-MM-DD part of an ISO 8601 timestamp.
func date(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

func firstLine(s string) string {
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		return s[:nl]
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "...(truncated)"
}

func csvEscape(s string) string {
	if s == "" {
		return ""
	}
	if strings.ContainsAny(s, ",\"\n\r") {
		return "\"" + strings.ReplaceAll(s, "\"", "\"\"") + "\""
	}
	return s
}
