package server

import (
	"html/template"

	"github.com/maxbolgarin/whoami/internal/model"
)

// page refreshes itself while any slot is still loading
type page struct {
	Bio       model.Bio
	AvatarURL string
	Avatar    string
	Commits   []model.DisplayCommit
	State     string
	Error     string
	Refresh   bool
}

func newPage(s whoamiResponse) page {
	return page{
		Bio:       s.Bio,
		AvatarURL: s.Avatar.URL,
		Avatar:    s.Avatar.State,
		Commits:   s.Commits.Items,
		State:     s.Commits.State,
		Error:     s.Commits.Error,
		Refresh:   s.Avatar.State == "empty" || s.Commits.State == "empty",
	}
}

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>$ whoami</title>
{{- if .Refresh}}
<meta http-equiv="refresh" content="2">
{{- end}}
<style>
body { background: #1b1b1b; color: #d0d0d0; font-family: Hack, monospace; }
h1 { color: #00ff00; font-size: 16px; }
.loading { color: #808080; }
td.repo { padding-right: 1em; white-space: nowrap; }
a { color: #5a9bd5; }
</style>
</head>
<body>
<h1>$ whoami</h1>
<table><tr>
<td>{{if .AvatarURL}}<img src="{{.AvatarURL}}" width="120" height="120" alt="profile picture">{{else if eq .Avatar "failed"}}<span class="loading">no picture</span>{{else}}<span class="loading">loading...</span>{{end}}</td>
<td>
<div style="font-size: 24px">{{.Bio.Name}}</div>
{{- with .Bio.GitHubURL}}
<div><a href="{{.}}">{{$.Bio.GitHub}}</a></div>
{{- end}}
{{- with .Bio.MailtoURL}}
<div><a href="{{.}}">&#9993; {{$.Bio.Email}}</a></div>
{{- end}}
</td>
</tr></table>
<hr>
<h2>Latest Commits</h2>
{{- if eq .State "populated"}}
<table>
{{- range .Commits}}
<tr><td class="repo"><a href="{{.RepoURL}}">[{{.RepoName}}]</a></td><td title="{{.Message}}">{{.MessageShort}}</td></tr>
{{- end}}
</table>
{{- else if eq .State "failed"}}
<p class="loading">unavailable: {{.Error}}</p>
{{- else}}
<p class="loading">loading...</p>
{{- end}}
</body>
</html>
`))
