package site

// pagesTemplate holds every page as a named template. Styling is a
// small inline sheet so the output has no asset pipeline.
const pagesTemplate = `
{{define "head"}}
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 0 auto; max-width: 960px; padding: 2rem 1rem; color: #1f2328; }
  h1 { margin-bottom: 0.25rem; }
  .meta { color: #656d76; font-size: 0.9rem; margin-bottom: 2rem; }
  table { border-collapse: collapse; width: 100%; }
  th, td { text-align: left; padding: 0.5rem 0.75rem; border-bottom: 1px solid #d0d7de; }
  th { font-size: 0.85rem; text-transform: uppercase; color: #656d76; }
  a { color: #0969da; text-decoration: none; }
  a:hover { text-decoration: underline; }
  .grade { display: inline-block; min-width: 2.2em; text-align: center; padding: 0.1rem 0.4rem; border-radius: 0.4rem; font-weight: 600; color: #fff; }
  .grade-a { background: #1a7f37; }
  .grade-b { background: #4d8bd6; }
  .grade-c { background: #bf8700; }
  .grade-d { background: #bc4c00; }
  .grade-f { background: #cf222e; }
  .stale { color: #bc4c00; }
  .card { border: 1px solid #d0d7de; border-radius: 0.5rem; padding: 1rem; margin-bottom: 1rem; }
  .card h2 { margin: 0 0 0.25rem; font-size: 1.1rem; }
  .desc { color: #656d76; font-size: 0.9rem; }
</style>
{{end}}

{{define "gradeBadge"}}{{if ge .Total 80}}<span class="grade grade-a">{{.Grade}}</span>{{else if ge .Total 70}}<span class="grade grade-b">{{.Grade}}</span>{{else if ge .Total 60}}<span class="grade grade-c">{{.Grade}}</span>{{else if ge .Total 50}}<span class="grade grade-d">{{.Grade}}</span>{{else}}<span class="grade grade-f">{{.Grade}}</span>{{end}}{{end}}

{{define "index"}}<!DOCTYPE html>
<html lang="en">
<head>
<title>Testing Resources on GitHub</title>
{{template "head"}}
</head>
<body>
<h1>Testing Resources on GitHub</h1>
<p class="meta">
  {{.TotalRepos}} repositories across {{len .Categories}} categories.
  Cycle {{.CycleCount}}. Last scan {{since .LastScan .GeneratedAt}}{{if not .LastFull.IsZero}}, last full pass {{since .LastFull .GeneratedAt}}{{end}}.
</p>
{{range .Categories}}
<div class="card">
  <h2><a href="{{.ID}}.html">{{.Name}}</a></h2>
  <p class="desc">{{.Description}}</p>
  <p class="meta">
    {{len .Repos}} repositories.
    {{if .LastScanned.IsZero}}<span class="stale">Not scanned yet.</span>{{else}}Scanned {{since .LastScanned .Now}}.{{end}}
  </p>
</div>
{{end}}
</body>
</html>
{{end}}

{{define "category"}}<!DOCTYPE html>
<html lang="en">
<head>
<title>{{.Name}} – Testing Resources</title>
{{template "head"}}
</head>
<body>
<p><a href="index.html">&larr; All categories</a></p>
<h1>{{.Name}}</h1>
<p class="meta">
  {{.Description}}<br>
  {{len .Repos}} repositories.
  {{if .LastScanned.IsZero}}<span class="stale">Not scanned yet.</span>{{else}}Scanned {{since .LastScanned .Now}}.{{end}}
</p>
{{if .Repos}}
<table>
<tr><th>Grade</th><th>Score</th><th>Repository</th><th>Stars</th><th>Language</th><th>Description</th></tr>
{{range .Repos}}
<tr>
  <td>{{template "gradeBadge" .Score}}</td>
  <td>{{.Score.Total}}</td>
  <td><a href="{{.URL}}">{{.FullName}}</a></td>
  <td>{{.Stars}}</td>
  <td>{{.Language}}</td>
  <td>{{.Description}}</td>
</tr>
{{end}}
</table>
{{else}}
<p>No repositories collected for this category yet.</p>
{{end}}
</body>
</html>
{{end}}
`
