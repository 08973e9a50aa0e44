package report

import (
	"html/template"
	"strings"
)

// Table cells are emitted one per line so the PRONOM link pass can work
// line by line.
const documentTemplates = `
{{- define "open" -}}
<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Brunnhilde report for: {{.}}</title>
<link rel="stylesheet" href="https://maxcdn.bootstrapcdn.com/bootstrap/3.3.7/css/bootstrap.min.css">
</head>
<body>
<a id="top"></a>
<h1>Brunnhilde HTML report</h1>
{{end}}

{{- define "provenance" -}}
<h3>Input source (directory or disk image)</h3>
<p>{{.Source}}</p>
<h3>Accession/Identifier</h3>
<p>{{.Identifier}}</p>
<h2>Provenance information</h2>
<h3>Run ID</h3>
<p>{{.RunID}}</p>
<h3>Brunnhilde version</h3>
<p>{{.BrunnhildeVersion}}</p>
<h3>Siegfried version</h3>
<p>{{.SiegfriedVersion}}</p>
<h3>Siegfried command</h3>
<p>{{.Command}}</p>
<h3>Time of scan</h3>
<p>{{.StartedText}}</p>
{{end}}

{{- define "summary" -}}
<h2>Aggregate stats</h2>
<h3>Overview</h3>
<p>Total files: {{.TotalFiles}}</p>
{{- if .TotalSize}}
<p>Total size: {{.TotalSize}}</p>
{{- end}}
<p>Years (last modified): {{.Years}}</p>
<p>Earliest date: {{.Earliest}}</p>
<p>Latest date: {{.Latest}}</p>
{{- if .UnparsedYears}}
<p><em>Modified years that could not be read: {{join .UnparsedYears ", "}}</em></p>
{{- end}}
{{- if .UnparsedDates}}
<p><em>Modified dates that could not be read: {{join .UnparsedDates ", "}}</em></p>
{{- end}}
<h3>File contents*</h3>
<p>Distinct files: {{.DistinctFiles}}</p>
<p>Distinct files that have duplicates: {{.DistinctDuplicatedHashes}}</p>
<p>Duplicate copies of distinct files: {{.DuplicateCopies}}</p>
<p>Empty files: {{.EmptyFiles}}</p>
<p>*<em>Calculated by md5 hash. Empty files are not counted in first three categories. Total files = distinct files + duplicate copies + empty files.</em></p>
<h3>Format identification</h3>
<p>Identified file formats: {{.FormatCount}}</p>
<p>Unidentified files: {{.UnidentifiedFiles}}</p>
<p>Siegfried warnings: {{.Warnings}}</p>
<h3>Errors</h3>
<p>Siegfried errors: {{.Errors}}</p>
<h2>Detailed reports</h2>
{{- range .Index}}
<p><a href="#{{.Anchor}}">{{.Title}}</a></p>
{{- end}}
{{end}}

{{- define "section" -}}
<a id="{{.Anchor}}"></a>
<h3>{{.Title}}</h3>
{{- with .Note}}
<p><em>{{.}}</em></p>
{{- end}}
{{- if .Rows}}
<table class="table table-striped table-bordered table-condensed">
<tr>
{{- range .Header}}
<th>{{.}}</th>
{{- end}}
</tr>
{{- range .Rows}}
<tr>
{{- range .}}
<td>{{.}}</td>
{{- end}}
</tr>
{{- end}}
</table>
{{- else}}
<p>None found.</p>
{{- end}}
<p>(<a href="#top">Return to top</a>)</p>
{{end}}

{{- define "close" -}}
</body>
</html>
{{end}}
`

var documentTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(documentTemplates))
