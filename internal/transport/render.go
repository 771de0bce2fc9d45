package transport

import "html/template"

// The page is a single dark viewport with the artwork centered and the
// source link pinned to the bottom; a CSS spinner shows behind the
// image while it loads.
var pageTemplates = template.Must(template.New("").Parse(`
{{define "head"}}<meta charset="utf8">
<meta property="og:title" content="{{.EmbedTitle}}">
<meta property="og:description" content="{{.EmbedDesc}}">
<meta name="theme-color" content="{{.EmbedColor}}">
<link rel="preconnect" href="https://fonts.googleapis.com">
<link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
<link rel="stylesheet" href="https://fonts.googleapis.com/css2?family=PT+Mono&display=swap">
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/@chgibb/css-spinners@2.2.1/css/spinners.min.css">
<title>{{.Title}}</title>{{end}}

{{define "body-style"}}color: #ffffff; margin: 0px; background: #0e0e0e; height: 100vh; width: 100vw; display: flex; font-family: 'PT Mono', monospace; font-weight: 400; font-style: normal; font-optical-sizing: auto;{{end}}

{{define "art"}}<!DOCTYPE html>
<html>
<head>{{template "head" .}}</head>
<body style="{{template "body-style"}}">
<div style="display: block; margin: auto; max-height: 98vh; max-width: 98vw;">
<div class="throbber-loader" style="position: absolute; top: 50%; left: 50%; z-index: -1;"></div>
<img style="max-height: 98vh; max-width: 98vw;" src="{{.ImageURL}}">
</div>
<div style="position: absolute; bottom: 0; display: flex; flex-direction: column; gap: 2vh; background-color: #0e0e0eaa;">
<a style="font-size: 1vmax; color: #ffffff; left: 0;" href="{{.SourceURL}}" target="_blank">source: {{.SourceURL}}</a>
</div>
</body>
</html>{{end}}

{{define "error"}}<!DOCTYPE html>
<html>
<head>{{template "head" .}}</head>
<body style="{{template "body-style"}}">
<p style="display: block; margin: auto; font-size: 1.3em;">Something went wrong:<br>{{.Message}}</p>
</body>
</html>{{end}}
`))

type artPage struct {
	Title      string
	EmbedTitle string
	EmbedDesc  string
	EmbedColor string
	ImageURL   string
	SourceURL  string
}

type errorPage struct {
	Title      string
	EmbedTitle string
	EmbedDesc  string
	EmbedColor string
	Message    string
}
