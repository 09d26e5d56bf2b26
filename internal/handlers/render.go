package handlers

import (
	"bytes"
	"html/template"

	"github.com/Brownie44l1/simplehttp/internal/response"
	"github.com/Brownie44l1/simplehttp/internal/servlet"
)

var funcs = template.FuncMap{
	// Episode summaries come from the local data file and already carry markup.
	"trusted": func(s string) template.HTML { return template.HTML(s) },
}

var bookTable = template.Must(template.New("books").Funcs(funcs).Parse(`
<table border=1>
<tr>
	<th>Title</th>
	<th>Author</th>
	<th>Short Description</th>
	<th>Thumbnail</th>
</tr>
{{- range .}}
<tr>
	<td>{{.Title}}</td>
	<td>{{range $i, $a := .Authors}}{{if $i}},<br>{{end}}{{$a}}{{end}}</td>
	<td>{{.ShortDescription}}</td>
	<td><img src='{{.ThumbnailURL}}'/></td>
</tr>
{{- end}}
</table>
`))

var episodeTable = template.Must(template.New("episodes").Funcs(funcs).Parse(`
<table border=1>
<tr>
	<th>Season</th>
	<th>Episode</th>
	<th>Name</th>
	<th>Summary</th>
	<th>Rating</th>
	<th>URL</th>
</tr>
{{- range .}}
<tr>
	<td>{{.Season}}</td>
	<td>{{.Number}}</td>
	<td>{{.Name}}
	<p></p>
	<img src='{{.Image.Medium}}'/>
	</td>
	<td>{{trusted .Summary}}</td>
	<td>{{.Rating.Average}}</td>
	<td>{{.URL}}</td>
</tr>
{{- end}}
</table>
`))

func renderHTML(ctx *servlet.Context, tmpl *template.Template, data any) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		ctx.Error(response.StatusInternalServerError, "")
		return
	}

	ctx.HTML(response.StatusOK, buf.String())
}
