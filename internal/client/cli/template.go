package cli

import (
	"text/template"

	"picfeed/pkg/api"
)

const postListTemplate = `{{- range . }}
----------------------------------------
{{ .Caption }}
{{ .ImageURL }}
posted by {{ .OwnerUsername }}{{ if not .CreatedAt.IsZero }} at {{ .CreatedAt.Format "2006-01-02 15:04" }}{{ end }}
{{- else }}
(no posts)
{{- end }}
`

var postListTmpl = template.Must(template.New("posts").Parse(postListTemplate))

func (c *Cli) renderPosts(posts []api.Post) {
	if err := postListTmpl.Execute(c.io, posts); err != nil {
		c.io.Printf("failed to render posts: %v\n", err)
	}
}
