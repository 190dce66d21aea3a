package http

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/sagarc03/linkshelf"
)

var listingTemplate = template.Must(template.New("listing").Parse(`<p><b>Current path:</b> {{.Path}}</p>
<ul>
{{- range .Items}}
{{- if .IsDir}}
<li><b><a href="{{.URL}}">{{.Name}}</a></b></li>
{{- else}}
<li><a href="{{.URL}}">{{.Name}}</a></li>
{{- end}}
{{- end}}
</ul>
<p><i>Links expire after {{.ValidityHours}} hour{{if ne .ValidityHours 1}}s{{end}}.</i></p>
`))

// WriteListing writes the listing as an HTML fragment.
func WriteListing(w http.ResponseWriter, code int, listing linkshelf.Listing) error {
	var buf bytes.Buffer
	if err := listingTemplate.Execute(&buf, listing); err != nil {
		slog.Error("failed to render listing", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, err := buf.WriteTo(w)
	return err
}
