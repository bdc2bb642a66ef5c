package render

import (
	htmltemplate "html/template"
	"io"
	"text/template"
)

// HasRows reports whether the list has file rows to draw.
func (l FileList) HasRows() bool {
	return l.State == ListRows && len(l.Rows) > 0
}

// CSSClass is the class of the list container in the web front end.
func (l FileList) CSSClass() string {
	if l.State == ListEmpty || l.State == ListError {
		return "files-list empty"
	}
	return "files-list"
}

const filesText = `{{if .HasRows}}{{range .Rows}}[{{.ID}}] {{.Filename}}
      Owner : {{.Owner}}  Créé : {{.Created}}
{{end}}{{else if .Message}}{{.Message}}
{{end}}`

const filesHTML = `{{if .HasRows}}{{range .Rows}}<div class="file-row">
  <div class="file-name">{{.Filename}}</div>
  <div class="file-meta"><span>Owner : {{.Owner}}</span> <span>Créé : {{.Created}}</span></div>
  <div class="file-actions">
    <button class="btn btn-outline btn-xs" data-action="view" data-id="{{.ID}}">Voir</button>
    <button class="btn btn-secondary btn-xs" data-action="download" data-id="{{.ID}}" data-filename="{{.Filename}}">Télécharger</button>
  </div>
</div>
{{end}}{{else}}<p>{{.Message}}</p>
{{end}}`

const blockedText = `{{if .Users}}{{range .Users}}- {{.}}
{{end}}{{else}}{{.Message}}
{{end}}`

const blockedHTML = `{{if .Users}}{{range .Users}}<div>{{.}}</div>{{end}}{{else}}{{.Message}}{{end}}`

var (
	filesTextTmpl   = template.Must(template.New("files").Parse(filesText))
	blockedTextTmpl = template.Must(template.New("blocked").Parse(blockedText))
	filesHTMLTmpl   = htmltemplate.Must(htmltemplate.New("files").Parse(filesHTML))
	blockedHTMLTmpl = htmltemplate.Must(htmltemplate.New("blocked").Parse(blockedHTML))
)

// WriteFilesText writes l for a terminal.
func WriteFilesText(w io.Writer, l FileList) error {
	return filesTextTmpl.Execute(w, l)
}

// WriteFilesHTML writes l as the inner HTML of the files container. Names
// and owners are escaped.
func WriteFilesHTML(w io.Writer, l FileList) error {
	return filesHTMLTmpl.Execute(w, l)
}

// WriteBlockedText writes b for a terminal.
func WriteBlockedText(w io.Writer, b BlockedList) error {
	return blockedTextTmpl.Execute(w, b)
}

// WriteBlockedHTML writes b as the inner HTML of the blocked list container.
func WriteBlockedHTML(w io.Writer, b BlockedList) error {
	return blockedHTMLTmpl.Execute(w, b)
}
