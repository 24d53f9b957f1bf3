// Package export renders the document into a printable page and drives
// the PDF collaborator. The renderer consumes the data model read-only.
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/jonathan/cv-studio/internal/types"
)

var pageTemplate = template.Must(template.New("cv").Funcs(template.FuncMap{
	"join": strings.Join,
	// Photos are data URIs; html/template would otherwise rewrite the
	// data: scheme to an inert placeholder.
	"dataURI": func(s string) template.URL { return template.URL(s) },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.PersonalDetails.FullName}} - CV</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #1e293b; margin: 40px; }
  h1 { margin: 0; font-size: 28px; }
  h2 { font-size: 15px; text-transform: uppercase; letter-spacing: 1px; border-bottom: 1px solid #cbd5e1; padding-bottom: 4px; margin-top: 28px; }
  .title { color: #475569; font-size: 16px; margin-top: 2px; }
  .contact { color: #64748b; font-size: 12px; margin-top: 8px; }
  .photo { float: right; width: 96px; height: 96px; object-fit: cover; border-radius: 50%; }
  .entry { margin-top: 12px; }
  .entry-head { display: flex; justify-content: space-between; font-weight: bold; font-size: 13px; }
  .dates { color: #64748b; font-weight: normal; }
  ul { margin: 6px 0 0 18px; padding: 0; font-size: 12px; }
  p { font-size: 12px; }
</style>
</head>
<body>
{{if .PersonalDetails.Photo}}<img class="photo" src="{{dataURI .PersonalDetails.Photo}}" alt="">{{end}}
<h1>{{.PersonalDetails.FullName}}</h1>
<div class="title">{{.PersonalDetails.JobTitle}}</div>
<div class="contact">{{.PersonalDetails.Email}} {{.PersonalDetails.Phone}} {{.PersonalDetails.Address}} {{.PersonalDetails.LinkedIn}}</div>
{{if .Summary}}
<h2>Summary</h2>
<p>{{.Summary}}</p>
{{end}}
{{if .WorkExperience}}
<h2>Work Experience</h2>
{{range .WorkExperience}}
<div class="entry">
  <div class="entry-head"><span>{{.JobTitle}} · {{.Company}}</span><span class="dates">{{.StartDate}} - {{.EndDate}}</span></div>
  {{if .Bullets}}<ul>{{range .Bullets}}<li>{{.}}</li>{{end}}</ul>{{end}}
</div>
{{end}}
{{end}}
{{if .Education}}
<h2>Education</h2>
{{range .Education}}
<div class="entry">
  <div class="entry-head"><span>{{.Degree}} · {{.Institution}}</span><span class="dates">{{.StartDate}} - {{.EndDate}}</span></div>
</div>
{{end}}
{{end}}
{{if .Skills}}
<h2>Skills</h2>
<p>{{join .Skills ", "}}</p>
{{end}}
</body>
</html>`))

// RenderHTML produces the printable page for the document.
func RenderHTML(cv types.CVData) (string, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, cv); err != nil {
		return "", fmt.Errorf("failed to render CV page: %w", err)
	}
	return buf.String(), nil
}
