package renderer

import (
	"html/template"
	"io"

	"Backend-Formcraft/src/models"
)

// Mode selects how the HTML page behaves.
type Mode string

const (
	ModePreview Mode = "preview" // read-only, no submit
	ModePublic  Mode = "public"  // posts answers to Action
)

// PageOptions extra state for the HTML page.
type PageOptions struct {
	Mode      Mode
	Action    string
	Values    models.AnswerMap
	Errors    models.FieldErrorMap
	Submitted bool
	Message   string
}

type pageOption struct {
	Value   string
	Label   string
	Checked bool
}

type pageControl struct {
	Control
	Value   string
	Error   string
	Options []pageOption
}

type page struct {
	Form     RenderedForm
	Opts     PageOptions
	Controls []pageControl
	Readonly bool
}

// HTML writes the rendered form as a standalone HTML page.
func HTML(w io.Writer, form RenderedForm, opts PageOptions) error {
	if opts.Mode == "" {
		opts.Mode = ModePreview
	}
	p := page{
		Form:     form,
		Opts:     opts,
		Readonly: opts.Mode == ModePreview,
		Controls: make([]pageControl, 0, len(form.Controls)),
	}
	for _, c := range form.Controls {
		pc := pageControl{Control: c, Error: opts.Errors[c.FieldID]}
		answer := opts.Values[c.FieldID]
		if !answer.IsList {
			pc.Value = answer.Text
		}
		for _, o := range c.Options {
			pc.Options = append(pc.Options, pageOption{
				Value:   o.Value,
				Label:   o.Label,
				Checked: isChosen(answer, o.Value),
			})
		}
		p.Controls = append(p.Controls, pc)
	}
	return pageTemplate.Execute(w, p)
}

func isChosen(answer models.AnswerValue, option string) bool {
	if answer.IsList {
		for _, v := range answer.List {
			if v == option {
				return true
			}
		}
		return false
	}
	return answer.Present && answer.Text == option
}

var pageTemplate = template.Must(template.New("form").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Form.Title}}</title>
<style>
body{margin:0;font-family:system-ui,sans-serif;background:{{.Form.Theme.PageBg}};color:{{.Form.Theme.Text}}}
main{max-width:640px;margin:40px auto;padding:0 16px}
.card{background:{{.Form.Theme.Card}};border:1px solid #e4e4e7;border-radius:12px;padding:24px;margin-bottom:16px}
h1{color:{{.Form.Theme.Title}};margin:0 0 8px}
label{display:block;font-weight:600;margin-bottom:6px;color:{{.Form.Theme.Title}}}
input,textarea,select{width:100%;box-sizing:border-box;padding:8px;border:1px solid #d4d4d8;border-radius:6px}
.choice{display:flex;gap:8px;align-items:center;font-weight:400}
.choice input{width:auto}
.error{color:#dc2626;font-size:.875rem;margin-top:4px}
button{background:{{.Form.Theme.Accent}};color:#fff;border:0;border-radius:6px;padding:10px 16px}
</style>
</head>
<body>
<main>
<section class="card">
<h1>{{.Form.Title}}</h1>
<p>{{.Form.Description}}</p>
</section>
{{if .Opts.Submitted}}
<section class="card"><p>{{if .Opts.Message}}{{.Opts.Message}}{{else}}Thanks, your response was recorded.{{end}}</p></section>
{{else if .Form.Empty}}
<section class="card">
<h2>{{.Form.EmptyTitle}}</h2>
<p>{{.Form.EmptyText}}</p>
</section>
{{else}}
<form method="post"{{if .Opts.Action}} action="{{.Opts.Action}}"{{end}}>
{{if .Opts.Message}}<p class="error">{{.Opts.Message}}</p>{{end}}
{{range .Controls}}
<div class="card">
{{if eq .Kind "checkboxes"}}
<label>{{.Label}}</label>
{{$id := .FieldID}}{{range .Options}}
<label class="choice"><input type="checkbox" name="{{$id}}" value="{{.Value}}"{{if .Checked}} checked{{end}}{{if $.Readonly}} disabled{{end}}>{{.Label}}</label>
{{end}}
{{else if eq .Kind "select"}}
<label for="{{.FieldID}}">{{.Label}}</label>
<select id="{{.FieldID}}" name="{{.FieldID}}"{{if $.Readonly}} disabled{{end}}>
<option value="">Select an option</option>
{{range .Options}}<option value="{{.Value}}"{{if .Checked}} selected{{end}}>{{.Label}}</option>{{end}}
</select>
{{else if eq .Kind "textarea"}}
<label for="{{.FieldID}}">{{.Label}}</label>
<textarea id="{{.FieldID}}" name="{{.FieldID}}" placeholder="{{.Placeholder}}"{{if $.Readonly}} readonly{{end}}>{{.Value}}</textarea>
{{else}}
<label for="{{.FieldID}}">{{.Label}}</label>
<input id="{{.FieldID}}" name="{{.FieldID}}" type="{{.Kind}}" value="{{.Value}}"{{if .Placeholder}} placeholder="{{.Placeholder}}"{{end}}{{if eq .Kind "number"}} step="any"{{end}}{{if $.Readonly}} readonly{{end}}>
{{end}}
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
</div>
{{end}}
{{if not .Readonly}}<button type="submit">Submit</button>{{end}}
</form>
{{end}}
</main>
</body>
</html>
`))
