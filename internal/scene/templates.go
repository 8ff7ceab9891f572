package scene

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/gravitas-games/hexboard/pkg/hexgrid"
)

var funcs = template.FuncMap{
	"points": func(vs []hexgrid.Vertex) string {
		parts := make([]string, len(vs))
		for i, v := range vs {
			parts[i] = fmt.Sprintf("%.2f,%.2f", v.X, v.Y)
		}
		return strings.Join(parts, " ")
	},
	"f": func(v float64) string { return fmt.Sprintf("%.2f", v) },
}

var boardTmpl = template.Must(template.New("board").Funcs(funcs).Parse(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="{{.ViewBox}}" width="{{f .Width}}" height="{{f .Height}}">
{{- $pal := .Palette}}
{{- range .Tiles}}
<g class="tile" data-point="{{.Point}}">
<polygon points="{{points .Corners}}" fill="{{.Fill}}" stroke="{{$pal.Stroke}}" stroke-width="1"/>
{{- if .Abbrev.Text}}
<text x="{{f .Abbrev.X}}" y="{{f .Abbrev.Y}}" fill="{{$pal.Text}}" font-family="monospace">{{.Abbrev.Text}}</text>
{{- end}}
{{- if .Counter.Text}}
<text x="{{f .Counter.X}}" y="{{f .Counter.Y}}" fill="{{$pal.Text}}" font-family="monospace">{{.Counter.Text}}</text>
{{- end}}
</g>
{{- end}}
</svg>
`))

var panelsTmpl = template.Must(template.New("panels").Funcs(funcs).Parse(`<div class="panels">
<div class="turn">Turn {{.Turn}}</div>
{{- with .Banner}}
<div class="banner">{{.}}</div>
{{- end}}
{{- with .Habitat}}
<section class="habitat" data-point="{{.Point}}">
{{- if .Editing}}
<form class="name-editor">
<input name="full" value="{{.Editor.Full}}" placeholder="Habitat name">
<input name="abbreviation" value="{{.Editor.Abbreviation}}" maxlength="3" placeholder="ABC">
<button type="submit"{{if not .EditorValid}} disabled{{end}}>Name habitat</button>
</form>
{{- else}}
<h2>{{.Name}}{{with .Abbreviation}} ({{.}}){{end}}</h2>
{{- end}}
<p>Production: {{.Production}} per turn</p>
{{- if .Buildings}}
<ul class="buildings">
{{- range .Buildings}}
<li>{{.Name}}{{with .Effect}}: {{.}}{{end}}</li>
{{- end}}
</ul>
{{- end}}
{{- if .Order}}
<p class="order">Building {{.Order}}, {{.TurnsRemaining}} turns left</p>
{{- end}}
{{- if .Ours}}
<select name="build_order">
{{- range .Options}}
<option value="{{.Key}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
{{- end}}
</select>
{{- end}}
</section>
{{- end}}
{{- if .Units}}
<section class="units">
{{- range .Units}}
<div class="unit{{if .Active}} active{{end}}" data-unit="{{.ID}}">
<h3>{{.Name}} [{{.Abbrev}}]{{if not .Ours}} (enemy){{end}}</h3>
<p>Sensors {{.Sensors}} · Stealth {{.Stealth}} · Firepower {{.Firepower}} · Speed {{.Speed}}</p>
{{- with .HelpText}}
<p class="help">{{.}}</p>
{{- end}}
{{- with .Planned}}
<p class="planned">Moving to {{.}}</p>
{{- end}}
</div>
{{- end}}
</section>
{{- end}}
{{- if .Log}}
<section class="combat-log">
{{- range .Log}}
<h3>{{.Title}}</h3>
<ul>
{{- range .Lines}}
<li>{{.Text}}</li>
{{- end}}
</ul>
{{- end}}
</section>
{{- end}}
</div>
`))

// WriteSVG renders the board as a standalone SVG document.
func WriteSVG(w io.Writer, sc Scene) error {
	if err := boardTmpl.Execute(w, sc); err != nil {
		return fmt.Errorf("failed to render board: %w", err)
	}
	return nil
}

// WritePanels renders the side panels as an HTML fragment.
func WritePanels(w io.Writer, sc Scene) error {
	if err := panelsTmpl.Execute(w, sc); err != nil {
		return fmt.Errorf("failed to render panels: %w", err)
	}
	return nil
}

// Markup renders both documents to strings.
func Markup(sc Scene) (svg, panels string, err error) {
	var b strings.Builder
	if err = WriteSVG(&b, sc); err != nil {
		return "", "", err
	}
	svg = b.String()
	b.Reset()
	if err = WritePanels(&b, sc); err != nil {
		return "", "", err
	}
	return svg, b.String(), nil
}
