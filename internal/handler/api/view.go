package api

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"SpanScreener/internal/domain/models"
)

var viewFuncs = template.FuncMap{
	"money": func(p *float64) string {
		if p == nil {
			return ""
		}
		return fmt.Sprintf("%.2f", *p)
	},
}

var viewTemplate = template.Must(template.New("view").Funcs(viewFuncs).Parse(`<!DOCTYPE html>
<html>
<head>
<title>{{.Symbol}} - Span Screener</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
h1 { color: #036; }
table { border-collapse: collapse; margin: 1em 0; }
td, th { border: 1px solid #ccc; padding: 0.4em 0.8em; text-align: left; }
.GREEN { color: #080; font-weight: bold; }
.YELLOW { color: #a80; font-weight: bold; }
.RED { color: #c00; font-weight: bold; }
.skipped { color: #888; }
</style>
</head>
<body>
<h1>{{.Symbol}}{{if .Rec.Summary.CompanyName}} &mdash; {{.Rec.Summary.CompanyName}}{{end}}</h1>
<p>Signal: <strong>{{.Rec.Signal}}</strong> &middot; Confidence: <strong>{{.Rec.Confidence}}</strong></p>
{{if .Rec.Summary.Price}}<p>Price: {{money .Rec.Summary.Price}}</p>{{end}}
<table>
<tr><th>#</th><th>Check</th><th>Light</th><th>Detail</th></tr>
{{range .Rec.Checks}}
<tr>
<td>{{.ID}}</td>
<td>{{.Name}}</td>
{{if .Light}}<td class="{{.Light}}">{{.Light}}</td>{{else}}<td class="skipped">&mdash;</td>{{end}}
<td>{{.Detail}}</td>
</tr>
{{end}}
</table>
<p><small>Generated {{.Rec.GeneratedAt.Format "2006-01-02 15:04:05 MST"}}</small></p>
</body>
</html>
`))

type viewData struct {
	Symbol string
	Rec    *models.Recommendation
}

func renderView(c echo.Context, symbol string, rec *models.Recommendation) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return viewTemplate.Execute(c.Response(), viewData{Symbol: symbol, Rec: rec})
}
