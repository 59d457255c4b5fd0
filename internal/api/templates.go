package api

import (
	"embed"
	"html/template"

	"github.com/terraincognita07/invoicehero/internal/models"
)

//go:embed templates/*.html
var templateFiles embed.FS

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"money": func(value models.Amount) string {
			return value.Decimal().StringFixed(2)
		},
		"lineTotal": func(item models.LineItem) string {
			return item.Total().Decimal().StringFixed(2)
		},
	}).ParseFS(templateFiles, "templates/*.html")
}
