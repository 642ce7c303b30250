package web

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/BruksfildServices01/pitstop-servix/internal/appointments"
	"github.com/BruksfildServices01/pitstop-servix/internal/timefmt"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates(loc *time.Location) (*template.Template, error) {
	funcs := template.FuncMap{
		"when": func(date, slot string) string {
			return timefmt.FormatIn(date, slot, loc)
		},
		"sentAt": func(t time.Time) string {
			return timefmt.FormatNotificationTime(t, loc)
		},
		"pad2": func(n int) string {
			return fmt.Sprintf("%02d", n)
		},
		"statusLabel": appointments.StatusLabel,
		"lower":       strings.ToLower,
	}

	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}
