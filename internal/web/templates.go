package web

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"gametrack/internal/dashboard"

	"github.com/dustin/go-humanize"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("index.html").Funcs(template.FuncMap{
		"ago": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return humanize.Time(t)
		},
		"comma": func(n int) string {
			return humanize.Comma(int64(n))
		},
		"minutes": func(seconds int) string {
			return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
		},
		"color":   dashboard.Color,
		"outcome": outcome,
		"lower":   strings.ToLower,
	}).ParseFS(templateFS, "templates/*.html"),
)

func outcome(win bool) string {
	if win {
		return "Victory"
	}
	return "Defeat"
}
