// Package web embeds the page templates and browser assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"strings"
)

//go:embed templates/*.html
var Templates embed.FS

//go:embed static
var staticFiles embed.FS

// Static is the asset tree served under /static.
func Static() (fs.FS, error) {
	return fs.Sub(staticFiles, "static")
}

var Funcs = template.FuncMap{
	"upper": strings.ToUpper,
	// cover images are data: or https: references produced by the app
	"coverURL": func(ref string) template.URL { return template.URL(ref) },
	"excerpt": func(s string, n int) string {
		r := []rune(s)
		if len(r) <= n {
			return s
		}
		return string(r[:n]) + "..."
	},
}
