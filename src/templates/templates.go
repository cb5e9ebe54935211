package templates

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed *.tmpl
var files embed.FS

// Load parses the embedded page templates.
func Load() *template.Template {
	t := template.New("").Funcs(template.FuncMap{
		"filesize": FormatFileSize,
	})
	return template.Must(t.ParseFS(files, "*.tmpl"))
}

// FormatFileSize renders a byte count the way the file manager displays it.
func FormatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}

	const unit = 1024
	sizes := []string{"Bytes", "KB", "MB", "GB"}

	value := float64(bytes)
	i := 0
	for value >= unit && i < len(sizes)-1 {
		value /= unit
		i++
	}

	if i == 0 {
		return fmt.Sprintf("%d %s", bytes, sizes[i])
	}
	return fmt.Sprintf("%.2f %s", value, sizes[i])
}
