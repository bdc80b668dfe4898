// Package render walks the composed block tree and emits HTML. The
// interactive preview and the print document share every block template and
// differ only in the outer wrapper, so what the screen shows is structurally
// what the exported page contains.
package render

import (
	"bytes"
	"embed"
	"html/template"
	"strings"

	"resume-builder/internal/layout"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Viewport controls the outer container of the interactive preview; it never
// affects block composition.
type Viewport string

const (
	ViewportDesktop Viewport = "desktop"
	ViewportMobile  Viewport = "mobile"
)

// ParseViewport resolves a query value; anything but "mobile" is desktop.
func ParseViewport(s string) Viewport {
	if Viewport(s) == ViewportMobile {
		return ViewportMobile
	}
	return ViewportDesktop
}

// blockContext threads the resolved style into nested block templates.
type blockContext struct {
	Style layout.Style
	Block layout.Block
}

var funcs = template.FuncMap{
	"blockCtx": func(style layout.Style, b layout.Block) blockContext {
		return blockContext{Style: style, Block: b}
	},
	"lines": func(s string) []string {
		return strings.Split(s, "\n")
	},
	// css marks values from the closed style lookup tables as trusted so
	// font stacks with quotes survive attribute escaping.
	"css": func(s string) template.CSS {
		return template.CSS(s)
	},
}

var tpl = template.Must(
	template.New("resume").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl"),
)

type previewData struct {
	Tree     *layout.Tree
	Viewport Viewport
}

// Present emits the interactive on-screen document for a composed tree.
func Present(t *layout.Tree, vp Viewport) (string, error) {
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "preview", previewData{Tree: t, Viewport: vp}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PrintHTML emits the A4 print document the PDF pipeline feeds to the
// browser engine.
func PrintHTML(t *layout.Tree) (string, error) {
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "print", t); err != nil {
		return "", err
	}
	return buf.String(), nil
}
