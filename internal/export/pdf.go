// Package export produces the downloadable PDF artifact. It walks the same
// composed block tree the interactive preview consumes, so the exported page
// and the on-screen document always agree on content and ordering.
package export

import (
	"bytes"
	"context"
	"fmt"
	"regexp"

	"resume-builder/internal/layout"
	"resume-builder/internal/model"
	"resume-builder/internal/render"
)

// ContentType is attached by the HTTP boundary, not the exporter.
const ContentType = "application/pdf"

// HTMLRenderer turns a print document into PDF bytes.
type HTMLRenderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

type Exporter struct {
	renderer HTMLRenderer
}

func NewExporter(r HTMLRenderer) *Exporter {
	return &Exporter{renderer: r}
}

// RenderDocument composes the resume, emits the A4 print document and pipes
// it through the renderer. The caller is responsible for authorization and
// for retry policy; generation itself is deterministic and idempotent.
func (e *Exporter) RenderDocument(ctx context.Context, r *model.Resume) ([]byte, error) {
	tree := layout.Compose(r)
	html, err := render.PrintHTML(tree)
	if err != nil {
		return nil, fmt.Errorf("render print document: %w", err)
	}
	pdf, err := e.renderer.RenderHTMLToPDF(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		return nil, fmt.Errorf("invalid PDF output (len=%d)", len(pdf))
	}
	return pdf, nil
}

var filenameWhitespace = regexp.MustCompile(`\s+`)

// Filename derives the suggested download name from the resume title,
// replacing whitespace runs with underscores.
func Filename(title string) string {
	return filenameWhitespace.ReplaceAllString(title, "_") + ".pdf"
}
