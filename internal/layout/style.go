package layout

import "resume-builder/internal/model"

// ColorTriple is one resolved color scheme.
type ColorTriple struct {
	Primary string
	Light   string
	Dark    string
}

// Style is the fully-resolved design record. Resolution is total: every field
// is concrete, unknown or missing keys fall back to documented defaults.
type Style struct {
	Scheme     string
	Colors     ColorTriple
	FontFamily string
	FontSize   int
	Spacing    Spacing
	Layout     Layout
}

// Spacing is a resolved vertical-rhythm scale. Pt is the point step shared by
// preview and export.
type Spacing struct {
	Name string
	Pt   int
}

type Layout string

const (
	LayoutSingleColumn Layout = "single-column"
	LayoutTwoColumn    Layout = "two-column"
	LayoutSidebar      Layout = "sidebar"
)

// DefaultFontSize is the canonical default shared by preview and export.
const DefaultFontSize = 11

var colorSchemes = map[string]ColorTriple{
	"blue":   {Primary: "#3B82F6", Light: "#DBEAFE", Dark: "#1E40AF"},
	"green":  {Primary: "#10B981", Light: "#D1FAE5", Dark: "#047857"},
	"purple": {Primary: "#8B5CF6", Light: "#EDE9FE", Dark: "#6D28D9"},
	"red":    {Primary: "#EF4444", Light: "#FEE2E2", Dark: "#B91C1C"},
	"gray":   {Primary: "#6B7280", Light: "#F3F4F6", Dark: "#374151"},
}

var fontFamilies = map[string]string{
	"inter":      "Inter, sans-serif",
	"roboto":     "Roboto, sans-serif",
	"open-sans":  `"Open Sans", sans-serif`,
	"lato":       "Lato, sans-serif",
	"montserrat": "Montserrat, sans-serif",
}

var spacings = map[string]Spacing{
	"compact": {Name: "compact", Pt: 8},
	"normal":  {Name: "normal", Pt: 12},
	"relaxed": {Name: "relaxed", Pt: 16},
}

// ResolveStyle maps the symbolic design keys stored on a resume to concrete
// style values. It never fails: nil design and unknown keys resolve to the
// blue/inter/normal/single-column defaults.
func ResolveStyle(d *model.Design) Style {
	s := Style{
		Scheme:     "blue",
		Colors:     colorSchemes["blue"],
		FontFamily: fontFamilies["inter"],
		FontSize:   DefaultFontSize,
		Spacing:    spacings["normal"],
		Layout:     LayoutSingleColumn,
	}
	if d == nil {
		return s
	}
	if c, ok := colorSchemes[d.ColorScheme]; ok {
		s.Scheme = d.ColorScheme
		s.Colors = c
	}
	if f, ok := fontFamilies[d.FontFamily]; ok {
		s.FontFamily = f
	}
	if sp, ok := spacings[d.Spacing]; ok {
		s.Spacing = sp
	}
	if d.FontSize > 0 {
		s.FontSize = d.FontSize
	}
	switch Layout(d.Layout) {
	case LayoutTwoColumn:
		s.Layout = LayoutTwoColumn
	case LayoutSidebar:
		s.Layout = LayoutSidebar
	}
	return s
}
