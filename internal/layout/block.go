package layout

// The block tree is the backend-agnostic structure both the interactive
// renderer and the PDF exporter walk. Visual parity between the two is
// structural: they disagree only in leaf emission.

// Tree is the composed document for one resume.
type Tree struct {
	Layout  Layout
	Style   Style
	Columns []Column
}

// ColumnRole tells the emitters how wide a column is and whether it carries
// the tinted sidebar background.
type ColumnRole string

const (
	ColumnFull    ColumnRole = "full"    // single-column body
	ColumnMain    ColumnRole = "main"    // 2/3 width
	ColumnSide    ColumnRole = "side"    // 1/3 width, plain
	ColumnSidebar ColumnRole = "sidebar" // 1/3 width, light-color background
)

type Column struct {
	Role   ColumnRole
	Blocks []Block
}

// BlockKind discriminates the Block union.
type BlockKind string

const (
	BlockHeader  BlockKind = "header"
	BlockSection BlockKind = "section"
)

// Block is either a header or a section; exactly one of the two pointers is
// set, matching Kind.
type Block struct {
	Kind    BlockKind
	Header  *HeaderBlock
	Section *SectionBlock
}

// HeaderBlock is the personal-info header. Contact is pre-joined; Links keep
// label and target separate so emitters can produce anchors.
type HeaderBlock struct {
	Name     string
	Contact  string
	Links    []Link
	Summary  string
	Centered bool // single-column centers the header
	Stacked  bool // sidebar stacks contact fields one per line
}

type Link struct {
	Label string
	URL   string
}

// SectionDisplay selects how a section's content is shaped.
type SectionDisplay string

const (
	DisplayEntries SectionDisplay = "entries" // stacked entry blocks
	DisplayChips   SectionDisplay = "chips"   // labeled chips (skills)
	DisplayInline  SectionDisplay = "inline"  // name + note pairs (languages)
	DisplayLinks   SectionDisplay = "links"   // bare link list (side columns)
)

// SectionBlock is one visible section in render order. Compact marks the
// narrow-column variant used in side and sidebar columns.
type SectionBlock struct {
	ID      Section
	Title   string
	Display SectionDisplay
	Compact bool
	Chips   []string
	Entries []Entry
	Inline  []InlineItem
	Links   []Link
}

// Entry is one dated item inside a section (a role, a degree, a project, a
// certification or a custom block). Optional fields are empty, never padded.
type Entry struct {
	Title       string
	TitleURL    string
	Subtitle    string
	Dates       string
	Location    string
	Description string
	Note        string
	Bullets     []string
	Tags        []string
	Links       []Link
}

type InlineItem struct {
	Name string
	Note string
}
