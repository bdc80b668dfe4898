package layout

import (
	"strings"
	"time"

	"resume-builder/internal/model"
)

// Compose turns a resume into the block tree both renderers consume. It is a
// pure function of its input: the same resume always yields a structurally
// identical tree, and well-formed input never fails.
func Compose(r *model.Resume) *Tree {
	style := ResolveStyle(r.Design)
	t := &Tree{Layout: style.Layout, Style: style}
	switch style.Layout {
	case LayoutTwoColumn:
		t.Columns = composeTwoColumn(r)
	case LayoutSidebar:
		t.Columns = composeSidebar(r)
	default:
		t.Columns = composeSingleColumn(r)
	}
	return t
}

const presentMarker = "Present"

// dateRange renders "start – end", with the literal Present marker winning
// over any stored end date when current is set.
func dateRange(start, end string, current bool) string {
	if current {
		end = presentMarker
	}
	if end == "" {
		return start
	}
	if start == "" {
		return end
	}
	return start + " – " + end
}

// monthYear converts a stored YYYY-MM date to its month-year display form.
// Strings that do not parse are carried through as-is.
func monthYear(s string) string {
	d, err := time.Parse("2006-01", s)
	if err != nil {
		return s
	}
	return d.Format("Jan 2006")
}

func projectDates(p model.Project) string {
	start := ""
	if p.StartDate != "" {
		start = monthYear(p.StartDate)
	}
	end := ""
	if p.EndDate != "" {
		end = monthYear(p.EndDate)
	}
	return dateRange(start, end, false)
}

// joinPresent joins only the non-empty parts, never leaving a leading,
// trailing or doubled separator.
func joinPresent(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// websiteLabel strips the scheme and a leading www. so the link text reads as
// a bare domain.
func websiteLabel(u string) string {
	s := strings.TrimPrefix(u, "https://")
	s = strings.TrimPrefix(s, "http://")
	return strings.TrimPrefix(s, "www.")
}

func personalLinks(pi *model.PersonalInfo, bareWebsite bool) []Link {
	var links []Link
	if pi.Website != "" {
		label := "Website"
		if bareWebsite {
			label = websiteLabel(pi.Website)
		}
		links = append(links, Link{Label: label, URL: pi.Website})
	}
	if pi.LinkedIn != "" {
		links = append(links, Link{Label: "LinkedIn", URL: pi.LinkedIn})
	}
	if pi.GitHub != "" {
		links = append(links, Link{Label: "GitHub", URL: pi.GitHub})
	}
	return links
}

// headerVariant selects how much personal info the header carries. The
// side-column layouts render links in their own section, so their headers
// stay name + contact only.
type headerVariant int

const (
	headerFull    headerVariant = iota // centered, with links and summary
	headerBare                         // name + contact line
	headerStacked                      // name + contact fields one per line
)

func headerBlock(r *model.Resume, v headerVariant) *Block {
	pi := r.PersonalInfo
	if pi == nil {
		return nil
	}
	h := &HeaderBlock{
		Name:    pi.FullName,
		Contact: joinPresent(" • ", pi.Email, pi.Phone, pi.Location),
	}
	switch v {
	case headerFull:
		h.Centered = true
		h.Links = personalLinks(pi, true)
		h.Summary = pi.Summary
	case headerStacked:
		h.Stacked = true
		h.Contact = joinPresent("\n", pi.Email, pi.Phone, pi.Location)
	}
	return &Block{Kind: BlockHeader, Header: h}
}

func sectionBlock(s *SectionBlock) Block {
	return Block{Kind: BlockSection, Section: s}
}

func experienceSection(r *model.Resume, compact bool) *SectionBlock {
	sb := &SectionBlock{
		ID:      SectionExperience,
		Title:   "Professional Experience",
		Display: DisplayEntries,
		Compact: compact,
	}
	if compact {
		sb.Title = "Experience"
	}
	for _, exp := range r.Experience {
		e := Entry{
			Title:       exp.Position,
			Subtitle:    exp.Company,
			Dates:       dateRange(exp.StartDate, exp.EndDate, exp.Current),
			Description: exp.Description,
		}
		if !compact {
			e.Location = exp.Location
			e.Bullets = append(e.Bullets, exp.Achievements...)
		}
		sb.Entries = append(sb.Entries, e)
	}
	return sb
}

func educationSection(r *model.Resume, compact bool) *SectionBlock {
	sb := &SectionBlock{
		ID:      SectionEducation,
		Title:   "Education",
		Display: DisplayEntries,
		Compact: compact,
	}
	for _, edu := range r.Education {
		e := Entry{
			Title:    edu.Degree + " in " + edu.Field,
			Subtitle: edu.Institution,
		}
		if !compact {
			e.Dates = dateRange(edu.StartDate, edu.EndDate, edu.Current)
			e.Location = edu.Location
			e.Description = edu.Description
			if edu.GPA != "" {
				e.Note = "GPA: " + edu.GPA
			}
		}
		sb.Entries = append(sb.Entries, e)
	}
	return sb
}

func skillsSection(r *model.Resume, compact bool) *SectionBlock {
	sb := &SectionBlock{
		ID:      SectionSkills,
		Title:   "Skills",
		Display: DisplayChips,
		Compact: compact,
	}
	// stored sequence order, never sorted
	for _, s := range r.Skills {
		sb.Chips = append(sb.Chips, s.Name)
	}
	return sb
}

func projectsSection(r *model.Resume, compact bool) *SectionBlock {
	sb := &SectionBlock{
		ID:      SectionProjects,
		Title:   "Projects",
		Display: DisplayEntries,
		Compact: compact,
	}
	for _, p := range r.Projects {
		e := Entry{
			Title:       p.Name,
			Description: p.Description,
		}
		if !compact {
			e.TitleURL = p.URL
			e.Dates = projectDates(p)
			e.Tags = append(e.Tags, p.Technologies...)
			if p.GitHub != "" {
				e.Links = append(e.Links, Link{Label: "GitHub", URL: p.GitHub})
			}
		}
		sb.Entries = append(sb.Entries, e)
	}
	return sb
}

func certificationsSection(r *model.Resume) *SectionBlock {
	sb := &SectionBlock{
		ID:      SectionCertifications,
		Title:   "Certifications",
		Display: DisplayEntries,
	}
	for _, c := range r.Certifications {
		sb.Entries = append(sb.Entries, Entry{
			Title:    c.Name,
			Subtitle: joinPresent(" • ", c.Issuer, c.Date),
		})
	}
	return sb
}

func languagesSection(r *model.Resume, compact bool) *SectionBlock {
	sb := &SectionBlock{
		ID:      SectionLanguages,
		Title:   "Languages",
		Display: DisplayInline,
		Compact: compact,
	}
	for _, l := range r.Languages {
		sb.Inline = append(sb.Inline, InlineItem{Name: l.Language, Note: l.Proficiency})
	}
	return sb
}

func linksSection(r *model.Resume) *SectionBlock {
	links := personalLinks(r.PersonalInfo, false)
	if len(links) == 0 {
		return nil
	}
	return &SectionBlock{
		ID:      SectionLinks,
		Title:   "Links",
		Display: DisplayLinks,
		Compact: true,
		Links:   links,
	}
}

func customSectionBlocks(r *model.Resume) []Block {
	var blocks []Block
	for _, cs := range r.CustomSections {
		blocks = append(blocks, sectionBlock(&SectionBlock{
			ID:      SectionCustom,
			Title:   cs.Title,
			Display: DisplayEntries,
			Entries: []Entry{{Description: cs.Content}},
		}))
	}
	return blocks
}
