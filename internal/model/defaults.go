package model

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultTemplateID = "modern"

var whitespace = regexp.MustCompile(`\s+`)

// DefaultDesign matches what the editor seeds on creation. fontSize 11 is the
// single canonical default shared by preview and export.
func DefaultDesign() *Design {
	return &Design{
		Layout:      "single-column",
		ColorScheme: "blue",
		FontFamily:  "inter",
		FontSize:    11,
		Spacing:     "normal",
	}
}

func DefaultSectionVisibility() SectionVisibility {
	return SectionVisibility{
		Experience:     true,
		Education:      true,
		Skills:         true,
		Projects:       true,
		Certifications: true,
		Languages:      true,
	}
}

// NewResume builds a fresh aggregate with empty collections and the default
// design and visibility toggles.
func NewResume(userID, title string) *Resume {
	id := uuid.NewString()
	now := time.Now().UTC()
	return &Resume{
		ID:                id,
		UserID:            userID,
		Title:             title,
		Slug:              Slugify(title, id),
		TemplateID:        DefaultTemplateID,
		Experience:        []Experience{},
		Education:         []Education{},
		Skills:            []Skill{},
		Projects:          []Project{},
		Certifications:    []Certification{},
		Languages:         []Language{},
		CustomSections:    []CustomSection{},
		Design:            DefaultDesign(),
		SectionVisibility: DefaultSectionVisibility(),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// Slugify lowercases the title, collapses whitespace to hyphens and appends a
// short id suffix to keep slugs unique per user.
func Slugify(title, id string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = whitespace.ReplaceAllString(s, "-")
	suffix := id
	if len(suffix) > 6 {
		suffix = suffix[:6]
	}
	if s == "" {
		return suffix
	}
	return s + "-" + suffix
}

// Normalize repairs a resume loaded from storage: nil collections become empty
// slices and custom sections are re-sorted by their stored order field, which
// is authoritative over array position.
func (r *Resume) Normalize() {
	if r.Experience == nil {
		r.Experience = []Experience{}
	}
	if r.Education == nil {
		r.Education = []Education{}
	}
	if r.Skills == nil {
		r.Skills = []Skill{}
	}
	if r.Projects == nil {
		r.Projects = []Project{}
	}
	if r.Certifications == nil {
		r.Certifications = []Certification{}
	}
	if r.Languages == nil {
		r.Languages = []Language{}
	}
	if r.CustomSections == nil {
		r.CustomSections = []CustomSection{}
	}
	sort.SliceStable(r.CustomSections, func(i, j int) bool {
		return r.CustomSections[i].Order < r.CustomSections[j].Order
	})
}
