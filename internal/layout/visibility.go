package layout

import "resume-builder/internal/model"

// Section identifies one toggleable content section.
type Section string

const (
	SectionExperience     Section = "experience"
	SectionEducation      Section = "education"
	SectionSkills         Section = "skills"
	SectionProjects       Section = "projects"
	SectionCertifications Section = "certifications"
	SectionLanguages      Section = "languages"
	SectionCustom         Section = "custom"

	// SectionLinks is the side-column link list. It has no visibility toggle;
	// it renders whenever any link field is present.
	SectionLinks Section = "links"
)

// Sections is the fixed render order. User reordering applies to entries
// within a section, never to sections themselves.
var Sections = []Section{
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionProjects,
	SectionCertifications,
	SectionLanguages,
}

// ShouldRender reports whether a section appears in the composed output:
// its visibility flag must be set and its collection non-empty. The header
// has no toggle and is not covered here.
func ShouldRender(r *model.Resume, s Section) bool {
	switch s {
	case SectionExperience:
		return r.SectionVisibility.Experience && len(r.Experience) > 0
	case SectionEducation:
		return r.SectionVisibility.Education && len(r.Education) > 0
	case SectionSkills:
		return r.SectionVisibility.Skills && len(r.Skills) > 0
	case SectionProjects:
		return r.SectionVisibility.Projects && len(r.Projects) > 0
	case SectionCertifications:
		return r.SectionVisibility.Certifications && len(r.Certifications) > 0
	case SectionLanguages:
		return r.SectionVisibility.Languages && len(r.Languages) > 0
	case SectionCustom:
		// Custom sections have no visibility toggle, only the non-empty gate.
		return len(r.CustomSections) > 0
	}
	return false
}
