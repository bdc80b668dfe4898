package layout

import "resume-builder/internal/model"

// The three layout strategies. Section order within each layout is fixed;
// the two-column and sidebar layouts deliberately carry fewer sections than
// single-column, matching the shipped templates (see DESIGN.md on the
// asymmetry decision).

// composeSingleColumn stacks every visible section under a centered header:
// experience, education, skills, projects, certifications, languages, then
// custom sections.
func composeSingleColumn(r *model.Resume) []Column {
	col := Column{Role: ColumnFull}
	if h := headerBlock(r, headerFull); h != nil {
		col.Blocks = append(col.Blocks, *h)
	}
	if ShouldRender(r, SectionExperience) {
		col.Blocks = append(col.Blocks, sectionBlock(experienceSection(r, false)))
	}
	if ShouldRender(r, SectionEducation) {
		col.Blocks = append(col.Blocks, sectionBlock(educationSection(r, false)))
	}
	if ShouldRender(r, SectionSkills) {
		col.Blocks = append(col.Blocks, sectionBlock(skillsSection(r, false)))
	}
	if ShouldRender(r, SectionProjects) {
		col.Blocks = append(col.Blocks, sectionBlock(projectsSection(r, false)))
	}
	if ShouldRender(r, SectionCertifications) {
		col.Blocks = append(col.Blocks, sectionBlock(certificationsSection(r)))
	}
	if ShouldRender(r, SectionLanguages) {
		col.Blocks = append(col.Blocks, sectionBlock(languagesSection(r, false)))
	}
	if ShouldRender(r, SectionCustom) {
		col.Blocks = append(col.Blocks, customSectionBlocks(r)...)
	}
	return []Column{col}
}

// composeTwoColumn splits 2:1. Main column carries the header, experience and
// education; the side column carries links, skills and languages. Projects,
// certifications and custom sections are not part of this layout.
func composeTwoColumn(r *model.Resume) []Column {
	main := Column{Role: ColumnMain}
	if h := headerBlock(r, headerBare); h != nil {
		main.Blocks = append(main.Blocks, *h)
	}
	if ShouldRender(r, SectionExperience) {
		main.Blocks = append(main.Blocks, sectionBlock(experienceSection(r, true)))
	}
	if ShouldRender(r, SectionEducation) {
		main.Blocks = append(main.Blocks, sectionBlock(educationSection(r, true)))
	}

	side := Column{Role: ColumnSide}
	if r.PersonalInfo != nil {
		if ls := linksSection(r); ls != nil {
			side.Blocks = append(side.Blocks, sectionBlock(ls))
		}
	}
	if ShouldRender(r, SectionSkills) {
		side.Blocks = append(side.Blocks, sectionBlock(skillsSection(r, true)))
	}
	if ShouldRender(r, SectionLanguages) {
		side.Blocks = append(side.Blocks, sectionBlock(languagesSection(r, true)))
	}
	return []Column{main, side}
}

// composeSidebar puts the header, contact, links, skills and languages inside
// a tinted sidebar occupying a third of the width; experience, education and
// projects fill the remaining two thirds.
func composeSidebar(r *model.Resume) []Column {
	bar := Column{Role: ColumnSidebar}
	if h := headerBlock(r, headerStacked); h != nil {
		bar.Blocks = append(bar.Blocks, *h)
	}
	if r.PersonalInfo != nil {
		if ls := linksSection(r); ls != nil {
			bar.Blocks = append(bar.Blocks, sectionBlock(ls))
		}
	}
	if ShouldRender(r, SectionSkills) {
		bar.Blocks = append(bar.Blocks, sectionBlock(skillsSection(r, true)))
	}
	if ShouldRender(r, SectionLanguages) {
		bar.Blocks = append(bar.Blocks, sectionBlock(languagesSection(r, true)))
	}

	main := Column{Role: ColumnMain}
	if ShouldRender(r, SectionExperience) {
		main.Blocks = append(main.Blocks, sectionBlock(experienceSection(r, true)))
	}
	if ShouldRender(r, SectionEducation) {
		main.Blocks = append(main.Blocks, sectionBlock(educationSection(r, true)))
	}
	if ShouldRender(r, SectionProjects) {
		main.Blocks = append(main.Blocks, sectionBlock(projectsSection(r, true)))
	}
	return []Column{bar, main}
}
