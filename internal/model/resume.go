package model

import "time"

// Go models that match resume.schema.json; field names must round-trip the
// stored JSONB sub-documents exactly.

type PersonalInfo struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Location     string `json:"location,omitempty"`
	Website      string `json:"website,omitempty"`
	LinkedIn     string `json:"linkedin,omitempty"`
	GitHub       string `json:"github,omitempty"`
	Summary      string `json:"summary,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

type Experience struct {
	ID           string   `json:"id"`
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate,omitempty"`
	Current      bool     `json:"current"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements,omitempty"`
}

type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	Current     bool   `json:"current"`
	GPA         string `json:"gpa,omitempty"`
	Description string `json:"description,omitempty"`
}

type Skill struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Level    string `json:"level,omitempty"`
	Category string `json:"category,omitempty"`
}

type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	URL          string   `json:"url,omitempty"`
	GitHub       string   `json:"github,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

type Certification struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Issuer       string `json:"issuer"`
	Date         string `json:"date"`
	ExpiryDate   string `json:"expiryDate,omitempty"`
	CredentialID string `json:"credentialId,omitempty"`
	URL          string `json:"url,omitempty"`
}

type Language struct {
	ID          string `json:"id"`
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

type CustomSection struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}

// Design carries the symbolic style keys. Every field is optional; the layout
// core resolves missing or unknown keys to defaults, never an error.
type Design struct {
	ColorScheme string `json:"colorScheme,omitempty"`
	FontFamily  string `json:"fontFamily,omitempty"`
	FontSize    int    `json:"fontSize,omitempty"`
	Spacing     string `json:"spacing,omitempty"`
	AccentColor string `json:"accentColor,omitempty"`
	Layout      string `json:"layout,omitempty"`
}

type SectionVisibility struct {
	Experience     bool `json:"experience"`
	Education      bool `json:"education"`
	Skills         bool `json:"skills"`
	Projects       bool `json:"projects"`
	Certifications bool `json:"certifications"`
	Languages      bool `json:"languages"`
}

type Resume struct {
	ID                string            `json:"id"`
	UserID            string            `json:"userId"`
	Title             string            `json:"title"`
	Slug              string            `json:"slug"`
	TemplateID        string            `json:"templateId"`
	PersonalInfo      *PersonalInfo     `json:"personalInfo,omitempty"`
	Experience        []Experience      `json:"experience"`
	Education         []Education       `json:"education"`
	Skills            []Skill           `json:"skills"`
	Projects          []Project         `json:"projects"`
	Certifications    []Certification   `json:"certifications"`
	Languages         []Language        `json:"languages"`
	CustomSections    []CustomSection   `json:"customSections"`
	Design            *Design           `json:"design,omitempty"`
	SectionVisibility SectionVisibility `json:"sectionVisibility"`
	IsPublic          bool              `json:"isPublic"`
	IsFavorite        bool              `json:"isFavorite"`
	ViewCount         int               `json:"viewCount"`
	DownloadCount     int               `json:"downloadCount"`
	LastViewedAt      *time.Time        `json:"lastViewedAt,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}
