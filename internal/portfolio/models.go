package portfolio

import (
	"errors"
	"fmt"
)

// Section identifies one independently persisted slice of portfolio content.
// Each section is its own document in the backing collection; the aggregate
// is composed at read time and never stored as one object.
type Section string

const (
	SectionHero       Section = "hero"
	SectionAbout      Section = "about"
	SectionContact    Section = "contact"
	SectionExperience Section = "experience"
	SectionProjects   Section = "projects"
	SectionWriting    Section = "writing"
	SectionResume     Section = "resume"
)

// Sections lists every known section in rendering order.
var Sections = []Section{
	SectionHero,
	SectionAbout,
	SectionContact,
	SectionExperience,
	SectionProjects,
	SectionWriting,
	SectionResume,
}

var ErrInvalidSection = errors.New("invalid section")

// ParseSection resolves a section name once at the boundary. Callers past
// this point work with the enumerated kind only.
func ParseSection(s string) (Section, error) {
	switch Section(s) {
	case SectionHero, SectionAbout, SectionContact, SectionExperience,
		SectionProjects, SectionWriting, SectionResume:
		return Section(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSection, s)
}

// IsList reports whether the section persists as an ordered list of records.
// List sections are stored wrapped as {items: [...]} because the backing
// store requires document-shaped values, not bare arrays.
func (s Section) IsList() bool {
	switch s {
	case SectionExperience, SectionProjects, SectionWriting:
		return true
	}
	return false
}

// Hero is the page header: profile image, name and title line.
type Hero struct {
	ProfileImageURL *string `json:"profileImageUrl" bson:"profileImageUrl"`
	Name            string  `json:"name" bson:"name"`
	JobTitle        string  `json:"jobTitle" bson:"jobTitle"`
	Subtitle        string  `json:"subtitle" bson:"subtitle"`
}

// Link is a positional hyperlink binding over a substring of the about
// description. StartIndex/EndIndex are character offsets into the full
// description string, not a single paragraph.
type Link struct {
	Text       string `json:"text" bson:"text"`
	URL        string `json:"url" bson:"url"`
	StartIndex int    `json:"startIndex" bson:"startIndex"`
	EndIndex   int    `json:"endIndex" bson:"endIndex"`
}

// About is a free-form multi-paragraph description (paragraphs delimited by
// line breaks) with optional link annotations kept sorted by StartIndex.
type About struct {
	Description string `json:"description" bson:"description"`
	Links       []Link `json:"links,omitempty" bson:"links,omitempty"`
}

// Social holds optional named profile URLs.
type Social struct {
	LinkedIn      string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	GitHub        string `json:"github,omitempty" bson:"github,omitempty"`
	Twitter       string `json:"twitter,omitempty" bson:"twitter,omitempty"`
	StackOverflow string `json:"stackoverflow,omitempty" bson:"stackoverflow,omitempty"`
	Facebook      string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Instagram     string `json:"instagram,omitempty" bson:"instagram,omitempty"`
	YouTube       string `json:"youtube,omitempty" bson:"youtube,omitempty"`
	TikTok        string `json:"tiktok,omitempty" bson:"tiktok,omitempty"`
	Twitch        string `json:"twitch,omitempty" bson:"twitch,omitempty"`
	Medium        string `json:"medium,omitempty" bson:"medium,omitempty"`
}

type Contact struct {
	Title  string `json:"title" bson:"title"`
	Email  string `json:"email" bson:"email"`
	Phone  string `json:"phone" bson:"phone"`
	Social Social `json:"social" bson:"social"`
}

// Experience is one entry of the work-history list.
type Experience struct {
	Position     string   `json:"position" bson:"position"`
	Company      string   `json:"company" bson:"company"`
	Duration     string   `json:"duration" bson:"duration"`
	Description  string   `json:"description" bson:"description"`
	LogoURL      *string  `json:"logoUrl" bson:"logoUrl"`
	Technologies []string `json:"technologies" bson:"technologies"`
}

type Project struct {
	Name         string   `json:"name" bson:"name"`
	Description  string   `json:"description" bson:"description"`
	ImageURL     *string  `json:"imageUrl" bson:"imageUrl"`
	ProjectLink  string   `json:"projectLink" bson:"projectLink"`
	Technologies []string `json:"technologies" bson:"technologies"`
}

type Writing struct {
	Year        int     `json:"year" bson:"year"`
	Title       string  `json:"title" bson:"title"`
	WritingLink string  `json:"writingLink" bson:"writingLink"`
	ImageURL    *string `json:"imageUrl" bson:"imageUrl"`
}

// Data is the read-time aggregate of all sections. Every section is
// optional: a missing section simply renders as absent.
type Data struct {
	Hero       *Hero        `json:"hero,omitempty"`
	About      *About       `json:"about,omitempty"`
	Contact    *Contact     `json:"contact,omitempty"`
	Experience []Experience `json:"experience,omitempty"`
	Projects   []Project    `json:"projects,omitempty"`
	Writing    []Writing    `json:"writing,omitempty"`
	ResumeURL  *string      `json:"resumeUrl,omitempty"`
}

// StrPtr is a small helper for the nullable image/url fields.
func StrPtr(s string) *string { return &s }
