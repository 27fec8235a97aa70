package portfolio

import (
	"encoding/json"
	"fmt"
)

// Resume is the scalar resume section: a single nullable file URL.
type Resume struct {
	ResumeURL *string `json:"resumeUrl" bson:"resumeUrl"`
}

// DecodeSection validates and decodes a raw section payload into its typed
// value. The mapping from section kind to record shape and validation rules
// lives here only; callers never branch on section names themselves.
// Returned values: *Hero, *About, *Contact, []Experience, []Project,
// []Writing, *Resume.
func DecodeSection(section Section, raw []byte) (interface{}, error) {
	if err := ValidateSectionJSON(section, raw); err != nil {
		return nil, err
	}
	switch section {
	case SectionHero:
		var h Hero
		if err := json.Unmarshal(raw, &h); err != nil {
			return nil, fmt.Errorf("decode %s: %w", section, err)
		}
		return &h, nil
	case SectionAbout:
		var a About
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("decode %s: %w", section, err)
		}
		SortLinks(a.Links)
		if err := ValidateLinks(a.Description, a.Links); err != nil {
			return nil, err
		}
		return &a, nil
	case SectionContact:
		var c Contact
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decode %s: %w", section, err)
		}
		return &c, nil
	case SectionExperience:
		var items []Experience
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode %s: %w", section, err)
		}
		for i := range items {
			items[i].Technologies = dedupe(items[i].Technologies)
		}
		return items, nil
	case SectionProjects:
		var items []Project
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode %s: %w", section, err)
		}
		for i := range items {
			items[i].Technologies = dedupe(items[i].Technologies)
		}
		return items, nil
	case SectionWriting:
		var items []Writing
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode %s: %w", section, err)
		}
		return items, nil
	case SectionResume:
		var r Resume
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("decode %s: %w", section, err)
		}
		return &r, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidSection, section)
}

// SectionValue extracts the typed value of one section from an aggregate.
// Missing sections return nil without error.
func SectionValue(d *Data, section Section) interface{} {
	switch section {
	case SectionHero:
		if d.Hero == nil {
			return nil
		}
		return d.Hero
	case SectionAbout:
		if d.About == nil {
			return nil
		}
		return d.About
	case SectionContact:
		if d.Contact == nil {
			return nil
		}
		return d.Contact
	case SectionExperience:
		return d.Experience
	case SectionProjects:
		return d.Projects
	case SectionWriting:
		return d.Writing
	case SectionResume:
		return &Resume{ResumeURL: d.ResumeURL}
	}
	return nil
}

// dedupe removes duplicate technology tags preserving first-seen order.
func dedupe(tags []string) []string {
	if len(tags) < 2 {
		return tags
	}
	seen := make(map[string]struct{}, len(tags))
	out := tags[:0]
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
