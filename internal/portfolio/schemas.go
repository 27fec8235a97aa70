package portfolio

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Per-section JSON schemas applied to admin writes before decoding. The
// schemas mirror the wire shape (list sections validate the bare array; the
// {items: ...} wrapper is a persistence detail added after validation).
var sectionSchemas = map[Section]string{
	SectionHero: `{
		"type": "object",
		"properties": {
			"profileImageUrl": {"type": ["string", "null"]},
			"name": {"type": "string"},
			"jobTitle": {"type": "string"},
			"subtitle": {"type": "string"}
		},
		"required": ["name", "jobTitle", "subtitle"],
		"additionalProperties": false
	}`,
	SectionAbout: `{
		"type": "object",
		"properties": {
			"description": {"type": "string"},
			"links": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"text": {"type": "string"},
						"url": {"type": "string"},
						"startIndex": {"type": "integer", "minimum": 0},
						"endIndex": {"type": "integer", "minimum": 1}
					},
					"required": ["text", "url", "startIndex", "endIndex"],
					"additionalProperties": false
				}
			}
		},
		"required": ["description"],
		"additionalProperties": false
	}`,
	SectionContact: `{
		"type": "object",
		"properties": {
			"title": {"type": "string"},
			"email": {"type": "string"},
			"phone": {"type": "string"},
			"social": {
				"type": "object",
				"properties": {
					"linkedin": {"type": "string"},
					"github": {"type": "string"},
					"twitter": {"type": "string"},
					"stackoverflow": {"type": "string"},
					"facebook": {"type": "string"},
					"instagram": {"type": "string"},
					"youtube": {"type": "string"},
					"tiktok": {"type": "string"},
					"twitch": {"type": "string"},
					"medium": {"type": "string"}
				},
				"additionalProperties": false
			}
		},
		"required": ["title", "email", "phone"],
		"additionalProperties": false
	}`,
	SectionExperience: `{
		"type": "array",
		"items": {
			"type": "object",
			"properties": {
				"position": {"type": "string"},
				"company": {"type": "string"},
				"duration": {"type": "string"},
				"description": {"type": "string"},
				"logoUrl": {"type": ["string", "null"]},
				"technologies": {"type": "array", "items": {"type": "string"}}
			},
			"required": ["position", "company"],
			"additionalProperties": false
		}
	}`,
	SectionProjects: `{
		"type": "array",
		"items": {
			"type": "object",
			"properties": {
				"name": {"type": "string"},
				"description": {"type": "string"},
				"imageUrl": {"type": ["string", "null"]},
				"projectLink": {"type": "string"},
				"technologies": {"type": "array", "items": {"type": "string"}}
			},
			"required": ["name"],
			"additionalProperties": false
		}
	}`,
	SectionWriting: `{
		"type": "array",
		"items": {
			"type": "object",
			"properties": {
				"year": {"type": "integer", "minimum": 1900},
				"title": {"type": "string"},
				"writingLink": {"type": "string"},
				"imageUrl": {"type": ["string", "null"]}
			},
			"required": ["year", "title"],
			"additionalProperties": false
		}
	}`,
	SectionResume: `{
		"type": "object",
		"properties": {
			"resumeUrl": {"type": ["string", "null"]}
		},
		"required": ["resumeUrl"],
		"additionalProperties": false
	}`,
}

// ValidateSectionJSON validates a raw section payload against the section's
// schema. Returns a single error aggregating every schema violation.
func ValidateSectionJSON(section Section, raw []byte) error {
	schema, ok := sectionSchemas[section]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidSection, section)
	}
	res, err := gojsonschema.Validate(gojsonschema.NewStringLoader(schema), gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}
