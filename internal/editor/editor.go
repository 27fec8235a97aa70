package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/foliocms/foliocms/internal/portfolio"
)

var (
	ErrNotListSection = errors.New("active section is not a list")
	ErrIndexRange     = errors.New("item index out of range")
	ErrNoAbout        = errors.New("about section not present")
)

// Aggregator persists one section at a time. Satisfied by the portfolio
// service and by test fakes.
type Aggregator interface {
	SaveSection(ctx context.Context, section portfolio.Section, raw []byte) error
}

// Editor holds an operator's working copy of the portfolio aggregate and the
// section currently being edited. Edits stay in memory until Submit, which
// persists the active section only. Edits to other sections made in the same
// editor are not persisted by Submit and are lost when the editor closes.
type Editor struct {
	mu     sync.Mutex
	data   *portfolio.Data
	active portfolio.Section
	dirty  bool
}

// NewEditor opens an editing workspace over a deep copy of the aggregate.
func NewEditor(data *portfolio.Data) (*Editor, error) {
	cp, err := copyData(data)
	if err != nil {
		return nil, err
	}
	return &Editor{data: cp, active: portfolio.SectionHero}, nil
}

// Active returns the section currently selected for editing.
func (e *Editor) Active() portfolio.Section {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// Dirty reports whether the workspace has unsaved changes.
func (e *Editor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty
}

// Snapshot returns a deep copy of the current working aggregate.
func (e *Editor) Snapshot() (*portfolio.Data, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyData(e.data)
}

// SetActive switches the section under edit. In-memory edits to the previous
// section are kept in the working copy but only the active section is ever
// persisted by Submit.
func (e *Editor) SetActive(section portfolio.Section) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = section
}

// AddItem appends a default-initialized record to the active list section and
// returns its index.
func (e *Editor) AddItem() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.active {
	case portfolio.SectionExperience:
		e.data.Experience = append(e.data.Experience, portfolio.NewExperienceItem())
		e.dirty = true
		return len(e.data.Experience) - 1, nil
	case portfolio.SectionProjects:
		e.data.Projects = append(e.data.Projects, portfolio.NewProjectItem())
		e.dirty = true
		return len(e.data.Projects) - 1, nil
	case portfolio.SectionWriting:
		e.data.Writing = append(e.data.Writing, portfolio.NewWritingItem())
		e.dirty = true
		return len(e.data.Writing) - 1, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrNotListSection, e.active)
}

// RemoveItem deletes the record at index from the active list section.
// Following records shift down one position.
func (e *Editor) RemoveItem(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.active {
	case portfolio.SectionExperience:
		if index < 0 || index >= len(e.data.Experience) {
			return fmt.Errorf("%w: %d", ErrIndexRange, index)
		}
		e.data.Experience = append(e.data.Experience[:index], e.data.Experience[index+1:]...)
	case portfolio.SectionProjects:
		if index < 0 || index >= len(e.data.Projects) {
			return fmt.Errorf("%w: %d", ErrIndexRange, index)
		}
		e.data.Projects = append(e.data.Projects[:index], e.data.Projects[index+1:]...)
	case portfolio.SectionWriting:
		if index < 0 || index >= len(e.data.Writing) {
			return fmt.Errorf("%w: %d", ErrIndexRange, index)
		}
		e.data.Writing = append(e.data.Writing[:index], e.data.Writing[index+1:]...)
	default:
		return fmt.Errorf("%w: %s", ErrNotListSection, e.active)
	}
	e.dirty = true
	return nil
}

// UpdateField replaces one named field of the record at index in the active
// list section. Unknown fields and type mismatches are rejected; sibling
// records are untouched.
func (e *Editor) UpdateField(index int, field string, value interface{}) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.active {
	case portfolio.SectionExperience:
		if index < 0 || index >= len(e.data.Experience) {
			return fmt.Errorf("%w: %d", ErrIndexRange, index)
		}
		return patchField(&e.data.Experience[index], field, value, &e.dirty)
	case portfolio.SectionProjects:
		if index < 0 || index >= len(e.data.Projects) {
			return fmt.Errorf("%w: %d", ErrIndexRange, index)
		}
		return patchField(&e.data.Projects[index], field, value, &e.dirty)
	case portfolio.SectionWriting:
		if index < 0 || index >= len(e.data.Writing) {
			return fmt.Errorf("%w: %d", ErrIndexRange, index)
		}
		return patchField(&e.data.Writing[index], field, value, &e.dirty)
	}
	return fmt.Errorf("%w: %s", ErrNotListSection, e.active)
}

// SetHero replaces the hero section of the working copy.
func (e *Editor) SetHero(h portfolio.Hero) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.data.Hero = &h
	e.dirty = true
}

// SetContact replaces the contact section of the working copy.
func (e *Editor) SetContact(c portfolio.Contact) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.data.Contact = &c
	e.dirty = true
}

// SetAboutDescription replaces the about description. Existing link
// annotations are kept as-is; stale offsets are caught at Submit.
func (e *Editor) SetAboutDescription(desc string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.data.About == nil {
		e.data.About = &portfolio.About{}
	}
	e.data.About.Description = desc
	e.dirty = true
}

// SetResumeURL replaces the resume file reference. Nil clears it.
func (e *Editor) SetResumeURL(url *string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.data.ResumeURL = url
	e.dirty = true
}

// Annotate appends a link annotation over the about description and re-sorts
// the annotation list by start offset. The span must be in bounds and match
// the annotated text exactly.
func (e *Editor) Annotate(text, url string, start, end int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.data.About == nil {
		return ErrNoAbout
	}
	link := portfolio.Link{Text: text, URL: url, StartIndex: start, EndIndex: end}
	links := append(append([]portfolio.Link{}, e.data.About.Links...), link)
	portfolio.SortLinks(links)
	if err := portfolio.ValidateLinks(e.data.About.Description, links); err != nil {
		return err
	}
	e.data.About.Links = links
	e.dirty = true
	return nil
}

// RemoveLink deletes the annotation at index in start-offset order.
func (e *Editor) RemoveLink(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.data.About == nil {
		return ErrNoAbout
	}
	if index < 0 || index >= len(e.data.About.Links) {
		return fmt.Errorf("%w: %d", ErrIndexRange, index)
	}
	e.data.About.Links = append(e.data.About.Links[:index], e.data.About.Links[index+1:]...)
	e.dirty = true
	return nil
}

// Submit persists the active section only. Sections edited but not active
// stay unsaved in the working copy.
func (e *Editor) Submit(ctx context.Context, agg Aggregator) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	value := portfolio.SectionValue(e.data, e.active)
	if value == nil {
		value = map[string]interface{}{}
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", e.active, err)
	}
	// a never-touched list section marshals as null, not an empty array
	if e.active.IsList() && string(raw) == "null" {
		raw = []byte("[]")
	}
	if err := agg.SaveSection(ctx, e.active, raw); err != nil {
		return err
	}
	e.dirty = false
	return nil
}

// patchField round-trips one record through its map shape to replace a single
// field, then decodes strictly so unknown fields or wrong types fail instead
// of corrupting the record.
func patchField(item interface{}, field string, value interface{}, dirty *bool) error {
	b, err := json.Marshal(item)
	if err != nil {
		return err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	if _, ok := m[field]; !ok {
		return fmt.Errorf("unknown field %q", field)
	}
	m[field] = value
	patched, err := json.Marshal(m)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(patched))
	dec.DisallowUnknownFields()
	if err := dec.Decode(item); err != nil {
		return fmt.Errorf("field %q: %w", field, err)
	}
	*dirty = true
	return nil
}

func copyData(d *portfolio.Data) (*portfolio.Data, error) {
	if d == nil {
		return &portfolio.Data{}, nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var out portfolio.Data
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
