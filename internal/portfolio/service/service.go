package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/foliocms/foliocms/internal/portfolio"
	"github.com/foliocms/foliocms/internal/portfolio/repository"
	"github.com/foliocms/foliocms/pkg/logger"
)

// itemsKey wraps list-valued sections because the backing store persists
// document shapes, not bare arrays.
const itemsKey = "items"

// ErrInvalidPayload marks client-caused save failures (schema violations,
// stale link offsets) as opposed to storage errors.
var ErrInvalidPayload = errors.New("invalid section payload")

// Service is the portfolio data aggregator: it composes the read-time
// aggregate from the per-section documents and writes exactly one section
// per save. Concurrent saves to different sections are independent
// documents; same-section saves are last-writer-wins.
type Service struct {
	repo repository.Repository
}

func NewService(r repository.Repository) *Service { return &Service{repo: r} }

// Load reads every section and assembles the aggregate. Missing sections are
// tolerated and simply left absent. An entirely empty backing collection is
// seeded once from the default dataset before reading, so the public page
// never renders fully empty.
func (s *Service) Load(ctx context.Context) (*portfolio.Data, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count sections: %w", err)
	}
	if n == 0 {
		logger.Infof("empty portfolio collection, seeding defaults")
		if _, err := s.Seed(ctx); err != nil {
			return nil, fmt.Errorf("seed defaults: %w", err)
		}
	}

	data := &portfolio.Data{}
	for _, section := range portfolio.Sections {
		doc, err := s.repo.Get(ctx, string(section))
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", section, err)
		}
		if err := applySection(data, section, doc); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// LoadSection reads a single section document and returns its typed value.
// Returns repository.ErrNotFound when the section has never been written.
func (s *Service) LoadSection(ctx context.Context, section portfolio.Section) (interface{}, error) {
	doc, err := s.repo.Get(ctx, string(section))
	if err != nil {
		return nil, err
	}
	data := &portfolio.Data{}
	if err := applySection(data, section, doc); err != nil {
		return nil, err
	}
	return portfolio.SectionValue(data, section), nil
}

// SaveSection validates a raw section payload, decodes it by kind, and
// replaces the section document atomically. List sections are wrapped under
// the items key transparently.
func (s *Service) SaveSection(ctx context.Context, section portfolio.Section, raw []byte) error {
	value, err := portfolio.DecodeSection(section, raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	doc, err := toDocument(section, value)
	if err != nil {
		return err
	}
	if err := s.repo.Set(ctx, string(section), doc); err != nil {
		return fmt.Errorf("write %s: %w", section, err)
	}
	return nil
}

// Seed writes the default dataset for every section that does not exist yet
// and returns the sections it initialized. Safe to call on a non-empty
// collection: present sections are left untouched.
func (s *Service) Seed(ctx context.Context) ([]portfolio.Section, error) {
	defaults := portfolio.DefaultData()
	var initialized []portfolio.Section
	for _, section := range portfolio.Sections {
		if _, err := s.repo.Get(ctx, string(section)); err == nil {
			continue
		} else if !errors.Is(err, repository.ErrNotFound) {
			return initialized, fmt.Errorf("probe %s: %w", section, err)
		}
		doc, err := toDocument(section, portfolio.SectionValue(defaults, section))
		if err != nil {
			return initialized, err
		}
		if err := s.repo.Set(ctx, string(section), doc); err != nil {
			return initialized, fmt.Errorf("seed %s: %w", section, err)
		}
		logger.Infof("initialized %s section", section)
		initialized = append(initialized, section)
	}
	return initialized, nil
}

// toDocument converts a typed section value into the stored document shape.
func toDocument(section portfolio.Section, value interface{}) (map[string]interface{}, error) {
	if section.IsList() {
		items, err := roundTrip[[]interface{}](value)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", section, err)
		}
		if items == nil {
			items = []interface{}{}
		}
		return map[string]interface{}{itemsKey: items}, nil
	}
	doc, err := roundTrip[map[string]interface{}](value)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", section, err)
	}
	return doc, nil
}

// applySection decodes a stored document into the matching aggregate field.
// Malformed or missing fields fall back to zero shapes rather than failing.
func applySection(data *portfolio.Data, section portfolio.Section, doc map[string]interface{}) error {
	if section.IsList() {
		raw, _ := doc[itemsKey]
		if raw == nil {
			raw = []interface{}{}
		}
		b, err := json.Marshal(raw)
		if err != nil {
			return fmt.Errorf("decode %s: %w", section, err)
		}
		switch section {
		case portfolio.SectionExperience:
			return unmarshalInto(b, &data.Experience, section)
		case portfolio.SectionProjects:
			return unmarshalInto(b, &data.Projects, section)
		case portfolio.SectionWriting:
			return unmarshalInto(b, &data.Writing, section)
		}
		return nil
	}

	if section == portfolio.SectionResume {
		// older documents stored the file reference under "url"
		if v, ok := doc["resumeUrl"].(string); ok && v != "" {
			data.ResumeURL = portfolio.StrPtr(v)
		} else if v, ok := doc["url"].(string); ok && v != "" {
			data.ResumeURL = portfolio.StrPtr(v)
		}
		return nil
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("decode %s: %w", section, err)
	}
	switch section {
	case portfolio.SectionHero:
		data.Hero = &portfolio.Hero{}
		return unmarshalInto(b, data.Hero, section)
	case portfolio.SectionAbout:
		data.About = &portfolio.About{}
		if err := unmarshalInto(b, data.About, section); err != nil {
			return err
		}
		portfolio.SortLinks(data.About.Links)
		return nil
	case portfolio.SectionContact:
		data.Contact = &portfolio.Contact{}
		return unmarshalInto(b, data.Contact, section)
	}
	return nil
}

func unmarshalInto(b []byte, v interface{}, section portfolio.Section) error {
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode %s: %w", section, err)
	}
	return nil
}

func roundTrip[T any](value interface{}) (T, error) {
	var out T
	if value == nil {
		return out, nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, err
	}
	return out, nil
}
