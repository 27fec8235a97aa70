package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/foliocms/foliocms/internal/portfolio"
	"github.com/foliocms/foliocms/internal/portfolio/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(repository.NewMemoryRepository())
}

func TestLoad_SeedsEmptyCollection(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	data, err := svc.Load(ctx)
	require.NoError(t, err)

	require.NotNil(t, data.Hero, "seeded hero must be present")
	assert.NotEmpty(t, data.Hero.Name)
	require.NotNil(t, data.About)
	require.NotNil(t, data.Contact)
	assert.Empty(t, data.Experience)
	assert.Empty(t, data.Projects)
	assert.Empty(t, data.Writing)
	assert.Nil(t, data.ResumeURL)
}

func TestSeed_IsIdempotent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.Seed(ctx)
	require.NoError(t, err)
	require.Len(t, first, len(portfolio.Sections))

	again, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Empty(t, again, "second seed must not touch existing sections")
}

func TestSaveSection_ScalarRoundTrip(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	raw := []byte(`{"profileImageUrl":"https://img.example.com/me.webp","name":"Jane","jobTitle":"Engineer","subtitle":"hi"}`)
	require.NoError(t, svc.SaveSection(ctx, portfolio.SectionHero, raw))

	v, err := svc.LoadSection(ctx, portfolio.SectionHero)
	require.NoError(t, err)
	h := v.(*portfolio.Hero)
	assert.Equal(t, "Jane", h.Name)
	require.NotNil(t, h.ProfileImageURL)
	assert.Equal(t, "https://img.example.com/me.webp", *h.ProfileImageURL)
}

func TestSaveSection_ListRoundTripThroughItemsWrapper(t *testing.T) {
	svc := newTestService()
	repo := repository.NewMemoryRepository()
	svc = NewService(repo)
	ctx := context.Background()

	items := []portfolio.Project{
		{Name: "folio", Description: "portfolio CMS", ProjectLink: "https://example.com", Technologies: []string{"Go", "MongoDB"}},
	}
	raw, err := json.Marshal(items)
	require.NoError(t, err)
	require.NoError(t, svc.SaveSection(ctx, portfolio.SectionProjects, raw))

	// the stored document carries the items wrapper
	doc, err := repo.Get(ctx, "projects")
	require.NoError(t, err)
	wrapped, ok := doc["items"].([]interface{})
	require.True(t, ok, "list sections must persist as {items: [...]}: %v", doc)
	require.Len(t, wrapped, 1)

	// ...but reads unwrap it transparently
	v, err := svc.LoadSection(ctx, portfolio.SectionProjects)
	require.NoError(t, err)
	got := v.([]portfolio.Project)
	require.Len(t, got, 1)
	assert.Equal(t, items[0].Name, got[0].Name)
	assert.Equal(t, items[0].Technologies, got[0].Technologies)
}

func TestSaveSection_RejectsInvalidPayload(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	// hero missing required fields
	err := svc.SaveSection(ctx, portfolio.SectionHero, []byte(`{"name":"only-a-name"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPayload)

	// about with desynced annotation offsets
	err = svc.SaveSection(ctx, portfolio.SectionAbout,
		[]byte(`{"description":"short","links":[{"text":"longer","url":"u","startIndex":0,"endIndex":6}]}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestSaveSection_ResumeAndLegacyURLField(t *testing.T) {
	repo := repository.NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.SaveSection(ctx, portfolio.SectionResume, []byte(`{"resumeUrl":"https://files.example.com/cv.pdf"}`)))
	v, err := svc.LoadSection(ctx, portfolio.SectionResume)
	require.NoError(t, err)
	r := v.(*portfolio.Resume)
	require.NotNil(t, r.ResumeURL)
	assert.Equal(t, "https://files.example.com/cv.pdf", *r.ResumeURL)

	// documents written before the rename stored the link under "url"
	require.NoError(t, repo.Set(ctx, "resume", map[string]interface{}{"url": "https://files.example.com/old.pdf"}))
	data, err := svc.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, data.ResumeURL)
	assert.Equal(t, "https://files.example.com/old.pdf", *data.ResumeURL)
}

func TestLoad_ToleratesPartialCollection(t *testing.T) {
	repo := repository.NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	// only one section present; Load must not seed (collection non-empty)
	// and must not fail on the missing ones
	require.NoError(t, repo.Set(ctx, "contact", map[string]interface{}{
		"title": "Say hi", "email": "a@b.c", "phone": "123", "social": map[string]interface{}{},
	}))

	data, err := svc.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, data.Contact)
	assert.Equal(t, "Say hi", data.Contact.Title)
	assert.Nil(t, data.Hero)
	assert.Empty(t, data.Experience)
}

func TestSaveSection_LastWriterWins(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first := []byte(`{"name":"First","jobTitle":"A","subtitle":"s","profileImageUrl":null}`)
	second := []byte(`{"name":"Second","jobTitle":"B","subtitle":"s","profileImageUrl":null}`)
	require.NoError(t, svc.SaveSection(ctx, portfolio.SectionHero, first))
	require.NoError(t, svc.SaveSection(ctx, portfolio.SectionHero, second))

	v, err := svc.LoadSection(ctx, portfolio.SectionHero)
	require.NoError(t, err)
	assert.Equal(t, "Second", v.(*portfolio.Hero).Name)
}
