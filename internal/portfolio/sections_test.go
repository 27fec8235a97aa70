package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSection(t *testing.T) {
	for _, name := range []string{"hero", "about", "contact", "experience", "projects", "writing", "resume"} {
		s, err := ParseSection(name)
		require.NoError(t, err)
		assert.Equal(t, name, string(s))
	}
	_, err := ParseSection("blog")
	require.ErrorIs(t, err, ErrInvalidSection)
}

func TestDecodeSection_Hero(t *testing.T) {
	raw := []byte(`{"profileImageUrl":null,"name":"Jane","jobTitle":"Engineer","subtitle":"building things"}`)
	v, err := DecodeSection(SectionHero, raw)
	require.NoError(t, err)
	h, ok := v.(*Hero)
	require.True(t, ok)
	assert.Equal(t, "Jane", h.Name)
	assert.Nil(t, h.ProfileImageURL)
}

func TestDecodeSection_RejectsUnknownFields(t *testing.T) {
	raw := []byte(`{"name":"Jane","jobTitle":"Engineer","subtitle":"s","favoriteColor":"teal"}`)
	_, err := DecodeSection(SectionHero, raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
}

func TestDecodeSection_AboutSortsAndValidatesLinks(t *testing.T) {
	raw := []byte(`{"description":"Hello World","links":[
		{"text":"World","url":"https://w.io","startIndex":6,"endIndex":11},
		{"text":"Hello","url":"https://h.io","startIndex":0,"endIndex":5}
	]}`)
	v, err := DecodeSection(SectionAbout, raw)
	require.NoError(t, err)
	a := v.(*About)
	require.Len(t, a.Links, 2)
	assert.Equal(t, "Hello", a.Links[0].Text, "links must be re-sorted by startIndex")

	// annotation text that drifted from the description is rejected
	stale := []byte(`{"description":"Hi World","links":[{"text":"Hello","url":"https://h.io","startIndex":0,"endIndex":5}]}`)
	_, err = DecodeSection(SectionAbout, stale)
	require.Error(t, err)
}

func TestDecodeSection_ExperienceDedupesTechnologies(t *testing.T) {
	raw := []byte(`[{"position":"Dev","company":"Acme","duration":"2020","description":"","logoUrl":null,"technologies":["Go","Redis","Go"]}]`)
	v, err := DecodeSection(SectionExperience, raw)
	require.NoError(t, err)
	items := v.([]Experience)
	require.Len(t, items, 1)
	assert.Equal(t, []string{"Go", "Redis"}, items[0].Technologies)
}

func TestDecodeSection_WritingRejectsBadYear(t *testing.T) {
	raw := []byte(`[{"year":"not-a-year","title":"T","writingLink":"","imageUrl":null}]`)
	_, err := DecodeSection(SectionWriting, raw)
	require.Error(t, err)
}

func TestSectionValue_Resume(t *testing.T) {
	d := &Data{ResumeURL: StrPtr("https://files.example.com/resume.pdf")}
	v := SectionValue(d, SectionResume)
	r, ok := v.(*Resume)
	require.True(t, ok)
	require.NotNil(t, r.ResumeURL)
	assert.Equal(t, "https://files.example.com/resume.pdf", *r.ResumeURL)
}
