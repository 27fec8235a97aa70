package portfolio

import (
	"fmt"
	"sort"
	"strings"
)

// Segment is one run of paragraph text. When URL is non-empty the segment
// renders as an anchor displaying Text; otherwise it is plain text.
type Segment struct {
	Text string `json:"text"`
	URL  string `json:"url,omitempty"`
}

// Paragraph is the ordered list of segments for one description paragraph.
type Paragraph []Segment

// SortLinks orders annotations ascending by StartIndex. The stored list is
// kept in this order so render-time reconstruction can splice left to right.
func SortLinks(links []Link) {
	sort.SliceStable(links, func(i, j int) bool {
		return links[i].StartIndex < links[j].StartIndex
	})
}

// ValidateLinks checks every annotation against the current description:
// offsets must satisfy 0 <= start < end <= len(description), and the stored
// text must still match the described span. Editing the description without
// re-deriving offsets silently desyncs downstream annotations; rejecting the
// save here is the guard against persisting that state. Overlapping spans
// are not rejected.
func ValidateLinks(description string, links []Link) error {
	for i, l := range links {
		if l.StartIndex < 0 || l.StartIndex >= l.EndIndex || l.EndIndex > len(description) {
			return fmt.Errorf("links[%d]: offsets [%d,%d) out of bounds for description of length %d",
				i, l.StartIndex, l.EndIndex, len(description))
		}
		if got := description[l.StartIndex:l.EndIndex]; got != l.Text {
			return fmt.Errorf("links[%d]: text %q no longer matches description span %q", i, l.Text, got)
		}
	}
	return nil
}

// SplitParagraphs reconstructs the annotated description: the text is split
// into paragraphs on line breaks, each paragraph owns the absolute offset
// window [start, end), and annotations fully inside a window are spliced out
// of the plain text and replaced by anchor segments. Un-annotated text is
// preserved verbatim, so concatenating every segment's Text reproduces the
// original description paragraph by paragraph.
func SplitParagraphs(description string, links []Link) []Paragraph {
	paras := strings.Split(description, "\n")
	out := make([]Paragraph, 0, len(paras))

	sorted := make([]Link, len(links))
	copy(sorted, links)
	SortLinks(sorted)

	offset := 0
	for _, para := range paras {
		start, end := offset, offset+len(para)
		offset = end + 1 // skip the delimiter

		var p Paragraph
		last := 0
		for _, l := range sorted {
			if l.StartIndex < start || l.EndIndex > end {
				continue
			}
			rel, relEnd := l.StartIndex-start, l.EndIndex-start
			if rel > last {
				p = append(p, Segment{Text: para[last:rel]})
			}
			p = append(p, Segment{Text: l.Text, URL: l.URL})
			last = relEnd
		}
		if last < len(para) {
			p = append(p, Segment{Text: para[last:]})
		}
		out = append(out, p)
	}
	return out
}

// PlainText concatenates every segment of every paragraph back into one
// string, re-inserting line breaks. Used to assert the round-trip invariant.
func PlainText(paragraphs []Paragraph) string {
	var b strings.Builder
	for i, p := range paragraphs {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, s := range p {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}
