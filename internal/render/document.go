package render

import (
	"strings"

	"tickertape/internal/layout"
	"tickertape/internal/record"
)

// Typography holds the per-section sizing constants. These are tuning
// values, surfaced through configuration rather than hard-coded.
type Typography struct {
	AuthorSize  int
	TitleSize   int
	BodySize    int
	TagSize     int
	LineSpacing int
	SectionGap  int
}

// Composer maps normalized records to the ordered section sequence the
// renderer draws.
type Composer struct {
	Fonts    *FontSet
	Renderer *Renderer
	Typo     Typography
}

// Sections lays out one record: author, date, title, then body and
// tags when present.
func (c *Composer) Sections(rec *record.Record) []Section {
	sections := []Section{
		c.section("@"+rec.Author, c.Typo.AuthorSize, AlignLeft, 0),
		c.section(rec.Date, c.Typo.TagSize, AlignRight, c.Typo.SectionGap),
		c.section(rec.Title, c.Typo.TitleSize, AlignLeft, c.Typo.SectionGap),
	}
	if rec.Body != "" {
		sections = append(sections, c.section(rec.Body, c.Typo.BodySize, AlignLeft, c.Typo.SectionGap))
	}
	if len(rec.Tags) > 0 {
		var tags []string
		for _, tag := range rec.Tags {
			tags = append(tags, "#"+strings.TrimPrefix(tag, "#"))
		}
		sections = append(sections, c.section(strings.Join(tags, " "), c.Typo.TagSize, AlignLeft, 0))
	}

	return sections
}

// Message is the layout used for standalone notices such as the
// startup banner: a single centered section.
func (c *Composer) Message(text string, size int) []Section {
	return []Section{c.section(text, size, AlignCenter, 0)}
}

func (c *Composer) section(text string, size int, align Alignment, gap int) Section {
	face := c.Fonts.Face(size)
	return Section{
		Lines:       layout.Wrap(text, face, c.Renderer.MaxLineWidth()),
		Face:        face,
		Align:       align,
		LineSpacing: c.Typo.LineSpacing,
		Gap:         gap,
	}
}
