// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/linkresolver/pkg/types"
)

func renderDoc(t *testing.T, rec types.CitationRecord) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Build(rec)))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestRenderGenre(t *testing.T) {
	doc := renderDoc(t, types.CitationRecord{Genre: "Journal"})
	assert.Equal(t, "Journal", doc.Find("p.resource-type").Text())
}

func TestRenderTitle(t *testing.T) {
	doc := renderDoc(t, types.CitationRecord{ArticleTitle: "Example Article Title"})
	assert.Equal(t, "Example Article Title", doc.Find("h2.title").Text())
}

func TestRenderAuthorAndDate(t *testing.T) {
	doc := renderDoc(t, types.CitationRecord{Author: "Doe, John", Date: "1999"})

	byline := doc.Find("p.byline")
	require.Equal(t, 1, byline.Length())
	assert.Regexp(t, `Doe, John.*1999`, byline.Text())
	assert.Equal(t, 0, doc.Find("h2.title").Length())
}

func TestRenderISSN(t *testing.T) {
	doc := renderDoc(t, types.CitationRecord{ISSN: "1234-5678"})

	assert.Equal(t, "ISSN:", doc.Find("dl.citation-info dt").Text())
	assert.Equal(t, "1234-5678", doc.Find("dl.citation-info dd").Text())
	assert.Equal(t, 0, doc.Find("p").Length())
}

func TestRenderOmitsEmptyValues(t *testing.T) {
	doc := renderDoc(t, types.CitationRecord{Genre: "Article", ArticleTitle: "Test Article Title", Date: "1992"})

	assert.Equal(t, "Article", doc.Find("p.resource-type").Text())
	assert.Equal(t, "Test Article Title", doc.Find("h2.title").Text())
	assert.Equal(t, 0, doc.Find("p.byline").Length(), "date alone must not produce a byline")
	assert.Equal(t, 0, doc.Find("p.journal").Length())
	assert.Equal(t, 0, doc.Find("dl.citation-info").Length())

	text := doc.Text()
	for _, label := range []string{JournalLabel, "Volume", "Issue", "Page", "ISSN:"} {
		assert.NotContains(t, text, label)
	}
}

func TestRenderPartialJournal(t *testing.T) {
	doc := renderDoc(t, types.CitationRecord{JournalTitle: "Nature", Issue: "3", EndPage: "99"})

	journal := doc.Find("p.journal")
	require.Equal(t, 1, journal.Length())
	assert.Equal(t, "Nature.", journal.Find("i.journal-title").Text())
	assert.Equal(t, "Published in Journal Nature. Issue 3. Page 99.", journal.Text())
	assert.Equal(t, 0, journal.Find(".volume").Length())
}

// No label is ever rendered without a value, whatever subset of the journal
// group is present.
func TestRenderNoBareLabels(t *testing.T) {
	fields := []string{"journal", "volume", "issue", "start", "end"}
	for mask := 0; mask < 1<<len(fields); mask++ {
		rec := types.CitationRecord{}
		set := func(i int, v string) string {
			if mask&(1<<i) != 0 {
				return v
			}
			return ""
		}
		rec.JournalTitle = set(0, "Nature")
		rec.Volume = set(1, "5")
		rec.Issue = set(2, "2")
		rec.StartPage = set(3, "10")
		rec.EndPage = set(4, "20")

		doc := renderDoc(t, rec)
		text := doc.Find("p.journal").Text()

		if mask == 0 {
			assert.Equal(t, 0, doc.Find("p.journal").Length())
			continue
		}
		for _, bare := range []string{"Volume .", "Issue .", "Page .", "Page -", "-.", "  "} {
			assert.NotContains(t, text, bare, "mask %05b", mask)
		}
		assert.False(t, strings.HasPrefix(text, " ") || strings.HasSuffix(text, " "), "mask %05b: %q", mask, text)
		assert.Equal(t, rec.JournalTitle != "", strings.Contains(text, JournalLabel), "mask %05b", mask)
	}
}

func TestRenderEscapesMarkup(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Build(types.CitationRecord{ArticleTitle: "<script>alert(1)</script>"})))
	assert.NotContains(t, buf.String(), "<script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestFormatText(t *testing.T) {
	var buf bytes.Buffer
	FormatText(Build(types.CitationRecord{
		Genre: "Article", ArticleTitle: "Title", Author: "Doe, John", Date: "1999",
		JournalTitle: "Nature", Volume: "5", ISSN: "1234-5678",
	}), &buf)

	want := "[Article]\nTitle\nDoe, John • 1999\nPublished in Journal Nature. Volume 5.\nISSN: 1234-5678\n"
	assert.Equal(t, want, buf.String())

	buf.Reset()
	FormatText(Build(types.CitationRecord{}), &buf)
	assert.Equal(t, "No citation details available.\n", buf.String())
}
