// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citation renders a CitationRecord as a set of optional fragments.
// Each field group is checked for presence explicitly; an absent group is a
// nil fragment and renders nothing.
package citation

import (
	"strings"

	"github.com/pdiddy/linkresolver/pkg/types"
)

// View is the fragment tree for one citation. Nil fields are not rendered.
type View struct {
	ResourceType *ResourceType
	Title        *Title
	Byline       *Byline
	Journal      *Journal
	ISSN         *ISSN
}

type ResourceType struct{ Label string }

type Title struct{ Text string }

// Byline is the "author • date" line. It exists only when both are known.
type Byline struct {
	Author string
	Date   string
}

// Journal holds the present members of the journal group. Empty strings are
// absent sub-fields.
type Journal struct {
	Title     string
	Volume    string
	Issue     string
	StartPage string
	EndPage   string
}

type ISSN struct{ Value string }

// PartKind identifies a journal sub-field.
type PartKind string

const (
	PartLabel  PartKind = "journal-label"
	PartTitle  PartKind = "journal-title"
	PartVolume PartKind = "volume"
	PartIssue  PartKind = "issue"
	PartPages  PartKind = "pages"
)

// JournalLabel precedes the italicized journal name.
const JournalLabel = "Published in Journal"

// Part is one rendered sub-field of the journal block.
type Part struct {
	Kind   PartKind
	Text   string
	Italic bool
}

// Build checks each field group of rec and returns the fragments that apply.
func Build(rec types.CitationRecord) View {
	rec = trimmed(rec)

	var v View
	if rec.Genre != "" {
		v.ResourceType = &ResourceType{Label: rec.Genre}
	}
	if rec.ArticleTitle != "" {
		v.Title = &Title{Text: rec.ArticleTitle}
	}
	if rec.Author != "" && rec.Date != "" {
		v.Byline = &Byline{Author: rec.Author, Date: rec.Date}
	}
	if rec.HasJournal() {
		v.Journal = &Journal{
			Title:     rec.JournalTitle,
			Volume:    rec.Volume,
			Issue:     rec.Issue,
			StartPage: rec.StartPage,
			EndPage:   rec.EndPage,
		}
	}
	if rec.ISSN != "" {
		v.ISSN = &ISSN{Value: rec.ISSN}
	}
	return v
}

// Empty reports whether no fragment is present.
func (v View) Empty() bool {
	return v.ResourceType == nil && v.Title == nil && v.Byline == nil &&
		v.Journal == nil && v.ISSN == nil
}

// Parts returns the journal sub-fields in display order. Only sub-fields
// with a value are returned, each carrying its own terminating period.
func (j Journal) Parts() []Part {
	var parts []Part
	if j.Title != "" {
		parts = append(parts,
			Part{Kind: PartLabel, Text: JournalLabel},
			Part{Kind: PartTitle, Text: j.Title + ".", Italic: true},
		)
	}
	if j.Volume != "" {
		parts = append(parts, Part{Kind: PartVolume, Text: "Volume " + j.Volume + "."})
	}
	if j.Issue != "" {
		parts = append(parts, Part{Kind: PartIssue, Text: "Issue " + j.Issue + "."})
	}
	if p := j.pages(); p != "" {
		parts = append(parts, Part{Kind: PartPages, Text: "Page " + p + "."})
	}
	return parts
}

func (j Journal) pages() string {
	switch {
	case j.StartPage != "" && j.EndPage != "":
		return j.StartPage + "-" + j.EndPage
	case j.StartPage != "":
		return j.StartPage
	default:
		return j.EndPage
	}
}

// Text joins the journal parts with single spaces.
func (j Journal) Text() string {
	parts := j.Parts()
	s := make([]string, len(parts))
	for i, p := range parts {
		s[i] = p.Text
	}
	return strings.Join(s, " ")
}

func trimmed(rec types.CitationRecord) types.CitationRecord {
	for _, f := range []*string{
		&rec.Genre, &rec.ArticleTitle, &rec.Author, &rec.Date, &rec.JournalTitle,
		&rec.Volume, &rec.Issue, &rec.StartPage, &rec.EndPage, &rec.ISSN,
	} {
		*f = strings.TrimSpace(*f)
	}
	return rec
}
