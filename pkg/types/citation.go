// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the link resolver.
// Implements: CitationRecord (static citation artifact);
//
//	LinkRecord and Coverage (backend links payload);
//	ResolverConfig (service and CLI configuration).
package types

// CitationRecord holds the bibliographic fields of the item being resolved.
// Every field is optional. The record is loaded once from a static artifact
// and never mutated afterwards.
type CitationRecord struct {
	// Genre is the resource type label (e.g. "Article", "Journal").
	Genre string `json:"genre,omitempty" yaml:"genre,omitempty"`

	// ArticleTitle is the title of the article or chapter.
	ArticleTitle string `json:"article_title,omitempty" yaml:"article_title,omitempty"`

	// Author is the display form of the author (e.g. "Doe, John").
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// Date is the publication date as given by the source, usually a year.
	Date string `json:"date,omitempty" yaml:"date,omitempty"`

	// JournalTitle is the title of the containing journal.
	JournalTitle string `json:"journal_title,omitempty" yaml:"journal_title,omitempty"`

	Volume    string `json:"volume,omitempty" yaml:"volume,omitempty"`
	Issue     string `json:"issue,omitempty" yaml:"issue,omitempty"`
	StartPage string `json:"start_page,omitempty" yaml:"start_page,omitempty"`
	EndPage   string `json:"end_page,omitempty" yaml:"end_page,omitempty"`

	// ISSN is the serial number of the containing journal.
	ISSN string `json:"issn,omitempty" yaml:"issn,omitempty"`
}

// HasJournal reports whether any field of the journal group is present.
func (c CitationRecord) HasJournal() bool {
	return c.JournalTitle != "" || c.Volume != "" || c.Issue != "" ||
		c.StartPage != "" || c.EndPage != ""
}
