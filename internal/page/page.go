// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package page composes the results page from the citation and the state
// of the links fetch.
package page

import (
	"github.com/pdiddy/linkresolver/internal/citation"
	"github.com/pdiddy/linkresolver/internal/coverage"
	"github.com/pdiddy/linkresolver/internal/fetch"
	"github.com/pdiddy/linkresolver/pkg/types"
)

const (
	ResultsHeaderText = "Displaying search results..."
	ResultsNoteText   = "Note: Alternate titles might have matched your search terms"
	LoadingText       = "Loading..."
	NoResultsText     = "No results found"
	HelpHeadingText   = "Need help?"
	AskLibrarianText  = "Ask a Librarian"
	AskLibrarianURL   = "https://library.nyu.edu/ask/"
)

// View is everything the results template needs for one render.
type View struct {
	Header string
	Note   string

	Citation citation.View

	Loading bool
	Error   string

	// Links holds one entry per fetched record, in received order.
	Links     []Link
	NoResults bool

	// Help is nil while loading.
	Help *HelpPanel
}

// Link is one rendered target.
type Link struct {
	Label    string
	URL      string
	Coverage string

	// Usable is false when the record has no target URL; the label then
	// renders without an anchor.
	Usable bool
}

type HelpPanel struct {
	Heading string
	Text    string
	URL     string
}

// Compose builds the page view for rec and the fetch state st.
func Compose(rec types.CitationRecord, st fetch.State) View {
	v := View{
		Header:    ResultsHeaderText,
		Note:      ResultsNoteText,
		Citation:  citation.Build(rec),
		Loading:   st.Loading(),
		NoResults: st.NoResults(),
	}
	if st.Phase == fetch.PhaseError {
		v.Error = st.Error
	}
	for _, l := range st.Links() {
		v.Links = append(v.Links, Link{
			Label:    linkLabel(l),
			URL:      l.TargetURL,
			Coverage: coverage.Statement(l),
			Usable:   l.Usable(),
		})
	}
	if st.ShowHelp() {
		v.Help = &HelpPanel{
			Heading: HelpHeadingText,
			Text:    AskLibrarianText,
			URL:     AskLibrarianURL,
		}
	}
	return v
}

// linkLabel falls back to the internal target name, then the URL, when the
// backend sends no public name.
func linkLabel(l types.LinkRecord) string {
	switch {
	case l.TargetPublicName != "":
		return l.TargetPublicName
	case l.TargetName != "":
		return l.TargetName
	default:
		return l.TargetURL
	}
}
