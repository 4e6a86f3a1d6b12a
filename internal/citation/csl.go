package citation

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/linkresolver/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title,omitempty"`
	Author         []CSLName `yaml:"author,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Volume         string    `yaml:"volume,omitempty"`
	Issue          string    `yaml:"issue,omitempty"`
	Page           string    `yaml:"page,omitempty"`
	ISSN           string    `yaml:"ISSN,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes rec as a single-item CSL-YAML list to w.
func FormatCSL(rec types.CitationRecord, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode([]CSLItem{ToCSLItem(rec)})
}

// ToCSLItem converts a CitationRecord to a CSLItem. Absent fields stay empty.
func ToCSLItem(rec types.CitationRecord) CSLItem {
	rec = trimmed(rec)
	item := CSLItem{
		ID:             cslID(rec),
		Type:           cslType(rec.Genre),
		Title:          rec.ArticleTitle,
		ContainerTitle: rec.JournalTitle,
		Volume:         rec.Volume,
		Issue:          rec.Issue,
		ISSN:           rec.ISSN,
	}
	if rec.Author != "" {
		item.Author = []CSLName{parseAuthorName(rec.Author)}
	}
	if parts := dateParts(rec.Date); len(parts) > 0 {
		item.Issued = &CSLDate{DateParts: [][]int{parts}}
	}
	if rec.StartPage != "" || rec.EndPage != "" {
		item.Page = Journal{StartPage: rec.StartPage, EndPage: rec.EndPage}.pages()
	}
	return item
}

// cslType maps an OpenURL genre onto a CSL item type.
func cslType(genre string) string {
	switch strings.ToLower(genre) {
	case "journal", "issue":
		return "periodical"
	case "book":
		return "book"
	case "bookitem", "chapter":
		return "chapter"
	case "conference", "proceeding":
		return "paper-conference"
	case "article", "preprint", "":
		return "article-journal"
	default:
		return "article"
	}
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// cslID derives a stable key: the first author's family name and the year,
// falling back to a title slug, then the ISSN.
func cslID(rec types.CitationRecord) string {
	if rec.Author != "" {
		n := parseAuthorName(rec.Author)
		key := n.Family
		if key == "" {
			key = n.Literal
		}
		if y := dateParts(rec.Date); len(y) > 0 {
			key += strconv.Itoa(y[0])
		}
		if s := slug(key); s != "" {
			return s
		}
	}
	if s := slug(rec.ArticleTitle); s != "" {
		if len(s) > 40 {
			s = strings.TrimRight(s[:40], "-")
		}
		return s
	}
	if rec.ISSN != "" {
		return "issn-" + slug(rec.ISSN)
	}
	return "item"
}

func slug(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// parseAuthorName splits a display name into CSL family/given parts. The
// inverted form "Family, Given" is split on the first comma; otherwise the
// last space separates given from family. Single-token names use the
// literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	if family, given, ok := strings.Cut(name, ","); ok {
		return CSLName{
			Family: strings.TrimSpace(family),
			Given:  strings.TrimSpace(given),
		}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}

var datePattern = regexp.MustCompile(`^(\d{4})(?:-(\d{1,2})(?:-(\d{1,2}))?)?`)

// dateParts extracts year, month and day from dates like "1999",
// "1999-04" or "1999-04-12". Unparseable dates yield nil.
func dateParts(date string) []int {
	m := datePattern.FindStringSubmatch(strings.TrimSpace(date))
	if m == nil {
		return nil
	}
	var parts []int
	for _, s := range m[1:] {
		if s == "" {
			break
		}
		n, _ := strconv.Atoi(s)
		parts = append(parts, n)
	}
	return parts
}
