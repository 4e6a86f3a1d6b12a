// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/linkresolver/pkg/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		data string
		want types.CitationRecord
	}{
		{
			name: "json artifact",
			data: `{"genre": "Article", "article_title": "Test Article Title", "date": "1992"}`,
			want: types.CitationRecord{Genre: "Article", ArticleTitle: "Test Article Title", Date: "1992"},
		},
		{
			name: "yaml artifact",
			data: "author: Doe, John\ndate: \"1999\"\nissn: 1234-5678\n",
			want: types.CitationRecord{Author: "Doe, John", Date: "1999", ISSN: "1234-5678"},
		},
		{
			name: "numbers become text",
			data: `{"volume": 12, "issue": 3, "start_page": 101.5, "date": 2001}`,
			want: types.CitationRecord{Volume: "12", Issue: "3", StartPage: "101.5", Date: "2001"},
		},
		{
			name: "json escaped slash",
			data: `{"genre":"Article","article_title":"Input\/Output Systems"}`,
			want: types.CitationRecord{Genre: "Article", ArticleTitle: "Input/Output Systems"},
		},
		{
			name: "json duplicate key keeps the last value",
			data: `{"genre": "Article", "genre": "Book"}`,
			want: types.CitationRecord{Genre: "Book"},
		},
		{
			name: "json numbers keep their written form",
			data: ` {"volume": 1.10, "issue": 1e3}`,
			want: types.CitationRecord{Volume: "1.10", Issue: "1e3"},
		},
		{
			name: "yaml booleans and floats",
			data: "volume: 2.5\ngenre: true\n",
			want: types.CitationRecord{Volume: "2.5", Genre: "true"},
		},
		{
			name: "non-scalar and null values are absent",
			data: `{"author": ["a", "b"], "journal_title": {"x": 1}, "issn": null, "genre": "Book"}`,
			want: types.CitationRecord{Genre: "Book"},
		},
		{
			name: "whitespace-only values are absent",
			data: `{"article_title": "   ", "volume": " 7 "}`,
			want: types.CitationRecord{Volume: "7"},
		},
		{
			name: "unknown keys ignored",
			data: `{"rft.atitle": "ignored", "genre": "Journal"}`,
			want: types.CitationRecord{Genre: "Journal"},
		},
		{
			name: "empty document",
			data: ``,
			want: types.CitationRecord{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMalformed(t *testing.T) {
	for _, data := range []string{
		`{"genre": "Article"`,
		`{"genre": "Article"} {"genre": "Book"}`,
		"genre: [unclosed\n",
	} {
		_, err := Parse([]byte(data))
		require.Error(t, err, data)
		assert.Contains(t, err.Error(), "parsing metadata")
	}
}

func TestLoadDefault(t *testing.T) {
	rec, err := Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ArticleTitle)
	assert.NotEmpty(t, rec.ISSN)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadata.yaml")
	require.NoError(t, os.WriteFile(path, []byte("genre: Journal\nissn: 0028-0836\n"), 0o644))

	rec, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, types.CitationRecord{Genre: "Journal", ISSN: "0028-0836"}, rec)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading metadata")
}
