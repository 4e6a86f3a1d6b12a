// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metadata loads the static citation artifact shown on the results
// page. The artifact is read once at startup; callers hold the returned
// record by value for the life of the process.
package metadata

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/linkresolver/pkg/types"
)

//go:embed metadata.json
var defaultArtifact []byte

// Load reads the citation artifact at path. JSON and YAML are both accepted.
// An empty path loads the embedded default.
func Load(path string) (types.CitationRecord, error) {
	data := defaultArtifact
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return types.CitationRecord{}, fmt.Errorf("reading metadata: %w", err)
		}
		data = b
	}
	return Parse(data)
}

// Parse decodes a citation artifact. A document starting with '{' is JSON,
// anything else is YAML. Fields that are missing, null, or not scalar are
// treated as absent rather than rejected; numbers and booleans are kept in
// their textual form. JSON numbers keep the digits as written.
func Parse(data []byte) (types.CitationRecord, error) {
	raw := map[string]any{}
	if err := decode(data, &raw); err != nil {
		return types.CitationRecord{}, fmt.Errorf("parsing metadata: %w", err)
	}

	return types.CitationRecord{
		Genre:        field(raw, "genre"),
		ArticleTitle: field(raw, "article_title"),
		Author:       field(raw, "author"),
		Date:         field(raw, "date"),
		JournalTitle: field(raw, "journal_title"),
		Volume:       field(raw, "volume"),
		Issue:        field(raw, "issue"),
		StartPage:    field(raw, "start_page"),
		EndPage:      field(raw, "end_page"),
		ISSN:         field(raw, "issn"),
	}, nil
}

// decode uses encoding/json for JSON documents: yaml.v3 rejects legal JSON
// such as the \/ escape and duplicate keys.
func decode(data []byte, raw *map[string]any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return yaml.Unmarshal(data, raw)
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(raw); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after JSON object")
	}
	return nil
}

func field(raw map[string]any, key string) string {
	switch v := raw[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return ""
	}
}
