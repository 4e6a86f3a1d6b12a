// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package coverage turns a link's holdings ranges into one readable sentence.
package coverage

import (
	"strings"

	"github.com/pdiddy/linkresolver/pkg/types"
)

// Statement returns the coverage sentence for link, or "" when the link
// carries no coverage data. Entries are rendered in order and joined by a
// single space.
func Statement(link types.LinkRecord) string {
	var parts []string
	for _, c := range link.Coverage {
		if s := entry(c); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// entry prefers the backend's own wording, then the from/to range, then the
// embargo window.
func entry(c types.Coverage) string {
	if s := precomposed(c.CoverageText); s != "" {
		return s
	}
	if s := rangeStatement(c.From, c.To); s != "" {
		return s
	}
	return embargoStatement(c.Embargo)
}

func precomposed(texts []types.CoverageText) string {
	var out []string
	for _, ct := range texts {
		for _, tt := range ct.ThresholdText {
			for _, s := range tt.CoverageStatement {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
		for _, es := range ct.EmbargoText {
			if s := strings.TrimSpace(es.EmbargoStatement); s != "" {
				out = append(out, s)
			}
		}
	}
	return strings.Join(out, " ")
}

func rangeStatement(from, to []types.FromTo) string {
	start := point(first(from))
	end := point(first(to))
	switch {
	case start != "" && end != "":
		return "Available from " + start + " until " + end + "."
	case start != "":
		return "Available from " + start + "."
	case end != "":
		return "Available until " + end + "."
	}
	return ""
}

func first(ft []types.FromTo) types.FromTo {
	if len(ft) == 0 {
		return types.FromTo{}
	}
	return ft[0]
}

// point renders "<year> volume: <v> issue: <i>", dropping absent parts.
func point(ft types.FromTo) string {
	var p []string
	if y := strings.TrimSpace(ft.Year); y != "" {
		p = append(p, y)
	}
	if v := strings.TrimSpace(ft.Volume); v != "" {
		p = append(p, "volume: "+v)
	}
	if i := strings.TrimSpace(ft.Issue); i != "" {
		p = append(p, "issue: "+i)
	}
	return strings.Join(p, " ")
}

func embargoStatement(e *types.Embargo) string {
	if e == nil {
		return ""
	}
	if m := strings.TrimSpace(e.Month); m != "" {
		return "Most recent " + m + " " + plural(m, "month") + " not available."
	}
	if d := strings.TrimSpace(e.Days); d != "" {
		return "Most recent " + d + " " + plural(d, "day") + " not available."
	}
	return ""
}

func plural(n, unit string) string {
	if n == "1" {
		return unit
	}
	return unit + "s"
}
