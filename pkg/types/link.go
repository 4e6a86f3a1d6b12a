// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// LinkRecord is one resolved full-text or holdings target returned by the
// links backend. The JSON shape follows the SFX target record.
type LinkRecord struct {
	// TargetName is the backend's internal target identifier.
	TargetName string `json:"target_name,omitempty"`

	// TargetPublicName is the display label for the link.
	TargetPublicName string `json:"target_public_name"`

	// TargetURL is the destination of the link. A record without it is not usable.
	TargetURL string `json:"target_url"`

	Authentication string `json:"authentication,omitempty"`
	Proxy          string `json:"proxy,omitempty"`

	// Coverage describes the date and volume ranges the target holds.
	Coverage []Coverage `json:"coverage,omitempty"`
}

// Usable reports whether the record carries a target URL.
func (l LinkRecord) Usable() bool {
	return l.TargetURL != ""
}

// Coverage is one holdings range of a target.
type Coverage struct {
	CoverageText []CoverageText `json:"coverage_text,omitempty"`
	From         []FromTo       `json:"from,omitempty"`
	To           []FromTo       `json:"to,omitempty"`
	Embargo      *Embargo       `json:"embargo,omitempty"`
}

// CoverageText carries the backend's precomposed coverage wording.
type CoverageText struct {
	ThresholdText []ThresholdText    `json:"threshold_text,omitempty"`
	EmbargoText   []EmbargoStatement `json:"embargo_text,omitempty"`
}

type ThresholdText struct {
	CoverageStatement []string `json:"coverage_statement,omitempty"`
}

type EmbargoStatement struct {
	EmbargoStatement string `json:"embargo_statement,omitempty"`
}

// FromTo is one end of a coverage range.
type FromTo struct {
	Year   string `json:"year,omitempty"`
	Month  string `json:"month,omitempty"`
	Day    string `json:"day,omitempty"`
	Volume string `json:"volume,omitempty"`
	Issue  string `json:"issue,omitempty"`
}

// Embargo is a moving wall on the most recent content.
type Embargo struct {
	Availability string `json:"availability,omitempty"`
	Month        string `json:"month,omitempty"`
	Days         string `json:"days,omitempty"`
}
