// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch runs the single links fetch of a page view and exposes its
// progress as a FetchState.
package fetch

import "github.com/pdiddy/linkresolver/pkg/types"

// Phase is the effective state of a fetch.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
)

// State is a snapshot of a fetch. Exactly one phase applies; Error is set
// only in PhaseError and Resource only in PhaseSuccess (possibly empty).
type State struct {
	Phase    Phase              `json:"phase"`
	Error    string             `json:"error,omitempty"`
	Resource []types.LinkRecord `json:"resource"`
}

// Loading reports whether the fetch is in flight.
func (s State) Loading() bool { return s.Phase == PhaseLoading }

// Terminal reports whether the fetch has finished, successfully or not.
func (s State) Terminal() bool { return s.Phase == PhaseSuccess || s.Phase == PhaseError }

// Links returns the fetched records in received order, or nil outside
// PhaseSuccess.
func (s State) Links() []types.LinkRecord {
	if s.Phase != PhaseSuccess {
		return nil
	}
	return s.Resource
}

// NoResults reports whether the "no results" fallback applies: the fetch
// succeeded with nothing, or failed.
func (s State) NoResults() bool {
	switch s.Phase {
	case PhaseSuccess:
		return len(s.Resource) == 0
	case PhaseError:
		return true
	}
	return false
}

// ShowHelp reports whether the help panel is visible; it is hidden only
// while loading.
func (s State) ShowHelp() bool { return !s.Loading() }

// Loaded returns the success state for records. A nil slice becomes empty.
func Loaded(records []types.LinkRecord) State {
	if records == nil {
		records = []types.LinkRecord{}
	}
	return State{Phase: PhaseSuccess, Resource: records}
}

// Failed returns the error state carrying msg.
func Failed(msg string) State {
	return State{Phase: PhaseError, Error: msg}
}
