package model

// ViewState is an immutable snapshot of the page elements.
// Renderers receive a ViewState instead of reading live element state,
// so a render never observes a half-applied submit.
type ViewState struct {
	// LoaderVisible is true while at least one submit has shown the loader
	// and no submit has hidden it since.
	LoaderVisible bool `json:"loader_visible"`

	// ResultsVisible is true once a submit has succeeded and no later
	// submit has hidden the results container again.
	ResultsVisible bool `json:"results_visible"`

	// Summary is the plain text content of the summary area.
	Summary string `json:"summary"`

	// History holds submitted URLs, most recent first.
	History []string `json:"history"`
}

// LatestURL returns the first history entry, or "" if the history is empty.
func (v ViewState) LatestURL() string {
	if len(v.History) == 0 {
		return ""
	}
	return v.History[0]
}

// AtRest reports whether the loader is hidden.
func (v ViewState) AtRest() bool {
	return !v.LoaderVisible
}
