package ui

import (
	"slices"
	"sync"

	"github.com/nao1215/reviewlens/internal/model"
)

// Element ids of the page contract.
const (
	IDAnalyzeButton    = "analyzeBtn"
	IDProductURL       = "productUrl"
	IDLoader           = "loader"
	IDResultsContainer = "resultsContainer"
	IDSummaryContent   = "summaryContent"
	IDHistoryList      = "historyList"
)

// View holds the mutable state of the page elements.
// The zero value is not usable; create views with NewView.
type View struct {
	mu sync.Mutex

	loaderVisible  bool
	resultsVisible bool
	summary        string

	// history is stored oldest first so PrependHistory is an append;
	// Snapshot reverses it into display order.
	history []string
}

// NewView returns a view at rest: loader hidden, results hidden,
// empty summary and empty history.
func NewView() *View {
	return &View{
		history: make([]string, 0),
	}
}

// ShowLoader makes the loading indicator visible.
func (v *View) ShowLoader() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loaderVisible = true
}

// HideLoader hides the loading indicator.
func (v *View) HideLoader() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loaderVisible = false
}

// ShowResults makes the results container visible.
func (v *View) ShowResults() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resultsVisible = true
}

// HideResults hides the results container.
func (v *View) HideResults() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resultsVisible = false
}

// SetSummary replaces the text content of the summary area.
// The text is stored verbatim; renderers are responsible for escaping.
func (v *View) SetSummary(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.summary = text
}

// PrependHistory inserts url as the first entry of the history list.
// Duplicates are kept and the list is not capped.
func (v *View) PrependHistory(url string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.history = append(v.history, url)
}

// Snapshot returns a copy of the current element state.
func (v *View) Snapshot() model.ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()

	history := slices.Clone(v.history)
	slices.Reverse(history)
	if history == nil {
		history = []string{}
	}

	return model.ViewState{
		LoaderVisible:  v.loaderVisible,
		ResultsVisible: v.resultsVisible,
		Summary:        v.summary,
		History:        history,
	}
}
