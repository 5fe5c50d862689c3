package model

// Result is the decoded success body of the analyze endpoint.
// Only the summary is used; any other fields in the body are ignored.
type Result struct {
	// Summary is the analysis text rendered into the summary area.
	Summary string `json:"summary"`
}
