// Package model defines the data structures shared by the reviewlens packages.
//
// This package contains the following main types:
//   - Result: The decoded success body of the analyze endpoint
//   - Outcome: Which path a submit took (success or one of three error kinds)
//   - Notification: A blocking, user-facing notice
//   - ViewState: An immutable snapshot of the page elements used by renderers
//
// The controller, the renderers (report, web) and the analyze client all
// depend on these types, so they live in their own package to avoid import
// cycles.
package model
