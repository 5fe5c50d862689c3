// Package ui models the analyzer page elements as explicit state.
//
// A View owns the six elements the controller depends on: the trigger
// button, the URL input, the loading indicator, the results container,
// the summary area and the history list. Each element is identified by a
// stable id (see the ID constants) so server-rendered pages keep the same
// contract a browser script would rely on.
//
// Element mutations are serialized by a mutex. Submits are not: two
// overlapping submits interleave their element operations exactly as two
// overlapping click handlers would.
package ui
