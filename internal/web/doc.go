// Package web serves the browser front end: one page with a URL input,
// an analyze button, a loader, a summary area and a history list.
//
// The page is rendered on the server from a ui.View snapshot. Each
// browser gets a session (a uuid in a cookie) owning its own view,
// notification queue and controller, so history never leaks between
// sessions and disappears when the session expires.
//
// Routes:
//
//	GET  /         render the page; pending notifications are shown once
//	POST /submit   run one submit with form field "url", then 303 to /
//	GET  /state    the session's view snapshot as JSON
//	GET  /healthz  {"status":"ok"}
package web
