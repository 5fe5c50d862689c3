// Package notify delivers blocking, user-facing notifications and owns
// their localized wording.
//
// The controller raises three notices: an empty-URL prompt, the endpoint's
// error message, and a generic failure notice. Messages renders them for a
// language (English or Turkish) through a golang.org/x/text/message
// catalog. A Notifier decides how a notice reaches the user: Writer prints
// it to a terminal, Recorder queues it for the next rendered page.
package notify
