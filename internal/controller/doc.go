// Package controller implements the analyzer page controller.
//
// A Controller reacts to a submit the way the page's click handler does:
//
//  1. Trim the URL input. A blank input raises a validation notice and
//     stops; no request is sent and the loader is not touched.
//  2. Show the loader and hide the results container.
//  3. Call the analyze endpoint once.
//  4. On success, write the summary, show the results and prepend the URL
//     to the history list. On an application error, show the endpoint's
//     message. On a transport or decoding error, log the details and show
//     a generic notice. Failures leave the summary, results and history
//     untouched.
//  5. Hide the loader, on every path that showed it.
//
// The controller has two implicit states, idle and awaiting-response,
// visible only through the loader. Nothing prevents a second submit while
// one is in flight: overlapping submits race, and whichever settles last
// decides the final loader and results visibility. SubmitAll makes that
// overlap explicit for batch use.
package controller
