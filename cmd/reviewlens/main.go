// Package main provides the entry point for the reviewlens CLI.
//
// reviewlens sends product links to a review analysis endpoint and shows
// the returned summary, either in a browser page or on the terminal.
//
// Usage:
//
//	reviewlens serve
//	reviewlens analyze <product-url>...
//
// See --help for all available options.
package main

func main() {
	Execute()
}
