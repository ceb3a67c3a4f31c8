// Package main is the entry point of subdns-portal, the self-service portal of
// the subdns dynamic DNS. The start command serves the web portal, the other
// commands run the same operations against the backend from a terminal.
package main
