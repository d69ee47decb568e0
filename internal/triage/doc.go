// Package triage holds the deterministic rules that decide whether a form
// submission can become a board item and how that item is titled.
package triage
