package model

import "strings"

// NormalizeName collapses internal whitespace runs to single spaces and trims.
// Display names and usernames are compared in this form.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FoldName returns the case-insensitive comparison key for a name
func FoldName(s string) string {
	return strings.ToLower(NormalizeName(s))
}
