package persona

import (
	"regexp"
	"strings"
)

const snippetLen = 100

// selfDescriptionRegex matches first-person identity phrases on word
// boundaries, so "Imagine" does not match "I'm".
var selfDescriptionRegex = regexp.MustCompile(`(?i)\b(I am|I['’]m|My name is|I work as|I live in)\b`)

// IsSelfDescription reports whether text contains a self-descriptive phrase.
func IsSelfDescription(text string) bool {
	return selfDescriptionRegex.MatchString(text)
}

// Snippet trims text, keeps its first 100 characters and appends "...".
func Snippet(text string) string {
	r := []rune(strings.TrimSpace(text))
	if len(r) > snippetLen {
		r = r[:snippetLen]
	}
	return string(r) + "..."
}
