package reddit

import "strings"

// ExtractUsername returns the last path segment of a profile URL such as
// https://reddit.com/user/alice/. Input is not validated; anything without
// slashes is returned trimmed.
func ExtractUsername(profileURL string) string {
	trimmed := strings.Trim(strings.TrimSpace(profileURL), "/")
	parts := strings.Split(trimmed, "/")
	return parts[len(parts)-1]
}
