package common

import "strings"

// ContainsAnyFold returns true if s contains any of the substrings,
// ignoring case.
func ContainsAnyFold(s string, subs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
