package common

import (
	"regexp"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	refPattern        = regexp.MustCompile(`^refs/(?:tags|heads)/(.+)$`)
	whitespacePattern = regexp.MustCompile(`[\s\p{Z}]+`)
)

// combining diacritical marks block
func isCombiningMark(r rune) bool {
	return r >= 0x0300 && r <= 0x036f
}

// RefParser strips the refs/heads/ or refs/tags/ prefix of a git ref.
func RefParser(ref string) string {
	return refPattern.ReplaceAllString(ref, "$1")
}

// DisplayName turns a human name into a mention-safe handle,
// e.g. "José Pérez" -> "jose.perez".
func DisplayName(name string) string {
	if name == "" {
		return ""
	}

	dotted := whitespacePattern.ReplaceAllString(strings.ToLower(name), ".")
	t := transform.Chain(norm.NFD, runes.Remove(runes.Predicate(isCombiningMark)))
	stripped, _, err := transform.String(t, dotted)
	if err != nil {
		return dotted
	}
	return stripped
}

// AtName returns the @-mention of the user, or "" if the user has no name.
func AtName(user *UserModel) string {
	if user == nil || user.Name == "" {
		return ""
	}
	return "@" + DisplayName(user.Name)
}

// ShortSHA ...
func ShortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
