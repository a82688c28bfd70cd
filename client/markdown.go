package client

import (
	"regexp"
	"strings"
)

// mediaIDPattern matches the media-retrieval path segments the editor embeds
// in markdown, e.g. ![alt](/api/media/<uuid>). Only UUID-shaped tokens count.
var mediaIDPattern = regexp.MustCompile(`/media/([0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12})`)

// ExtractMediaIDs collects the unique set of media ids referenced by the
// given markdown, in first-seen order.
func ExtractMediaIDs(markdown string) []string {
	matches := mediaIDPattern.FindAllStringSubmatch(markdown, -1)

	seen := make(map[string]struct{}, len(matches))
	ids := make([]string, 0, len(matches))
	for _, match := range matches {
		id := strings.ToLower(match[1])
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

const excerptLength = 150

var (
	headingMarkup  = regexp.MustCompile(`#{1,6}\s`)
	boldMarkup     = regexp.MustCompile(`\*\*|__`)
	emphasisMarkup = regexp.MustCompile(`\*|_`)
	linkMarkup     = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	codeMarkup     = regexp.MustCompile("`{1,3}[^`]*`{1,3}")
)

// GenerateExcerpt derives the plain-text summary stored alongside a post:
// markdown markup is stripped, newlines collapse to spaces, and the result
// is truncated to 150 characters plus an ellipsis.
func GenerateExcerpt(markdown string) string {
	plain := headingMarkup.ReplaceAllString(markdown, "")
	plain = boldMarkup.ReplaceAllString(plain, "")
	plain = emphasisMarkup.ReplaceAllString(plain, "")
	plain = linkMarkup.ReplaceAllString(plain, "$1")
	plain = codeMarkup.ReplaceAllString(plain, "")
	plain = strings.ReplaceAll(plain, "\n", " ")
	plain = strings.TrimSpace(plain)

	runes := []rune(plain)
	if len(runes) > excerptLength {
		return string(runes[:excerptLength]) + "..."
	}
	return plain
}
