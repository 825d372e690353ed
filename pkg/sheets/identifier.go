package sheets

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	spreadsheetPathPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)
	bareIdentifierPattern  = regexp.MustCompile(`^[a-zA-Z0-9_-]{20,}$`)
)

// ExtractIdentifier pulls a spreadsheet id out of a pasted link or bare id.
// It returns "" when the text is not recognisable yet.
func ExtractIdentifier(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}
	if u, err := url.Parse(trimmed); err == nil && u.Scheme != "" && u.Host != "" {
		if m := spreadsheetPathPattern.FindStringSubmatch(u.Path); m != nil {
			return m[1]
		}
	}
	if bareIdentifierPattern.MatchString(trimmed) {
		return trimmed
	}
	return ""
}
