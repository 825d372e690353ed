package sheets

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningDiacritics is the U+0300..U+036F block stripped after NFKD.
var combiningDiacritics = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}},
}

var unsafeFilenameChars = strings.NewReplacer(
	"/", "-", `\`, "-", ":", "-", "*", "-", "?", "-",
	`"`, "-", "<", "-", ">", "-", "|", "-",
)

// Slugify turns a display name into a filesystem-safe filename stem.
// Accents are folded, whitespace collapsed and unsafe characters replaced.
// Scripts that rely on other combining marks (Thai, Devanagari) are kept as is.
func Slugify(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(combiningDiacritics)))
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	collapsed := strings.Join(strings.Fields(folded), " ")
	return unsafeFilenameChars.Replace(collapsed)
}

// Extension maps an output format to the downloaded file's extension.
func Extension(format string) string {
	if format == "pdf" {
		return "pdf"
	}
	return "png"
}

// Filename builds "<prefix><slug>.<ext>" for a generated certificate.
func Filename(prefix, name, format string) string {
	return fmt.Sprintf("%s%s.%s", prefix, Slugify(name), Extension(format))
}

// DisplayName resolves the name for the row at index, falling back to
// "row-<n>" (1-based) when the row has no usable name.
func DisplayName(ds *Dataset, index int, column string) string {
	records := ds.Records()
	if index >= 0 && index < len(records) {
		if nm := ResolveName(records[index], ds, column); nm != "" {
			return nm
		}
	}
	return fmt.Sprintf("row-%d", index+1)
}
