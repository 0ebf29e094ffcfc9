package importer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
)

var spaceRun = regexp.MustCompile(`\s{2,}`)

// CollapseSpaces replaces every run of two or more whitespace characters
// with a single space. Legacy listings hard-wrap text at 40 columns, leaving
// runs of padding spaces inside sentences.
func CollapseSpaces(s string) string {
	return spaceRun.ReplaceAllString(s, " ")
}

// SentenceCase capitalizes the first letter after each ". " boundary and
// lowercases the rest. This is a deliberately lossy normalization of shouted
// ALL-CAPS source text, not a general casing algorithm.
//
// Postcondition: idempotent; SentenceCase(SentenceCase(s)) == SentenceCase(s).
func SentenceCase(s string) string {
	parts := strings.Split(s, ". ")
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, ". ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// FixText applies the full listing-text normalization: collapse whitespace
// runs, trim, then sentence case.
func FixText(s string) string {
	return SentenceCase(strings.TrimSpace(CollapseSpaces(s)))
}

// chainMarker is the trailing forward-link pattern on effect and description
// text: one or two asterisks followed by exactly three digits.
var chainMarker = regexp.MustCompile(`(\*{1,2})([0-9]{3})\s*$`)

// ExtractChain strips a trailing chained-effect marker from text. A single
// asterisk links with a paragraph break (next); a double asterisk continues
// inline (inline). At most one of the two results is non-zero; both are zero
// when the text carries no marker.
func ExtractChain(text string) (clean string, next, inline int) {
	m := chainMarker.FindStringSubmatch(text)
	if m == nil {
		return text, 0, 0
	}
	id := 0
	for _, d := range m[2] {
		id = id*10 + int(d-'0')
	}
	clean = strings.TrimRight(chainMarker.ReplaceAllString(text, ""), " ")
	if m[1] == "**" {
		return clean, 0, id
	}
	return clean, id, 0
}

// DecodeCP437 interprets raw legacy bytes using the DOS code page the EDX
// suite was written in. Input is assumed well formed; the decoder never
// errors on single-byte code pages.
func DecodeCP437(b []byte) string {
	out, err := charmap.CodePage437.NewDecoder().Bytes(b)
	if err != nil {
		// Single-byte decode cannot fail; keep the raw bytes if it ever does.
		return string(b)
	}
	return string(out)
}
