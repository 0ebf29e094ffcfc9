// Package classic decodes the human-readable adventure listings produced by
// the classic Eamon Dungeon Designer, in its two incompatible revisions. A
// listing is four report files (rooms.txt, artifacts.txt, effects.txt,
// monsters.txt) scraped with format-specific regular expressions.
package classic

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/eamon-archive/eamon-import/internal/adventure"
	"github.com/eamon-archive/eamon-import/internal/importer"
)

// mustCompileReport joins the per-field fragments of a report record pattern
// and compiles the result. Keeping one fragment per line mirrors the report
// layout and keeps the capture-group numbering reviewable.
func mustCompileReport(fragments ...string) *regexp.Regexp {
	return regexp.MustCompile(strings.Join(fragments, ""))
}

// The six directions classic listings know about, with the capture-group
// index of each direction's destination in the room regexes.
var classicDirections = []struct {
	code  string
	group int
}{
	{"n", 4}, {"s", 6}, {"e", 8}, {"w", 10}, {"u", 12}, {"d", 14},
}

// readReport reads one report file and decodes its DOS code page text.
// A missing report file is fatal.
func readReport(dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	return importer.DecodeCP437(data), nil
}

var effectRe = regexp.MustCompile(`EFFECT #([0-9]+):\s+([A-Za-z0-9'\s /.,;()!?-]+)`)

// parseEffects scrapes the effects report, shared verbatim between the v6
// and v7 formats. A tilde sentinel is injected before each record header so
// the greedy text capture stops at the record boundary.
func parseEffects(data string, adventureID int64) []*adventure.Effect {
	data = strings.ReplaceAll(data, "EFFECT #", "~~~EFFECT #")
	var effects []*adventure.Effect
	for _, m := range effectRe.FindAllStringSubmatch(data, -1) {
		effects = append(effects, &adventure.Effect{
			AdventureID: adventureID,
			EffectID:    atoi(m[1]),
			Text:        importer.FixText(m[2]),
		})
	}
	return effects
}

// atoi converts a regex-captured digit group. Captures are guaranteed
// numeric by the patterns, so conversion failures cannot occur.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// optional converts an optional capture group, using fallback when the group
// did not participate in the match.
func optional(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	return atoi(s)
}
