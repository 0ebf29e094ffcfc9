// Package hints decodes the shared EDX hint pool: a HINTDIR.DAT directory of
// questions with (start, length) pointers into the flat HINTS.DSC answer
// blocks, plus the per-adventure index ranges that claim slices of the pool.
package hints

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/eamon-archive/eamon-import/internal/adventure"
	"github.com/eamon-archive/eamon-import/internal/importer"
)

// Range bounds one adventure's slice of the hint pool, inclusive 1-based
// indices.
type Range struct {
	First int
	Last  int
}

// Result is a decoded hint pool plus the recovered per-adventure ranges.
// Adventures for which no range could be recovered are absent from Ranges
// and their hints stay globally shared.
type Result struct {
	Hints    []*adventure.Hint
	Ranges   map[int64]Range
	Warnings []string
}

// answerBlockLen is the fixed size of one HINTS.DSC answer block.
const answerBlockLen = 255

// hintPointerRe matches the (start, length) pointer line of one directory
// entry.
var hintPointerRe = regexp.MustCompile(`\s*([0-9]+)\s+([0-9]+)\s*`)

// hintRangeRe matches the conditional in an adventure's BASIC main program
// that reveals its first and last hint index.
var hintRangeRe = regexp.MustCompile(`IF nh > 1 THEN a = ([0-9]+): m = ([0-9]+)`)

// Per-adventure ranges that predate the BASIC conditional and have to be
// known by name.
var knownRanges = map[string]Range{
	"The Beginner's Cave":             {First: 2, Last: 3},
	"Enhanced Beginner's Cave":        {First: 9, Last: 11},
	"Eamon Deluxe 5.0 Demo Adventure": {First: 19, Last: 19},
}

// Load decodes the hint files in dir and recovers the hint range of each
// supplied adventure. HINTDIR.DAT and HINTS.DSC are required; an
// unrecoverable range is a warning, not an error.
//
// Precondition: edx identifies the legacy file set the hints belong to.
// Postcondition: returns a non-nil Result or a non-nil error.
func Load(dir string, edx int, adventures []*adventure.Adventure) (*Result, error) {
	answers, err := loadAnswers(filepath.Join(dir, "HINTS.DSC"))
	if err != nil {
		return nil, err
	}

	result := &Result{Ranges: make(map[int64]Range)}
	if err := loadDirectory(filepath.Join(dir, "HINTDIR.DAT"), edx, answers, result); err != nil {
		return nil, err
	}

	for _, adv := range adventures {
		if adv.ProgramFile == "" {
			continue
		}
		if r, ok := knownRanges[adv.Name]; ok {
			result.Ranges[adv.ID] = r
			continue
		}
		r, ok, err := scanRange(filepath.Join(dir, adv.ProgramFile))
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"adventure %d: program file %s not readable; hints stay shared", adv.ID, adv.ProgramFile))
			continue
		}
		if !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"adventure %d: no hint range found in %s; hints stay shared", adv.ID, adv.ProgramFile))
			continue
		}
		result.Ranges[adv.ID] = r
	}
	return result, nil
}

// loadAnswers reads the flat 255-byte answer blocks.
func loadAnswers(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var answers []string
	buf := bufio.NewReader(f)
	for {
		block := make([]byte, answerBlockLen)
		n, err := io.ReadFull(buf, block)
		if n > 0 {
			// The final block may run short; keep what is there.
			answers = append(answers, strings.TrimRight(importer.DecodeCP437(block[:n]), " \x00"))
		}
		if err != nil {
			return answers, nil
		}
	}
}

// loadDirectory parses HINTDIR.DAT: a total-count line, then per hint a
// question line and a (start, length) pointer into the answer blocks.
func loadDirectory(path string, edx int, answers []string, result *Result) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return fmt.Errorf("%s: missing hint count line", path)
	}
	total, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return fmt.Errorf("%s: malformed hint count %q", path, sc.Text())
	}

	for h := 1; h <= total; h++ {
		if !sc.Scan() {
			return fmt.Errorf("%s: directory truncated at hint %d question", path, h)
		}
		question := strings.TrimSpace(importer.DecodeCP437([]byte(sc.Text())))

		if !sc.Scan() {
			return fmt.Errorf("%s: directory truncated at hint %d pointer", path, h)
		}
		m := hintPointerRe.FindStringSubmatch(sc.Text())
		if m == nil {
			return fmt.Errorf("%s: malformed pointer line %q for hint %d", path, sc.Text(), h)
		}
		start := atoi(m[1]) - 1
		length := atoi(m[2])

		hint := &adventure.Hint{EDX: edx, Index: h, Question: question}
		for i := 0; i < length; i++ {
			if start+i < 0 || start+i >= len(answers) {
				result.Warnings = append(result.Warnings, fmt.Sprintf(
					"hint %d: answer pointer (%d, %d) exceeds %d answer blocks; truncating",
					h, start+1, length, len(answers)))
				break
			}
			hint.Answers = append(hint.Answers, adventure.HintAnswer{
				Index:  i + 1,
				Answer: answers[start+i],
			})
		}
		result.Hints = append(result.Hints, hint)
	}
	return sc.Err()
}

// scanRange searches an adventure's BASIC source for the hint range
// conditional. ok is false when the pattern does not appear.
func scanRange(path string) (Range, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Range{}, false, err
	}
	m := hintRangeRe.FindStringSubmatch(importer.DecodeCP437(data))
	if m == nil {
		return Range{}, false, nil
	}
	return Range{First: atoi(m[1]), Last: atoi(m[2])}, true, nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
