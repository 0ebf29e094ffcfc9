package edx

import (
	"regexp"
	"strings"

	"github.com/eamon-archive/eamon-import/internal/importer"
)

// synonymPair matches one "set synonym variable" statement pair in the EDX
// BASIC main program: the artifact id assignment followed by the synonym
// string assignment.
var synonymPair = regexp.MustCompile(`sa\(n[sw]?\)\s*=\s*([0-9]+)\s*:\s*s[sw]?\$\(n[sw]?\)\s*=\s*"([^"]*)"`)

// applySynonyms scans BASIC source for runs of two or more synonym statement
// pairs and attaches the comma-joined synonym list to the matching artifact
// in the batch. A run referencing an artifact the batch does not hold is
// dropped with a warning.
func applySynonyms(adventureID int64, source string, batch *importer.Batch) {
	matches := synonymPair.FindAllStringSubmatch(source, -1)
	if len(matches) == 0 {
		return
	}

	// Group consecutive pairs by artifact id: one run per artifact.
	type run struct {
		artifactID int
		words      []string
	}
	var runs []run
	for _, m := range matches {
		id := atoi(m[1])
		word := strings.TrimSpace(m[2])
		if word == "" {
			continue
		}
		if len(runs) > 0 && runs[len(runs)-1].artifactID == id {
			runs[len(runs)-1].words = append(runs[len(runs)-1].words, word)
			continue
		}
		runs = append(runs, run{artifactID: id, words: []string{word}})
	}

	for _, r := range runs {
		if len(r.words) < 2 {
			// A lone pair is more likely an unrelated assignment than a
			// synonym table.
			continue
		}
		attached := false
		for _, a := range batch.Artifacts {
			if a.AdventureID == adventureID && a.ArtifactID == r.artifactID {
				a.Synonyms = strings.Join(r.words, ",")
				attached = true
				break
			}
		}
		if !attached {
			batch.Warnf("synonyms %q reference missing artifact #%d (adventure %d); dropping",
				strings.Join(r.words, ","), r.artifactID, adventureID)
		}
	}
}

func atoi(s string) int {
	n := 0
	for _, d := range s {
		n = n*10 + int(d-'0')
	}
	return n
}
