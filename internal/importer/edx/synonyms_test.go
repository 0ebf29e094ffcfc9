package edx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eamon-archive/eamon-import/internal/adventure"
	"github.com/eamon-archive/eamon-import/internal/importer"
)

func TestApplySynonyms(t *testing.T) {
	batch := &importer.Batch{Artifacts: []*adventure.Artifact{
		{AdventureID: 1, ArtifactID: 3, Name: "GOLDEN KEY"},
		{AdventureID: 1, ArtifactID: 7, Name: "TORCH"},
	}}
	source := `
100 n = n + 1: sa(n) = 3: s$(n) = "key"
110 n = n + 1: sa(n) = 3: s$(n) = "golden key"
120 n = n + 1: sa(n) = 7: s$(n) = "light"
130 n = n + 1: sa(n) = 7: s$(n) = "torch"
140 n = n + 1: sa(n) = 7: s$(n) = "brand"
`
	applySynonyms(1, source, batch)

	assert.Equal(t, "key,golden key", batch.Artifacts[0].Synonyms)
	assert.Equal(t, "light,torch,brand", batch.Artifacts[1].Synonyms)
	assert.Empty(t, batch.Warnings)
}

func TestApplySynonymsIgnoresLonePair(t *testing.T) {
	batch := &importer.Batch{Artifacts: []*adventure.Artifact{
		{AdventureID: 1, ArtifactID: 3},
	}}
	applySynonyms(1, `sa(n) = 3: s$(n) = "key"`, batch)
	assert.Empty(t, batch.Artifacts[0].Synonyms)
}

func TestApplySynonymsMissingArtifactWarns(t *testing.T) {
	batch := &importer.Batch{}
	source := `
sa(n) = 9: s$(n) = "rope"
sa(n) = 9: s$(n) = "line"
`
	applySynonyms(1, source, batch)
	require.Len(t, batch.Warnings, 1)
	assert.Contains(t, batch.Warnings[0], "missing artifact #9")
}

func TestApplySynonymsSuffixedVariables(t *testing.T) {
	batch := &importer.Batch{Artifacts: []*adventure.Artifact{
		{AdventureID: 1, ArtifactID: 5},
	}}
	source := `
sa(ns) = 5: ss$(ns) = "gem"
sa(ns) = 5: ss$(ns) = "jewel"
`
	applySynonyms(1, source, batch)
	assert.Equal(t, "gem,jewel", batch.Artifacts[0].Synonyms)
}
