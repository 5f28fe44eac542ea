package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentBlockJSON(t *testing.T) {
	raw, err := json.Marshal([]ContentBlock{Heading(3, "B"), Paragraph("Body", true)})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"kind":"heading","level":3,"text":"B"},{"kind":"paragraph","text":"Body","isFirst":true}]`, string(raw))

	var back []ContentBlock
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, BlockHeading, back[0].Kind)
	assert.Equal(t, BlockParagraph, back[1].Kind)
}

func TestBlockKindRejectsUnknown(t *testing.T) {
	var k BlockKind
	assert.Error(t, k.UnmarshalText([]byte("table")))
}

func TestArticleCloneIsIndependent(t *testing.T) {
	a := Article{
		Footnotes: []Footnote{{ID: 1, Text: "Pepys"}},
		Location:  &Location{Lat: 51.5, Lng: -0.08, Name: "Pudding Lane"},
	}
	c := a.Clone()
	c.Footnotes[0].Text = "changed"
	c.Location.Name = "elsewhere"

	assert.Equal(t, "Pepys", a.Footnotes[0].Text)
	assert.Equal(t, "Pudding Lane", a.Location.Name)
}

func TestParseViewMode(t *testing.T) {
	m, err := ParseViewMode("edit")
	require.NoError(t, err)
	assert.Equal(t, ModeEdit, m)

	_, err = ParseViewMode("READER")
	assert.Error(t, err)
}

func TestMapResultNullLink(t *testing.T) {
	raw, err := json.Marshal(MapResult{Text: "London"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"London","mapUrl":null}`, string(raw))
}
