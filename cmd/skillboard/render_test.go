package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOutput(t *testing.T, out string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	return doc
}

func TestRenderCommand_Page(t *testing.T) {
	out, err := executeCommand(t, "render", "--dataset", fixture("valid", "skill_groups.json"), "--title", "Pilot")
	require.NoError(t, err)

	doc := parseOutput(t, out)
	assert.Equal(t, "Pilot", strings.TrimSpace(doc.Find("title").Text()))

	// Default selection shows injected skills of every group.
	cards := doc.Find("#skillGroupDetails [data-group-id]")
	require.Equal(t, 1, cards.Length())
	assert.Equal(t, "255", cards.AttrOr("data-group-id", ""))
	assert.Equal(t, 2, cards.Find(".skill-row").Length())
	assert.Equal(t, 4, doc.Find("#skillGroupListGroup li").Length())
}

func TestRenderCommand_YAMLDataset(t *testing.T) {
	out, err := executeCommand(t, "render", "--dataset", fixture("valid", "skill_groups.yaml"), "--region", "skillGroupListGroup")
	require.NoError(t, err)

	doc := parseOutput(t, out)
	assert.Equal(t, 3, doc.Find("li").Length())
}

func TestRenderCommand_Region(t *testing.T) {
	out, err := executeCommand(t, "render", "--dataset", fixture("valid", "skill_groups.json"),
		"--region", "skillGroupDetails", "--level", "-1")
	require.NoError(t, err)

	doc := parseOutput(t, out)
	assert.Equal(t, 2, doc.Find("[data-group-id]").Length())
	assert.Equal(t, 2, doc.Find("strike.skill-name").Length())
	assert.Equal(t, 0, doc.Find("#skillGroupDetails").Length(), "region output should not include the page layout")
}

func TestRenderCommand_Text(t *testing.T) {
	out, err := executeCommand(t, "render", "--dataset", fixture("valid", "skill_groups.json"),
		"--text", "--group", "255", "--level", "5")
	require.NoError(t, err)

	assert.Contains(t, out, "Gunnery")
	assert.Contains(t, out, "Small Hybrid Turret")
	assert.Contains(t, out, "[#####]")
	assert.NotContains(t, out, "Motion Prediction")
}

func TestRenderCommand_MalformedLevel(t *testing.T) {
	out, err := executeCommand(t, "render", "--dataset", fixture("valid", "skill_groups.json"), "--text", "--level", "abc")
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(out))
}

func TestRenderCommand_UnknownRegion(t *testing.T) {
	_, err := executeCommand(t, "render", "--dataset", fixture("valid", "skill_groups.json"), "--region", "sidebar")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown region")
}

func TestRenderCommand_OutputFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "board.html")

	out, err := executeCommand(t, "render", "--dataset", fixture("valid", "skill_groups.json"), "--out", outPath)
	require.NoError(t, err)
	assert.Empty(t, out)

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), `id="skillGroupDetails"`)
}

func TestRenderCommand_Verbose(t *testing.T) {
	out, err := executeCommand(t, "render", "--dataset", fixture("valid", "skill_groups.json"), "--text", "--verbose")
	require.NoError(t, err)

	assert.Contains(t, out, "DATASET SUMMARY")
	assert.Contains(t, out, "SELECTION")
	assert.Contains(t, out, "Level:  injected")
}

func TestRenderCommand_NoSource(t *testing.T) {
	_, err := executeCommand(t, "render")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a dataset is required")
}

func TestRenderCommand_ConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "skillboard.yaml")
	abs, err := filepath.Abs(fixture("valid", "skill_groups.json"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(cfgPath, []byte("dataset: "+abs+"\ntitle: From Config\n"), 0644))

	out, err := executeCommand(t, "render", "--config", cfgPath)
	require.NoError(t, err)

	doc := parseOutput(t, out)
	assert.Equal(t, "From Config", strings.TrimSpace(doc.Find("title").Text()))
}
