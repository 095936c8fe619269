package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/storm-outlook-service/internal/domain"
)

const inspectFixture = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"LABEL": "TSTM"},
     "geometry": {"type": "Polygon", "coordinates": [[[-90,30],[-80,30],[-80,35],[-90,35],[-90,30]]]}},
    {"type": "Feature", "properties": {"LABEL": "ENH"},
     "geometry": {"type": "MultiPolygon", "coordinates": [[[[-100,35],[-95,35],[-95,40],[-100,40],[-100,35]]]]}},
    {"type": "Feature", "properties": {"LABEL": "XYZ"},
     "geometry": {"type": "Polygon", "coordinates": []}}
  ]
}`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFixture(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "outlook.geojson")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestInspect_PrintsSummary(t *testing.T) {
	t.Setenv("ASSETS_DIR", t.TempDir())

	out, err := runCLI(t, "inspect", "--category", "categorical", writeFixture(t, inspectFixture))
	require.NoError(t, err)

	var summary domain.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, domain.CategoryCategorical, summary.Category)
	assert.True(t, summary.Available)
	assert.Equal(t, "ENH", summary.Highest.Label)
	assert.Equal(t, 3, summary.Features)
	assert.Equal(t, []string{"XYZ"}, summary.Unrecognized)
}

func TestInspect_RenderWritesPNG(t *testing.T) {
	t.Setenv("ASSETS_DIR", t.TempDir())
	target := filepath.Join(t.TempDir(), "inspected.png")

	out, err := runCLI(t, "inspect", "-c", "cat", "--render", target, writeFixture(t, inspectFixture))
	require.NoError(t, err)

	assert.Contains(t, out, target)
	assert.FileExists(t, target)
}

func TestInspect_RenderLeavesExistingArtifactsAlone(t *testing.T) {
	t.Setenv("ASSETS_DIR", t.TempDir())
	dir := t.TempDir()
	existing := filepath.Join(dir, "spc_day_test_cat_outlook.png")
	require.NoError(t, os.WriteFile(existing, []byte("earlier render"), 0o600))
	target := filepath.Join(dir, "mine.png")

	_, err := runCLI(t, "inspect", "-c", "cat", "--render", target, writeFixture(t, inspectFixture))
	require.NoError(t, err)

	assert.FileExists(t, target)
	got, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "earlier render", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "scratch directory is removed")
}

func TestInspect_EmptyOutlookIsNotRendered(t *testing.T) {
	t.Setenv("ASSETS_DIR", t.TempDir())
	target := filepath.Join(t.TempDir(), "empty.png")

	_, err := runCLI(t, "inspect", "-c", "tor", "--render", target, writeFixture(t, `{"features": []}`))
	require.ErrorIs(t, err, domain.ErrOutlookUnavailable)
	assert.NoFileExists(t, target)
}

func TestInspect_RejectsUnknownCategory(t *testing.T) {
	_, err := runCLI(t, "inspect", "-c", "fire", writeFixture(t, inspectFixture))
	require.ErrorIs(t, err, domain.ErrUnknownCategory)
}

func TestRender_RejectsInvalidDayBeforeNetwork(t *testing.T) {
	_, err := runCLI(t, "render", "prob", "1")
	require.ErrorIs(t, err, domain.ErrInvalidDay)
}
