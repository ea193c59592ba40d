package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nayakiniki/Flickd/internal/config"
	"github.com/nayakiniki/Flickd/internal/formatter"
	"github.com/nayakiniki/Flickd/pkg/types"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 90, 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "flickd version 1.0.0\n", out)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "flickd.json")

	_, err := execute(t, "config", "init", path)
	require.NoError(t, err)

	cfg, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = execute(t, "config", "init", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "config", "init", "--force", path)
	assert.NoError(t, err)
}

func TestTagJSON(t *testing.T) {
	t.Setenv("PORT", "")
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "wide.png"), 300, 150)
	writePNG(t, filepath.Join(dir, "tall.png"), 100, 200)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0644))

	out, err := execute(t, "tag", dir, "--delay", "0", "--seed", "7", "-o", "json")
	require.NoError(t, err)

	var reports []formatter.Report
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)

	byFile := map[string]formatter.Report{}
	for _, r := range reports {
		byFile[filepath.Base(r.File)] = r
	}

	wide := byFile["wide.png"]
	require.NotNil(t, wide.Result)
	assert.Equal(t, 2.0, wide.Result.ImageInfo.AspectRatio)
	assert.Equal(t, "PNG", wide.Result.ImageInfo.Format)
	assert.Len(t, wide.Result.TagsByCategory(types.CategoryColor), 2)

	tall := byFile["tall.png"]
	require.NotNil(t, tall.Result)
	assert.Equal(t, 0.5, tall.Result.ImageInfo.AspectRatio)
	assert.ElementsMatch(t, []string{"portrait", "vertical", "outdoor", "daytime"},
		labels(tall.Result.TagsByCategory(types.CategoryScene)))

	for name, r := range byFile {
		assert.Len(t, r.Result.TagsByCategory(types.CategoryColor), 2, name)
		objects := r.Result.TagsByCategory(types.CategoryObject)
		assert.GreaterOrEqual(t, len(objects), 3, name)
		assert.LessOrEqual(t, len(objects), 5, name)
	}
	assert.ElementsMatch(t, []string{"landscape", "panoramic", "outdoor", "daytime"},
		labels(wide.Result.TagsByCategory(types.CategoryScene)))
}

func labels(tags []types.Tag) []string {
	out := make([]string, len(tags))
	for i, tag := range tags {
		out[i] = tag.Label
	}
	return out
}

func TestTagReportsBadFiles(t *testing.T) {
	t.Setenv("PORT", "")
	path := filepath.Join(t.TempDir(), "broken.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0644))

	out, err := execute(t, "tag", path, "--delay", "0", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "error:")
	assert.Contains(t, out, "Invalid image file")
}

func TestTagNoImages(t *testing.T) {
	t.Setenv("PORT", "")
	_, err := execute(t, "tag", t.TempDir(), "-o", "json")
	assert.ErrorContains(t, err, "no image files found")
}

func TestTagUnknownOutput(t *testing.T) {
	t.Setenv("PORT", "")
	path := filepath.Join(t.TempDir(), "a.png")
	writePNG(t, path, 10, 10)

	_, err := execute(t, "tag", path, "--delay", "0", "-o", "xml")
	assert.Error(t, err)
}
