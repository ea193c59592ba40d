package tagger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nayakiniki/Flickd/pkg/types"
)

// fixedSampler always returns the same indices
func fixedSampler(idx ...int) Sampler {
	return SamplerFunc(func(n, lo, hi int) []int {
		return idx
	})
}

func newTestGenerator(s Sampler) *Generator {
	opts := DefaultOptions()
	opts.Delay = 0
	opts.Sampler = s
	return NewWithOptions(opts)
}

func labels(tags []types.Tag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.Label
	}
	return out
}

func TestGenerateExactOutput(t *testing.T) {
	g := newTestGenerator(fixedSampler(0, 4, 7))

	result, err := g.Generate(context.Background(), types.NewImageInfo(2560, 1440, "JPEG"))
	require.NoError(t, err)

	expected := []types.Tag{
		{Label: "high_resolution", Confidence: 0.95, Category: types.CategoryScene},
		{Label: "person", Confidence: 0.92, Category: types.CategoryObject},
		{Label: "sky", Confidence: 0.89, Category: types.CategoryObject},
		{Label: "landscape", Confidence: 0.88, Category: types.CategoryScene},
		{Label: "blue_dominant", Confidence: 0.85, Category: types.CategoryColor},
		{Label: "daytime", Confidence: 0.83, Category: types.CategoryScene},
		{Label: "panoramic", Confidence: 0.76, Category: types.CategoryScene},
		{Label: "green_dominant", Confidence: 0.72, Category: types.CategoryColor},
		{Label: "outdoor", Confidence: 0.71, Category: types.CategoryScene},
		{Label: "food", Confidence: 0.61, Category: types.CategoryObject},
	}
	assert.Equal(t, expected, result.Tags)
	assert.Equal(t, 1.78, result.ImageInfo.AspectRatio)
}

func TestSceneHeuristic(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		height   int
		expected []string
		absent   []string
	}{
		{"landscape", 1600, 900, []string{"landscape", "panoramic", "outdoor", "daytime"}, []string{"portrait", "square", "high_resolution"}},
		{"portrait", 600, 900, []string{"portrait", "vertical", "outdoor", "daytime"}, []string{"landscape", "square"}},
		{"square", 800, 800, []string{"square", "outdoor", "daytime"}, []string{"landscape", "portrait"}},
		{"upper bound is square", 1500, 1000, []string{"square"}, []string{"landscape"}},
		{"lower bound is square", 800, 1000, []string{"square"}, []string{"portrait"}},
		{"just above 1.5 before rounding", 1503, 1000, []string{"landscape"}, []string{"square"}},
		{"wide and large", 3840, 2160, []string{"landscape", "high_resolution"}, nil},
		{"exactly 1920 wide", 1920, 1920, []string{"square"}, []string{"high_resolution"}},
		{"large square", 2000, 2000, []string{"square", "high_resolution"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := types.NewImageInfo(tt.width, tt.height, "PNG")
			scene := labels(sceneTags(info.RawAspectRatio(), info.Width))
			for _, l := range tt.expected {
				assert.Contains(t, scene, l)
			}
			for _, l := range tt.absent {
				assert.NotContains(t, scene, l)
			}
		})
	}
}

func TestSceneConfidences(t *testing.T) {
	want := map[string]float64{
		"landscape": 0.88, "panoramic": 0.76, "high_resolution": 0.95,
		"outdoor": 0.71, "daytime": 0.83,
	}
	for _, tag := range sceneTags(2.0, 4000) {
		assert.Equal(t, want[tag.Label], tag.Confidence, tag.Label)
		assert.Equal(t, types.CategoryScene, tag.Category)
	}

	want = map[string]float64{"portrait": 0.91, "vertical": 0.82, "outdoor": 0.71, "daytime": 0.83}
	for _, tag := range sceneTags(0.5, 500) {
		assert.Equal(t, want[tag.Label], tag.Confidence, tag.Label)
	}

	square := sceneTags(1.0, 100)
	assert.Equal(t, types.Tag{Label: "square", Confidence: 0.79, Category: types.CategoryScene}, square[0])
}

func TestColorHeuristic(t *testing.T) {
	tags := colorTags(2)
	assert.Equal(t, []types.Tag{
		{Label: "blue_dominant", Confidence: 0.85, Category: types.CategoryColor},
		{Label: "green_dominant", Confidence: 0.72, Category: types.CategoryColor},
	}, tags)

	assert.Len(t, colorTags(10), len(colorTable))
	assert.Empty(t, colorTags(-1))
}

func TestObjectHeuristicRandom(t *testing.T) {
	s := NewSeededSampler(42)
	known := ObjectLabels()

	for i := 0; i < 500; i++ {
		tags := objectTags(s, 3, 5)
		require.GreaterOrEqual(t, len(tags), 3)
		require.LessOrEqual(t, len(tags), 5)

		seen := map[string]bool{}
		for _, tag := range tags {
			assert.Contains(t, known, tag.Label)
			assert.False(t, seen[tag.Label], "duplicate %s", tag.Label)
			assert.Equal(t, types.CategoryObject, tag.Category)
			seen[tag.Label] = true
		}
	}
}

func TestObjectHeuristicCoversAllSizes(t *testing.T) {
	s := NewSeededSampler(7)
	sizes := map[int]bool{}
	for i := 0; i < 300; i++ {
		sizes[len(objectTags(s, 3, 5))] = true
	}
	assert.Equal(t, map[int]bool{3: true, 4: true, 5: true}, sizes)
}

func TestObjectHeuristicDropsBadIndices(t *testing.T) {
	tags := objectTags(fixedSampler(1, 1, -1, 8, 2), 3, 5)
	assert.Equal(t, []string{"car", "building"}, labels(tags))
}

func TestDefaultSampler(t *testing.T) {
	s := NewRandomSampler()
	for i := 0; i < 100; i++ {
		idx := s.Sample(8, 3, 5)
		assert.GreaterOrEqual(t, len(idx), 3)
		assert.LessOrEqual(t, len(idx), 5)
	}
	assert.Len(t, s.Sample(2, 3, 5), 2)
	assert.Nil(t, s.Sample(0, 3, 5))
}

func TestSeededSamplerIsReproducible(t *testing.T) {
	a, b := NewSeededSampler(99), NewSeededSampler(99)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Sample(8, 3, 5), b.Sample(8, 3, 5))
	}
}

func TestGenerateSortedAndBounded(t *testing.T) {
	g := newTestGenerator(NewSeededSampler(1))
	sizes := [][2]int{{2560, 1440}, {640, 480}, {480, 640}, {1, 1}, {10000, 10}}

	for _, sz := range sizes {
		result, err := g.Generate(context.Background(), types.NewImageInfo(sz[0], sz[1], "PNG"))
		require.NoError(t, err)
		require.NotEmpty(t, result.Tags)

		for i := 1; i < len(result.Tags); i++ {
			assert.GreaterOrEqual(t, result.Tags[i-1].Confidence, result.Tags[i].Confidence)
		}
		for _, tag := range result.Tags {
			assert.GreaterOrEqual(t, tag.Confidence, 0.0)
			assert.LessOrEqual(t, tag.Confidence, 1.0)
		}
		assert.Len(t, result.TagsByCategory(types.CategoryColor), 2)
	}
}

func TestGenerateInvalidDimensions(t *testing.T) {
	g := newTestGenerator(nil)

	for _, info := range []types.ImageInfo{
		{Width: 0, Height: 100},
		{Width: 100, Height: 0},
		{Width: -5, Height: 10},
	} {
		_, err := g.Generate(context.Background(), info)
		assert.ErrorIs(t, err, types.ErrInvalidDimensions)
		assert.True(t, types.IsInvalidInput(err))
	}
}

func TestGenerateDelay(t *testing.T) {
	opts := DefaultOptions()
	opts.Delay = 50 * time.Millisecond
	g := NewWithOptions(opts)

	start := time.Now()
	result, err := g.Generate(context.Background(), types.NewImageInfo(100, 100, "PNG"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	assert.GreaterOrEqual(t, result.ProcessingTime, 0.05)
}

func TestGenerateCancelled(t *testing.T) {
	opts := DefaultOptions()
	opts.Delay = time.Hour
	g := NewWithOptions(opts)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Generate(ctx, types.NewImageInfo(100, 100, "PNG"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, types.ErrProcessing)
	assert.False(t, types.IsInvalidInput(err))
}

func TestModelLoaded(t *testing.T) {
	assert.False(t, New().ModelLoaded())
}
