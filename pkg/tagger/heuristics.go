package tagger

import "github.com/nayakiniki/Flickd/pkg/types"

// entry is a label with its fixed confidence
type entry struct {
	label      string
	confidence float64
}

// colorTable is ordered by confidence; the color heuristic takes a prefix.
var colorTable = []entry{
	{"blue", 0.85},
	{"green", 0.72},
	{"red", 0.68},
	{"yellow", 0.45},
	{"purple", 0.32},
}

var objectTable = []entry{
	{"person", 0.92},
	{"car", 0.78},
	{"building", 0.85},
	{"tree", 0.73},
	{"sky", 0.89},
	{"road", 0.67},
	{"animal", 0.54},
	{"food", 0.61},
}

// Scene thresholds
const (
	landscapeRatio      = 1.5
	portraitRatio       = 0.8
	highResolutionWidth = 1920
)

var (
	sceneLandscape      = entry{"landscape", 0.88}
	scenePanoramic      = entry{"panoramic", 0.76}
	scenePortrait       = entry{"portrait", 0.91}
	sceneVertical       = entry{"vertical", 0.82}
	sceneSquare         = entry{"square", 0.79}
	sceneHighResolution = entry{"high_resolution", 0.95}
	sceneOutdoor        = entry{"outdoor", 0.71}
	sceneDaytime        = entry{"daytime", 0.83}
)

// ColorLabels returns the colors in table order, without the suffix
func ColorLabels() []string {
	labels := make([]string, len(colorTable))
	for i, e := range colorTable {
		labels[i] = e.label
	}
	return labels
}

// ObjectLabels returns the labels the object heuristic can emit
func ObjectLabels() []string {
	labels := make([]string, len(objectTable))
	for i, e := range objectTable {
		labels[i] = e.label
	}
	return labels
}

// colorTags ignores pixel content and returns the first n colors of the table.
func colorTags(n int) []types.Tag {
	n = min(max(n, 0), len(colorTable))
	tags := make([]types.Tag, 0, n)
	for _, c := range colorTable[:n] {
		tags = append(tags, types.Tag{
			Label:      c.label + "_dominant",
			Confidence: c.confidence,
			Category:   types.CategoryColor,
		})
	}
	return tags
}

// objectTags returns a random subset of the object table. Out of range or
// repeated indices from the sampler are skipped.
func objectTags(s Sampler, lo, hi int) []types.Tag {
	idx := s.Sample(len(objectTable), lo, hi)
	seen := make(map[int]bool, len(idx))
	tags := make([]types.Tag, 0, len(idx))
	for _, i := range idx {
		if i < 0 || i >= len(objectTable) || seen[i] {
			continue
		}
		seen[i] = true
		tags = append(tags, types.Tag{
			Label:      objectTable[i].label,
			Confidence: objectTable[i].confidence,
			Category:   types.CategoryObject,
		})
	}
	return tags
}

// sceneTags derives scene tags from the unrounded aspect ratio and the width.
func sceneTags(aspectRatio float64, width int) []types.Tag {
	var scenes []entry

	switch {
	case aspectRatio > landscapeRatio:
		scenes = append(scenes, sceneLandscape, scenePanoramic)
	case aspectRatio < portraitRatio:
		scenes = append(scenes, scenePortrait, sceneVertical)
	default:
		scenes = append(scenes, sceneSquare)
	}

	if width > highResolutionWidth {
		scenes = append(scenes, sceneHighResolution)
	}

	scenes = append(scenes, sceneOutdoor, sceneDaytime)

	tags := make([]types.Tag, len(scenes))
	for i, s := range scenes {
		tags[i] = types.Tag{Label: s.label, Confidence: s.confidence, Category: types.CategoryScene}
	}
	return tags
}
