package types

import "math"

// Category groups tags by the heuristic that produced them
type Category string

const (
	CategoryColor  Category = "color"
	CategoryObject Category = "object"
	CategoryScene  Category = "scene"
)

// Tag is a labeled, confidence-scored annotation attached to an image
type Tag struct {
	Label      string   `json:"tag" yaml:"tag"`
	Confidence float64  `json:"confidence" yaml:"confidence"`
	Category   Category `json:"category" yaml:"category"`
}

// ImageInfo contains metadata derived from a decoded image
type ImageInfo struct {
	Width       int               `json:"width" yaml:"width"`
	Height      int               `json:"height" yaml:"height"`
	AspectRatio float64           `json:"aspect_ratio" yaml:"aspect_ratio"`
	Format      string            `json:"format" yaml:"format"`
	Fingerprint string            `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// NewImageInfo builds an ImageInfo with the aspect ratio rounded to two decimals.
// Dimensions must be positive; callers validate before this point.
func NewImageInfo(width, height int, format string) ImageInfo {
	if format == "" {
		format = "Unknown"
	}
	info := ImageInfo{Width: width, Height: height, Format: format}
	if height > 0 {
		info.AspectRatio = Round(float64(width)/float64(height), 2)
	}
	return info
}

// RawAspectRatio returns width/height without rounding
func (i ImageInfo) RawAspectRatio() float64 {
	return float64(i.Width) / float64(i.Height)
}

// AnalysisResult is the output of tag generation for one image
type AnalysisResult struct {
	Tags           []Tag     `json:"tags" yaml:"tags"`
	ImageInfo      ImageInfo `json:"image_info" yaml:"image_info"`
	ProcessingTime float64   `json:"processing_time" yaml:"processing_time"`
}

// TagsByCategory returns the tags of a single category, preserving order
func (r *AnalysisResult) TagsByCategory(c Category) []Tag {
	var out []Tag
	for _, t := range r.Tags {
		if t.Category == c {
			out = append(out, t)
		}
	}
	return out
}

// AnalysisResponse is the payload returned by the analyze endpoint
type AnalysisResponse struct {
	AnalysisResult
	Filename  string `json:"filename"`
	Timestamp string `json:"timestamp"`
}

// HealthResponse is the payload returned by the health endpoint
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// StatsResponse describes the service capabilities
type StatsResponse struct {
	ModelStatus      string   `json:"model_status"`
	SupportedFormats []string `json:"supported_formats"`
	MaxFileSize      string   `json:"max_file_size"`
	Version          string   `json:"version"`
}

// Round rounds v to the given number of decimal places
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
