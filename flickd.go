// Package flickd provides heuristic image tagging with confidence scores.
//
// An Engine decodes an uploaded image, derives its dimensions and format,
// and hands them to a tag generator that combines three fixed heuristics:
//
//   - Color: the two highest entries of a fixed color table
//   - Object: a random subset of 3 to 5 entries from a fixed object table
//   - Scene: tags derived from aspect ratio and width
//
// No pixel content is inspected and no model is loaded. The result is
// sorted by confidence, highest first.
//
// Basic usage:
//
//	engine := flickd.New()
//	result, err := engine.AnalyzeFile(ctx, "photo.jpg")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, tag := range result.Tags {
//		fmt.Printf("%s %.2f (%s)\n", tag.Label, tag.Confidence, tag.Category)
//	}
//
// The package consists of three main components:
//
// 1. Analyzer (pkg/analyzer): decoding, format detection, fingerprint and EXIF metadata
// 2. Tagger (pkg/tagger): the color, object and scene heuristics
// 3. Types (pkg/types): tags, image info, results and error kinds
package flickd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/nayakiniki/Flickd/pkg/analyzer"
	"github.com/nayakiniki/Flickd/pkg/tagger"
	"github.com/nayakiniki/Flickd/pkg/types"
)

// Version of the tagging engine
const Version = "1.0.0"

// Engine ties image decoding to tag generation
type Engine struct {
	analyzer *analyzer.ImageAnalyzer
	tagger   *tagger.Generator
	logger   *slog.Logger
}

// New creates a new Engine with default configuration
func New() *Engine {
	return &Engine{
		analyzer: analyzer.New(),
		tagger:   tagger.New(),
		logger:   slog.Default(),
	}
}

// NewWithConfig creates a new Engine with custom configuration
func NewWithConfig(analyzerConfig analyzer.Config, taggerOptions tagger.Options) *Engine {
	logger := taggerOptions.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		analyzer: analyzer.NewWithConfig(analyzerConfig),
		tagger:   tagger.NewWithOptions(taggerOptions),
		logger:   logger,
	}
}

// Analyze decodes data and generates tags for it
func (e *Engine) Analyze(ctx context.Context, data []byte) (*types.AnalysisResult, error) {
	img, format, err := e.analyzer.Decode(data)
	if err != nil {
		return nil, err
	}

	if err := e.analyzer.ValidateImage(img); err != nil {
		return nil, err
	}

	info := e.analyzer.GetImageInfo(img, format, data)
	e.logger.Debug("decoded image", "format", info.Format, "width", info.Width, "height", info.Height, "fingerprint", info.Fingerprint)

	result, err := e.tagger.Generate(ctx, info)
	if err != nil {
		e.logger.Error("error analyzing image", "error", err)
		return nil, types.Processing(err)
	}

	return result, nil
}

// AnalyzeFile reads an image from disk and analyzes it
func (e *Engine) AnalyzeFile(ctx context.Context, path string) (*types.AnalysisResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	return e.Analyze(ctx, data)
}

// ModelLoaded reports whether a model backs the engine. It never does.
func (e *Engine) ModelLoaded() bool {
	return e.tagger.ModelLoaded()
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
