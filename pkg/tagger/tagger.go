// Package tagger fabricates descriptive tags for an image from fixed color,
// object and scene tables. No pixel data is inspected: the output depends
// only on the image dimensions and the injected Sampler.
package tagger

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/nayakiniki/Flickd/pkg/types"
)

// DefaultDelay is the simulated processing latency
const DefaultDelay = time.Second

// Options configures a Generator
type Options struct {
	// Delay is slept before tags are produced. Zero disables it.
	Delay      time.Duration
	ColorCount int
	MinObjects int
	MaxObjects int
	Sampler    Sampler
	Logger     *slog.Logger
}

// DefaultOptions returns two colors, three to five objects and a one second delay
func DefaultOptions() Options {
	return Options{
		Delay:      DefaultDelay,
		ColorCount: 2,
		MinObjects: 3,
		MaxObjects: 5,
	}
}

// Generator produces AnalysisResults. It holds no mutable state and is
// safe for concurrent use.
type Generator struct {
	opts Options
}

// New creates a Generator with default options
func New() *Generator {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a Generator with custom options. A nil Sampler
// falls back to the process-wide random source.
func NewWithOptions(opts Options) *Generator {
	if opts.Sampler == nil {
		opts.Sampler = NewRandomSampler()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Delay < 0 {
		opts.Delay = 0
	}
	return &Generator{opts: opts}
}

// ModelLoaded always reports false: there is no model behind the generator.
func (g *Generator) ModelLoaded() bool {
	return false
}

// Generate produces tags for the given image, sorted by confidence descending.
func (g *Generator) Generate(ctx context.Context, info types.ImageInfo) (*types.AnalysisResult, error) {
	if info.Width <= 0 || info.Height <= 0 {
		return nil, types.ErrInvalidDimensions
	}

	start := time.Now()
	g.opts.Logger.Debug("starting image analysis", "width", info.Width, "height", info.Height)

	if err := g.wait(ctx); err != nil {
		return nil, types.Processing(err)
	}

	tags := make([]types.Tag, 0, 16)
	tags = append(tags, colorTags(g.opts.ColorCount)...)
	tags = append(tags, objectTags(g.opts.Sampler, g.opts.MinObjects, g.opts.MaxObjects)...)
	tags = append(tags, sceneTags(info.RawAspectRatio(), info.Width)...)

	slices.SortStableFunc(tags, func(a, b types.Tag) int {
		return cmp.Compare(b.Confidence, a.Confidence)
	})

	g.opts.Logger.Info("generated tags for image", "count", len(tags))

	return &types.AnalysisResult{
		Tags:           tags,
		ImageInfo:      info,
		ProcessingTime: types.Round(time.Since(start).Seconds(), 3),
	}, nil
}

// wait blocks for the configured delay or until ctx is done
func (g *Generator) wait(ctx context.Context) error {
	if g.opts.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(g.opts.Delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
