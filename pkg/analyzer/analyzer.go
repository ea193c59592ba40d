package analyzer

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/nayakiniki/Flickd/pkg/types"
)

// ImageAnalyzer decodes uploaded images and derives their metadata
type ImageAnalyzer struct {
	config Config
}

// Config holds configuration for the image analyzer
type Config struct {
	SupportedFormats []string
	AutoOrient       bool
	Fingerprint      bool
	ExtractMetadata  bool
	// MaxPixels caps width*height before a full decode. Zero disables it.
	MaxPixels int64
}

// DefaultMaxPixels matches the decompression bomb limit of common imaging
// libraries.
const DefaultMaxPixels = 89_478_485

// DefaultConfig returns the analyzer defaults
func DefaultConfig() Config {
	return Config{
		SupportedFormats: []string{"jpeg", "png", "gif", "bmp", "tiff", "webp"},
		AutoOrient:       false,
		Fingerprint:      true,
		ExtractMetadata:  true,
		MaxPixels:        DefaultMaxPixels,
	}
}

// New creates a new ImageAnalyzer with default configuration
func New() *ImageAnalyzer {
	return &ImageAnalyzer{config: DefaultConfig()}
}

// NewWithConfig creates a new ImageAnalyzer with custom configuration
func NewWithConfig(config Config) *ImageAnalyzer {
	return &ImageAnalyzer{config: config}
}

// Decode decodes raw image bytes and returns the image with its format name
func (a *ImageAnalyzer) Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty upload", types.ErrInvalidImage)
	}

	imgCfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		// Registered decoders do not know this payload; try WebP explicitly.
		return a.decodeWebP(data, err)
	}

	if !a.isFormatSupported(format) {
		return nil, format, fmt.Errorf("%w: %s", types.ErrUnsupportedFormat, format)
	}
	if err := a.checkPixels(imgCfg.Width, imgCfg.Height); err != nil {
		return nil, format, err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(a.config.AutoOrient))
	if err != nil {
		if format == "webp" {
			if img, werr := webp.Decode(bytes.NewReader(data)); werr == nil {
				return img, format, nil
			}
		}
		return nil, format, fmt.Errorf("%w: %v", types.ErrInvalidImage, err)
	}

	return img, format, nil
}

// decodeWebP is the fallback for WebP variants the registry decoder rejects.
// cause is reported when data is not WebP either.
func (a *ImageAnalyzer) decodeWebP(data []byte, cause error) (image.Image, string, error) {
	width, height, _, err := webp.GetInfo(data)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", types.ErrInvalidImage, cause)
	}
	if !a.isFormatSupported("webp") {
		return nil, "webp", fmt.Errorf("%w: webp", types.ErrUnsupportedFormat)
	}
	if err := a.checkPixels(width, height); err != nil {
		return nil, "webp", err
	}

	img, err := webp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "webp", fmt.Errorf("%w: %v", types.ErrInvalidImage, err)
	}
	return img, "webp", nil
}

// checkPixels rejects images whose declared size exceeds MaxPixels.
func (a *ImageAnalyzer) checkPixels(width, height int) error {
	if a.config.MaxPixels > 0 && int64(width)*int64(height) > a.config.MaxPixels {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", types.ErrInvalidImage, width, height, a.config.MaxPixels)
	}
	return nil
}

// GetImageInfo returns the metadata the tagger works from. data is the raw
// upload and is only used for EXIF extraction; it may be nil.
func (a *ImageAnalyzer) GetImageInfo(img image.Image, format string, data []byte) types.ImageInfo {
	bounds := img.Bounds()
	info := types.NewImageInfo(bounds.Dx(), bounds.Dy(), formatName(format))

	if a.config.Fingerprint {
		info.Fingerprint = Fingerprint(img)
	}
	if a.config.ExtractMetadata && len(data) > 0 {
		info.Metadata = ExtractMetadata(data, format)
	}

	return info
}

// ValidateImage checks that the image has a usable area
func (a *ImageAnalyzer) ValidateImage(img image.Image) error {
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return fmt.Errorf("%w: %dx%d", types.ErrInvalidDimensions, bounds.Dx(), bounds.Dy())
	}
	return nil
}

// SupportedFormats returns the configured decoder names
func (a *ImageAnalyzer) SupportedFormats() []string {
	return a.config.SupportedFormats
}

func (a *ImageAnalyzer) isFormatSupported(format string) bool {
	for _, supported := range a.config.SupportedFormats {
		if strings.EqualFold(format, supported) {
			return true
		}
	}
	return false
}

// formatName maps a decoder name to the upper-case form reported to clients
func formatName(format string) string {
	if format == "" {
		return "Unknown"
	}
	return strings.ToUpper(format)
}
