package analyzer

import (
	"bytes"
	"fmt"
	"image"

	"github.com/bep/imagemeta"
	"github.com/corona10/goimagehash"
	"github.com/disintegration/imaging"
)

// exifFields are the EXIF tags copied into ImageInfo.Metadata.
var exifFields = map[string]bool{
	"Make":             true,
	"Model":            true,
	"DateTimeOriginal": true,
	"Orientation":      true,
	"Software":         true,
}

// metaFormats maps decoder names to the formats imagemeta can read.
var metaFormats = map[string]imagemeta.ImageFormat{
	"jpeg": imagemeta.JPEG,
	"png":  imagemeta.PNG,
	"tiff": imagemeta.TIFF,
	"webp": imagemeta.WebP,
}

// ExtractMetadata reads selected EXIF fields from raw image bytes.
// Returns nil when the format carries no metadata or parsing fails.
func ExtractMetadata(data []byte, format string) map[string]string {
	imgFormat, ok := metaFormats[format]
	if !ok || len(data) == 0 {
		return nil
	}

	meta := map[string]string{}
	_, err := imagemeta.Decode(imagemeta.Options{
		R:           bytes.NewReader(data),
		ImageFormat: imgFormat,
		Sources:     imagemeta.EXIF,
		ShouldHandleTag: func(ti imagemeta.TagInfo) bool {
			return exifFields[ti.Tag]
		},
		HandleTag: func(ti imagemeta.TagInfo) error {
			if s := tagValueString(ti.Value); s != "" {
				meta[ti.Tag] = s
			}
			return nil
		},
	})
	if err != nil || len(meta) == 0 {
		return nil
	}

	return meta
}

// Fingerprint returns the perceptual difference hash of img, or "" if
// hashing fails.
func Fingerprint(img image.Image) string {
	hash, err := goimagehash.DifferenceHash(imaging.Clone(img))
	if err != nil {
		return ""
	}
	return hash.ToString()
}

func tagValueString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		if len(val) > 0 {
			return val[0]
		}
		return ""
	default:
		return fmt.Sprint(val)
	}
}
