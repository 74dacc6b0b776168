package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"math"

	_ "image/gif"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	"atelier/internal/config"
)

// Preset names a width bound and JPEG quality pair. The two site call sites
// have different display needs, so they use different presets rather than
// magic numbers.
type Preset struct {
	Name     string
	MaxWidth int
	Quality  float64
}

// GalleryPreset returns the preset for multi-image project galleries.
func GalleryPreset(cfg *config.Config) Preset {
	return Preset{Name: "gallery", MaxWidth: cfg.Images.GalleryMaxWidth, Quality: cfg.Images.GalleryQuality}
}

// ThumbnailPreset returns the preset for single archive thumbnails.
func ThumbnailPreset(cfg *config.Config) Preset {
	return Preset{Name: "thumbnail", MaxWidth: cfg.Images.ThumbnailMaxWidth, Quality: cfg.Images.ThumbnailQuality}
}

// PresetByName resolves a preset from its CLI name.
func PresetByName(cfg *config.Config, name string) (Preset, bool) {
	switch name {
	case "gallery":
		return GalleryPreset(cfg), true
	case "thumbnail", "thumb":
		return ThumbnailPreset(cfg), true
	}
	return Preset{}, false
}

// Encode decodes raw image bytes, scales them down to the preset's width
// bound, flattens transparency onto white, and re-encodes as a JPEG data URI.
//
// A failed decode returns the empty string: the caller drops the image and
// moves on, since one unreadable upload must not abort a batch. Width and
// quality are the only levers against the storage quota — smaller values
// trade visual fidelity for bytes.
func Encode(raw []byte, preset Preset) string {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return ""
	}

	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return ""
	}

	if preset.MaxWidth > 0 && width > preset.MaxWidth {
		height = int(math.Round(float64(height) * float64(preset.MaxWidth) / float64(width)))
		if height < 1 {
			height = 1
		}
		width = preset.MaxWidth
	}

	// JPEG has no alpha channel; flatten onto opaque white before encoding.
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)

	quality := int(math.Round(preset.Quality * 100))
	if quality < 1 {
		quality = 1
	}
	if quality > 100 {
		quality = 100
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return ""
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}
