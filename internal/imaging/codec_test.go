package imaging_test

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"atelier/internal/config"
	"atelier/internal/imaging"
)

const dataURIPrefix = "data:image/jpeg;base64,"

func encodePNG(t *testing.T, width, height int, fill color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, fill)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func decodeDataURI(t *testing.T, encoded string) image.Image {
	t.Helper()
	if !strings.HasPrefix(encoded, dataURIPrefix) {
		t.Fatalf("expected data URI, got %q", encoded[:min(len(encoded), 40)])
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(encoded, dataURIPrefix))
	if err != nil {
		t.Fatalf("decode base64: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode jpeg: %v", err)
	}
	return img
}

func TestEncodeScalesDownWideImages(t *testing.T) {
	raw := encodePNG(t, 400, 200, color.NRGBA{R: 200, G: 10, B: 10, A: 255})
	preset := imaging.Preset{Name: "test", MaxWidth: 100, Quality: 0.6}

	encoded := imaging.Encode(raw, preset)
	img := decodeDataURI(t, encoded)
	if got := img.Bounds().Dx(); got != 100 {
		t.Fatalf("expected width 100, got %d", got)
	}
	if got := img.Bounds().Dy(); got != 50 {
		t.Fatalf("expected height 50 (aspect preserved), got %d", got)
	}
}

func TestEncodeLeavesSmallImagesUnscaled(t *testing.T) {
	raw := encodePNG(t, 60, 90, color.NRGBA{B: 255, A: 255})
	preset := imaging.Preset{Name: "test", MaxWidth: 100, Quality: 0.6}

	img := decodeDataURI(t, imaging.Encode(raw, preset))
	if img.Bounds().Dx() != 60 || img.Bounds().Dy() != 90 {
		t.Fatalf("expected 60x90, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestEncodeFlattensTransparencyOntoWhite(t *testing.T) {
	raw := encodePNG(t, 10, 10, color.NRGBA{A: 0})
	preset := imaging.Preset{Name: "test", MaxWidth: 100, Quality: 0.9}

	img := decodeDataURI(t, imaging.Encode(raw, preset))
	r, g, b, _ := img.At(5, 5).RGBA()
	// JPEG is lossy; accept near-white.
	for name, channel := range map[string]uint32{"r": r >> 8, "g": g >> 8, "b": b >> 8} {
		if channel < 240 {
			t.Fatalf("expected near-white %s channel, got %d", name, channel)
		}
	}
}

func TestEncodeReturnsSentinelOnUndecodableInput(t *testing.T) {
	preset := imaging.Preset{Name: "test", MaxWidth: 100, Quality: 0.6}
	for name, raw := range map[string][]byte{
		"empty":     {},
		"not image": []byte("definitely not an image"),
		"truncated": encodePNG(t, 50, 50, color.NRGBA{A: 255})[:20],
	} {
		if got := imaging.Encode(raw, preset); got != "" {
			t.Fatalf("%s: expected empty sentinel, got %d bytes", name, len(got))
		}
	}
}

func TestLowerQualityProducesSmallerOutput(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 300, 300))
	for y := 0; y < 300; y++ {
		for x := 0; x < 300; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x ^ y), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	raw := buf.Bytes()

	high := imaging.Encode(raw, imaging.Preset{MaxWidth: 300, Quality: 0.9})
	low := imaging.Encode(raw, imaging.Preset{MaxWidth: 300, Quality: 0.2})
	if len(low) >= len(high) {
		t.Fatalf("expected lower quality to shrink output: low=%d high=%d", len(low), len(high))
	}
}

func TestPresetsComeFromConfig(t *testing.T) {
	cfg := config.Default()
	gallery := imaging.GalleryPreset(&cfg)
	if gallery.MaxWidth != cfg.Images.GalleryMaxWidth || gallery.Quality != cfg.Images.GalleryQuality {
		t.Fatalf("unexpected gallery preset: %+v", gallery)
	}

	thumb, ok := imaging.PresetByName(&cfg, "thumb")
	if !ok || thumb.Name != "thumbnail" {
		t.Fatalf("expected thumb alias to resolve, got %+v ok=%v", thumb, ok)
	}
	if _, ok := imaging.PresetByName(&cfg, "huge"); ok {
		t.Fatal("expected unknown preset to fail resolution")
	}
}
