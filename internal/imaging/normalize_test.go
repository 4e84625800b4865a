package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(3, 3, color.RGBA{R: 255, A: 255})
	return img
}

func TestToBase64PNG(t *testing.T) {
	encoders := map[string]func(*bytes.Buffer) error{
		"png":  func(b *bytes.Buffer) error { return png.Encode(b, testImage()) },
		"jpeg": func(b *bytes.Buffer) error { return jpeg.Encode(b, testImage(), nil) },
	}
	for format, encode := range encoders {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := encode(&buf); err != nil {
				t.Fatal(err)
			}
			b64, err := ToBase64PNG(&buf)
			if err != nil {
				t.Fatalf("ToBase64PNG failed: %v", err)
			}
			data, err := base64.StdEncoding.DecodeString(b64)
			if err != nil {
				t.Fatalf("output is not valid base64: %v", err)
			}
			if _, err := png.Decode(bytes.NewReader(data)); err != nil {
				t.Errorf("output is not a valid PNG: %v", err)
			}
		})
	}
}

func TestToBase64PNGRejectsGarbage(t *testing.T) {
	if _, err := ToBase64PNG(strings.NewReader("definitely not an image")); err == nil {
		t.Error("ToBase64PNG should fail on non-image data")
	}
}
