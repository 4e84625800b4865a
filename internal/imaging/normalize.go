package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// MimeType is the media type of every payload produced by ToBase64PNG.
const MimeType = "image/png"

// ToBase64PNG decodes an upload in any registered raster format and
// re-encodes it as base64 PNG, so the model always sees one canonical
// format no matter what the client sent.
func ToBase64PNG(r io.Reader) (string, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decoding image: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encoding png: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
