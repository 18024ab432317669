// Package asset is the image ingestion boundary: it turns uploaded or
// pasted binary image data into a self-contained payload an image
// element can embed, so a serialized project has no external file
// dependency. The core treats the payload as an opaque string.
package asset

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"strings"
)

// Payloads are always normalized to PNG on ingest.
const payloadPrefix = "data:image/png;base64,"

var ErrUnsupportedImage = errors.New("unsupported image data")

// Ingest decodes PNG or JPEG bytes and re-encodes them as an embedded
// payload. Returns the payload and the image's natural size.
func Ingest(r io.Reader) (source string, width, height int, err error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return "", 0, 0, fmt.Errorf("decode image: %w", ErrUnsupportedImage)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", 0, 0, fmt.Errorf("encode png: %w", err)
	}

	bounds := img.Bounds()
	source = payloadPrefix + base64.StdEncoding.EncodeToString(buf.Bytes())
	return source, bounds.Dx(), bounds.Dy(), nil
}

// Decode reverses Ingest, recovering the image from an embedded
// payload. Any data:image/...;base64 payload is accepted; documents
// written by older builds embedded the original format.
func Decode(source string) (image.Image, error) {
	if !strings.HasPrefix(source, "data:image/") {
		return nil, fmt.Errorf("not an embedded image payload: %w", ErrUnsupportedImage)
	}
	_, encoded, found := strings.Cut(source, ";base64,")
	if !found {
		return nil, fmt.Errorf("payload is not base64: %w", ErrUnsupportedImage)
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", ErrUnsupportedImage)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode payload image: %w", ErrUnsupportedImage)
	}
	return img, nil
}
