package util

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const dataURIPrefix = "data:"

// EncodeDataURI embeds raw bytes as a base64 data URI, detecting the MIME type from content.
func EncodeDataURI(data []byte) string {
	mime := mimetype.Detect(data)
	return dataURIPrefix + mime.String() + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI reverses EncodeDataURI and returns the payload with its declared MIME type.
// Only base64 payloads are supported.
func DecodeDataURI(uri string) ([]byte, string, error) {
	if !strings.HasPrefix(uri, dataURIPrefix) {
		return nil, "", fmt.Errorf("not a data URI")
	}
	header, payload, ok := strings.Cut(strings.TrimPrefix(uri, dataURIPrefix), ",")
	if !ok {
		return nil, "", fmt.Errorf("data URI has no payload")
	}
	mediaType, isBase64 := strings.CutSuffix(header, ";base64")
	if !isBase64 {
		return nil, "", fmt.Errorf("data URI is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode data URI payload: %w", err)
	}
	if mediaType == "" {
		mediaType = mimetype.Detect(data).String()
	}
	return data, mediaType, nil
}

// IsImageMIME reports whether a detected MIME type is a raster image type.
func IsImageMIME(mime string) bool {
	return mimetype.EqualsAny(mime, "image/png", "image/jpeg", "image/webp", "image/gif")
}
