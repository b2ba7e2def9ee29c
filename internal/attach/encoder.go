// Package attach turns binary image files into inline data URIs suitable
// for the profile_image field and for direct terminal-adjacent display.
package attach

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// DefaultMaxBytes bounds encoder input. Inline images travel in every
// list/update payload.
const DefaultMaxBytes int64 = 5 * 1024 * 1024 // 5MB

var ErrEmptyInput = errors.New("attach: empty input")

// Encode produces a self-describing data URI from raw file bytes.
// The MIME type is sniffed from content, not taken from a filename.
func Encode(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyInput
	}
	mimeType := http.DetectContentType(data)
	// DetectContentType never returns "", but strip any charset parameter
	// so the URI stays a plain "type/subtype".
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// EncodeFile reads and encodes path, rejecting directories and files over
// maxBytes (DefaultMaxBytes when maxBytes <= 0).
func EncodeFile(path string, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	st, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if st.IsDir() {
		return "", fmt.Errorf("attach: %s is a directory", path)
	}
	if st.Size() > maxBytes {
		return "", fmt.Errorf("attach: %s is %d bytes (max %d)", path, st.Size(), maxBytes)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxBytes))
	if err != nil {
		return "", err
	}
	return Encode(data)
}
