// Package resume extracts plain text from uploaded resume documents.
package resume

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
)

var ErrUnsupportedFormat = errors.New("unsupported resume format (use PDF or DOCX)")

// SupportedExt reports whether the upload's extension is one we can parse.
func SupportedExt(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx", ".doc", ".rtf", ".odt", ".txt":
		return true
	}
	return false
}

// ExtractText converts the document body to plain text.
func ExtractText(r io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	if ext == ".txt" {
		b, err := io.ReadAll(r)
		if err != nil {
			return "", err
		}
		return normalize(string(b)), nil
	}

	if !SupportedExt(filename) {
		return "", ErrUnsupportedFormat
	}

	res, err := docconv.Convert(r, docconv.MimeTypeByExtension(filename), true)
	if err != nil {
		return "", err
	}
	return normalize(res.Body), nil
}

func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimSpace(s)
}
