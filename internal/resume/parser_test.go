package resume

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportedExt(t *testing.T) {
	for _, name := range []string{"cv.pdf", "cv.DOCX", "cv.doc", "cv.rtf", "cv.odt", "notes.txt"} {
		assert.True(t, SupportedExt(name), name)
	}
	for _, name := range []string{"cv.exe", "cv.png", "cv", "cv.pdf.zip"} {
		assert.False(t, SupportedExt(name), name)
	}
}

func TestExtractTextPlain(t *testing.T) {
	body := "Jane Doe\r\nGo developer.\r\n\r\n"
	text, err := ExtractText(strings.NewReader(body), "resume.txt")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo developer.", text)
}

func TestExtractTextUnsupported(t *testing.T) {
	_, err := ExtractText(strings.NewReader("binary"), "resume.exe")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
