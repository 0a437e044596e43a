// Package extract provides contract text acquisition and canonicalization.
// PDF and plain-text readers implement the Reader collaborator contract;
// Normalize produces the canonical form the segmenter operates on.
package extract

import (
	"context"
	"strings"
)

// Reader converts raw uploaded bytes into contract text.
type Reader interface {
	// Text extracts the raw text content from data. The returned text is
	// not normalized; callers pass it through Normalize before segmentation.
	Text(ctx context.Context, data []byte) (string, error)
}

// ForContentType returns the Reader responsible for the given MIME type.
// Returns ErrUnsupportedType for types no reader handles.
func ForContentType(contentType string) (Reader, error) {
	switch {
	case strings.HasPrefix(contentType, "application/pdf"):
		return NewPDF(), nil
	case strings.HasPrefix(contentType, "text/plain"), contentType == "":
		return PlainText{}, nil
	default:
		return nil, ErrUnsupportedType
	}
}

// PlainText reads UTF-8 text uploads verbatim.
type PlainText struct{}

// Text returns the data interpreted as UTF-8 text.
func (PlainText) Text(_ context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}
	return string(data), nil
}

// Normalize canonicalizes contract text for segmentation: line endings
// become \n, whitespace runs within a line collapse to a single space, and
// leading/trailing space on each line is trimmed. Newlines are preserved so
// blank-line clause boundaries survive normalization.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Join(lines, "\n")
}
