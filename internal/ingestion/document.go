// Package ingestion decodes uploaded resume files to plain text.
package ingestion

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxSize is the upload size limit used when none is configured.
const DefaultMaxSize int64 = 5 << 20

const (
	typePlain    = "text/plain"
	typeMarkdown = "text/markdown"
	typeHTML     = "text/html"
)

var extensionTypes = map[string]string{
	".txt":      typePlain,
	".text":     typePlain,
	".md":       typeMarkdown,
	".markdown": typeMarkdown,
	".html":     typeHTML,
	".htm":      typeHTML,
}

// Decoder turns raw bytes into text.
type Decoder struct {
	maxSize int64
}

// NewDecoder creates a Decoder. A non-positive maxSize uses DefaultMaxSize.
func NewDecoder(maxSize int64) *Decoder {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Decoder{maxSize: maxSize}
}

// MaxSize returns the size limit in bytes.
func (d *Decoder) MaxSize() int64 {
	return d.maxSize
}

// ExtractFile reads and decodes a local file.
func ExtractFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return NewDecoder(int64(len(data))).Decode(filepath.Base(path), "", data)
}

// Decode resolves the effective content type and extracts text. Plain text
// and Markdown are cleaned; HTML is reduced to its body text. Everything
// else is an UnsupportedFormatError.
func (d *Decoder) Decode(fileName, contentType string, data []byte) (*Document, error) {
	if int64(len(data)) > d.maxSize {
		return nil, fmt.Errorf("%w: %d bytes > %d", ErrTooLarge, len(data), d.maxSize)
	}

	effective := DetectContentType(fileName, contentType, data)
	switch effective {
	case typePlain, typeMarkdown:
		return newDocument(CleanText(string(data)), effective, len(data)), nil
	case typeHTML:
		text, err := htmlToText(data)
		if err != nil {
			return nil, err
		}
		return newDocument(text, effective, len(data)), nil
	default:
		return nil, &UnsupportedFormatError{FileName: fileName, ContentType: effective}
	}
}

// DetectContentType picks the media type for data. A specific declared type
// wins, then the file extension, then content sniffing.
func DetectContentType(fileName, declared string, data []byte) string {
	if mediaType := baseMediaType(declared); mediaType != "" && !isGeneric(mediaType) {
		return normalizeType(mediaType)
	}
	if t, ok := extensionTypes[strings.ToLower(filepath.Ext(fileName))]; ok {
		return t
	}
	if len(data) == 0 {
		return typePlain
	}

	detected := mimetype.Detect(data)
	for m := detected; m != nil; m = m.Parent() {
		switch {
		case m.Is(typeHTML):
			return typeHTML
		case m.Is(typePlain):
			return typePlain
		}
	}
	return baseMediaType(detected.String())
}

func baseMediaType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType
}

func isGeneric(mediaType string) bool {
	return mediaType == "application/octet-stream" || mediaType == "binary/octet-stream"
}

func normalizeType(mediaType string) string {
	switch mediaType {
	case "text/x-markdown":
		return typeMarkdown
	case "application/xhtml+xml":
		return typeHTML
	default:
		return mediaType
	}
}
