package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
)

// Document is decoded upload content.
type Document struct {
	Text        string `json:"text"`
	ContentType string `json:"content_type"` // effective type after sniffing
	Size        int64  `json:"size"`         // raw byte count
	Hash        string `json:"hash"`         // SHA256 hex digest of Text
}

func newDocument(text, contentType string, size int) *Document {
	return &Document{
		Text:        text,
		ContentType: contentType,
		Size:        int64(size),
		Hash:        computeHash(text),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
