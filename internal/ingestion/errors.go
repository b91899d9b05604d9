package ingestion

import (
	"errors"
	"fmt"
)

// ErrTooLarge is returned when content exceeds the decoder's size limit.
var ErrTooLarge = errors.New("content exceeds size limit")

// UnsupportedFormatError is returned for content types that cannot be
// decoded to text, such as PDF or Word documents.
type UnsupportedFormatError struct {
	FileName    string
	ContentType string
}

func (e *UnsupportedFormatError) Error() string {
	if e.FileName != "" {
		return fmt.Sprintf("unsupported format %q for file %s", e.ContentType, e.FileName)
	}
	return fmt.Sprintf("unsupported format %q", e.ContentType)
}
