package document

import (
	"io"

	"agricredit-backend/internal/domain/document"
)

type UploadInput struct {
	DocumentType  document.Type
	FileName      string
	MimeType      string
	Size          int64
	Body          io.Reader
	ApplicationID *string
}

// File is an opened document; the caller closes Content.
type File struct {
	Document *document.Document
	Content  io.ReadCloser
}
