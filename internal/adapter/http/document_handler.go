package http

import (
	"io"
	"mime"
	"net/http"

	"agricredit-backend/internal/domain/document"
	docUC "agricredit-backend/internal/usecase/document"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"
)

type DocumentHandler struct{ uc *docUC.Usecase }

func NewDocumentHandler(uc *docUC.Usecase) *DocumentHandler { return &DocumentHandler{uc: uc} }

// Upload takes multipart form fields file, documentType and optional
// applicationId. The stored MIME type is sniffed from the content.
func (h *DocumentHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return &ValidationError{Details: []FieldError{{Field: "file", Message: "is required"}}}
	}
	docType := c.FormValue("documentType")
	if docType == "" {
		return &ValidationError{Details: []FieldError{{Field: "documentType", Message: "is required"}}}
	}
	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer f.Close()

	mimeType := fh.Header.Get(echo.HeaderContentType)
	if mt, err := mimetype.DetectReader(f); err == nil {
		mimeType = mt.String()
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}

	in := docUC.UploadInput{
		DocumentType: document.Type(docType),
		FileName:     fh.Filename,
		MimeType:     mimeType,
		Size:         fh.Size,
		Body:         f,
	}
	if appID := c.FormValue("applicationId"); appID != "" {
		in.ApplicationID = &appID
	}
	doc, err := h.uc.Upload(c.Request().Context(), principal(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, doc)
}

func (h *DocumentHandler) ListMine(c echo.Context) error {
	out, err := h.uc.ListMine(c.Request().Context(), principal(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DocumentHandler) Download(c echo.Context) error { return h.serve(c, "attachment") }

func (h *DocumentHandler) View(c echo.Context) error { return h.serve(c, "inline") }

func (h *DocumentHandler) serve(c echo.Context, disposition string) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	file, err := h.uc.Open(c.Request().Context(), principal(c), id)
	if err != nil {
		return err
	}
	defer file.Content.Close()
	c.Response().Header().Set(echo.HeaderContentDisposition,
		mime.FormatMediaType(disposition, map[string]string{"filename": file.Document.FileName}))
	c.Response().Header().Set("X-Content-Type-Options", "nosniff")
	return c.Stream(http.StatusOK, file.Document.MimeType, file.Content)
}
