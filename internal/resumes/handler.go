package resumes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-intake/internal/shared/server/middleware"
	"resume-intake/internal/shared/server/respond"
)

const (
	msgUploaded          = "Resume uploaded and processed successfully!"
	msgUpdated           = "Resume updated successfully!"
	msgNoFilePart        = "No file part"
	msgNoSelectedFile    = "No selected file"
	msgUnsupportedFormat = "Invalid file format. Only PDFs are allowed."
	msgTooLarge          = "File too large"
	msgInvalidPatch      = "Invalid update body"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
	// UploadLimit, when set, runs before the upload handler.
	UploadLimit gin.HandlerFunc
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches résumé routes to the router group.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	upload := []gin.HandlerFunc{h.upload}
	if h.UploadLimit != nil {
		upload = append([]gin.HandlerFunc{h.UploadLimit}, upload...)
	}
	rg.POST("/upload_resume", upload...)
	rg.GET("/resumes", h.list)
	rg.PUT("/resumes/:id", h.update)
}

func (h *Handler) upload(c *gin.Context) {
	if h.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.rejectForm(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, ErrorCodeStorage, "Failed to store resume", nil)
		return
	}
	defer file.Close()

	id, err := h.Svc.Upload(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		var extractErr *ExtractionError
		switch {
		case errors.Is(err, ErrNoSelectedFile):
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, msgNoSelectedFile, nil)
		case errors.Is(err, ErrUnsupportedFormat):
			respond.Error(c, http.StatusBadRequest, ErrorCodeFormat, msgUnsupportedFormat, nil)
		case errors.As(err, &extractErr):
			respond.Error(c, http.StatusInternalServerError, ErrorCodeExtraction,
				"Error extracting text from PDF: "+extractErr.Err.Error(), nil)
		case errors.Is(err, ErrArchive):
			respond.Error(c, http.StatusInternalServerError, ErrorCodeStorage, "Failed to archive resume", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, ErrorCodeStorage, "Failed to store resume", nil)
		}
		return
	}

	c.Set(middleware.ResumeIDKey, id)
	respond.JSON(c, http.StatusCreated, respond.Message{Msg: msgUploaded, ID: id})
}

// rejectForm maps a multipart lookup failure. A part named "file" sent with
// an empty filename is parsed as a plain value, which is how "No selected
// file" is told apart from a missing field.
func (h *Handler) rejectForm(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		respond.Error(c, http.StatusRequestEntityTooLarge, ErrorCodeTooLarge, msgTooLarge, nil)
	case errors.Is(err, http.ErrMissingFile) && c.Request.MultipartForm != nil && len(c.Request.MultipartForm.Value["file"]) > 0:
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, msgNoSelectedFile, nil)
	default:
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, msgNoFilePart, nil)
	}
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "Failed to list resumes", nil)
		return
	}
	respond.OK(c, toResponses(items))
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResumeIDKey, id)

	patch, err := decodePatch(c.Request.Body)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, msgInvalidPatch, nil)
		return
	}

	if _, err := h.Svc.Update(c.Request.Context(), id, patch); err != nil {
		respond.Error(c, http.StatusInternalServerError, ErrorCodeStorage, "Failed to update resume", nil)
		return
	}
	respond.OK(c, respond.Message{Msg: msgUpdated})
}
