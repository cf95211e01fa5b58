package documents

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"docportal-backend/internal/shared/server/respond"
)

// Body caps: multipart carries raw bytes plus form overhead, the JSON
// variant carries base64 which expands the payload by a third.
const (
	maxMultipartBody = MaxFileSize + (1 << 20)
	maxJSONBody      = MaxFileSize/3*4 + (1 << 20)
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group. gin allows
// one wildcard name per segment within a method tree, so the GET routes
// share :key; it holds an applicant type for the list route and a
// document id for the file route.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/documents/:key", h.list)
	rg.GET("/documents/:key/file", h.file)
	rg.POST("/documents", h.upload)
	rg.DELETE("/documents/:id", h.remove)
	rg.PATCH("/documents/:id/status", h.updateStatus)
}

func (h *Handler) list(c *gin.Context) {
	applicantType := c.Param("key")
	c.Set("applicantType", applicantType)

	docs, err := h.Svc.List(c.Request.Context(), applicantType)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to fetch documents", nil)
		return
	}

	resp := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, toResponse(doc))
	}
	respond.OK(c, resp)
}

func (h *Handler) upload(c *gin.Context) {
	var in CreateInput
	var err error
	if strings.HasPrefix(c.ContentType(), "application/json") {
		in, err = h.bindJSONUpload(c)
	} else {
		in, err = h.bindMultipartUpload(c)
	}
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	doc, err := h.Svc.Upload(c.Request.Context(), in)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid document data", verr.Fields)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to upload document", nil)
		return
	}

	c.Set("documentId", doc.ID)
	respond.JSON(c, http.StatusCreated, toResponse(doc))
}

type jsonUploadRequest struct {
	ApplicantType string `json:"applicantType"`
	DocumentType  string `json:"documentType"`
	FileName      string `json:"fileName"`
	MimeType      string `json:"mimeType"`
	FileData      string `json:"fileData"`
	ReferenceID   string `json:"referenceId"`
}

func (h *Handler) bindJSONUpload(c *gin.Context) (CreateInput, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxJSONBody)

	var req jsonUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return CreateInput{}, errors.New("invalid request body")
	}
	if req.FileData == "" {
		return CreateInput{}, errors.New("fileData is required")
	}
	raw, err := base64.StdEncoding.DecodeString(req.FileData)
	if err != nil {
		return CreateInput{}, errors.New("fileData is not valid base64")
	}

	return CreateInput{
		ApplicantType: req.ApplicantType,
		DocumentType:  req.DocumentType,
		FileName:      req.FileName,
		FileSize:      int64(len(raw)),
		MimeType:      req.MimeType,
		FileData:      req.FileData,
		ReferenceID:   req.ReferenceID,
	}, nil
}

func (h *Handler) bindMultipartUpload(c *gin.Context) (CreateInput, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxMultipartBody)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return CreateInput{}, errors.New("no file uploaded")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return CreateInput{}, errors.New("unable to read file")
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return CreateInput{}, errors.New("unable to read file")
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	return CreateInput{
		ApplicantType: c.PostForm("applicantType"),
		DocumentType:  c.PostForm("documentType"),
		FileName:      fileHeader.Filename,
		FileSize:      int64(len(raw)),
		MimeType:      mimeType,
		FileData:      base64.StdEncoding.EncodeToString(raw),
		ReferenceID:   c.PostForm("referenceId"),
	}, nil
}

func (h *Handler) file(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("key"), 10, 64)
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "Document not found", nil)
		return
	}

	doc, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Document not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to retrieve document file", nil)
		return
	}
	if doc.FileData == "" {
		respond.Error(c, http.StatusNotFound, "not_found", "Document not found", nil)
		return
	}

	raw, err := base64.StdEncoding.DecodeString(doc.FileData)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to retrieve document file", nil)
		return
	}

	c.Set("documentId", doc.ID)
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc.FileName))
	c.Data(http.StatusOK, doc.MimeType, raw)
}

func (h *Handler) remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "Document not found", nil)
		return
	}

	ok, err := h.Svc.Delete(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to delete document", nil)
		return
	}
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "Document not found", nil)
		return
	}

	c.Set("documentId", id)
	respond.OK(c, gin.H{"message": "Document deleted successfully"})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "Document not found", nil)
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Status) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Status is required", nil)
		return
	}

	doc, err := h.Svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			respond.Error(c, http.StatusBadRequest, "validation_error", verr.Error(), verr.Fields)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to update document status", nil)
		}
		return
	}

	c.Set("documentId", doc.ID)
	respond.OK(c, toResponse(doc))
}
