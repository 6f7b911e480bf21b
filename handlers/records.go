package handlers

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sahayata/middleware"
	"sahayata/models"
	"sahayata/services/records"
	"sahayata/utils"
)

// RecordService is implemented by *records.RecordService.
type RecordService interface {
	List(ctx context.Context, userID string) ([]models.MedicalRecord, error)
	Create(ctx context.Context, userID string, in models.MedicalRecordInput, upload *records.Upload) (*models.MedicalRecord, error)
	Update(ctx context.Context, userID, id string, in models.MedicalRecordInput) (*models.MedicalRecord, error)
	Delete(ctx context.Context, userID, id string) error
	OpenAttachment(ctx context.Context, userID, key string) (*records.Attachment, error)
}

type RecordHandler struct {
	Records        RecordService
	MaxUploadBytes int64
}

func NewRecordHandler(svc RecordService, maxUploadMB int64) *RecordHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	return &RecordHandler{Records: svc, MaxUploadBytes: maxUploadMB << 20}
}

func (h *RecordHandler) ListRecordsHandler(c *gin.Context) {
	items, err := h.Records.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		recordError(c, "Failed to list medical records", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateRecordHandler accepts multipart form data with an optional
// "attachment" file, or a plain JSON body.
func (h *RecordHandler) CreateRecordHandler(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	var req models.MedicalRecordInput
	if err := c.ShouldBind(&req); err != nil {
		if tooLarge(err) {
			utils.JSONError(c, http.StatusRequestEntityTooLarge, "attachment too large", fmt.Sprintf("limit is %d bytes", h.MaxUploadBytes))
			return
		}
		utils.JSONError(c, http.StatusBadRequest, "date, type, description required", err.Error())
		return
	}

	var upload *records.Upload
	if fileHeader, err := c.FormFile("attachment"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "unreadable attachment", err.Error())
			return
		}
		defer file.Close()
		upload = &records.Upload{Name: filepath.Base(fileHeader.Filename), Body: file}
	} else if tooLarge(err) {
		utils.JSONError(c, http.StatusRequestEntityTooLarge, "attachment too large", fmt.Sprintf("limit is %d bytes", h.MaxUploadBytes))
		return
	}

	record, err := h.Records.Create(c.Request.Context(), middleware.UserID(c), req, upload)
	if err != nil {
		recordError(c, "Failed to create medical record", err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *RecordHandler) UpdateRecordHandler(c *gin.Context) {
	var req models.MedicalRecordInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "date, type, description required", err.Error())
		return
	}
	record, err := h.Records.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), req)
	if err != nil {
		recordError(c, "Failed to update medical record", err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *RecordHandler) DeleteRecordHandler(c *gin.Context) {
	if err := h.Records.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		recordError(c, "Failed to delete medical record", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DownloadAttachmentHandler streams an attachment to its owner, or redirects
// to the storage provider when the file is not held by this server.
func (h *RecordHandler) DownloadAttachmentHandler(c *gin.Context) {
	att, err := h.Records.OpenAttachment(c.Request.Context(), middleware.UserID(c), c.Param("key"))
	if err != nil {
		recordError(c, "Failed to open attachment", err)
		return
	}
	if att.RedirectURL != "" {
		c.Redirect(http.StatusFound, att.RedirectURL)
		return
	}
	defer att.Body.Close()

	contentType := mime.TypeByExtension(filepath.Ext(c.Param("key")))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	headers := map[string]string{}
	if att.Name != "" {
		headers["Content-Disposition"] = mime.FormatMediaType("inline", map[string]string{"filename": att.Name})
	}
	c.DataFromReader(http.StatusOK, -1, contentType, att.Body, headers)
}

func recordError(c *gin.Context, message string, err error) {
	if errors.Is(err, records.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "not found", "")
		return
	}
	getLogger(c).Error(message, zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, message, "")
}

func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
