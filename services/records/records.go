// Package records manages medical records and their attachments.
package records

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	recordsRepo "sahayata/database/repository/records"
	"sahayata/models"
	"sahayata/services/storage"
)

var ErrNotFound = errors.New("medical record not found")

// FilesRoute is where attachments stored by the application are downloaded.
const FilesRoute = "/api/medical-records/files/"

// Upload is an attachment received with a new record.
type Upload struct {
	Name string
	Body io.Reader
}

// Attachment is either a readable body or a provider URL to redirect to.
type Attachment struct {
	Name        string
	Body        io.ReadCloser
	RedirectURL string
}

type RecordService struct {
	Repo   recordsRepo.MedicalRecordRepository
	Files  storage.FileStore
	logger *zap.Logger
}

func NewRecordService(repo recordsRepo.MedicalRecordRepository, files storage.FileStore, logger *zap.Logger) *RecordService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordService{Repo: repo, Files: files, logger: logger}
}

func (s *RecordService) List(ctx context.Context, userID string) ([]models.MedicalRecord, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Create stores the attachment first, then the record. A record that fails to
// save takes its attachment with it.
func (s *RecordService) Create(ctx context.Context, userID string, in models.MedicalRecordInput, upload *Upload) (*models.MedicalRecord, error) {
	record := models.MedicalRecord{
		UserID:      userID,
		Date:        in.Date,
		Type:        strings.TrimSpace(in.Type),
		Description: strings.TrimSpace(in.Description),
	}

	if upload != nil {
		stored, err := s.Files.Save(ctx, storage.NewKey(upload.Name), upload.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to store attachment: %w", err)
		}
		record.AttachmentName = upload.Name
		record.AttachmentKey = stored.Key
		record.AttachmentURL = stored.URL
		if record.AttachmentURL == "" {
			record.AttachmentURL = FilesRoute + stored.Key
		}
	}

	id, err := s.Repo.Create(ctx, record)
	if err != nil {
		s.removeAttachment(ctx, record.AttachmentKey)
		return nil, err
	}
	return s.Repo.GetByID(ctx, userID, id)
}

func (s *RecordService) Update(ctx context.Context, userID, id string, in models.MedicalRecordInput) (*models.MedicalRecord, error) {
	set := bson.M{
		"date":        in.Date,
		"type":        strings.TrimSpace(in.Type),
		"description": strings.TrimSpace(in.Description),
	}
	if in.AttachmentName != "" {
		set["attachmentName"] = in.AttachmentName
	}
	record, err := s.Repo.Update(ctx, userID, id, set)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}
	return record, nil
}

// Delete removes the record and, best-effort, its attachment.
func (s *RecordService) Delete(ctx context.Context, userID, id string) error {
	record, err := s.Repo.DeleteByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrNotFound
	}
	s.removeAttachment(ctx, record.AttachmentKey)
	return nil
}

// OpenAttachment returns the attachment stored under key if it belongs to one
// of the user's records.
func (s *RecordService) OpenAttachment(ctx context.Context, userID, key string) (*Attachment, error) {
	if !storage.ValidKey(key) {
		return nil, ErrNotFound
	}
	record, err := s.Repo.GetByAttachmentKey(ctx, userID, key)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}

	body, err := s.Files.Open(ctx, key)
	switch {
	case errors.Is(err, storage.ErrNotServed):
		return &Attachment{Name: record.AttachmentName, RedirectURL: record.AttachmentURL}, nil
	case errors.Is(err, storage.ErrNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, err
	}
	return &Attachment{Name: record.AttachmentName, Body: body}, nil
}

func (s *RecordService) removeAttachment(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.Files.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to delete attachment", zap.String("key", key), zap.Error(err))
	}
}
