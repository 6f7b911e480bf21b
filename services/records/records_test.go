package records

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"sahayata/models"
	"sahayata/services/storage"
)

type memRecords struct {
	items     map[string]models.MedicalRecord
	createErr error
	nextID    int
}

func newMemRecords() *memRecords { return &memRecords{items: map[string]models.MedicalRecord{}} }

func (m *memRecords) Create(_ context.Context, r models.MedicalRecord) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	m.nextID++
	r.ID = fmt.Sprintf("rec%d", m.nextID)
	m.items[r.ID] = r
	return r.ID, nil
}

func (m *memRecords) GetByID(_ context.Context, userID, id string) (*models.MedicalRecord, error) {
	r, ok := m.items[id]
	if !ok || r.UserID != userID {
		return nil, nil
	}
	return &r, nil
}

func (m *memRecords) GetByAttachmentKey(_ context.Context, userID, key string) (*models.MedicalRecord, error) {
	for _, r := range m.items {
		if r.AttachmentKey == key && r.UserID == userID {
			return &r, nil
		}
	}
	return nil, nil
}

func (m *memRecords) ListByUser(_ context.Context, userID string) ([]models.MedicalRecord, error) {
	var out []models.MedicalRecord
	for _, r := range m.items {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRecords) Update(_ context.Context, userID, id string, set bson.M) (*models.MedicalRecord, error) {
	r, ok := m.items[id]
	if !ok || r.UserID != userID {
		return nil, nil
	}
	r.Description = set["description"].(string)
	m.items[id] = r
	return &r, nil
}

func (m *memRecords) DeleteByID(_ context.Context, userID, id string) (*models.MedicalRecord, error) {
	r, ok := m.items[id]
	if !ok || r.UserID != userID {
		return nil, nil
	}
	delete(m.items, id)
	return &r, nil
}

func newService(t *testing.T) (*RecordService, *memRecords, *storage.DiskStore) {
	t.Helper()
	disk, err := storage.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	repo := newMemRecords()
	return NewRecordService(repo, disk, nil), repo, disk
}

var input = models.MedicalRecordInput{Date: "2025-03-01", Type: "lab", Description: "HbA1c 6.1"}

func TestCreateWithAttachment(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, "u1", input, &Upload{Name: "report.pdf", Body: strings.NewReader("%PDF")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.AttachmentName != "report.pdf" || !strings.HasPrefix(rec.AttachmentURL, FilesRoute) {
		t.Errorf("unexpected record %+v", rec)
	}

	att, err := svc.OpenAttachment(ctx, "u1", rec.AttachmentKey)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	body, _ := io.ReadAll(att.Body)
	att.Body.Close()
	if string(body) != "%PDF" {
		t.Errorf("unexpected body %q", body)
	}

	if _, err := svc.OpenAttachment(ctx, "someone-else", rec.AttachmentKey); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected other users to be denied, got %v", err)
	}
}

func TestCreate_RecordFailureRemovesAttachment(t *testing.T) {
	dir := t.TempDir()
	disk, err := storage.NewDiskStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	repo := newMemRecords()
	repo.createErr = errors.New("insert failed")
	svc := NewRecordService(repo, disk, nil)

	if _, err := svc.Create(context.Background(), "u1", input, &Upload{Name: "x.txt", Body: strings.NewReader("x")}); err == nil {
		t.Fatal("expected error")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected orphaned attachment to be removed, found %d files", len(entries))
	}
}

func TestDelete(t *testing.T) {
	svc, _, disk := newService(t)
	ctx := context.Background()
	rec, err := svc.Create(ctx, "u1", input, &Upload{Name: "scan.png", Body: strings.NewReader("png")})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(ctx, "u2", rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for another user, got %v", err)
	}
	if err := svc.Delete(ctx, "u1", rec.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := disk.Open(ctx, rec.AttachmentKey); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected attachment to be removed, got %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _, _ := newService(t)
	if _, err := svc.Update(context.Background(), "u1", "nope", input); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
