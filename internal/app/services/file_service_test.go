package services

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eventvault/backend/internal/app/models"
	"github.com/eventvault/backend/internal/app/repositories"
	"github.com/eventvault/backend/internal/pkg/apperrors"
	"github.com/eventvault/backend/internal/pkg/filestorage"
)

type fakeFileStore struct {
	mu    sync.Mutex
	files map[uuid.UUID]*models.File
	err   error
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: map[uuid.UUID]*models.File{}}
}

func (f *fakeFileStore) Create(_ context.Context, file *models.File) (*models.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	c := *file
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	f.files[c.ID] = &c
	out := c
	return &out, nil
}

func (f *fakeFileStore) GetByID(_ context.Context, id uuid.UUID) (*models.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, ok := f.files[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := *file
	return &c, nil
}

func (f *fakeFileStore) ListByEvent(_ context.Context, eventID uuid.UUID, fileType *models.FileType) ([]*models.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.File{}
	for _, file := range f.files {
		if file.EventID == eventID && (fileType == nil || file.FileType == *fileType) {
			c := *file
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeFileStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.files[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.files, id)
	return nil
}

func multipartFile(t *testing.T, name, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

type fileFixture struct {
	root   string
	events *fakeEventStore
	files  *fakeFileStore
	svc    FileService
	event  *models.Event
}

func newFileFixture(t *testing.T) *fileFixture {
	t.Helper()
	root := t.TempDir()
	storage, err := filestorage.NewLocalStorage(root, "http://localhost:8080/uploads", zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	f := &fileFixture{root: root, events: newFakeEventStore(), files: newFakeFileStore()}
	f.svc = NewFileService(f.files, f.events, storage, zerolog.Nop())
	f.event = f.events.add(&models.Event{Name: "Tech Conf"})
	return f
}

func TestUploadFileStoresUnderEventFolder(t *testing.T) {
	f := newFileFixture(t)

	file, err := f.svc.UploadFile(context.Background(), UploadInput{
		EventID: f.event.ID,
		File:    multipartFile(t, "Keynote.JPG", "image/jpeg", []byte("jpeg-bytes")),
		Folder:  "speakers",
	})
	if err != nil {
		t.Fatalf("UploadFile: %v", err)
	}

	if file.FileType != models.FileTypeImage || file.FolderName != "speakers" || file.FileSize != 10 {
		t.Errorf("file = %+v", file)
	}
	if filepath.Dir(file.StoragePath) != f.event.ID.String()+"/speakers" || filepath.Ext(file.StoragePath) != ".jpg" {
		t.Errorf("storage path = %s", file.StoragePath)
	}
	if _, err := os.Stat(filepath.Join(f.root, filepath.FromSlash(file.StoragePath))); err != nil {
		t.Errorf("stored object missing: %v", err)
	}
	if got := f.svc.FileURL(file); got != "http://localhost:8080/uploads/"+file.StoragePath {
		t.Errorf("url = %s", got)
	}
}

func TestUploadFileDefaultsFolderAndClassifiesDocuments(t *testing.T) {
	f := newFileFixture(t)

	file, err := f.svc.UploadFile(context.Background(), UploadInput{
		EventID: f.event.ID,
		File:    multipartFile(t, "agenda.pdf", "application/pdf", []byte("%PDF")),
	})
	if err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	if file.FolderName != models.DefaultFolder || file.FileType != models.FileTypeDocument {
		t.Errorf("file = %+v", file)
	}
}

func TestUploadFileRejects(t *testing.T) {
	f := newFileFixture(t)
	ctx := context.Background()

	_, err := f.svc.UploadFile(ctx, UploadInput{EventID: f.event.ID, File: multipartFile(t, "a.png", "image/png", []byte("x")), Folder: "../etc"})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("bad folder error = %v", err)
	}
	_, err = f.svc.UploadFile(ctx, UploadInput{EventID: uuid.New(), File: multipartFile(t, "a.png", "image/png", []byte("x"))})
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("unknown event error = %v", err)
	}
}

func TestUploadFileRemovesObjectWhenRowFails(t *testing.T) {
	f := newFileFixture(t)
	f.files.err = errors.New("db down")

	_, err := f.svc.UploadFile(context.Background(), UploadInput{
		EventID: f.event.ID,
		File:    multipartFile(t, "clip.mp4", "video/mp4", []byte("mp4")),
		Folder:  "atmosphere",
	})
	if !errors.Is(err, apperrors.ErrPersistence) {
		t.Fatalf("error = %v, want persistence error", err)
	}

	entries, _ := os.ReadDir(filepath.Join(f.root, f.event.ID.String(), "atmosphere"))
	if len(entries) != 0 {
		t.Errorf("orphaned objects left behind: %d", len(entries))
	}
}

func TestDeleteFile(t *testing.T) {
	f := newFileFixture(t)
	ctx := context.Background()
	file, err := f.svc.UploadFile(ctx, UploadInput{
		EventID: f.event.ID,
		File:    multipartFile(t, "a.png", "image/png", []byte("png")),
	})
	if err != nil {
		t.Fatalf("UploadFile: %v", err)
	}

	if err := f.svc.DeleteFile(ctx, uuid.New(), file.ID); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("delete through another event: %v", err)
	}
	if err := f.svc.DeleteFile(ctx, f.event.ID, file.ID); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if _, err := os.Stat(filepath.Join(f.root, filepath.FromSlash(file.StoragePath))); !os.IsNotExist(err) {
		t.Errorf("object still present: %v", err)
	}
	if err := f.svc.DeleteFile(ctx, f.event.ID, file.ID); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("second delete: %v", err)
	}
}

func TestListFilesFiltersByType(t *testing.T) {
	f := newFileFixture(t)
	ctx := context.Background()
	for _, up := range []struct{ name, mime string }{{"a.png", "image/png"}, {"b.mp4", "video/mp4"}, {"c.jpg", "image/jpeg"}} {
		if _, err := f.svc.UploadFile(ctx, UploadInput{EventID: f.event.ID, File: multipartFile(t, up.name, up.mime, []byte("x"))}); err != nil {
			t.Fatalf("UploadFile(%s): %v", up.name, err)
		}
	}

	images := models.FileTypeImage
	files, err := f.svc.ListFiles(ctx, f.event.ID, &images)
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("got %d images, want 2", len(files))
	}

	bogus := models.FileType("audio")
	if _, err := f.svc.ListFiles(ctx, f.event.ID, &bogus); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("bogus type error = %v", err)
	}
}
