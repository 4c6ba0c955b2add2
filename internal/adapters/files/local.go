package files

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/lcalzada-xor/snapgram/internal/core/domain"
	"github.com/lcalzada-xor/snapgram/internal/core/ports"
	"github.com/lcalzada-xor/snapgram/internal/telemetry"
)

// URLPrefix is the path the content directory is served under.
const URLPrefix = "/content/"

var _ ports.FileStorage = (*LocalStorage)(nil)

// allowed maps accepted MIME types to file extensions.
var allowed = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
}

// LocalStorage keeps uploads on the local disk under root, laid out as
// user/{id}/{kind}/{uuid}.{ext}.
type LocalStorage struct {
	root      string
	publicURL string
}

// NewLocalStorage creates root if needed. publicURL may be empty for site
// relative links.
func NewLocalStorage(root, publicURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create content dir: %w", err)
	}
	return &LocalStorage{root: root, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

// Root returns the directory served under URLPrefix.
func (s *LocalStorage) Root() string { return s.root }

// Save checks size and content type, then writes the upload.
func (s *LocalStorage) Save(ctx context.Context, userID int64, kind domain.UploadKind, upload *domain.Upload) (string, error) {
	field := fieldFor(kind)
	if upload == nil || upload.Content == nil {
		return "", domain.NewFieldError(field, "file is required")
	}
	if upload.Size > domain.MaxPhotoSize {
		return "", domain.NewFieldError(field, "file is too large")
	}

	data, err := io.ReadAll(io.LimitReader(upload.Content, domain.MaxPhotoSize+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return "", domain.NewFieldError(field, "file is empty")
	}
	if len(data) > domain.MaxPhotoSize {
		return "", domain.NewFieldError(field, "file is too large")
	}

	ext, ok := allowed[mimetype.Detect(data).String()]
	if !ok {
		return "", domain.NewFieldError(field, "only png and jpeg images are allowed")
	}

	rel := path.Join("user", strconv.FormatInt(userID, 10), string(kind), uuid.NewString()+"."+ext)
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	telemetry.Uploads.WithLabelValues(string(kind)).Inc()
	return s.publicURL + URLPrefix + rel, nil
}

// Delete removes the file behind a link produced by Save.
func (s *LocalStorage) Delete(ctx context.Context, link string) error {
	full, ok := s.resolve(link)
	if !ok {
		return nil
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %s: %w", link, err)
	}
	return nil
}

func (s *LocalStorage) DeleteAll(ctx context.Context, userID int64, kind domain.UploadKind) error {
	dir := filepath.Join(s.root, "user", strconv.FormatInt(userID, 10), string(kind))
	return os.RemoveAll(dir)
}

// Purge removes every stored file but keeps root.
func (s *LocalStorage) Purge(ctx context.Context) error {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(s.root, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// resolve maps a link back to a path inside root. Links from elsewhere and
// paths escaping root are rejected.
func (s *LocalStorage) resolve(link string) (string, bool) {
	rel, ok := strings.CutPrefix(link, s.publicURL+URLPrefix)
	if !ok || rel == "" {
		return "", false
	}
	clean := path.Clean("/" + rel)
	if !strings.HasPrefix(clean, "/user/") {
		return "", false
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), true
}

func fieldFor(kind domain.UploadKind) string {
	if kind == domain.UploadPostPhoto {
		return "postPhoto"
	}
	return "avatar"
}
