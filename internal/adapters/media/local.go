package media

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"devevent/internal/domain"
)

type localStore struct {
	dir       string
	urlPrefix string
}

// NewLocalStore returns a LocalImageStore writing into dir and producing URLs under urlPrefix
// (e.g. "/uploads"). The directory is created if missing.
func NewLocalStore(dir, urlPrefix string) (domain.LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &localStore{dir: dir, urlPrefix: "/" + strings.Trim(urlPrefix, "/")}, nil
}

// Save writes data to <32 hex chars>.<ext>. The file is created exclusively so an
// existing file is never overwritten.
func (s *localStore) Save(_ context.Context, data []byte, ext string) (string, error) {
	name := randomName() + "." + ext
	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path.Join(s.urlPrefix, name), nil
}

// randomName returns the 32 hex digits of a random UUID.
func randomName() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
