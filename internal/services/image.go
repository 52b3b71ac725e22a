package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"devevent/internal/domain"
)

// windowsPathRegex matches a drive-letter absolute path such as C:\images\a.png.
var windowsPathRegex = regexp.MustCompile(`^[A-Za-z]:\\`)

const defaultImageExt = "png"

type imageResolver struct {
	uploader domain.MediaUploader
	local    domain.LocalImageStore
	homeDir  string
}

// NewImageResolver returns an ImageResolver. A nil uploader means no media-hosting
// backend is configured: bytes go to the local store and remote URLs pass through.
func NewImageResolver(uploader domain.MediaUploader, local domain.LocalImageStore, homeDir string) domain.ImageResolver {
	if homeDir == "" {
		homeDir = "/"
	}
	return &imageResolver{uploader: uploader, local: local, homeDir: homeDir}
}

// Resolve returns "" with a nil error when no image was supplied; the caller
// decides whether a missing image is fatal.
func (r *imageResolver) Resolve(ctx context.Context, in domain.ImageInput) (string, error) {
	if in.Empty() {
		return "", nil
	}
	if in.File != nil {
		return r.store(ctx, in.File.Data, in.File.Name)
	}
	ref := strings.TrimSpace(in.Ref)
	switch {
	case isRemoteRef(ref):
		if r.uploader == nil {
			return ref, nil
		}
		url, err := r.uploader.UploadRemote(ctx, ref)
		if err != nil {
			return "", fmt.Errorf("upload remote image: %w", err)
		}
		return url, nil
	case isLocalPath(ref):
		path := r.expandHome(ref)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", &domain.FileNotFoundError{Path: path}
			}
			return "", fmt.Errorf("read image file: %w", err)
		}
		return r.store(ctx, data, path)
	default:
		return "", domain.ErrInvalidImage
	}
}

func (r *imageResolver) store(ctx context.Context, data []byte, name string) (string, error) {
	if r.uploader != nil {
		url, err := r.uploader.UploadBytes(ctx, data, name)
		if err != nil {
			return "", fmt.Errorf("upload image: %w", err)
		}
		return url, nil
	}
	url, err := r.local.Save(ctx, data, imageExt(name))
	if err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return url, nil
}

func (r *imageResolver) expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	return r.homeDir + strings.TrimPrefix(path, "~")
}

func isRemoteRef(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "data:")
}

func isLocalPath(s string) bool {
	return strings.HasPrefix(s, "/") || strings.HasPrefix(s, "~") || windowsPathRegex.MatchString(s)
}

func imageExt(name string) string {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return defaultImageExt
	}
	return ext
}
