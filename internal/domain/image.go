package domain

import (
	"context"
	"strings"
)

// UploadedFile is an image received as a multipart file part.
type UploadedFile struct {
	Name string
	Data []byte
}

// ImageInput holds exactly one of an uploaded file or a string reference
// (remote URL, data URL or local path). Both empty means no image was supplied.
type ImageInput struct {
	File *UploadedFile
	Ref  string
}

// Empty reports whether no image was supplied. A blank reference counts as none.
func (in ImageInput) Empty() bool {
	return in.File == nil && strings.TrimSpace(in.Ref) == ""
}

// MediaUploader is a managed media-hosting backend returning durable secure URLs.
type MediaUploader interface {
	UploadBytes(ctx context.Context, data []byte, filename string) (string, error)
	// UploadRemote lets the backend fetch and store a remote or data URL itself.
	UploadRemote(ctx context.Context, url string) (string, error)
}

// LocalImageStore writes image bytes to public storage and returns a site-relative URL.
type LocalImageStore interface {
	Save(ctx context.Context, data []byte, ext string) (string, error)
}

// ImageResolver turns an ImageInput into a single stored, fetchable image reference.
type ImageResolver interface {
	Resolve(ctx context.Context, in ImageInput) (string, error)
}
