package media

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploadAPI struct {
	file   interface{}
	params uploader.UploadParams
	result *uploader.UploadResult
	err    error
}

func (f *fakeUploadAPI) Upload(_ context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	f.file = file
	f.params = params
	return f.result, f.err
}

func TestCloudinaryUploader_UploadBytes(t *testing.T) {
	fake := &fakeUploadAPI{result: &uploader.UploadResult{SecureURL: "https://res.cloudinary.com/demo/image/upload/a.png"}}
	u := newCloudinaryUploader(fake, "devevent")

	got, err := u.UploadBytes(context.Background(), []byte("png"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/a.png", got)
	assert.Equal(t, "devevent", fake.params.Folder)
	assert.Equal(t, "image", fake.params.ResourceType)

	r, ok := fake.file.(io.Reader)
	require.True(t, ok)
	body, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "png", string(body))
}

func TestCloudinaryUploader_UploadRemote(t *testing.T) {
	fake := &fakeUploadAPI{result: &uploader.UploadResult{SecureURL: "https://res.cloudinary.com/x.jpg"}}
	u := newCloudinaryUploader(fake, "")

	got, err := u.UploadRemote(context.Background(), "https://example.com/x.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/x.jpg", got)
	assert.Equal(t, "https://example.com/x.jpg", fake.file)
}

func TestCloudinaryUploader_Failures(t *testing.T) {
	tests := []struct {
		name   string
		result *uploader.UploadResult
		err    error
	}{
		{name: "transport error", err: errors.New("timeout")},
		{name: "empty response"},
		{name: "api error", result: &uploader.UploadResult{Error: api.ErrorResp{Message: "Invalid image file"}}},
		{name: "no secure url", result: &uploader.UploadResult{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := newCloudinaryUploader(&fakeUploadAPI{result: tt.result, err: tt.err}, "")
			_, err := u.UploadBytes(context.Background(), []byte("x"), "image/png")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "cloudinary upload")
		})
	}
}

func TestCloudinaryConfig_Configured(t *testing.T) {
	assert.False(t, CloudinaryConfig{}.Configured())
	assert.True(t, CloudinaryConfig{URL: "cloudinary://k:s@demo"}.Configured())
	assert.True(t, CloudinaryConfig{CloudName: "demo"}.Configured())
}

func TestNewCloudinaryUploader(t *testing.T) {
	u, err := NewCloudinaryUploader(CloudinaryConfig{CloudName: "demo", APIKey: "key", APISecret: "secret", Folder: "events"})
	require.NoError(t, err)
	assert.NotNil(t, u)
}
