// Package storage uploads user supplied images to object storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/autolux/marketplace-api/internal/utils"
)

const (
	MaxImageSize    = 5 << 20
	MaxVehicleFiles = 5

	VehicleFolder    = "vehicles"
	ProfilePicFolder = "profile-pics"
)

// Uploader stores an object under folder and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error)
}

// UploadImages validates and uploads every file, in order. It stops at the
// first failure.
func UploadImages(ctx context.Context, up Uploader, folder string, files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		url, err := UploadImage(ctx, up, folder, fh)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// UploadImage checks size and content type before handing fh to up.
func UploadImage(ctx context.Context, up Uploader, folder string, fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxImageSize {
		return "", utils.Invalid(fmt.Sprintf("%s exceeds %d bytes", fh.Filename, MaxImageSize))
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	contentType := http.DetectContentType(head[:n])
	if !strings.HasPrefix(contentType, "image/") {
		return "", utils.Invalid(fmt.Sprintf("%s is not an image", fh.Filename))
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	return up.Upload(ctx, folder, fh.Filename, contentType, f)
}

// objectKey builds prefix/folder/<uuid><ext>.
func objectKey(prefix, folder, filename string) string {
	return path.Join(prefix, folder, uuid.NewString()+strings.ToLower(path.Ext(filename)))
}

var ErrNotConfigured = errors.New("object storage is not configured")

// Disabled rejects every upload. It stands in when no bucket is set.
type Disabled struct{}

func (Disabled) Upload(context.Context, string, string, string, io.Reader) (string, error) {
	return "", ErrNotConfigured
}
