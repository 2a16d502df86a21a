package repository

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"
)

var ErrFlagStorageUnavailable = errors.New("flag storage is not configured")

type flagStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func newFlagStore(client *minio.Client, bucket, publicURL string) *flagStore {
	if client == nil {
		return nil
	}
	return &flagStore{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

// put uploads the image and returns its public URL
func (s *flagStore) put(ctx context.Context, fileName string, fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	_, err = s.client.PutObject(ctx, s.bucket, fileName, file, fileHeader.Size, minio.PutObjectOptions{
		ContentType: contentType(fileName),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, fileName), nil
}

// remove deletes the object behind a URL produced by put. URLs pointing
// elsewhere are left alone.
func (s *flagStore) remove(ctx context.Context, imageURL string) error {
	prefix := fmt.Sprintf("%s/%s/", s.publicURL, s.bucket)
	if imageURL == "" || !strings.HasPrefix(imageURL, prefix) {
		logrus.Debugf("Flag URL %q is not in bucket %s, skipping deletion", imageURL, s.bucket)
		return nil
	}
	fileName := strings.TrimPrefix(imageURL, prefix)

	_, err := s.client.StatObject(ctx, s.bucket, fileName, minio.StatObjectOptions{})
	if err != nil {
		logrus.Printf("File %s not found in MinIO bucket %s, skipping deletion", fileName, s.bucket)
		return nil
	}

	err = s.client.RemoveObject(ctx, s.bucket, fileName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object from MinIO: %w", err)
	}

	logrus.Printf("Successfully deleted flag from MinIO: %s", fileName)
	return nil
}

// discard removes an object that is no longer referenced. Failures only leave
// an orphaned object behind, so they are logged and not returned.
func (s *flagStore) discard(ctx context.Context, imageURL string) {
	if err := s.remove(ctx, imageURL); err != nil {
		logrus.Warnf("Failed to remove flag %s: %v", imageURL, err)
	}
}

func contentType(fileName string) string {
	switch strings.ToLower(path.Ext(fileName)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".svg":
		return "image/svg+xml"
	}
	return "application/octet-stream"
}
