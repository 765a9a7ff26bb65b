package services

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"shopstock/internal/common"

	"github.com/labstack/gommon/random"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ImageService stores image blobs in the object-storage bucket and hands
// back durable public URLs.
type ImageService interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64) (string, error)
	Remove(ctx context.Context, objectName string) error
	EnsureBucketExists(ctx context.Context) error
	Healthy(ctx context.Context) error
}

type minioImageService struct {
	client   *minio.Client
	endpoint string
	bucket   string
	useSSL   bool
}

func NewImageService(endpoint, accessKey, secretKey string, useSSL bool, bucket string) (ImageService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioImageService{client: client, endpoint: endpoint, bucket: bucket, useSSL: useSSL}, nil
}

// Upload writes the blob under a collision-free name derived from the
// current time, a random suffix, and the original extension, so repeated
// uploads of same-named files never overwrite each other. The public URL
// of the stored object is returned.
func (s *minioImageService) Upload(ctx context.Context, filename string, reader io.Reader, size int64) (string, error) {
	ext := filepath.Ext(filename)
	objectName := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), strings.ToLower(random.String(8)), ext)

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", &common.UploadError{Object: objectName, Err: err}
	}
	return s.publicURL(objectName), nil
}

func (s *minioImageService) Remove(ctx context.Context, objectName string) error {
	err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return &common.UploadError{Object: objectName, Err: err}
	}
	return nil
}

func (s *minioImageService) EnsureBucketExists(ctx context.Context) error {
	found, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !found {
		return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	}
	return nil
}

func (s *minioImageService) Healthy(ctx context.Context) error {
	_, err := s.client.BucketExists(ctx, s.bucket)
	return err
}

// publicURL assumes an anonymous-read bucket policy, matching the hosted
// storage the app was built against.
func (s *minioImageService) publicURL(objectName string) string {
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, objectName)
}
