// internal/profile/upload.go
// Avatar storage behind the UploadService interface: S3 in production,
// local disk in development.

package profile

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

type UploadService interface {
	UploadAvatar(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error)
}

// S3UploadService stores avatars in an S3 bucket under uuid keys.
type S3UploadService struct {
	s3Client *s3.S3
	bucket   string
	baseURL  string
}

func NewS3UploadService(bucket, region string) (UploadService, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, fmt.Errorf("create AWS session: %w", err)
	}

	return &S3UploadService{
		s3Client: s3.New(sess),
		bucket:   bucket,
		baseURL:  fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region),
	}, nil
}

func (s *S3UploadService) UploadAvatar(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	key := fmt.Sprintf("avatars/%s%s", uuid.New().String(), filepath.Ext(header.Filename))

	body, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	_, err = s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(header.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("upload to S3: %w", err)
	}

	return fmt.Sprintf("%s/%s", s.baseURL, key), nil
}

// LocalUploadService stores avatars on disk for development setups.
type LocalUploadService struct {
	uploadDir string
	baseURL   string
}

func NewLocalUploadService(uploadDir, baseURL string) UploadService {
	return &LocalUploadService{uploadDir: uploadDir, baseURL: baseURL}
}

func (s *LocalUploadService) UploadAvatar(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	dir := filepath.Join(s.uploadDir, "avatars")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	filename := uuid.New().String() + filepath.Ext(header.Filename)
	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("save file: %w", err)
	}

	return fmt.Sprintf("%s/avatars/%s", s.baseURL, filename), nil
}
