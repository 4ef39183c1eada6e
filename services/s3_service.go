package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/rsastri21/status-application/models"
)

const presignExpiry = 5 * time.Minute

// ObjectStore is the blob-store contract consumed by the post and upload
// paths. S3Service implements it; tests substitute an in-memory fake.
type ObjectStore interface {
	GenerateUploadURL(ctx context.Context, key string, width, height int) (string, error)
	GenerateReadURL(ctx context.Context, key string) (string, error)
	GetObjectMetadata(ctx context.Context, key string) (map[string]string, error)
	DeleteObject(ctx context.Context, key string) error
}

// S3Service handles presigned upload/read URLs and object metadata for the
// images bucket. Constructed once in main and injected where needed.
type S3Service struct {
	Client    *s3.Client
	Presigner *s3.PresignClient
	Bucket    string
}

// InitializeS3Client initializes the S3 client for a region.
func InitializeS3Client(region string) *s3.Client {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	return s3.NewFromConfig(cfg)
}

// NewS3Service creates an S3Service with a presign client for the bucket.
func NewS3Service(client *s3.Client, bucket string) *S3Service {
	return &S3Service{
		Client:    client,
		Presigner: s3.NewPresignClient(client),
		Bucket:    bucket,
	}
}

// GenerateUploadURL generates a presigned PUT URL for the given key. The
// image dimensions ride along as object metadata so the upload notification
// handler can recover them without inspecting the bytes.
func (s *S3Service) GenerateUploadURL(ctx context.Context, key string, width, height int) (string, error) {
	request, err := s.Presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
		Metadata: map[string]string{
			models.WidthMetadataHeader:  strconv.Itoa(width),
			models.HeightMetadataHeader: strconv.Itoa(height),
		},
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign upload for key '%s': %w", key, err)
	}
	return request.URL, nil
}

// GenerateReadURL generates a presigned GET URL for the given key.
func (s *S3Service) GenerateReadURL(ctx context.Context, key string) (string, error) {
	request, err := s.Presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign read for key '%s': %w", key, err)
	}
	return request.URL, nil
}

// GetObjectMetadata fetches the user metadata attached to a stored object.
func (s *S3Service) GetObjectMetadata(ctx context.Context, key string) (map[string]string, error) {
	output, err := s.Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to head object '%s': %w", key, err)
	}
	return output.Metadata, nil
}

// DeleteObject removes a stored object. Used for best-effort cleanup when a
// post is deleted.
func (s *S3Service) DeleteObject(ctx context.Context, key string) error {
	_, err := s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object '%s': %w", key, err)
	}
	return nil
}
