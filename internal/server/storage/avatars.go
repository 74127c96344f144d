// Package storage hands out presigned S3 upload URLs for user avatars.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/khonsu303/estudio/internal/common"
)

var loadDefaultAWSConfig = config.LoadDefaultConfig

// AvatarContentTypes maps accepted upload content types to file extensions.
var AvatarContentTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// AvatarUpload is returned to the client, which PUTs the image to UploadURL.
// PublicURL is what gets stored as the user's avatar.
type AvatarUpload struct {
	UploadURL string    `json:"uploadUrl"`
	PublicURL string    `json:"avatar"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type AvatarStore interface {
	PresignAvatarUpload(ctx context.Context, userID, contentType string) (*AvatarUpload, error)
}

// Disabled is used when no bucket is configured.
type Disabled struct{}

func (Disabled) PresignAvatarUpload(context.Context, string, string) (*AvatarUpload, error) {
	return nil, common.ErrFeatureDisabled
}

type S3Config struct {
	Bucket       string
	Region       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string
	Validity     time.Duration
}

type presigner interface {
	PresignPutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type S3AvatarStore struct {
	cfg     S3Config
	presign presigner
	now     func() time.Time
}

// NewS3AvatarStore builds a path-style client so MinIO endpoints work.
func NewS3AvatarStore(ctx context.Context, cfg S3Config) (*S3AvatarStore, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		}
		o.UsePathStyle = true
	})

	return &S3AvatarStore{cfg: cfg, presign: s3.NewPresignClient(client), now: time.Now}, nil
}

func (s *S3AvatarStore) PresignAvatarUpload(ctx context.Context, userID, contentType string) (*AvatarUpload, error) {
	ext, ok := AvatarContentTypes[contentType]
	if !ok {
		return nil, common.NewValidationError("contentType", "unsupported image type")
	}

	key := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.New(), ext)
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.cfg.Validity))
	if err != nil {
		return nil, fmt.Errorf("presign avatar upload: %w", err)
	}

	return &AvatarUpload{
		UploadURL: req.URL,
		PublicURL: s.publicURL(key),
		Key:       key,
		ExpiresAt: s.now().Add(s.cfg.Validity),
	}, nil
}

func (s *S3AvatarStore) publicURL(key string) string {
	base := s.cfg.BaseEndpoint
	if base == "" {
		base = fmt.Sprintf("https://s3.%s.amazonaws.com", s.cfg.Region)
	}
	return strings.TrimRight(base, "/") + "/" + s.cfg.Bucket + "/" + key
}
