package photons2d

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/joho/godotenv"
)

const uploadTimeout = 30 * time.Second

type objectPutter interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// Uploader publishes rendered animations to an S3 bucket.
type Uploader struct {
	client objectPutter
	bucket string
	prefix string
}

// LoadEnv reads a .env file from dir into the environment; a missing file is not an error.
func LoadEnv(dir string) error {
	p := filepath.Join(dir, ".env")
	if _, err := os.Stat(p); err != nil {
		return nil
	}
	return godotenv.Load(p)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// uploadCfgFromEnv lets S3_* variables override the config file.
func uploadCfgFromEnv(cfg UploadCfg) UploadCfg {
	return UploadCfg{
		Bucket:   getEnv("S3_BUCKET", cfg.Bucket),
		Region:   getEnv("S3_REGION", cfg.Region),
		Endpoint: getEnv("S3_ENDPOINT", cfg.Endpoint),
		Prefix:   getEnv("S3_PREFIX", cfg.Prefix),
	}
}

// NewUploader returns nil when no bucket is configured.
func NewUploader(cfg UploadCfg) (*Uploader, error) {
	cfg = uploadCfgFromEnv(cfg)
	if cfg.Bucket == "" {
		return nil, nil
	}
	awsCfg := &aws.Config{}
	if cfg.Region != "" {
		awsCfg.Region = aws.String(cfg.Region)
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	if key, secret := os.Getenv("S3_ACCESS_KEY"), os.Getenv("S3_SECRET_KEY"); key != "" && secret != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(key, secret, "")
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return &Uploader{client: s3.New(sess), bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func contentType(p string) string {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".gif":
		return "image/gif"
	case ".png":
		return "image/png"
	}
	return "application/octet-stream"
}

// Key is the object key a local file is stored under.
func (u *Uploader) Key(p string) string {
	if u.prefix == "" {
		return filepath.Base(p)
	}
	return path.Join(u.prefix, filepath.Base(p))
}

// Upload sends every file, stopping at the first failure.
func (u *Uploader) Upload(ctx context.Context, paths []string) error {
	for i, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		key := u.Key(p)
		uctx, cancel := context.WithTimeout(ctx, uploadTimeout)
		_, err = u.client.PutObjectWithContext(uctx, &s3.PutObjectInput{
			Bucket:        aws.String(u.bucket),
			Key:           aws.String(key),
			Body:          bytes.NewReader(data),
			ContentLength: aws.Int64(int64(len(data))),
			ContentType:   aws.String(contentType(p)),
		})
		cancel()
		if err != nil {
			return fmt.Errorf("failed to upload %s: %w", key, err)
		}
		fmt.Printf("[S3] %d/%d s3://%s/%s (%d bytes)\n", i+1, len(paths), u.bucket, key, len(data))
	}
	return nil
}
