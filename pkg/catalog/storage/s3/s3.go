package s3

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/codebykenth/product-catalog/pkg/catalog"
)

// Config options for the S3 backend
type Config struct {
	Region          string // AWS region
	Bucket          string // S3 bucket name
	AccessKeyID     string // AWS access key ID
	SecretAccessKey string // AWS secret access key
	Endpoint        string // Optional custom endpoint for S3-compatible services
	UsePathStyle    bool   // Use path-style addressing (default: false)

	// PublicBaseURL overrides the derived public URL prefix, e.g. a CDN
	// origin. When empty the bucket's canonical S3 URL is used.
	PublicBaseURL string

	// MinIO/S3-compatible service options
	CreateBucketIfNotExist bool // Create bucket if it doesn't exist
}

// Backend is an S3-compatible implementation of the catalog.BlobStore interface
type Backend struct {
	client  *s3.Client
	bucket  string
	baseURL string
	config  Config
}

// New creates a new S3-compatible storage backend
func New(ctx context.Context, config Config) (*Backend, error) {
	if config.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}

	if config.Region == "" {
		config.Region = "us-east-1"
	}

	var awsCfg aws.Config
	var err error

	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(config.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				config.AccessKeyID,
				config.SecretAccessKey,
				"",
			)),
		)
	} else {
		// Use default credential chain
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(config.Region),
		)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Options []func(*s3.Options)

	// Custom endpoint for S3-compatible services (MinIO, etc.)
	if config.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = config.UsePathStyle
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Options...)

	backend := &Backend{
		client:  client,
		bucket:  config.Bucket,
		baseURL: publicBaseURL(config),
		config:  config,
	}

	if config.CreateBucketIfNotExist {
		if err := backend.createBucketIfNotExists(ctx); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return backend, nil
}

// publicBaseURL resolves the prefix public object URLs are built from.
func publicBaseURL(config Config) string {
	if config.PublicBaseURL != "" {
		return strings.TrimSuffix(config.PublicBaseURL, "/")
	}
	if config.Endpoint != "" {
		endpoint := strings.TrimSuffix(config.Endpoint, "/")
		if config.UsePathStyle {
			return fmt.Sprintf("%s/%s", endpoint, config.Bucket)
		}
		u, err := url.Parse(endpoint)
		if err != nil || u.Host == "" {
			return fmt.Sprintf("%s/%s", endpoint, config.Bucket)
		}
		return fmt.Sprintf("%s://%s.%s", u.Scheme, config.Bucket, u.Host)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", config.Bucket, config.Region)
}

// createBucketIfNotExists creates the bucket if it doesn't exist
func (b *Backend) createBucketIfNotExists(ctx context.Context) error {
	_, err := b.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(b.bucket),
	})

	if err == nil {
		// Bucket exists
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket

	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) &&
		!strings.Contains(err.Error(), "BadRequest") &&
		!strings.Contains(err.Error(), "NoSuchBucket") {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	createInput := &s3.CreateBucketInput{
		Bucket: aws.String(b.bucket),
	}

	// Add location constraint for regions other than us-east-1
	if b.config.Region != "us-east-1" {
		createInput.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(b.config.Region),
		}
	}

	_, err = b.client.CreateBucket(ctx, createInput)
	if err != nil {
		if strings.Contains(err.Error(), "BucketAlreadyExists") ||
			strings.Contains(err.Error(), "BucketAlreadyOwnedByYou") {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	return nil
}

// Upload stores the file under folder/referenceID with a timestamped name,
// marks it publicly readable and returns its public URL. A nil file or nil
// content is a no-op.
func (b *Backend) Upload(ctx context.Context, file *catalog.Upload, folder, referenceID string) (string, error) {
	if file == nil || file.Content == nil {
		return "", nil
	}

	key := ObjectKey(folder, referenceID, UniqueFilename(file.Filename, time.Now()))

	uploader := manager.NewUploader(b.client)

	input := &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
		Body:   file.Content,
		ACL:    types.ObjectCannedACLPublicRead,
	}
	if file.ContentType != "" {
		input.ContentType = aws.String(file.ContentType)
	}

	if _, err := uploader.Upload(ctx, input); err != nil {
		return "", &catalog.StorageError{Bucket: b.bucket, Key: key, Op: "upload", Err: err}
	}

	return b.baseURL + "/" + key, nil
}

// Delete removes the blob the URL points to; the key is rebuilt from the
// URL's final path segment. Reports false without error when the URL is
// empty or the blob is already gone.
func (b *Backend) Delete(ctx context.Context, rawURL, folder, referenceID string) (bool, error) {
	if rawURL == "" {
		return false, nil
	}

	filename, err := FilenameFromURL(rawURL)
	if err != nil {
		return false, &catalog.StorageError{Bucket: b.bucket, Key: rawURL, Op: "delete", Err: err}
	}
	key := ObjectKey(folder, referenceID, filename)

	_, err = b.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, &catalog.StorageError{Bucket: b.bucket, Key: key, Op: "head", Err: err}
	}

	_, err = b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return false, &catalog.StorageError{Bucket: b.bucket, Key: key, Op: "delete", Err: err}
	}

	return true, nil
}

// isNotFound reports whether an S3 API error means the object is absent.
func isNotFound(err error) bool {
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &notFound) || errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound"
}

// ObjectKey builds the canonical folder/referenceID/filename storage key.
func ObjectKey(folder, referenceID, filename string) string {
	return fmt.Sprintf("%s/%s/%s", folder, referenceID, filename)
}

// UniqueFilename prefixes the original name with a timestamp so repeated
// uploads of the same file cannot collide.
func UniqueFilename(original string, now time.Time) string {
	name := path.Base(strings.ReplaceAll(original, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "file"
	}
	return fmt.Sprintf("%d_%s", now.UnixNano(), name)
}

// FilenameFromURL decodes the URL's path component and returns its final
// segment.
func FilenameFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid blob URL: %w", err)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("blob URL has no filename: %s", rawURL)
	}
	return name, nil
}
