package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/codebykenth/product-catalog/pkg/catalog"
	mongostore "github.com/codebykenth/product-catalog/pkg/catalog/docstore/mongo"
	s3storage "github.com/codebykenth/product-catalog/pkg/catalog/storage/s3"
)

// Config is the server configuration, read from the environment.
type Config struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`
	JWTSecret   string `env:"JWT_SECRET" env-default:""`

	Mongo MongoConfig
	S3    S3Config
}

// MongoConfig holds the document store connection settings.
type MongoConfig struct {
	URI      string `env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	Database string `env:"MONGO_DATABASE" env-default:"catalog"`
}

// S3Config holds the object store connection settings.
type S3Config struct {
	Endpoint        string `env:"AWS_S3_ENDPOINT" env-default:""`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" env-default:""`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" env-default:""`
	Bucket          string `env:"AWS_S3_BUCKET" env-default:"product-images"`
	Region          string `env:"AWS_S3_REGION" env-default:"us-east-1"`
	PublicBaseURL   string `env:"AWS_S3_PUBLIC_BASE_URL" env-default:""`
	UsePathStyle    bool   `env:"AWS_S3_USE_PATH_STYLE" env-default:"false"`
	CreateBucket    bool   `env:"AWS_S3_CREATE_BUCKET" env-default:"false"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the server configuration
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	if c.Mongo.URI == "" {
		return errors.New("mongo uri is required")
	}
	if c.Mongo.Database == "" {
		return errors.New("mongo database is required")
	}
	if c.S3.Bucket == "" {
		return errors.New("s3 bucket is required")
	}
	return nil
}

// BuildService constructs the catalog service with its two injected store
// handles. The returned cleanup closes the document store connection.
func (c *Config) BuildService(ctx context.Context) (catalog.Service, func(context.Context) error, error) {
	client, err := mongostore.Connect(ctx, c.Mongo.URI)
	if err != nil {
		return nil, nil, err
	}
	documents := mongostore.NewStore(client.Database(c.Mongo.Database))

	blobs, err := s3storage.New(ctx, s3storage.Config{
		Region:                 c.S3.Region,
		Bucket:                 c.S3.Bucket,
		AccessKeyID:            c.S3.AccessKeyID,
		SecretAccessKey:        c.S3.SecretAccessKey,
		Endpoint:               c.S3.Endpoint,
		UsePathStyle:           c.S3.UsePathStyle,
		PublicBaseURL:          c.S3.PublicBaseURL,
		CreateBucketIfNotExist: c.S3.CreateBucket,
	})
	if err != nil {
		client.Disconnect(ctx)
		return nil, nil, err
	}

	svc, err := catalog.New(
		catalog.WithDocumentStore(documents),
		catalog.WithBlobStore(blobs),
	)
	if err != nil {
		client.Disconnect(ctx)
		return nil, nil, err
	}

	return svc, client.Disconnect, nil
}
