package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/lcsgo/blobstore"
	lcsminio "github.com/hupe1980/lcsgo/blobstore/minio"
	lcss3 "github.com/hupe1980/lcsgo/blobstore/s3"
	"github.com/hupe1980/lcsgo/persistence"
)

// Config is the lcs YAML configuration.
type Config struct {
	Representation RepresentationConfig `yaml:"representation"`
	Storage        StorageConfig        `yaml:"storage"`
	Compression    string               `yaml:"compression"`
	LogLevel       string               `yaml:"log_level"`
}

// RepresentationConfig describes the ternary rule shape.
type RepresentationConfig struct {
	Attributes int `yaml:"attributes"`
	Classes    int `yaml:"classes"`
}

// StorageConfig selects the checkpoint backend.
type StorageConfig struct {
	// Backend is one of local, minio or s3.
	Backend string `yaml:"backend"`

	// Root is the directory for local, and the key prefix otherwise.
	Root string `yaml:"root"`

	Bucket    string `yaml:"bucket"`
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`

	// CommitTable enables the DynamoDB CURRENT pointer for s3.
	CommitTable string `yaml:"commit_table"`
}

// LoadConfig reads and validates the YAML file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes and validates a YAML configuration.
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{
		Storage: StorageConfig{Backend: "local", Root: "."},
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Representation.Attributes <= 0 {
		return errors.New("config: representation.attributes must be positive")
	}
	if c.Representation.Classes <= 0 {
		return errors.New("config: representation.classes must be positive")
	}
	if _, err := persistence.ParseCompression(c.Compression); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.level(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Storage.Backend {
	case "local":
	case "minio":
		if c.Storage.Endpoint == "" || c.Storage.Bucket == "" {
			return errors.New("config: minio needs storage.endpoint and storage.bucket")
		}
	case "s3":
		if c.Storage.Bucket == "" {
			return errors.New("config: s3 needs storage.bucket")
		}
	default:
		return fmt.Errorf("config: unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}

func (c *Config) level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelWarn, nil
	}
	err := l.UnmarshalText([]byte(c.LogLevel))
	return l, err
}

// OpenStore connects the configured backend.
func (c *Config) OpenStore(ctx context.Context) (blobstore.BlobStore, error) {
	sc := c.Storage
	switch sc.Backend {
	case "minio":
		access, secret := sc.AccessKey, sc.SecretKey
		if access == "" {
			access, secret = os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY")
		}
		client, err := minio.New(sc.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(access, secret, ""),
			Secure: sc.UseSSL,
			Region: sc.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("minio: %w", err)
		}
		return lcsminio.NewStore(client, sc.Bucket, sc.Root), nil

	case "s3":
		var loadOpts []func(*config.LoadOptions) error
		if sc.Region != "" {
			loadOpts = append(loadOpts, config.WithRegion(sc.Region))
		}
		awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("aws config: %w", err)
		}
		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if sc.Endpoint != "" {
				o.BaseEndpoint = aws.String(sc.Endpoint)
				o.UsePathStyle = true
			}
		})
		store := lcss3.NewStore(client, sc.Bucket, sc.Root)
		if sc.CommitTable == "" {
			return store, nil
		}
		return lcss3.NewCommitStore(store, dynamodb.NewFromConfig(awsCfg), sc.CommitTable, store.URI()), nil

	default:
		return blobstore.NewLocalStore(sc.Root), nil
	}
}
