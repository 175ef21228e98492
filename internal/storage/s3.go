package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/handiism/catalog-photo-downloader/internal/config"
	ioutils "github.com/handiism/catalog-photo-downloader/internal/io"
)

// PutObjectAPI is the subset of the S3 client used by the S3 store.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 stores photos as objects in a bucket.
//
// Objects are buffered in memory and uploaded with a single PutObject call
// on Commit, so an aborted transfer never reaches the bucket.
type S3 struct {
	client   PutObjectAPI
	bucket   string
	prefix   string
	sanitize bool
}

// NewS3 creates an S3 store from cfg using the default AWS credential chain,
// or static credentials when both keys are set.
func NewS3(ctx context.Context, cfg config.S3Config, sanitize bool) (*S3, error) {
	awsCfg, err := buildAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return NewS3WithClient(client, cfg.Bucket, cfg.Prefix, sanitize), nil
}

// NewS3WithClient creates an S3 store around an existing client.
func NewS3WithClient(client PutObjectAPI, bucket, prefix string, sanitize bool) *S3 {
	return &S3{client: client, bucket: bucket, prefix: prefix, sanitize: sanitize}
}

// Target returns the s3:// URL name will be uploaded to.
func (s *S3) Target(name string) (string, error) {
	key, err := s.key(name)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

// Create starts a new buffered object for name.
func (s *S3) Create(ctx context.Context, name string) (Object, error) {
	key, err := s.key(name)
	if err != nil {
		return nil, err
	}
	return &s3Object{ctx: ctx, store: s, key: key}, nil
}

// Location returns the bucket URL including the prefix.
func (s *S3) Location() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.prefix)
}

func (s *S3) key(name string) (string, error) {
	if s.sanitize {
		name = ioutils.SanitizeFileName(name)
	}
	if _, err := ioutils.ResolveWithin("", name); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidName, err)
	}
	return s.prefix + strings.TrimPrefix(path.Clean("/"+name), "/"), nil
}

type s3Object struct {
	ctx   context.Context
	store *S3
	key   string
	buf   bytes.Buffer
}

func (o *s3Object) Write(p []byte) (int, error) {
	return o.buf.Write(p)
}

func (o *s3Object) Commit() error {
	data := o.buf.Bytes()
	_, err := o.store.client.PutObject(o.ctx, &s3.PutObjectInput{
		Bucket:      aws.String(o.store.bucket),
		Key:         aws.String(o.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(http.DetectContentType(data)),
	})
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}
	return nil
}

func (o *s3Object) Abort() error {
	o.buf.Reset()
	return nil
}

func buildAWSConfig(ctx context.Context, cfg config.S3Config) (aws.Config, error) {
	var optFns []func(*awsconfig.LoadOptions) error

	if cfg.Region != "" {
		optFns = append(optFns, awsconfig.WithRegion(cfg.Region))
	}

	// Use static credentials if provided
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		optFns = append(optFns, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		))
	}

	return awsconfig.LoadDefaultConfig(ctx, optFns...)
}
