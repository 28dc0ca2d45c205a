package files

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/dmitrijs2005/gophdrop/internal/common"
	"github.com/dmitrijs2005/gophdrop/internal/server/models"
)

// s3API is the part of *s3.Client the store uses.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Config holds connection settings for an S3-compatible endpoint.
type S3Config struct {
	Region       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string
	Bucket       string
}

var loadDefaultAWSConfig = config.LoadDefaultConfig

// NewS3Client builds a path-style client for cfg, suitable for AWS as well
// as MinIO-like endpoints.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
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

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		}
		o.UsePathStyle = true
	}), nil
}

// S3Store keeps each entry as the object "<namespace key>/<name>" in one
// bucket. Namespaces are prefixes, so Ensure has nothing to create.
type S3Store struct {
	client s3API
	bucket string
}

func NewS3Store(client s3API, bucket string) *S3Store {
	return &S3Store{client: client, bucket: bucket}
}

func (s *S3Store) prefix(ns models.Namespace) string {
	return ns.Key() + "/"
}

func (s *S3Store) key(ns models.Namespace, name string) string {
	return s.prefix(ns) + name
}

func (s *S3Store) Ensure(ctx context.Context, ns models.Namespace) error {
	return nil
}

// Put buffers content so the SDK can sign a seekable body. IfAbsent relies
// on the conditional write (If-None-Match: *) of the endpoint.
func (s *S3Store) Put(ctx context.Context, ns models.Namespace, name string, content io.Reader, opts PutOptions) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return fmt.Errorf("read content: %w", err)
	}

	in := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key(ns, name)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if opts.IfAbsent {
		in.IfNoneMatch = aws.String("*")
	}

	if _, err := s.client.PutObject(ctx, in); err != nil {
		return s.mapErr(ns, name, "put", err)
	}
	return nil
}

func (s *S3Store) List(ctx context.Context, ns models.Namespace) ([]models.FileInfo, error) {
	prefix := s.prefix(ns)
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})

	result := []models.FileInfo{}
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", ns.Key(), err)
		}
		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			if name == "" {
				continue
			}
			result = append(result, models.FileInfo{
				Name:       name,
				Size:       aws.ToInt64(obj.Size),
				ModifiedAt: aws.ToTime(obj.LastModified),
			})
		}
	}
	sortByName(result)
	return result, nil
}

func (s *S3Store) Stat(ctx context.Context, ns models.Namespace, name string) (models.FileInfo, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(ns, name)),
	})
	if err != nil {
		return models.FileInfo{}, s.mapErr(ns, name, "head", err)
	}
	return models.FileInfo{
		Name:       name,
		Size:       aws.ToInt64(out.ContentLength),
		ModifiedAt: aws.ToTime(out.LastModified),
	}, nil
}

func (s *S3Store) Get(ctx context.Context, ns models.Namespace, name string) (io.ReadCloser, models.FileInfo, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(ns, name)),
	})
	if err != nil {
		return nil, models.FileInfo{}, s.mapErr(ns, name, "get", err)
	}
	return out.Body, models.FileInfo{
		Name:       name,
		Size:       aws.ToInt64(out.ContentLength),
		ModifiedAt: aws.ToTime(out.LastModified),
	}, nil
}

// Remove deletes the object only if it still carries the ETag seen by
// HeadObject. DeleteObject alone succeeds on missing keys, so a losing
// concurrent Remove would otherwise report success.
func (s *S3Store) Remove(ctx context.Context, ns models.Namespace, name string) error {
	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(ns, name)),
	})
	if err != nil {
		return s.mapErr(ns, name, "head", err)
	}

	in := &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(ns, name)),
	}
	if etag := aws.ToString(head.ETag); etag != "" {
		in.IfMatch = aws.String(etag)
	}

	if _, err := s.client.DeleteObject(ctx, in); err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "PreconditionFailed" {
			// removed or replaced since the head request
			return fmt.Errorf("%s/%s: %w", ns.Key(), name, common.ErrorNotFound)
		}
		return s.mapErr(ns, name, "delete", err)
	}
	return nil
}

func (s *S3Store) mapErr(ns models.Namespace, name, op string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return fmt.Errorf("%s/%s: %w", ns.Key(), name, common.ErrorNotFound)
		case "PreconditionFailed", "ConditionalRequestConflict":
			return fmt.Errorf("%s/%s: %w", ns.Key(), name, common.ErrorAlreadyExists)
		}
	}
	return fmt.Errorf("%s %s/%s: %w", op, ns.Key(), name, err)
}
