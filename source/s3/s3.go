// Package s3 pulls exposures from an S3-compatible archive bucket.
package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/rtrio/fitsindex/source"
)

type S3Source struct {
	client *minio.Client
	bucket string
	prefix string
}

// Options configures the connection to the archive.
type Options struct {
	// Endpoint of the S3-compatible server (host:port)
	Endpoint string
	// Static credentials
	AccessKey string
	SecretKey string
	// UseSSL enables TLS transport
	UseSSL bool

	// Bucket holding the exposures
	Bucket string
	// Prefix limits the scan to one directory of the bucket
	Prefix string
}

// New creates a source reading from the configured bucket.
func New(opts Options) (*S3Source, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3: bucket name required")
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("s3: connect %s: %w", opts.Endpoint, err)
	}

	prefix := opts.Prefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	return &S3Source{client: client, bucket: opts.Bucket, prefix: prefix}, nil
}

func (ss *S3Source) Name() string {
	return "s3"
}

func (ss *S3Source) List(ctx context.Context) ([]source.Entry, error) {
	var entries []source.Entry

	objects := ss.client.ListObjects(ctx, ss.bucket, minio.ListObjectsOptions{
		Prefix:    ss.prefix,
		Recursive: true,
	})

	for obj := range objects {
		if obj.Err != nil {
			return nil, fmt.Errorf("s3: list %s: %w", ss.bucket, obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") || !source.IsFITS(obj.Key) {
			continue
		}

		entries = append(entries, source.Entry{
			Path: strings.TrimPrefix(obj.Key, ss.prefix),
			Size: obj.Size,
		})
	}

	return entries, nil
}

func (ss *S3Source) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	obj, err := ss.client.GetObject(ctx, ss.bucket, ss.prefix+path, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("s3: get %s: %w", path, err)
	}
	return obj, nil
}
