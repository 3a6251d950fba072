// Where: internal/helpers/template_loader.go
// What: Template loader for local paths and s3:// locations.
// Why: Let pipelines instrument templates straight from artifact buckets.
package helpers

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the slice of the S3 client the loader needs.
type S3API interface {
	GetObject(ctx context.Context, input *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// TemplateLoader reads template content from a local path or an s3:// URI.
type TemplateLoader struct {
	// NewS3 builds the S3 client on first use; nil means DefaultS3Client.
	NewS3 func(ctx context.Context) (S3API, error)
}

// Read returns the template bytes at the given location.
func (l TemplateLoader) Read(ctx context.Context, location string) ([]byte, error) {
	bucket, key, ok := parseS3URI(location)
	if !ok {
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("read template: %w", err)
		}
		return data, nil
	}

	factory := l.NewS3
	if factory == nil {
		factory = DefaultS3Client
	}
	client, err := factory(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch s3://%s/%s: %w", bucket, key, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", bucket, key, err)
	}
	return data, nil
}

// parseS3URI splits s3://bucket/key into its parts. ok is false for anything
// that is not an s3 URI with both a bucket and a key.
func parseS3URI(location string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(location, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}
