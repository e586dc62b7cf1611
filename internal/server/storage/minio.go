package storage

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	mcreds "github.com/minio/minio-go/v7/pkg/credentials"
)

var minioPresignHeader = func(c *minio.Client, ctx context.Context, method, bucket, key string, expires time.Duration, params url.Values, extra http.Header) (*url.URL, error) {
	return c.PresignHeader(ctx, method, bucket, key, expires, params, extra)
}

// MinioPresigner signs with minio-go. The region is always set so that
// presigning never performs a bucket-location lookup.
type MinioPresigner struct {
	client *minio.Client
}

func NewMinioPresigner(c Credentials) (*MinioPresigner, error) {
	endpoint, secure, err := normaliseEndpoint(c.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("minio endpoint: %w", err)
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:        mcreds.NewStaticV4(c.AccessKeyID, c.SecretAccessKey, ""),
		Secure:       secure,
		Region:       c.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	return &MinioPresigner{client: client}, nil
}

func (p *MinioPresigner) PresignPut(ctx context.Context, req PutRequest) (*Presigned, error) {
	headers := requiredHeaders(req)

	extra := make(http.Header, len(headers))
	for k, v := range headers {
		extra.Set(k, v)
	}

	u, err := minioPresignHeader(p.client, ctx, http.MethodPut, req.Bucket, req.Key, req.Expires, nil, extra)
	if err != nil {
		return nil, err
	}

	return &Presigned{URL: u.String(), Headers: headers}, nil
}

// normaliseEndpoint accepts "host:port" as well as "http(s)://host:port" and
// returns the bare host plus whether TLS should be used.
func normaliseEndpoint(raw string) (endpoint string, secure bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false, fmt.Errorf("empty endpoint")
	}

	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", false, err
		}
		if u.Host == "" {
			return "", false, fmt.Errorf("invalid endpoint")
		}
		if u.Path != "" && u.Path != "/" {
			return "", false, fmt.Errorf("endpoint must not contain a path")
		}
		return u.Host, u.Scheme == "https", nil
	}

	return raw, true, nil
}
