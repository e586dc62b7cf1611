package storage

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// Credentials are the static object-store coordinates shared by both
// presigner backends.
type Credentials struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// AWSPresigner signs with the AWS SDK v2 using path-style addressing, which
// works for AWS S3 as well as MinIO, Hetzner and other S3 clones.
type AWSPresigner struct {
	client *s3.PresignClient
}

func NewAWSPresigner(ctx context.Context, c Credentials) (*AWSPresigner, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(c.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.AccessKeyID,
			c.SecretAccessKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(c.Endpoint)
		o.UsePathStyle = true
	})

	return &AWSPresigner{client: newS3PresignClient(client)}, nil
}

func (p *AWSPresigner) PresignPut(ctx context.Context, req PutRequest) (*Presigned, error) {
	in := &s3.PutObjectInput{
		Bucket:      aws.String(req.Bucket),
		Key:         aws.String(req.Key),
		ContentType: aws.String(req.ContentType),
	}
	if req.IfNoneMatch != "" {
		in.IfNoneMatch = aws.String(req.IfNoneMatch)
	}

	signed, err := presignPutObject(p.client, ctx, in,
		s3.WithPresignExpires(req.Expires),
		withSignedContentType(req.ContentType))
	if err != nil {
		return nil, err
	}

	return &Presigned{
		URL:     signed.URL,
		Headers: headersFromSigned(signed.SignedHeader, requiredHeaders(req)),
	}, nil
}

// withSignedContentType swaps the presigner for one that puts Content-Type on
// the request before signing. PresignPutObject leaves it out of
// X-Amz-SignedHeaders, so the URL would accept any body type.
func withSignedContentType(contentType string) func(*s3.PresignOptions) {
	return func(o *s3.PresignOptions) {
		if contentType == "" {
			return
		}
		next := o.Presigner
		if next == nil {
			next = v4.NewSigner()
		}
		o.Presigner = contentTypeSigner{next: next, contentType: contentType}
	}
}

type contentTypeSigner struct {
	next        s3.HTTPPresignerV4
	contentType string
}

func (s contentTypeSigner) PresignHTTP(
	ctx context.Context, creds aws.Credentials, r *http.Request,
	payloadHash string, service string, region string, signingTime time.Time,
	optFns ...func(*v4.SignerOptions),
) (string, http.Header, error) {
	if r.Header == nil {
		r.Header = http.Header{}
	}
	r.Header.Set("Content-Type", s.contentType)
	return s.next.PresignHTTP(ctx, creds, r, payloadHash, service, region, signingTime, optFns...)
}
