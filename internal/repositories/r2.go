package repositories

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	log "github.com/sirupsen/logrus"

	"github.com/rohits-web03/sharevault/internal/config"
)

// R2Store keeps file bodies in an S3-compatible bucket (Cloudflare R2 by
// default). The client is safe for concurrent use and shared by all requests.
type R2Store struct {
	client        *s3.Client
	bucket        string
	endpoint      string
	publicBaseURL string
}

// NewR2Store builds the client using static credentials and a custom endpoint.
func NewR2Store(cfg config.R2Config, l *log.Entry) (*R2Store, error) {
	if cfg.BucketName == "" {
		return nil, errors.New("r2: bucket name is empty")
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		if cfg.AccountID == "" {
			return nil, errors.New("r2: account id or endpoint is required")
		}
		endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	}

	awsCfg := aws.Config{
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Region:      cfg.Region,
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
		// R2 and most S3 clones reject the SDK's default trailing checksums.
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})

	l.WithFields(log.Fields{"endpoint": endpoint, "bucket": cfg.BucketName}).Info("successfully initialized R2 client")

	return &R2Store{
		client:        client,
		bucket:        cfg.BucketName,
		endpoint:      strings.TrimSuffix(endpoint, "/"),
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

func (s *R2Store) Put(ctx context.Context, name string, body io.Reader, opts PutOptions) error {
	in := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(name),
		Body:        body,
		ContentType: aws.String(opts.ContentType),
		Metadata:    opts.Metadata,
	}
	if opts.Size >= 0 {
		in.ContentLength = aws.Int64(opts.Size)
	}
	var optFns []func(*s3.Options)
	if _, ok := body.(io.Seeker); !ok {
		// The signer can't hash a body it can't rewind, so send it unsigned.
		optFns = append(optFns, s3.WithAPIOptions(v4.SwapComputePayloadSHA256ForUnsignedPayloadMiddleware))
	}
	if _, err := s.client.PutObject(ctx, in, optFns...); err != nil {
		return fmt.Errorf("put object %q: %w", name, err)
	}
	return nil
}

// Open streams the object body; the caller must close it. Cancelling ctx
// aborts the underlying HTTP response.
func (s *R2Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("get object %q: %w", name, err)
	}
	return out.Body, nil
}

func (s *R2Store) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		if isNotFound(err) {
			return ErrBlobNotFound
		}
		return fmt.Errorf("delete object %q: %w", name, err)
	}
	return nil
}

// Stat returns the object's size and content type from a HEAD request.
func (s *R2Store) Stat(ctx context.Context, name string) (*BlobInfo, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("head object %q: %w", name, err)
	}
	return &BlobInfo{
		Size:        aws.ToInt64(out.ContentLength),
		ContentType: aws.ToString(out.ContentType),
	}, nil
}

// URL is the public retrieval locator of object name.
func (s *R2Store) URL(name string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + url.PathEscape(name)
	}
	return s.endpoint + "/" + s.bucket + "/" + url.PathEscape(name)
}

func isNotFound(err error) bool {
	var nsk *s3types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var nf *s3types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var re *awshttp.ResponseError
	return errors.As(err, &re) && re.HTTPStatusCode() == http.StatusNotFound
}
