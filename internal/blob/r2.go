package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// r2URLScheme marks record URLs that point at bucket objects rather than
// locally served files.
const r2URLScheme = "r2://"

// presignTTL bounds how long a handed-out download link stays valid.
const presignTTL = 15 * time.Minute

// R2 stores uploads in a Cloudflare R2 (S3-compatible) bucket and serves
// them through presigned GET URLs.
type R2 struct {
	client *s3.Client
	bucket string
}

// R2Config carries the static credentials and bucket coordinates.
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
}

// NewR2 initializes the client against the account's R2 endpoint.
func NewR2(cfg R2Config) *R2 {
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)

	awsCfg := aws.Config{
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Region:      cfg.Region,
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})
	return &R2{client: client, bucket: cfg.BucketName}
}

func (r *R2) Save(ctx context.Context, name string, src io.Reader) (*Object, error) {
	key := uuid.NewString() + "-" + sanitizeName(name)

	// S3 needs a known length; uploads already arrive spooled by the
	// multipart reader, so buffering here is bounded by the upload cap.
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return nil, fmt.Errorf("put object: %w", err)
	}

	return &Object{URL: r2URLScheme + key, Size: int64(len(data))}, nil
}

// DownloadURL presigns a GET for the object behind a stored URL.
func (r *R2) DownloadURL(ctx context.Context, storedURL string) (string, error) {
	key, ok := strings.CutPrefix(storedURL, r2URLScheme)
	if !ok {
		return "", fmt.Errorf("not an r2 object url: %s", storedURL)
	}
	presigner := s3.NewPresignClient(r.client)
	req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func (r *R2) Remove(ctx context.Context, storedURL string) error {
	key, ok := strings.CutPrefix(storedURL, r2URLScheme)
	if !ok {
		return nil
	}
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	return err
}
