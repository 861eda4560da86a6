package media

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/goowi/internal/client/config"
	"github.com/dmitrijs2005/goowi/internal/netx"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}

	uploadToPresignedURL = netx.UploadToPresignedURL

	now = time.Now
)

const contentTypeJPEG = "image/jpeg"

// StorageKey returns a fresh object key under media/YYYY/M/D/.
func StorageKey(t time.Time) string {
	return fmt.Sprintf("media/%d/%d/%d/%v.jpg", t.Year(), t.Month(), t.Day(), uuid.New())
}

// S3Host stores images in an S3-compatible bucket. Each upload presigns a
// PUT for a new key and sends the bytes to it.
type S3Host struct {
	cfg  config.MediaConfig
	http *http.Client

	mu      sync.Mutex
	presign *s3.PresignClient
}

var _ Host = (*S3Host)(nil)

func NewS3Host(cfg config.MediaConfig, hc *http.Client) *S3Host {
	return &S3Host{cfg: cfg, http: hc}
}

func (h *S3Host) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.presign != nil {
		return h.presign, nil
	}

	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(h.cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			h.cfg.AccessKey,
			h.cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if h.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(h.cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	h.presign = newS3PresignClient(client)
	return h.presign, nil
}

// Upload stores data under a new key and returns its public URL.
func (h *S3Host) Upload(ctx context.Context, name string, data []byte) (string, error) {
	pc, err := h.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	key := StorageKey(now())
	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(h.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentTypeJPEG),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", fmt.Errorf("presign put: %w", err)
	}

	if err := uploadToPresignedURL(ctx, h.http, req.URL, contentTypeJPEG, data); err != nil {
		return "", err
	}
	return h.PublicURL(key), nil
}

// PublicURL maps a key to the URL it is readable at.
func (h *S3Host) PublicURL(key string) string {
	base := strings.TrimRight(h.cfg.PublicBaseURL, "/")
	if base == "" {
		base = strings.TrimRight(h.cfg.Endpoint, "/") + "/" + h.cfg.Bucket
	}
	return base + "/" + key
}
