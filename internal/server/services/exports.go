package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/savvysnip/internal/common"
	sc "github.com/dmitrijs2005/savvysnip/internal/server/config"
	"github.com/dmitrijs2005/savvysnip/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// Export describes an uploaded category bundle.
type Export struct {
	Key       string
	URL       string
	ExpiresAt time.Time
}

type exportSnip struct {
	Title     string    `json:"title"`
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}

type exportBundle struct {
	Category   string       `json:"category"`
	Snips      []exportSnip `json:"snips"`
	ExportedAt time.Time    `json:"exported_at"`
}

type ExportService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	now         func() time.Time
}

func NewExportService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *ExportService {
	return &ExportService{db: db, repomanager: m, config: cfg, now: time.Now}
}

// ExportStorageKey returns the object key of a new export made by userID at t.
func ExportStorageKey(userID string, t time.Time) string {
	return fmt.Sprintf("exports/%s/%04d/%02d/%02d/%s.json", userID, t.Year(), t.Month(), t.Day(), uuid.New())
}

func (s *ExportService) getClients(ctx context.Context) (*s3.Client, *s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, newS3PresignClient(client), nil
}

// ExportCategory uploads a JSON bundle of the category and its snips and
// returns a presigned download link.
func (s *ExportService) ExportCategory(ctx context.Context, userID, categoryID string) (*Export, error) {
	category, err := s.repomanager.Categories(s.db).Get(ctx, userID, categoryID)
	if err != nil {
		return nil, notFound(err, common.ErrCategoryNotFound)
	}

	list, err := s.repomanager.Snips(s.db).ListByCategory(ctx, category.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing snips: %w", err)
	}

	now := s.now().UTC()
	bundle := exportBundle{Category: category.Name, Snips: make([]exportSnip, 0, len(list)), ExportedAt: now}
	for _, sn := range list {
		bundle.Snips = append(bundle.Snips, exportSnip{Title: sn.Title, Code: sn.Code, Timestamp: sn.Timestamp})
	}

	body, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding export: %w", err)
	}

	client, presignClient, err := s.getClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("error creating s3 client: %w", err)
	}

	bucket := s.config.S3Bucket
	key := ExportStorageKey(userID, now)

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("error uploading export: %w", err)
	}

	ttl := s.config.ExportLinkValidityDuration
	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return nil, fmt.Errorf("error presigning export: %w", err)
	}

	return &Export{Key: key, URL: req.URL, ExpiresAt: now.Add(ttl)}, nil
}
