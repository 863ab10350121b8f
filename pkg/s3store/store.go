// Package s3store keeps snapshots as JSON objects in an S3-compatible bucket (AWS S3 or MinIO)
package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
	"github.com/jakechorley/seat-arranger/pkg/db"
)

// DefaultPrefix is the key prefix snapshots are stored under
const DefaultPrefix = "snapshots/"

const objectSuffix = ".json"

// Config holds construction parameters. Credentials fall back to the default chain when the
// static keys are empty.
type Config struct {
	Bucket          string
	Region          string
	Endpoint        string // optional; enables a custom endpoint such as MinIO
	PathStyle       bool
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
}

// Store implements db.SnapshotStore on S3
type Store struct {
	client *s3.Client
	bucket string
	prefix string
}

var _ db.SnapshotStore = (*Store)(nil)

// New creates an S3 snapshot store from Config
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return newWithClient(client, cfg.Bucket, cfg.Prefix), nil
}

func newWithClient(client *s3.Client, bucket, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &Store{client: client, bucket: bucket, prefix: prefix}
}

// objectKey maps a slot name to its object key
func (s *Store) objectKey(slot string) string {
	return s.prefix + slot + objectSuffix
}

// slotName maps an object key back to its slot name, reporting false for foreign keys
func (s *Store) slotName(key string) (string, bool) {
	if !strings.HasPrefix(key, s.prefix) || !strings.HasSuffix(key, objectSuffix) {
		return "", false
	}
	name := strings.TrimSuffix(strings.TrimPrefix(key, s.prefix), objectSuffix)
	if db.ValidateSlotName(name) != nil {
		return "", false
	}
	return name, true
}

func (s *Store) SaveSnapshot(ctx context.Context, slot string, snapshot *model.Snapshot) error {
	if err := db.ValidateSlotName(slot); err != nil {
		return err
	}
	payload, err := db.MarshalSnapshot(snapshot)
	if err != nil {
		return err
	}

	key := s.objectKey(slot)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to put %s: %w", key, err)
	}
	return nil
}

func (s *Store) LoadSnapshot(ctx context.Context, slot string) (*model.Snapshot, error) {
	if err := db.ValidateSlotName(slot); err != nil {
		return nil, err
	}

	key := s.objectKey(slot)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &key})
	if isNotFound(err) {
		return nil, fmt.Errorf("%w: %s", db.ErrSlotNotFound, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer func() { _ = out.Body.Close() }()

	payload, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return db.UnmarshalSnapshot(payload)
}

func (s *Store) ListSlots(ctx context.Context) ([]db.SlotInfo, error) {
	slots := make([]db.SlotInfo, 0)
	var token *string
	for {
		out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{Bucket: &s.bucket, Prefix: &s.prefix, ContinuationToken: token})
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", s.prefix, err)
		}
		for _, obj := range out.Contents {
			name, ok := s.slotName(aws.ToString(obj.Key))
			if !ok {
				continue
			}
			slots = append(slots, db.SlotInfo{Name: name, SavedAt: aws.ToTime(obj.LastModified).UTC()})
		}
		if out.IsTruncated != nil && *out.IsTruncated && out.NextContinuationToken != nil {
			token = out.NextContinuationToken
			continue
		}
		break
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Name < slots[j].Name })
	return slots, nil
}

func (s *Store) DeleteSlot(ctx context.Context, slot string) error {
	if err := db.ValidateSlotName(slot); err != nil {
		return err
	}

	// DeleteObject succeeds for missing keys, so check existence first
	key := s.objectKey(slot)
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: &s.bucket, Key: &key})
	if isNotFound(err) {
		return fmt.Errorf("%w: %s", db.ErrSlotNotFound, slot)
	}
	if err != nil {
		return fmt.Errorf("failed to head %s: %w", key, err)
	}

	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: &s.bucket, Key: &key}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Close is a no-op; the S3 client holds no resources that need releasing
func (s *Store) Close() error {
	return nil
}

func isNotFound(err error) bool {
	var responseErr *awshttp.ResponseError
	return errors.As(err, &responseErr) && responseErr.HTTPStatusCode() == http.StatusNotFound
}
