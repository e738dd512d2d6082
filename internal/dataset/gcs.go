package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/cenkalti/backoff/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"opportunity-insights-go/internal/logger"
)

// GCSSource reads week_NN prefixes from a bucket.
type GCSSource struct {
	client   *storage.Client
	bucket   string
	prefix   string
	maxRetry time.Duration
	log      *logger.Logger
}

// ClientOptions turns a credentials value into client options: inline JSON
// when it starts with "{", a key file path otherwise, default credentials
// when empty.
func ClientOptions(creds string) []option.ClientOption {
	creds = strings.TrimSpace(creds)
	if creds == "" {
		return nil
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return []option.ClientOption{option.WithCredentialsFile(creds)}
}

func NewGCSSource(ctx context.Context, bucket, prefix, creds string, maxRetry time.Duration, log *logger.Logger) (*GCSSource, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcs source: bucket is required")
	}
	client, err := storage.NewClient(ctx, ClientOptions(creds)...)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	return &GCSSource{
		client:   client,
		bucket:   bucket,
		prefix:   normalizePrefix(prefix),
		maxRetry: maxRetry,
		log:      log.Component("dataset.gcs"),
	}, nil
}

func normalizePrefix(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return ""
	}
	return p + "/"
}

func (s *GCSSource) Close() error {
	return s.client.Close()
}

func (s *GCSSource) retry(ctx context.Context, op func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = s.maxRetry
	return backoff.Retry(op, backoff.WithContext(bo, ctx))
}

func (s *GCSSource) ListWeeks(ctx context.Context) ([]int, error) {
	var names []string
	op := func() error {
		names = names[:0]
		it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: s.prefix, Delimiter: "/"})
		for {
			attrs, err := it.Next()
			if err == iterator.Done {
				return nil
			}
			if err != nil {
				s.log.WithError(err).Warn("list attempt failed")
				return err
			}
			if attrs.Prefix != "" {
				names = append(names, path.Base(strings.TrimSuffix(attrs.Prefix, "/")))
			}
		}
	}
	if err := s.retry(ctx, op); err != nil {
		return nil, fmt.Errorf("list gs://%s/%s: %w", s.bucket, s.prefix, err)
	}
	return weeksFromNames(names), nil
}

// Open downloads the whole object before returning so that a failed read can
// be retried from the start.
func (s *GCSSource) Open(ctx context.Context, week int, name string) (io.ReadCloser, error) {
	key := s.prefix + WeekDir(week) + "/" + name
	var data []byte
	op := func() error {
		r, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
		if errors.Is(err, storage.ErrObjectNotExist) {
			return backoff.Permanent(fmt.Errorf("%s: %w", key, ErrFileNotFound))
		}
		if err != nil {
			s.log.WithError(err).WithField("key", key).Warn("read attempt failed")
			return err
		}
		defer r.Close()
		data, err = io.ReadAll(r)
		return err
	}
	if err := s.retry(ctx, op); err != nil {
		if errors.Is(err, ErrFileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("read gs://%s/%s: %w", s.bucket, key, err)
	}
	s.log.WithField("key", key).WithField("bytes", len(data)).Debug("object downloaded")
	return io.NopCloser(bytes.NewReader(data)), nil
}
