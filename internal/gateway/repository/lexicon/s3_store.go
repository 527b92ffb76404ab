package lexicon

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"sarf/internal/lexicon"
)

type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// S3Store keeps the two line files as objects in a bucket.
type S3Store struct {
	client     *minio.Client
	bucketName string
	region     string
	prefix     string
	initOnce   sync.Once
	initErr    error
}

func NewS3Store(cfg S3Config) (*S3Store, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	return &S3Store{
		client:     client,
		bucketName: bucket,
		region:     region,
		prefix:     objectPrefix(cfg.Prefix),
	}, nil
}

func (s *S3Store) ensureBucket(ctx context.Context) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("store is nil")
	}
	s.initOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucketName)
		if err != nil {
			s.initErr = err
			return
		}
		if exists {
			return
		}
		s.initErr = s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{Region: s.region})
	})
	return s.initErr
}

func (s *S3Store) Load(ctx context.Context) (lexicon.Snapshot, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return lexicon.Snapshot{}, fmt.Errorf("ensure bucket: %w", err)
	}
	var snap lexicon.Snapshot
	raw, err := s.get(ctx, s.prefix+"roots.txt")
	if err != nil {
		return lexicon.Snapshot{}, err
	}
	if snap.Roots, err = ParseRoots(bytes.NewReader(raw)); err != nil {
		return lexicon.Snapshot{}, err
	}
	raw, err = s.get(ctx, s.prefix+"schemes.txt")
	if err != nil {
		return lexicon.Snapshot{}, err
	}
	if snap.Schemes, err = ParseSchemes(bytes.NewReader(raw)); err != nil {
		return lexicon.Snapshot{}, err
	}
	return snap, nil
}

func (s *S3Store) Save(ctx context.Context, snap lexicon.Snapshot) error {
	if err := s.ensureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}
	var roots, schemes bytes.Buffer
	if err := WriteRoots(&roots, snap.Roots); err != nil {
		return err
	}
	if err := WriteSchemes(&schemes, snap.Schemes); err != nil {
		return err
	}
	if err := s.put(ctx, s.prefix+"roots.txt", roots.Bytes()); err != nil {
		return fmt.Errorf("save roots: %w", err)
	}
	if err := s.put(ctx, s.prefix+"schemes.txt", schemes.Bytes()); err != nil {
		return fmt.Errorf("save schemes: %w", err)
	}
	return nil
}

// get returns the object body, or nil when the object does not exist.
func (s *S3Store) get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (s *S3Store) put(ctx context.Context, key string, content []byte) error {
	_, err := s.client.PutObject(ctx, s.bucketName, key, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
	})
	return err
}

func objectPrefix(prefix string) string {
	p := strings.Trim(strings.TrimSpace(prefix), "/")
	if p == "" {
		return ""
	}
	return p + "/"
}
