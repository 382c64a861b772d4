package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/iliyamo/studio-showcase/internal/config"
)

// Minio stores files as objects in one bucket.
type Minio struct {
	client    *mclient.Client
	bucket    string
	publicURL string
}

// NewMinio connects to the endpoint and checks that the bucket exists.
// The endpoint may carry a scheme; https turns on TLS.
func NewMinio(ctx context.Context, cfg config.StorageConfig) (*Minio, error) {
	const op = "storage.NewMinio"

	endpoint := cfg.MinioEndpoint
	secure := strings.HasPrefix(endpoint, "https://")
	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return nil, fmt.Errorf("%s: bucket %q does not exist", op, cfg.MinioBucket)
	}

	public := strings.TrimRight(cfg.MinioPublicURL, "/")
	if public == "" {
		scheme := "http"
		if secure {
			scheme = "https"
		}
		public = scheme + "://" + endpoint
	}
	return &Minio{client: client, bucket: cfg.MinioBucket, publicURL: public}, nil
}

func (m *Minio) Save(ctx context.Context, name string, r io.Reader, contentType string) (Object, error) {
	info, err := m.client.PutObject(ctx, m.bucket, name, r, -1, mclient.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return Object{}, err
	}
	return Object{Path: m.objectURL(name), Size: info.Size}, nil
}

func (m *Minio) Remove(ctx context.Context, name string) error {
	return m.client.RemoveObject(ctx, m.bucket, name, mclient.RemoveObjectOptions{})
}

func (m *Minio) objectURL(name string) string {
	return m.publicURL + "/" + m.bucket + "/" + url.PathEscape(name)
}

var (
	_ FileStore = (*Minio)(nil)
	_ FileStore = (*Local)(nil)
)
