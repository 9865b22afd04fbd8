package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/bgcdb/clusterq/blobstore"
	miniostore "github.com/bgcdb/clusterq/blobstore/minio"
	s3store "github.com/bgcdb/clusterq/blobstore/s3"
)

// location is a parsed --dataset value.
type location struct {
	scheme string
	host   string // minio endpoint
	bucket string
	prefix string
	path   string // local directory
}

// parseLocation accepts file://dir/prefix, s3://bucket/prefix,
// minio://endpoint/bucket/prefix or a plain local path.
func parseLocation(raw string) (location, error) {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		scheme, rest = "file", raw
	}
	switch scheme {
	case "file":
		if rest == "" {
			return location{}, fmt.Errorf("empty dataset path")
		}
		dir, prefix := rest, ""
		if info, err := os.Stat(rest); err != nil || !info.IsDir() {
			dir, prefix = filepath.Dir(rest), filepath.Base(rest)
		}
		return location{scheme: scheme, path: dir, prefix: prefix}, nil
	case "s3":
		bucket, prefix, _ := strings.Cut(rest, "/")
		if bucket == "" {
			return location{}, fmt.Errorf("s3 location %q has no bucket", raw)
		}
		return location{scheme: scheme, bucket: bucket, prefix: prefix}, nil
	case "minio":
		parts := strings.SplitN(rest, "/", 3)
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return location{}, fmt.Errorf("minio location %q must be minio://endpoint/bucket[/prefix]", raw)
		}
		loc := location{scheme: scheme, host: parts[0], bucket: parts[1]}
		if len(parts) == 3 {
			loc.prefix = parts[2]
		}
		return loc, nil
	default:
		return location{}, fmt.Errorf("unsupported dataset scheme %q", scheme)
	}
}

// minioAuth holds MinIO connection settings.
type minioAuth struct {
	accessKey string
	secretKey string
	secure    bool
}

// open returns the blob store and the shard prefix within it.
func (l location) open(ctx context.Context, auth minioAuth) (blobstore.BlobStore, string, error) {
	switch l.scheme {
	case "s3":
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load AWS config: %w", err)
		}
		return s3store.NewStore(s3.NewFromConfig(cfg), l.bucket, ""), l.prefix, nil
	case "minio":
		client, err := minio.New(l.host, &minio.Options{
			Creds:  credentials.NewStaticV4(auth.accessKey, auth.secretKey, ""),
			Secure: auth.secure,
		})
		if err != nil {
			return nil, "", fmt.Errorf("failed to create minio client: %w", err)
		}
		return miniostore.NewStore(client, l.bucket, ""), l.prefix, nil
	default:
		return blobstore.NewLocalStore(l.path), l.prefix, nil
	}
}
