package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/bgcdb/clusterq/blobstore"
	"github.com/bgcdb/clusterq/codec"
	"github.com/bgcdb/clusterq/resource"
	"golang.org/x/sync/errgroup"
)

type loadOptions struct {
	codec      codec.Codec
	controller *resource.Controller
	logger     *slog.Logger
}

// LoadOption configures Load and Save.
type LoadOption func(*loadOptions)

// WithCodec sets the JSON codec. Default: codec.Default.
func WithCodec(c codec.Codec) LoadOption {
	return func(o *loadOptions) {
		o.codec = c
	}
}

// WithController bounds shard fetches and IO bandwidth.
// Default: resource.NewController(resource.Config{}).
func WithController(rc *resource.Controller) LoadOption {
	return func(o *loadOptions) {
		o.controller = rc
	}
}

// WithLogger sets the logger for per-shard progress.
func WithLogger(l *slog.Logger) LoadOption {
	return func(o *loadOptions) {
		o.logger = l
	}
}

func applyLoadOptions(opts []LoadOption) loadOptions {
	o := loadOptions{
		codec: codec.Default,
	}
	for _, fn := range opts {
		fn(&o)
	}
	if o.controller == nil {
		o.controller = resource.NewController(resource.Config{})
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Shards returns the sorted dataset shard names under prefix.
func Shards(ctx context.Context, bs blobstore.BlobStore, prefix string) ([]string, error) {
	names, err := bs.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", prefix, err)
	}
	shards := names[:0]
	for _, name := range names {
		if _, ok := CompressionFor(name); ok {
			shards = append(shards, name)
		}
	}
	return shards, nil
}

// Load reads every shard under prefix and merges them in name order.
func Load(ctx context.Context, bs blobstore.BlobStore, prefix string, opts ...LoadOption) (*Dataset, error) {
	o := applyLoadOptions(opts)
	start := time.Now()

	names, err := Shards(ctx, bs, prefix)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w under %q", ErrNoShards, prefix)
	}

	shards := make([]*Dataset, len(names))
	g, gctx := errgroup.WithContext(ctx)
	var acquireErr error
	for i, name := range names {
		if err := o.controller.AcquireFetch(gctx); err != nil {
			acquireErr = err
			break
		}
		g.Go(func() error {
			defer o.controller.ReleaseFetch()
			ds, err := loadShard(gctx, bs, name, o)
			if err != nil {
				return err
			}
			shards[i] = ds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if acquireErr != nil {
		return nil, acquireErr
	}

	ds, err := Merge(shards...)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("dataset loaded",
		slog.String("prefix", prefix),
		slog.Int("shards", len(names)),
		slog.Int("regions", len(ds.Regions)),
		slog.Duration("duration", time.Since(start)))
	return ds, nil
}

func loadShard(ctx context.Context, bs blobstore.BlobStore, name string, o loadOptions) (*Dataset, error) {
	rc, err := bs.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open shard %s: %w", name, err)
	}
	defer func() { _ = rc.Close() }()

	var r io.Reader = resource.NewRateLimitedReader(ctx, rc, o.controller)
	ds, err := DecodeReader(name, r, o.codec)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("shard loaded", slog.String("name", name), slog.Int("regions", len(ds.Regions)))
	return ds, nil
}

// Save encodes ds and writes it to bs under name; the compression follows the name suffix.
func Save(ctx context.Context, bs blobstore.BlobStore, name string, ds *Dataset, opts ...LoadOption) error {
	o := applyLoadOptions(opts)
	data, err := Marshal(name, ds, o.codec)
	if err != nil {
		return err
	}
	if err := bs.Put(ctx, name, data); err != nil {
		return fmt.Errorf("put %s: %w", name, err)
	}
	return nil
}
