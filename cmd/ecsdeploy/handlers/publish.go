package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/cplee/ecsdeploy/internal/assembly"
	"github.com/cplee/ecsdeploy/internal/platform/s3"
	"github.com/cplee/ecsdeploy/internal/ui/tui"
)

// bucketStore is what publishing needs from the S3 client.
type bucketStore interface {
	s3.Store
	EnsureBucket(ctx context.Context, bucket string) error
	BucketExists(ctx context.Context, bucket string) (bool, error)
}

// Factory function variables for publish - can be replaced in tests.
var (
	// newBucketStore creates the S3 client.
	newBucketStore = func(ctx context.Context, opts s3.Options) (bucketStore, error) {
		client, err := s3.NewClient(ctx, opts)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	// runPublishTUI renders upload progress in an interactive terminal.
	runPublishTUI = tui.RunPublishTUI
)

// PublishOptions holds the publish flags.
type PublishOptions struct {
	ConfigPath   string
	Bucket       string
	Prefix       string
	Dir          string
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	PathStyle    bool
	CreateBucket bool
	Concurrency  int
}

// Publish uploads the synthesized cloud assembly to S3 and moves the latest pointer.
func Publish(ctx context.Context, opts PublishOptions) error {
	log := logr.FromContextOrDiscard(ctx)

	if opts.Bucket == "" {
		return errors.New("--bucket is required")
	}
	if opts.Dir == "" {
		opts.Dir = DefaultAssemblyDir
	}

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Region == "" {
		opts.Region = cfg.Pipeline.Region
	}

	files, err := assembly.Files(opts.Dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("nothing to publish in %s (run 'ecsdeploy synth' first)", opts.Dir)
	}

	store, err := newBucketStore(ctx, s3.Options{
		Region:    opts.Region,
		Endpoint:  opts.Endpoint,
		AccessKey: opts.AccessKey,
		SecretKey: opts.SecretKey,
		PathStyle: opts.PathStyle,
	})
	if err != nil {
		return err
	}

	if err := prepareBucket(ctx, store, opts.Bucket, opts.CreateBucket); err != nil {
		return err
	}

	publisherOpts := []s3.PublisherOption{}
	if opts.Concurrency > 0 {
		publisherOpts = append(publisherOpts, s3.WithConcurrency(opts.Concurrency))
	}

	var result *s3.Result
	if isInteractiveTTY() {
		err = runPublishTUI(ctx, cfg.Name, opts.Bucket, func(ctx context.Context, send tui.Sender) (string, error) {
			send(tui.StartedMsg{Prefix: opts.Prefix, Files: len(files), Bytes: assembly.TotalSize(files)})
			p := s3.NewPublisher(store, cfg.Name, append(publisherOpts, s3.WithProgress(func(ev s3.Event) {
				send(tui.UploadMsg{Key: ev.Key, Size: ev.Size, Err: ev.Err})
			}))...)
			res, err := p.Publish(ctx, opts.Dir, opts.Bucket, opts.Prefix)
			if err != nil {
				return "", err
			}
			result = res
			return res.Latest, nil
		})
	} else {
		p := s3.NewPublisher(store, cfg.Name, append(publisherOpts, s3.WithProgress(func(ev s3.Event) {
			if ev.Err == nil {
				log.Info("Uploaded", "key", ev.Key, "progress", fmt.Sprintf("%d/%d", ev.Done, ev.Total))
			}
		}))...)
		result, err = p.Publish(ctx, opts.Dir, opts.Bucket, opts.Prefix)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Published %d file(s), %d bytes\n", result.Files, result.Bytes)
	fmt.Printf("  assembly: s3://%s/%s/\n", result.Bucket, result.Prefix)
	fmt.Printf("  latest:   s3://%s/%s\n", result.Bucket, result.Latest)
	return nil
}

func prepareBucket(ctx context.Context, store bucketStore, bucket string, create bool) error {
	if create {
		if err := store.EnsureBucket(ctx, bucket); err != nil {
			return fmt.Errorf("failed to ensure bucket %s: %w", bucket, err)
		}
		return nil
	}

	exists, err := store.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist (use --create-bucket to create it)", bucket)
	}
	return nil
}
