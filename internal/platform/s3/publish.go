package s3

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"github.com/cplee/ecsdeploy/internal/assembly"
	"github.com/cplee/ecsdeploy/internal/util/async"
	"github.com/cplee/ecsdeploy/internal/util/naming"
	"github.com/cplee/ecsdeploy/internal/util/retry"
)

// DefaultConcurrency bounds parallel uploads.
const DefaultConcurrency = 8

// timestampFormat names each publish; it sorts lexically in time order.
const timestampFormat = "20060102T150405Z"

// Store is the subset of [Client] the publisher needs.
type Store interface {
	PutFile(ctx context.Context, bucket, key, path string) error
	PutObject(ctx context.Context, bucket, key string, data []byte) error
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
}

// Event reports upload progress. Events are delivered one at a time.
type Event struct {
	Key   string
	Size  int64
	Done  int
	Total int
	Err   error
}

// Pointer is the content of the latest pointer object.
type Pointer struct {
	App         string    `json:"app"`
	Prefix      string    `json:"prefix"`
	PublishedAt time.Time `json:"publishedAt"`
	Files       int       `json:"files"`
	Bytes       int64     `json:"bytes"`
}

// Result summarizes a completed publish.
type Result struct {
	Bucket string
	Prefix string
	Latest string
	Files  int
	Bytes  int64
}

// Publisher uploads cloud assemblies.
type Publisher struct {
	store       Store
	app         string
	concurrency int
	now         func() time.Time
	onEvent     func(Event)
	retryOpts   []retry.Option
}

// PublisherOption configures a [Publisher].
type PublisherOption func(*Publisher)

// WithConcurrency sets the number of parallel uploads.
func WithConcurrency(n int) PublisherOption {
	return func(p *Publisher) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithProgress registers a progress callback.
func WithProgress(fn func(Event)) PublisherOption {
	return func(p *Publisher) {
		p.onEvent = fn
	}
}

// WithClock overrides the clock used to name publishes.
func WithClock(now func() time.Time) PublisherOption {
	return func(p *Publisher) {
		p.now = now
	}
}

// WithRetryOptions tunes per-object retries.
func WithRetryOptions(opts ...retry.Option) PublisherOption {
	return func(p *Publisher) {
		p.retryOpts = append(p.retryOpts, opts...)
	}
}

// NewPublisher creates a publisher for app.
func NewPublisher(store Store, app string, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		store:       store,
		app:         app,
		concurrency: DefaultConcurrency,
		now:         time.Now,
		onEvent:     func(Event) {},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish uploads every file of the assembly in dir to
// <prefix>/<app>/<timestamp>/ and then rewrites the latest pointer.
// The pointer is only written when every upload succeeded.
func (p *Publisher) Publish(ctx context.Context, dir, bucket, prefix string) (*Result, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("bucket", bucket)

	files, err := assembly.Files(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("nothing to publish in %s", dir)
	}

	stamp := p.now().UTC()
	base := naming.PublishPrefix(prefix, p.app, stamp.Format(timestampFormat))
	log.Info("Publishing cloud assembly", "prefix", base, "files", len(files))

	var (
		mu   sync.Mutex
		done int
	)
	report := func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		done++
		ev.Done = done
		ev.Total = len(files)
		p.onEvent(ev)
	}

	retryOpts := append([]retry.Option{retry.WithRetryable(IsRetryable)}, p.retryOpts...)

	tasks := make([]async.Task, 0, len(files))
	for _, f := range files {
		key := path.Join(base, f.Key)
		tasks = append(tasks, async.Task{
			Name: key,
			Func: func(ctx context.Context) error {
				err := retry.WithExponentialBackoff(ctx, func(ctx context.Context) error {
					return p.store.PutFile(ctx, bucket, key, f.Path)
				}, retryOpts...)
				report(Event{Key: key, Size: f.Size, Err: err})
				if err != nil {
					log.Error(err, "Upload failed", "key", key)
					return err
				}
				log.V(1).Info("Uploaded", "key", key, "bytes", f.Size)
				return nil
			},
		})
	}

	if err := async.RunLimited(ctx, tasks, p.concurrency); err != nil {
		return nil, fmt.Errorf("failed to publish %s: %w", dir, err)
	}

	total := assembly.TotalSize(files)
	pointer := Pointer{
		App:         p.app,
		Prefix:      base,
		PublishedAt: stamp,
		Files:       len(files),
		Bytes:       total,
	}
	data, err := json.MarshalIndent(pointer, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode latest pointer: %w", err)
	}

	latest := naming.LatestPointer(prefix, p.app)
	if err := retry.WithExponentialBackoff(ctx, func(ctx context.Context) error {
		return p.store.PutObject(ctx, bucket, latest, data)
	}, retryOpts...); err != nil {
		return nil, fmt.Errorf("failed to write latest pointer: %w", err)
	}
	log.Info("Published cloud assembly", "prefix", base, "latest", latest, "bytes", total)

	return &Result{
		Bucket: bucket,
		Prefix: base,
		Latest: latest,
		Files:  len(files),
		Bytes:  total,
	}, nil
}

// Latest reads the current latest pointer. It returns nil without error
// when nothing has been published yet.
func (p *Publisher) Latest(ctx context.Context, bucket, prefix string) (*Pointer, error) {
	data, err := p.store.GetObject(ctx, bucket, naming.LatestPointer(prefix, p.app))
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var ptr Pointer
	if err := json.Unmarshal(data, &ptr); err != nil {
		return nil, fmt.Errorf("failed to decode latest pointer: %w", err)
	}
	return &ptr, nil
}
