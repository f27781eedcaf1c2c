package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/onkernel/sandboxd/lib/descriptor"
	"github.com/onkernel/sandboxd/lib/engine"
	"github.com/onkernel/sandboxd/lib/paths"
	"github.com/onkernel/sandboxd/lib/runtimes"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"
)

// Manager handles image lifecycle operations
type Manager interface {
	ListImages(ctx context.Context) ([]Image, error)
	// CreateImage validates the descriptor and queues a build. It returns
	// immediately; an image already built from the same descriptor is
	// returned as-is.
	CreateImage(ctx context.Context, req CreateImageRequest) (*Image, error)
	GetImage(ctx context.Context, name string) (*Image, error)
	DeleteImage(ctx context.Context, name string) error
	GetBuildLogs(ctx context.Context, name string) ([]byte, error)
	// GetDescriptor returns the descriptor the image is built from
	GetDescriptor(ctx context.Context, name string) (*descriptor.Descriptor, error)
	// Subscribe streams build progress until the build finishes or ctx is done
	Subscribe(ctx context.Context, name string) (<-chan ProgressUpdate, error)
	// WaitForImage blocks until the build finishes
	WaitForImage(ctx context.Context, name string) (*Image, error)
	// BuildAll builds every catalogue runtime and waits for the results.
	// The map holds one entry per runtime; nil means ready.
	BuildAll(ctx context.Context) (map[string]error, error)
	// RecoverBuilds re-queues builds interrupted by a restart
	RecoverBuilds(ctx context.Context)
}

// Config holds configuration for the image manager
type Config struct {
	MaxConcurrentBuilds int
	BuildTimeout        time.Duration
}

// DefaultConfig returns the default image manager configuration
func DefaultConfig() Config {
	return Config{
		MaxConcurrentBuilds: 2,
		BuildTimeout:        30 * time.Minute,
	}
}

type manager struct {
	paths    *paths.Paths
	engine   engine.Engine
	resolver BaseResolver
	config   Config
	queue    *BuildQueue
	logger   *slog.Logger
	metrics  *Metrics

	createMu sync.Mutex
	metaMu   sync.Mutex

	trackersMu sync.Mutex
	trackers   map[string]*ProgressTracker
}

// NewManager creates an image manager and re-queues interrupted builds.
// A nil resolver resolves against public registries.
func NewManager(p *paths.Paths, eng engine.Engine, resolver BaseResolver, cfg Config, log *slog.Logger, meter metric.Meter) (Manager, error) {
	if log == nil {
		log = slog.Default()
	}
	if resolver == nil {
		resolver = NewRemoteResolver(false)
	}
	if cfg.BuildTimeout <= 0 {
		cfg.BuildTimeout = DefaultConfig().BuildTimeout
	}

	m := &manager{
		paths:    p,
		engine:   eng,
		resolver: resolver,
		config:   cfg,
		queue:    NewBuildQueue(cfg.MaxConcurrentBuilds),
		logger:   log,
		trackers: make(map[string]*ProgressTracker),
	}

	if meter != nil {
		metrics, err := NewMetrics(meter, m.queue)
		if err != nil {
			return nil, fmt.Errorf("create metrics: %w", err)
		}
		m.metrics = metrics
	}

	m.RecoverBuilds(context.Background())

	return m, nil
}

// source resolves the request to an image name, runtime and descriptor text
func source(req CreateImageRequest) (name, runtime, text string, err error) {
	switch {
	case req.Runtime != "":
		rt, err := runtimes.Get(req.Runtime)
		if err != nil {
			return "", "", "", fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
		}
		name = req.Name
		if name == "" {
			name = rt.Name
		}
		text = rt.Source
		if req.Descriptor != "" {
			text = req.Descriptor
		}
		runtime = rt.Name
	case req.Descriptor != "":
		if req.Name == "" {
			return "", "", "", fmt.Errorf("%w: name is required with a descriptor", ErrInvalidName)
		}
		name, text = req.Name, req.Descriptor
	default:
		return "", "", "", fmt.Errorf("%w: runtime or descriptor is required", ErrInvalidDescriptor)
	}

	if !validName(name) {
		return "", "", "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	// Sandboxes find runtime images by catalogue name
	if runtimes.Exists(name) && name != runtime {
		return "", "", "", fmt.Errorf("%w: %q is reserved for the %s runtime", ErrInvalidName, name, name)
	}
	return name, runtime, text, nil
}

func (m *manager) CreateImage(ctx context.Context, req CreateImageRequest) (*Image, error) {
	name, runtime, text, err := source(req)
	if err != nil {
		return nil, err
	}

	d, err := descriptor.ParseString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}
	base, err := ParseNormalizedRef(d.ExpandedBaseImage())
	if err != nil {
		return nil, fmt.Errorf("%w: base image: %v", ErrInvalidDescriptor, err)
	}
	digest := d.Digest().String()

	m.createMu.Lock()
	defer m.createMu.Unlock()

	existing, err := readMetadata(m.paths, name)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return nil, err
	case existing.Runtime != runtime:
		return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, name)
	case !isTerminal(existing.Status) || m.queue.IsActive(name):
		if existing.DescriptorDigest == digest {
			return m.withPosition(existing), nil
		}
		return nil, fmt.Errorf("%w: %s", ErrBuildInProgress, name)
	case existing.Status == StatusReady && existing.DescriptorDigest == digest &&
		existing.ResolveBase == req.ResolveBase && !req.Rebuild:
		if _, err := m.engine.InspectImage(ctx, existing.Tag); err == nil {
			return existing.toImage(), nil
		}
		m.logger.Warn("ready image missing from engine, rebuilding", "image", name)
	}

	meta := &imageMetadata{
		Name:             name,
		Runtime:          runtime,
		Tag:              runtimes.ImageTag(name),
		BaseImage:        base.String(),
		ResolveBase:      req.ResolveBase,
		DescriptorDigest: digest,
		Packages:         d.Packages,
		User:             d.User,
		Warnings:         d.Warnings(),
		Status:           StatusPending,
		CreatedAt:        time.Now(),
	}
	if err := writeDescriptor(m.paths, name, d.Render()); err != nil {
		return nil, fmt.Errorf("write descriptor: %w", err)
	}
	if err := m.writeMeta(meta); err != nil {
		return nil, fmt.Errorf("write metadata: %w", err)
	}

	m.enqueue(name)
	m.logger.Info("image build queued", "image", name, "runtime", runtime, "digest", digest)

	return m.GetImage(ctx, name)
}

// enqueue registers a tracker and queues the build
func (m *manager) enqueue(name string) {
	tracker := NewProgressTracker(ProgressUpdate{Status: StatusPending})
	m.trackersMu.Lock()
	if old := m.trackers[name]; old != nil {
		old.Close()
	}
	m.trackers[name] = tracker
	m.trackersMu.Unlock()

	pos := m.queue.Enqueue(name, func() {
		m.buildImage(context.Background(), name)
	})
	if pos > 0 {
		m.update(name, func(meta *imageMetadata) {
			if meta.Status == StatusPending && meta.StartedAt == nil {
				meta.QueuePosition = &pos
			}
		})
		tracker.Update(StatusPending, 0, &pos)
	}
}

func (m *manager) tracker(name string) *ProgressTracker {
	m.trackersMu.Lock()
	defer m.trackersMu.Unlock()
	return m.trackers[name]
}

// finishTracker closes the tracker if it is still the current one
func (m *manager) finishTracker(name string, t *ProgressTracker) {
	t.Close()
	m.trackersMu.Lock()
	defer m.trackersMu.Unlock()
	if m.trackers[name] == t {
		delete(m.trackers, name)
	}
}

func (m *manager) writeMeta(meta *imageMetadata) error {
	m.metaMu.Lock()
	defer m.metaMu.Unlock()
	return writeMetadata(m.paths, meta)
}

// update applies fn to the stored metadata under the metadata lock
func (m *manager) update(name string, fn func(*imageMetadata)) (*imageMetadata, error) {
	m.metaMu.Lock()
	defer m.metaMu.Unlock()

	meta, err := readMetadata(m.paths, name)
	if err != nil {
		m.logger.Error("read metadata for update", "image", name, "error", err)
		return nil, err
	}
	fn(meta)
	if err := writeMetadata(m.paths, meta); err != nil {
		m.logger.Error("write metadata for update", "image", name, "error", err)
		return nil, err
	}
	return meta, nil
}

// buildImage runs one queued build to completion
func (m *manager) buildImage(ctx context.Context, name string) {
	start := time.Now()

	tracker := m.tracker(name)
	if tracker == nil {
		tracker = NewProgressTracker(ProgressUpdate{Status: StatusPending})
	}
	// Release the queue slot before waiters are woken
	defer m.finishTracker(name, tracker)
	defer m.queue.MarkComplete(name)

	meta, err := m.update(name, func(meta *imageMetadata) {
		meta.StartedAt = &start
		meta.QueuePosition = nil
	})
	if err != nil {
		// Deleted while queued
		return
	}
	m.logger.Info("starting image build", "image", name)

	ctx, cancel := context.WithTimeout(ctx, m.config.BuildTimeout)
	defer cancel()

	d, err := readDescriptor(m.paths, name)
	if err != nil {
		m.fail(ctx, name, meta.Runtime, tracker, start, fmt.Errorf("read descriptor: %w", err))
		return
	}

	if meta.ResolveBase {
		m.setStatus(name, tracker, StatusResolving, 10)
		ref, err := ParseNormalizedRef(d.ExpandedBaseImage())
		if err != nil {
			m.fail(ctx, name, meta.Runtime, tracker, start, fmt.Errorf("parse base image: %w", err))
			return
		}
		digest, err := m.resolver.Resolve(ctx, ref)
		if err != nil {
			m.fail(ctx, name, meta.Runtime, tracker, start, fmt.Errorf("resolve base image: %w", err))
			return
		}
		d = d.Rebase(ref.Pinned(digest))
		m.update(name, func(meta *imageMetadata) { meta.BaseDigest = digest })
		m.logger.Info("resolved base image", "image", name, "base", ref.String(), "digest", digest)
	}

	m.setStatus(name, tracker, StatusBuilding, buildingStart)

	logFile, err := openLog(m.paths, name)
	if err != nil {
		m.fail(ctx, name, meta.Runtime, tracker, start, fmt.Errorf("open build log: %w", err))
		return
	}
	lw := &logWriter{tracker: tracker}

	labels := map[string]string{engine.LabelDigest: meta.DescriptorDigest}
	if meta.Runtime != "" {
		labels[engine.LabelRuntime] = meta.Runtime
	}
	info, err := m.engine.BuildImage(ctx, engine.BuildRequest{
		Tag:        meta.Tag,
		Dockerfile: d.Render(),
		Labels:     labels,
		Pull:       meta.ResolveBase,
	}, io.MultiWriter(logFile, lw))
	lw.Flush()
	logFile.Close()

	if err != nil {
		m.fail(ctx, name, meta.Runtime, tracker, start, err)
		return
	}

	duration := time.Since(start)
	durationMS := duration.Milliseconds()
	now := time.Now()
	m.update(name, func(meta *imageMetadata) {
		meta.Status = StatusReady
		meta.Progress = 100
		meta.Error = nil
		meta.ImageID = info.ID
		meta.SizeBytes = info.SizeBytes
		meta.CompletedAt = &now
		meta.DurationMS = &durationMS
	})
	tracker.Complete()

	m.logger.Info("image build succeeded", "image", name, "id", info.ID, "duration", duration)
	if m.metrics != nil {
		m.metrics.RecordBuild(ctx, StatusReady, meta.Runtime, duration)
	}
}

func (m *manager) setStatus(name string, tracker *ProgressTracker, status string, progress int) {
	m.update(name, func(meta *imageMetadata) {
		meta.Status = status
		meta.Progress = progress
	})
	tracker.Update(status, progress, nil)
}

func (m *manager) fail(ctx context.Context, name, runtime string, tracker *ProgressTracker, start time.Time, err error) {
	duration := time.Since(start)
	durationMS := duration.Milliseconds()
	now := time.Now()
	msg := err.Error()

	m.logger.Error("image build failed", "image", name, "error", err, "duration", duration)
	m.update(name, func(meta *imageMetadata) {
		meta.Status = StatusFailed
		meta.Progress = 0
		meta.QueuePosition = nil
		meta.Error = &msg
		meta.CompletedAt = &now
		meta.DurationMS = &durationMS
	})
	tracker.Fail(err)

	if m.metrics != nil {
		m.metrics.RecordBuild(context.WithoutCancel(ctx), StatusFailed, runtime, duration)
	}
}

// withPosition converts metadata, refreshing the live queue position
func (m *manager) withPosition(meta *imageMetadata) *Image {
	img := meta.toImage()
	if img.Status == StatusPending {
		img.QueuePosition = m.queue.GetPosition(meta.Name)
	}
	return img
}

func (m *manager) ListImages(ctx context.Context) ([]Image, error) {
	metas, err := listMetadata(m.paths)
	if err != nil {
		return nil, fmt.Errorf("list metadata: %w", err)
	}

	images := make([]Image, 0, len(metas))
	for _, meta := range metas {
		images = append(images, *m.withPosition(meta))
	}
	return images, nil
}

func (m *manager) GetImage(ctx context.Context, name string) (*Image, error) {
	meta, err := readMetadata(m.paths, name)
	if err != nil {
		return nil, err
	}
	return m.withPosition(meta), nil
}

func (m *manager) DeleteImage(ctx context.Context, name string) error {
	m.createMu.Lock()
	defer m.createMu.Unlock()

	meta, err := readMetadata(m.paths, name)
	if err != nil {
		return err
	}

	if !isTerminal(meta.Status) || m.queue.IsActive(name) {
		if !m.queue.Cancel(name) {
			return fmt.Errorf("%w: %s", ErrBuildInProgress, name)
		}
		if t := m.tracker(name); t != nil {
			t.Fail(errors.New("image deleted"))
			m.finishTracker(name, t)
		}
	}

	if err := m.engine.RemoveImage(ctx, meta.Tag); err != nil && !errors.Is(err, engine.ErrNotFound) {
		return fmt.Errorf("remove image: %w", err)
	}

	m.metaMu.Lock()
	defer m.metaMu.Unlock()
	if err := deleteImageDir(m.paths, name); err != nil {
		return err
	}

	m.logger.Info("image deleted", "image", name)
	return nil
}

func (m *manager) GetBuildLogs(ctx context.Context, name string) ([]byte, error) {
	if _, err := readMetadata(m.paths, name); err != nil {
		return nil, err
	}
	return readLog(m.paths, name)
}

func (m *manager) GetDescriptor(ctx context.Context, name string) (*descriptor.Descriptor, error) {
	if _, err := readMetadata(m.paths, name); err != nil {
		return nil, err
	}
	return readDescriptor(m.paths, name)
}

func (m *manager) Subscribe(ctx context.Context, name string) (<-chan ProgressUpdate, error) {
	if t := m.tracker(name); t != nil {
		if ch, err := t.Subscribe(ctx); err == nil {
			return ch, nil
		}
	}

	// Not building: deliver the stored state and close
	meta, err := readMetadata(m.paths, name)
	if err != nil {
		return nil, err
	}
	ch := make(chan ProgressUpdate, 1)
	ch <- ProgressUpdate{
		Status:        meta.Status,
		Progress:      meta.Progress,
		QueuePosition: meta.QueuePosition,
		Error:         meta.Error,
	}
	close(ch)
	return ch, nil
}

func (m *manager) WaitForImage(ctx context.Context, name string) (*Image, error) {
	ch, err := m.Subscribe(ctx, name)
	if err != nil {
		return nil, err
	}
	for range ch {
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := m.GetImage(ctx, name)
	if err != nil {
		return nil, err
	}
	switch img.Status {
	case StatusReady:
		return img, nil
	case StatusFailed:
		msg := "unknown error"
		if img.Error != nil {
			msg = *img.Error
		}
		return img, fmt.Errorf("%w: %s", ErrBuildFailed, msg)
	default:
		// Subscription ended between builds; wait for the new one
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
		return m.WaitForImage(ctx, name)
	}
}

func (m *manager) BuildAll(ctx context.Context) (map[string]error, error) {
	list, err := runtimes.List()
	if err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		results = make(map[string]error, len(list))
		g       errgroup.Group
	)
	for _, rt := range list {
		g.Go(func() error {
			_, err := m.CreateImage(ctx, CreateImageRequest{Runtime: rt.Name})
			if err == nil {
				_, err = m.WaitForImage(ctx, rt.Name)
			}
			mu.Lock()
			results[rt.Name] = err
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	return results, nil
}

func (m *manager) RecoverBuilds(ctx context.Context) {
	metas, err := listMetadata(m.paths)
	if err != nil {
		m.logger.Error("list images for recovery", "error", err)
		return
	}

	for _, meta := range metas {
		if isTerminal(meta.Status) || m.queue.IsActive(meta.Name) {
			continue
		}
		m.logger.Info("recovering image build", "image", meta.Name, "status", meta.Status)
		m.update(meta.Name, func(meta *imageMetadata) {
			meta.Status = StatusPending
			meta.Progress = 0
			meta.StartedAt = nil
			meta.QueuePosition = nil
		})
		m.enqueue(meta.Name)
	}
}
