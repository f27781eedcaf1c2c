package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/registry"
	"github.com/google/go-containerregistry/pkg/v1/random"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"github.com/onkernel/sandboxd/lib/engine"
	"github.com/onkernel/sandboxd/lib/engine/enginetest"
	"github.com/onkernel/sandboxd/lib/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customDescriptor(base string) string {
	return fmt.Sprintf(`FROM %s
WORKDIR /workspace
RUN useradd -m coderunner
USER coderunner
CMD ["/bin/bash"]
`, base)
}

func setupManager(t *testing.T, fake *enginetest.Fake, cfg Config) (Manager, *paths.Paths) {
	t.Helper()
	p := paths.New(t.TempDir())
	if cfg.MaxConcurrentBuilds == 0 {
		cfg.MaxConcurrentBuilds = 2
	}
	mgr, err := NewManager(p, fake, nil, cfg, nil, nil)
	require.NoError(t, err)
	return mgr, p
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestCreateImage_Runtime(t *testing.T) {
	fake := enginetest.New()
	mgr, p := setupManager(t, fake, Config{})
	ctx := waitCtx(t)

	img, err := mgr.CreateImage(ctx, CreateImageRequest{Runtime: "php"})
	require.NoError(t, err)
	assert.Equal(t, "php", img.Name)
	assert.Equal(t, "php", img.Runtime)
	assert.Equal(t, "sandboxd-php:latest", img.Tag)
	assert.Equal(t, "docker.io/library/php:8.2-cli", img.BaseImage)
	assert.Equal(t, "coderunner", img.User)
	assert.NotEmpty(t, img.DescriptorDigest)

	img, err = mgr.WaitForImage(ctx, "php")
	require.NoError(t, err)
	assert.Equal(t, StatusReady, img.Status)
	assert.True(t, img.Ready())
	assert.NotEmpty(t, img.ImageID)
	assert.Greater(t, img.SizeBytes, int64(0))
	require.NotNil(t, img.DurationMS)
	require.NotNil(t, img.CompletedAt)

	builds := fake.BuildRequests()
	require.Len(t, builds, 1)
	assert.Equal(t, "sandboxd-php:latest", builds[0].Tag)
	assert.Equal(t, "php", builds[0].Labels[engine.LabelRuntime])
	assert.Equal(t, img.DescriptorDigest, builds[0].Labels[engine.LabelDigest])
	assert.Contains(t, builds[0].Dockerfile, "FROM php:8.2-cli")

	_, err = os.Stat(p.ImageDescriptor("php"))
	require.NoError(t, err)

	logs, err := mgr.GetBuildLogs(ctx, "php")
	require.NoError(t, err)
	assert.Contains(t, string(logs), "Step 1 : ")
	assert.Contains(t, string(logs), "Successfully built "+img.ImageID)

	_, err = fake.InspectImage(ctx, "sandboxd-php:latest")
	require.NoError(t, err)
}

func TestCreateImage_SameDigestIsIdempotent(t *testing.T) {
	fake := enginetest.New()
	mgr, _ := setupManager(t, fake, Config{})
	ctx := waitCtx(t)

	_, err := mgr.CreateImage(ctx, CreateImageRequest{Runtime: "go"})
	require.NoError(t, err)
	first, err := mgr.WaitForImage(ctx, "go")
	require.NoError(t, err)

	again, err := mgr.CreateImage(ctx, CreateImageRequest{Runtime: "go"})
	require.NoError(t, err)
	assert.Equal(t, StatusReady, again.Status)
	assert.Equal(t, first.ImageID, again.ImageID)
	assert.Len(t, fake.BuildRequests(), 1)

	// Rebuild forces a new build
	_, err = mgr.CreateImage(ctx, CreateImageRequest{Runtime: "go", Rebuild: true})
	require.NoError(t, err)
	_, err = mgr.WaitForImage(ctx, "go")
	require.NoError(t, err)
	assert.Len(t, fake.BuildRequests(), 2)
}

func TestCreateImage_MissingFromEngineRebuilds(t *testing.T) {
	fake := enginetest.New()
	mgr, _ := setupManager(t, fake, Config{})
	ctx := waitCtx(t)

	_, err := mgr.CreateImage(ctx, CreateImageRequest{Runtime: "rust"})
	require.NoError(t, err)
	_, err = mgr.WaitForImage(ctx, "rust")
	require.NoError(t, err)

	require.NoError(t, fake.RemoveImage(ctx, "sandboxd-rust:latest"))

	_, err = mgr.CreateImage(ctx, CreateImageRequest{Runtime: "rust"})
	require.NoError(t, err)
	_, err = mgr.WaitForImage(ctx, "rust")
	require.NoError(t, err)
	assert.Len(t, fake.BuildRequests(), 2)
}

func TestCreateImage_CustomDescriptor(t *testing.T) {
	fake := enginetest.New()
	mgr, _ := setupManager(t, fake, Config{})
	ctx := waitCtx(t)

	img, err := mgr.CreateImage(ctx, CreateImageRequest{
		Name:       "ruby",
		Descriptor: customDescriptor("ruby:3.3-slim"),
	})
	require.NoError(t, err)
	assert.Empty(t, img.Runtime)
	assert.Equal(t, "sandboxd-ruby:latest", img.Tag)

	img, err = mgr.WaitForImage(ctx, "ruby")
	require.NoError(t, err)
	assert.True(t, img.Ready())

	builds := fake.BuildRequests()
	require.Len(t, builds, 1)
	_, hasRuntime := builds[0].Labels[engine.LabelRuntime]
	assert.False(t, hasRuntime)

	// The name now belongs to a custom image
	_, err = mgr.CreateImage(ctx, CreateImageRequest{Name: "ruby", Runtime: "python"})
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestCreateImage_Invalid(t *testing.T) {
	mgr, _ := setupManager(t, enginetest.New(), Config{})
	ctx := context.Background()

	tests := []struct {
		name    string
		req     CreateImageRequest
		wantErr error
	}{
		{"empty request", CreateImageRequest{}, ErrInvalidDescriptor},
		{"unknown runtime", CreateImageRequest{Runtime: "cobol"}, ErrInvalidDescriptor},
		{"descriptor without name", CreateImageRequest{Descriptor: customDescriptor("gcc:13")}, ErrInvalidName},
		{"bad name", CreateImageRequest{Name: "My Image", Descriptor: customDescriptor("gcc:13")}, ErrInvalidName},
		{"unparseable", CreateImageRequest{Name: "x", Descriptor: "# nothing here\n"}, ErrInvalidDescriptor},
		{"root user", CreateImageRequest{Name: "x", Descriptor: "FROM gcc:13\nUSER root\nCMD [\"bash\"]\n"}, ErrInvalidDescriptor},
		{"bad base", CreateImageRequest{Name: "x", Descriptor: customDescriptor("GCC:13")}, ErrInvalidDescriptor},
		{"descriptor named after runtime", CreateImageRequest{Name: "python", Descriptor: customDescriptor("alpine:3.20")}, ErrInvalidName},
		{"runtime named after another", CreateImageRequest{Name: "python", Runtime: "go"}, ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mgr.CreateImage(ctx, tt.req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	images, err := mgr.ListImages(ctx)
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestCreateImage_BuildFailure(t *testing.T) {
	fake := enginetest.New()
	fake.OnBuild = func(req engine.BuildRequest, progress io.Writer) (*engine.ImageInfo, error) {
		fmt.Fprintln(progress, "Step 1/2 : FROM gcc:13")
		return nil, errors.New("E: Unable to locate package nonexistent")
	}
	mgr, _ := setupManager(t, fake, Config{})
	ctx := waitCtx(t)

	_, err := mgr.CreateImage(ctx, CreateImageRequest{Runtime: "cpp"})
	require.NoError(t, err)

	img, err := mgr.WaitForImage(ctx, "cpp")
	require.ErrorIs(t, err, ErrBuildFailed)
	require.NotNil(t, img)
	assert.Equal(t, StatusFailed, img.Status)
	require.NotNil(t, img.Error)
	assert.Contains(t, *img.Error, "Unable to locate package")

	logs, err := mgr.GetBuildLogs(ctx, "cpp")
	require.NoError(t, err)
	assert.Contains(t, string(logs), "Step 1/2 : FROM gcc:13")

	// A failed image can be retried with the same descriptor
	fake.OnBuild = nil
	_, err = mgr.CreateImage(ctx, CreateImageRequest{Runtime: "cpp"})
	require.NoError(t, err)
	img, err = mgr.WaitForImage(ctx, "cpp")
	require.NoError(t, err)
	assert.Nil(t, img.Error)
}

// blockingBuilds holds every build until released
type blockingBuilds struct {
	started chan string
	release chan struct{}
}

func newBlockingBuilds(fake *enginetest.Fake) *blockingBuilds {
	b := &blockingBuilds{started: make(chan string, 8), release: make(chan struct{})}
	fake.OnBuild = func(req engine.BuildRequest, progress io.Writer) (*engine.ImageInfo, error) {
		b.started <- req.Tag
		<-b.release
		return nil, nil
	}
	return b
}

func TestCreateImage_QueuePosition(t *testing.T) {
	fake := enginetest.New()
	blocked := newBlockingBuilds(fake)
	mgr, _ := setupManager(t, fake, Config{MaxConcurrentBuilds: 1})
	ctx := waitCtx(t)

	_, err := mgr.CreateImage(ctx, CreateImageRequest{Runtime: "go"})
	require.NoError(t, err)
	require.Equal(t, "sandboxd-go:latest", <-blocked.started)

	queued, err := mgr.CreateImage(ctx, CreateImageRequest{Runtime: "java"})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, queued.Status)
	require.NotNil(t, queued.QueuePosition)
	assert.Equal(t, 1, *queued.QueuePosition)

	running, err := mgr.GetImage(ctx, "go")
	require.NoError(t, err)
	assert.Equal(t, StatusBuilding, running.Status)
	assert.Nil(t, running.QueuePosition)

	// Same descriptor while building returns the in-flight image
	dup, err := mgr.CreateImage(ctx, CreateImageRequest{Runtime: "go"})
	require.NoError(t, err)
	assert.Equal(t, StatusBuilding, dup.Status)

	// A different descriptor under a building name is rejected
	_, err = mgr.CreateImage(ctx, CreateImageRequest{Runtime: "go", Descriptor: customDescriptor("golang:1.22")})
	require.ErrorIs(t, err, ErrBuildInProgress)

	err = mgr.DeleteImage(ctx, "go")
	require.ErrorIs(t, err, ErrBuildInProgress)

	close(blocked.release)
	_, err = mgr.WaitForImage(ctx, "go")
	require.NoError(t, err)
	img, err := mgr.WaitForImage(ctx, "java")
	require.NoError(t, err)
	assert.Nil(t, img.QueuePosition)
}

func TestDeleteImage_Queued(t *testing.T) {
	fake := enginetest.New()
	blocked := newBlockingBuilds(fake)
	mgr, _ := setupManager(t, fake, Config{MaxConcurrentBuilds: 1})
	ctx := waitCtx(t)

	_, err := mgr.CreateImage(ctx, CreateImageRequest{Runtime: "go"})
	require.NoError(t, err)
	<-blocked.started
	_, err = mgr.CreateImage(ctx, CreateImageRequest{Runtime: "nodejs"})
	require.NoError(t, err)

	require.NoError(t, mgr.DeleteImage(ctx, "nodejs"))
	_, err = mgr.GetImage(ctx, "nodejs")
	require.ErrorIs(t, err, ErrNotFound)

	close(blocked.release)
	_, err = mgr.WaitForImage(ctx, "go")
	require.NoError(t, err)
	for _, req := range fake.BuildRequests() {
		assert.NotEqual(t, "sandboxd-nodejs:latest", req.Tag)
	}
}

func TestDeleteImage(t *testing.T) {
	fake := enginetest.New()
	mgr, p := setupManager(t, fake, Config{})
	ctx := waitCtx(t)

	_, err := mgr.CreateImage(ctx, CreateImageRequest{Runtime: "python"})
	require.NoError(t, err)
	_, err = mgr.WaitForImage(ctx, "python")
	require.NoError(t, err)

	require.NoError(t, mgr.DeleteImage(ctx, "python"))

	_, err = mgr.GetImage(ctx, "python")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = fake.InspectImage(ctx, "sandboxd-python:latest")
	require.ErrorIs(t, err, engine.ErrNotFound)
	_, err = os.Stat(p.ImageDir("python"))
	assert.True(t, os.IsNotExist(err))

	require.ErrorIs(t, mgr.DeleteImage(ctx, "python"), ErrNotFound)
}

func TestSubscribe(t *testing.T) {
	fake := enginetest.New()
	blocked := newBlockingBuilds(fake)
	mgr, _ := setupManager(t, fake, Config{})
	ctx := waitCtx(t)

	_, err := mgr.CreateImage(ctx, CreateImageRequest{Runtime: "java"})
	require.NoError(t, err)
	<-blocked.started

	ch, err := mgr.Subscribe(ctx, "java")
	require.NoError(t, err)
	first := <-ch
	assert.Equal(t, StatusBuilding, first.Status)
	assert.Equal(t, buildingStart, first.Progress)

	close(blocked.release)

	var logs []string
	var last ProgressUpdate
	for u := range ch {
		if u.Log != "" {
			logs = append(logs, u.Log)
			continue
		}
		last = u
	}
	assert.Equal(t, StatusReady, last.Status)
	assert.Equal(t, 100, last.Progress)
	require.NotEmpty(t, logs)
	assert.True(t, strings.HasPrefix(logs[len(logs)-1], "Successfully built "))

	// Finished builds deliver the stored state once
	ch, err = mgr.Subscribe(ctx, "java")
	require.NoError(t, err)
	u, ok := <-ch
	require.True(t, ok)
	assert.Equal(t, StatusReady, u.Status)
	_, ok = <-ch
	assert.False(t, ok)

	_, err = mgr.Subscribe(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateImage_ResolveBase(t *testing.T) {
	srv := httptest.NewServer(registry.New())
	t.Cleanup(srv.Close)
	host := strings.TrimPrefix(srv.URL, "http://")

	img, err := random.Image(1024, 1)
	require.NoError(t, err)
	ref, err := name.ParseReference(host + "/test/base:v1")
	require.NoError(t, err)
	require.NoError(t, remote.Write(ref, img))
	want, err := img.Digest()
	require.NoError(t, err)

	fake := enginetest.New()
	mgr, _ := setupManager(t, fake, Config{})
	ctx := waitCtx(t)

	_, err = mgr.CreateImage(ctx, CreateImageRequest{
		Name:        "pinned",
		Descriptor:  customDescriptor(host + "/test/base:v1"),
		ResolveBase: true,
	})
	require.NoError(t, err)

	built, err := mgr.WaitForImage(ctx, "pinned")
	require.NoError(t, err)
	assert.Equal(t, want.String(), built.BaseDigest)
	assert.Equal(t, host+"/test/base:v1", built.BaseImage)

	builds := fake.BuildRequests()
	require.Len(t, builds, 1)
	assert.Contains(t, builds[0].Dockerfile, "FROM "+host+"/test/base@"+want.String())
	assert.True(t, builds[0].Pull)

	// Unknown tags fail the build at the resolving step
	_, err = mgr.CreateImage(ctx, CreateImageRequest{
		Name:        "missing-tag",
		Descriptor:  customDescriptor(host + "/test/base:v2"),
		ResolveBase: true,
	})
	require.NoError(t, err)
	failed, err := mgr.WaitForImage(ctx, "missing-tag")
	require.ErrorIs(t, err, ErrBuildFailed)
	require.NotNil(t, failed.Error)
	assert.Contains(t, *failed.Error, "resolve base image")
	assert.Len(t, fake.BuildRequests(), 1)
}

func TestBuildAll(t *testing.T) {
	fake := enginetest.New()
	var mu sync.Mutex
	fake.OnBuild = func(req engine.BuildRequest, progress io.Writer) (*engine.ImageInfo, error) {
		mu.Lock()
		defer mu.Unlock()
		if req.Tag == "sandboxd-rust:latest" {
			return nil, errors.New("rustc download failed")
		}
		return nil, nil
	}
	mgr, _ := setupManager(t, fake, Config{MaxConcurrentBuilds: 3})
	ctx := waitCtx(t)

	results, err := mgr.BuildAll(ctx)
	require.NoError(t, err)
	require.Len(t, results, 7)
	for rt, err := range results {
		if rt == "rust" {
			require.ErrorIs(t, err, ErrBuildFailed)
			continue
		}
		assert.NoError(t, err, rt)
	}

	images, err := mgr.ListImages(ctx)
	require.NoError(t, err)
	require.Len(t, images, 7)
	assert.Equal(t, "cpp", images[0].Name)
}

func TestRecoverBuilds(t *testing.T) {
	p := paths.New(t.TempDir())
	ctx := waitCtx(t)

	// Simulate a build interrupted by a restart
	interrupted := &imageMetadata{
		Name:             "custom",
		Tag:              "sandboxd-custom:latest",
		BaseImage:        "docker.io/library/gcc:13",
		DescriptorDigest: "sha256:abc",
		User:             "coderunner",
		Status:           StatusBuilding,
		Progress:         42,
		CreatedAt:        time.Now(),
	}
	require.NoError(t, writeMetadata(p, interrupted))
	require.NoError(t, writeDescriptor(p, "custom", customDescriptor("gcc:13")))

	fake := enginetest.New()
	mgr, err := NewManager(p, fake, nil, Config{MaxConcurrentBuilds: 1}, nil, nil)
	require.NoError(t, err)

	img, err := mgr.WaitForImage(ctx, "custom")
	require.NoError(t, err)
	assert.Equal(t, StatusReady, img.Status)
	require.Len(t, fake.BuildRequests(), 1)
	assert.Equal(t, "sandboxd-custom:latest", fake.BuildRequests()[0].Tag)
}
