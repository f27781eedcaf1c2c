package images

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDigest = "sha256:0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func TestParseNormalizedRef(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"php:8.3-cli", "docker.io/library/php:8.3-cli", false},
		{"eclipse-temurin:21-jdk", "docker.io/library/eclipse-temurin:21-jdk", false},
		{"golang", "docker.io/library/golang:latest", false},
		{"ghcr.io/acme/runner:v2", "ghcr.io/acme/runner:v2", false},
		{"localhost:5000/gcc:13", "localhost:5000/gcc:13", false},
		{"gcc@" + testDigest, "docker.io/library/gcc@" + testDigest, false},

		{"", "", true},
		{"gcc::13", "", true},
		{"two words", "", true},
		{"Python:3.12", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ref, err := ParseNormalizedRef(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ref.String())
		})
	}
}

func TestNormalizedRef_Parts(t *testing.T) {
	ref, err := ParseNormalizedRef("node:20-slim")
	require.NoError(t, err)
	assert.False(t, ref.IsDigest())
	assert.Equal(t, "docker.io/library/node", ref.Repository())
	assert.Equal(t, "20-slim", ref.Tag())
	assert.Empty(t, ref.Digest())
	assert.Equal(t, "docker.io/library/node@"+testDigest, ref.Pinned(testDigest))

	pinned, err := ParseNormalizedRef(ref.Pinned(testDigest))
	require.NoError(t, err)
	assert.True(t, pinned.IsDigest())
	assert.Equal(t, testDigest, pinned.Digest())
	assert.Empty(t, pinned.Tag())
}

func TestRemoteResolver_DigestRef(t *testing.T) {
	ref, err := ParseNormalizedRef("gcc@" + testDigest)
	require.NoError(t, err)

	// No network access needed for digest references
	digest, err := NewRemoteResolver(false).Resolve(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, testDigest, digest)
}

func TestValidName(t *testing.T) {
	for _, name := range []string{"go", "php", "my-runtime", "java21", "py_3.12"} {
		assert.True(t, validName(name), name)
	}
	for _, name := range []string{"", "Go", "-go", "a/b", "..", ".hidden", "has space", strings.Repeat("a", 64)} {
		assert.False(t, validName(name), name)
	}
}

func TestBuildQueue(t *testing.T) {
	q := NewBuildQueue(1)
	started := make(chan string, 3)
	start := func(name string) func() { return func() { started <- name } }

	assert.Equal(t, 0, q.Enqueue("a", start("a")))
	assert.Equal(t, 1, q.Enqueue("b", start("b")))
	assert.Equal(t, 2, q.Enqueue("c", start("c")))

	require.Equal(t, "a", <-started)
	assert.Nil(t, q.GetPosition("a"))
	require.NotNil(t, q.GetPosition("c"))
	assert.Equal(t, 2, *q.GetPosition("c"))
	assert.Equal(t, 1, q.ActiveCount())
	assert.Equal(t, 2, q.PendingCount())

	assert.True(t, q.Cancel("b"))
	assert.False(t, q.Cancel("a"), "running builds cannot be cancelled")
	assert.False(t, q.IsActive("b"))

	q.MarkComplete("a")
	require.Equal(t, "c", <-started)
	assert.True(t, q.IsActive("c"))
	assert.Equal(t, 0, q.PendingCount())

	q.MarkComplete("c")
	assert.False(t, q.IsActive("c"))
	assert.Equal(t, 0, q.ActiveCount())
}

func TestStepProgress(t *testing.T) {
	pct, ok := stepProgress("Step 1/5 : FROM gcc:13")
	require.True(t, ok)
	assert.Equal(t, buildingStart, pct)

	pct, ok = stepProgress("Step 5/5 : CMD [\"/bin/bash\"]")
	require.True(t, ok)
	assert.Equal(t, 80, pct)

	_, ok = stepProgress(" ---> Running in 1234")
	assert.False(t, ok)
	_, ok = stepProgress("Step 6/5 : bogus")
	assert.False(t, ok)
}

func TestProgressTracker(t *testing.T) {
	tracker := NewProgressTracker(ProgressUpdate{Status: StatusPending})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch, err := tracker.Subscribe(ctx)
	require.NoError(t, err)
	first := <-ch
	assert.Equal(t, StatusPending, first.Status)

	tracker.Update(StatusBuilding, buildingStart, nil)
	w := &logWriter{tracker: tracker}
	_, err = w.Write([]byte("Step 3/5 : RUN apt-get upd"))
	require.NoError(t, err)
	_, err = w.Write([]byte("ate\r\nStep 4/5 : USER coderunner\npartial"))
	require.NoError(t, err)
	w.Flush()
	tracker.Complete()
	tracker.Close()

	var updates []ProgressUpdate
	for u := range ch {
		updates = append(updates, u)
	}
	require.Len(t, updates, 5)
	assert.Equal(t, StatusBuilding, updates[0].Status)
	assert.Equal(t, "Step 3/5 : RUN apt-get update", updates[1].Log)
	assert.Equal(t, 50, updates[1].Progress)
	assert.Equal(t, "Step 4/5 : USER coderunner", updates[2].Log)
	assert.Equal(t, "partial", updates[3].Log)
	assert.Equal(t, StatusReady, updates[4].Status)
	assert.Equal(t, 100, updates[4].Progress)

	_, err = tracker.Subscribe(ctx)
	assert.Error(t, err, "closed trackers reject subscribers")
}

func TestToSSEReader(t *testing.T) {
	ch := make(chan ProgressUpdate, 2)
	ch <- ProgressUpdate{Status: StatusBuilding, Progress: 20}
	ch <- ProgressUpdate{Status: StatusBuilding, Progress: 20, Log: "Step 1/2 : FROM php:8.3-cli"}
	close(ch)

	data, err := io.ReadAll(ToSSEReader(ch))
	require.NoError(t, err)

	events := strings.Split(strings.TrimSpace(string(data)), "\n\n")
	require.Len(t, events, 2)
	assert.True(t, strings.HasPrefix(events[0], "event: progress\ndata: {"))
	assert.Contains(t, events[0], `"status":"building"`)
	assert.True(t, strings.HasPrefix(events[1], "event: log\ndata: {"))
	assert.Contains(t, events[1], `"log":"Step 1/2 : FROM php:8.3-cli"`)
}
