// Package enginetest provides an in-memory engine for tests.
package enginetest

import (
	"context"
	"fmt"
	"io"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/onkernel/sandboxd/lib/engine"
)

// ExecFunc handles a command run in a fake container
type ExecFunc func(c *engine.Container, req engine.ExecRequest, stdout, stderr io.Writer) (int, error)

// BuildFunc handles an image build. The returned image describes the result.
type BuildFunc func(req engine.BuildRequest, progress io.Writer) (*engine.ImageInfo, error)

// Fake is an in-memory engine. The zero value is not usable; call New.
type Fake struct {
	mu sync.Mutex

	images     map[string]*engine.ImageInfo
	containers map[string]*fakeContainer
	nextID     int

	// Hooks; nil means a default that succeeds
	OnBuild BuildFunc
	OnExec  ExecFunc

	PingErr  error
	StartErr error

	builds   []engine.BuildRequest
	created  []engine.ContainerSpec
	sessions []*EchoSession
}

type fakeContainer struct {
	info  engine.Container
	spec  engine.ContainerSpec
	files map[string][]byte
}

var _ engine.Engine = (*Fake)(nil)

// New returns an empty fake engine
func New() *Fake {
	return &Fake{
		images:     make(map[string]*engine.ImageInfo),
		containers: make(map[string]*fakeContainer),
	}
}

// AddImage registers a managed image under tag
func (f *Fake) AddImage(tag string, labels map[string]string) *engine.ImageInfo {
	f.mu.Lock()
	defer f.mu.Unlock()
	img := &engine.ImageInfo{
		ID:        fmt.Sprintf("sha256:%064d", len(f.images)+1),
		Tags:      []string{tag},
		Labels:    engine.ManagedLabels(labels),
		CreatedAt: time.Now(),
	}
	f.images[tag] = img
	return img
}

// File returns a file written with CopyFile
func (f *Fake) File(id, path string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.lookup(id)
	if !ok {
		return nil, false
	}
	data, ok := c.files[path]
	return data, ok
}

// Spec returns the spec a container was created with
func (f *Fake) Spec(id string) (engine.ContainerSpec, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.lookup(id)
	if !ok {
		return engine.ContainerSpec{}, false
	}
	return c.spec, true
}

// CreatedSpecs returns the spec of every container created so far,
// including removed ones
func (f *Fake) CreatedSpecs() []engine.ContainerSpec {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]engine.ContainerSpec(nil), f.created...)
}

// BuildRequests returns every build requested so far
func (f *Fake) BuildRequests() []engine.BuildRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]engine.BuildRequest(nil), f.builds...)
}

// Sessions returns the terminal sessions opened so far
func (f *Fake) Sessions() []*EchoSession {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*EchoSession(nil), f.sessions...)
}

// ContainerCount returns the number of containers, in any state
func (f *Fake) ContainerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.containers)
}

// SetCreated backdates a container
func (f *Fake) SetCreated(id string, t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.lookup(id); ok {
		c.info.CreatedAt = t
	}
}

func (f *Fake) lookup(id string) (*fakeContainer, bool) {
	if c, ok := f.containers[id]; ok {
		return c, true
	}
	for _, c := range f.containers {
		if c.info.Name == id {
			return c, true
		}
	}
	return nil, false
}

func (f *Fake) Ping(ctx context.Context) error {
	return f.PingErr
}

func (f *Fake) Info(ctx context.Context) (*engine.Info, error) {
	if f.PingErr != nil {
		return nil, f.PingErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	info := &engine.Info{
		ServerVersion:   "fake",
		OperatingSystem: "linux",
		Architecture:    "x86_64",
		NCPU:            4,
		MemTotal:        8 << 30,
		Containers:      len(f.containers),
		Images:          len(f.images),
	}
	for _, c := range f.containers {
		if c.info.Running() {
			info.ContainersRunning++
		}
	}
	return info, nil
}

func (f *Fake) BuildImage(ctx context.Context, req engine.BuildRequest, progress io.Writer) (*engine.ImageInfo, error) {
	f.mu.Lock()
	f.builds = append(f.builds, req)
	build := f.OnBuild
	f.mu.Unlock()

	if progress == nil {
		progress = io.Discard
	}

	var img *engine.ImageInfo
	if build != nil {
		var err error
		if img, err = build(req, progress); err != nil {
			return nil, fmt.Errorf("%w: %v", engine.ErrBuildFailed, err)
		}
	} else {
		for i, line := range strings.Split(strings.TrimSpace(req.Dockerfile), "\n") {
			if line = strings.TrimSpace(line); line != "" && !strings.HasPrefix(line, "#") {
				fmt.Fprintf(progress, "Step %d : %s\n", i+1, line)
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if img == nil {
		img = &engine.ImageInfo{SizeBytes: int64(len(req.Dockerfile)) * 1024}
	}
	img.ID = fmt.Sprintf("sha256:%064d", len(f.images)+1)
	img.Tags = []string{req.Tag}
	img.Labels = engine.ManagedLabels(img.Labels, req.Labels)
	img.CreatedAt = time.Now()
	f.images[req.Tag] = img
	fmt.Fprintf(progress, "Successfully built %s\n", img.ID)

	out := *img
	return &out, nil
}

func (f *Fake) InspectImage(ctx context.Context, ref string) (*engine.ImageInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for tag, img := range f.images {
		if tag == ref || img.ID == ref {
			out := *img
			return &out, nil
		}
	}
	return nil, fmt.Errorf("%w: image %s", engine.ErrNotFound, ref)
}

func (f *Fake) RemoveImage(ctx context.Context, ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.images[ref]; !ok {
		return fmt.Errorf("%w: image %s", engine.ErrNotFound, ref)
	}
	delete(f.images, ref)
	return nil
}

func (f *Fake) CreateContainer(ctx context.Context, spec engine.ContainerSpec) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.images[spec.Image]; !ok {
		return "", fmt.Errorf("%w: image %s", engine.ErrNotFound, spec.Image)
	}
	for _, c := range f.containers {
		if spec.Name != "" && c.info.Name == spec.Name {
			return "", fmt.Errorf("conflict: container name %s already in use", spec.Name)
		}
	}

	f.created = append(f.created, spec)
	f.nextID++
	id := fmt.Sprintf("%012x", f.nextID)
	f.containers[id] = &fakeContainer{
		info: engine.Container{
			ID:        id,
			Name:      spec.Name,
			Image:     spec.Image,
			State:     engine.StateCreated,
			Status:    "Created",
			Labels:    engine.ManagedLabels(spec.Labels),
			CreatedAt: time.Now(),
		},
		spec:  spec,
		files: make(map[string][]byte),
	}
	return id, nil
}

func (f *Fake) StartContainer(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.lookup(id)
	if !ok {
		return fmt.Errorf("%w: container %s", engine.ErrNotFound, id)
	}
	if f.StartErr != nil {
		return f.StartErr
	}
	c.info.State = engine.StateRunning
	c.info.Status = "Up"
	c.info.StartedAt = time.Now()
	return nil
}

func (f *Fake) StopContainer(ctx context.Context, id string, timeout time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.lookup(id)
	if !ok {
		return fmt.Errorf("%w: container %s", engine.ErrNotFound, id)
	}
	c.info.State = engine.StateExited
	c.info.Status = "Exited (0)"
	return nil
}

func (f *Fake) RemoveContainer(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.lookup(id)
	if !ok {
		return fmt.Errorf("%w: container %s", engine.ErrNotFound, id)
	}
	delete(f.containers, c.info.ID)
	return nil
}

func (f *Fake) InspectContainer(ctx context.Context, id string) (*engine.Container, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: container %s", engine.ErrNotFound, id)
	}
	out := c.info
	out.Labels = maps.Clone(c.info.Labels)
	return &out, nil
}

func (f *Fake) ListContainers(ctx context.Context, all bool, labels map[string]string) ([]engine.Container, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []engine.Container
	for _, c := range f.containers {
		if !all && !c.info.Running() {
			continue
		}
		match := true
		for k, v := range labels {
			if c.info.Labels[k] != v {
				match = false
				break
			}
		}
		if match {
			out = append(out, c.info)
		}
	}
	return out, nil
}

func (f *Fake) Exec(ctx context.Context, id string, req engine.ExecRequest, stdout, stderr io.Writer) (int, error) {
	f.mu.Lock()
	c, ok := f.lookup(id)
	var info engine.Container
	if ok {
		info = c.info
	}
	exec := f.OnExec
	f.mu.Unlock()

	if !ok {
		return -1, fmt.Errorf("%w: container %s", engine.ErrNotFound, id)
	}
	if !info.Running() {
		return -1, fmt.Errorf("container %s is not running", id)
	}
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	if exec == nil {
		exec = defaultExec
	}

	// Like the docker engine, a cancelled context detaches from the exec
	type result struct {
		code int
		err  error
	}
	done := make(chan result, 1)
	go func() {
		code, err := exec(&info, req, stdout, stderr)
		done <- result{code, err}
	}()
	select {
	case r := <-done:
		return r.code, r.err
	case <-ctx.Done():
		return -1, ctx.Err()
	}
}

// defaultExec understands echo and true/false; anything else succeeds silently
func defaultExec(c *engine.Container, req engine.ExecRequest, stdout, stderr io.Writer) (int, error) {
	if len(req.Cmd) == 0 {
		return -1, fmt.Errorf("empty command")
	}
	switch req.Cmd[0] {
	case "echo":
		fmt.Fprintln(stdout, strings.Join(req.Cmd[1:], " "))
	case "false":
		return 1, nil
	}
	return 0, nil
}

func (f *Fake) ExecTTY(ctx context.Context, id string, req engine.ExecRequest) (engine.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: container %s", engine.ErrNotFound, id)
	}
	if !c.info.Running() {
		return nil, fmt.Errorf("container %s is not running", id)
	}
	s := NewEchoSession()
	f.sessions = append(f.sessions, s)
	return s, nil
}

func (f *Fake) CopyFile(ctx context.Context, id, dst string, data []byte, mode int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.lookup(id)
	if !ok {
		return fmt.Errorf("%w: container %s", engine.ErrNotFound, id)
	}
	c.files[dst] = append([]byte(nil), data...)
	return nil
}

// EchoSession is a terminal session that echoes its input
type EchoSession struct {
	r *io.PipeReader
	w *io.PipeWriter

	mu    sync.Mutex
	sizes [][2]uint
}

// NewEchoSession returns a session whose output is its input
func NewEchoSession() *EchoSession {
	r, w := io.Pipe()
	return &EchoSession{r: r, w: w}
}

func (s *EchoSession) Read(p []byte) (int, error)  { return s.r.Read(p) }
func (s *EchoSession) Write(p []byte) (int, error) { return s.w.Write(p) }

func (s *EchoSession) Close() error {
	s.w.Close()
	return s.r.Close()
}

func (s *EchoSession) Resize(ctx context.Context, cols, rows uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sizes = append(s.sizes, [2]uint{cols, rows})
	return nil
}

// Sizes returns every resize request as cols, rows pairs
func (s *EchoSession) Sizes() [][2]uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][2]uint(nil), s.sizes...)
}
