// Package verify checks that a built image holds the properties its
// descriptor promises: the runtime works, the packages are installed, a
// non-root user runs commands and the environment is set.
package verify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/onkernel/sandboxd/lib/descriptor"
	"github.com/onkernel/sandboxd/lib/engine"
	"github.com/onkernel/sandboxd/lib/images"
	"github.com/onkernel/sandboxd/lib/logger"
	"github.com/onkernel/sandboxd/lib/runtimes"
	"golang.org/x/sync/errgroup"
)

// labelVerify marks throw-away verification containers
const labelVerify = "io.sandboxd.verify"

// ErrImageNotReady is returned when verifying an image that has not been built
var ErrImageNotReady = errors.New("image not ready")

// Check kinds
const (
	KindRuntime = "runtime"
	KindPackage = "package"
	KindUser    = "user"
	KindEnv     = "env"
)

// Check is the outcome of one check
type Check struct {
	Kind   string `json:"kind"`
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	// Detail explains a failure or records the observed value
	Detail string `json:"detail,omitempty"`
}

// Report is the result of verifying an image
type Report struct {
	Image      string  `json:"image"`
	Checks     []Check `json:"checks"`
	Passed     bool    `json:"passed"`
	DurationMS int64   `json:"duration_ms"`
}

// Failed returns the checks that did not pass
func (r *Report) Failed() []Check {
	var out []Check
	for _, c := range r.Checks {
		if !c.Passed {
			out = append(out, c)
		}
	}
	return out
}

// Verifier runs checks in throw-away containers
type Verifier struct {
	engine engine.Engine
	images images.Manager
	// Concurrency bounds the checks run at once in one container
	Concurrency int
	Timeout     time.Duration
}

// NewVerifier creates a verifier. imageManager is only needed by Verify.
func NewVerifier(eng engine.Engine, imageManager images.Manager) *Verifier {
	return &Verifier{
		engine:      eng,
		images:      imageManager,
		Concurrency: 4,
		Timeout:     2 * time.Minute,
	}
}

// Verify checks a managed image against the descriptor it was built from.
// Catalogue runtimes are also checked with their version command.
func (v *Verifier) Verify(ctx context.Context, name string) (*Report, error) {
	img, err := v.images.GetImage(ctx, name)
	if err != nil {
		return nil, err
	}
	if !img.Ready() {
		return nil, fmt.Errorf("%w: %s is %s", ErrImageNotReady, name, img.Status)
	}
	d, err := v.images.GetDescriptor(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("read descriptor: %w", err)
	}

	var versionCmd []string
	if img.Runtime != "" {
		if rt, err := runtimes.Get(img.Runtime); err == nil {
			versionCmd = rt.Recipe.VersionCmd
		}
	}
	return v.VerifyImage(ctx, img.Tag, d, versionCmd)
}

// task is a check still to run
type task struct {
	kind, name string
	run        func(ctx context.Context, x *executor) Check
}

// VerifyImage starts a container from image and checks it against d. An
// empty versionCmd skips the runtime check.
func (v *Verifier) VerifyImage(ctx context.Context, image string, d *descriptor.Descriptor, versionCmd []string) (*Report, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	if v.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.Timeout)
		defer cancel()
	}

	id, err := v.engine.CreateContainer(ctx, engine.ContainerSpec{
		Image:           image,
		Entrypoint:      engine.KeepAlive,
		Labels:          map[string]string{labelVerify: "true"},
		NetworkDisabled: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create verification container: %w", err)
	}
	defer func() {
		cleanup := context.WithoutCancel(ctx)
		if err := v.engine.RemoveContainer(cleanup, id); err != nil && !errors.Is(err, engine.ErrNotFound) {
			log.WarnContext(cleanup, "failed to remove verification container", "container", id, "error", err)
		}
	}()
	if err := v.engine.StartContainer(ctx, id); err != nil {
		return nil, fmt.Errorf("start verification container: %w", err)
	}

	tasks := plan(d, versionCmd)
	checks := make([]Check, len(tasks))
	x := &executor{engine: v.engine, container: id}

	g, gctx := errgroup.WithContext(ctx)
	if v.Concurrency > 0 {
		g.SetLimit(v.Concurrency)
	}
	for i, p := range tasks {
		g.Go(func() error {
			checks[i] = p.run(gctx, x)
			checks[i].Kind = p.kind
			checks[i].Name = p.name
			return nil
		})
	}
	g.Wait()

	report := &Report{
		Image:      image,
		Checks:     checks,
		Passed:     true,
		DurationMS: time.Since(start).Milliseconds(),
	}
	for _, c := range checks {
		report.Passed = report.Passed && c.Passed
	}

	log.InfoContext(ctx, "image verified", "image", image, "passed", report.Passed, "checks", len(checks), "failed", len(report.Failed()))
	return report, nil
}

// plan lists the checks for a descriptor
func plan(d *descriptor.Descriptor, versionCmd []string) []task {
	var tasks []task

	if len(versionCmd) > 0 {
		tasks = append(tasks, task{KindRuntime, strings.Join(versionCmd, " "), func(ctx context.Context, x *executor) Check {
			out, err := x.run(ctx, versionCmd...)
			if err != nil {
				return Check{Detail: err.Error()}
			}
			// Some version commands (java -version) print to stderr
			return Check{Passed: true, Detail: firstLine(out)}
		}})
	}

	for _, pkg := range d.Packages {
		tasks = append(tasks, task{KindPackage, pkg.Name, func(ctx context.Context, x *executor) Check {
			return checkPackage(ctx, x, pkg)
		}})
	}

	tasks = append(tasks, task{KindUser, d.RuntimeUser(), func(ctx context.Context, x *executor) Check {
		return checkUser(ctx, x, d.RuntimeUser())
	}})

	for _, rv := range d.ResolveEnv(nil) {
		tasks = append(tasks, task{KindEnv, rv.Name, func(ctx context.Context, x *executor) Check {
			out, err := x.run(ctx, "printenv", rv.Name)
			if err != nil {
				return Check{Detail: "not set"}
			}
			observed := strings.TrimSuffix(out, "\n")
			if !rv.Matches(observed) {
				return Check{Detail: fmt.Sprintf("expected %q, got %q", rv.Value, observed)}
			}
			return Check{Passed: true, Detail: observed}
		}})
	}
	return tasks
}

func checkPackage(ctx context.Context, x *executor, pkg descriptor.Package) Check {
	name := packageName(pkg.Name)
	switch pkg.Manager {
	case descriptor.ManagerApt:
		_, err := x.run(ctx, "dpkg", "-s", name)
		return installed(err)
	case descriptor.ManagerApk:
		_, err := x.run(ctx, "apk", "info", "-e", name)
		return installed(err)
	case descriptor.ManagerDnf, descriptor.ManagerYum:
		_, err := x.run(ctx, "rpm", "-q", name)
		return installed(err)
	case descriptor.ManagerPHPExt:
		out, err := x.run(ctx, "php", "-m")
		if err != nil {
			return Check{Detail: err.Error()}
		}
		for _, line := range strings.Split(out, "\n") {
			if strings.EqualFold(strings.TrimSpace(line), name) {
				return Check{Passed: true}
			}
		}
		return Check{Detail: "extension not loaded"}
	}
	return Check{Detail: "unknown package manager " + pkg.Manager}
}

// packageName strips a version pin (curl=7.88.1-10)
func packageName(s string) string {
	name, _, _ := strings.Cut(s, "=")
	return name
}

func installed(err error) Check {
	if err != nil {
		return Check{Detail: "not installed: " + err.Error()}
	}
	return Check{Passed: true}
}

func checkUser(ctx context.Context, x *executor, want string) Check {
	uidOut, err := x.run(ctx, "id", "-u")
	if err != nil {
		return Check{Detail: err.Error()}
	}
	uid, err := strconv.Atoi(strings.TrimSpace(uidOut))
	if err != nil {
		return Check{Detail: fmt.Sprintf("unexpected id -u output %q", uidOut)}
	}
	if uid == 0 {
		return Check{Detail: "commands run as root"}
	}

	nameOut, err := x.run(ctx, "id", "-un")
	if err != nil {
		return Check{Detail: err.Error()}
	}
	name := strings.TrimSpace(nameOut)
	if want != "" && want != name && want != strconv.Itoa(uid) {
		return Check{Detail: fmt.Sprintf("running as %s (uid %d), expected %s", name, uid, want)}
	}
	return Check{Passed: true, Detail: fmt.Sprintf("%s (uid %d)", name, uid)}
}

// executor runs commands in the verification container
type executor struct {
	engine    engine.Engine
	container string
}

// run returns combined output and fails on a non-zero exit code
func (x *executor) run(ctx context.Context, cmd ...string) (string, error) {
	var (
		out bytes.Buffer
		mu  sync.Mutex
	)
	w := &lockedWriter{w: &out, mu: &mu}
	code, err := x.engine.Exec(ctx, x.container, engine.ExecRequest{Cmd: cmd}, w, w)
	if err != nil {
		return "", err
	}

	mu.Lock()
	s := out.String()
	mu.Unlock()
	if code != 0 {
		return s, fmt.Errorf("%s exited with %d", cmd[0], code)
	}
	return s, nil
}

// lockedWriter serialises the stdout and stderr copies into one buffer
type lockedWriter struct {
	w  *bytes.Buffer
	mu *sync.Mutex
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
