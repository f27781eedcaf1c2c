package sandboxes

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/nrednav/cuid2"
	"github.com/onkernel/sandboxd/lib/engine"
	"github.com/onkernel/sandboxd/lib/images"
	"github.com/onkernel/sandboxd/lib/logger"
	"github.com/onkernel/sandboxd/lib/paths"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const defaultWorkDir = "/workspace"

// Manager handles sandbox lifecycle operations
type Manager interface {
	CreateSandbox(ctx context.Context, req CreateSandboxRequest) (*Sandbox, error)
	GetSandbox(ctx context.Context, id string) (*Sandbox, error)
	ListSandboxes(ctx context.Context, all bool) ([]Sandbox, error)
	StartSandbox(ctx context.Context, id string) (*Sandbox, error)
	StopSandbox(ctx context.Context, id string) (*Sandbox, error)
	// DeleteSandbox force-removes the container and its workspace.
	// Project workspaces are kept.
	DeleteSandbox(ctx context.Context, id string) error
	// Exec runs a command to completion, starting the sandbox if needed.
	// A non-zero exit code is not an error.
	Exec(ctx context.Context, id string, req ExecRequest) (*ExecResult, error)
	// WriteFile writes into the sandbox. Paths under the working directory
	// land in the bind-mounted workspace; others are copied into the container.
	WriteFile(ctx context.Context, id, filePath string, data []byte) error
	// OpenTerminal starts an interactive shell, preferring bash over sh
	OpenTerminal(ctx context.Context, id string) (engine.Session, error)
	CleanupOlderThan(ctx context.Context, maxAge time.Duration) (int, error)
	SystemInfo(ctx context.Context) (*SystemInfo, error)
}

// Config holds sandbox defaults
type Config struct {
	DefaultCPULimit    string
	DefaultMemoryLimit string
	// MaxOutputBytes caps captured stdout and stderr each; 0 is unlimited
	MaxOutputBytes int64
	StopTimeout    time.Duration
}

type manager struct {
	paths   *paths.Paths
	engine  engine.Engine
	images  images.Manager
	config  Config
	metrics *Metrics
}

// NewManager creates a sandbox manager. meter and tracer may be nil.
func NewManager(p *paths.Paths, eng engine.Engine, imageManager images.Manager, cfg Config, meter metric.Meter, tracer trace.Tracer) (Manager, error) {
	if cfg.DefaultCPULimit == "" {
		cfg.DefaultCPULimit = "1"
	}
	if cfg.DefaultMemoryLimit == "" {
		cfg.DefaultMemoryLimit = "512m"
	}
	if cfg.StopTimeout <= 0 {
		cfg.StopTimeout = 10 * time.Second
	}

	m := &manager{
		paths:  p,
		engine: eng,
		images: imageManager,
		config: cfg,
	}

	if meter != nil {
		metrics, err := newSandboxMetrics(meter, tracer, m)
		if err != nil {
			return nil, fmt.Errorf("create metrics: %w", err)
		}
		m.metrics = metrics
	}
	return m, nil
}

// containerName is the engine name of a sandbox container
func containerName(runtime, id string) string {
	return fmt.Sprintf("sandbox-%s-%s", runtime, id)
}

func toSandbox(c *engine.Container) *Sandbox {
	sb := &Sandbox{
		ID:              c.Labels[engine.LabelSandbox],
		Name:            c.Name,
		ContainerID:     c.ID,
		Runtime:         c.Labels[engine.LabelRuntime],
		ProjectID:       c.Labels[engine.LabelProject],
		Image:           c.Image,
		Status:          c.State,
		StatusText:      c.Status,
		CPULimit:        c.Labels[labelCPU],
		MemoryLimit:     c.Labels[labelMemory],
		NetworkDisabled: c.Labels[labelNetwork] == "true",
		WorkDir:         c.Labels[labelWorkDir],
		Labels:          c.Labels,
		CreatedAt:       c.CreatedAt,
	}
	if sb.WorkDir == "" {
		sb.WorkDir = defaultWorkDir
	}
	if !c.StartedAt.IsZero() {
		started := c.StartedAt
		sb.StartedAt = &started
	}
	return sb
}

// workspace is the host directory bind-mounted into the sandbox
func (m *manager) workspace(id, projectID string) string {
	if projectID != "" {
		return m.paths.ProjectWorkspace(projectID)
	}
	return m.paths.Workspace(id)
}

func (m *manager) find(ctx context.Context, id string) (*engine.Container, error) {
	containers, err := m.engine.ListContainers(ctx, true, map[string]string{engine.LabelSandbox: id})
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}
	if len(containers) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &containers[0], nil
}

func (m *manager) CreateSandbox(ctx context.Context, req CreateSandboxRequest) (*Sandbox, error) {
	start := time.Now()
	log := logger.FromContext(ctx)
	ctx, end := m.startSpan(ctx, "CreateSandbox")
	defer end()

	sb, err := m.createSandbox(ctx, req)
	if err != nil {
		log.ErrorContext(ctx, "failed to create sandbox", "runtime", req.Runtime, "error", err)
		if m.metrics != nil {
			m.recordDuration(ctx, m.metrics.createDuration, start, "error", req.Runtime)
		}
		return nil, err
	}

	log.InfoContext(ctx, "sandbox created", "id", sb.ID, "name", sb.Name, "runtime", sb.Runtime,
		"cpu", sb.CPULimit, "memory", sb.MemoryLimit)
	if m.metrics != nil {
		m.recordDuration(ctx, m.metrics.createDuration, start, "success", req.Runtime)
	}
	return sb, nil
}

func (m *manager) createSandbox(ctx context.Context, req CreateSandboxRequest) (*Sandbox, error) {
	cpu := req.CPULimit
	if cpu == "" {
		cpu = m.config.DefaultCPULimit
	}
	mem := req.MemoryLimit
	if mem == "" {
		mem = m.config.DefaultMemoryLimit
	}
	quota, period, err := ParseCPU(cpu)
	if err != nil {
		return nil, err
	}
	memBytes, err := ParseMemory(mem)
	if err != nil {
		return nil, err
	}

	img, err := m.images.GetImage(ctx, req.Runtime)
	if errors.Is(err, images.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s has not been built", ErrImageNotReady, req.Runtime)
	}
	if err != nil {
		return nil, fmt.Errorf("get image: %w", err)
	}
	if !img.Ready() {
		return nil, fmt.Errorf("%w: %s is %s", ErrImageNotReady, req.Runtime, img.Status)
	}
	info, err := m.engine.InspectImage(ctx, img.Tag)
	if errors.Is(err, engine.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s is missing from the engine", ErrImageNotReady, img.Tag)
	}
	if err != nil {
		return nil, fmt.Errorf("inspect image: %w", err)
	}
	workDir := info.WorkDir
	if workDir == "" {
		workDir = defaultWorkDir
	}

	id := cuid2.Generate()
	workspace := m.workspace(id, req.ProjectID)
	if err := os.MkdirAll(workspace, 0755); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	// The runtime user's UID is unknown on the host
	if err := os.Chmod(workspace, 0777); err != nil {
		return nil, fmt.Errorf("chmod workspace: %w", err)
	}

	labels := map[string]string{
		engine.LabelSandbox: id,
		engine.LabelRuntime: req.Runtime,
		labelCPU:            cpu,
		labelMemory:         mem,
		labelWorkDir:        workDir,
		labelNetwork:        strconv.FormatBool(req.NetworkDisabled),
	}
	if req.ProjectID != "" {
		labels[engine.LabelProject] = req.ProjectID
	}

	containerID, err := m.engine.CreateContainer(ctx, engine.ContainerSpec{
		Name:            containerName(req.Runtime, id),
		Image:           img.Tag,
		Entrypoint:      engine.KeepAlive,
		WorkDir:         workDir,
		Labels:          labels,
		Binds:           []string{workspace + ":" + workDir + ":rw"},
		CPUQuota:        quota,
		CPUPeriod:       period,
		Memory:          memBytes,
		NetworkDisabled: req.NetworkDisabled,
		TTY:             true,
		OpenStdin:       true,
	})
	if err != nil {
		if req.ProjectID == "" {
			os.RemoveAll(workspace)
		}
		return nil, fmt.Errorf("create container: %w", err)
	}

	if req.Start {
		if err := m.engine.StartContainer(ctx, containerID); err != nil {
			cleanup := context.WithoutCancel(ctx)
			if rerr := m.engine.RemoveContainer(cleanup, containerID); rerr != nil {
				logger.FromContext(ctx).WarnContext(ctx, "failed to remove unstarted container", "container", containerID, "error", rerr)
			}
			if req.ProjectID == "" {
				os.RemoveAll(workspace)
			}
			return nil, fmt.Errorf("start container: %w", err)
		}
	}

	return m.GetSandbox(ctx, id)
}

func (m *manager) GetSandbox(ctx context.Context, id string) (*Sandbox, error) {
	c, err := m.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSandbox(c), nil
}

func (m *manager) ListSandboxes(ctx context.Context, all bool) ([]Sandbox, error) {
	containers, err := m.engine.ListContainers(ctx, all, nil)
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}

	sandboxes := make([]Sandbox, 0, len(containers))
	for i := range containers {
		if containers[i].Labels[engine.LabelSandbox] == "" {
			continue
		}
		sandboxes = append(sandboxes, *toSandbox(&containers[i]))
	}
	slices.SortFunc(sandboxes, func(a, b Sandbox) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return sandboxes, nil
}

func (m *manager) StartSandbox(ctx context.Context, id string) (*Sandbox, error) {
	log := logger.FromContext(ctx)
	c, err := m.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.Running() {
		if err := m.engine.StartContainer(ctx, c.ID); err != nil {
			log.ErrorContext(ctx, "failed to start sandbox", "id", id, "error", err)
			return nil, fmt.Errorf("start container: %w", err)
		}
		log.InfoContext(ctx, "sandbox started", "id", id)
	}
	return m.GetSandbox(ctx, id)
}

func (m *manager) StopSandbox(ctx context.Context, id string) (*Sandbox, error) {
	log := logger.FromContext(ctx)
	c, err := m.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := m.engine.StopContainer(ctx, c.ID, m.config.StopTimeout); err != nil {
		log.ErrorContext(ctx, "failed to stop sandbox", "id", id, "error", err)
		return nil, fmt.Errorf("stop container: %w", err)
	}
	log.InfoContext(ctx, "sandbox stopped", "id", id)
	return m.GetSandbox(ctx, id)
}

func (m *manager) DeleteSandbox(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)
	c, err := m.find(ctx, id)
	if err != nil {
		return err
	}
	if err := m.engine.RemoveContainer(ctx, c.ID); err != nil && !errors.Is(err, engine.ErrNotFound) {
		log.ErrorContext(ctx, "failed to remove sandbox container", "id", id, "error", err)
		return fmt.Errorf("remove container: %w", err)
	}
	if c.Labels[engine.LabelProject] == "" {
		if err := os.RemoveAll(m.paths.Workspace(id)); err != nil {
			log.WarnContext(ctx, "failed to remove workspace", "id", id, "error", err)
		}
	}
	log.InfoContext(ctx, "sandbox deleted", "id", id)
	return nil
}

// ensureRunning starts the sandbox container if needed
func (m *manager) ensureRunning(ctx context.Context, id string) (*Sandbox, error) {
	c, err := m.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.Running() {
		if err := m.engine.StartContainer(ctx, c.ID); err != nil {
			return nil, fmt.Errorf("start container: %w", err)
		}
		logger.FromContext(ctx).DebugContext(ctx, "started sandbox for exec", "id", id)
	}
	return toSandbox(c), nil
}

func (m *manager) Exec(ctx context.Context, id string, req ExecRequest) (*ExecResult, error) {
	start := time.Now()
	log := logger.FromContext(ctx)
	ctx, end := m.startSpan(ctx, "Exec")
	defer end()

	if len(req.Command) == 0 {
		return nil, fmt.Errorf("exec: empty command")
	}
	sb, err := m.ensureRunning(ctx, id)
	if err != nil {
		return nil, err
	}

	workDir := req.WorkDir
	if workDir == "" {
		workDir = sb.WorkDir
	}
	stdout := &limitedBuffer{limit: m.config.MaxOutputBytes}
	stderr := &limitedBuffer{limit: m.config.MaxOutputBytes}

	code, err := m.engine.Exec(ctx, sb.ContainerID, engine.ExecRequest{
		Cmd:     req.Command,
		Env:     req.Env,
		WorkDir: workDir,
	}, stdout, stderr)

	result := &ExecResult{
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		ExitCode:  code,
		Truncated: stdout.truncated || stderr.truncated,
		Duration:  time.Since(start),
	}
	if m.metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		m.recordDuration(ctx, m.metrics.execDuration, start, status, sb.Runtime)
	}
	if err != nil {
		log.ErrorContext(ctx, "exec failed", "id", id, "command", req.Command[0], "error", err)
		return result, fmt.Errorf("exec: %w", err)
	}

	log.DebugContext(ctx, "exec finished", "id", id, "command", req.Command[0], "exit_code", code, "duration", result.Duration)
	return result, nil
}

// within returns target relative to dir if target is dir or below it
func within(dir, target string) (string, bool) {
	if target == dir {
		return ".", true
	}
	prefix := strings.TrimSuffix(dir, "/") + "/"
	if rel, ok := strings.CutPrefix(target, prefix); ok {
		return rel, true
	}
	return "", false
}

func (m *manager) WriteFile(ctx context.Context, id, filePath string, data []byte) error {
	c, err := m.find(ctx, id)
	if err != nil {
		return err
	}
	sb := toSandbox(c)

	target := path.Clean(filePath)
	if !path.IsAbs(target) {
		target = path.Join(sb.WorkDir, target)
		if _, ok := within(sb.WorkDir, target); !ok {
			return fmt.Errorf("%w: %s escapes the working directory", ErrInvalidPath, filePath)
		}
	}

	rel, ok := within(sb.WorkDir, target)
	if !ok {
		if err := m.engine.CopyFile(ctx, sb.ContainerID, target, data, 0644); err != nil {
			return fmt.Errorf("copy file: %w", err)
		}
		return nil
	}
	if rel == "." {
		return fmt.Errorf("%w: %s is a directory", ErrInvalidPath, filePath)
	}

	hostPath, err := securejoin.SecureJoin(m.workspace(sb.ID, sb.ProjectID), rel)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}
	if err := os.MkdirAll(filepath.Dir(hostPath), 0777); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(hostPath, data, 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (m *manager) OpenTerminal(ctx context.Context, id string) (engine.Session, error) {
	sb, err := m.ensureRunning(ctx, id)
	if err != nil {
		return nil, err
	}

	shell := "/bin/sh"
	if code, err := m.engine.Exec(ctx, sb.ContainerID, engine.ExecRequest{Cmd: []string{"test", "-x", "/bin/bash"}}, nil, nil); err == nil && code == 0 {
		shell = "/bin/bash"
	}

	session, err := m.engine.ExecTTY(ctx, sb.ContainerID, engine.ExecRequest{
		Cmd:     []string{shell},
		Env:     []string{"TERM=xterm-256color"},
		WorkDir: sb.WorkDir,
	})
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	logger.FromContext(ctx).InfoContext(ctx, "terminal opened", "id", id, "shell", shell)
	return session, nil
}

func (m *manager) CleanupOlderThan(ctx context.Context, maxAge time.Duration) (int, error) {
	log := logger.FromContext(ctx)
	sandboxes, err := m.ListSandboxes(ctx, true)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	cleaned := 0
	for _, sb := range sandboxes {
		if !sb.CreatedAt.Before(cutoff) {
			continue
		}
		if err := m.DeleteSandbox(ctx, sb.ID); err != nil {
			log.ErrorContext(ctx, "failed to clean up sandbox", "id", sb.ID, "error", err)
			continue
		}
		cleaned++
	}

	if m.metrics != nil && cleaned > 0 {
		m.metrics.cleanedTotal.Add(ctx, int64(cleaned))
	}
	log.InfoContext(ctx, "cleaned up old sandboxes", "count", cleaned, "max_age", maxAge)
	return cleaned, nil
}

func (m *manager) SystemInfo(ctx context.Context) (*SystemInfo, error) {
	info, err := m.engine.Info(ctx)
	if err != nil {
		return nil, fmt.Errorf("engine info: %w", err)
	}
	sandboxes, err := m.ListSandboxes(ctx, true)
	if err != nil {
		return nil, err
	}

	out := &SystemInfo{Info: *info, Sandboxes: len(sandboxes)}
	for _, sb := range sandboxes {
		if sb.Running() {
			out.SandboxesRunning++
		}
	}
	if du, err := diskUsage(m.paths.DataDir()); err == nil {
		out.DataDisk = du
	} else {
		logger.FromContext(ctx).WarnContext(ctx, "failed to read data disk usage", "error", err)
	}
	return out, nil
}
