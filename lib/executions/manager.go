// Package executions runs commands in sandboxes asynchronously and records
// their results, and runs single snippets in throw-away sandboxes.
package executions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nrednav/cuid2"
	"github.com/onkernel/sandboxd/lib/logger"
	"github.com/onkernel/sandboxd/lib/runtimes"
	"github.com/onkernel/sandboxd/lib/sandboxes"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/semaphore"
)

// Projects is the slice of the project manager executions depend on
type Projects interface {
	EnsureSandbox(ctx context.Context, id string) (*sandboxes.Sandbox, error)
	MarkExecuted(ctx context.Context, id string, at time.Time) error
}

// Manager runs and tracks executions
type Manager interface {
	// Start records the execution and runs it in the background. The
	// returned record is pending.
	Start(ctx context.Context, req StartRequest) (*Execution, error)
	Get(ctx context.Context, id string) (*Execution, error)
	// ListByProject returns the newest executions first. limit <= 0 means all.
	ListByProject(ctx context.Context, projectID string, limit int) ([]Execution, error)
	Running(ctx context.Context) ([]Execution, error)
	// Stop cancels a pending or running execution
	Stop(ctx context.Context, id string) (*Execution, error)
	// Wait blocks until the execution finishes
	Wait(ctx context.Context, id string) (*Execution, error)
	Quick(ctx context.Context, req QuickRequest) (*QuickResult, error)
	// RecoverInterrupted fails executions left in flight by a restart
	RecoverInterrupted(ctx context.Context) (int, error)
}

// Config holds execution limits
type Config struct {
	// Timeout bounds a single execution; 0 disables it
	Timeout time.Duration
	// QuickConcurrency bounds concurrent quick executions
	QuickConcurrency int64
	QuickTimeout     time.Duration
	QuickCPULimit    string
	QuickMemoryLimit string
}

// DefaultConfig returns the default execution configuration
func DefaultConfig() Config {
	return Config{
		Timeout:          10 * time.Minute,
		QuickConcurrency: 4,
		QuickTimeout:     30 * time.Second,
		QuickCPULimit:    "0.5",
		QuickMemoryLimit: "256m",
	}
}

// run is an in-flight execution
type run struct {
	cancel  context.CancelFunc
	done    chan struct{}
	stopped bool
}

type manager struct {
	db        *sql.DB
	sandboxes sandboxes.Manager
	projects  Projects
	config    Config
	quick     *semaphore.Weighted
	metrics   *Metrics

	mu   sync.Mutex
	runs map[string]*run
}

// NewManager creates an execution manager. projects may be nil when
// project executions are not needed.
func NewManager(db *sql.DB, sandboxManager sandboxes.Manager, projects Projects, cfg Config, meter metric.Meter) (Manager, error) {
	def := DefaultConfig()
	if cfg.QuickConcurrency <= 0 {
		cfg.QuickConcurrency = def.QuickConcurrency
	}
	if cfg.QuickTimeout <= 0 {
		cfg.QuickTimeout = def.QuickTimeout
	}
	if cfg.QuickCPULimit == "" {
		cfg.QuickCPULimit = def.QuickCPULimit
	}
	if cfg.QuickMemoryLimit == "" {
		cfg.QuickMemoryLimit = def.QuickMemoryLimit
	}

	m := &manager{
		db:        db,
		sandboxes: sandboxManager,
		projects:  projects,
		config:    cfg,
		quick:     semaphore.NewWeighted(cfg.QuickConcurrency),
		runs:      make(map[string]*run),
	}
	if meter != nil {
		metrics, err := newExecutionMetrics(meter, m)
		if err != nil {
			return nil, fmt.Errorf("create metrics: %w", err)
		}
		m.metrics = metrics
	}
	return m, nil
}

func (m *manager) inFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.runs)
}

func (m *manager) Start(ctx context.Context, req StartRequest) (*Execution, error) {
	log := logger.FromContext(ctx)

	args, err := sandboxes.ParseCommand(req.Command)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	sandboxID := req.SandboxID
	switch {
	case sandboxID != "":
		sb, err := m.sandboxes.GetSandbox(ctx, sandboxID)
		if err != nil {
			return nil, err
		}
		if req.ProjectID == "" {
			req.ProjectID = sb.ProjectID
		}
	case req.ProjectID != "" && m.projects != nil:
		sb, err := m.projects.EnsureSandbox(ctx, req.ProjectID)
		if err != nil {
			return nil, err
		}
		sandboxID = sb.ID
	default:
		return nil, fmt.Errorf("%w: sandbox_id or project_id is required", ErrInvalidRequest)
	}

	e := &Execution{
		ID:        cuid2.Generate(),
		ProjectID: req.ProjectID,
		SandboxID: sandboxID,
		Command:   req.Command,
		Status:    StatusPending,
		StartedAt: time.Now().UTC(),
	}
	if err := insertExecution(ctx, m.db, e); err != nil {
		return nil, err
	}

	// Detach from the request but keep its logger
	runCtx := logger.AddToContext(context.WithoutCancel(ctx), log.With("execution", e.ID))
	var cancel context.CancelFunc
	if m.config.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(runCtx, m.config.Timeout)
	} else {
		runCtx, cancel = context.WithCancel(runCtx)
	}
	r := &run{cancel: cancel, done: make(chan struct{})}

	m.mu.Lock()
	m.runs[e.ID] = r
	m.mu.Unlock()

	out := *e
	go m.execute(runCtx, r, e, args, req.WorkDir)

	log.InfoContext(ctx, "execution started", "id", e.ID, "sandbox", sandboxID, "project", req.ProjectID)
	return &out, nil
}

// execute runs in its own goroutine and owns e
func (m *manager) execute(ctx context.Context, r *run, e *Execution, args []string, workDir string) {
	log := logger.FromContext(ctx)
	defer func() {
		r.cancel()
		m.mu.Lock()
		delete(m.runs, e.ID)
		m.mu.Unlock()
		close(r.done)
	}()

	m.mu.Lock()
	stopped := r.stopped
	m.mu.Unlock()
	if stopped {
		return
	}

	e.Status = StatusRunning
	if err := saveExecution(ctx, m.db, e); err != nil {
		log.ErrorContext(ctx, "failed to mark execution running", "error", err)
	}

	start := time.Now()
	result, err := m.sandboxes.Exec(ctx, e.SandboxID, sandboxes.ExecRequest{Command: args, WorkDir: workDir})
	duration := time.Since(start)
	completed := time.Now().UTC()

	m.mu.Lock()
	stopped = r.stopped
	m.mu.Unlock()

	e.DurationSeconds = duration.Seconds()
	e.CompletedAt = &completed
	if result != nil {
		e.Stdout = result.Stdout
		e.Stderr = result.Stderr
		e.Truncated = result.Truncated
	}

	switch {
	case stopped:
		e.Status = StatusStopped
	case err != nil:
		e.Status = StatusFailed
		e.Error = err.Error()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			e.Error = fmt.Sprintf("timed out after %s", m.config.Timeout)
		}
	default:
		code := result.ExitCode
		e.ExitCode = &code
		e.Status = StatusCompleted
		if code != 0 {
			e.Status = StatusFailed
		}
	}

	// Persist even though ctx may be cancelled
	saveCtx := context.WithoutCancel(ctx)
	if err := saveExecution(saveCtx, m.db, e); err != nil {
		log.ErrorContext(saveCtx, "failed to record execution result", "error", err)
	}
	if e.ProjectID != "" && m.projects != nil {
		if err := m.projects.MarkExecuted(saveCtx, e.ProjectID, completed); err != nil {
			log.WarnContext(saveCtx, "failed to update project", "project", e.ProjectID, "error", err)
		}
	}
	m.metrics.record(saveCtx, "async", e.Status, duration)

	log.InfoContext(saveCtx, "execution finished", "status", e.Status, "duration", duration)
}

func (m *manager) Get(ctx context.Context, id string) (*Execution, error) {
	return loadExecution(ctx, m.db, id)
}

func (m *manager) ListByProject(ctx context.Context, projectID string, limit int) ([]Execution, error) {
	if limit <= 0 {
		limit = -1
	}
	return queryExecutions(ctx, m.db, `WHERE project_id = ? ORDER BY started_at DESC, id LIMIT ?`, projectID, limit)
}

func (m *manager) Running(ctx context.Context) ([]Execution, error) {
	return queryExecutions(ctx, m.db, `WHERE status IN (?, ?) ORDER BY started_at`, StatusPending, StatusRunning)
}

func (m *manager) Stop(ctx context.Context, id string) (*Execution, error) {
	e, err := loadExecution(ctx, m.db, id)
	if err != nil {
		return nil, err
	}
	if e.Finished() {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotRunning, id, e.Status)
	}

	m.mu.Lock()
	r, ok := m.runs[id]
	if ok {
		r.stopped = true
	}
	m.mu.Unlock()

	if ok {
		r.cancel()
		select {
		case <-r.done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	// Pending runs exit before writing; orphans from a restart have no run
	e, err = loadExecution(ctx, m.db, id)
	if err != nil {
		return nil, err
	}
	if !e.Finished() {
		now := time.Now().UTC()
		e.Status = StatusStopped
		e.CompletedAt = &now
		e.DurationSeconds = now.Sub(e.StartedAt).Seconds()
		if err := saveExecution(ctx, m.db, e); err != nil {
			return nil, err
		}
	}

	logger.FromContext(ctx).InfoContext(ctx, "execution stopped", "id", id)
	return e, nil
}

func (m *manager) Wait(ctx context.Context, id string) (*Execution, error) {
	m.mu.Lock()
	r, ok := m.runs[id]
	m.mu.Unlock()

	if ok {
		select {
		case <-r.done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return loadExecution(ctx, m.db, id)
}

func (m *manager) RecoverInterrupted(ctx context.Context) (int, error) {
	inflight, err := m.Running(ctx)
	if err != nil {
		return 0, err
	}

	recovered := 0
	for i := range inflight {
		e := &inflight[i]
		m.mu.Lock()
		_, live := m.runs[e.ID]
		m.mu.Unlock()
		if live {
			continue
		}
		now := time.Now().UTC()
		e.Status = StatusFailed
		e.Error = "interrupted by server restart"
		e.CompletedAt = &now
		if err := saveExecution(ctx, m.db, e); err != nil {
			return recovered, err
		}
		recovered++
	}
	if recovered > 0 {
		logger.FromContext(ctx).WarnContext(ctx, "marked interrupted executions as failed", "count", recovered)
	}
	return recovered, nil
}

func (m *manager) Quick(ctx context.Context, req QuickRequest) (*QuickResult, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	rt, err := runtimes.Get(req.Runtime)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if req.Code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidRequest)
	}

	if err := m.quick.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer m.quick.Release(1)

	ctx, cancel := context.WithTimeout(ctx, m.config.QuickTimeout)
	defer cancel()

	sb, err := m.sandboxes.CreateSandbox(ctx, sandboxes.CreateSandboxRequest{
		Runtime:     rt.Name,
		CPULimit:    m.config.QuickCPULimit,
		MemoryLimit: m.config.QuickMemoryLimit,
		Start:       true,
	})
	if err != nil {
		return nil, err
	}
	defer m.cleanupQuick(ctx, log, sb.ID)

	if err := m.sandboxes.WriteFile(ctx, sb.ID, rt.Recipe.SourceFile, []byte(req.Code)); err != nil {
		return nil, fmt.Errorf("write source: %w", err)
	}

	stages := []struct {
		name string
		cmd  []string
	}{
		{StageCompile, rt.Recipe.Compile},
		{StageRun, rt.Recipe.Run},
	}

	var result *QuickResult
	for _, stage := range stages {
		if len(stage.cmd) == 0 {
			continue
		}
		out, err := m.sandboxes.Exec(ctx, sb.ID, sandboxes.ExecRequest{Command: stage.cmd})
		if err != nil {
			m.metrics.record(context.WithoutCancel(ctx), "quick", StatusFailed, time.Since(start))
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%s timed out after %s: %w", stage.name, m.config.QuickTimeout, ctx.Err())
			}
			return nil, fmt.Errorf("%s: %w", stage.name, err)
		}
		result = &QuickResult{
			Runtime:   rt.Name,
			Stage:     stage.name,
			Stdout:    out.Stdout,
			Stderr:    out.Stderr,
			ExitCode:  out.ExitCode,
			Truncated: out.Truncated,
		}
		if out.ExitCode != 0 {
			break
		}
	}
	result.DurationSeconds = time.Since(start).Seconds()

	status := StatusCompleted
	if !result.Success() {
		status = StatusFailed
	}
	m.metrics.record(ctx, "quick", status, time.Since(start))
	log.InfoContext(ctx, "quick execution finished", "runtime", rt.Name, "stage", result.Stage, "exit_code", result.ExitCode)
	return result, nil
}

// cleanupQuick stops and removes a quick sandbox even when ctx has expired
func (m *manager) cleanupQuick(ctx context.Context, log *slog.Logger, id string) {
	ctx = context.WithoutCancel(ctx)
	if _, err := m.sandboxes.StopSandbox(ctx, id); err != nil {
		log.WarnContext(ctx, "failed to stop quick sandbox", "sandbox", id, "error", err)
	}
	if err := m.sandboxes.DeleteSandbox(ctx, id); err != nil {
		log.ErrorContext(ctx, "failed to remove quick sandbox", "sandbox", id, "error", err)
	}
}
