package executions

import "time"

// Execution status constants
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusStopped   = "stopped"
)

// Execution is a command run in a sandbox and its recorded outcome
type Execution struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id,omitempty"`
	SandboxID string `json:"sandbox_id"`
	Command   string `json:"command"`
	Stdout    string `json:"stdout"`
	Stderr    string `json:"stderr"`
	// ExitCode is nil until the command finishes
	ExitCode        *int    `json:"exit_code,omitempty"`
	DurationSeconds float64 `json:"duration_seconds"`
	Status          string  `json:"status"`
	// Error describes why the command could not be run
	Error       string     `json:"error,omitempty"`
	Truncated   bool       `json:"truncated,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Finished reports whether the execution reached a final status
func (e *Execution) Finished() bool {
	return e.Status != StatusPending && e.Status != StatusRunning
}

// StartRequest runs Command in a sandbox. With only ProjectID set the
// project's sandbox is used, created on demand.
type StartRequest struct {
	ProjectID string `json:"project_id,omitempty"`
	SandboxID string `json:"sandbox_id,omitempty"`
	Command   string `json:"command"`
	WorkDir   string `json:"work_dir,omitempty"`
}

// QuickRequest runs a single source file in a throw-away sandbox
type QuickRequest struct {
	Runtime string `json:"runtime"`
	Code    string `json:"code"`
}

// Quick execution stages
const (
	StageCompile = "compile"
	StageRun     = "run"
)

// QuickResult is the output of the last stage that ran
type QuickResult struct {
	Runtime         string  `json:"runtime"`
	Stage           string  `json:"stage"`
	Stdout          string  `json:"stdout"`
	Stderr          string  `json:"stderr"`
	ExitCode        int     `json:"exit_code"`
	Truncated       bool    `json:"truncated,omitempty"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// Success reports whether the snippet compiled and exited 0
func (r *QuickResult) Success() bool {
	return r.Stage == StageRun && r.ExitCode == 0
}
