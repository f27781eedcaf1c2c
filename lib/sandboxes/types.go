package sandboxes

import (
	"time"

	"github.com/onkernel/sandboxd/lib/engine"
)

// Sandbox status mirrors the engine container state
const (
	StatusCreated = engine.StateCreated
	StatusRunning = engine.StateRunning
	StatusPaused  = engine.StatePaused
	StatusExited  = engine.StateExited
	StatusDead    = engine.StateDead
)

// Labels recorded on sandbox containers in addition to the engine labels
const (
	labelCPU     = "io.sandboxd.cpu-limit"
	labelMemory  = "io.sandboxd.memory-limit"
	labelWorkDir = "io.sandboxd.workdir"
	labelNetwork = "io.sandboxd.network-disabled"
)

// Sandbox is a resource-limited container provisioned for one runtime
type Sandbox struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContainerID string `json:"container_id"`
	// Runtime is the image name the sandbox was created from
	Runtime   string `json:"runtime"`
	ProjectID string `json:"project_id,omitempty"`
	Image     string `json:"image"`
	Status    string `json:"status"`
	// StatusText is the engine's human readable status ("Up 5 minutes")
	StatusText      string            `json:"status_text,omitempty"`
	CPULimit        string            `json:"cpu_limit"`
	MemoryLimit     string            `json:"memory_limit"`
	NetworkDisabled bool              `json:"network_disabled"`
	WorkDir         string            `json:"work_dir"`
	Labels          map[string]string `json:"labels,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	StartedAt       *time.Time        `json:"started_at,omitempty"`
}

// Running reports whether the sandbox container is running
func (s *Sandbox) Running() bool {
	return s.Status == StatusRunning
}

// CreateSandboxRequest selects an image and resource limits. Empty limits
// take the manager defaults.
type CreateSandboxRequest struct {
	Runtime         string `json:"runtime"`
	ProjectID       string `json:"project_id,omitempty"`
	CPULimit        string `json:"cpu_limit,omitempty"`
	MemoryLimit     string `json:"memory_limit,omitempty"`
	NetworkDisabled bool   `json:"network_disabled,omitempty"`
	// Start starts the container after creation
	Start bool `json:"start,omitempty"`
}

// ExecRequest is a command run inside a sandbox
type ExecRequest struct {
	Command []string `json:"command"`
	// WorkDir defaults to the sandbox working directory
	WorkDir string   `json:"work_dir,omitempty"`
	Env     []string `json:"env,omitempty"`
}

// ExecResult is the outcome of a finished command
type ExecResult struct {
	Stdout    string        `json:"stdout"`
	Stderr    string        `json:"stderr"`
	ExitCode  int           `json:"exit_code"`
	Truncated bool          `json:"truncated,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// SystemInfo summarises the engine host and sandbox counts
type SystemInfo struct {
	engine.Info
	Sandboxes        int `json:"sandboxes"`
	SandboxesRunning int `json:"sandboxes_running"`
	// DataDisk is omitted when the data directory cannot be inspected
	DataDisk *DiskUsage `json:"data_disk,omitempty"`
}
