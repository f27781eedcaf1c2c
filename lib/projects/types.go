package projects

import "time"

// Defaults applied when a project omits its limits
const (
	DefaultCPULimit    = "1"
	DefaultMemoryLimit = "512m"
)

// Project groups a language, resource limits, files and a sandbox
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
	SandboxID   string `json:"sandbox_id,omitempty"`
	// SandboxStatus is the live container state; empty without a sandbox
	SandboxStatus string     `json:"sandbox_status,omitempty"`
	MainFile      string     `json:"main_file"`
	CPULimit      string     `json:"cpu_limit"`
	MemoryLimit   string     `json:"memory_limit"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	LastExecuted  *time.Time `json:"last_executed,omitempty"`
}

// CreateProjectRequest creates a project
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language"`
	// MainFile defaults to the runtime's source file
	MainFile    string `json:"main_file,omitempty"`
	CPULimit    string `json:"cpu_limit,omitempty"`
	MemoryLimit string `json:"memory_limit,omitempty"`
}

// UpdateProjectRequest changes the non-nil fields. Changing a limit
// discards the current sandbox; the next execution creates a new one.
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	MainFile    *string `json:"main_file,omitempty"`
	CPULimit    *string `json:"cpu_limit,omitempty"`
	MemoryLimit *string `json:"memory_limit,omitempty"`
}
