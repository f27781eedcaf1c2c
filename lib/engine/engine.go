// Package engine is a narrow adapter over the container engine API.
//
// Every resource created through it carries the managed label and every
// list or lookup is restricted to managed resources, so sandboxd never
// touches containers or images it did not create.
package engine

import (
	"context"
	"io"
	"time"
)

const (
	// LabelManaged marks resources owned by sandboxd
	LabelManaged = "io.sandboxd.managed"
	// LabelRuntime records the runtime a resource belongs to
	LabelRuntime = "io.sandboxd.runtime"
	// LabelProject records the owning project, if any
	LabelProject = "io.sandboxd.project"
	// LabelSandbox records the sandbox ID on a container
	LabelSandbox = "io.sandboxd.sandbox"
	// LabelDigest records the descriptor digest an image was built from
	LabelDigest = "io.sandboxd.descriptor-digest"

	managedValue = "true"
)

// Engine is the container engine surface used by the managers
type Engine interface {
	Ping(ctx context.Context) error
	Info(ctx context.Context) (*Info, error)

	// BuildImage builds a single-Dockerfile context. Human readable progress
	// is written to progress as it arrives.
	BuildImage(ctx context.Context, req BuildRequest, progress io.Writer) (*ImageInfo, error)
	InspectImage(ctx context.Context, ref string) (*ImageInfo, error)
	RemoveImage(ctx context.Context, ref string) error

	CreateContainer(ctx context.Context, spec ContainerSpec) (string, error)
	StartContainer(ctx context.Context, id string) error
	StopContainer(ctx context.Context, id string, timeout time.Duration) error
	RemoveContainer(ctx context.Context, id string) error
	InspectContainer(ctx context.Context, id string) (*Container, error)
	ListContainers(ctx context.Context, all bool, labels map[string]string) ([]Container, error)

	// Exec runs a command to completion, streaming demultiplexed output.
	// The returned exit code is -1 when the command did not finish.
	Exec(ctx context.Context, id string, req ExecRequest, stdout, stderr io.Writer) (int, error)
	// ExecTTY starts an interactive command with a pseudo terminal
	ExecTTY(ctx context.Context, id string, req ExecRequest) (Session, error)
	// CopyFile writes a single file into the container filesystem
	CopyFile(ctx context.Context, id, dst string, data []byte, mode int64) error
}

// Session is an interactive exec stream
type Session interface {
	io.ReadWriteCloser
	Resize(ctx context.Context, cols, rows uint) error
}

// Info summarises the engine host
type Info struct {
	ServerVersion     string `json:"server_version"`
	OperatingSystem   string `json:"operating_system"`
	Architecture      string `json:"architecture"`
	KernelVersion     string `json:"kernel_version"`
	NCPU              int    `json:"ncpu"`
	MemTotal          int64  `json:"mem_total"`
	Containers        int    `json:"containers"`
	ContainersRunning int    `json:"containers_running"`
	Images            int    `json:"images"`
}

// BuildRequest describes an image build
type BuildRequest struct {
	Tag        string
	Dockerfile string
	Labels     map[string]string
	BuildArgs  map[string]string
	Pull       bool
	NoCache    bool
}

// ImageInfo describes a local image
type ImageInfo struct {
	ID         string
	Tags       []string
	SizeBytes  int64
	Labels     map[string]string
	Env        []string
	User       string
	WorkDir    string
	Entrypoint []string
	Cmd        []string
	CreatedAt  time.Time
}

// KeepAlive is the entrypoint of containers that only serve execs
var KeepAlive = []string{"tail", "-f", "/dev/null"}

// ContainerSpec describes a container to create
type ContainerSpec struct {
	Name  string
	Image string
	// Entrypoint replaces the image entrypoint when set; the image CMD is
	// then ignored too
	Entrypoint []string
	Cmd        []string
	Env        []string
	WorkDir    string
	User       string
	Labels     map[string]string
	// Binds are host:container[:mode] bind mounts
	Binds []string

	CPUQuota  int64
	CPUPeriod int64
	Memory    int64

	NetworkDisabled bool
	TTY             bool
	OpenStdin       bool
	AutoRemove      bool
}

// Container states as reported by the engine
const (
	StateCreated = "created"
	StateRunning = "running"
	StatePaused  = "paused"
	StateExited  = "exited"
	StateDead    = "dead"
)

// Container is the engine's view of a container
type Container struct {
	ID        string
	Name      string
	Image     string
	State     string
	Status    string
	Labels    map[string]string
	CreatedAt time.Time
	StartedAt time.Time
}

// Running reports whether the container is running
func (c *Container) Running() bool {
	return c.State == StateRunning
}

// ExecRequest describes a command run inside a container
type ExecRequest struct {
	Cmd     []string
	Env     []string
	WorkDir string
	User    string
}

// ManagedLabels returns the labels every sandboxd resource carries, merged
// with extra (later maps win)
func ManagedLabels(extra ...map[string]string) map[string]string {
	out := map[string]string{LabelManaged: managedValue}
	for _, m := range extra {
		for k, v := range m {
			out[k] = v
		}
	}
	out[LabelManaged] = managedValue
	return out
}

// IsManaged reports whether labels carry the managed marker
func IsManaged(labels map[string]string) bool {
	return labels[LabelManaged] == managedValue
}
