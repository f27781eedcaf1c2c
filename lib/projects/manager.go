// Package projects groups a language, resource limits, uploaded files and a
// long-lived sandbox under one record.
package projects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/nrednav/cuid2"
	"github.com/onkernel/sandboxd/lib/logger"
	"github.com/onkernel/sandboxd/lib/paths"
	"github.com/onkernel/sandboxd/lib/runtimes"
	"github.com/onkernel/sandboxd/lib/sandboxes"
)

// Manager handles project operations
type Manager interface {
	CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error)
	GetProject(ctx context.Context, id string) (*Project, error)
	ListProjects(ctx context.Context) ([]Project, error)
	UpdateProject(ctx context.Context, id string, req UpdateProjectRequest) (*Project, error)
	// DeleteProject removes the project, its sandbox, files and executions
	DeleteProject(ctx context.Context, id string) error
	// UploadFiles writes files into the project workspace and returns the
	// relative paths written
	UploadFiles(ctx context.Context, id string, files map[string]string) ([]string, error)
	ImportArchive(ctx context.Context, id string, r io.Reader) ([]string, error)
	// AttachSandbox records sandboxID as the project's sandbox. The sandbox
	// must have been created for this project.
	AttachSandbox(ctx context.Context, id, sandboxID string) (*Project, error)
	// EnsureSandbox returns the project's running sandbox, creating and
	// attaching one if needed
	EnsureSandbox(ctx context.Context, id string) (*sandboxes.Sandbox, error)
	MarkExecuted(ctx context.Context, id string, at time.Time) error
}

type manager struct {
	db        *sql.DB
	paths     *paths.Paths
	sandboxes sandboxes.Manager
}

// NewManager creates a project manager over an opened store
func NewManager(db *sql.DB, p *paths.Paths, sandboxManager sandboxes.Manager) Manager {
	return &manager{
		db:        db,
		paths:     p,
		sandboxes: sandboxManager,
	}
}

func validateLimits(cpu, memory string) error {
	if _, _, err := sandboxes.ParseCPU(cpu); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if _, err := sandboxes.ParseMemory(memory); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return nil
}

func (m *manager) CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	log := logger.FromContext(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}
	rt, err := runtimes.Get(req.Language)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	now := time.Now().UTC()
	p := &Project{
		ID:          cuid2.Generate(),
		Name:        name,
		Description: req.Description,
		Language:    rt.Name,
		MainFile:    req.MainFile,
		CPULimit:    req.CPULimit,
		MemoryLimit: req.MemoryLimit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.MainFile == "" {
		p.MainFile = rt.Recipe.SourceFile
	}
	if p.CPULimit == "" {
		p.CPULimit = DefaultCPULimit
	}
	if p.MemoryLimit == "" {
		p.MemoryLimit = DefaultMemoryLimit
	}
	if err := validateLimits(p.CPULimit, p.MemoryLimit); err != nil {
		return nil, err
	}
	if _, err := cleanRelative(p.MainFile); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(m.paths.ProjectWorkspace(p.ID), 0755); err != nil {
		return nil, fmt.Errorf("create project workspace: %w", err)
	}
	if err := insertProject(ctx, m.db, p); err != nil {
		os.RemoveAll(filepath.Dir(m.paths.ProjectWorkspace(p.ID)))
		return nil, err
	}

	log.InfoContext(ctx, "project created", "id", p.ID, "name", p.Name, "language", p.Language)
	return p, nil
}

// withSandboxStatus fills in the live sandbox state
func (m *manager) withSandboxStatus(ctx context.Context, p *Project) {
	if p.SandboxID == "" {
		return
	}
	sb, err := m.sandboxes.GetSandbox(ctx, p.SandboxID)
	if err != nil {
		p.SandboxStatus = "missing"
		return
	}
	p.SandboxStatus = sb.Status
}

func (m *manager) GetProject(ctx context.Context, id string) (*Project, error) {
	p, err := loadProject(ctx, m.db, id)
	if err != nil {
		return nil, err
	}
	m.withSandboxStatus(ctx, p)
	return p, nil
}

func (m *manager) ListProjects(ctx context.Context) ([]Project, error) {
	list, err := listProjects(ctx, m.db)
	if err != nil {
		return nil, err
	}
	out := make([]Project, 0, len(list))
	for _, p := range list {
		m.withSandboxStatus(ctx, p)
		out = append(out, *p)
	}
	return out, nil
}

func (m *manager) UpdateProject(ctx context.Context, id string, req UpdateProjectRequest) (*Project, error) {
	log := logger.FromContext(ctx)
	p, err := loadProject(ctx, m.db, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidRequest)
		}
		p.Name = name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.MainFile != nil {
		if _, err := cleanRelative(*req.MainFile); err != nil {
			return nil, err
		}
		p.MainFile = *req.MainFile
	}

	limitsChanged := false
	if req.CPULimit != nil && *req.CPULimit != p.CPULimit {
		p.CPULimit = *req.CPULimit
		limitsChanged = true
	}
	if req.MemoryLimit != nil && *req.MemoryLimit != p.MemoryLimit {
		p.MemoryLimit = *req.MemoryLimit
		limitsChanged = true
	}
	if limitsChanged {
		if err := validateLimits(p.CPULimit, p.MemoryLimit); err != nil {
			return nil, err
		}
		if p.SandboxID != "" {
			if err := m.sandboxes.DeleteSandbox(ctx, p.SandboxID); err != nil && !errors.Is(err, sandboxes.ErrNotFound) {
				return nil, fmt.Errorf("delete sandbox: %w", err)
			}
			log.InfoContext(ctx, "discarded project sandbox after limit change", "id", id, "sandbox", p.SandboxID)
			p.SandboxID = ""
		}
	}

	p.UpdatedAt = time.Now().UTC()
	if err := saveProject(ctx, m.db, p); err != nil {
		return nil, err
	}
	m.withSandboxStatus(ctx, p)
	return p, nil
}

func (m *manager) DeleteProject(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)
	p, err := loadProject(ctx, m.db, id)
	if err != nil {
		return err
	}

	if p.SandboxID != "" {
		if err := m.sandboxes.DeleteSandbox(ctx, p.SandboxID); err != nil && !errors.Is(err, sandboxes.ErrNotFound) {
			return fmt.Errorf("delete sandbox: %w", err)
		}
	}
	if err := deleteProject(ctx, m.db, id); err != nil {
		return err
	}
	if err := os.RemoveAll(filepath.Dir(m.paths.ProjectWorkspace(id))); err != nil {
		log.WarnContext(ctx, "failed to remove project files", "id", id, "error", err)
	}

	log.InfoContext(ctx, "project deleted", "id", id)
	return nil
}

// cleanRelative rejects absolute paths and paths climbing out with ".."
func cleanRelative(name string) (string, error) {
	if name == "" || filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return "", fmt.Errorf("%w: %q must be a relative path", ErrInvalidPath, name)
	}
	clean := filepath.Clean(name)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %q leaves the project", ErrInvalidPath, name)
	}
	return clean, nil
}

func (m *manager) UploadFiles(ctx context.Context, id string, files map[string]string) ([]string, error) {
	if _, err := loadProject(ctx, m.db, id); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files", ErrInvalidRequest)
	}

	// Validate everything before writing anything
	cleaned := make(map[string]string, len(files))
	for name := range files {
		clean, err := cleanRelative(name)
		if err != nil {
			return nil, err
		}
		cleaned[name] = clean
	}

	root := m.paths.ProjectWorkspace(id)
	written := make([]string, 0, len(files))
	for name, content := range files {
		target, err := securejoin.SecureJoin(root, cleaned[name])
		if err != nil {
			return written, fmt.Errorf("%w: %v", ErrInvalidPath, err)
		}
		if err := os.MkdirAll(filepath.Dir(target), 0777); err != nil {
			return written, fmt.Errorf("create directory: %w", err)
		}
		if err := os.WriteFile(target, []byte(content), 0644); err != nil {
			return written, fmt.Errorf("write %s: %w", cleaned[name], err)
		}
		written = append(written, cleaned[name])
	}
	slices.Sort(written)

	p, err := loadProject(ctx, m.db, id)
	if err != nil {
		return written, err
	}
	p.UpdatedAt = time.Now().UTC()
	if err := saveProject(ctx, m.db, p); err != nil {
		return written, err
	}

	logger.FromContext(ctx).InfoContext(ctx, "project files uploaded", "id", id, "count", len(written))
	return written, nil
}

func (m *manager) AttachSandbox(ctx context.Context, id, sandboxID string) (*Project, error) {
	p, err := loadProject(ctx, m.db, id)
	if err != nil {
		return nil, err
	}
	sb, err := m.sandboxes.GetSandbox(ctx, sandboxID)
	if err != nil {
		return nil, err
	}
	// Only sandboxes mounting this project's workspace can serve it
	if sb.ProjectID == "" {
		return nil, fmt.Errorf("%w: sandbox %s was not created for a project", ErrInvalidRequest, sandboxID)
	}
	if sb.ProjectID != id {
		return nil, fmt.Errorf("%w: sandbox %s belongs to project %s", ErrInvalidRequest, sandboxID, sb.ProjectID)
	}

	p.SandboxID = sb.ID
	p.UpdatedAt = time.Now().UTC()
	if err := saveProject(ctx, m.db, p); err != nil {
		return nil, err
	}
	p.SandboxStatus = sb.Status
	return p, nil
}

func (m *manager) EnsureSandbox(ctx context.Context, id string) (*sandboxes.Sandbox, error) {
	p, err := loadProject(ctx, m.db, id)
	if err != nil {
		return nil, err
	}

	if p.SandboxID != "" {
		sb, err := m.sandboxes.StartSandbox(ctx, p.SandboxID)
		if err == nil {
			return sb, nil
		}
		if !errors.Is(err, sandboxes.ErrNotFound) {
			return nil, err
		}
		logger.FromContext(ctx).WarnContext(ctx, "project sandbox disappeared, creating a new one", "id", id, "sandbox", p.SandboxID)
	}

	sb, err := m.sandboxes.CreateSandbox(ctx, sandboxes.CreateSandboxRequest{
		Runtime:     p.Language,
		ProjectID:   p.ID,
		CPULimit:    p.CPULimit,
		MemoryLimit: p.MemoryLimit,
		Start:       true,
	})
	if err != nil {
		return nil, err
	}
	if _, err := m.AttachSandbox(ctx, id, sb.ID); err != nil {
		return nil, err
	}
	return sb, nil
}

func (m *manager) MarkExecuted(ctx context.Context, id string, at time.Time) error {
	p, err := loadProject(ctx, m.db, id)
	if err != nil {
		return err
	}
	at = at.UTC()
	p.LastExecuted = &at
	return saveProject(ctx, m.db, p)
}
