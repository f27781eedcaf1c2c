package projects

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/onkernel/sandboxd/lib/engine/enginetest"
	"github.com/onkernel/sandboxd/lib/images"
	"github.com/onkernel/sandboxd/lib/paths"
	"github.com/onkernel/sandboxd/lib/sandboxes"
	"github.com/onkernel/sandboxd/lib/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestManager(t *testing.T) (Manager, sandboxes.Manager, *enginetest.Fake, *paths.Paths) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dir := t.TempDir()
	p := paths.New(dir)
	fake := enginetest.New()

	imageManager, err := images.NewManager(p, fake, nil, images.Config{MaxConcurrentBuilds: 1}, nil, nil)
	require.NoError(t, err)
	_, err = imageManager.CreateImage(ctx, images.CreateImageRequest{Runtime: "python"})
	require.NoError(t, err)
	_, err = imageManager.WaitForImage(ctx, "python")
	require.NoError(t, err)

	sandboxManager, err := sandboxes.NewManager(p, fake, imageManager, sandboxes.Config{}, nil, nil)
	require.NoError(t, err)

	db, err := store.Open(ctx, filepath.Join(dir, "sandboxd.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewManager(db, p, sandboxManager), sandboxManager, fake, p
}

func TestCreateProject(t *testing.T) {
	mgr, _, _, p := setupTestManager(t)
	ctx := context.Background()

	proj, err := mgr.CreateProject(ctx, CreateProjectRequest{Name: "  demo  ", Language: "python"})
	require.NoError(t, err)
	assert.NotEmpty(t, proj.ID)
	assert.Equal(t, "demo", proj.Name)
	assert.Equal(t, "main.py", proj.MainFile)
	assert.Equal(t, DefaultCPULimit, proj.CPULimit)
	assert.Equal(t, DefaultMemoryLimit, proj.MemoryLimit)
	assert.Nil(t, proj.LastExecuted)

	st, err := os.Stat(p.ProjectWorkspace(proj.ID))
	require.NoError(t, err)
	assert.True(t, st.IsDir())

	got, err := mgr.GetProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.Name, got.Name)
	assert.True(t, proj.CreatedAt.Equal(got.CreatedAt))
	assert.Empty(t, got.SandboxStatus)
}

func TestCreateProject_Invalid(t *testing.T) {
	mgr, _, _, p := setupTestManager(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateProjectRequest
		err  error
	}{
		{"no name", CreateProjectRequest{Language: "python"}, ErrInvalidRequest},
		{"unknown language", CreateProjectRequest{Name: "x", Language: "cobol"}, ErrInvalidRequest},
		{"bad cpu", CreateProjectRequest{Name: "x", Language: "python", CPULimit: "-1"}, ErrInvalidRequest},
		{"bad memory", CreateProjectRequest{Name: "x", Language: "python", MemoryLimit: "lots"}, ErrInvalidRequest},
		{"absolute main file", CreateProjectRequest{Name: "x", Language: "python", MainFile: "/etc/passwd"}, ErrInvalidPath},
		{"escaping main file", CreateProjectRequest{Name: "x", Language: "python", MainFile: "../main.py"}, ErrInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mgr.CreateProject(ctx, tt.req)
			require.ErrorIs(t, err, tt.err)
		})
	}

	_, err := os.Stat(p.ProjectsDir())
	assert.True(t, os.IsNotExist(err))

	_, err = mgr.GetProject(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListProjects(t *testing.T) {
	mgr, _, _, _ := setupTestManager(t)
	ctx := context.Background()

	list, err := mgr.ListProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	a, err := mgr.CreateProject(ctx, CreateProjectRequest{Name: "a", Language: "python"})
	require.NoError(t, err)
	b, err := mgr.CreateProject(ctx, CreateProjectRequest{Name: "b", Language: "go"})
	require.NoError(t, err)

	// Most recently updated first
	name := "a2"
	_, err = mgr.UpdateProject(ctx, a.ID, UpdateProjectRequest{Name: &name})
	require.NoError(t, err)

	list, err = mgr.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, "a2", list[0].Name)
	assert.Equal(t, b.ID, list[1].ID)
	assert.Equal(t, "main.go", list[1].MainFile)
}

func TestUpdateProject_LimitsDiscardSandbox(t *testing.T) {
	mgr, sandboxManager, fake, _ := setupTestManager(t)
	ctx := context.Background()

	proj, err := mgr.CreateProject(ctx, CreateProjectRequest{Name: "demo", Language: "python"})
	require.NoError(t, err)
	sb, err := mgr.EnsureSandbox(ctx, proj.ID)
	require.NoError(t, err)

	// Description alone keeps the sandbox
	desc := "updated"
	proj, err = mgr.UpdateProject(ctx, proj.ID, UpdateProjectRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, sb.ID, proj.SandboxID)
	assert.Equal(t, "updated", proj.Description)

	bad := "nonsense"
	_, err = mgr.UpdateProject(ctx, proj.ID, UpdateProjectRequest{CPULimit: &bad})
	require.ErrorIs(t, err, ErrInvalidRequest)

	cpu := "2"
	proj, err = mgr.UpdateProject(ctx, proj.ID, UpdateProjectRequest{CPULimit: &cpu})
	require.NoError(t, err)
	assert.Equal(t, "2", proj.CPULimit)
	assert.Empty(t, proj.SandboxID)
	assert.Equal(t, 0, fake.ContainerCount())
	_, err = sandboxManager.GetSandbox(ctx, sb.ID)
	require.ErrorIs(t, err, sandboxes.ErrNotFound)

	// The next sandbox carries the new limit
	sb, err = mgr.EnsureSandbox(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "2", sb.CPULimit)
}

func TestUploadFiles(t *testing.T) {
	mgr, _, _, p := setupTestManager(t)
	ctx := context.Background()

	proj, err := mgr.CreateProject(ctx, CreateProjectRequest{Name: "demo", Language: "python"})
	require.NoError(t, err)

	written, err := mgr.UploadFiles(ctx, proj.ID, map[string]string{
		"main.py":         "print('hi')\n",
		"pkg/./util.py":   "X = 1\n",
		"pkg/__init__.py": "",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"main.py", "pkg/__init__.py", "pkg/util.py"}, written)

	data, err := os.ReadFile(filepath.Join(p.ProjectWorkspace(proj.ID), "pkg", "util.py"))
	require.NoError(t, err)
	assert.Equal(t, "X = 1\n", string(data))

	// One bad path rejects the whole upload
	_, err = mgr.UploadFiles(ctx, proj.ID, map[string]string{
		"ok.py":        "",
		"../escape.py": "",
	})
	require.ErrorIs(t, err, ErrInvalidPath)
	_, err = os.Stat(filepath.Join(p.ProjectWorkspace(proj.ID), "ok.py"))
	assert.True(t, os.IsNotExist(err))

	_, err = mgr.UploadFiles(ctx, proj.ID, nil)
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = mgr.UploadFiles(ctx, "nope", map[string]string{"a.py": ""})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUploadFiles_SymlinkStaysInside(t *testing.T) {
	mgr, _, _, p := setupTestManager(t)
	ctx := context.Background()

	proj, err := mgr.CreateProject(ctx, CreateProjectRequest{Name: "demo", Language: "python"})
	require.NoError(t, err)

	outside := t.TempDir()
	require.NoError(t, os.Symlink(outside, filepath.Join(p.ProjectWorkspace(proj.ID), "link")))

	_, err = mgr.UploadFiles(ctx, proj.ID, map[string]string{"link/evil.py": "x"})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(outside, "evil.py"))
	assert.True(t, os.IsNotExist(err))
}

func TestEnsureSandbox(t *testing.T) {
	mgr, sandboxManager, _, p := setupTestManager(t)
	ctx := context.Background()

	proj, err := mgr.CreateProject(ctx, CreateProjectRequest{Name: "demo", Language: "python", MemoryLimit: "256m"})
	require.NoError(t, err)

	sb, err := mgr.EnsureSandbox(ctx, proj.ID)
	require.NoError(t, err)
	assert.True(t, sb.Running())
	assert.Equal(t, proj.ID, sb.ProjectID)
	assert.Equal(t, "256m", sb.MemoryLimit)

	proj, err = mgr.GetProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, sb.ID, proj.SandboxID)
	assert.Equal(t, sandboxes.StatusRunning, proj.SandboxStatus)

	// Stopped sandboxes are restarted, not replaced
	_, err = sandboxManager.StopSandbox(ctx, sb.ID)
	require.NoError(t, err)
	again, err := mgr.EnsureSandbox(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, sb.ID, again.ID)
	assert.True(t, again.Running())

	// A sandbox removed behind the project's back is replaced
	require.NoError(t, sandboxManager.DeleteSandbox(ctx, sb.ID))
	proj, err = mgr.GetProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "missing", proj.SandboxStatus)

	replaced, err := mgr.EnsureSandbox(ctx, proj.ID)
	require.NoError(t, err)
	assert.NotEqual(t, sb.ID, replaced.ID)

	// The project workspace survived
	_, err = os.Stat(p.ProjectWorkspace(proj.ID))
	require.NoError(t, err)
}

func TestAttachSandbox(t *testing.T) {
	mgr, sandboxManager, _, _ := setupTestManager(t)
	ctx := context.Background()

	a, err := mgr.CreateProject(ctx, CreateProjectRequest{Name: "a", Language: "python"})
	require.NoError(t, err)
	b, err := mgr.CreateProject(ctx, CreateProjectRequest{Name: "b", Language: "python"})
	require.NoError(t, err)

	own, err := sandboxManager.CreateSandbox(ctx, sandboxes.CreateSandboxRequest{Runtime: "python", ProjectID: a.ID})
	require.NoError(t, err)
	proj, err := mgr.AttachSandbox(ctx, a.ID, own.ID)
	require.NoError(t, err)
	assert.Equal(t, own.ID, proj.SandboxID)
	assert.Equal(t, sandboxes.StatusCreated, proj.SandboxStatus)

	// A standalone sandbox has its own workspace
	free, err := sandboxManager.CreateSandbox(ctx, sandboxes.CreateSandboxRequest{Runtime: "python"})
	require.NoError(t, err)
	_, err = mgr.AttachSandbox(ctx, a.ID, free.ID)
	require.ErrorIs(t, err, ErrInvalidRequest)
	proj, err = mgr.GetProject(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, own.ID, proj.SandboxID)

	owned, err := mgr.EnsureSandbox(ctx, b.ID)
	require.NoError(t, err)
	_, err = mgr.AttachSandbox(ctx, a.ID, owned.ID)
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = mgr.AttachSandbox(ctx, a.ID, "nope")
	require.ErrorIs(t, err, sandboxes.ErrNotFound)
}

func TestMarkExecuted(t *testing.T) {
	mgr, _, _, _ := setupTestManager(t)
	ctx := context.Background()

	proj, err := mgr.CreateProject(ctx, CreateProjectRequest{Name: "demo", Language: "python"})
	require.NoError(t, err)

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, mgr.MarkExecuted(ctx, proj.ID, at))

	proj, err = mgr.GetProject(ctx, proj.ID)
	require.NoError(t, err)
	require.NotNil(t, proj.LastExecuted)
	assert.True(t, at.Equal(*proj.LastExecuted))

	require.ErrorIs(t, mgr.MarkExecuted(ctx, "nope", at), ErrNotFound)
}

func TestDeleteProject(t *testing.T) {
	mgr, sandboxManager, fake, p := setupTestManager(t)
	ctx := context.Background()

	proj, err := mgr.CreateProject(ctx, CreateProjectRequest{Name: "demo", Language: "python"})
	require.NoError(t, err)
	sb, err := mgr.EnsureSandbox(ctx, proj.ID)
	require.NoError(t, err)

	require.NoError(t, mgr.DeleteProject(ctx, proj.ID))

	_, err = mgr.GetProject(ctx, proj.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = sandboxManager.GetSandbox(ctx, sb.ID)
	require.ErrorIs(t, err, sandboxes.ErrNotFound)
	assert.Equal(t, 0, fake.ContainerCount())

	_, err = os.Stat(filepath.Dir(p.ProjectWorkspace(proj.ID)))
	assert.True(t, os.IsNotExist(err))

	require.ErrorIs(t, mgr.DeleteProject(ctx, proj.ID), ErrNotFound)
}
