// Package paths centralises the on-disk layout under the data directory.
//
//	<data>/
//	  sandboxd.db
//	  images/<name>/metadata.json
//	  images/<name>/Dockerfile
//	  images/<name>/build.log
//	  workspaces/<sandbox-id>/
//	  projects/<project-id>/files/
package paths

import "path/filepath"

// Paths resolves locations under a data directory
type Paths struct {
	dataDir string
}

// New returns the layout rooted at dataDir
func New(dataDir string) *Paths {
	return &Paths{dataDir: dataDir}
}

// DataDir is the root directory
func (p *Paths) DataDir() string {
	return p.dataDir
}

// Database is the SQLite database file
func (p *Paths) Database() string {
	return filepath.Join(p.dataDir, "sandboxd.db")
}

// ImagesDir holds one directory per image
func (p *Paths) ImagesDir() string {
	return filepath.Join(p.dataDir, "images")
}

// ImageDir is the directory of a single image
func (p *Paths) ImageDir(name string) string {
	return filepath.Join(p.ImagesDir(), name)
}

// ImageMetadata is the image metadata file
func (p *Paths) ImageMetadata(name string) string {
	return filepath.Join(p.ImageDir(name), "metadata.json")
}

// ImageDescriptor is the rendered descriptor the image was built from
func (p *Paths) ImageDescriptor(name string) string {
	return filepath.Join(p.ImageDir(name), "Dockerfile")
}

// ImageBuildLog is the builder output of the last build
func (p *Paths) ImageBuildLog(name string) string {
	return filepath.Join(p.ImageDir(name), "build.log")
}

// WorkspacesDir holds one bind-mounted workspace per sandbox
func (p *Paths) WorkspacesDir() string {
	return filepath.Join(p.dataDir, "workspaces")
}

// Workspace is the host directory mounted into a sandbox
func (p *Paths) Workspace(sandboxID string) string {
	return filepath.Join(p.WorkspacesDir(), sandboxID)
}

// ProjectsDir holds project files
func (p *Paths) ProjectsDir() string {
	return filepath.Join(p.dataDir, "projects")
}

// ProjectWorkspace holds a project's uploaded files. It outlives the
// project's sandboxes and is mounted in place of a per-sandbox workspace.
func (p *Paths) ProjectWorkspace(projectID string) string {
	return filepath.Join(p.ProjectsDir(), projectID, "files")
}
