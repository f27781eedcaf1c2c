// Package runtimes is the catalogue of language runtimes a sandbox can be
// provisioned for. Each runtime pairs an embedded build descriptor with a
// recipe for running a single source file inside the built image.
package runtimes

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/onkernel/sandboxd/lib/descriptor"
	"github.com/samber/lo"
)

//go:embed descriptors/*.Dockerfile
var descriptorFS embed.FS

// ErrUnknownRuntime is returned for names outside the catalogue
var ErrUnknownRuntime = errors.New("unknown runtime")

// Recipe describes how a single source file is executed. Commands run in
// the descriptor's working directory.
type Recipe struct {
	SourceFile string   `json:"source_file"`
	Compile    []string `json:"compile,omitempty"`
	Run        []string `json:"run"`
	// VersionCmd exits 0 when the runtime is installed
	VersionCmd []string `json:"version_cmd"`
}

// Runtime is a catalogue entry
type Runtime struct {
	Name       string                 `json:"name"`
	Source     string                 `json:"-"`
	Descriptor *descriptor.Descriptor `json:"descriptor"`
	Recipe     Recipe                 `json:"recipe"`
}

// Image returns the tag the runtime image is built under
func (r *Runtime) Image() string {
	return ImageTag(r.Name)
}

// SourcePath is the absolute path of the recipe source file in the sandbox
func (r *Runtime) SourcePath() string {
	return path.Join(r.WorkDir(), r.Recipe.SourceFile)
}

// WorkDir is the sandbox working directory, defaulting to /workspace
func (r *Runtime) WorkDir() string {
	if r.Descriptor.WorkDir != "" {
		return r.Descriptor.WorkDir
	}
	return "/workspace"
}

var recipes = map[string]Recipe{
	"cpp": {
		SourceFile: "main.cpp",
		Compile:    []string{"g++", "-o", "main", "main.cpp"},
		Run:        []string{"./main"},
		VersionCmd: []string{"g++", "--version"},
	},
	"go": {
		SourceFile: "main.go",
		Run:        []string{"go", "run", "main.go"},
		VersionCmd: []string{"go", "version"},
	},
	"java": {
		SourceFile: "Main.java",
		Compile:    []string{"javac", "Main.java"},
		Run:        []string{"java", "-cp", ".", "Main"},
		VersionCmd: []string{"java", "-version"},
	},
	"nodejs": {
		SourceFile: "main.js",
		Run:        []string{"node", "main.js"},
		VersionCmd: []string{"node", "--version"},
	},
	"php": {
		SourceFile: "main.php",
		Run:        []string{"php", "main.php"},
		VersionCmd: []string{"php", "--version"},
	},
	"python": {
		SourceFile: "main.py",
		Run:        []string{"python", "main.py"},
		VersionCmd: []string{"python", "--version"},
	},
	"rust": {
		SourceFile: "main.rs",
		Compile:    []string{"rustc", "-o", "main", "main.rs"},
		Run:        []string{"./main"},
		VersionCmd: []string{"rustc", "--version"},
	},
}

var catalogue = sync.OnceValues(load)

func load() (map[string]*Runtime, error) {
	out := make(map[string]*Runtime, len(recipes))
	for name, recipe := range recipes {
		data, err := descriptorFS.ReadFile("descriptors/" + name + ".Dockerfile")
		if err != nil {
			return nil, fmt.Errorf("runtime %s: %w", name, err)
		}
		d, err := descriptor.Parse(strings.NewReader(string(data)))
		if err != nil {
			return nil, fmt.Errorf("runtime %s: %w", name, err)
		}
		out[name] = &Runtime{Name: name, Source: string(data), Descriptor: d, Recipe: recipe}
	}
	return out, nil
}

// Get returns a runtime by name. The returned descriptor is shared and must
// not be modified; parse Source for a private copy.
func Get(name string) (*Runtime, error) {
	all, err := catalogue()
	if err != nil {
		return nil, err
	}
	rt, ok := all[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRuntime, name)
	}
	return rt, nil
}

// List returns every runtime sorted by name
func List() ([]*Runtime, error) {
	all, err := catalogue()
	if err != nil {
		return nil, err
	}
	list := lo.Values(all)
	slices.SortFunc(list, func(a, b *Runtime) int { return strings.Compare(a.Name, b.Name) })
	return list, nil
}

// Names returns the catalogue runtime names, sorted
func Names() []string {
	names := lo.Keys(recipes)
	slices.Sort(names)
	return names
}

// Exists reports whether name is a catalogue runtime
func Exists(name string) bool {
	_, ok := recipes[strings.ToLower(name)]
	return ok
}

// ImageTag is the local tag a runtime image is built under
func ImageTag(name string) string {
	return fmt.Sprintf("sandboxd-%s:latest", strings.ToLower(name))
}
