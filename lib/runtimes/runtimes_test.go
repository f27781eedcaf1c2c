package runtimes

import (
	"strings"
	"testing"

	"github.com/onkernel/sandboxd/lib/descriptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogue(t *testing.T) {
	list, err := List()
	require.NoError(t, err)

	var names []string
	for _, rt := range list {
		names = append(names, rt.Name)
	}
	assert.Equal(t, []string{"cpp", "go", "java", "nodejs", "php", "python", "rust"}, names)
	assert.Equal(t, names, Names())

	for _, rt := range list {
		t.Run(rt.Name, func(t *testing.T) {
			require.NoError(t, rt.Descriptor.Validate())
			assert.Equal(t, "coderunner", rt.Descriptor.User)
			assert.Contains(t, rt.Descriptor.Users(), "coderunner")
			assert.Equal(t, "/workspace", rt.WorkDir())
			assert.Equal(t, []string{"/bin/bash"}, rt.Descriptor.Cmd)
			assert.NotEmpty(t, rt.Recipe.Run)
			assert.NotEmpty(t, rt.Recipe.VersionCmd)

			for _, w := range rt.Descriptor.Warnings() {
				assert.NotContains(t, w, "not created")
				assert.NotContains(t, w, "non-root")
			}
		})
	}
}

func TestGet(t *testing.T) {
	rt, err := Get("Java")
	require.NoError(t, err)

	assert.Equal(t, "java", rt.Name)
	assert.Equal(t, "openjdk:17-slim", rt.Descriptor.BaseImage)
	assert.Equal(t, "/workspace/Main.java", rt.SourcePath())
	assert.Equal(t, []string{"javac", "Main.java"}, rt.Recipe.Compile)
	assert.Equal(t, "sandboxd-java:latest", rt.Image())

	_, err = Get("cobol")
	require.ErrorIs(t, err, ErrUnknownRuntime)
	assert.False(t, Exists("cobol"))
	assert.True(t, Exists("rust"))
}

func TestGoRuntimeEnvironment(t *testing.T) {
	rt, err := Get("go")
	require.NoError(t, err)

	assert.Contains(t, rt.Descriptor.Packages, descriptor.Package{Name: "bash", Manager: descriptor.ManagerApk})

	env := rt.Descriptor.EnvMap(map[string]string{"PATH": "/usr/local/go/bin:/usr/bin"})
	assert.Equal(t, "/workspace", env["GOPATH"])
	assert.Equal(t, "/tmp/.cache/go-build", env["GOCACHE"])
	assert.Equal(t, "/workspace/bin:/usr/local/go/bin:/usr/bin", env["PATH"])
}

func TestSourceReparses(t *testing.T) {
	rt, err := Get("php")
	require.NoError(t, err)

	d, err := descriptor.Parse(strings.NewReader(rt.Source))
	require.NoError(t, err)
	assert.Equal(t, rt.Descriptor.Digest(), d.Digest())
}

func TestImageTag(t *testing.T) {
	assert.Equal(t, "sandboxd-python:latest", ImageTag("python"))
	assert.Equal(t, "sandboxd-nodejs:latest", ImageTag("NodeJS"))
}
