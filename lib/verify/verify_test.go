package verify

import (
	"context"
	"fmt"
	"io"
	"slices"
	"testing"
	"time"

	"github.com/onkernel/sandboxd/lib/descriptor"
	"github.com/onkernel/sandboxd/lib/engine"
	"github.com/onkernel/sandboxd/lib/engine/enginetest"
	"github.com/onkernel/sandboxd/lib/images"
	"github.com/onkernel/sandboxd/lib/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// container simulates the inside of a built image
type container struct {
	uid      int
	user     string
	packages []string
	modules  []string
	env      map[string]string
}

func (c *container) exec(_ *engine.Container, req engine.ExecRequest, stdout, stderr io.Writer) (int, error) {
	cmd := req.Cmd
	switch cmd[0] {
	case "python":
		fmt.Fprintln(stdout, "Python 3.12.1")
	case "id":
		if cmd[1] == "-u" {
			fmt.Fprintln(stdout, c.uid)
		} else {
			fmt.Fprintln(stdout, c.user)
		}
	case "dpkg", "rpm", "apk":
		if !slices.Contains(c.packages, cmd[len(cmd)-1]) {
			fmt.Fprintf(stderr, "package %s is not installed\n", cmd[len(cmd)-1])
			return 1, nil
		}
	case "php":
		for _, m := range c.modules {
			fmt.Fprintln(stdout, m)
		}
	case "printenv":
		v, ok := c.env[cmd[1]]
		if !ok {
			return 1, nil
		}
		fmt.Fprintln(stdout, v)
	default:
		return 127, nil
	}
	return 0, nil
}

func setupVerifier(t *testing.T) (*Verifier, *enginetest.Fake) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fake := enginetest.New()
	imageManager, err := images.NewManager(paths.New(t.TempDir()), fake, nil, images.Config{MaxConcurrentBuilds: 1}, nil, nil)
	require.NoError(t, err)
	_, err = imageManager.CreateImage(ctx, images.CreateImageRequest{Runtime: "python"})
	require.NoError(t, err)
	_, err = imageManager.WaitForImage(ctx, "python")
	require.NoError(t, err)

	return NewVerifier(fake, imageManager), fake
}

func healthyPython() *container {
	return &container{
		uid:      1000,
		user:     "coderunner",
		packages: []string{"git", "curl", "vim", "nano"},
		env: map[string]string{
			"PYTHONUNBUFFERED":        "1",
			"PYTHONDONTWRITEBYTECODE": "1",
			"PATH":                    "/home/coderunner/.local/bin:/usr/local/bin:/usr/bin:/bin",
		},
	}
}

func checkNames(checks []Check) []string {
	var out []string
	for _, c := range checks {
		out = append(out, c.Kind+":"+c.Name)
	}
	return out
}

func TestVerify_Passes(t *testing.T) {
	v, fake := setupVerifier(t)
	fake.OnExec = healthyPython().exec

	report, err := v.Verify(context.Background(), "python")
	require.NoError(t, err)
	assert.True(t, report.Passed, "failed checks: %+v", report.Failed())
	assert.Equal(t, "sandboxd-python:latest", report.Image)
	assert.Equal(t, []string{
		"runtime:python --version",
		"package:git",
		"package:curl",
		"package:vim",
		"package:nano",
		"user:coderunner",
		"env:PYTHONUNBUFFERED",
		"env:PYTHONDONTWRITEBYTECODE",
		"env:PATH",
	}, checkNames(report.Checks))
	assert.Equal(t, "Python 3.12.1", report.Checks[0].Detail)

	// The verification container is removed
	assert.Equal(t, 0, fake.ContainerCount())
}

func TestVerify_Failures(t *testing.T) {
	v, fake := setupVerifier(t)
	c := healthyPython()
	c.uid = 0
	c.user = "root"
	c.packages = []string{"git", "vim", "nano"}
	c.env["PATH"] = "/usr/bin:/bin"
	delete(c.env, "PYTHONUNBUFFERED")
	fake.OnExec = c.exec

	report, err := v.Verify(context.Background(), "python")
	require.NoError(t, err)
	assert.False(t, report.Passed)
	assert.Equal(t, []string{
		"package:curl",
		"user:coderunner",
		"env:PYTHONUNBUFFERED",
		"env:PATH",
	}, checkNames(report.Failed()))

	failed := report.Failed()
	assert.Contains(t, failed[0].Detail, "not installed")
	assert.Equal(t, "commands run as root", failed[1].Detail)
	assert.Equal(t, "not set", failed[2].Detail)
}

func TestVerify_WrongUser(t *testing.T) {
	v, fake := setupVerifier(t)
	c := healthyPython()
	c.user = "nobody"
	fake.OnExec = c.exec

	report, err := v.Verify(context.Background(), "python")
	require.NoError(t, err)
	require.Equal(t, []string{"user:coderunner"}, checkNames(report.Failed()))
	assert.Contains(t, report.Failed()[0].Detail, "running as nobody")
}

func TestVerify_UnknownImage(t *testing.T) {
	v, _ := setupVerifier(t)
	_, err := v.Verify(context.Background(), "java")
	require.ErrorIs(t, err, images.ErrNotFound)
}

func TestVerifyImage_Descriptor(t *testing.T) {
	v, fake := setupVerifier(t)
	fake.AddImage("custom:latest", nil)
	fake.OnExec = (&container{
		uid:      1001,
		user:     "app",
		packages: []string{"bash", "jq"},
		modules:  []string{"[PHP Modules]", "Core", "pdo_mysql", "zip"},
		env:      map[string]string{"APP_HOME": "/srv/app"},
	}).exec

	d, err := descriptor.ParseString(`FROM alpine:3.20
RUN apk add --no-cache bash jq=1.7.1-r0 && docker-php-ext-install pdo_mysql ZIP intl
RUN adduser -D -u 1001 app
USER 1001
ENV APP_HOME=/srv/app
`)
	require.NoError(t, err)

	report, err := v.VerifyImage(context.Background(), "custom:latest", d, nil)
	require.NoError(t, err)

	// Numeric USER matches the uid; php -m is case-insensitive
	assert.Equal(t, []string{"package:intl"}, checkNames(report.Failed()))
	assert.False(t, report.Passed)
	assert.Equal(t, 0, fake.ContainerCount())
}

func TestVerifyImage_MissingImage(t *testing.T) {
	v, _ := setupVerifier(t)
	_, err := v.VerifyImage(context.Background(), "absent:latest", descriptor.New("alpine:3.20"), nil)
	require.ErrorIs(t, err, engine.ErrNotFound)
}

func TestPackageName(t *testing.T) {
	assert.Equal(t, "curl", packageName("curl=7.88.1-10"))
	assert.Equal(t, "curl", packageName("curl"))
}

func TestVerifyImage_EntrypointOverridden(t *testing.T) {
	v, fake := setupVerifier(t)
	fake.AddImage("served:latest", nil)
	fake.OnExec = (&container{uid: 1000, user: "app"}).exec

	d, err := descriptor.ParseString(`FROM python:3.12-slim
RUN useradd -m app
USER app
ENTRYPOINT ["python", "-m", "http.server"]
CMD ["8000"]
`)
	require.NoError(t, err)

	report, err := v.VerifyImage(context.Background(), "served:latest", d, nil)
	require.NoError(t, err)
	assert.True(t, report.Passed, "failed checks: %+v", report.Failed())

	specs := fake.CreatedSpecs()
	spec := specs[len(specs)-1]
	assert.Equal(t, "served:latest", spec.Image)
	assert.Equal(t, engine.KeepAlive, spec.Entrypoint)
	assert.Empty(t, spec.Cmd)
}
