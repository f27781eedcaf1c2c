package descriptor

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFile_Java(t *testing.T) {
	d, err := ParseFile("testdata/java.Dockerfile")
	require.NoError(t, err)

	assert.Equal(t, "openjdk:17-slim", d.BaseImage)
	assert.Equal(t, "/workspace", d.WorkDir)
	assert.Equal(t, "coderunner", d.User)
	assert.Equal(t, []string{"coderunner"}, d.Users())
	assert.Equal(t, []string{"/bin/bash"}, d.Cmd)

	var names []string
	for _, p := range d.Packages {
		assert.Equal(t, ManagerApt, p.Manager)
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"git", "curl", "vim", "nano", "maven", "gradle"}, names)

	require.Len(t, d.Env, 3)
	assert.Equal(t, EnvVar{Name: "JAVA_HOME", Value: "/usr/local/openjdk-17"}, d.Env[0])
	assert.Equal(t, EnvVar{Name: "PATH", Value: "$JAVA_HOME/bin:$PATH"}, d.Env[1])
	assert.Equal(t, EnvVar{Name: "CLASSPATH", Value: "/workspace"}, d.Env[2])

	require.NoError(t, d.Validate())
}

func TestParseFile_PHP(t *testing.T) {
	d, err := ParseFile("testdata/php.Dockerfile")
	require.NoError(t, err)

	assert.Equal(t, "php:8.2-cli", d.BaseImage)
	assert.Contains(t, d.Packages, Package{Name: "libzip-dev", Manager: ManagerApt})
	assert.Contains(t, d.Packages, Package{Name: "pdo_mysql", Manager: ManagerPHPExt})
	assert.Contains(t, d.Packages, Package{Name: "zip", Manager: ManagerPHPExt})
	assert.Contains(t, d.Packages, Package{Name: "zip", Manager: ManagerApt})
	assert.NotContains(t, d.Packages, Package{Name: "composer", Manager: ManagerApt})
	require.NoError(t, d.Validate())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrEmpty},
		{"only comments", "# nothing here\n\n# still nothing\n", ErrEmpty},
		{"multi stage", "FROM golang:1.22 AS build\nRUN go build\nFROM alpine:3.20\n", ErrMultiStage},
		{"unsupported", "FROM alpine:3.20\nVOLUME /data\n", ErrUnsupportedInstruction},
		{"before from", "RUN echo hi\nFROM alpine:3.20\n", ErrMissingBase},
		{"no from", "ARG VERSION=1\n", ErrMissingBase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParse_ExecAndShellForms(t *testing.T) {
	d, err := ParseString(`FROM alpine:3.20
ENTRYPOINT ["/sbin/tini", "--"]
CMD echo "hello world"
`)
	require.NoError(t, err)

	assert.Equal(t, []string{"/sbin/tini", "--"}, d.Entrypoint)
	assert.Equal(t, []string{"/bin/sh", "-c", `echo "hello world"`}, d.Cmd)
}

func TestParse_EnvForms(t *testing.T) {
	d, err := ParseString(`FROM alpine:3.20
ENV GO111MODULE=on \
    GOPROXY=https://proxy.golang.org,direct \
    PATH="/home/sandbox/go/bin:${PATH}"
ENV GREETING hello there
`)
	require.NoError(t, err)

	require.Len(t, d.Env, 4)
	assert.Equal(t, "GO111MODULE", d.Env[0].Name)
	assert.Equal(t, "https://proxy.golang.org,direct", d.Env[1].Value)
	assert.Equal(t, `"/home/sandbox/go/bin:${PATH}"`, d.Env[2].Value, "values are kept as written")
	assert.Equal(t, EnvVar{Name: "GREETING", Value: "hello there"}, d.Env[3])

	env := d.EnvMap(map[string]string{"PATH": "/usr/bin"})
	assert.Equal(t, "/home/sandbox/go/bin:/usr/bin", env["PATH"])
	assert.Equal(t, "hello there", env["GREETING"])
}

func TestResolveEnv_WordSemantics(t *testing.T) {
	d, err := ParseString(`FROM alpine:3.20
ENV A='$HOME' B=\$HOME C=${HOME:-/root} D=${HOME:+set} E="$HOME/app"
ENV F=${UNSET_VAR:-fallback}
`)
	require.NoError(t, err)

	t.Run("with base", func(t *testing.T) {
		vars := d.ResolveEnv(map[string]string{"HOME": "/home/app"})
		require.Len(t, vars, 6)
		for _, v := range vars[:5] {
			assert.True(t, v.Complete, v.Name)
			assert.Empty(t, v.Missing, v.Name)
		}
		assert.Equal(t, "$HOME", vars[0].Value, "single quotes keep the reference literal")
		assert.Equal(t, "$HOME", vars[1].Value, "escaped dollar stays literal")
		assert.Equal(t, "/home/app", vars[2].Value)
		assert.Equal(t, "set", vars[3].Value)
		assert.Equal(t, "/home/app/app", vars[4].Value)
	})

	t.Run("without base", func(t *testing.T) {
		vars := d.ResolveEnv(nil)
		assert.True(t, vars[0].Complete)
		assert.True(t, vars[1].Complete)

		home := vars[2]
		assert.False(t, home.Complete)
		assert.Equal(t, []string{"HOME"}, home.Missing)
		assert.True(t, home.Matches("/root"))
		assert.True(t, home.Matches("/home/app"))

		app := vars[4]
		assert.Equal(t, []string{"HOME"}, app.Missing)
		assert.True(t, app.Matches("/home/app/app"))
		assert.False(t, app.Matches("/home/app"))

		fallback := vars[5]
		assert.Equal(t, []string{"UNSET_VAR"}, fallback.Missing)
		assert.True(t, fallback.Matches("fallback"))
	})
}

func TestDetectPackages(t *testing.T) {
	tests := []struct {
		cmd  string
		want []Package
	}{
		{
			cmd:  "apk add --no-cache git curl bash",
			want: []Package{{"git", ManagerApk}, {"curl", ManagerApk}, {"bash", ManagerApk}},
		},
		{
			cmd:  "apt-get update && DEBIAN_FRONTEND=noninteractive apt-get install -y --no-install-recommends gcc=4:12.2.0-3 make",
			want: []Package{{"gcc", ManagerApt}, {"make", ManagerApt}},
		},
		{
			cmd:  "apk add --virtual .build-deps build-base; echo done",
			want: []Package{{"build-base", ManagerApk}},
		},
		{
			cmd:  "dnf install -y python3 && dnf clean all",
			want: []Package{{"python3", ManagerDnf}},
		},
		{
			cmd:  "sudo yum install -y java-17-openjdk",
			want: []Package{{"java-17-openjdk", ManagerYum}},
		},
		{
			cmd:  "apt-get update && rm -rf /var/lib/apt/lists/*",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			assert.Equal(t, tt.want, detectPackages(tt.cmd))
		})
	}
}

func TestDetectUsers(t *testing.T) {
	tests := []struct {
		cmd  string
		want []string
	}{
		{"useradd -m -s /bin/bash coderunner", []string{"coderunner"}},
		{"adduser -D -s /bin/bash coderunner", []string{"coderunner"}},
		{"addgroup -S runner && adduser -S runner -G runner", []string{"runner"}},
		{"adduser -D -u 1000 -s /bin/sh sandbox && mkdir -p /workspace", []string{"sandbox"}},
		{"adduser --disabled-password --gecos '' app", []string{"app"}},
		{"echo useradd", nil},
	}

	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			assert.Equal(t, tt.want, detectUsers(tt.cmd))
		})
	}
}

func TestResolveEnv(t *testing.T) {
	d, err := ParseFile("testdata/java.Dockerfile")
	require.NoError(t, err)

	t.Run("without base", func(t *testing.T) {
		vars := d.ResolveEnv(nil)
		require.Len(t, vars, 3)

		assert.True(t, vars[0].Complete)
		assert.Equal(t, "/usr/local/openjdk-17", vars[0].Value)

		path := vars[1]
		assert.Equal(t, "PATH", path.Name)
		assert.False(t, path.Complete)
		assert.Equal(t, []string{"PATH"}, path.Missing)
		assert.Equal(t, "/usr/local/openjdk-17/bin:", path.Value)
		assert.True(t, path.Matches("/usr/local/openjdk-17/bin:/usr/local/sbin:/usr/bin:/bin"))
		assert.False(t, path.Matches("/usr/bin:/bin"))
	})

	t.Run("with base", func(t *testing.T) {
		env := d.EnvMap(map[string]string{"PATH": "/usr/bin:/bin"})
		assert.Equal(t, "/usr/local/openjdk-17/bin:/usr/bin:/bin", env["PATH"])
		assert.Equal(t, "/workspace", env["CLASSPATH"])
	})

	t.Run("later assignment wins", func(t *testing.T) {
		d := New("alpine:3.20").SetEnv("A", "one").SetEnv("B", "$A-two").SetEnv("A", "three")
		env := d.EnvMap(nil)
		assert.Equal(t, "three", env["A"])
		assert.Equal(t, "one-two", env["B"])
	})

	t.Run("args visible to expansion", func(t *testing.T) {
		d, err := ParseString("ARG VERSION=1.21\nFROM golang:${VERSION}-alpine\nENV GOVERSION=go$VERSION\n")
		require.NoError(t, err)
		assert.Equal(t, "go1.21", d.EnvMap(nil)["GOVERSION"])
		assert.Equal(t, "golang:1.21-alpine", d.ExpandedBaseImage())
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
		is      error
	}{
		{
			name:    "root user",
			input:   "FROM alpine:3.20\nUSER root\nCMD [\"sh\"]\n",
			wantErr: "must not be root",
			is:      ErrRootUser,
		},
		{
			name:    "uid zero",
			input:   "FROM alpine:3.20\nUSER 0:0\nCMD [\"sh\"]\n",
			wantErr: "must not be root",
			is:      ErrRootUser,
		},
		{
			name:    "no user",
			input:   "FROM alpine:3.20\nCMD [\"sh\"]\n",
			wantErr: "no USER instruction",
			is:      ErrRootUser,
		},
		{
			name:    "relative workdir",
			input:   "FROM alpine:3.20\nWORKDIR app\nUSER nobody\nCMD [\"sh\"]\n",
			wantErr: "must be absolute",
			is:      ErrInvalid,
		},
		{
			name:    "bad reference",
			input:   "FROM Alpine:3.20\nUSER nobody\nCMD [\"sh\"]\n",
			wantErr: "base image",
			is:      ErrInvalid,
		},
		{
			name:    "no command",
			input:   "FROM alpine:3.20\nUSER nobody\n",
			wantErr: "no default command",
			is:      ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseString(tt.input)
			require.NoError(t, err)

			err = d.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.ErrorIs(t, err, tt.is)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestProblems(t *testing.T) {
	assert.Nil(t, Problems(nil))

	d, err := ParseString("FROM alpine:3.20\nWORKDIR app\n")
	require.NoError(t, err)

	problems := Problems(d.Validate())
	require.Len(t, problems, 3)
	assert.Contains(t, problems[0], "must be absolute")
	assert.Contains(t, problems[1], "no USER instruction")
	assert.Equal(t, "no default command", problems[2])
}

func TestWarnings(t *testing.T) {
	d, err := ParseString(`FROM node:latest
USER node
RUN apt-get install -y git
CMD ["node"]
`)
	require.NoError(t, err)

	warnings := d.Warnings()
	require.Len(t, warnings, 3)
	assert.Contains(t, warnings[0], `user "node" is not created`)
	assert.Contains(t, warnings[1], "installs packages as non-root")
	assert.Contains(t, warnings[2], "not pinned")
}

func TestWarnings_ExecFormRun(t *testing.T) {
	d, err := ParseString(`FROM alpine:3.20
USER nobody
RUN ["apk", "add", "--no-cache", "git"]
CMD ["sh"]
`)
	require.NoError(t, err)

	warnings := d.Warnings()
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[1], "line 3 installs packages as non-root user \"nobody\"")
}

func TestRender_RoundTrip(t *testing.T) {
	original, err := ParseFile("testdata/php.Dockerfile")
	require.NoError(t, err)

	rendered := original.Render()
	assert.True(t, strings.HasPrefix(rendered, "FROM php:8.2-cli\n\n"))
	assert.Contains(t, rendered, " \\\n    && docker-php-ext-install zip pdo pdo_mysql")

	reparsed, err := ParseString(rendered)
	require.NoError(t, err)

	assert.Equal(t, original.Packages, reparsed.Packages)
	assert.Equal(t, original.Env, reparsed.Env)
	assert.Equal(t, original.User, reparsed.User)
	assert.Equal(t, original.Cmd, reparsed.Cmd)
	assert.Equal(t, rendered, reparsed.Render())
	assert.Equal(t, original.Digest(), reparsed.Digest())
}

func TestRender_QuotedAndList(t *testing.T) {
	original, err := ParseString(`FROM alpine:3.20
RUN echo "a && b" > /f&&echo 'x&&y' >> /f && echo $(true && echo z) >> /f
USER nobody
CMD ["sh"]
`)
	require.NoError(t, err)

	run := original.Steps[1]
	assert.Equal(t, `echo "a && b" > /f && echo 'x&&y' >> /f && echo $(true && echo z) >> /f`, run.Args)

	rendered := original.Render()
	assert.Contains(t, rendered, "RUN echo \"a && b\" > /f \\\n    && echo 'x&&y' >> /f \\\n    && echo $(true && echo z) >> /f\n")

	reparsed, err := ParseString(rendered)
	require.NoError(t, err)
	assert.Equal(t, original.Steps[1].Args, reparsed.Steps[1].Args)
	assert.Equal(t, rendered, reparsed.Render())
}

func TestSplitAndList(t *testing.T) {
	tests := []struct {
		cmd  string
		want []string
	}{
		{"a && b", []string{"a", "b"}},
		{"a&&b&&c", []string{"a", "b", "c"}},
		{`echo "x && y"`, []string{`echo "x && y"`}},
		{`echo 'x && y' && z`, []string{`echo 'x && y'`, "z"}},
		{"echo `a && b` && c", []string{"echo `a && b`", "c"}},
		{`echo \&\& b`, []string{`echo \&\& b`}},
		{"a && && b", []string{"a && && b"}},
		{"a || b", []string{"a || b"}},
	}

	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			assert.Equal(t, tt.want, splitAndList(tt.cmd, '\\'))
		})
	}
}

func TestParse_EscapeDirective(t *testing.T) {
	d, err := ParseString("# escape=`\nFROM alpine:3.20\nRUN apk add git && `\n  echo done\nUSER nobody\nCMD [\"sh\"]\n")
	require.NoError(t, err)

	rendered := d.Render()
	assert.True(t, strings.HasPrefix(rendered, "# escape=`\n"))
	assert.Contains(t, rendered, "apk add git `\n    && echo done")

	reparsed, err := ParseString(rendered)
	require.NoError(t, err)
	assert.Equal(t, d.Steps[1].Args, reparsed.Steps[1].Args)
	assert.Equal(t, d.Packages, reparsed.Packages)
}

func TestBuilder(t *testing.T) {
	d := New("python:3.12-slim").
		SetWorkDir("/workspace").
		Run("apt-get update && apt-get install -y git").
		Run("useradd -m -s /bin/bash coderunner").
		SetUser("coderunner").
		SetEnv("PYTHONUNBUFFERED", "1").
		SetEnv("GREETING", "hello world").
		SetCmd("/bin/bash")

	require.NoError(t, d.Validate())

	reparsed, err := ParseString(d.Render())
	require.NoError(t, err)
	assert.Equal(t, d.Env, reparsed.Env)
	assert.Equal(t, []string{"/bin/bash"}, reparsed.Cmd)
	assert.Equal(t, []Package{{"git", ManagerApt}}, reparsed.Packages)
}

func TestImageConfig(t *testing.T) {
	d, err := ParseFile("testdata/java.Dockerfile")
	require.NoError(t, err)

	cfg := d.ImageConfig(map[string]string{"PATH": "/usr/bin"})
	assert.Equal(t, "coderunner", cfg.User)
	assert.Equal(t, "/workspace", cfg.WorkingDir)
	assert.Equal(t, []string{"/bin/bash"}, cfg.Cmd)
	assert.Equal(t, []string{
		"JAVA_HOME=/usr/local/openjdk-17",
		"PATH=/usr/local/openjdk-17/bin:/usr/bin",
		"CLASSPATH=/workspace",
	}, cfg.Env)
}

func TestRebase(t *testing.T) {
	d, err := ParseFile("testdata/java.Dockerfile")
	require.NoError(t, err)

	pinned := "docker.io/library/openjdk@sha256:" + strings.Repeat("a", 64)
	rebased := d.Rebase(pinned)

	assert.Equal(t, pinned, rebased.BaseImage)
	assert.Equal(t, "openjdk:17-slim", d.BaseImage, "original is unchanged")
	assert.Equal(t, d.Packages, rebased.Packages)
	assert.Equal(t, d.Users(), rebased.Users())
	require.NoError(t, rebased.Validate())
	assert.True(t, strings.HasPrefix(rebased.Render(), "FROM "+pinned+"\n"))
	assert.NotEqual(t, d.Digest(), rebased.Digest())
}
