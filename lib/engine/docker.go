package engine

import (
	"archive/tar"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/jsonmessage"
	"github.com/docker/docker/pkg/stdcopy"
)

// Docker implements Engine against a Docker-compatible daemon
type Docker struct {
	cli *client.Client
}

var _ Engine = (*Docker)(nil)

// NewDocker connects using the standard DOCKER_HOST environment and
// negotiates the API version with the daemon
func NewDocker() (*Docker, error) {
	cli, err := client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &Docker{cli: cli}, nil
}

// Close releases the client
func (d *Docker) Close() error {
	return d.cli.Close()
}

func (d *Docker) Ping(ctx context.Context) error {
	if _, err := d.cli.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (d *Docker) Info(ctx context.Context) (*Info, error) {
	info, err := d.cli.Info(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &Info{
		ServerVersion:     info.ServerVersion,
		OperatingSystem:   info.OperatingSystem,
		Architecture:      info.Architecture,
		KernelVersion:     info.KernelVersion,
		NCPU:              info.NCPU,
		MemTotal:          info.MemTotal,
		Containers:        info.Containers,
		ContainersRunning: info.ContainersRunning,
		Images:            info.Images,
	}, nil
}

func (d *Docker) BuildImage(ctx context.Context, req BuildRequest, progress io.Writer) (*ImageInfo, error) {
	if progress == nil {
		progress = io.Discard
	}

	buildContext, err := dockerfileContext(req.Dockerfile)
	if err != nil {
		return nil, fmt.Errorf("create build context: %w", err)
	}

	args := make(map[string]*string, len(req.BuildArgs))
	for k, v := range req.BuildArgs {
		args[k] = &v
	}

	resp, err := d.cli.ImageBuild(ctx, buildContext, types.ImageBuildOptions{
		Tags:        []string{req.Tag},
		Dockerfile:  "Dockerfile",
		Labels:      ManagedLabels(req.Labels),
		BuildArgs:   args,
		PullParent:  req.Pull,
		NoCache:     req.NoCache,
		Remove:      true,
		ForceRemove: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildFailed, err)
	}
	defer resp.Body.Close()

	var imageID string
	err = jsonmessage.DisplayJSONMessagesStream(resp.Body, progress, 0, false, func(msg jsonmessage.JSONMessage) {
		if id := decodeAux(msg); id != "" {
			imageID = id
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildFailed, err)
	}

	// Inspect by ID when known so a concurrent build of the same tag cannot race
	ref := req.Tag
	if imageID != "" {
		ref = imageID
	}
	return d.InspectImage(ctx, ref)
}

// dockerfileContext returns a tar stream holding only the Dockerfile
func dockerfileContext(dockerfile string) (io.Reader, error) {
	buf := new(bytes.Buffer)
	tw := tar.NewWriter(buf)
	if err := writeTarFile(tw, "Dockerfile", []byte(dockerfile), 0644); err != nil {
		return nil, err
	}
	if err := tw.Close(); err != nil {
		return nil, err
	}
	return buf, nil
}

func writeTarFile(tw *tar.Writer, name string, content []byte, mode int64) error {
	header := &tar.Header{
		Name:    name,
		Mode:    mode,
		Size:    int64(len(content)),
		ModTime: time.Now(),
	}
	if err := tw.WriteHeader(header); err != nil {
		return err
	}
	_, err := tw.Write(content)
	return err
}

func (d *Docker) InspectImage(ctx context.Context, ref string) (*ImageInfo, error) {
	resp, err := d.cli.ImageInspect(ctx, ref)
	if err != nil {
		if cerrdefs.IsNotFound(err) {
			return nil, fmt.Errorf("%w: image %s", ErrNotFound, ref)
		}
		return nil, fmt.Errorf("inspect image %s: %w", ref, err)
	}

	info := &ImageInfo{
		ID:        resp.ID,
		Tags:      resp.RepoTags,
		SizeBytes: resp.Size,
	}
	if t, err := time.Parse(time.RFC3339Nano, resp.Created); err == nil {
		info.CreatedAt = t
	}
	if resp.Config != nil {
		info.Labels = resp.Config.Labels
		info.Env = resp.Config.Env
		info.User = resp.Config.User
		info.WorkDir = resp.Config.WorkingDir
		info.Entrypoint = resp.Config.Entrypoint
		info.Cmd = resp.Config.Cmd
	}
	if !IsManaged(info.Labels) {
		return nil, fmt.Errorf("%w: image %s", ErrNotFound, ref)
	}
	return info, nil
}

func (d *Docker) RemoveImage(ctx context.Context, ref string) error {
	if _, err := d.InspectImage(ctx, ref); err != nil {
		return err
	}
	_, err := d.cli.ImageRemove(ctx, ref, image.RemoveOptions{Force: true, PruneChildren: true})
	if err != nil {
		if cerrdefs.IsNotFound(err) {
			return fmt.Errorf("%w: image %s", ErrNotFound, ref)
		}
		return fmt.Errorf("remove image %s: %w", ref, err)
	}
	return nil
}

func (d *Docker) CreateContainer(ctx context.Context, spec ContainerSpec) (string, error) {
	cfg := &container.Config{
		Image:           spec.Image,
		Entrypoint:      spec.Entrypoint,
		Cmd:             spec.Cmd,
		Env:             spec.Env,
		WorkingDir:      spec.WorkDir,
		User:            spec.User,
		Labels:          ManagedLabels(spec.Labels),
		Tty:             spec.TTY,
		OpenStdin:       spec.OpenStdin,
		NetworkDisabled: spec.NetworkDisabled,
	}

	hostCfg := &container.HostConfig{
		Binds:      spec.Binds,
		AutoRemove: spec.AutoRemove,
		Resources: container.Resources{
			CPUQuota:  spec.CPUQuota,
			CPUPeriod: spec.CPUPeriod,
			Memory:    spec.Memory,
		},
	}
	if spec.NetworkDisabled {
		hostCfg.NetworkMode = "none"
	}

	resp, err := d.cli.ContainerCreate(ctx, cfg, hostCfg, nil, nil, spec.Name)
	if err != nil {
		if cerrdefs.IsNotFound(err) {
			return "", fmt.Errorf("%w: image %s", ErrNotFound, spec.Image)
		}
		return "", fmt.Errorf("create container %s: %w", spec.Name, err)
	}
	return resp.ID, nil
}

// managed resolves id to a managed container
func (d *Docker) managed(ctx context.Context, id string) (*Container, error) {
	return d.InspectContainer(ctx, id)
}

func (d *Docker) StartContainer(ctx context.Context, id string) error {
	if _, err := d.managed(ctx, id); err != nil {
		return err
	}
	if err := d.cli.ContainerStart(ctx, id, container.StartOptions{}); err != nil {
		return fmt.Errorf("start container %s: %w", id, err)
	}
	return nil
}

func (d *Docker) StopContainer(ctx context.Context, id string, timeout time.Duration) error {
	if _, err := d.managed(ctx, id); err != nil {
		return err
	}
	secs := int(timeout.Seconds())
	if err := d.cli.ContainerStop(ctx, id, container.StopOptions{Timeout: &secs}); err != nil {
		return fmt.Errorf("stop container %s: %w", id, err)
	}
	return nil
}

func (d *Docker) RemoveContainer(ctx context.Context, id string) error {
	if _, err := d.managed(ctx, id); err != nil {
		return err
	}
	err := d.cli.ContainerRemove(ctx, id, container.RemoveOptions{Force: true, RemoveVolumes: true})
	if err != nil {
		if cerrdefs.IsNotFound(err) {
			return fmt.Errorf("%w: container %s", ErrNotFound, id)
		}
		return fmt.Errorf("remove container %s: %w", id, err)
	}
	return nil
}

func (d *Docker) InspectContainer(ctx context.Context, id string) (*Container, error) {
	resp, err := d.cli.ContainerInspect(ctx, id)
	if err != nil {
		if cerrdefs.IsNotFound(err) {
			return nil, fmt.Errorf("%w: container %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("inspect container %s: %w", id, err)
	}
	if resp.Config == nil || !IsManaged(resp.Config.Labels) {
		return nil, fmt.Errorf("%w: container %s", ErrNotFound, id)
	}

	c := &Container{
		ID:     resp.ID,
		Name:   strings.TrimPrefix(resp.Name, "/"),
		Image:  resp.Config.Image,
		Labels: resp.Config.Labels,
	}
	if t, err := time.Parse(time.RFC3339Nano, resp.Created); err == nil {
		c.CreatedAt = t
	}
	if resp.State != nil {
		c.State = string(resp.State.Status)
		c.Status = string(resp.State.Status)
		if t, err := time.Parse(time.RFC3339Nano, resp.State.StartedAt); err == nil {
			c.StartedAt = t
		}
	}
	return c, nil
}

func (d *Docker) ListContainers(ctx context.Context, all bool, labels map[string]string) ([]Container, error) {
	f := filters.NewArgs(filters.Arg("label", LabelManaged+"="+managedValue))
	for k, v := range labels {
		f.Add("label", k+"="+v)
	}

	list, err := d.cli.ContainerList(ctx, container.ListOptions{All: all, Filters: f})
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}

	out := make([]Container, 0, len(list))
	for _, s := range list {
		c := Container{
			ID:        s.ID,
			Image:     s.Image,
			State:     string(s.State),
			Status:    s.Status,
			Labels:    s.Labels,
			CreatedAt: time.Unix(s.Created, 0),
		}
		if len(s.Names) > 0 {
			c.Name = strings.TrimPrefix(s.Names[0], "/")
		}
		out = append(out, c)
	}
	return out, nil
}

func (d *Docker) Exec(ctx context.Context, id string, req ExecRequest, stdout, stderr io.Writer) (int, error) {
	if _, err := d.managed(ctx, id); err != nil {
		return -1, err
	}

	created, err := d.cli.ContainerExecCreate(ctx, id, container.ExecOptions{
		Cmd:          req.Cmd,
		Env:          req.Env,
		WorkingDir:   req.WorkDir,
		User:         req.User,
		AttachStdout: true,
		AttachStderr: true,
	})
	if err != nil {
		return -1, fmt.Errorf("create exec in %s: %w", id, err)
	}

	hijacked, err := d.cli.ContainerExecAttach(ctx, created.ID, container.ExecStartOptions{})
	if err != nil {
		return -1, fmt.Errorf("attach exec in %s: %w", id, err)
	}
	defer hijacked.Close()

	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	done := make(chan error, 1)
	go func() {
		_, err := stdcopy.StdCopy(stdout, stderr, hijacked.Reader)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, io.EOF) {
			return -1, fmt.Errorf("read exec output: %w", err)
		}
	case <-ctx.Done():
		hijacked.Close()
		return -1, ctx.Err()
	}

	// The stream closes slightly before the exit code is recorded
	for {
		inspect, err := d.cli.ContainerExecInspect(ctx, created.ID)
		if err != nil {
			return -1, fmt.Errorf("inspect exec: %w", err)
		}
		if !inspect.Running {
			return inspect.ExitCode, nil
		}
		select {
		case <-ctx.Done():
			return -1, ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func (d *Docker) ExecTTY(ctx context.Context, id string, req ExecRequest) (Session, error) {
	if _, err := d.managed(ctx, id); err != nil {
		return nil, err
	}

	created, err := d.cli.ContainerExecCreate(ctx, id, container.ExecOptions{
		Cmd:          req.Cmd,
		Env:          req.Env,
		WorkingDir:   req.WorkDir,
		User:         req.User,
		Tty:          true,
		AttachStdin:  true,
		AttachStdout: true,
		AttachStderr: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create exec in %s: %w", id, err)
	}

	hijacked, err := d.cli.ContainerExecAttach(ctx, created.ID, container.ExecStartOptions{Tty: true})
	if err != nil {
		return nil, fmt.Errorf("attach exec in %s: %w", id, err)
	}
	return &ttySession{cli: d.cli, execID: created.ID, resp: hijacked}, nil
}

type ttySession struct {
	cli    *client.Client
	execID string
	resp   types.HijackedResponse
}

func (s *ttySession) Read(p []byte) (int, error)  { return s.resp.Reader.Read(p) }
func (s *ttySession) Write(p []byte) (int, error) { return s.resp.Conn.Write(p) }

func (s *ttySession) Close() error {
	s.resp.Close()
	return nil
}

func (s *ttySession) Resize(ctx context.Context, cols, rows uint) error {
	return s.cli.ContainerExecResize(ctx, s.execID, container.ResizeOptions{Width: cols, Height: rows})
}

func (d *Docker) CopyFile(ctx context.Context, id, dst string, data []byte, mode int64) error {
	if _, err := d.managed(ctx, id); err != nil {
		return err
	}
	if mode == 0 {
		mode = 0644
	}

	buf := new(bytes.Buffer)
	tw := tar.NewWriter(buf)
	if err := writeTarFile(tw, path.Base(dst), data, mode); err != nil {
		return err
	}
	if err := tw.Close(); err != nil {
		return err
	}

	err := d.cli.CopyToContainer(ctx, id, path.Dir(dst), buf, container.CopyToContainerOptions{})
	if err != nil {
		return fmt.Errorf("copy to %s:%s: %w", id, dst, err)
	}
	return nil
}

// decodeAux extracts the image ID from a build aux message
func decodeAux(msg jsonmessage.JSONMessage) string {
	if msg.Aux == nil {
		return ""
	}
	var aux struct {
		ID string `json:"ID"`
	}
	if err := json.Unmarshal(*msg.Aux, &aux); err != nil {
		return ""
	}
	return aux.ID
}
