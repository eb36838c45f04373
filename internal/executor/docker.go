package executor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/moby/moby/api/pkg/stdcopy"
	"github.com/moby/moby/api/types/container"
	"github.com/moby/moby/api/types/mount"
	"github.com/moby/moby/client"
)

// Docker runs tools inside a container built from Image. The input file's
// directory is bind-mounted read-only at the same absolute path so the
// tool sees the argument list unchanged apart from path resolution.
type Docker struct {
	Image       string
	CPULimit    float64
	MemoryLimit int64
}

func (d *Docker) Execute(ctx context.Context, inv *Invocation) (*Output, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("creating docker client: %w", err)
	}
	defer cli.Close()

	args, mounts, err := containerArgs(inv)
	if err != nil {
		return nil, err
	}

	hostCfg := &container.HostConfig{Mounts: mounts}
	if d.CPULimit > 0 {
		hostCfg.NanoCPUs = int64(d.CPULimit * 1e9)
	}
	if d.MemoryLimit > 0 {
		hostCfg.Memory = d.MemoryLimit
	}

	createResp, err := cli.ContainerCreate(ctx, client.ContainerCreateOptions{
		Config: &container.Config{
			Image:  d.Image,
			Cmd:    append([]string{inv.Path}, args...),
			Labels: map[string]string{"are-we-sdd-yet": "true"},
		},
		HostConfig: hostCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("creating container for %s: %w", inv.Path, err)
	}
	containerID := createResp.ID
	defer func() {
		cli.ContainerRemove(context.Background(), containerID, client.ContainerRemoveOptions{Force: true})
	}()

	start := time.Now()
	if _, err := cli.ContainerStart(ctx, containerID, client.ContainerStartOptions{}); err != nil {
		return nil, fmt.Errorf("starting container for %s: %w", inv.Path, err)
	}

	waitCtx, cancel := withTimeout(ctx, inv.Timeout)
	defer cancel()

	waitResult := cli.ContainerWait(waitCtx, containerID, client.ContainerWaitOptions{
		Condition: container.WaitConditionNotRunning,
	})
	for {
		select {
		case err := <-waitResult.Error:
			if err == nil {
				continue
			}
			cli.ContainerKill(context.Background(), containerID, client.ContainerKillOptions{Signal: "SIGKILL"})
			if ctx.Err() != nil {
				return nil, fmt.Errorf("running %s: %w", inv.Path, ctx.Err())
			}
			if waitCtx.Err() == nil {
				return nil, fmt.Errorf("waiting for container: %w", err)
			}
			return &Output{ExitCode: -1, TimedOut: true, Duration: time.Since(start)}, nil
		case status := <-waitResult.Result:
			duration := time.Since(start)
			stdout, err := d.collectLogs(cli, containerID, inv.Stderr)
			if err != nil {
				return nil, err
			}
			return &Output{
				Stdout:   stdout,
				ExitCode: int(status.StatusCode),
				Duration: duration,
			}, nil
		}
	}
}

func (d *Docker) collectLogs(cli *client.Client, containerID string, stderr io.Writer) ([]byte, error) {
	logReader, err := cli.ContainerLogs(context.Background(), containerID, client.ContainerLogsOptions{
		ShowStdout: true,
		ShowStderr: stderr != nil,
	})
	if err != nil {
		return nil, fmt.Errorf("reading container logs: %w", err)
	}
	defer logReader.Close()

	if stderr == nil {
		stderr = io.Discard
	}
	var stdout bytes.Buffer
	if _, err := stdcopy.StdCopy(&stdout, stderr, logReader); err != nil {
		return nil, fmt.Errorf("demultiplexing container logs: %w", err)
	}
	return stdout.Bytes(), nil
}

// Check only verifies the image is set; the executable lives inside it.
func (d *Docker) Check(_ context.Context, path string) error {
	if d.Image == "" {
		return fmt.Errorf("%s: no image configured", path)
	}
	return nil
}

// containerArgs rewrites the input file argument to an absolute path and
// returns the bind mount that makes it visible inside the container.
func containerArgs(inv *Invocation) ([]string, []mount.Mount, error) {
	args := append([]string(nil), inv.Args...)
	if inv.InputFile == "" {
		return args, nil, nil
	}
	abs, err := filepath.Abs(inv.InputFile)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving input path: %w", err)
	}
	for i, a := range args {
		if a == inv.InputFile {
			args[i] = abs
		}
	}
	dir := filepath.Dir(abs)
	mounts := []mount.Mount{{
		Type:     mount.TypeBind,
		Source:   dir,
		Target:   dir,
		ReadOnly: true,
	}}
	return args, mounts, nil
}
