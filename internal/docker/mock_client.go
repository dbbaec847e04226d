package docker

import (
	"bytes"
	"context"
	"io"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/pkg/stdcopy"
	specs "github.com/opencontainers/image-spec/specs-go/v1"
)

// MockAPIClient is a scriptable APIClient for tests.
type MockAPIClient struct {
	PingErr      error
	PullErr      error
	CreateErr    error
	StartErr     error
	WaitErr      error
	LogsErr      error
	ExitCode     int64
	Stdout       string
	Stderr       string
	PulledImages []string
	Removed      []string
	CreatedCfg   *container.Config
	CreatedHost  *container.HostConfig
}

func (m *MockAPIClient) Ping(context.Context) (types.Ping, error) {
	return types.Ping{}, m.PingErr
}

func (m *MockAPIClient) ImagePull(_ context.Context, ref string, _ image.PullOptions) (io.ReadCloser, error) {
	if m.PullErr != nil {
		return nil, m.PullErr
	}
	m.PulledImages = append(m.PulledImages, ref)
	return io.NopCloser(bytes.NewReader(nil)), nil
}

func (m *MockAPIClient) ContainerCreate(_ context.Context, config *container.Config, hostConfig *container.HostConfig, _ *network.NetworkingConfig, _ *specs.Platform, _ string) (container.CreateResponse, error) {
	if m.CreateErr != nil {
		return container.CreateResponse{}, m.CreateErr
	}
	m.CreatedCfg = config
	m.CreatedHost = hostConfig
	return container.CreateResponse{ID: "mock-container"}, nil
}

func (m *MockAPIClient) ContainerStart(context.Context, string, container.StartOptions) error {
	return m.StartErr
}

func (m *MockAPIClient) ContainerWait(context.Context, string, container.WaitCondition) (<-chan container.WaitResponse, <-chan error) {
	waitCh := make(chan container.WaitResponse, 1)
	errCh := make(chan error, 1)
	if m.WaitErr != nil {
		errCh <- m.WaitErr
	} else {
		waitCh <- container.WaitResponse{StatusCode: m.ExitCode}
	}
	return waitCh, errCh
}

func (m *MockAPIClient) ContainerLogs(context.Context, string, container.LogsOptions) (io.ReadCloser, error) {
	if m.LogsErr != nil {
		return nil, m.LogsErr
	}
	var buf bytes.Buffer
	if m.Stdout != "" {
		stdcopy.NewStdWriter(&buf, stdcopy.Stdout).Write([]byte(m.Stdout))
	}
	if m.Stderr != "" {
		stdcopy.NewStdWriter(&buf, stdcopy.Stderr).Write([]byte(m.Stderr))
	}
	return io.NopCloser(&buf), nil
}

func (m *MockAPIClient) ContainerRemove(_ context.Context, containerID string, _ container.RemoveOptions) error {
	m.Removed = append(m.Removed, containerID)
	return nil
}

func (m *MockAPIClient) Close() error { return nil }
