package docker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunOneShot(t *testing.T) {
	mock := &MockAPIClient{
		ExitCode: 0,
		Stdout:   "BenchmarkLookup-8   1000   123 ns/op\n",
		Stderr:   "warning: something\n",
	}
	c := NewClientWithAPI(mock)

	res, err := c.RunOneShot(context.Background(), "golang:1.25", "/tmp/checkout", "/src",
		[]string{"go", "test", "-bench=.", "./..."})
	require.NoError(t, err)

	assert.Equal(t, int64(0), res.ExitCode)
	assert.Contains(t, res.Stdout, "BenchmarkLookup-8")
	assert.Contains(t, res.Stderr, "warning")

	// Workdir and bind mount wired through.
	require.NotNil(t, mock.CreatedCfg)
	assert.Equal(t, "/src", mock.CreatedCfg.WorkingDir)
	assert.Equal(t, []string{"/tmp/checkout:/src"}, mock.CreatedHost.Binds)

	// Container cleaned up.
	assert.Equal(t, []string{"mock-container"}, mock.Removed)
}

func TestRunOneShotNonZeroExit(t *testing.T) {
	mock := &MockAPIClient{ExitCode: 2, Stderr: "build failed\n"}
	c := NewClientWithAPI(mock)

	res, err := c.RunOneShot(context.Background(), "golang:1.25", "/tmp/x", "/src", []string{"go", "test"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.ExitCode)
	assert.Contains(t, res.Stderr, "build failed")
}

func TestRunOneShotStartFailureStillRemoves(t *testing.T) {
	mock := &MockAPIClient{StartErr: errors.New("no such image")}
	c := NewClientWithAPI(mock)

	_, err := c.RunOneShot(context.Background(), "missing:latest", "/tmp/x", "/src", []string{"true"})
	require.Error(t, err)
	assert.Equal(t, []string{"mock-container"}, mock.Removed)
}

func TestCheckDaemon(t *testing.T) {
	c := NewClientWithAPI(&MockAPIClient{})
	assert.NoError(t, c.CheckDaemon(context.Background()))

	c = NewClientWithAPI(&MockAPIClient{PingErr: errors.New("connection refused")})
	assert.ErrorContains(t, c.CheckDaemon(context.Background()), "not reachable")
}

func TestPullImage(t *testing.T) {
	mock := &MockAPIClient{}
	c := NewClientWithAPI(mock)
	require.NoError(t, c.PullImage(context.Background(), "golang:1.25"))
	assert.Equal(t, []string{"golang:1.25"}, mock.PulledImages)
}
