package mocks

import (
	"context"

	"allowlist-sync/core/container"

	"github.com/stretchr/testify/mock"
)

// Runtime is a mock implementation of container.Runtime
type Runtime struct {
	mock.Mock
}

func (m *Runtime) Exists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *Runtime) Env(ctx context.Context, name string) (map[string]string, error) {
	args := m.Called(ctx, name)
	if env, ok := args.Get(0).(map[string]string); ok {
		return env, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Runtime) Exec(ctx context.Context, name string, cmd []string) (container.ExecResult, error) {
	args := m.Called(ctx, name, cmd)
	return args.Get(0).(container.ExecResult), args.Error(1)
}
