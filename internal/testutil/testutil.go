// Package testutil provides testing utilities and helpers for server tests.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/filesystem-mcp/internal/providers/filesystem"
	"github.com/GriffinCanCode/filesystem-mcp/internal/shared/paths"
	"github.com/GriffinCanCode/filesystem-mcp/internal/shared/types"
)

// MockServiceProvider is a mock implementation of service.Provider for testing.
type MockServiceProvider struct {
	mock.Mock
}

// Definition mocks the Definition method.
func (m *MockServiceProvider) Definition() types.Service {
	args := m.Called()
	return args.Get(0).(types.Service)
}

// Execute mocks the Execute method.
func (m *MockServiceProvider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	args := m.Called(ctx, toolID, params, appCtx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Result), args.Error(1)
}

// NewMockServiceProvider creates a mock provider whose definition carries
// one tool per name, with IDs "<serviceID>.<name>".
func NewMockServiceProvider(t *testing.T, serviceID string, tools ...string) *MockServiceProvider {
	t.Helper()
	m := new(MockServiceProvider)

	m.On("Definition").Return(CreateTestService(t, serviceID, tools...)).Maybe()

	return m
}

// CreateTestService creates a test service definition.
func CreateTestService(t *testing.T, id string, tools ...string) types.Service {
	t.Helper()

	def := types.Service{
		ID:          id,
		Name:        "Mock Service",
		Description: "Mock service for testing",
		Category:    types.CategoryFilesystem,
		Tools:       []types.Tool{},
	}
	for _, name := range tools {
		def.Tools = append(def.Tools, types.Tool{ID: id + "." + name, Name: name})
	}
	return def
}

// NewGuard creates a guard over a fresh temporary root.
func NewGuard(t *testing.T) (*paths.Guard, string) {
	t.Helper()

	guard, err := paths.NewGuard(t.TempDir())
	require.NoError(t, err)
	return guard, guard.Root()
}

// NewFilesystemProvider creates a filesystem provider over a fresh
// temporary root and returns the provider and the canonical root.
func NewFilesystemProvider(t *testing.T) (*filesystem.Provider, string) {
	t.Helper()

	guard, root := NewGuard(t)
	return filesystem.NewProvider(filesystem.NewOperations(guard, nil), nil), root
}

// WriteFile creates a file under root, creating parents as needed.
func WriteFile(t *testing.T, root, rel, content string) string {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
