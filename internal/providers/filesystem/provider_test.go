package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/filesystem-mcp/internal/shared/fserr"
	"github.com/GriffinCanCode/filesystem-mcp/internal/shared/types"
)

type recordedCall struct {
	method, status string
}

type fakeRecorder struct {
	mu     sync.Mutex
	calls  []recordedCall
	errors []string
}

func (f *fakeRecorder) RecordServiceCall(service, method, status string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedCall{method, status})
}

func (f *fakeRecorder) RecordServiceError(service, method, errorType string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = append(f.errors, errorType)
}

func newTestProvider(t *testing.T) (*Provider, string) {
	t.Helper()
	ops, root := newTestOps(t)
	return NewProvider(ops, nil), root
}

func exec(t *testing.T, p *Provider, tool string, params map[string]interface{}) *types.Result {
	t.Helper()
	result, err := p.Execute(context.Background(), ServiceID+"."+tool, params, nil)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func TestProviderDefinition(t *testing.T) {
	p, _ := newTestProvider(t)
	def := p.Definition()

	assert.Equal(t, ServiceID, def.ID)
	assert.Equal(t, types.CategoryFilesystem, def.Category)

	names := make([]string, 0, len(def.Tools))
	for _, tool := range def.Tools {
		names = append(names, tool.Name)
		assert.Equal(t, ServiceID+"."+tool.Name, tool.ID)
		assert.NotEmpty(t, tool.Description)
		assert.Contains(t, p.handlers, tool.ID)
	}
	assert.ElementsMatch(t, []string{
		"read_file", "list_directory", "write_file", "create_directory",
		"delete_file", "delete_directory", "move_path", "get_file_info",
	}, names)
	assert.Len(t, p.handlers, len(def.Tools))
}

func TestProviderWriteReadInfo(t *testing.T) {
	p, _ := newTestProvider(t)

	res := exec(t, p, "write_file", map[string]interface{}{"path": "info.txt", "content": "Hello World!"})
	require.True(t, res.Success, res.Text())
	assert.Contains(t, res.Text(), "Successfully wrote")
	assert.Equal(t, "write_file", res.Data["tool"])

	res = exec(t, p, "read_file", map[string]interface{}{"path": "info.txt"})
	require.True(t, res.Success)
	assert.Equal(t, "Hello World!", res.Text())

	res = exec(t, p, "get_file_info", map[string]interface{}{"path": "info.txt"})
	require.True(t, res.Success)
	assert.Contains(t, res.Text(), "Path: info.txt")
	assert.Contains(t, res.Text(), "Type: File")
	assert.Contains(t, res.Text(), "Size: 12 bytes")
	assert.IsType(t, &Info{}, res.Data["info"])
}

func TestProviderFailuresAreInBand(t *testing.T) {
	p, _ := newTestProvider(t)

	res := exec(t, p, "read_file", map[string]interface{}{"path": "../../../etc/passwd"})
	assert.False(t, res.Success)
	assert.Equal(t, string(fserr.KindOutsideRoot), res.Kind)
	assert.Contains(t, res.Text(), "outside allowed root")

	res = exec(t, p, "read_file", map[string]interface{}{"path": "missing.txt"})
	assert.False(t, res.Success)
	assert.Equal(t, string(fserr.KindNotFound), res.Kind)
}

func TestProviderArguments(t *testing.T) {
	p, root := newTestProvider(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("x"), 0o644))

	tests := []struct {
		name    string
		tool    string
		params  map[string]interface{}
		success bool
		message string
	}{
		{"missing path", "read_file", nil, false, "path parameter required"},
		{"empty path", "delete_file", map[string]interface{}{"path": ""}, false, "path parameter required"},
		{"wrong path type", "read_file", map[string]interface{}{"path": 42}, false, "must be a string"},
		{"missing content", "write_file", map[string]interface{}{"path": "b.txt"}, false, "content parameter required"},
		{"empty content allowed", "write_file", map[string]interface{}{"path": "b.txt", "content": ""}, true, "wrote 0 characters"},
		{"missing destination", "move_path", map[string]interface{}{"source": "a.txt"}, false, "destination parameter required"},
		{"list defaults to root", "list_directory", nil, true, "Contents of '.'"},
		{"invalid pattern", "list_directory", map[string]interface{}{"pattern": "[a-"}, false, "invalid pattern"},
		{"recursive as string", "delete_directory", map[string]interface{}{"path": "d1", "recursive": "true"}, true, "Successfully deleted directory"},
		{"recursive bad type", "delete_directory", map[string]interface{}{"path": "d2", "recursive": 3}, false, "must be a boolean"},
	}

	require.NoError(t, os.Mkdir(filepath.Join(root, "d1"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "d2"), 0o755))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := exec(t, p, tt.tool, tt.params)
			assert.Equal(t, tt.success, res.Success, res.Text())
			assert.Contains(t, res.Text(), tt.message)
		})
	}
}

func TestProviderUnknownTool(t *testing.T) {
	p, _ := newTestProvider(t)
	res, err := p.Execute(context.Background(), "filesystem.copy", nil, nil)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Text(), "unknown tool")
}

func TestProviderMetrics(t *testing.T) {
	p, _ := newTestProvider(t)
	rec := &fakeRecorder{}
	p.WithMetrics(rec)

	exec(t, p, "create_directory", map[string]interface{}{"path": "dir"})
	exec(t, p, "delete_file", map[string]interface{}{"path": "dir"})

	require.Len(t, rec.calls, 2)
	assert.Equal(t, recordedCall{"create_directory", "success"}, rec.calls[0])
	assert.Equal(t, recordedCall{"delete_file", "error"}, rec.calls[1])
	assert.Equal(t, []string{string(fserr.KindNotAFile)}, rec.errors)
}
